// Package transport defines the handler contract between the HTTP
// layer and the chat engine, plus the middleware chain that wraps it
// (recovery, request IDs, logging).
//
// The load-bearing asymmetry of the chat endpoint lives here: failures
// BEFORE the stream starts become JSON error bodies with a status code,
// failures AFTER the first token can only travel as in-stream [ERROR]
// sentinels, because the 200 and the SSE headers are already committed.
package transport
