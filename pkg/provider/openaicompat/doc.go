// Package openaicompat holds the request translation and stream
// forwarding shared by the SDK-backed adapters (openai and azure).
// Both speak the Chat Completions protocol through the same SDK; only
// client construction differs.
package openaicompat
