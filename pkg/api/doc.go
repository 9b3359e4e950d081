// Package api defines the wire types for the chat endpoint: the chat
// request and message shapes, the error taxonomy, request validation,
// and message sanitization.
//
// Everything in this package is request-scoped; nothing is persisted.
package api
