// Package provider defines the backend abstraction for the chat
// gateway: a provider turns a sanitized conversation into a lazy,
// single-pass sequence of text deltas.
//
// Four implementations exist, one per subpackage: openai and azure
// (SDK-backed), ollama (raw HTTP, newline-delimited JSON), and mock
// (deterministic, no network). Detect picks one from the request's
// explicit provider field or from configured availability.
package provider
