// Package engine implements the core orchestration logic for the
// concierge gateway. The Engine struct implements transport.ChatStreamer,
// bridging incoming chat requests to provider backends. It sanitizes the
// conversation, resolves which backend should serve the request, and
// forwards the provider's event stream to the transport writer under the
// single-terminal-sentinel contract.
package engine
