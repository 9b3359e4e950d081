package provider

import (
	"context"

	"github.com/airtrek/concierge/pkg/api"
)

// Request is the backend-facing request: the sanitized conversation
// plus pass-through generation settings. Model may be empty, in which
// case the adapter's configured default applies.
type Request struct {
	Model       string
	Messages    []api.ChatMessage
	Temperature *float64
}

// Provider abstracts an LLM inference backend. Construction validates
// configuration and credentials, so a successfully built Provider has
// everything it needs to open a stream.
//
// Implementations must be safe for concurrent use by multiple goroutines.
type Provider interface {
	// Name returns the provider identifier (e.g. "openai", "mock").
	Name() string

	// Stream opens one streaming completion call. The returned channel
	// receives Event values in upstream order and is closed by the
	// provider when the stream completes or errors. An error return
	// means the stream never started; after a nil return, failures are
	// delivered as EventError on the channel.
	Stream(ctx context.Context, req *Request) (<-chan Event, error)

	// Close releases provider resources (HTTP clients, connections).
	Close() error
}
