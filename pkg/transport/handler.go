package transport

import (
	"context"

	"github.com/airtrek/concierge/pkg/api"
)

// ChatStreamer handles the core chat operation. The implementation
// receives a decoded request and writes the token stream (or nothing,
// when it fails before streaming) to the StreamWriter.
//
// An error return with no tokens written means the request never
// started streaming; the HTTP adapter turns it into a JSON error
// response. An error return after tokens were written is informational
// only: the terminal [ERROR] sentinel has already been sent.
type ChatStreamer interface {
	StreamChat(ctx context.Context, req *api.ChatRequest, w StreamWriter) error
}

// ChatStreamerFunc is an adapter that allows using an ordinary function
// as a ChatStreamer.
type ChatStreamerFunc func(ctx context.Context, req *api.ChatRequest, w StreamWriter) error

// StreamChat calls f(ctx, req, w).
func (f ChatStreamerFunc) StreamChat(ctx context.Context, req *api.ChatRequest, w StreamWriter) error {
	return f(ctx, req, w)
}

// StreamWriter abstracts the SSE token stream for the handler. The
// transport layer creates one per request.
//
// WriteDone and WriteError are terminal and mutually exclusive; at most
// one of them succeeds, exactly once. Any write after a terminal event
// returns an error. Implementations must be safe for use from the
// single handler goroutine only.
type StreamWriter interface {
	// WriteToken sends one token event. Returns an error if the client
	// is gone or a terminal event was already written.
	WriteToken(ctx context.Context, token string) error

	// WriteDone sends the [DONE] sentinel and seals the stream.
	WriteDone(ctx context.Context) error

	// WriteError sends the [ERROR] sentinel carrying the message and
	// seals the stream. Never followed by [DONE].
	WriteError(ctx context.Context, err error) error
}
