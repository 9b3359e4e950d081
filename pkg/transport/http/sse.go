package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/airtrek/concierge/pkg/transport"
)

// writerState tracks the state of an SSE StreamWriter.
type writerState int

const (
	writerIdle      writerState = iota // No writes yet, headers uncommitted
	writerStreaming                    // At least one event written
	writerCompleted                    // Terminal sentinel sent
)

// Terminal sentinel payloads. [ERROR] carries the message after the tag.
const (
	doneSentinel  = "[DONE]"
	errorSentinel = "[ERROR]"
)

// sseStreamWriter implements transport.StreamWriter over an HTTP
// response. Tokens are framed as "data: <token>\n\n" events; the stream
// ends with exactly one terminal sentinel, either [DONE] or
// [ERROR] <message>, never both.
type sseStreamWriter struct {
	w  http.ResponseWriter
	rc *http.ResponseController

	mu    sync.Mutex
	state writerState
}

var _ transport.StreamWriter = (*sseStreamWriter)(nil)

// newSSEStreamWriter creates a StreamWriter wrapping an http.ResponseWriter.
func newSSEStreamWriter(w http.ResponseWriter) *sseStreamWriter {
	return &sseStreamWriter{
		w:  w,
		rc: http.NewResponseController(w),
	}
}

// WriteToken sends a single token event as "data: <token>\n\n". The
// token text is passed through verbatim; the wire format needs no
// further encoding.
func (s *sseStreamWriter) WriteToken(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writeEvent(token, writerStreaming)
}

// WriteDone sends the [DONE] sentinel and seals the stream.
func (s *sseStreamWriter) WriteDone(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writeEvent(doneSentinel, writerCompleted)
}

// WriteError sends the [ERROR] sentinel with the message and seals the
// stream. No [DONE] follows an [ERROR].
func (s *sseStreamWriter) WriteError(ctx context.Context, err error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writeEvent(errorSentinel+" "+err.Error(), writerCompleted)
}

// writeEvent writes one framed event and advances to nextState.
// Callers must hold s.mu.
func (s *sseStreamWriter) writeEvent(payload string, nextState writerState) error {
	if s.state == writerCompleted {
		return errors.New("cannot write event: stream is sealed")
	}

	// First event: commit the SSE headers and the 200.
	if s.state == writerIdle {
		h := s.w.Header()
		h.Set("Content-Type", "text/event-stream; charset=utf-8")
		h.Set("Cache-Control", "no-cache, no-transform")
		h.Set("Connection", "keep-alive")
	}
	s.state = nextState

	if _, err := fmt.Fprintf(s.w, "data: %s\n\n", payload); err != nil {
		return fmt.Errorf("writing event: %w", err)
	}
	if err := s.rc.Flush(); err != nil {
		return fmt.Errorf("flushing event: %w", err)
	}
	return nil
}

// hasStartedStreaming reports whether any event went out, i.e. whether
// the 200 and the SSE headers are committed. The HTTP adapter uses this
// to decide between a JSON error response and the sentinel protocol.
func (s *sseStreamWriter) hasStartedStreaming() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state != writerIdle
}
