package http

import (
	"encoding/json"
	"net/http"

	"github.com/airtrek/concierge/pkg/api"
	"github.com/airtrek/concierge/pkg/debug"
	"github.com/airtrek/concierge/pkg/transport"
)

// Adapter serves the chat API over HTTP. It decodes and validates the
// request, then hands it to the ChatStreamer with a fresh SSE writer.
type Adapter struct {
	streamer transport.ChatStreamer
	mux      *http.ServeMux
	config   Config
}

// Config holds configuration for the HTTP adapter.
type Config struct {
	MaxBodySize int64
}

// DefaultConfig returns the default adapter configuration.
func DefaultConfig() Config {
	return Config{
		MaxBodySize: 1 << 20, // 1 MiB
	}
}

// NewAdapter creates an HTTP adapter around the given ChatStreamer.
// Middleware is applied to the streamer in the given order.
func NewAdapter(streamer transport.ChatStreamer, cfg Config, middlewares ...transport.Middleware) *Adapter {
	if len(middlewares) > 0 {
		streamer = transport.Chain(middlewares...)(streamer)
	}
	if cfg.MaxBodySize <= 0 {
		cfg.MaxBodySize = DefaultConfig().MaxBodySize
	}

	a := &Adapter{
		streamer: streamer,
		mux:      http.NewServeMux(),
		config:   cfg,
	}

	a.mux.HandleFunc("POST /api/chat", a.handleChat)

	return a
}

// Handler returns the http.Handler for this adapter. The returned
// handler includes HTTP-level middleware for X-Request-ID propagation.
func (a *Adapter) Handler() http.Handler {
	return requestIDMiddleware(a.mux)
}

// handleChat handles POST /api/chat.
//
// Failure handling is asymmetric by contract: anything that goes wrong
// before the first SSE event becomes a JSON {"ok":false,...} body with
// a 400/500 status; anything after is an in-stream [ERROR] sentinel
// over the already-committed 200.
func (a *Adapter) handleChat(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, a.config.MaxBodySize)

	var req api.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		transport.WriteError(w, api.NewInvalidRequestError("body", "malformed JSON body: "+err.Error()))
		return
	}

	if apiErr := api.ValidateRequest(&req); apiErr != nil {
		transport.WriteError(w, apiErr)
		return
	}

	sw := newSSEStreamWriter(w)

	err := a.streamer.StreamChat(r.Context(), &req, sw)
	if err == nil {
		return
	}

	if !sw.hasStartedStreaming() {
		transport.WriteError(w, err)
		return
	}

	// The stream already carried its terminal sentinel; nothing more
	// can be sent on a committed response.
	debug.Log("transport", "stream ended with error after commit",
		"request_id", transport.RequestIDFromContext(r.Context()), "error", err.Error())
}

// requestIDMiddleware propagates the X-Request-ID header: an incoming
// value is placed in the context (the transport-level RequestID
// middleware keeps it), and the response echoes whatever ID the request
// ended up with.
func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id := r.Header.Get("X-Request-ID"); id != "" {
			r = r.WithContext(transport.ContextWithRequestID(r.Context(), id))
			w.Header().Set("X-Request-ID", id)
		}
		next.ServeHTTP(w, r)
	})
}
