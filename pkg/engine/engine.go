package engine

import (
	"context"
	"log/slog"
	"time"

	"github.com/airtrek/concierge/pkg/api"
	"github.com/airtrek/concierge/pkg/config"
	"github.com/airtrek/concierge/pkg/debug"
	"github.com/airtrek/concierge/pkg/observability"
	"github.com/airtrek/concierge/pkg/provider"
	"github.com/airtrek/concierge/pkg/transport"
)

// ProviderFactory builds a provider backend by name. Engines construct
// a fresh backend per request so that configuration changes and token
// refreshes take effect without restart.
type ProviderFactory func(ctx context.Context, name string, providers config.ProvidersConfig) (provider.Provider, error)

// Engine routes chat requests to LLM provider backends and streams the
// reply back through a transport.StreamWriter.
//
// Error flow is split in two: anything that fails before the provider
// stream is established is returned as an error and never touches the
// writer; once the stream exists, failures go to the writer as an
// in-stream error event.
type Engine struct {
	config  config.Config
	logger  *slog.Logger
	factory ProviderFactory
}

var _ transport.ChatStreamer = (*Engine)(nil)

// Option configures an Engine.
type Option func(*Engine)

// WithFactory replaces the default provider factory. Used in tests.
func WithFactory(f ProviderFactory) Option {
	return func(e *Engine) { e.factory = f }
}

// New creates an Engine with the given configuration.
func New(cfg config.Config, logger *slog.Logger, opts ...Option) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	e := &Engine{
		config:  cfg,
		logger:  logger,
		factory: newProvider,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// StreamChat implements transport.ChatStreamer. It sanitizes the
// conversation, resolves the backend, and pipes the provider's token
// stream to the writer, ending with exactly one terminal event.
func (e *Engine) StreamChat(ctx context.Context, req *api.ChatRequest, w transport.StreamWriter) error {
	messages := api.Sanitize(req.Messages)
	if len(messages) == 0 {
		return api.NewInvalidRequestError("messages", "messages must contain at least one non-empty message")
	}

	name, apiErr := provider.Detect(req.Provider, e.config.Providers)
	if apiErr != nil {
		return apiErr
	}
	debug.Log("streaming", "provider resolved",
		"provider", name, "explicit", req.Provider != "", "messages", len(messages))

	prov, err := e.factory(ctx, name, e.config.Providers)
	if err != nil {
		return err
	}
	defer prov.Close()

	preq := &provider.Request{
		Model:       req.Model,
		Messages:    messages,
		Temperature: req.Temperature,
	}

	start := time.Now()
	events, err := prov.Stream(ctx, preq)
	if err != nil {
		observability.ObserveProviderStream(name, "error", 0, time.Since(start).Seconds())
		return err
	}

	return e.forward(ctx, name, start, events, w)
}

// forward drains the provider event stream into the writer. The request
// context cancels on client disconnect, which unblocks the producer, so
// an early return here never strands the provider goroutine.
func (e *Engine) forward(ctx context.Context, name string, start time.Time, events <-chan provider.Event, w transport.StreamWriter) error {
	tokens := 0
	for ev := range events {
		switch ev.Type {
		case provider.EventToken:
			tokens++
			if err := w.WriteToken(ctx, ev.Token); err != nil {
				observability.ObserveProviderStream(name, "client_gone", tokens, time.Since(start).Seconds())
				return err
			}
		case provider.EventDone:
			observability.ObserveProviderStream(name, "ok", tokens, time.Since(start).Seconds())
			return w.WriteDone(ctx)
		case provider.EventError:
			observability.ObserveProviderStream(name, "error", tokens, time.Since(start).Seconds())
			e.logger.Error("provider stream failed",
				slog.String("provider", name), slog.String("error", ev.Err.Error()))
			if werr := w.WriteError(ctx, ev.Err); werr != nil {
				return werr
			}
			return ev.Err
		}
	}

	// A well-behaved provider always ends with Done or Error before
	// closing its channel. Treat a bare close as completion.
	observability.ObserveProviderStream(name, "ok", tokens, time.Since(start).Seconds())
	return w.WriteDone(ctx)
}
