// Package openai adapts the OpenAI Chat Completions streaming API to
// the provider contract.
package openai

import (
	"context"

	ai "github.com/sashabaranov/go-openai"

	"github.com/airtrek/concierge/pkg/api"
	"github.com/airtrek/concierge/pkg/debug"
	"github.com/airtrek/concierge/pkg/provider"
	"github.com/airtrek/concierge/pkg/provider/openaicompat"
)

// OpenAIProvider implements provider.Provider against the OpenAI API.
type OpenAIProvider struct {
	cfg    Config
	client *ai.Client
}

var _ provider.Provider = (*OpenAIProvider)(nil)

// New creates a new OpenAIProvider. A missing API key is a
// configuration error, detected before any stream is opened.
func New(cfg Config) (*OpenAIProvider, error) {
	if cfg.APIKey == "" {
		return nil, api.NewConfigurationError("openai: api key is not set")
	}
	if cfg.Model == "" {
		cfg.Model = "gpt-4o-mini"
	}

	clientCfg := ai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	return &OpenAIProvider{
		cfg:    cfg,
		client: ai.NewClientWithConfig(clientCfg),
	}, nil
}

// Name returns the provider identifier.
func (p *OpenAIProvider) Name() string {
	return provider.NameOpenAI
}

// Stream opens one streaming completion call. A failure to open the
// stream is returned directly (pre-stream); once the stream is open,
// errors travel as events.
func (p *OpenAIProvider) Stream(ctx context.Context, req *provider.Request) (<-chan provider.Event, error) {
	model := req.Model
	if model == "" {
		model = p.cfg.Model
	}

	debug.Log("providers", "opening stream", "provider", p.Name(), "model", model)

	stream, err := p.client.CreateChatCompletionStream(ctx, openaicompat.ChatRequest(model, req))
	if err != nil {
		return nil, api.NewUpstreamError("openai: opening stream: " + err.Error())
	}

	ch := make(chan provider.Event)
	go func() {
		defer close(ch)
		defer stream.Close()
		openaicompat.Forward(ctx, p.Name(), stream, ch)
	}()
	return ch, nil
}

// Close releases provider resources. The SDK client holds no
// connections of its own beyond the shared transport.
func (p *OpenAIProvider) Close() error {
	return nil
}
