// Package mock provides a deterministic, credential-free backend that
// exercises the full streaming path without any network calls. It is
// the fallback when no real provider is configured.
package mock

import (
	"context"
	"fmt"
	"time"

	"github.com/airtrek/concierge/pkg/api"
	"github.com/airtrek/concierge/pkg/provider"
)

// Config holds configuration for the mock provider adapter.
type Config struct {
	// TokenDelay is the pause between emitted characters. Zero means
	// no delay, which tests rely on.
	TokenDelay time.Duration
}

// MockProvider implements provider.Provider without a backend.
type MockProvider struct {
	cfg Config
}

var _ provider.Provider = (*MockProvider)(nil)

// New creates a new MockProvider. It cannot fail: the mock is the
// safe default when nothing else is configured.
func New(cfg Config) *MockProvider {
	return &MockProvider{cfg: cfg}
}

// Name returns the provider identifier.
func (p *MockProvider) Name() string {
	return provider.NameMock
}

// Reply builds the canned response for a conversation. Exported so
// tests can assert against the exact expected text.
func Reply(messages []api.ChatMessage) string {
	if last := api.LastUserMessage(messages); last != "" {
		return fmt.Sprintf("You said: %q. This reply comes from the mock backend; configure an OpenAI or Azure OpenAI credential to talk to a real model.", last)
	}
	return "This reply comes from the mock backend; configure an OpenAI or Azure OpenAI credential to talk to a real model."
}

// Stream emits the canned reply one character at a time, with a small
// fixed delay between characters, then completes normally.
func (p *MockProvider) Stream(ctx context.Context, req *provider.Request) (<-chan provider.Event, error) {
	reply := Reply(req.Messages)

	ch := make(chan provider.Event)
	go func() {
		defer close(ch)
		for _, r := range reply {
			select {
			case ch <- provider.Token(string(r)):
			case <-ctx.Done():
				return
			}
			if p.cfg.TokenDelay > 0 {
				select {
				case <-time.After(p.cfg.TokenDelay):
				case <-ctx.Done():
					return
				}
			}
		}
		select {
		case ch <- provider.Done():
		case <-ctx.Done():
		}
	}()
	return ch, nil
}

// Close releases provider resources; the mock has none.
func (p *MockProvider) Close() error {
	return nil
}
