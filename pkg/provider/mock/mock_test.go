package mock

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/airtrek/concierge/pkg/api"
	"github.com/airtrek/concierge/pkg/provider"
)

func TestStreamReferencesLastUserMessage(t *testing.T) {
	p := New(Config{})

	ch, err := p.Stream(context.Background(), &provider.Request{
		Messages: []api.ChatMessage{
			{Role: api.RoleSystem, Content: "you are a travel assistant"},
			{Role: api.RoleUser, Content: "hello"},
		},
	})
	if err != nil {
		t.Fatalf("Stream error: %v", err)
	}

	var sb strings.Builder
	var done bool
	for ev := range ch {
		switch ev.Type {
		case provider.EventToken:
			sb.WriteString(ev.Token)
		case provider.EventDone:
			done = true
		case provider.EventError:
			t.Fatalf("unexpected stream error: %v", ev.Err)
		}
	}

	got := sb.String()
	if !strings.Contains(got, `"hello"`) {
		t.Errorf("reply %q does not reference the user message", got)
	}
	if got != Reply([]api.ChatMessage{{Role: api.RoleUser, Content: "hello"}}) {
		t.Errorf("reply is not deterministic: %q", got)
	}
	if !done {
		t.Error("stream did not finish with done")
	}
}

func TestStreamWithoutUserMessage(t *testing.T) {
	p := New(Config{})

	ch, err := p.Stream(context.Background(), &provider.Request{
		Messages: []api.ChatMessage{{Role: api.RoleSystem, Content: "system only"}},
	})
	if err != nil {
		t.Fatalf("Stream error: %v", err)
	}

	var sb strings.Builder
	for ev := range ch {
		if ev.Type == provider.EventToken {
			sb.WriteString(ev.Token)
		}
	}
	if sb.Len() == 0 {
		t.Error("expected a non-empty canned reply")
	}
}

func TestStreamStopsOnCancel(t *testing.T) {
	// A generous delay so the producer is mid-stream when cancelled.
	p := New(Config{TokenDelay: 50 * time.Millisecond})

	ctx, cancel := context.WithCancel(context.Background())
	ch, err := p.Stream(ctx, &provider.Request{
		Messages: []api.ChatMessage{{Role: api.RoleUser, Content: "hello"}},
	})
	if err != nil {
		t.Fatalf("Stream error: %v", err)
	}

	<-ch // first token
	cancel()

	deadline := time.After(2 * time.Second)
	for {
		select {
		case _, ok := <-ch:
			if !ok {
				return // channel closed, producer stopped
			}
		case <-deadline:
			t.Fatal("producer did not stop after cancellation")
		}
	}
}
