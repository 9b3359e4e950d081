package openaicompat

import (
	"context"
	"errors"
	"io"

	ai "github.com/sashabaranov/go-openai"

	"github.com/airtrek/concierge/pkg/debug"
	"github.com/airtrek/concierge/pkg/provider"
)

// Forward pumps an open SDK stream into the event channel. Each chunk's
// first-choice content delta becomes one token event; io.EOF (the SDK's
// translation of the [DONE] sentinel) becomes a done event; any other
// receive error becomes an error event. The channel is NOT closed by
// this function; the caller is responsible for closing it.
func Forward(ctx context.Context, name string, stream *ai.ChatCompletionStream, ch chan<- provider.Event) {
	for {
		resp, err := stream.Recv()
		if err != nil {
			if errors.Is(err, io.EOF) {
				send(ctx, ch, provider.Done())
				return
			}
			// Client gone: nobody is reading, stop quietly.
			if ctx.Err() != nil {
				return
			}
			send(ctx, ch, provider.Error(err))
			return
		}

		if len(resp.Choices) == 0 {
			continue
		}

		if delta := resp.Choices[0].Delta.Content; delta != "" {
			debug.Trace("streaming", "chunk", "provider", name, "delta", delta)
			if !send(ctx, ch, provider.Token(delta)) {
				return
			}
		}
	}
}

// send delivers an event unless the request context is gone. Returns
// false when the context was cancelled before the event was accepted.
func send(ctx context.Context, ch chan<- provider.Event, ev provider.Event) bool {
	select {
	case ch <- ev:
		return true
	case <-ctx.Done():
		return false
	}
}
