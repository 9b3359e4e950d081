package ollama

import (
	"bufio"
	"context"
	"encoding/json"
	"io"

	"github.com/airtrek/concierge/pkg/debug"
	"github.com/airtrek/concierge/pkg/provider"
)

// parseChatStream reads newline-delimited JSON objects from the given
// reader and sends the incremental content deltas on ch. The channel is
// NOT closed by this function; the caller is responsible for closing it.
//
// Lines are delimited by one or more newlines; a trailing partial line
// is buffered until more data arrives or the stream ends. Lines that do
// not parse as JSON are skipped, which tolerates partial reads across
// buffer boundaries. A line carrying done:true ends the sequence
// immediately, regardless of whether the transport keeps the connection
// open.
func parseChatStream(ctx context.Context, body io.Reader, ch chan<- provider.Event) {
	scanner := bufio.NewScanner(body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var tracker deltaTracker
	for scanner.Scan() {
		if ctx.Err() != nil {
			return
		}

		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var parsed chatLine
		if err := json.Unmarshal(line, &parsed); err != nil {
			debug.Log("streaming", "skipping unparseable line",
				"provider", "ollama", "line", debug.Truncate(string(line), 200))
			continue
		}

		if parsed.Message.Content != "" {
			if delta := tracker.delta(parsed.Message.Content); delta != "" {
				if !send(ctx, ch, provider.Token(delta)) {
					return
				}
			}
		}

		if parsed.Done {
			send(ctx, ch, provider.Done())
			return
		}
	}

	if err := scanner.Err(); err != nil {
		if ctx.Err() != nil {
			return
		}
		send(ctx, ch, provider.Error(err))
		return
	}

	// Upstream closed without a done marker; treat as normal completion.
	send(ctx, ch, provider.Done())
}

// send delivers an event unless the request context is gone.
func send(ctx context.Context, ch chan<- provider.Event, ev provider.Event) bool {
	select {
	case ch <- ev:
		return true
	case <-ctx.Done():
		return false
	}
}
