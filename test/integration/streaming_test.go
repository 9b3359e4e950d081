package integration

import (
	"net/http"
	"strings"
	"testing"

	"github.com/airtrek/concierge/pkg/api"
	"github.com/airtrek/concierge/pkg/provider/mock"
)

func TestChatStreamsMockReply(t *testing.T) {
	resp := postJSON(t, testEnv.BaseURL()+"/api/chat", chatRequest("mock", "are flights on time?"))

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d: %s", resp.StatusCode, readBody(t, resp))
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/event-stream") {
		t.Errorf("Content-Type = %q, want text/event-stream", ct)
	}

	stream := parseSSE(t, resp)
	if stream.terminal() != "[DONE]" {
		t.Errorf("terminal = %q, want [DONE]", stream.terminal())
	}

	want := mock.Reply([]api.ChatMessage{{Role: api.RoleUser, Content: "are flights on time?"}})
	if got := stream.text(); got != want {
		t.Errorf("streamed text = %q, want %q", got, want)
	}
}

func TestChatDefaultsToMockWithoutCredentials(t *testing.T) {
	// No provider field and no configured credentials: detection falls
	// through to the mock backend.
	resp := postJSON(t, testEnv.BaseURL()+"/api/chat", chatRequest("", "hello"))

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d: %s", resp.StatusCode, readBody(t, resp))
	}

	stream := parseSSE(t, resp)
	if stream.terminal() != "[DONE]" {
		t.Errorf("terminal = %q, want [DONE]", stream.terminal())
	}
	if !strings.Contains(stream.text(), "mock backend") {
		t.Errorf("text = %q, want the mock self-identification", stream.text())
	}
}

func TestChatStreamsOllamaReply(t *testing.T) {
	resp := postJSON(t, testEnv.BaseURL()+"/api/chat", chatRequest("ollama", "when does the Lisbon flight leave?"))

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d: %s", resp.StatusCode, readBody(t, resp))
	}

	stream := parseSSE(t, resp)
	if stream.terminal() != "[DONE]" {
		t.Errorf("terminal = %q, want [DONE]", stream.terminal())
	}

	// The backend streams cumulative content; the gateway must emit
	// non-overlapping increments that reassemble to the full reply.
	if got := stream.text(); got != ollamaReply {
		t.Errorf("reassembled text = %q, want %q", got, ollamaReply)
	}
	if len(stream.tokens()) < 2 {
		t.Errorf("expected multiple incremental tokens, got %d", len(stream.tokens()))
	}
}

func TestChatOllamaUpstreamFailureIsJSON(t *testing.T) {
	// The fake backend fails before streaming, so the gateway must
	// answer with a JSON error, not a committed SSE stream.
	resp := postJSON(t, testEnv.BaseURL()+"/api/chat", chatRequest("ollama", "please explode"))
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", resp.StatusCode)
	}

	var body api.ErrorBody
	decodeJSON(t, resp, &body)
	if body.OK {
		t.Error("ok should be false")
	}
	if !strings.Contains(body.Error, "model runner has unexpectedly stopped") {
		t.Errorf("error = %q, want upstream detail included", body.Error)
	}
}

func TestChatConversationHistoryForwarded(t *testing.T) {
	body := map[string]any{
		"provider": "mock",
		"messages": []map[string]any{
			{"role": "system", "content": "You are the AirTrek concierge."},
			{"role": "user", "content": "hi"},
			{"role": "assistant", "content": "hello!"},
			{"role": "user", "content": "what gates are open?"},
		},
	}
	resp := postJSON(t, testEnv.BaseURL()+"/api/chat", body)

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d: %s", resp.StatusCode, readBody(t, resp))
	}

	// The mock echoes the last user message, proving the full history
	// reached the backend in order.
	stream := parseSSE(t, resp)
	if !strings.Contains(stream.text(), "what gates are open?") {
		t.Errorf("text = %q, want echo of the last user message", stream.text())
	}
}
