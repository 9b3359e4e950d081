// Package integration provides integration tests for the concierge API.
//
// Tests run against a real concierge HTTP server backed by a fake
// Ollama server, both started in-process using net/http/httptest.
package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/airtrek/concierge/pkg/config"
	"github.com/airtrek/concierge/pkg/engine"
	"github.com/airtrek/concierge/pkg/observability"
	"github.com/airtrek/concierge/pkg/transport"
	transporthttp "github.com/airtrek/concierge/pkg/transport/http"
)

// testEnv holds the shared servers for all integration tests.
var testEnv *TestEnvironment

// TestEnvironment holds the concierge server and fake Ollama backend.
type TestEnvironment struct {
	ConciergeServer *httptest.Server
	OllamaBackend   *httptest.Server
}

// TestMain starts the fake backend and concierge server before running tests.
func TestMain(m *testing.M) {
	testEnv = setupTestEnvironment()
	code := m.Run()
	testEnv.Teardown()
	os.Exit(code)
}

// setupTestEnvironment creates a fake Ollama server and a concierge
// gateway wired to it. The provider configuration leaves detection in
// its default state so that tests can exercise both the mock fallback
// and explicit provider selection.
func setupTestEnvironment() *TestEnvironment {
	ollamaBackend := startOllamaBackend()

	cfg := config.Defaults()
	cfg.Providers.Ollama.BaseURL = ollamaBackend.URL
	cfg.Providers.Mock.TokenDelay = 0

	eng := engine.New(cfg, nil)

	adapter := transporthttp.NewAdapter(eng,
		transporthttp.Config{MaxBodySize: cfg.Server.MaxBodySize},
		transport.Recovery(), transport.RequestID())

	// Mux matching the production layout.
	mux := http.NewServeMux()
	mux.Handle("/api/", adapter.Handler())
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, `{"status":"ok"}`)
	})
	mux.Handle("GET /metrics", promhttp.Handler())

	conciergeServer := httptest.NewServer(observability.MetricsMiddleware(mux))

	return &TestEnvironment{
		ConciergeServer: conciergeServer,
		OllamaBackend:   ollamaBackend,
	}
}

// Teardown stops both servers.
func (env *TestEnvironment) Teardown() {
	if env.ConciergeServer != nil {
		env.ConciergeServer.Close()
	}
	if env.OllamaBackend != nil {
		env.OllamaBackend.Close()
	}
}

// BaseURL returns the concierge server base URL.
func (env *TestEnvironment) BaseURL() string {
	return env.ConciergeServer.URL
}

// --- HTTP helpers ---

// postJSON sends a POST request with JSON body and returns the response.
func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshaling request: %v", err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(data))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	return resp
}

// getURL sends a GET request and returns the response.
func getURL(t *testing.T, url string) *http.Response {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	return resp
}

// readBody reads and returns the response body as a string.
func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("reading response body: %v", err)
	}
	return string(body)
}

// decodeJSON reads the response body and decodes it into the target.
func decodeJSON(t *testing.T, resp *http.Response, target any) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		t.Fatalf("decoding JSON: %v", err)
	}
}

// chatRequest builds a minimal single-user-message chat request body.
func chatRequest(provider, content string) map[string]any {
	body := map[string]any{
		"messages": []map[string]any{
			{"role": "user", "content": content},
		},
	}
	if provider != "" {
		body["provider"] = provider
	}
	return body
}

// --- Fake Ollama backend ---

// ollamaReply is what the fake backend answers with, streamed as
// cumulative NDJSON lines the way real Ollama servers do.
const ollamaReply = "The flight to Lisbon departs at 14:05."

// startOllamaBackend creates an httptest server that mimics the native
// Ollama /api/chat protocol with cumulative message content.
func startOllamaBackend() *httptest.Server {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/chat", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Model    string `json:"model"`
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
			Stream bool `json:"stream"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			fmt.Fprintln(w, `{"error":"invalid request"}`)
			return
		}

		last := ""
		for i := len(req.Messages) - 1; i >= 0; i-- {
			if req.Messages[i].Role == "user" {
				last = req.Messages[i].Content
				break
			}
		}
		if strings.Contains(strings.ToLower(last), "explode") {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusInternalServerError)
			fmt.Fprintln(w, `{"error":"model runner has unexpectedly stopped"}`)
			return
		}

		flusher := w.(http.Flusher)
		w.Header().Set("Content-Type", "application/x-ndjson")

		enc := json.NewEncoder(w)
		cumulative := ""
		for _, word := range strings.SplitAfter(ollamaReply, " ") {
			cumulative += word
			enc.Encode(map[string]any{
				"model":   req.Model,
				"message": map[string]any{"role": "assistant", "content": cumulative},
				"done":    false,
			})
			flusher.Flush()
			time.Sleep(time.Millisecond)
		}
		enc.Encode(map[string]any{
			"model":   req.Model,
			"message": map[string]any{"role": "assistant", "content": cumulative},
			"done":    true,
		})
		flusher.Flush()
	})

	return httptest.NewServer(mux)
}

// --- SSE parsing helpers ---

// sseStream is a parsed SSE response: the data payloads in order.
type sseStream struct {
	payloads []string
}

// tokens returns all payloads before the terminal sentinel.
func (s *sseStream) tokens() []string {
	for i, p := range s.payloads {
		if p == "[DONE]" || strings.HasPrefix(p, "[ERROR]") {
			return s.payloads[:i]
		}
	}
	return s.payloads
}

// terminal returns the last payload, which should be a sentinel.
func (s *sseStream) terminal() string {
	if len(s.payloads) == 0 {
		return ""
	}
	return s.payloads[len(s.payloads)-1]
}

// text returns the concatenation of all token payloads.
func (s *sseStream) text() string {
	return strings.Join(s.tokens(), "")
}

// parseSSE reads "data: ..." frames from an HTTP response until EOF.
func parseSSE(t *testing.T, resp *http.Response) *sseStream {
	t.Helper()
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("reading SSE body: %v", err)
	}

	stream := &sseStream{}
	for _, frame := range strings.Split(string(body), "\n\n") {
		if frame == "" {
			continue
		}
		if !strings.HasPrefix(frame, "data: ") {
			t.Fatalf("malformed SSE frame: %q", frame)
		}
		stream.payloads = append(stream.payloads, strings.TrimPrefix(frame, "data: "))
	}
	return stream
}
