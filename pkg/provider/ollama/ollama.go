// Package ollama adapts a local Ollama server's chat stream to the
// provider contract. Unlike the SDK-backed adapters it speaks the wire
// protocol directly: one POST to /api/chat, newline-delimited JSON
// back, with CUMULATIVE message content that is diffed into
// incremental tokens here.
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/airtrek/concierge/pkg/api"
	"github.com/airtrek/concierge/pkg/debug"
	"github.com/airtrek/concierge/pkg/provider"
)

// OllamaProvider implements provider.Provider against an Ollama server.
type OllamaProvider struct {
	cfg    Config
	client *http.Client
}

var _ provider.Provider = (*OllamaProvider)(nil)

// chatRequest is the Ollama /api/chat request body.
type chatRequest struct {
	Model    string         `json:"model"`
	Messages []chatMessage  `json:"messages"`
	Stream   bool           `json:"stream"`
	Options  map[string]any `json:"options,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatLine is one newline-delimited JSON object of the chat stream.
// Message.Content is cumulative; Done ends the stream immediately,
// independent of the transport's own end-of-stream signal.
type chatLine struct {
	Message struct {
		Content string `json:"content"`
	} `json:"message"`
	Done bool `json:"done"`
}

// New creates a new OllamaProvider. A missing base URL is a
// configuration error.
func New(cfg Config) (*OllamaProvider, error) {
	if cfg.BaseURL == "" {
		return nil, api.NewConfigurationError("ollama: base url is not set")
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.Model == "" {
		cfg.Model = "llama3.2"
	}

	// No client timeout: a stream can legitimately outlast any fixed
	// deadline. The request context governs the call's lifetime.
	return &OllamaProvider{
		cfg:    cfg,
		client: &http.Client{},
	}, nil
}

// Name returns the provider identifier.
func (p *OllamaProvider) Name() string {
	return provider.NameOllama
}

// Stream issues one streaming chat call. A non-success upstream status
// is detected here, before the stream is handed back, and surfaces as a
// pre-stream error.
func (p *OllamaProvider) Stream(ctx context.Context, req *provider.Request) (<-chan provider.Event, error) {
	model := req.Model
	if model == "" {
		model = p.cfg.Model
	}

	body := chatRequest{
		Model:    model,
		Messages: make([]chatMessage, len(req.Messages)),
		Stream:   true,
	}
	for i, m := range req.Messages {
		body.Messages[i] = chatMessage{Role: m.Role, Content: m.Content}
	}
	if req.Temperature != nil {
		body.Options = map[string]any{"temperature": *req.Temperature}
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, api.NewServerError("ollama: marshaling request: " + err.Error())
	}

	url := p.cfg.BaseURL + "/api/chat"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, api.NewServerError("ollama: building request: " + err.Error())
	}
	httpReq.Header.Set("Content-Type", "application/json")

	debug.Log("providers", "opening stream", "provider", p.Name(), "model", model, "url", url)

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, api.NewUpstreamError("ollama: " + err.Error())
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail := readErrorBody(resp.Body)
		resp.Body.Close()
		return nil, api.NewUpstreamError(
			fmt.Sprintf("ollama: upstream status %d: %s", resp.StatusCode, detail))
	}

	ch := make(chan provider.Event)
	go func() {
		defer close(ch)
		defer resp.Body.Close()
		parseChatStream(ctx, resp.Body, ch)
	}()
	return ch, nil
}

// Close releases provider resources.
func (p *OllamaProvider) Close() error {
	p.client.CloseIdleConnections()
	return nil
}

// readErrorBody extracts a short error description from a failed
// upstream response.
func readErrorBody(r io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(r, 4096))
	if err != nil || len(bytes.TrimSpace(data)) == 0 {
		return "no response body"
	}

	// Ollama error bodies are {"error": "..."} when JSON at all.
	var parsed struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(data, &parsed) == nil && parsed.Error != "" {
		return parsed.Error
	}
	return debug.Truncate(string(bytes.TrimSpace(data)), 200)
}
