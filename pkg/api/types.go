package api

// Message roles accepted on the chat endpoint.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatMessage is one turn of the conversation. Order is conversation
// order and is semantically significant: the full slice is the model's
// context window.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is the body of POST /api/chat.
//
// Provider, when set, names the backend explicitly (openai, azure,
// ollama, mock) and overrides auto-detection. Model and Temperature are
// passed through to the backend; when absent the provider's configured
// defaults apply.
type ChatRequest struct {
	Messages    []ChatMessage `json:"messages"`
	Provider    string        `json:"provider,omitempty"`
	Model       string        `json:"model,omitempty"`
	Temperature *float64      `json:"temperature,omitempty"`
}

// ErrorBody is the JSON error response written before any streaming has
// started. Once the SSE stream is committed, errors travel as in-stream
// sentinel events instead.
type ErrorBody struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}
