package openai

// Config holds configuration for the OpenAI provider adapter.
type Config struct {
	// APIKey authenticates against the OpenAI API. Required.
	APIKey string

	// BaseURL overrides the API endpoint, for OpenAI-compatible
	// backends (optional).
	BaseURL string

	// Model used when the request does not name one.
	Model string
}
