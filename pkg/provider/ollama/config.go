package ollama

// Config holds configuration for the Ollama provider adapter.
type Config struct {
	// BaseURL is the Ollama server URL (e.g. "http://localhost:11434").
	BaseURL string

	// Model used when the request does not name one.
	Model string
}
