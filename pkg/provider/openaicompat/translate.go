package openaicompat

import (
	ai "github.com/sashabaranov/go-openai"

	"github.com/airtrek/concierge/pkg/provider"
)

// ChatRequest translates a provider request into an SDK streaming
// Chat Completions request for the given model (or deployment) name.
func ChatRequest(model string, req *provider.Request) ai.ChatCompletionRequest {
	messages := make([]ai.ChatCompletionMessage, len(req.Messages))
	for i, m := range req.Messages {
		messages[i] = ai.ChatCompletionMessage{
			Role:    m.Role,
			Content: m.Content,
		}
	}

	ccr := ai.ChatCompletionRequest{
		Model:    model,
		Messages: messages,
		Stream:   true,
	}
	if req.Temperature != nil {
		ccr.Temperature = float32(*req.Temperature)
	}
	return ccr
}
