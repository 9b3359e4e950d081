package api

import "fmt"

// MaxMessages is the largest conversation the endpoint accepts.
const MaxMessages = 64

// ValidateRequest checks a ChatRequest for validity before it is handed
// to the engine. It returns an *APIError describing the first failure,
// or nil if the request is valid.
//
// Emptiness after sanitization is checked separately by the engine,
// once the sanitizer has run.
func ValidateRequest(req *ChatRequest) *APIError {
	if len(req.Messages) == 0 {
		return NewInvalidRequestError("messages", "messages must contain at least one item")
	}

	if len(req.Messages) > MaxMessages {
		return NewInvalidRequestError("messages",
			fmt.Sprintf("messages exceeds the limit of %d items", MaxMessages))
	}

	for i, m := range req.Messages {
		switch m.Role {
		case RoleSystem, RoleUser, RoleAssistant:
		default:
			return NewInvalidRequestError("messages",
				fmt.Sprintf("message %d has invalid role %q", i, m.Role))
		}
	}

	if req.Temperature != nil && (*req.Temperature < 0.0 || *req.Temperature > 2.0) {
		return NewInvalidRequestError("temperature", "temperature must be between 0.0 and 2.0")
	}

	return nil
}
