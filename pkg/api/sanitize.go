package api

import "strings"

// Sanitize trims whitespace from every message and drops messages whose
// trimmed content is empty. The input slice is not modified. Sanitizing
// an already-sanitized list yields an equal list.
//
// Whether the result is empty is the caller's problem: an all-empty
// conversation is an invalid request, not a sanitizer error.
func Sanitize(messages []ChatMessage) []ChatMessage {
	out := make([]ChatMessage, 0, len(messages))
	for _, m := range messages {
		content := strings.TrimSpace(m.Content)
		if content == "" {
			continue
		}
		out = append(out, ChatMessage{Role: m.Role, Content: content})
	}
	return out
}

// LastUserMessage returns the content of the most recent user turn, or
// an empty string if the conversation has none.
func LastUserMessage(messages []ChatMessage) string {
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == RoleUser {
			return messages[i].Content
		}
	}
	return ""
}
