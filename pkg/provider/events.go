package provider

// EventType classifies a streaming event from the backend.
type EventType int

const (
	EventToken EventType = iota // Incremental text content
	EventDone                   // Stream finished normally
	EventError                  // Stream failed mid-flight
)

// Event is the unit flowing from a provider adapter to the client: a
// text delta, normal completion, or a mid-stream error. Exactly one of
// Token and Err is meaningful, selected by Type.
type Event struct {
	Type  EventType
	Token string
	Err   error
}

// Token wraps a text delta in an Event.
func Token(text string) Event {
	return Event{Type: EventToken, Token: text}
}

// Done marks normal stream completion.
func Done() Event {
	return Event{Type: EventDone}
}

// Error wraps a mid-stream failure in an Event.
func Error(err error) Event {
	return Event{Type: EventError, Err: err}
}
