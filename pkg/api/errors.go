package api

import "fmt"

// ErrorType represents the category of an API error.
type ErrorType string

const (
	// ErrorTypeInvalidRequest covers malformed or out-of-bounds input.
	// These never reach a provider adapter.
	ErrorTypeInvalidRequest ErrorType = "invalid_request"

	// ErrorTypeConfiguration covers missing or inconsistent provider
	// settings (endpoint, deployment, api version, credentials),
	// detected before any stream is opened.
	ErrorTypeConfiguration ErrorType = "configuration_error"

	// ErrorTypeAuth covers credential acquisition failures.
	ErrorTypeAuth ErrorType = "auth_error"

	// ErrorTypeUpstream covers backend failures detectable before
	// streaming begins (non-success status, unreadable body).
	ErrorTypeUpstream ErrorType = "upstream_error"

	// ErrorTypeServer covers everything else.
	ErrorTypeServer ErrorType = "server_error"
)

// APIError is a structured error carrying its taxonomy type. The
// transport layer maps the type to an HTTP status for pre-stream
// failures; mid-stream only the message survives, inside the [ERROR]
// sentinel.
type APIError struct {
	Type    ErrorType `json:"type"`
	Param   string    `json:"param,omitempty"`
	Message string    `json:"message"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Param != "" {
		return fmt.Sprintf("%s: %s (param: %s)", e.Type, e.Message, e.Param)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// NewInvalidRequestError creates an APIError for invalid request input.
func NewInvalidRequestError(param, message string) *APIError {
	return &APIError{Type: ErrorTypeInvalidRequest, Param: param, Message: message}
}

// NewConfigurationError creates an APIError for missing or broken
// provider configuration.
func NewConfigurationError(message string) *APIError {
	return &APIError{Type: ErrorTypeConfiguration, Message: message}
}

// NewAuthError creates an APIError for credential acquisition failures.
func NewAuthError(message string) *APIError {
	return &APIError{Type: ErrorTypeAuth, Message: message}
}

// NewUpstreamError creates an APIError for backend failures seen before
// streaming begins.
func NewUpstreamError(message string) *APIError {
	return &APIError{Type: ErrorTypeUpstream, Message: message}
}

// NewServerError creates an APIError for internal server errors.
func NewServerError(message string) *APIError {
	return &APIError{Type: ErrorTypeServer, Message: message}
}
