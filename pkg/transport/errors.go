package transport

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/airtrek/concierge/pkg/api"
)

// HTTPStatusFromError maps an error to the HTTP status for a pre-stream
// failure. Invalid input is the caller's fault (400); configuration,
// auth, upstream, and everything else is ours (500).
func HTTPStatusFromError(err error) int {
	var apiErr *api.APIError
	if errors.As(err, &apiErr) && apiErr.Type == api.ErrorTypeInvalidRequest {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// WriteErrorResponse writes the JSON error body {"ok":false,"error":...}
// with the given status code. Only valid before the stream is committed.
func WriteErrorResponse(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(api.ErrorBody{OK: false, Error: message})
}

// WriteError writes an error response, deriving the HTTP status from
// the error's taxonomy type.
func WriteError(w http.ResponseWriter, err error) {
	var apiErr *api.APIError
	if errors.As(err, &apiErr) {
		WriteErrorResponse(w, apiErr.Message, HTTPStatusFromError(err))
		return
	}
	WriteErrorResponse(w, err.Error(), http.StatusInternalServerError)
}
