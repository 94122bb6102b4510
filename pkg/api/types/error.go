package types

import (
	"encoding/json"
	"net/http"
)

// Error code constants used as the "error" discriminator.
const (
	// ErrInvalidParameters indicates the client passed a query parameter
	// the API cannot honor (400).
	ErrInvalidParameters = "invalid_parameters"

	// ErrHTTPFailed indicates the upstream request failed (500).
	ErrHTTPFailed = "http_failed"

	// ErrJSONParseFailed indicates the upstream response was not valid
	// JSON (500).
	ErrJSONParseFailed = "json_parse_failed"

	// ErrFeedParseFailed indicates an event description did not parse (500).
	ErrFeedParseFailed = "feed_parse_failed"

	// ErrInternal indicates an unexpected internal error (500).
	ErrInternal = "internal_error"

	// ErrTimeout indicates the request exceeded the server's time budget (504).
	ErrTimeout = "request_timeout"
)

// InvalidParameter names one rejected query parameter and why.
type InvalidParameter struct {
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

// UseError is the response body for client errors (400).
type UseError struct {
	Error      string             `json:"error"`
	Parameters []InvalidParameter `json:"parameters"`
}

// ServerError is the response body for server-side failures.
type ServerError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// NewInvalidParameters creates a 400 response body for the given parameters.
func NewInvalidParameters(parameters []InvalidParameter) *UseError {
	return &UseError{
		Error:      ErrInvalidParameters,
		Parameters: parameters,
	}
}

// NewServerError creates a server error body with the given code and message.
func NewServerError(code, message string) *ServerError {
	return &ServerError{
		Error:   code,
		Message: message,
	}
}

// HTTPStatusCode returns the status code a ServerError is served with.
func (e *ServerError) HTTPStatusCode() int {
	if e.Error == ErrTimeout {
		return http.StatusGatewayTimeout
	}
	return http.StatusInternalServerError
}

// WriteJSON writes body as a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
