package errors

import (
	"encoding/json"
	"errors"
	"net/http"
)

// HTTPError represents an error with an associated HTTP status code and an
// optional machine-readable code for the response envelope.
type HTTPError struct {
	Status  int    `json:"-"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTPError with the given status and message.
func NewHTTPError(status int, message string) *HTTPError {
	return &HTTPError{Status: status, Message: message}
}

// WithCode attaches a machine-readable code (e.g. "auth/weak-password").
func (e *HTTPError) WithCode(code string) *HTTPError {
	e.Code = code
	return e
}

// Helpers for common errors
var (
	BadRequest   = func(msg string) *HTTPError { return NewHTTPError(http.StatusBadRequest, msg) }
	Unauthorized = func(msg string) *HTTPError { return NewHTTPError(http.StatusUnauthorized, msg) }
	Forbidden    = func(msg string) *HTTPError { return NewHTTPError(http.StatusForbidden, msg) }
	NotFound     = func(msg string) *HTTPError { return NewHTTPError(http.StatusNotFound, msg) }
	Conflict     = func(msg string) *HTTPError { return NewHTTPError(http.StatusConflict, msg) }
	Internal     = func(msg string) *HTTPError { return NewHTTPError(http.StatusInternalServerError, msg) }
)

// WriteJSON writes err as the JSON error envelope {code?, message}. Unknown
// error types become a generic 500 so internals never leak to the caller.
func WriteJSON(w http.ResponseWriter, err error) {
	var httpErr *HTTPError
	if !errors.As(err, &httpErr) {
		httpErr = Internal("Error interno del servidor.")
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(httpErr.Status)
	json.NewEncoder(w).Encode(httpErr)
}
