package lib

import (
	"errors"
	"net/http"
)

// Dependency errors
var (
	ErrNotConfigured = errors.New("not configured")
)

// HTTPError is a handler failure that carries the status code it should be
// answered with.
type HTTPError struct {
	Status  int
	Message string
}

func NewHTTPError(status int, message string) *HTTPError {
	if message == "" {
		message = http.StatusText(status)
	}
	return &HTTPError{Status: status, Message: message}
}

func (e *HTTPError) Error() string {
	return e.Message
}

// Demo errors
var (
	ErrTestError = NewHTTPError(http.StatusInternalServerError, "Test error")
)
