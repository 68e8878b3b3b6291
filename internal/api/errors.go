package api

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrTransport wraps failures where no response was received.
	ErrTransport = errors.New("transport error")

	// ErrInvalidPayload is returned when a response cannot be normalized into records.
	ErrInvalidPayload = errors.New("invalid payload")
)

// Error is a failure reported by the backend through an HTTP error status.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
	}

	return fmt.Sprintf("api error %d", e.StatusCode)
}

// ValidationError is detected locally and never sent to the backend.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

// IsTransport reports whether err means the backend was never reached.
func IsTransport(err error) bool {
	return errors.Is(err, ErrTransport)
}

// IsUnauthorized reports whether the backend rejected the credential.
func IsUnauthorized(err error) bool {
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		return false
	}

	return apiErr.StatusCode == http.StatusUnauthorized || apiErr.StatusCode == http.StatusForbidden
}

// Message normalizes err into the single human-readable string stored in state.
// Backend messages and local validation reasons are shown verbatim; anything else
// (transport failures, malformed payloads, backend errors without a message)
// collapses to fallback.
func Message(err error, fallback string) string {
	if err == nil {
		return ""
	}

	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return validationErr.Reason
	}

	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}

	return fallback
}
