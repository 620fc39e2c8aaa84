package library

import (
	"errors"
	"net/http"
)

// ErrUnauthorized marks 401/403 responses. Callers treat it as the signal to
// drop the session and re-prompt for login; every other failure is surfaced
// as a plain message.
var ErrUnauthorized = errors.New("unauthorized")

// APIError is a failure the backend reported with a message payload. The
// message is shown to the user verbatim.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string { return e.Message }

func (e *APIError) Unwrap() error {
	if e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden {
		return ErrUnauthorized
	}
	return nil
}
