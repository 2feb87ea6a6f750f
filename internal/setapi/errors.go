package setapi

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthorized indicates the backend rejected the bearer token (401).
	ErrUnauthorized = errors.New("not authorized: sign in again")

	// ErrNotFound indicates the requested set does not exist (404).
	ErrNotFound = errors.New("set not found")
)

// StatusError is returned for any other non-2xx response.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("backend returned HTTP %d", e.StatusCode)
	}
	return fmt.Sprintf("backend returned HTTP %d: %s", e.StatusCode, e.Body)
}

// ErrInvalidResponse indicates the backend returned a payload that does not
// match the expected shape.
type ErrInvalidResponse struct {
	Err error
}

func (e *ErrInvalidResponse) Error() string {
	return fmt.Sprintf("invalid set response: %v", e.Err)
}

func (e *ErrInvalidResponse) Unwrap() error { return e.Err }
