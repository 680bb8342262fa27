package apicall

import (
	"errors"
	"fmt"
)

// Static error definitions for better error handling.
var (
	// ErrUnauthorized indicates that the server rejected the call with a 401 status.
	ErrUnauthorized = errors.New("unauthorized")
)

// StatusError is returned for responses outside the 2xx range.
// Body holds the decoded JSON error payload exactly as the server sent it,
// so consumers can inspect it without re-parsing.
type StatusError struct {
	// StatusCode is the HTTP status of the failed response.
	StatusCode int
	// Body is the decoded response body, or its raw string form when it was not JSON.
	Body any
	// Unauthorized flags 401 responses for optional session handling.
	Unauthorized bool
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	if e.Unauthorized {
		return fmt.Sprintf("unauthorized: status %d", e.StatusCode)
	}

	if e.Body == nil {
		return fmt.Sprintf("unexpected status %d", e.StatusCode)
	}

	return fmt.Sprintf("unexpected status %d: %v", e.StatusCode, e.Body)
}

// Is makes a StatusError match ErrUnauthorized when its flag is set,
// so errors.Is works across wrapping.
func (e *StatusError) Is(target error) bool {
	return target == ErrUnauthorized && e.Unauthorized
}

// IsUnauthorized reports whether err represents a 401 response.
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}
