package api

import (
	"errors"
	"fmt"
)

// AuthError marks an authentication failure: the bearer token is missing,
// expired, or rejected by the backend. Callers branch on it with
// errors.As; the Monitor converts it into the session-expiry flow.
type AuthError struct {
	Status  int
	Message string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("authentication failed (status %d): %s", e.Status, e.Message)
}

// APIError is any other non-2xx response.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (status %d): %s", e.Status, e.Message)
}

// IsAuthError reports whether err wraps an AuthError.
func IsAuthError(err error) bool {
	var ae *AuthError
	return errors.As(err, &ae)
}
