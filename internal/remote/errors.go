package remote

import (
	"errors"
	"fmt"
)

// ErrRateLimited indicates the remote rate limit was exceeded
var ErrRateLimited = errors.New("remote rate limit exceeded")

// ErrNotConfigured is returned when no remote backend is configured
var ErrNotConfigured = errors.New("sync is not configured")

// AuthError means no remote identity could be established.
type AuthError struct {
	Err error
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("authentication failed: %v", e.Err)
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// ServerError represents a 5xx error from the remote
type ServerError struct {
	StatusCode int
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("remote server error: HTTP %d", e.StatusCode)
}

// APIError is a non-retryable error response from the remote.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("remote error: HTTP %d", e.StatusCode)
	}
	return fmt.Sprintf("remote error: HTTP %d: %s", e.StatusCode, e.Message)
}

// IsRetryable reports whether err is worth retrying: rate limits and server errors.
func IsRetryable(err error) bool {
	if errors.Is(err, ErrRateLimited) {
		return true
	}
	var serverErr *ServerError
	return errors.As(err, &serverErr)
}

// IsAuthError reports whether err is, or wraps, an AuthError.
func IsAuthError(err error) bool {
	var authErr *AuthError
	return errors.As(err, &authErr)
}
