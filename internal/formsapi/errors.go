package formsapi

import (
	"errors"
	"fmt"
	"time"
)

// RemoteAPIError is a non-2xx response from the form service. The
// status code and remote message are passed through verbatim.
type RemoteAPIError struct {
	StatusCode int
	Message    string
}

func (e *RemoteAPIError) Error() string {
	return fmt.Sprintf("form service error (status %d): %s", e.StatusCode, e.Message)
}

// RateLimitError is signaled locally, before sending, when the
// one-write-per-second policy would be violated. Always retryable.
type RateLimitError struct {
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("write rate limit exceeded, retry after %s", e.RetryAfter)
}

// IsRetryable reports whether an error is worth retrying: local rate
// limit refusals, remote throttling, and remote server errors.
func IsRetryable(err error) bool {
	var rateErr *RateLimitError
	if errors.As(err, &rateErr) {
		return true
	}
	var remoteErr *RemoteAPIError
	if errors.As(err, &remoteErr) {
		return remoteErr.StatusCode == 429 || remoteErr.StatusCode >= 500
	}
	return false
}
