package github

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

var (
	// ErrRepoNotFound indicates the repository does not exist or the token
	// cannot see it. GitHub answers both with 404.
	ErrRepoNotFound = errors.New("github: repository not found")

	// ErrInvalidPayload indicates an event payload could not be decoded.
	ErrInvalidPayload = errors.New("github: invalid event payload")
)

// RateLimitError reports an exhausted primary or secondary rate limit.
type RateLimitError struct {
	ResetAt   time.Time
	Remaining int
	Limit     int
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("github: rate limit exceeded, resets at %s", e.ResetAt.Format(time.RFC3339))
}

// APIError is any other non-2xx GitHub response.
type APIError struct {
	StatusCode int
	Message    string
	URL        string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("github: API error %d: %s (URL: %s)", e.StatusCode, e.Message, e.URL)
}

// statusOf returns the HTTP status carried by err, or 0.
func statusOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

// IsNotFound reports a missing or invisible repository.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrRepoNotFound) || statusOf(err) == http.StatusNotFound
}

// IsRateLimited reports an exhausted rate limit.
func IsRateLimited(err error) bool {
	var rateLimitErr *RateLimitError
	return errors.As(err, &rateLimitErr)
}

// IsUnauthorized reports a token GitHub rejected.
func IsUnauthorized(err error) bool {
	return statusOf(err) == http.StatusUnauthorized
}

// IsForbidden reports a token without access to the repository's issues.
func IsForbidden(err error) bool {
	return statusOf(err) == http.StatusForbidden
}
