package notion

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jomei/notionapi"
)

// ErrUnsupportedProperty indicates a property kind that has no Notion mapping.
var ErrUnsupportedProperty = errors.New("notion: unsupported property kind")

// APIError represents a Notion API error response.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("notion: API error %d (%s): %s", e.Status, e.Code, e.Message)
}

// IsNotFound checks if the error indicates a missing page or database.
func IsNotFound(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status == http.StatusNotFound
	}
	return false
}

// IsUnauthorized checks if the error indicates an invalid token.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status == http.StatusUnauthorized
	}
	return false
}

// IsRateLimited checks if the error indicates Notion rate limiting.
func IsRateLimited(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status == http.StatusTooManyRequests
	}
	return false
}

// wrapError converts notionapi errors to APIError, keeping the operation
// as context.
func wrapError(err error, operation string) error {
	if err == nil {
		return nil
	}

	var notionErr *notionapi.Error
	if errors.As(err, &notionErr) {
		return fmt.Errorf("%s: %w", operation, &APIError{
			Status:  notionErr.Status,
			Code:    string(notionErr.Code),
			Message: notionErr.Message,
		})
	}

	var rateErr *notionapi.RateLimitedError
	if errors.As(err, &rateErr) {
		return fmt.Errorf("%s: %w", operation, &APIError{
			Status:  http.StatusTooManyRequests,
			Code:    "rate_limited",
			Message: rateErr.Message,
		})
	}

	return fmt.Errorf("%s: %w", operation, err)
}
