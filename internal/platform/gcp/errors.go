package gcp

import (
	"errors"
	"net/http"

	"google.golang.org/api/googleapi"
)

// apiStatus extracts the HTTP status code from a Compute Engine API error,
// or 0 when the error is not an API error.
func apiStatus(err error) int {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return gerr.Code
	}
	return 0
}

// IsNotFound checks if an error indicates a resource was not found.
func IsNotFound(err error) bool {
	return apiStatus(err) == http.StatusNotFound
}

// IsConflict checks if an error indicates a conflict, typically a
// concurrent mutation of the same resource.
func IsConflict(err error) bool {
	return apiStatus(err) == http.StatusConflict
}

// IsRateLimited checks if an error indicates API rate limiting.
func IsRateLimited(err error) bool {
	return apiStatus(err) == http.StatusTooManyRequests
}

// isRetryable classifies transient API failures worth retrying:
// rate limits, conflicts with in-flight operations, and server errors.
func isRetryable(err error) bool {
	switch apiStatus(err) {
	case http.StatusConflict,
		http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}
	return false
}
