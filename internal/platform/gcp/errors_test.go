package gcp

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"google.golang.org/api/googleapi"
)

func apiError(code int) error {
	return &googleapi.Error{Code: code, Message: http.StatusText(code)}
}

func TestIsNotFound(t *testing.T) {
	t.Parallel()
	if !IsNotFound(apiError(http.StatusNotFound)) {
		t.Error("404 should be not-found")
	}
	if IsNotFound(apiError(http.StatusForbidden)) {
		t.Error("403 should not be not-found")
	}
	if IsNotFound(errors.New("plain")) {
		t.Error("plain error should not be not-found")
	}
	if IsNotFound(nil) {
		t.Error("nil should not be not-found")
	}
}

func TestIsNotFound_Wrapped(t *testing.T) {
	t.Parallel()
	wrapped := fmt.Errorf("failed to get instance: %w", apiError(http.StatusNotFound))
	if !IsNotFound(wrapped) {
		t.Error("wrapped 404 should be not-found")
	}
}

func TestIsConflict(t *testing.T) {
	t.Parallel()
	if !IsConflict(apiError(http.StatusConflict)) {
		t.Error("409 should be conflict")
	}
	if IsConflict(apiError(http.StatusNotFound)) {
		t.Error("404 should not be conflict")
	}
}

func TestIsRateLimited(t *testing.T) {
	t.Parallel()
	if !IsRateLimited(apiError(http.StatusTooManyRequests)) {
		t.Error("429 should be rate-limited")
	}
}

func TestIsRetryable(t *testing.T) {
	t.Parallel()
	retryable := []int{
		http.StatusConflict,
		http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout,
	}
	for _, code := range retryable {
		if !isRetryable(apiError(code)) {
			t.Errorf("%d should be retryable", code)
		}
	}

	fatal := []int{http.StatusBadRequest, http.StatusForbidden, http.StatusNotFound}
	for _, code := range fatal {
		if isRetryable(apiError(code)) {
			t.Errorf("%d should not be retryable", code)
		}
	}

	if isRetryable(errors.New("plain")) {
		t.Error("non-API error should not be retryable")
	}
}
