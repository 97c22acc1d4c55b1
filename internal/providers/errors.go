// Rankpulse - SEO and Marketing Analytics Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rankpulse

package providers

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	gobreaker "github.com/sony/gobreaker/v2"
	"google.golang.org/api/googleapi"

	"github.com/tomtom215/rankpulse/internal/credentials"
)

var (
	// ErrFetchFailed wraps every upstream failure returned by an adapter.
	ErrFetchFailed = errors.New("provider fetch failed")

	// ErrNoAccessibleProperty is returned when the credentials can read no
	// site or property.
	ErrNoAccessibleProperty = errors.New("no accessible property")

	// ErrCircuitOpen is returned while a service's circuit breaker rejects calls.
	ErrCircuitOpen = gobreaker.ErrOpenState
)

// maxErrorBody caps the response body kept in an APIError.
const maxErrorBody = 1024

// APIError is a non-200 response from a provider HTTP API.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API request failed: %d - %s", e.Status, e.Body)
}

// NewAPIError builds an APIError, truncating long bodies.
func NewAPIError(status int, body []byte) *APIError {
	if len(body) > maxErrorBody {
		body = body[:maxErrorBody]
	}
	return &APIError{Status: status, Body: string(body)}
}

// FetchError wraps err in ErrFetchFailed with the failing operation.
func FetchError(operation string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrFetchFailed) {
		return err
	}
	return fmt.Errorf("%w: %s: %w", ErrFetchFailed, operation, err)
}

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	var gErr *googleapi.Error
	if errors.As(err, &gErr) {
		return gErr.Code
	}
	return 0
}

// countsAsFailure decides whether err should move the circuit breaker toward
// open. Only upstream unavailability counts; caller-side mistakes do not.
func countsAsFailure(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) {
		return false
	}
	if errors.Is(err, ErrNoAccessibleProperty) ||
		errors.Is(err, credentials.ErrMissingCredential) ||
		errors.Is(err, credentials.ErrInvalidCredential) {
		return false
	}

	status := StatusCode(err)
	if status >= 400 && status < 500 && status != http.StatusTooManyRequests {
		return false
	}
	return true
}
