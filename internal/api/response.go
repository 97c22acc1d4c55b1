// Rankpulse - SEO and Marketing Analytics Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rankpulse

package api

import (
	"net/http"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/rankpulse/internal/logging"
)

// APIResponse is the envelope of every response. Exactly one of Data and
// Error is set.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
	Error   *APIError   `json:"error"`
	Meta    APIMeta     `json:"meta"`
}

// APIError carries a stable machine-readable Code next to the message.
type APIError struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

type APIMeta struct {
	Timestamp time.Time `json:"timestamp"`
	RequestID string    `json:"request_id,omitempty"`

	// Count is the number of rows in list responses.
	Count *int `json:"count,omitempty"`
}

const (
	ErrCodeBadRequest          = "BAD_REQUEST"
	ErrCodeUnauthorized        = "UNAUTHORIZED"
	ErrCodeNotFound            = "NOT_FOUND"
	ErrCodeMethodNotAllowed    = "METHOD_NOT_ALLOWED"
	ErrCodeConflict            = "CONFLICT"
	ErrCodeTooManyRequests     = "TOO_MANY_REQUESTS"
	ErrCodeValidationFailed    = "VALIDATION_FAILED"
	ErrCodeMissingCredential   = "MISSING_CREDENTIAL"
	ErrCodeInvalidCredential   = "INVALID_CREDENTIAL"
	ErrCodeNoAccessibleProp    = "NO_ACCESSIBLE_PROPERTY"
	ErrCodeUpstreamFailed      = "UPSTREAM_FETCH_FAILED"
	ErrCodeProviderUnavailable = "PROVIDER_UNAVAILABLE"
	ErrCodeInternalError       = "INTERNAL_ERROR"
	ErrCodeServiceUnavailable  = "SERVICE_UNAVAILABLE"
)

// ResponseWriter writes enveloped JSON for one request.
type ResponseWriter struct {
	w http.ResponseWriter
	r *http.Request
}

func NewResponseWriter(w http.ResponseWriter, r *http.Request) *ResponseWriter {
	return &ResponseWriter{w: w, r: r}
}

func (rw *ResponseWriter) Success(data interface{}) {
	rw.send(http.StatusOK, APIResponse{Success: true, Data: data})
}

// SuccessWithCount reports count in meta alongside data.
func (rw *ResponseWriter) SuccessWithCount(data interface{}, count int) {
	rw.send(http.StatusOK, APIResponse{Success: true, Data: data, Meta: APIMeta{Count: &count}})
}

func (rw *ResponseWriter) Created(data interface{}) {
	rw.send(http.StatusCreated, APIResponse{Success: true, Data: data})
}

func (rw *ResponseWriter) Error(status int, code, message string) {
	rw.ErrorWithDetails(status, code, message, nil)
}

func (rw *ResponseWriter) ErrorWithDetails(status int, code, message string, details interface{}) {
	rw.send(status, APIResponse{Error: &APIError{Code: code, Message: message, Details: details}})
}

func (rw *ResponseWriter) NotFound(message string) {
	rw.Error(http.StatusNotFound, ErrCodeNotFound, message)
}

// send stamps meta and encodes resp. Encoding failures can only be logged
// since the status line is already out.
func (rw *ResponseWriter) send(status int, resp APIResponse) {
	resp.Meta.Timestamp = time.Now().UTC()
	resp.Meta.RequestID = logging.RequestIDFromContext(rw.r.Context())

	rw.w.Header().Set("Content-Type", "application/json; charset=utf-8")
	rw.w.WriteHeader(status)
	if err := json.NewEncoder(rw.w).Encode(resp); err != nil {
		logging.Ctx(rw.r.Context()).Error().Err(err).Msg("Failed to encode JSON response")
	}
}

func WriteSuccess(w http.ResponseWriter, r *http.Request, data interface{}) {
	NewResponseWriter(w, r).Success(data)
}

func WriteError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	NewResponseWriter(w, r).Error(status, code, message)
}
