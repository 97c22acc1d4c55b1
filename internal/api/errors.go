// Rankpulse - SEO and Marketing Analytics Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rankpulse

/*
errors.go - Error to HTTP Status Mapping

Domain packages return sentinel and typed errors; handlers never pick status
codes themselves. respondErr classifies an error with errors.Is/As, in order:

	400  malformed body or query (ErrBadRequest)
	401  auth.ErrInvalidToken, auth.ErrInvalidCredentials
	404  unknown service or table, database.ErrNotFound
	409  auth.ErrEmailTaken, database.ErrDuplicate, database.ErrWriteConflict
	422  request validation, weak password, invalid range, credential errors,
	     no accessible property
	502  provider failures, open circuit breaker
	500  everything else (message hidden, error logged)
*/

//nolint:staticcheck // File documentation, not package doc
package api

import (
	"errors"
	"net/http"

	"github.com/tomtom215/rankpulse/internal/auth"
	"github.com/tomtom215/rankpulse/internal/config"
	"github.com/tomtom215/rankpulse/internal/credentials"
	"github.com/tomtom215/rankpulse/internal/database"
	"github.com/tomtom215/rankpulse/internal/logging"
	"github.com/tomtom215/rankpulse/internal/models"
	"github.com/tomtom215/rankpulse/internal/providers"
	"github.com/tomtom215/rankpulse/internal/validation"
)

var (
	// ErrBadRequest marks request bodies or parameters that cannot be parsed.
	ErrBadRequest = errors.New("bad request")

	// ErrWebhookSecret is returned for alert webhooks with a wrong secret.
	ErrWebhookSecret = errors.New("invalid webhook secret")
)

// errorResponse is the classified form of an error.
type errorResponse struct {
	status  int
	code    string
	message string
	details interface{}
}

// classifyError maps err to its HTTP representation.
func classifyError(err error) errorResponse {
	var (
		verr    *validation.RequestValidationError
		missing *credentials.MissingCredentialError
		invalid *credentials.InvalidCredentialError
		apiErr  *providers.APIError
	)

	switch {
	case errors.As(err, &verr):
		return errorResponse{http.StatusUnprocessableEntity, ErrCodeValidationFailed, verr.Error(), verr.Details()}

	case errors.Is(err, ErrBadRequest):
		return errorResponse{http.StatusBadRequest, ErrCodeBadRequest, err.Error(), nil}

	case errors.Is(err, auth.ErrInvalidToken):
		return errorResponse{http.StatusUnauthorized, ErrCodeUnauthorized, "Unauthorized: invalid or missing token", nil}
	case errors.Is(err, auth.ErrInvalidCredentials), errors.Is(err, ErrWebhookSecret):
		return errorResponse{http.StatusUnauthorized, ErrCodeUnauthorized, err.Error(), nil}

	case errors.Is(err, models.ErrUnknownService), errors.Is(err, models.ErrUnknownTable), errors.Is(err, database.ErrNotFound):
		return errorResponse{http.StatusNotFound, ErrCodeNotFound, err.Error(), nil}

	case errors.Is(err, auth.ErrEmailTaken), errors.Is(err, database.ErrDuplicate), errors.Is(err, database.ErrWriteConflict):
		return errorResponse{http.StatusConflict, ErrCodeConflict, err.Error(), nil}

	case errors.As(err, &missing):
		return errorResponse{http.StatusUnprocessableEntity, ErrCodeMissingCredential, missing.Error(),
			map[string]string{"service": string(missing.Service), "field": missing.Field}}
	case errors.As(err, &invalid):
		return errorResponse{http.StatusUnprocessableEntity, ErrCodeInvalidCredential, invalid.Error(),
			map[string]string{"service": string(invalid.Service), "field": invalid.Field}}
	case errors.Is(err, credentials.ErrEmptyKey):
		return errorResponse{http.StatusUnprocessableEntity, ErrCodeInvalidCredential, err.Error(), nil}
	case errors.Is(err, config.ErrWeakPassword), errors.Is(err, models.ErrInvalidRange):
		return errorResponse{http.StatusUnprocessableEntity, ErrCodeValidationFailed, err.Error(), nil}
	case errors.Is(err, providers.ErrNoAccessibleProperty):
		return errorResponse{http.StatusUnprocessableEntity, ErrCodeNoAccessibleProp, err.Error(), nil}

	case errors.Is(err, providers.ErrCircuitOpen):
		return errorResponse{http.StatusBadGateway, ErrCodeProviderUnavailable, "provider temporarily unavailable: " + err.Error(), nil}
	case errors.As(err, &apiErr):
		return errorResponse{http.StatusBadGateway, ErrCodeUpstreamFailed, err.Error(),
			map[string]int{"upstream_status": apiErr.Status}}
	case errors.Is(err, providers.ErrFetchFailed):
		return errorResponse{http.StatusBadGateway, ErrCodeUpstreamFailed, err.Error(), nil}
	}

	return errorResponse{http.StatusInternalServerError, ErrCodeInternalError, "internal server error", nil}
}

// respondErr writes err as an error envelope.
func respondErr(w http.ResponseWriter, r *http.Request, err error) {
	respondErrWithDetails(w, r, err, nil)
}

// respondErrWithDetails writes err and replaces the classified details when
// details is non-nil.
func respondErrWithDetails(w http.ResponseWriter, r *http.Request, err error, details interface{}) {
	resp := classifyError(err)

	logger := logging.Ctx(r.Context())
	if resp.status >= http.StatusInternalServerError {
		logger.Error().Err(err).Int("status", resp.status).Str("path", r.URL.Path).Msg("Request failed")
	} else {
		logger.Debug().Err(err).Int("status", resp.status).Str("path", r.URL.Path).Msg("Request rejected")
	}

	if details != nil {
		resp.details = details
	}
	NewResponseWriter(w, r).ErrorWithDetails(resp.status, resp.code, resp.message, resp.details)
}
