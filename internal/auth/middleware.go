// Rankpulse - SEO and Marketing Analytics Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rankpulse

package auth

import (
	"context"
	"net"
	"net/http"
	"strings"

	"github.com/tomtom215/rankpulse/internal/logging"
)

type contextKey string

// ClaimsContextKey holds the validated *Claims of a request.
const ClaimsContextKey contextKey = "claims"

// ErrorWriter renders an authentication failure.
type ErrorWriter func(w http.ResponseWriter, r *http.Request, err error)

// Middleware authenticates tenant bearer tokens.
type Middleware struct {
	jwtManager *JWTManager
	security   *logging.SecurityLogger
	onError    ErrorWriter
}

// NewMiddleware creates the middleware. A nil onError falls back to a plain
// 401 response.
func NewMiddleware(jwtManager *JWTManager, onError ErrorWriter) *Middleware {
	if onError == nil {
		onError = func(w http.ResponseWriter, _ *http.Request, _ error) {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
		}
	}
	return &Middleware{
		jwtManager: jwtManager,
		security:   logging.NewSecurityLogger(),
		onError:    onError,
	}
}

// Authenticate rejects requests without a valid bearer token. Accepted
// requests carry the claims and the tenant id in their context.
func (m *Middleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, err := extractBearerToken(r)
		if err != nil {
			m.security.LogTokenRejected(clientIP(r), r.URL.Path, err.Error())
			m.onError(w, r, err)
			return
		}

		claims, err := m.jwtManager.ValidateToken(token)
		if err != nil {
			m.security.LogTokenRejected(clientIP(r), r.URL.Path, err.Error())
			m.onError(w, r, err)
			return
		}

		ctx := context.WithValue(r.Context(), ClaimsContextKey, claims)
		ctx = logging.ContextWithTenantID(ctx, claims.TenantID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ClaimsFromContext returns the claims stored by Authenticate.
func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(ClaimsContextKey).(*Claims)
	return claims, ok && claims != nil
}

// TenantFromContext returns the authenticated tenant id, or "".
func TenantFromContext(ctx context.Context) string {
	if claims, ok := ClaimsFromContext(ctx); ok {
		return claims.TenantID
	}
	return ""
}

// extractBearerToken reads the token from the Authorization header.
func extractBearerToken(r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", errMissingToken
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", errMalformedHeader
	}
	return strings.TrimSpace(parts[1]), nil
}

// clientIP returns the remote host without port.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
