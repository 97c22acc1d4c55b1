// Rankpulse - SEO and Marketing Analytics Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rankpulse

package logging

import (
	"strings"

	"github.com/rs/zerolog"
)

// SecurityLogger writes account and credential events under
// component=security. Emails, ids and secret-bearing values are masked;
// credential values never reach it.
type SecurityLogger struct {
	logger zerolog.Logger
}

func NewSecurityLogger() *SecurityLogger {
	return NewSecurityLoggerWithLogger(Logger())
}

//nolint:gocritic // zerolog.Logger is passed by value
func NewSecurityLoggerWithLogger(logger zerolog.Logger) *SecurityLogger {
	return &SecurityLogger{logger: logger.With().Str("component", "security").Logger()}
}

// event starts an entry: info for successes, warn for failures.
func (l *SecurityLogger) event(name string, ok bool) *zerolog.Event {
	if ok {
		return l.logger.Info().Str("event", name).Str("status", "success")
	}
	return l.logger.Warn().Str("event", name).Str("status", "failed")
}

func (l *SecurityLogger) LogRegistration(userID, email, tenantID, ip string) {
	l.event("user_registered", true).
		Str("user_id", maskEnds(userID, 8)).
		Str("email", SanitizeEmail(email)).
		Str("tenant_id", tenantID).
		Str("ip", ip).
		Msg("security event")
}

func (l *SecurityLogger) LogLoginSuccess(userID, email, tenantID, ip, userAgent string) {
	l.event("login_success", true).
		Str("user_id", maskEnds(userID, 8)).
		Str("email", SanitizeEmail(email)).
		Str("tenant_id", tenantID).
		Str("ip", ip).
		Str("user_agent", truncate(userAgent, 100)).
		Msg("security event")
}

// LogLoginFailure records why a login failed. The reason stays in the log;
// the client always sees the same error.
func (l *SecurityLogger) LogLoginFailure(email, ip, userAgent, reason string) {
	l.event("login_failed", false).
		Str("email", SanitizeEmail(email)).
		Str("ip", ip).
		Str("user_agent", truncate(userAgent, 100)).
		Str("error", SanitizeError(reason)).
		Msg("security event")
}

func (l *SecurityLogger) LogTokenRejected(ip, path, reason string) {
	l.event("token_rejected", false).
		Str("ip", ip).
		Str("path", path).
		Str("error", SanitizeError(reason)).
		Msg("security event")
}

// LogCredentialStored records which key was written, never its value.
func (l *SecurityLogger) LogCredentialStored(tenantID, service, key string) {
	l.event("credential_stored", true).
		Str("tenant_id", tenantID).
		Str("service", service).
		Str("key", key).
		Msg("security event")
}

// secretMarkers flag a key or message as carrying secret material.
var secretMarkers = []string{
	"password", "secret", "token", "private", "bearer",
	"authorization", "service_account", "api_key", "apikey",
}

func looksSecret(s string) bool {
	s = strings.ToLower(s)
	for _, m := range secretMarkers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}

// maskEnds keeps the first and last four bytes of s. Values of short bytes
// or fewer are replaced entirely.
func maskEnds(s string, short int) string {
	switch {
	case s == "":
		return ""
	case len(s) <= short:
		return "***"
	default:
		return s[:4] + "..." + s[len(s)-4:]
	}
}

// SanitizeToken masks a token to its first and last four characters.
//
//	"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9" -> "eyJh...VCJ9"
func SanitizeToken(token string) string {
	return maskEnds(token, 12)
}

// SanitizeEmail keeps two characters of the local part and the domain.
//
//	"john.doe@example.com" -> "jo***@example.com"
func SanitizeEmail(email string) string {
	if email == "" {
		return ""
	}
	at := strings.IndexByte(email, '@')
	if at <= 0 {
		return "***"
	}
	if at <= 2 {
		return "***" + email[at:]
	}
	return email[:2] + "***" + email[at:]
}

// SanitizeError hides messages mentioning secrets and caps the rest at 200 bytes.
func SanitizeError(msg string) string {
	if looksSecret(msg) {
		return "authentication error"
	}
	return truncate(msg, 200)
}

// SanitizeValue masks value when key names a secret, or when value looks
// like an email address.
func SanitizeValue(key, value string) string {
	if looksSecret(key) {
		return SanitizeToken(value)
	}
	if strings.Contains(value, "@") && strings.Contains(value, ".") {
		return SanitizeEmail(value)
	}
	return value
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
