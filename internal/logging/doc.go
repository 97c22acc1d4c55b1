// Rankpulse - SEO and Marketing Analytics Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rankpulse

// Package logging provides centralized zerolog-based structured logging for Rankpulse.
//
// # Overview
//
// The package provides:
//   - Zero-allocation structured logging via zerolog
//   - JSON output format for production, console output for development
//   - Context-aware logging with request, correlation and tenant ID propagation
//   - slog adapter for Suture v4 integration
//   - Security event logging with sensitive data masking
//
// # Quick Start
//
//	logging.Init(logging.Config{
//	    Level:  "info",
//	    Format: "json",
//	})
//
//	logging.Info().Str("service", "gsc").Msg("Fetch started")
//	logging.Ctx(ctx).Warn().Str("table", table).Msg("Empty batch")
//
// # Context Fields
//
// Ctx adds request_id, correlation_id and tenant_id when present in the context.
// The HTTP middleware stores the request id; the auth middleware stores the tenant.
//
// # Sensitive Data
//
// Credential values must never be logged. Use SanitizeValue or SanitizeToken for
// anything derived from a credential, and SecurityLogger for authentication events.
package logging
