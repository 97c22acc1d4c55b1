// Rankpulse - SEO and Marketing Analytics Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rankpulse

/*
Package middleware provides the HTTP infrastructure middleware shared by all
routes: request ids, access logging and Prometheus instrumentation.

All middleware has the chi signature func(http.Handler) http.Handler.

Key Components:

  - RequestID: reuses or generates X-Request-ID and stores it, with a new
    correlation id, in the logging context
  - RequestLogger: one structured zerolog line per request
  - PrometheusMetrics: request count, latency and in-flight gauge labelled
    by chi route pattern

Order:

	r.Use(middleware.RequestID)         // ids first so every log line carries them
	r.Use(middleware.RequestLogger)
	r.Use(middleware.PrometheusMetrics)

Authentication lives in the auth package; CORS and rate limiting come from
go-chi/cors and go-chi/httprate and are wired in the api package.
*/
package middleware
