// Rankpulse - SEO and Marketing Analytics Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rankpulse

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus instrumentation for:
// - metric row writes (upserts) per table
// - fetch runs per service
// - outbound provider API calls and their circuit breakers
// - API endpoint latency and throughput

var (
	// Write Path Metrics
	UpsertRowsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "upsert_rows_total",
			Help: "Total number of metric rows handed to the write path",
		},
		[]string{"table", "result"}, // result: "inserted", "skipped"
	)

	UpsertDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "upsert_duration_seconds",
			Help:    "Duration of one UpsertRows transaction in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"table"},
	)

	UpsertErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "upsert_errors_total",
			Help: "Total number of failed UpsertRows calls",
		},
		[]string{"table"},
	)

	// Fetch Run Metrics
	FetchRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fetch_runs_total",
			Help: "Total number of fetch runs",
		},
		[]string{"service", "status"}, // status: "success", "partial", "error"
	)

	FetchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "fetch_duration_seconds",
			Help:    "Duration of fetch runs in seconds",
			Buckets: []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120, 300, 600}, // Long ranges take minutes
		},
		[]string{"service"},
	)

	FetchDaysProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fetch_days_processed_total",
			Help: "Total number of dates fetched from providers",
		},
		[]string{"service"},
	)

	// Provider API Metrics
	ProviderRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "provider_requests_total",
			Help: "Total number of outbound provider API requests",
		},
		[]string{"service", "operation", "result"}, // result: "success", "error"
	)

	ProviderRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "provider_request_duration_seconds",
			Help:    "Outbound provider API request duration in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"service", "operation"},
	)

	ProviderRateLimitWait = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "provider_rate_limit_wait_seconds",
			Help:    "Time spent waiting on the outbound rate limiter",
			Buckets: []float64{0.001, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"service"},
	)

	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerConsecutiveFailures = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_consecutive_failures",
			Help: "Current number of consecutive failures",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// Alert Webhook Metrics
	AlertEventsReceived = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "alert_events_received_total",
			Help: "Total number of alert webhook events stored",
		},
		[]string{"alert_type"},
	)

	// System Metrics
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "app_info",
			Help: "Application version and build information",
		},
		[]string{"version", "go_version"},
	)
)

// RecordUpsert records the outcome of one UpsertRows call.
func RecordUpsert(table string, inserted, skipped int, duration time.Duration, err error) {
	UpsertDuration.WithLabelValues(table).Observe(duration.Seconds())
	if err != nil {
		UpsertErrors.WithLabelValues(table).Inc()
		return
	}
	UpsertRowsTotal.WithLabelValues(table, "inserted").Add(float64(inserted))
	UpsertRowsTotal.WithLabelValues(table, "skipped").Add(float64(skipped))
}

// RecordFetchRun records a completed fetch run. partial marks runs where
// some tables failed to persist.
func RecordFetchRun(service string, days int, duration time.Duration, partial bool, err error) {
	FetchDuration.WithLabelValues(service).Observe(duration.Seconds())
	FetchDaysProcessed.WithLabelValues(service).Add(float64(days))

	status := "success"
	switch {
	case err != nil:
		status = "error"
	case partial:
		status = "partial"
	}
	FetchRunsTotal.WithLabelValues(service, status).Inc()
}

// RecordProviderRequest records one outbound provider API call.
func RecordProviderRequest(service, operation string, duration time.Duration, err error) {
	result := "success"
	if err != nil {
		result = "error"
	}
	ProviderRequestsTotal.WithLabelValues(service, operation, result).Inc()
	ProviderRequestDuration.WithLabelValues(service, operation).Observe(duration.Seconds())
}

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}
