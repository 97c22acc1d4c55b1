// Rankpulse - SEO and Marketing Analytics Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rankpulse

/*
Package metrics provides Prometheus instrumentation for Rankpulse.

All collectors are registered with the default registry through promauto and
are exposed by the API server at GET /metrics.

# Metric Families

Write path:
  - upsert_rows_total{table,result}: rows inserted or skipped as duplicates
  - upsert_duration_seconds{table}: UpsertRows transaction latency
  - upsert_errors_total{table}: failed UpsertRows calls

Fetch runs:
  - fetch_runs_total{service,status}: success, partial or error
  - fetch_duration_seconds{service}
  - fetch_days_processed_total{service}

Providers:
  - provider_requests_total{service,operation,result}
  - provider_request_duration_seconds{service,operation}
  - provider_rate_limit_wait_seconds{service}
  - circuit_breaker_state{name}: 0=closed, 1=half-open, 2=open
  - circuit_breaker_requests_total{name,result}
  - circuit_breaker_consecutive_failures{name}
  - circuit_breaker_state_transitions_total{name,from_state,to_state}

HTTP API:
  - api_requests_total{method,endpoint,status_code}
  - api_request_duration_seconds{method,endpoint}
  - api_active_requests
  - api_rate_limit_hits_total{endpoint}

# Usage

	start := time.Now()
	result, err := db.UpsertRows(ctx, table, rows)
	metrics.RecordUpsert(string(table), result.Inserted, result.Skipped, time.Since(start), err)

# Example Alerts

	groups:
	  - name: rankpulse
	    rules:
	      - alert: ProviderCircuitOpen
	        expr: circuit_breaker_state == 2
	        for: 5m
	      - alert: FetchErrors
	        expr: rate(fetch_runs_total{status="error"}[15m]) > 0
*/
package metrics
