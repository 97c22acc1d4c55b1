// Rankpulse - SEO and Marketing Analytics Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rankpulse

package metrics

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	io_prometheus_client "github.com/prometheus/client_model/go"
)

// TestRecordUpsert tests write path metric recording
func TestRecordUpsert(t *testing.T) {
	table := "test_upsert_table"

	beforeInserted := testutil.ToFloat64(UpsertRowsTotal.WithLabelValues(table, "inserted"))
	beforeSkipped := testutil.ToFloat64(UpsertRowsTotal.WithLabelValues(table, "skipped"))
	beforeErrors := testutil.ToFloat64(UpsertErrors.WithLabelValues(table))

	RecordUpsert(table, 7, 3, 15*time.Millisecond, nil)
	RecordUpsert(table, 0, 0, time.Millisecond, errors.New("write conflict"))

	if got := testutil.ToFloat64(UpsertRowsTotal.WithLabelValues(table, "inserted")) - beforeInserted; got != 7 {
		t.Errorf("inserted delta = %v, want 7", got)
	}
	if got := testutil.ToFloat64(UpsertRowsTotal.WithLabelValues(table, "skipped")) - beforeSkipped; got != 3 {
		t.Errorf("skipped delta = %v, want 3", got)
	}
	if got := testutil.ToFloat64(UpsertErrors.WithLabelValues(table)) - beforeErrors; got != 1 {
		t.Errorf("errors delta = %v, want 1", got)
	}
}

// TestRecordFetchRun tests fetch run status classification
func TestRecordFetchRun(t *testing.T) {
	tests := []struct {
		name    string
		partial bool
		err     error
		status  string
	}{
		{"success", false, nil, "success"},
		{"partial failure", true, nil, "partial"},
		{"error wins over partial", true, errors.New("fetch failed"), "error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := "test_" + tt.status
			before := testutil.ToFloat64(FetchRunsTotal.WithLabelValues(service, tt.status))

			RecordFetchRun(service, 3, time.Second, tt.partial, tt.err)

			if got := testutil.ToFloat64(FetchRunsTotal.WithLabelValues(service, tt.status)) - before; got != 1 {
				t.Errorf("%s delta = %v, want 1", tt.status, got)
			}
		})
	}
}

// TestRecordProviderRequest tests outbound call recording
func TestRecordProviderRequest(t *testing.T) {
	before := testutil.ToFloat64(ProviderRequestsTotal.WithLabelValues("gsc", "query", "error"))

	RecordProviderRequest("gsc", "query", 120*time.Millisecond, errors.New("status 500"))
	RecordProviderRequest("gsc", "query", 80*time.Millisecond, nil)

	if got := testutil.ToFloat64(ProviderRequestsTotal.WithLabelValues("gsc", "query", "error")) - before; got != 1 {
		t.Errorf("error delta = %v, want 1", got)
	}
}

// TestCircuitBreakerMetrics tests circuit breaker metric recording
func TestCircuitBreakerMetrics(t *testing.T) {
	cbName := "provider-test"

	CircuitBreakerState.WithLabelValues(cbName).Set(2) // open
	if got := testutil.ToFloat64(CircuitBreakerState.WithLabelValues(cbName)); got != 2 {
		t.Errorf("state = %v, want 2", got)
	}

	CircuitBreakerRequests.WithLabelValues(cbName, "rejected").Inc()
	CircuitBreakerConsecutiveFailures.WithLabelValues(cbName).Set(5)
	CircuitBreakerTransitions.WithLabelValues(cbName, "closed", "open").Inc()
}

// TestConcurrentMetricRecording tests that recording is safe across goroutines
func TestConcurrentMetricRecording(t *testing.T) {
	const goroutines = 20
	table := "test_concurrent_table"
	before := testutil.ToFloat64(UpsertRowsTotal.WithLabelValues(table, "inserted"))

	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			RecordUpsert(table, 1, 0, time.Millisecond, nil)
			TrackActiveRequest(true)
			TrackActiveRequest(false)
		}()
	}
	wg.Wait()

	if got := testutil.ToFloat64(UpsertRowsTotal.WithLabelValues(table, "inserted")) - before; got != goroutines {
		t.Errorf("inserted delta = %v, want %d", got, goroutines)
	}
}

// TestRecordAPIRequest tests API request metric recording
func TestRecordAPIRequest(t *testing.T) {
	before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/v1/data/{service}", "200"))

	RecordAPIRequest("GET", "/api/v1/data/{service}", "200", 25*time.Millisecond)

	if got := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/v1/data/{service}", "200")) - before; got != 1 {
		t.Errorf("requests delta = %v, want 1", got)
	}
}

func histogramSampleCount(t *testing.T, observer prometheus.Observer) uint64 {
	t.Helper()
	metric, ok := observer.(prometheus.Metric)
	if !ok {
		t.Fatalf("observer %T is not a metric", observer)
	}
	var m io_prometheus_client.Metric
	if err := metric.Write(&m); err != nil {
		t.Fatalf("write metric: %v", err)
	}
	return m.GetHistogram().GetSampleCount()
}

// TestDurationHistograms checks every recorder observes its duration once,
// including failed calls.
func TestDurationHistograms(t *testing.T) {
	service := "test_histogram"

	beforeFetch := histogramSampleCount(t, FetchDuration.WithLabelValues(service))
	beforeProvider := histogramSampleCount(t, ProviderRequestDuration.WithLabelValues(service, "query"))
	beforeUpsert := histogramSampleCount(t, UpsertDuration.WithLabelValues(service))

	RecordFetchRun(service, 1, time.Second, false, errors.New("boom"))
	RecordProviderRequest(service, "query", 50*time.Millisecond, nil)
	RecordUpsert(service, 0, 0, time.Millisecond, errors.New("boom"))

	if got := histogramSampleCount(t, FetchDuration.WithLabelValues(service)) - beforeFetch; got != 1 {
		t.Errorf("fetch samples = %d, want 1", got)
	}
	if got := histogramSampleCount(t, ProviderRequestDuration.WithLabelValues(service, "query")) - beforeProvider; got != 1 {
		t.Errorf("provider samples = %d, want 1", got)
	}
	if got := histogramSampleCount(t, UpsertDuration.WithLabelValues(service)) - beforeUpsert; got != 1 {
		t.Errorf("upsert samples = %d, want 1", got)
	}
}
