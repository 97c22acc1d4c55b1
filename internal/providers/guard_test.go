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
	"testing"
	"time"

	"google.golang.org/api/googleapi"

	"github.com/tomtom215/rankpulse/internal/config"
	"github.com/tomtom215/rankpulse/internal/credentials"
	"github.com/tomtom215/rankpulse/internal/models"
)

// trippyConfig opens the breaker after two failed calls.
func trippyConfig() config.ProvidersConfig {
	return config.ProvidersConfig{
		RequestsPerSecond:   1000,
		Burst:               100,
		BreakerMaxRequests:  1,
		BreakerInterval:     time.Minute,
		BreakerTimeout:      time.Minute,
		BreakerFailureRatio: 0.5,
		BreakerMinRequests:  2,
	}
}

func TestCallNilGuard(t *testing.T) {
	t.Parallel()

	got, err := Call(context.Background(), nil, "op", func(context.Context) (int, error) {
		return 42, nil
	})
	if err != nil || got != 42 {
		t.Fatalf("Call = %d, %v", got, err)
	}
}

func TestCallReturnsTypedResult(t *testing.T) {
	t.Parallel()

	g := NewGuard(models.ServiceCloudflare, trippyConfig())
	got, err := Call(context.Background(), g, "op", func(context.Context) ([]string, error) {
		return []string{"a", "b"}, nil
	})
	if err != nil {
		t.Fatalf("Call: %v", err)
	}
	if len(got) != 2 || got[1] != "b" {
		t.Errorf("got %v", got)
	}

	nilSlice, err := Call(context.Background(), g, "op", func(context.Context) ([]string, error) {
		return nil, nil
	})
	if err != nil || nilSlice != nil {
		t.Errorf("nil result should pass through, got %v, %v", nilSlice, err)
	}
}

func TestGuardOpensOnUpstreamFailures(t *testing.T) {
	t.Parallel()

	g := NewGuard(models.ServiceAnalytics, trippyConfig())
	upstream := NewAPIError(http.StatusBadGateway, []byte("bad gateway"))

	for i := 0; i < 2; i++ {
		_, err := Call(context.Background(), g, "op", func(context.Context) (any, error) {
			return nil, upstream
		})
		if !errors.Is(err, upstream) {
			t.Fatalf("call %d: expected upstream error, got %v", i, err)
		}
	}

	if g.State() != "open" {
		t.Fatalf("breaker state = %s, want open", g.State())
	}

	called := false
	_, err := Call(context.Background(), g, "op", func(context.Context) (any, error) {
		called = true
		return nil, nil
	})
	if !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected ErrCircuitOpen, got %v", err)
	}
	if called {
		t.Error("an open breaker must not call upstream")
	}
}

func TestGuardIgnoresClientErrors(t *testing.T) {
	t.Parallel()

	g := NewGuard(models.ServiceSearchConsole, trippyConfig())
	clientErrs := []error{
		NewAPIError(http.StatusForbidden, []byte("forbidden")),
		&googleapi.Error{Code: http.StatusNotFound, Message: "property not found"},
		&credentials.MissingCredentialError{Service: models.ServiceSearchConsole, Field: "site_url"},
		fmt.Errorf("discover: %w", ErrNoAccessibleProperty),
	}

	for _, e := range clientErrs {
		_, _ = Call(context.Background(), g, "op", func(context.Context) (any, error) {
			return nil, e
		})
	}

	if g.State() != "closed" {
		t.Errorf("client-side errors should not open the breaker, state = %s", g.State())
	}
}

func TestCallHonorsCancelledContext(t *testing.T) {
	t.Parallel()

	g := NewGuard(models.ServiceCloudflare, config.ProvidersConfig{RequestsPerSecond: 0.001, Burst: 1})
	// Drain the single token so the next Wait has to block.
	_, _ = Call(context.Background(), g, "op", func(context.Context) (int, error) { return 0, nil })

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Call(ctx, g, "op", func(context.Context) (int, error) { return 1, nil })
	if err == nil {
		t.Fatal("expected the limiter to fail on a cancelled context")
	}
}

func TestCountsAsFailure(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"cancelled", fmt.Errorf("query: %w", context.Canceled), false},
		{"deadline", context.DeadlineExceeded, true},
		{"server error", NewAPIError(500, nil), true},
		{"rate limited", NewAPIError(http.StatusTooManyRequests, nil), true},
		{"forbidden", NewAPIError(http.StatusForbidden, nil), false},
		{"google 503", &googleapi.Error{Code: 503}, true},
		{"google 400", &googleapi.Error{Code: 400}, false},
		{"invalid credential", &credentials.InvalidCredentialError{Field: "private_key"}, false},
		{"plain error", errors.New("connection reset"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := countsAsFailure(tt.err); got != tt.want {
				t.Errorf("countsAsFailure(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestFetchError(t *testing.T) {
	t.Parallel()

	upstream := errors.New("timeout")
	err := FetchError("ga4 report", upstream)
	if !errors.Is(err, ErrFetchFailed) || !errors.Is(err, upstream) {
		t.Fatalf("FetchError should wrap both, got %v", err)
	}
	if again := FetchError("outer", err); again != err {
		t.Error("an already wrapped error should be returned unchanged")
	}
	if FetchError("op", nil) != nil {
		t.Error("nil stays nil")
	}
}

func TestAPIError(t *testing.T) {
	t.Parallel()

	long := make([]byte, maxErrorBody+100)
	for i := range long {
		long[i] = 'x'
	}
	err := NewAPIError(http.StatusForbidden, long)
	if len(err.Body) != maxErrorBody {
		t.Errorf("body length = %d, want %d", len(err.Body), maxErrorBody)
	}

	short := NewAPIError(403, []byte(`{"errors":[{"message":"Authentication error"}]}`))
	want := `API request failed: 403 - {"errors":[{"message":"Authentication error"}]}`
	if short.Error() != want {
		t.Errorf("Error() = %q, want %q", short.Error(), want)
	}
	if StatusCode(fmt.Errorf("wrapped: %w", short)) != 403 {
		t.Error("StatusCode should unwrap")
	}
}

func TestRegistry(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	if _, err := r.New(context.Background(), models.ServiceAnalytics, credentials.Credentials{}); !errors.Is(err, models.ErrUnknownService) {
		t.Fatalf("expected ErrUnknownService, got %v", err)
	}

	r.Register(models.ServiceAnalytics, func(context.Context, credentials.Credentials) (Adapter, error) {
		return nil, &credentials.MissingCredentialError{Service: models.ServiceAnalytics, Field: "property_id"}
	})
	_, err := r.New(context.Background(), models.ServiceAnalytics, credentials.Credentials{})
	if !errors.Is(err, credentials.ErrMissingCredential) {
		t.Fatalf("constructor error should propagate, got %v", err)
	}
}

func TestGuardsState(t *testing.T) {
	t.Parallel()

	guards := NewGuards(config.ProvidersConfig{})
	state := guards.State()
	for _, svc := range models.AllServices() {
		if guards.For(svc) == nil {
			t.Errorf("missing guard for %s", svc)
		}
		if state[svc] != "closed" {
			t.Errorf("%s state = %s, want closed", svc, state[svc])
		}
	}
}
