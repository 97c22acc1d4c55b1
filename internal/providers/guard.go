// Rankpulse - SEO and Marketing Analytics Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rankpulse

package providers

import (
	"context"
	"errors"
	"fmt"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/tomtom215/rankpulse/internal/config"
	"github.com/tomtom215/rankpulse/internal/logging"
	"github.com/tomtom215/rankpulse/internal/metrics"
	"github.com/tomtom215/rankpulse/internal/models"
)

// Guard protects one provider API with a rate limiter and a circuit breaker.
//
// The breaker uses real time (via sony/gobreaker) for its interval and
// timeout; tests that need a tripped breaker use small settings rather than
// faking the clock.
type Guard struct {
	service models.Service
	name    string
	limiter *rate.Limiter
	cb      *gobreaker.CircuitBreaker[any]
}

// Guards holds one Guard per service.
type Guards struct {
	guards map[models.Service]*Guard
}

// NewGuards creates a guard for every supported service from cfg.
func NewGuards(cfg config.ProvidersConfig) *Guards {
	g := &Guards{guards: make(map[models.Service]*Guard)}
	for _, svc := range models.AllServices() {
		g.guards[svc] = NewGuard(svc, cfg)
	}
	return g
}

// For returns the guard of svc, or nil for an unknown service.
func (g *Guards) For(svc models.Service) *Guard {
	return g.guards[svc]
}

// State returns the breaker state of every service, for health reporting.
func (g *Guards) State() map[models.Service]string {
	out := make(map[models.Service]string, len(g.guards))
	for svc, guard := range g.guards {
		out[svc] = stateToString(guard.cb.State())
	}
	return out
}

// NewGuard creates the guard for one service.
// Breaker defaults:
// - 3 concurrent requests in half-open state
// - 1 minute measurement window
// - 2 minute timeout before attempting recovery
// - opens at a 60% failure rate over at least 10 requests
func NewGuard(svc models.Service, cfg config.ProvidersConfig) *Guard {
	name := "provider-" + string(svc)

	rps := cfg.RequestsPerSecond
	limit := rate.Inf
	if rps > 0 {
		limit = rate.Limit(rps)
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}

	maxRequests := cfg.BreakerMaxRequests
	if maxRequests == 0 {
		maxRequests = 3
	}
	interval := cfg.BreakerInterval
	if interval <= 0 {
		interval = time.Minute
	}
	timeout := cfg.BreakerTimeout
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}
	failureRatio := cfg.BreakerFailureRatio
	if failureRatio <= 0 {
		failureRatio = 0.6
	}
	minRequests := cfg.BreakerMinRequests
	if minRequests == 0 {
		minRequests = 10
	}

	metrics.CircuitBreakerState.WithLabelValues(name).Set(0)
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(name).Set(0)

	cb := gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:        name,
		MaxRequests: maxRequests,
		Interval:    interval,
		Timeout:     timeout,

		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < minRequests {
				return false
			}
			ratio := float64(counts.TotalFailures) / float64(counts.Requests)
			trip := ratio >= failureRatio
			if trip {
				logging.Warn().
					Str("breaker", name).
					Uint32("failures", counts.TotalFailures).
					Float64("failure_rate", ratio*100).
					Msg("[CIRCUIT BREAKER] Opening circuit")
			}
			return trip
		},

		IsSuccessful: func(err error) bool {
			return !countsAsFailure(err)
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr, toStr := stateToString(from), stateToString(to)
			logging.Info().Str("breaker", name).Str("from", fromStr).Str("to", toStr).
				Msg("[CIRCUIT BREAKER] State transition")

			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, fromStr, toStr).Inc()
			if to == gobreaker.StateClosed {
				metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(name).Set(0)
			}
		},
	})

	return &Guard{
		service: svc,
		name:    name,
		limiter: rate.NewLimiter(limit, burst),
		cb:      cb,
	}
}

// Call runs fn under g's rate limiter and circuit breaker and records the
// outcome. A nil guard calls fn directly.
func Call[T any](ctx context.Context, g *Guard, operation string, fn func(context.Context) (T, error)) (T, error) {
	var zero T
	if g == nil {
		return fn(ctx)
	}

	waitStart := time.Now()
	if err := g.limiter.Wait(ctx); err != nil {
		return zero, fmt.Errorf("rate limiter wait for %s: %w", g.service, err)
	}
	metrics.ProviderRateLimitWait.WithLabelValues(string(g.service)).Observe(time.Since(waitStart).Seconds())

	start := time.Now()
	result, err := g.cb.Execute(func() (any, error) {
		return fn(ctx)
	})
	metrics.RecordProviderRequest(string(g.service), operation, time.Since(start), err)

	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.CircuitBreakerRequests.WithLabelValues(g.name, "rejected").Inc()
			logging.Ctx(ctx).Warn().Err(err).Str("breaker", g.name).Msg("[CIRCUIT BREAKER] Request rejected")
		} else {
			metrics.CircuitBreakerRequests.WithLabelValues(g.name, "failure").Inc()
			metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(g.name).
				Set(float64(g.cb.Counts().ConsecutiveFailures))
		}
		return zero, err
	}

	metrics.CircuitBreakerRequests.WithLabelValues(g.name, "success").Inc()
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(g.name).Set(0)

	if result == nil {
		return zero, nil
	}
	typed, ok := result.(T)
	if !ok {
		return zero, fmt.Errorf("circuit breaker: unexpected result type %T", result)
	}
	return typed, nil
}

// State returns the breaker state as "closed", "half-open" or "open".
func (g *Guard) State() string {
	return stateToString(g.cb.State())
}

// stateToFloat converts circuit breaker state to numeric value for metrics
func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}
