// Rankpulse - SEO and Marketing Analytics Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rankpulse

package providers

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/tomtom215/rankpulse/internal/credentials"
	"github.com/tomtom215/rankpulse/internal/models"
)

// Adapter fetches one tenant's daily metrics from one provider.
type Adapter interface {
	Service() models.Service
	FetchDailyMetrics(ctx context.Context, tenantID string, date time.Time) (models.TableRows, error)
}

// RangeFetcher is implemented by adapters that can fetch a whole date range
// in one upstream call. Results are keyed by date in models.DateLayout.
type RangeFetcher interface {
	FetchRange(ctx context.Context, tenantID string, r models.DateRange) (map[string]models.TableRows, error)
}

// Factory builds an adapter for a service from decoded credentials.
type Factory interface {
	New(ctx context.Context, svc models.Service, creds credentials.Credentials) (Adapter, error)
}

// Constructor builds one service's adapter.
type Constructor func(ctx context.Context, creds credentials.Credentials) (Adapter, error)

// Options carries the shared dependencies adapters are constructed with.
type Options struct {
	Guards     *Guards
	HTTPClient *http.Client

	// CloudflareEndpoint overrides the Cloudflare GraphQL URL.
	CloudflareEndpoint string
}

// GuardFor returns the guard of svc. A nil guard runs calls unguarded.
func (o Options) GuardFor(svc models.Service) *Guard {
	if o.Guards == nil {
		return nil
	}
	return o.Guards.For(svc)
}

// Client returns the configured HTTP client or a default with timeout.
func (o Options) Client() *http.Client {
	if o.HTTPClient != nil {
		return o.HTTPClient
	}
	return &http.Client{Timeout: 30 * time.Second}
}

// Registry is a Factory backed by per-service constructors.
type Registry struct {
	mu           sync.RWMutex
	constructors map[models.Service]Constructor
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{constructors: make(map[models.Service]Constructor)}
}

// Register sets the constructor for svc, replacing any previous one.
func (r *Registry) Register(svc models.Service, c Constructor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.constructors[svc] = c
}

// New builds the adapter for svc.
func (r *Registry) New(ctx context.Context, svc models.Service, creds credentials.Credentials) (Adapter, error) {
	r.mu.RLock()
	c, ok := r.constructors[svc]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: no adapter registered for %q", models.ErrUnknownService, svc)
	}
	return c(ctx, creds)
}
