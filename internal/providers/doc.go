// Rankpulse - SEO and Marketing Analytics Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rankpulse

/*
Package providers defines the contract between the ingestion orchestrator and
the per-service provider adapters, plus the resilience layer every outbound
call goes through.

# Adapter Contract

An Adapter is built from one tenant's credentials and returns typed rows per
logical table for a single date:

	type Adapter interface {
	    Service() models.Service
	    FetchDailyMetrics(ctx context.Context, tenantID string, date time.Time) (models.TableRows, error)
	}

Adapters whose upstream API can answer a whole range in one call also
implement RangeFetcher. Upstream failures are wrapped in ErrFetchFailed.

# Registry

The Registry maps each service to a Constructor. The orchestrator asks the
registry for an adapter per fetch run:

	registry := providers.NewRegistry()
	registry.Register(models.ServiceCloudflare, cloudflare.Constructor(opts))
	adapter, err := registry.New(ctx, models.ServiceCloudflare, creds)

# Guards

Every adapter call runs through the Guard of its service:

  - a golang.org/x/time/rate limiter caps the outbound request rate
  - a sony/gobreaker circuit breaker stops calling a failing upstream

There are no retries. Client-side failures (4xx other than 429, credential
problems, cancelled contexts) do not count against the breaker.

Breaker state and call outcomes are exported through internal/metrics.
*/
package providers
