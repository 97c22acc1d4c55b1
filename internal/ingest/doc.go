// Rankpulse - SEO and Marketing Analytics Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rankpulse

/*
Package ingest runs provider fetches for a tenant and persists the results.

An Orchestrator resolves the tenant's credentials, builds the provider
adapter and walks the requested date range one date at a time. After each
date is fetched its rows are written table by table through the idempotent
write path, so an interrupted run keeps every date it completed and a
repeated run skips rows that are already stored.

# Usage

	orch := ingest.NewOrchestrator(db, store, registry, cfg)
	result, err := orch.RunFetch(ctx, tenantID, models.ServiceSearchConsole, dateRange)

# Failure Semantics

  - a fetch error on any date stops the run; earlier dates stay persisted
  - a write error on one table is recorded in Result.Failures and the
    remaining tables of that date are still written
  - dates are fetched exactly as requested; the HTTP layer shifts Search
    Console ranges back by the reporting lag before calling RunFetch
  - ranges longer than the configured maximum are rejected up front

Adapters that implement providers.RangeFetcher are called once for the
whole range; their rows are still persisted date by date.
*/
package ingest
