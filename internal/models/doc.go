// Rankpulse - SEO and Marketing Analytics Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rankpulse

/*
Package models defines data structures for the Rankpulse application.

This package is the single source of truth for the provider services, the ten
logical metric tables, and the typed row shapes persisted into them.

Key Components:

  - Service: provider identifier (gsc, ga4, cloudflare) with alias parsing
  - Table: logical table name, its owning service and its column layout
  - Row: interface implemented by every per-table row struct
  - RowBase: fields shared by every row (tenant_id, date, session_id)
  - DateRange: inclusive calendar-date range used by fetches and reads

Row Types:

 1. Search Console (gsc):
    - SearchSummaryRow, SearchQueryRow, SearchPageRow, SearchCountryRow, SearchDeviceRow
    - all embed SearchMetrics (clicks, impressions, ctr, position)

 2. Google Analytics 4 (ga4):
    - AnalyticsTopPageRow, AnalyticsTrafficRow
    - AnalyticsCountryRow, AnalyticsBrowserRow (embed AudienceMetrics)

 3. Cloudflare:
    - CloudflareSummaryRow (page_views, visits)

Session IDs:

Every row carries a session_id derived from (tenant, table, date, dimension value)
with SessionID. Re-fetching the same combination always produces the same id, so
the insert-or-ignore write path deduplicates it.

Thread Safety:

All types are plain values. Rows are built once by a provider adapter and are not
mutated after they are handed to the write path.
*/
package models
