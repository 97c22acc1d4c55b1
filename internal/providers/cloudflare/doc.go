// Rankpulse - SEO and Marketing Analytics Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rankpulse

// Package cloudflare reads daily page views and visits of one zone from the
// Cloudflare GraphQL Analytics API into cloudflare_summary_daily.
//
// Credentials: api_token (an API token with Analytics:Read) and zone_id.
// One GraphQL request covers a whole date range, so the adapter implements
// providers.RangeFetcher.
package cloudflare
