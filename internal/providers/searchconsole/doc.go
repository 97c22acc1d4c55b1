// Rankpulse - SEO and Marketing Analytics Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rankpulse

// Package searchconsole fetches Google Search Console performance data for
// one tenant and maps it onto the five gsc_* tables.
//
// Credentials: client_email and private_key of a service account, and an
// optional site_url. Without site_url the first site the account owns or
// has full access to is used.
package searchconsole
