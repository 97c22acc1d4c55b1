// Rankpulse - SEO and Marketing Analytics Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rankpulse

// Package analytics fetches Google Analytics 4 reports through the GA4 Data
// API and maps them onto the four ga4_* tables.
//
// Credentials: property_id and service_account_json, the service account
// key file as a JSON object (double-encoded strings are accepted).
package analytics
