// Rankpulse - SEO and Marketing Analytics Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rankpulse

// Package credentials stores and resolves per-tenant provider credentials.
//
// # Keys
//
// Keys are normalized before storage and lookup: stringified, trimmed,
// upper-cased, and stripped of every character outside [A-Z0-9_]. The
// underscore-free form (MatchKey) identifies an entry, so "Property_ID",
// " property-id " and "PROPERTYID" all address the same credential and the
// last write wins.
//
// # Values
//
// Values are stored as text and decoded on read by DecodeValue, which
// recovers JSON objects, including one level of double encoding, quote
// wrapping or backslash escaping. When a credential secret is configured,
// values are sealed with config.CredentialEncryptor before they reach the
// database.
//
// # Requirements
//
// Provider adapters declare the fields they need with a Requirement and
// resolve it once at construction:
//
//	req := credentials.Requirement{
//	    Service: models.ServiceCloudflare,
//	    Fields: []credentials.Field{{Name: "api_token"}, {Name: "zone_id"}},
//	}
//	resolved, err := req.Resolve(creds)
//	// err is a *MissingCredentialError naming the first absent field
package credentials
