// Rankpulse - SEO and Marketing Analytics Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rankpulse

package credentials

import (
	"fmt"
	"strconv"

	"github.com/goccy/go-json"
)

// Credentials maps normalized keys to decoded values for one tenant and
// service. Lookups normalize the requested key and match on MatchKey, so
// "client_email", "ClientEmail" and "CLIENT-EMAIL" find the same entry.
type Credentials map[string]any

// Lookup returns the decoded value stored under key.
func (c Credentials) Lookup(key string) (any, bool) {
	normalized := NormalizeKey(key)
	if normalized == "" {
		return nil, false
	}
	if v, ok := c[normalized]; ok {
		return v, true
	}

	match := MatchKey(normalized)
	for k, v := range c {
		if MatchKey(k) == match {
			return v, true
		}
	}
	return nil, false
}

// String returns the value under key as text. Numbers and booleans are
// formatted; objects and arrays are re-encoded as JSON.
func (c Credentials) String(key string) (string, bool) {
	v, ok := c.Lookup(key)
	if !ok || v == nil {
		return "", false
	}
	return stringify(v)
}

// Object returns the value under key as a JSON object. A string value is
// decoded first.
func (c Credentials) Object(key string) (map[string]any, bool) {
	v, ok := c.Lookup(key)
	if !ok {
		return nil, false
	}
	return asObject(v)
}

func stringify(v any) (string, bool) {
	switch val := v.(type) {
	case string:
		return val, true
	case json.Number:
		return val.String(), true
	case bool:
		return strconv.FormatBool(val), true
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64), true
	case map[string]any, []any:
		raw, err := json.Marshal(val)
		if err != nil {
			return "", false
		}
		return string(raw), true
	default:
		return fmt.Sprint(val), true
	}
}

func asObject(v any) (map[string]any, bool) {
	switch val := v.(type) {
	case map[string]any:
		return val, true
	case string:
		if obj, ok := DecodeValue(val).(map[string]any); ok {
			return obj, true
		}
	}
	return nil, false
}
