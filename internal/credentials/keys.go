// Rankpulse - SEO and Marketing Analytics Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rankpulse

package credentials

import (
	"fmt"
	"strings"
)

// NormalizeKey stringifies key, trims it, upper-cases it and removes every
// character outside [A-Z0-9_]. A nil key normalizes to "".
func NormalizeKey(key any) string {
	if key == nil {
		return ""
	}

	var s string
	switch k := key.(type) {
	case string:
		s = k
	case fmt.Stringer:
		s = k.String()
	default:
		s = fmt.Sprint(k)
	}

	s = strings.ToUpper(strings.TrimSpace(s))

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') || c == '_' {
			b.WriteByte(c)
		}
	}
	return b.String()
}

// MatchKey returns the collision key of a normalized key: the key with
// underscores removed.
func MatchKey(normalized string) string {
	return strings.ReplaceAll(normalized, "_", "")
}
