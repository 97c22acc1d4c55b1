// Rankpulse - SEO and Marketing Analytics Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rankpulse

package credentials

import (
	"bytes"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/goccy/go-json"
)

// DecodeValue turns a stored credential value into its structured form.
//
//  1. The value is parsed as JSON (numbers are kept as json.Number). A JSON
//     string whose content is itself a JSON object or array is decoded once
//     more.
//  2. One layer of surrounding double or single quotes is stripped and the
//     content parsed again.
//  3. Backslash escapes (\n, \", \uXXXX, ...) are unescaped and the result
//     parsed again.
//  4. Otherwise the raw string is returned.
//
// DecodeValue never fails.
func DecodeValue(raw string) any {
	if v, ok := parseJSON(raw); ok {
		return v
	}

	trimmed := strings.TrimSpace(raw)
	if len(trimmed) >= 2 {
		first, last := trimmed[0], trimmed[len(trimmed)-1]
		if (first == '"' && last == '"') || (first == '\'' && last == '\'') {
			if v, ok := parseJSON(trimmed[1 : len(trimmed)-1]); ok {
				return v
			}
		}
	}

	if strings.Contains(trimmed, `\`) {
		if unescaped, ok := unescape(trimmed); ok {
			if v, ok := parseJSON(unescaped); ok {
				return v
			}
		}
	}

	return raw
}

// parseJSON decodes s as a single JSON value, unwrapping one level of
// double encoding.
func parseJSON(s string) (any, bool) {
	v, ok := decodeJSON(s)
	if !ok {
		return nil, false
	}
	if inner, isString := v.(string); isString {
		if nested, ok := decodeJSON(inner); ok {
			switch nested.(type) {
			case map[string]any, []any:
				return nested, true
			}
		}
	}
	return v, true
}

func decodeJSON(s string) (any, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, false
	}

	dec := json.NewDecoder(strings.NewReader(s))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, false
	}
	// Reject trailing content such as `{"a":1} junk`.
	if dec.More() {
		return nil, false
	}
	return v, true
}

// unescape resolves backslash escape sequences. Unescaped quote characters
// are kept as they are.
func unescape(s string) (string, bool) {
	var buf bytes.Buffer
	buf.Grow(len(s))

	for len(s) > 0 {
		if len(s) >= 2 && s[0] == '\\' && (s[1] == '"' || s[1] == '\'') {
			buf.WriteByte(s[1])
			s = s[2:]
			continue
		}

		value, multibyte, tail, err := strconv.UnquoteChar(s, 0)
		if err != nil {
			return "", false
		}
		if value < utf8.RuneSelf && !multibyte {
			buf.WriteByte(byte(value))
		} else {
			buf.WriteRune(value)
		}
		s = tail
	}
	return buf.String(), true
}
