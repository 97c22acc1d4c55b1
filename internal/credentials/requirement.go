// Rankpulse - SEO and Marketing Analytics Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rankpulse

package credentials

import (
	"strings"

	"github.com/tomtom215/rankpulse/internal/models"
)

// Field is one credential an adapter reads.
type Field struct {
	// Name is the canonical key, e.g. "client_email".
	Name string

	// Optional fields may be absent; Resolve still checks their kind when set.
	Optional bool

	// Object fields must decode to a JSON object.
	Object bool
}

// Requirement lists the credentials a service adapter needs.
type Requirement struct {
	Service models.Service
	Fields  []Field
}

// Resolved holds the values of a satisfied Requirement, keyed by Field.Name.
type Resolved struct {
	strings map[string]string
	objects map[string]map[string]any
}

// String returns a resolved text field, or "" for an absent optional field.
func (r Resolved) String(name string) string {
	return r.strings[name]
}

// Object returns a resolved object field, or nil for an absent optional field.
func (r Resolved) Object(name string) map[string]any {
	return r.objects[name]
}

// Has reports whether the field resolved to a value.
func (r Resolved) Has(name string) bool {
	if _, ok := r.objects[name]; ok {
		return true
	}
	_, ok := r.strings[name]
	return ok
}

// Resolve checks creds against the requirement in field order. The first
// absent or blank required field yields a *MissingCredentialError naming it;
// a value of the wrong kind yields an *InvalidCredentialError.
func (req Requirement) Resolve(creds Credentials) (Resolved, error) {
	resolved := Resolved{
		strings: make(map[string]string, len(req.Fields)),
		objects: make(map[string]map[string]any),
	}

	for _, f := range req.Fields {
		v, ok := creds.Lookup(f.Name)
		if !ok || isBlank(v) {
			if f.Optional {
				continue
			}
			return Resolved{}, &MissingCredentialError{Service: req.Service, Field: f.Name}
		}

		if f.Object {
			obj, ok := asObject(v)
			if !ok {
				return Resolved{}, &InvalidCredentialError{
					Service: req.Service,
					Field:   f.Name,
					Reason:  "expected a JSON object",
				}
			}
			resolved.objects[f.Name] = obj
			continue
		}

		s, ok := stringify(v)
		if !ok {
			return Resolved{}, &InvalidCredentialError{
				Service: req.Service,
				Field:   f.Name,
				Reason:  "value cannot be read as text",
			}
		}
		resolved.strings[f.Name] = strings.TrimSpace(s)
	}

	return resolved, nil
}

func isBlank(v any) bool {
	switch val := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(val) == ""
	case map[string]any:
		return len(val) == 0
	default:
		return false
	}
}
