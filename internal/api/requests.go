// Rankpulse - SEO and Marketing Analytics Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rankpulse

package api

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/tomtom215/rankpulse/internal/validation"
)

// maxBodyBytes caps request bodies. Service account JSON is the largest
// legitimate payload.
const maxBodyBytes = 1 << 20

type registerRequest struct {
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// credentialRequest accepts any JSON value; strings are stored unquoted and
// other values as their JSON text.
type credentialRequest struct {
	Service string          `json:"service" validate:"required,service"`
	Key     string          `json:"key" validate:"required,max=128"`
	Value   json.RawMessage `json:"value" validate:"required"`
}

type fetchRequest struct {
	StartDate string `json:"start_date" validate:"required,isodate"`
	EndDate   string `json:"end_date,omitempty" validate:"omitempty,isodate"`
}

type alertRequest struct {
	TenantID       string `json:"tenant_id" validate:"required,max=128"`
	AlertType      string `json:"alert_type" validate:"required,max=64"`
	Message        string `json:"message" validate:"max=4096"`
	AlertTriggered bool   `json:"alert_triggered"`
}

// decodeJSON reads a size-limited body into dst and validates it.
// Unknown fields are rejected when strict is set.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}, strict bool) error {
	body, err := readBody(w, r)
	if err != nil {
		return err
	}
	return decodeBytes(body, dst, strict)
}

func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, fmt.Errorf("%w: body exceeds %d bytes", ErrBadRequest, maxBodyBytes)
		}
		return nil, fmt.Errorf("%w: failed to read body: %v", ErrBadRequest, err)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, fmt.Errorf("%w: request body is empty", ErrBadRequest)
	}
	return body, nil
}

func decodeBytes(body []byte, dst interface{}, strict bool) error {
	dec := json.NewDecoder(bytes.NewReader(body))
	if strict {
		dec.DisallowUnknownFields()
	}
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("%w: invalid JSON body: %v", ErrBadRequest, err)
	}

	if verr := validation.ValidateStruct(dst); verr != nil {
		return verr
	}
	return nil
}

// credentialValue returns the stored form of a credential value.
func credentialValue(raw json.RawMessage) (string, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return "", fmt.Errorf("%w: value must not be null", ErrBadRequest)
	}

	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return "", fmt.Errorf("%w: invalid value: %v", ErrBadRequest, err)
		}
		return s, nil
	}
	return string(trimmed), nil
}
