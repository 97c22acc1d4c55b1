// Rankpulse - SEO and Marketing Analytics Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rankpulse

package credentials

import (
	"errors"
	"fmt"

	"github.com/tomtom215/rankpulse/internal/models"
)

var (
	// ErrMissingCredential matches every *MissingCredentialError.
	ErrMissingCredential = errors.New("missing credential")

	// ErrInvalidCredential matches every *InvalidCredentialError.
	ErrInvalidCredential = errors.New("invalid credential")

	// ErrEmptyKey is returned when a key normalizes to the empty string.
	ErrEmptyKey = errors.New("credential key is empty after normalization")

	// ErrSealedWithoutKey is returned when an encrypted value is read but no
	// credential secret is configured.
	ErrSealedWithoutKey = errors.New("credential is encrypted but no credential secret is configured")
)

// MissingCredentialError reports a required field that is absent or empty.
type MissingCredentialError struct {
	Service models.Service
	Field   string
}

func (e *MissingCredentialError) Error() string {
	return fmt.Sprintf("missing %s credential: %s", e.Service, e.Field)
}

// Is makes errors.Is(err, ErrMissingCredential) hold.
func (e *MissingCredentialError) Is(target error) bool {
	return target == ErrMissingCredential
}

// InvalidCredentialError reports a field whose value cannot be used.
type InvalidCredentialError struct {
	Service models.Service
	Field   string
	Reason  string
}

func (e *InvalidCredentialError) Error() string {
	return fmt.Sprintf("invalid %s credential %s: %s", e.Service, e.Field, e.Reason)
}

// Is makes errors.Is(err, ErrInvalidCredential) hold.
func (e *InvalidCredentialError) Is(target error) bool {
	return target == ErrInvalidCredential
}
