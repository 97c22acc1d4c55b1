// Rankpulse - SEO and Marketing Analytics Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rankpulse

/*
store.go - Tenant Credential Store

Store sits between the HTTP handlers / ingestion orchestrator and the
tenant_credentials table:

  - PutCredential normalizes the key, seals the value when a credential
    secret is configured and upserts the row (last write wins).
  - GetCredentials opens and decodes every value of one (tenant, service).
  - ListKeys reports what a tenant has configured, with masked values.

Plaintext values never leave the process through ListKeys or logs.
*/

//nolint:staticcheck // File documentation, not package doc
package credentials

import (
	"context"
	"fmt"
	"time"

	"github.com/tomtom215/rankpulse/internal/config"
	"github.com/tomtom215/rankpulse/internal/database"
	"github.com/tomtom215/rankpulse/internal/logging"
	"github.com/tomtom215/rankpulse/internal/models"
)

// Repository is the persistence the Store needs. *database.DB implements it.
type Repository interface {
	EnsureTenant(ctx context.Context, tenantID string) error
	PutCredentialRow(ctx context.Context, row *database.CredentialRow) (*database.CredentialRow, error)
	GetCredentialRows(ctx context.Context, tenantID, service string) ([]database.CredentialRow, error)
	ListCredentialRows(ctx context.Context, tenantID string) ([]database.CredentialRow, error)
}

// Entry is a stored credential as reported to callers. Value is masked.
type Entry struct {
	TenantID  string         `json:"tenant_id"`
	Service   models.Service `json:"service"`
	Key       string         `json:"key"`
	Value     string         `json:"value"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// Store reads and writes tenant credentials.
type Store struct {
	repo      Repository
	encryptor *config.CredentialEncryptor
	security  *logging.SecurityLogger
}

// NewStore creates a Store. encryptor may be nil, in which case values are
// stored as given and sealed values cannot be read.
func NewStore(repo Repository, encryptor *config.CredentialEncryptor) *Store {
	return &Store{
		repo:      repo,
		encryptor: encryptor,
		security:  logging.NewSecurityLogger(),
	}
}

// Encrypted reports whether new values are sealed before storage.
func (s *Store) Encrypted() bool {
	return s.encryptor != nil
}

// PutCredential stores value under the normalized key for (tenant, service),
// creating the tenant if needed.
func (s *Store) PutCredential(ctx context.Context, tenantID string, service models.Service, key, value string) (*Entry, error) {
	if !service.Valid() {
		return nil, fmt.Errorf("%w: %q", models.ErrUnknownService, service)
	}
	normalized := NormalizeKey(key)
	if normalized == "" {
		return nil, fmt.Errorf("%w: %q", ErrEmptyKey, key)
	}

	if err := s.repo.EnsureTenant(ctx, tenantID); err != nil {
		return nil, err
	}

	stored := value
	if s.encryptor != nil {
		sealed, err := s.encryptor.Seal(value)
		if err != nil {
			return nil, fmt.Errorf("failed to encrypt credential %s: %w", normalized, err)
		}
		stored = sealed
	}

	row, err := s.repo.PutCredentialRow(ctx, &database.CredentialRow{
		TenantID: tenantID,
		Service:  string(service),
		KeyName:  normalized,
		MatchKey: MatchKey(normalized),
		Value:    stored,
	})
	if err != nil {
		return nil, err
	}

	s.security.LogCredentialStored(tenantID, string(service), normalized)

	return &Entry{
		TenantID:  row.TenantID,
		Service:   service,
		Key:       row.KeyName,
		Value:     config.MaskCredential(value),
		UpdatedAt: row.UpdatedAt,
	}, nil
}

// GetCredentials returns the decoded credentials of one tenant and service.
// A tenant with nothing configured gets an empty, non-nil map.
func (s *Store) GetCredentials(ctx context.Context, tenantID string, service models.Service) (Credentials, error) {
	rows, err := s.repo.GetCredentialRows(ctx, tenantID, string(service))
	if err != nil {
		return nil, err
	}

	creds := make(Credentials, len(rows))
	for i := range rows {
		plain, err := s.open(rows[i].Value)
		if err != nil {
			return nil, fmt.Errorf("credential %s/%s: %w", service, rows[i].KeyName, err)
		}
		creds[rows[i].KeyName] = DecodeValue(plain)
	}
	return creds, nil
}

// ListKeys returns every configured key of a tenant grouped by service,
// with masked values.
func (s *Store) ListKeys(ctx context.Context, tenantID string) (map[models.Service][]Entry, error) {
	rows, err := s.repo.ListCredentialRows(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	out := make(map[models.Service][]Entry)
	for i := range rows {
		masked := "****"
		if plain, err := s.open(rows[i].Value); err == nil {
			masked = config.MaskCredential(plain)
		}

		svc := models.Service(rows[i].Service)
		out[svc] = append(out[svc], Entry{
			TenantID:  rows[i].TenantID,
			Service:   svc,
			Key:       rows[i].KeyName,
			Value:     masked,
			UpdatedAt: rows[i].UpdatedAt,
		})
	}
	return out, nil
}

func (s *Store) open(stored string) (string, error) {
	if !config.IsSealed(stored) {
		return stored, nil
	}
	if s.encryptor == nil {
		return "", ErrSealedWithoutKey
	}
	return s.encryptor.Open(stored)
}
