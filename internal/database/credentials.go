// Rankpulse - SEO and Marketing Analytics Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rankpulse

package database

import (
	"context"
	"fmt"
	"time"
)

// CredentialRow is one stored (tenant, service, key) credential entry.
// KeyName is the normalized key; MatchKey is the collision key used for
// uniqueness and lookup. Value is stored as given, which may be a sealed
// ciphertext.
type CredentialRow struct {
	TenantID  string    `db:"tenant_id"`
	Service   string    `db:"service"`
	KeyName   string    `db:"key_name"`
	MatchKey  string    `db:"match_key"`
	Value     string    `db:"value"`
	UpdatedAt time.Time `db:"updated_at"`
}

const credentialColumns = `tenant_id, service, key_name, match_key, value, updated_at`

// PutCredentialRow inserts or replaces the entry identified by
// (tenant_id, service, match_key). Last write wins, including the spelling
// of key_name.
func (db *DB) PutCredentialRow(ctx context.Context, row *CredentialRow) (*CredentialRow, error) {
	if row.TenantID == "" {
		return nil, ErrEmptyTenantID
	}
	if row.MatchKey == "" {
		return nil, fmt.Errorf("credential match key is empty")
	}

	ctx, cancel := ensureContext(ctx)
	defer cancel()

	query := db.rebind(`
		INSERT INTO tenant_credentials (tenant_id, service, key_name, match_key, value, updated_at)
		VALUES (?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (tenant_id, service, match_key) DO UPDATE SET
			key_name = EXCLUDED.key_name,
			value = EXCLUDED.value,
			updated_at = EXCLUDED.updated_at`)

	if _, err := db.conn.ExecContext(ctx, query,
		row.TenantID, row.Service, row.KeyName, row.MatchKey, row.Value); err != nil {
		return nil, fmt.Errorf("failed to store credential %s/%s: %w", row.Service, row.KeyName, classifyError(err))
	}

	var stored CredentialRow
	err := db.conn.GetContext(ctx, &stored, db.rebind(`
		SELECT `+credentialColumns+` FROM tenant_credentials
		WHERE tenant_id = ? AND service = ? AND match_key = ?`),
		row.TenantID, row.Service, row.MatchKey)
	if err != nil {
		return nil, fmt.Errorf("failed to read back credential: %w", classifyError(err))
	}
	return &stored, nil
}

// GetCredentialRows returns every entry of one tenant and service.
func (db *DB) GetCredentialRows(ctx context.Context, tenantID, service string) ([]CredentialRow, error) {
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	rows := []CredentialRow{}
	err := db.conn.SelectContext(ctx, &rows, db.rebind(`
		SELECT `+credentialColumns+` FROM tenant_credentials
		WHERE tenant_id = ? AND service = ?
		ORDER BY key_name`), tenantID, service)
	if err != nil {
		return nil, fmt.Errorf("failed to load credentials: %w", classifyError(err))
	}
	return rows, nil
}

// ListCredentialRows returns every entry of a tenant across services.
func (db *DB) ListCredentialRows(ctx context.Context, tenantID string) ([]CredentialRow, error) {
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	rows := []CredentialRow{}
	err := db.conn.SelectContext(ctx, &rows, db.rebind(`
		SELECT `+credentialColumns+` FROM tenant_credentials
		WHERE tenant_id = ?
		ORDER BY service, key_name`), tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list credentials: %w", classifyError(err))
	}
	return rows, nil
}
