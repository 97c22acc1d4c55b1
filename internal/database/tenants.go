// Rankpulse - SEO and Marketing Analytics Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rankpulse

package database

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrEmptyTenantID is returned when a tenant id is blank.
var ErrEmptyTenantID = errors.New("tenant id is empty")

// Tenant is the unit of isolation. Tenants are never deleted.
type Tenant struct {
	TenantID  string    `db:"tenant_id" json:"tenant_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// EnsureTenant creates the tenant if it does not exist. It is idempotent and
// safe to call concurrently for the same id.
func (db *DB) EnsureTenant(ctx context.Context, tenantID string) error {
	if strings.TrimSpace(tenantID) == "" {
		return ErrEmptyTenantID
	}

	ctx, cancel := ensureContext(ctx)
	defer cancel()

	_, err := db.conn.ExecContext(ctx,
		db.rebind(`INSERT INTO tenants (tenant_id) VALUES (?) ON CONFLICT (tenant_id) DO NOTHING`),
		tenantID)
	if err != nil {
		return fmt.Errorf("failed to ensure tenant %s: %w", tenantID, classifyError(err))
	}
	return nil
}

// GetTenant returns the tenant, or ErrNotFound.
func (db *DB) GetTenant(ctx context.Context, tenantID string) (*Tenant, error) {
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	var tenant Tenant
	err := db.conn.GetContext(ctx, &tenant,
		db.rebind(`SELECT tenant_id, created_at FROM tenants WHERE tenant_id = ?`), tenantID)
	if err != nil {
		if isNoRows(err) {
			return nil, fmt.Errorf("tenant %s: %w", tenantID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get tenant: %w", classifyError(err))
	}
	return &tenant, nil
}
