// Rankpulse - SEO and Marketing Analytics Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rankpulse

/*
migrations.go - Versioned Schema Migrations

database_schema.go creates the baseline schema with IF NOT EXISTS
statements. Changes after the baseline go into the migrations list below,
which is append-only: a released entry is never edited or removed.
schema_migrations records each applied version, and every migration runs
in its own transaction together with its bookkeeping row.
*/

//nolint:staticcheck // File documentation, not package doc
package database

import (
	"context"
	"fmt"
	"time"

	"github.com/tomtom215/rankpulse/internal/logging"
)

// Migration is one schema change. AppliedAt is only set when read back.
type Migration struct {
	Version     int       `db:"version"`
	Name        string    `db:"name"`
	Description string    `db:"description"`
	SQL         string    `db:"-"`
	AppliedAt   time.Time `db:"applied_at"`
}

var migrations = []Migration{
	{
		Version:     1,
		Name:        "tenant_credentials_service_index",
		Description: "Index credential rows by tenant and service for listing",
		SQL:         `CREATE INDEX IF NOT EXISTS idx_tenant_credentials_service ON tenant_credentials(tenant_id, service)`,
	},
}

func (db *DB) getMigrations() []Migration {
	return migrations
}

func (db *DB) runVersionedMigrations() error {
	ctx, cancel := schemaContext()
	defer cancel()

	if _, err := db.conn.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			applied_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	current, err := db.GetCurrentSchemaVersion(ctx)
	if err != nil {
		return err
	}

	applied := 0
	for _, m := range db.getMigrations() {
		if m.Version <= current {
			continue
		}
		if err := db.applyMigration(ctx, m); err != nil {
			return err
		}
		applied++
	}

	if applied > 0 {
		logging.Info().Int("count", applied).Int("from_version", current).Msg("Applied database migrations")
	}
	return nil
}

func (db *DB) applyMigration(ctx context.Context, m Migration) (err error) {
	tx, err := db.conn.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("migration v%d: begin: %w", m.Version, err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, m.SQL); err != nil {
		return fmt.Errorf("migration v%d (%s) failed: %w", m.Version, m.Name, err)
	}
	if _, err = tx.ExecContext(ctx,
		db.rebind(`INSERT INTO schema_migrations (version, name, description) VALUES (?, ?, ?)`),
		m.Version, m.Name, m.Description); err != nil {
		return fmt.Errorf("migration v%d: record: %w", m.Version, err)
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("migration v%d: commit: %w", m.Version, err)
	}
	return nil
}

// GetCurrentSchemaVersion returns the highest applied migration, 0 when none.
func (db *DB) GetCurrentSchemaVersion(ctx context.Context) (int, error) {
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	var version int
	if err := db.conn.GetContext(ctx, &version, `SELECT COALESCE(MAX(version), 0) FROM schema_migrations`); err != nil {
		return 0, fmt.Errorf("failed to get schema version: %w", err)
	}
	return version, nil
}
