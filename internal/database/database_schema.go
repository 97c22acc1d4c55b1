// Rankpulse - SEO and Marketing Analytics Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rankpulse

/*
database_schema.go - Database Schema Management

This file manages the schema shared by the DuckDB and Postgres drivers.
DDL is restricted to types and clauses both engines accept.

Tables:
  - tenants: one row per tenant id, created idempotently
  - tenant_credentials: per-tenant, per-service key/value credentials
  - users: registered accounts, each owning one tenant
  - alert_events: webhook alerts with their JSON payload
  - ten daily metric tables, one per models.Table

Metric tables are generated from models.Table.Columns so the insert path,
the read path and the DDL always agree on column order. Every metric table
carries a UNIQUE session_id; rows are write-once.

Index Strategy:
  - (tenant_id, date) on every metric table for the tenant-scoped read path
  - (tenant_id, created_at) on alert_events
*/

//nolint:staticcheck // File documentation, not package doc
package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/tomtom215/rankpulse/internal/models"
)

// schemaContext returns a context with timeout for schema operations
func schemaContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 60*time.Second)
}

// countColumns are stored as BIGINT; every other metric column is a ratio,
// average or position stored as DOUBLE PRECISION.
var countColumns = map[string]bool{
	"clicks":           true,
	"impressions":      true,
	"views":            true,
	"active_users":     true,
	"new_users":        true,
	"event_count":      true,
	"sessions":         true,
	"engaged_sessions": true,
	"total_events":     true,
	"page_views":       true,
	"visits":           true,
}

// createTables creates the core database tables
func (db *DB) createTables() error {
	ctx, cancel := schemaContext()
	defer cancel()

	for _, query := range db.getTableCreationQueries() {
		if _, err := db.conn.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}
	}
	return nil
}

// jsonColumnType is the column type used for JSON payloads.
func (db *DB) jsonColumnType() string {
	if db.isDuckDB() {
		return "TEXT"
	}
	return "JSONB"
}

// getTableCreationQueries returns the CREATE TABLE statements in dependency order.
func (db *DB) getTableCreationQueries() []string {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS tenants (
			tenant_id TEXT PRIMARY KEY,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS tenant_credentials (
			tenant_id TEXT NOT NULL,
			service TEXT NOT NULL,
			key_name TEXT NOT NULL,
			match_key TEXT NOT NULL,
			value TEXT NOT NULL,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (tenant_id, service, match_key)
		)`,
		`CREATE TABLE IF NOT EXISTS users (
			user_id TEXT PRIMARY KEY,
			email TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			tenant_id TEXT NOT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS alert_events (
			id TEXT PRIMARY KEY,
			tenant_id TEXT NOT NULL,
			alert_type TEXT NOT NULL,
			message TEXT NOT NULL,
			alert_triggered BOOLEAN NOT NULL DEFAULT FALSE,
			data %s,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`, db.jsonColumnType()),
	}

	for _, table := range models.AllTables() {
		queries = append(queries, metricTableDDL(table))
	}
	return queries
}

// metricTableDDL builds the CREATE TABLE statement for a metric table.
func metricTableDDL(table models.Table) string {
	var b strings.Builder
	fmt.Fprintf(&b, "CREATE TABLE IF NOT EXISTS %s (\n", table)
	b.WriteString("\t\t\ttenant_id TEXT NOT NULL,\n")
	b.WriteString("\t\t\tdate DATE NOT NULL,\n")
	b.WriteString("\t\t\tsession_id TEXT NOT NULL UNIQUE,\n")

	for _, col := range table.Columns()[3:] {
		colType := "DOUBLE PRECISION"
		switch {
		case col == table.DimensionColumn():
			colType = "TEXT"
		case countColumns[col]:
			colType = "BIGINT"
		}
		fmt.Fprintf(&b, "\t\t\t%s %s,\n", col, colType)
	}

	b.WriteString("\t\t\tcreated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP\n\t\t)")
	return b.String()
}

// createIndexes creates indexes for the tenant-scoped read paths
func (db *DB) createIndexes() error {
	ctx, cancel := schemaContext()
	defer cancel()

	for _, query := range db.getIndexQueries() {
		if _, err := db.conn.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}
	return nil
}

// getIndexQueries returns all CREATE INDEX statements.
func (db *DB) getIndexQueries() []string {
	queries := []string{
		`CREATE INDEX IF NOT EXISTS idx_alert_events_tenant ON alert_events(tenant_id, created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_users_tenant ON users(tenant_id)`,
	}
	for _, table := range models.AllTables() {
		queries = append(queries,
			fmt.Sprintf("CREATE INDEX IF NOT EXISTS idx_%s_tenant_date ON %s(tenant_id, date)", table, table))
	}
	return queries
}
