// Rankpulse - SEO and Marketing Analytics Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rankpulse

// Package database provides the storage layer for Rankpulse.
//
// # Overview
//
// The package owns the SQL schema and every query the application runs:
// tenants, encrypted credential rows, users, alert events and the ten daily
// metric tables populated by the provider adapters.
//
// # Drivers
//
// Two drivers are supported through database/sql and sqlx:
//   - duckdb (default): embedded file at DUCKDB_PATH, or ":memory:" in tests
//   - postgres: github.com/jackc/pgx/v5/stdlib with DATABASE_DSN
//
// Queries are written with ? placeholders and rebound per driver.
//
// # Architecture
//
//   - database.go: lifecycle (open, initialize, close, checkpoint)
//   - database_connection.go: pool configuration and error classification
//   - database_schema.go: DDL generated from models.Table column layouts
//   - migrations.go: versioned schema_migrations tracking
//   - tenants.go, credentials.go, users.go, alerts.go: entity access
//   - upsert.go: the idempotent write path (UpsertRows)
//   - fetch.go: the tenant-scoped read path (FetchRows, RowFilter)
//
// # Write Path
//
// UpsertRows validates rows, drops in-batch duplicates, and inserts the rest
// with multi-row INSERT ... ON CONFLICT (session_id) DO NOTHING statements
// inside a single transaction. Re-running a fetch for the same tenant and
// date range therefore never creates duplicate rows.
//
// # Usage
//
//	db, err := database.New(&cfg.Database)
//	if err != nil {
//	    return err
//	}
//	defer db.Close()
//
//	res, err := db.UpsertRows(ctx, models.TableGSCQueries, rows)
//
// # Thread Safety
//
// DB is safe for concurrent use. Each call acquires a pooled connection and
// transactions never span provider calls.
package database
