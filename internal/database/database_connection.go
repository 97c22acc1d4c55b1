// Rankpulse - SEO and Marketing Analytics Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rankpulse

/*
database_connection.go - Connection Pool Configuration and Error Classification

Connection Pool Configuration:
  - MaxOpenConns: DATABASE_MAX_OPEN_CONNS, or the CPU count when unset
  - MaxIdleConns: 2 for efficient connection reuse
  - ConnMaxLifetime: 1 hour to prevent stale connections
  - ConnMaxIdleTime: 5 minutes for idle connection cleanup

Error Classification:
Connection failures and write-write conflicts are distinguished from
ordinary query errors so callers can report them with the right status.
DuckDB reports concurrent inserts of the same unique key as a transaction
conflict; Postgres serializes them on the unique index instead.
*/

//nolint:staticcheck // File documentation, not package doc
package database

import (
	"context"
	"errors"
	"runtime"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
)

// configureConnectionPool sets up connection pool parameters
func (db *DB) configureConnectionPool() error {
	maxOpen := db.cfg.MaxOpenConns
	if maxOpen <= 0 {
		maxOpen = runtime.NumCPU()
	}

	db.conn.SetMaxOpenConns(maxOpen)
	db.conn.SetMaxIdleConns(2)
	db.conn.SetConnMaxLifetime(time.Hour)
	db.conn.SetConnMaxIdleTime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return db.conn.PingContext(ctx)
}

// isConnectionError checks if an error is a connection-related error
func isConnectionError(err error) bool {
	if err == nil {
		return false
	}

	errStr := strings.ToLower(err.Error())
	connectionErrors := []string{
		"connection refused",
		"connection reset",
		"broken pipe",
		"bad connection",
		"database is closed",
		"no connection",
		"connection lost",
	}

	for _, connErr := range connectionErrors {
		if strings.Contains(errStr, connErr) {
			return true
		}
	}

	return false
}

// isTransactionConflict checks if an error is a write-write conflict that
// aborted the transaction.
func isTransactionConflict(err error) bool {
	if err == nil {
		return false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// serialization_failure, deadlock_detected
		return pgErr.Code == "40001" || pgErr.Code == "40P01"
	}

	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "transaction conflict") ||
		strings.Contains(errStr, "conflict on update")
}

// isUniqueViolation reports whether err is a unique constraint violation.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}

	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "duplicate key") ||
		strings.Contains(errStr, "unique constraint")
}

// classifyError wraps connection and conflict failures in the package sentinels.
func classifyError(err error) error {
	switch {
	case err == nil:
		return nil
	case isConnectionError(err):
		return errors.Join(ErrConnection, err)
	case isTransactionConflict(err):
		return errors.Join(ErrWriteConflict, err)
	default:
		return err
	}
}
