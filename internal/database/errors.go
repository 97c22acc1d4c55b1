// Rankpulse - SEO and Marketing Analytics Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rankpulse

package database

import (
	"database/sql"
	"errors"
	"io"
	"log/slog"

	"github.com/tomtom215/rankpulse/internal/logging"
)

var (
	// ErrDatabaseClosed is returned when the connection pool has been closed.
	ErrDatabaseClosed = errors.New("database connection is closed")

	// ErrConnection marks failures to reach the database.
	ErrConnection = errors.New("database connection error")

	// ErrWriteConflict marks transactions aborted by a concurrent writer.
	ErrWriteConflict = errors.New("write conflict")

	// ErrTableMismatch is returned when a row does not belong to the target table.
	ErrTableMismatch = errors.New("row does not belong to table")

	// ErrNotFound is returned when a single-row lookup matches nothing.
	ErrNotFound = errors.New("not found")

	// ErrDuplicate is returned when a unique column already holds the value.
	ErrDuplicate = errors.New("already exists")
)

// isNoRows reports whether err signals an empty single-row result.
func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// closeWithLog closes a resource and logs any error
// Use this for cleanup operations where errors should be acknowledged but not fail the operation
func closeWithLog(closer io.Closer, logger *slog.Logger, resourceType string) {
	if closer == nil {
		return
	}
	if err := closer.Close(); err != nil {
		if logger != nil {
			logger.Error("failed to close resource",
				"type", resourceType,
				"error", err)
		} else {
			logging.Warn().Str("type", resourceType).Err(err).Msg("Failed to close resource")
		}
	}
}

// closeQuietly closes a resource and explicitly ignores any error.
// Use this in error paths where Close() errors are not actionable.
func closeQuietly(closer io.Closer) {
	if closer != nil {
		_ = closer.Close()
	}
}
