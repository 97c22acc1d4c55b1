// Rankpulse - SEO and Marketing Analytics Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rankpulse

/*
upsert.go - Idempotent Metric Row Write Path

UpsertRows is the single write path for every metric table:

 1. rows are validated and must belong to the target table
 2. rows repeating a session_id within the batch are dropped
 3. one INSERT ... ON CONFLICT (session_id) DO NOTHING statement is prepared
    and executed once per row
 4. every row runs inside one transaction, committed or rolled back as a whole

Rows whose session_id already exists are counted as skipped. The unique
constraint, not a read-before-write, provides deduplication under
concurrent requests.
*/

//nolint:staticcheck // File documentation, not package doc
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/tomtom215/rankpulse/internal/logging"
	"github.com/tomtom215/rankpulse/internal/models"
)

// UpsertResult reports the outcome of one UpsertRows call.
type UpsertResult struct {
	Table    models.Table `json:"table"`
	Inserted int          `json:"inserted"`
	Skipped  int          `json:"skipped"`
}

// Total returns the number of rows handed to UpsertRows.
func (r UpsertResult) Total() int {
	return r.Inserted + r.Skipped
}

// UpsertRows inserts rows into table, ignoring rows whose session_id is
// already stored. An empty batch is a logged no-op.
func (db *DB) UpsertRows(ctx context.Context, table models.Table, rows []models.Row) (result UpsertResult, err error) {
	result.Table = table

	if !table.Valid() {
		return result, fmt.Errorf("%w: %q", models.ErrUnknownTable, table)
	}

	logger := logging.Ctx(ctx).With().Str("table", string(table)).Logger()

	if len(rows) == 0 {
		logger.Warn().Msg("No rows to upsert")
		return result, nil
	}

	unique, err := dedupeRows(table, rows)
	if err != nil {
		return result, err
	}
	result.Skipped = len(rows) - len(unique)

	if db.conn == nil {
		return result, ErrDatabaseClosed
	}

	ctx, cancel := ensureContext(ctx)
	defer cancel()

	tx, err := db.conn.BeginTxx(ctx, nil)
	if err != nil {
		return result, fmt.Errorf("failed to begin transaction: %w", classifyError(err))
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
				logger.Error().Err(rbErr).AnErr("original_error", err).Msg("Failed to rollback upsert transaction")
			}
		}
	}()

	inserted, err := db.insertRows(ctx, tx, table, unique)
	if err != nil {
		err = fmt.Errorf("failed to insert into %s: %w", table, classifyWriteError(err))
		return result, err
	}
	result.Inserted = inserted

	if err = tx.Commit(); err != nil {
		err = fmt.Errorf("failed to commit upsert into %s: %w", table, classifyWriteError(err))
		return result, err
	}

	result.Skipped = len(rows) - result.Inserted

	logger.Debug().
		Int("inserted", result.Inserted).
		Int("skipped", result.Skipped).
		Msg("Upserted rows")

	return result, nil
}

// classifyWriteError treats a unique violation as a write conflict: with
// ON CONFLICT DO NOTHING it can only come from a concurrent transaction
// inserting the same session_id.
func classifyWriteError(err error) error {
	if isUniqueViolation(err) {
		return errors.Join(ErrWriteConflict, err)
	}
	return classifyError(err)
}

// dedupeRows validates rows and keeps the first row per session_id.
func dedupeRows(table models.Table, rows []models.Row) ([]models.Row, error) {
	seen := make(map[string]struct{}, len(rows))
	unique := make([]models.Row, 0, len(rows))

	for i, row := range rows {
		if row == nil {
			return nil, fmt.Errorf("%w: %s: row %d is nil", models.ErrInvalidRow, table, i)
		}
		if row.Table() != table {
			return nil, fmt.Errorf("%w: row %d is a %s row, target is %s", ErrTableMismatch, i, row.Table(), table)
		}
		if err := row.Validate(); err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}

		id := row.Base().SessionID
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, row)
	}
	return unique, nil
}

// insertRows executes the prepared insert once per row and returns the
// number of rows written.
func (db *DB) insertRows(ctx context.Context, tx *sqlx.Tx, table models.Table, rows []models.Row) (int, error) {
	stmt, err := tx.PrepareContext(ctx, db.rebind(insertStatement(table, table.Columns())))
	if err != nil {
		return 0, fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() {
		if closeErr := stmt.Close(); closeErr != nil {
			logging.Warn().Err(closeErr).Str("table", string(table)).Msg("Failed to close prepared statement")
		}
	}()

	inserted := 0
	for i, row := range rows {
		res, err := stmt.ExecContext(ctx, row.Values()...)
		if err != nil {
			return inserted, fmt.Errorf("row %d: %w", i, err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return inserted, fmt.Errorf("failed to read affected rows: %w", err)
		}
		inserted += int(affected)
	}
	return inserted, nil
}

// insertStatement renders the single-row INSERT ... ON CONFLICT DO NOTHING
// statement for table.
func insertStatement(table models.Table, columns []string) string {
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(columns)), ", ")
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) ON CONFLICT (session_id) DO NOTHING",
		table, strings.Join(columns, ", "), placeholders)
}
