// Rankpulse - SEO and Marketing Analytics Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rankpulse

package database

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/tomtom215/rankpulse/internal/models"
)

// DefaultRowLimit is the row cap applied when a filter sets none.
const DefaultRowLimit = 100

// MaxRowLimit is the largest row cap a filter may request.
const MaxRowLimit = 10000

// RowFilter narrows a read of one metric table.
type RowFilter struct {
	// Range limits rows to dates inside the inclusive range. Nil reads all dates.
	Range *models.DateRange

	// Limit caps the number of rows; zero applies DefaultRowLimit.
	Limit int
}

// RowFilterFromQuery builds a filter from data-viewer query parameters.
//
//   - start and end (YYYY-MM-DD) select an explicit range; both are required
//   - range=today selects the current date
//   - range=N selects the last N days up to and including today
//   - limit overrides DefaultRowLimit
//
// start/end take precedence over range. now supplies "today".
func RowFilterFromQuery(q url.Values, now time.Time) (RowFilter, error) {
	var filter RowFilter

	start, end := strings.TrimSpace(q.Get("start")), strings.TrimSpace(q.Get("end"))
	rangeVal := strings.TrimSpace(q.Get("range"))

	switch {
	case start != "" || end != "":
		if start == "" || end == "" {
			return filter, fmt.Errorf("%w: start and end must be given together", models.ErrInvalidRange)
		}
		r, err := models.ParseDateRange(start, end)
		if err != nil {
			return filter, err
		}
		filter.Range = &r

	case rangeVal == "today":
		r := models.SingleDay(now)
		filter.Range = &r

	case rangeVal != "":
		days, err := strconv.Atoi(rangeVal)
		if err != nil || days < 0 {
			return filter, fmt.Errorf("%w: range must be \"today\" or a non-negative day count, got %q", models.ErrInvalidRange, rangeVal)
		}
		today := models.Day(now)
		r, err := models.NewDateRange(today.AddDate(0, 0, -days), today)
		if err != nil {
			return filter, err
		}
		filter.Range = &r
	}

	if raw := strings.TrimSpace(q.Get("limit")); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 || limit > MaxRowLimit {
			return filter, fmt.Errorf("%w: limit must be between 1 and %d", models.ErrInvalidRange, MaxRowLimit)
		}
		filter.Limit = limit
	}

	return filter, nil
}

// effectiveLimit returns the row cap after defaults and bounds.
func (f RowFilter) effectiveLimit() int {
	switch {
	case f.Limit <= 0:
		return DefaultRowLimit
	case f.Limit > MaxRowLimit:
		return MaxRowLimit
	default:
		return f.Limit
	}
}

// FetchRows reads a tenant's rows of one table, newest date first.
func (db *DB) FetchRows(ctx context.Context, table models.Table, tenantID string, filter RowFilter) ([]models.Row, error) {
	if !table.Valid() {
		return nil, fmt.Errorf("%w: %q", models.ErrUnknownTable, table)
	}
	if tenantID == "" {
		return nil, ErrEmptyTenantID
	}
	if db.conn == nil {
		return nil, ErrDatabaseClosed
	}

	ctx, cancel := ensureContext(ctx)
	defer cancel()

	columns := append(table.Columns(), "created_at")
	qb := newQueryBuilder(fmt.Sprintf("SELECT %s FROM %s", strings.Join(columns, ", "), table)).
		addFilter("tenant_id = ?", tenantID)
	if filter.Range != nil {
		qb.addFilter("date >= ?", filter.Range.Start.Format(models.DateLayout)).
			addFilter("date <= ?", filter.Range.End.Format(models.DateLayout))
	}
	query, args := qb.build("ORDER BY date DESC, session_id LIMIT ?", filter.effectiveLimit())

	rows, err := queryAndScan(ctx, db.conn, db.rebind(query), args, func(r *sqlx.Rows) (models.Row, error) {
		row, err := models.NewRow(table)
		if err != nil {
			return nil, err
		}
		if err := r.StructScan(row); err != nil {
			return nil, fmt.Errorf("failed to scan %s row: %w", table, err)
		}
		row.Base().Date = row.Base().Date.UTC()
		return row, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s rows: %w", table, classifyError(err))
	}
	if rows == nil {
		rows = []models.Row{}
	}
	return rows, nil
}

// FetchServiceRows reads every table of a service, keyed by table alias.
func (db *DB) FetchServiceRows(ctx context.Context, svc models.Service, tenantID string, filter RowFilter) (map[string][]models.Row, error) {
	tables := svc.Tables()
	if len(tables) == 0 {
		return nil, fmt.Errorf("%w: %q", models.ErrUnknownService, svc)
	}

	out := make(map[string][]models.Row, len(tables))
	for _, table := range tables {
		rows, err := db.FetchRows(ctx, table, tenantID, filter)
		if err != nil {
			return nil, err
		}
		out[table.Alias()] = rows
	}
	return out, nil
}

// CountRows returns the number of a tenant's rows in table.
func (db *DB) CountRows(ctx context.Context, table models.Table, tenantID string) (int, error) {
	if !table.Valid() {
		return 0, fmt.Errorf("%w: %q", models.ErrUnknownTable, table)
	}

	ctx, cancel := ensureContext(ctx)
	defer cancel()

	var n int
	err := db.conn.GetContext(ctx, &n,
		db.rebind(fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE tenant_id = ?", table)), tenantID)
	if err != nil {
		return 0, fmt.Errorf("failed to count %s rows: %w", table, classifyError(err))
	}
	return n, nil
}
