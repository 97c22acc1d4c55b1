// Rankpulse - SEO and Marketing Analytics Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rankpulse

package database

import (
	"context"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
)

// defaultQueryTimeout bounds calls whose context has no deadline.
const defaultQueryTimeout = 30 * time.Second

func ensureContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}
	if _, ok := ctx.Deadline(); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, defaultQueryTimeout)
}

// queryBuilder ANDs ? placeholder conditions onto a SELECT. The result
// still needs DB.rebind for Postgres.
type queryBuilder struct {
	sb    strings.Builder
	args  []interface{}
	where bool
}

func newQueryBuilder(base string) *queryBuilder {
	qb := &queryBuilder{}
	qb.sb.WriteString(base)
	return qb
}

func (qb *queryBuilder) addFilter(cond string, args ...interface{}) *queryBuilder {
	if qb.where {
		qb.sb.WriteString(" AND ")
	} else {
		qb.sb.WriteString(" WHERE ")
		qb.where = true
	}
	qb.sb.WriteString(cond)
	qb.args = append(qb.args, args...)
	return qb
}

// build appends suffix (ORDER BY, LIMIT) and its args.
func (qb *queryBuilder) build(suffix string, suffixArgs ...interface{}) (string, []interface{}) {
	query := qb.sb.String()
	if suffix != "" {
		query += " " + suffix
	}
	return query, append(qb.args, suffixArgs...)
}

// queryAndScan runs query and converts each row with scan.
func queryAndScan[T any](ctx context.Context, db *sqlx.DB, query string, args []interface{}, scan func(*sqlx.Rows) (T, error)) (out []T, err error) {
	rows, err := db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); err == nil {
			err = cerr
		}
	}()

	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, rows.Err()
}
