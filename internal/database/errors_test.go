// Rankpulse - SEO and Marketing Analytics Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rankpulse

package database

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

// mockCloser implements io.Closer for testing
type mockCloser struct {
	closed bool
	err    error
}

func (m *mockCloser) Close() error {
	m.closed = true
	return m.err
}

func TestCloseWithLog(t *testing.T) {
	t.Run("nil closer does not panic", func(t *testing.T) {
		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))

		closeWithLog(nil, logger, "test")

		if buf.Len() > 0 {
			t.Errorf("Expected no log output for nil closer, got: %s", buf.String())
		}
	})

	t.Run("successful close does not log", func(t *testing.T) {
		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))

		closer := &mockCloser{}
		closeWithLog(closer, logger, "rows")

		if !closer.closed {
			t.Error("Expected closer to be closed")
		}
		if buf.Len() > 0 {
			t.Errorf("Expected no log output for successful close, got: %s", buf.String())
		}
	})

	t.Run("error during close is logged", func(t *testing.T) {
		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))

		closer := &mockCloser{err: errors.New("close failed: connection reset")}
		closeWithLog(closer, logger, "database connection")

		logOutput := buf.String()
		for _, want := range []string{"failed to close resource", "database connection", "connection reset"} {
			if !strings.Contains(logOutput, want) {
				t.Errorf("Expected log to contain %q, got: %s", want, logOutput)
			}
		}
	})

	t.Run("nil logger falls back to zerolog", func(t *testing.T) {
		closer := &mockCloser{err: errors.New("close failed")}
		closeWithLog(closer, nil, "test resource")

		if !closer.closed {
			t.Error("Expected closer to be closed")
		}
	})
}

func TestCloseQuietly(t *testing.T) {
	closeQuietly(nil)

	closer := &mockCloser{err: errors.New("close failed")}
	closeQuietly(closer)
	if !closer.closed {
		t.Error("Expected closer to be closed even with error")
	}
}

func TestClassifyError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"connection refused", errors.New("dial tcp: connection refused"), ErrConnection},
		{"bad connection", fmt.Errorf("query: %w", errors.New("driver: bad connection")), ErrConnection},
		{"duckdb conflict", errors.New("TransactionContext Error: Transaction conflict: cannot update a table that has been altered"), ErrWriteConflict},
		{"postgres serialization", &pgconn.PgError{Code: "40001"}, ErrWriteConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifyError(tt.err)
			if !errors.Is(got, tt.want) {
				t.Errorf("classifyError(%v) = %v, want wrapping %v", tt.err, got, tt.want)
			}
			if !errors.Is(got, tt.err) {
				t.Errorf("classifyError(%v) lost the original error", tt.err)
			}
		})
	}

	plain := errors.New("syntax error at or near SELECT")
	if got := classifyError(plain); got != plain {
		t.Errorf("classifyError(plain) = %v, want unchanged", got)
	}
	if classifyError(nil) != nil {
		t.Error("classifyError(nil) should be nil")
	}
}

func TestIsUniqueViolation(t *testing.T) {
	if !isUniqueViolation(&pgconn.PgError{Code: "23505"}) {
		t.Error("pg 23505 should be a unique violation")
	}
	if !isUniqueViolation(errors.New("Constraint Error: Duplicate key \"email: a@b.c\" violates unique constraint")) {
		t.Error("duckdb duplicate key should be a unique violation")
	}
	if isUniqueViolation(errors.New("no such table")) {
		t.Error("unrelated error classified as unique violation")
	}
}
