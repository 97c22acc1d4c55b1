// Rankpulse - SEO and Marketing Analytics Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rankpulse

package database

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"

	"github.com/tomtom215/rankpulse/internal/config"
	"github.com/tomtom215/rankpulse/internal/logging"
)

// sql.Open driver names registered by the blank imports above.
const (
	duckdbDriverName   = "duckdb"
	postgresDriverName = "pgx"
)

// DB wraps the pooled SQL connection and provides data access methods.
// All methods are safe for concurrent use; each call acquires its own
// connection from the pool.
type DB struct {
	conn   *sqlx.DB
	cfg    *config.DatabaseConfig
	driver string
}

// New opens the configured store and initializes the schema.
func New(cfg *config.DatabaseConfig) (*DB, error) {
	if cfg == nil {
		return nil, fmt.Errorf("database config is nil")
	}

	driver := cfg.Driver
	if driver == "" {
		driver = config.DriverDuckDB
	}

	var (
		conn *sqlx.DB
		err  error
	)
	switch driver {
	case config.DriverDuckDB:
		conn, err = openDuckDB(cfg)
	case config.DriverPostgres:
		conn, err = sqlx.Open(postgresDriverName, cfg.DSN)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db := &DB{
		conn:   conn,
		cfg:    cfg,
		driver: driver,
	}

	if err := db.configureConnectionPool(); err != nil {
		closeQuietly(conn)
		return nil, fmt.Errorf("failed to configure connection pool: %w", err)
	}

	if err := db.initialize(); err != nil {
		closeQuietly(conn)
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	logging.Info().
		Str("driver", driver).
		Msg("Database initialized")

	return db, nil
}

// openDuckDB opens the embedded store, creating the parent directory of the
// database file if needed.
func openDuckDB(cfg *config.DatabaseConfig) (*sqlx.DB, error) {
	numThreads := cfg.Threads
	if numThreads <= 0 {
		numThreads = runtime.NumCPU()
	}

	// 0750 per gosec G301
	if cfg.Path != ":memory:" {
		dbDir := filepath.Dir(cfg.Path)
		if dbDir != "" && dbDir != "." {
			if err := os.MkdirAll(dbDir, 0o750); err != nil {
				return nil, fmt.Errorf("failed to create database directory %s: %w", dbDir, err)
			}
		}
	}

	maxMemory := cfg.MaxMemory
	if maxMemory == "" {
		maxMemory = "1GB"
	}

	connStr := fmt.Sprintf("%s?access_mode=read_write&threads=%d&max_memory=%s",
		cfg.Path, numThreads, maxMemory)

	return sqlx.Open(duckdbDriverName, connStr)
}

// Driver returns the configured storage driver (duckdb or postgres).
func (db *DB) Driver() string {
	return db.driver
}

// isDuckDB reports whether the embedded store is in use.
func (db *DB) isDuckDB() bool {
	return db.driver == config.DriverDuckDB
}

// Close checkpoints the embedded store and closes the connection pool.
func (db *DB) Close() error {
	if db.conn == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := db.Checkpoint(ctx); err != nil {
		logging.Warn().Err(err).Msg("Failed to checkpoint database before close")
	}
	cancel()

	err := db.conn.Close()
	db.conn = nil
	return err
}

// Ping checks if the database connection is alive
func (db *DB) Ping(ctx context.Context) error {
	if db.conn == nil {
		return ErrDatabaseClosed
	}
	return db.conn.PingContext(ctx)
}

// Checkpoint flushes the DuckDB WAL into the database file. It is a no-op
// on Postgres.
func (db *DB) Checkpoint(ctx context.Context) error {
	if db.conn == nil {
		return ErrDatabaseClosed
	}
	if !db.isDuckDB() {
		return nil
	}

	ctx, cancel := ensureContext(ctx)
	defer cancel()

	if _, err := db.conn.ExecContext(ctx, "CHECKPOINT"); err != nil {
		return fmt.Errorf("checkpoint failed: %w", err)
	}
	return nil
}

// initialize creates tables, applies pending migrations and creates indexes.
func (db *DB) initialize() error {
	if err := db.createTables(); err != nil {
		return err
	}

	if err := db.runVersionedMigrations(); err != nil {
		return err
	}

	if err := db.createIndexes(); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := db.Checkpoint(ctx); err != nil {
		logging.Warn().Err(err).Msg("Failed to checkpoint after schema initialization")
	}

	return nil
}

// rebind converts ? placeholders into the driver's bind style.
func (db *DB) rebind(query string) string {
	return db.conn.Rebind(query)
}
