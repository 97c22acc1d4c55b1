// Rankpulse - SEO and Marketing Analytics Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rankpulse

// Package testinfra provides test infrastructure for integration testing with containers.
//
// This package uses testcontainers-go to run a real Postgres server so the
// postgres storage driver is exercised against the same schema, upsert and
// read paths as the embedded DuckDB store:
//
//	func TestPostgresUpsert(t *testing.T) {
//	    testinfra.SkipIfNoDocker(t)
//	    pg, err := testinfra.NewPostgresContainer(ctx)
//	    if err != nil {
//	        t.Fatal(err)
//	    }
//	    testinfra.CleanupContainer(t, pg)
//	    // database.New(&config.DatabaseConfig{Driver: "postgres", DSN: pg.DSN})
//	}
//
// All files carry the integration build tag; run them with
//
//	go test -tags integration ./...
//
// Tests are skipped gracefully if Docker is unavailable. The first run
// downloads the container image.
package testinfra
