// Rankpulse - SEO and Marketing Analytics Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rankpulse

/*
Package main is the entry point for the Rankpulse server.

Rankpulse pulls daily marketing metrics from Google Search Console, Google
Analytics 4 and Cloudflare for many tenants, stores them idempotently in
DuckDB or PostgreSQL, and serves them back over a JSON API.

# Startup

 1. Configuration: Koanf v2 (defaults, optional config file, environment)
 2. Logging: zerolog, JSON or console
 3. Database: DuckDB (default) or PostgreSQL, schema applied on open
 4. Credentials: per-tenant store, AES-GCM sealed when CREDENTIAL_SECRET is set
 5. Providers: per-service circuit breakers and rate limiters, adapter registry
 6. Ingest orchestrator, accounts, API router
 7. Supervisor tree: HTTP server, DuckDB checkpoint loop

# Configuration

	HTTP_PORT=8080
	DATABASE_DRIVER=duckdb           # or postgres
	DUCKDB_PATH=/data/rankpulse.duckdb
	DATABASE_DSN=postgres://...      # postgres only
	JWT_SECRET=<32+ chars>           # required
	CREDENTIAL_SECRET=<secret>       # optional at-rest encryption
	WEBHOOK_SECRET=<secret>          # optional alert webhook secret
	GSC_LAG_DAYS=3
	LOG_LEVEL=info
	LOG_FORMAT=json

A YAML config file can be given with CONFIG_PATH.

# Signals

SIGINT and SIGTERM cancel the supervisor context: the HTTP server drains for
up to 10s, the checkpoint service flushes once more, then the database is
closed.
*/
package main
