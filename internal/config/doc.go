// Rankpulse - SEO and Marketing Analytics Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rankpulse

/*
Package config provides layered configuration management for Rankpulse.

Configuration is loaded with Koanf v2 from three sources, later sources
overriding earlier ones:

 1. Built-in defaults (defaultConfig)
 2. Optional YAML file (CONFIG_PATH, ./config.yaml, /etc/rankpulse/config.yaml)
 3. Environment variables (explicit mapping table, unknown variables ignored)

Sections:

  - database: driver (duckdb or postgres), DuckDB path and tuning, Postgres DSN
  - server: HTTP listen address, timeouts, environment
  - security: JWT secret and lifetime, credential encryption secret, CORS, rate limits
  - providers: Search Console lag, outbound rate limits, circuit breaker, Cloudflare endpoint
  - ingest: maximum fetch range
  - logging: zerolog level, format, caller

The package also provides CredentialEncryptor (AES-256-GCM with an HKDF-derived
key) used to encrypt tenant credentials at rest, and PasswordPolicy used at
user registration.

Example:

	cfg, err := config.Load()
	if err != nil {
	    logging.Fatal().Err(err).Msg("Failed to load configuration")
	}
*/
package config
