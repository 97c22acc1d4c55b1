// Rankpulse - SEO and Marketing Analytics Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rankpulse

package config

import (
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strings"
	"time"
)

const (
	minSecretLength = 32

	maxRateLimitRequests    = 100000
	maxSearchConsoleLagDays = 30
	maxBurst                = 1000
	maxIngestRangeDays      = 3660
)

// problems collects configuration errors so a bad deployment sees all of
// them at once.
type problems []error

func (p *problems) check(bad bool, format string, args ...interface{}) {
	if bad {
		*p = append(*p, fmt.Errorf(format, args...))
	}
}

// Validate reports every invalid setting, named by its environment variable.
func (c *Config) Validate() error {
	var p problems

	c.validateDatabase(&p)
	c.validateServer(&p)
	c.validateSecurity(&p)
	c.validateProviders(&p)

	p.check(c.Ingest.MaxRangeDays < 1 || c.Ingest.MaxRangeDays > maxIngestRangeDays,
		"INGEST_MAX_RANGE_DAYS must be between 1 and %d", maxIngestRangeDays)
	p.check(!slices.Contains([]string{"trace", "debug", "info", "warn", "error"}, c.Logging.Level),
		"LOG_LEVEL must be one of: trace, debug, info, warn, error")
	p.check(c.Logging.Format != "" && c.Logging.Format != "json" && c.Logging.Format != "console",
		"LOG_FORMAT must be one of: json, console")

	return errors.Join(p...)
}

func (c *Config) validateDatabase(p *problems) {
	db := c.Database
	switch db.Driver {
	case DriverDuckDB:
		p.check(db.Path == "", "DUCKDB_PATH is required when DATABASE_DRIVER=duckdb")
	case DriverPostgres:
		p.check(db.DSN == "", "DATABASE_DSN is required when DATABASE_DRIVER=postgres")
	default:
		p.check(true, "DATABASE_DRIVER must be one of: duckdb, postgres (got %q)", db.Driver)
	}
	p.check(db.MaxOpenConns < 0, "DATABASE_MAX_OPEN_CONNS must not be negative")
}

func (c *Config) validateServer(p *problems) {
	p.check(c.Server.Port < 1 || c.Server.Port > 65535, "HTTP_PORT must be between 1 and 65535")
	p.check(c.Server.Timeout <= 0, "SERVER_TIMEOUT must be positive")
}

func (c *Config) validateSecurity(p *problems) {
	s := c.Security

	if s.JWTSecret == "" {
		p.check(true, "JWT_SECRET is required")
	} else {
		checkSecret(p, "JWT_SECRET", s.JWTSecret)
	}
	p.check(s.SessionTimeout <= 0, "SESSION_TIMEOUT must be positive")

	// Optional; once set it seals every stored credential.
	if s.CredentialSecret != "" {
		checkSecret(p, "CREDENTIAL_SECRET", s.CredentialSecret)
	}

	// Every API route but health and webhooks carries bearer tokens.
	p.check(c.hasWildcardCORS() && c.IsProduction(),
		"CORS_ORIGINS=* is not allowed in production; list origins explicitly or set ENVIRONMENT=development")

	if !s.RateLimitDisabled {
		p.check(s.RateLimitReqs < 1 || s.RateLimitReqs > maxRateLimitRequests,
			"RATE_LIMIT_REQUESTS must be between 1 and %d", maxRateLimitRequests)
		p.check(s.RateLimitWindow < time.Second || s.RateLimitWindow > time.Hour,
			"RATE_LIMIT_WINDOW must be between 1s and 1h")
	}
}

func (c *Config) validateProviders(p *problems) {
	pr := c.Providers
	p.check(pr.SearchConsoleLagDays < 0 || pr.SearchConsoleLagDays > maxSearchConsoleLagDays,
		"GSC_LAG_DAYS must be between 0 and %d", maxSearchConsoleLagDays)
	p.check(pr.RequestTimeout <= 0, "PROVIDER_REQUEST_TIMEOUT must be positive")
	p.check(pr.RequestsPerSecond <= 0, "PROVIDER_REQUESTS_PER_SEC must be positive")
	p.check(pr.Burst < 1 || pr.Burst > maxBurst, "PROVIDER_BURST must be between 1 and %d", maxBurst)
	p.check(pr.BreakerFailureRatio <= 0 || pr.BreakerFailureRatio > 1, "BREAKER_FAILURE_RATIO must be in (0, 1]")
	p.check(pr.BreakerTimeout <= 0, "BREAKER_TIMEOUT must be positive")

	if err := checkEndpoint(pr.CloudflareEndpoint); err != nil {
		*p = append(*p, fmt.Errorf("CLOUDFLARE_GRAPHQL_ENDPOINT %w", err))
	}
}

func checkSecret(p *problems, name, secret string) {
	p.check(len(secret) < minSecretLength, "%s must be at least %d characters", name, minSecretLength)
	p.check(containsPlaceholder(secret),
		"%s contains a placeholder value; generate one with: openssl rand -base64 32", name)
}

// checkEndpoint requires an absolute http(s) URL. Paths are allowed.
func checkEndpoint(raw string) error {
	u, err := url.Parse(raw)
	switch {
	case err != nil:
		return fmt.Errorf("is not a URL: %w", err)
	case u.Scheme != "http" && u.Scheme != "https":
		return fmt.Errorf("scheme must be http or https, got %q", u.Scheme)
	case u.Host == "":
		return errors.New("host is required")
	}
	return nil
}

func (c *Config) hasWildcardCORS() bool {
	return slices.Contains(c.Security.CORSOrigins, "*")
}

// ShouldWarnAboutCORS reports a wildcard origin, which main logs at startup
// outside production.
func (c *Config) ShouldWarnAboutCORS() bool {
	return c.hasWildcardCORS()
}

// IsProduction matches ENVIRONMENT=production or prod in any case.
func (c *Config) IsProduction() bool {
	env := strings.ToLower(c.Server.Environment)
	return env == "production" || env == "prod"
}

// containsPlaceholder flags secrets copied from an example file.
func containsPlaceholder(value string) bool {
	upper := strings.ToUpper(value)
	for _, marker := range []string{"REPLACE", "CHANGEME", "CHANGE_ME", "YOUR_SECRET", "PLACEHOLDER", "EXAMPLE"} {
		if strings.Contains(upper, marker) {
			return true
		}
	}
	return false
}
