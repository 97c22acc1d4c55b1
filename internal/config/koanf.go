// Rankpulse - SEO and Marketing Analytics Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rankpulse

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths are searched in order when CONFIG_PATH is unset or missing.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/rankpulse/config.yaml",
	"/etc/rankpulse/config.yml",
}

// ConfigPathEnvVar names an explicit config file.
const ConfigPathEnvVar = "CONFIG_PATH"

// DefaultCloudflareEndpoint is the Cloudflare GraphQL analytics endpoint.
const DefaultCloudflareEndpoint = "https://api.cloudflare.com/client/v4/graphql"

// defaultConfig is the bottom configuration layer.
func defaultConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			Driver:       DriverDuckDB,
			Path:         "/data/rankpulse.duckdb",
			MaxMemory:    "1GB",
			Threads:      0, // runtime.NumCPU()
			MaxOpenConns: 0,
		},
		Server: ServerConfig{
			Port:        8080,
			Host:        "0.0.0.0",
			Timeout:     60 * time.Second,
			Environment: "development",
		},
		Security: SecurityConfig{
			SessionTimeout:  24 * time.Hour,
			CORSOrigins:     []string{"*"},
			RateLimitReqs:   100,
			RateLimitWindow: time.Minute,
		},
		Providers: ProvidersConfig{
			SearchConsoleLagDays: 3,
			RequestTimeout:       30 * time.Second,
			RequestsPerSecond:    5,
			Burst:                10,
			CloudflareEndpoint:   DefaultCloudflareEndpoint,
			BreakerMaxRequests:   3,
			BreakerInterval:      time.Minute,
			BreakerTimeout:       2 * time.Minute,
			BreakerFailureRatio:  0.6,
			BreakerMinRequests:   10,
		},
		Ingest: IngestConfig{
			MaxRangeDays: 366,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// LoadWithKoanf layers configuration sources, later ones winning:
// defaultConfig, then an optional YAML file, then the environment.
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}
	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}
	if err := splitListValues(k); err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// findConfigFile returns CONFIG_PATH when it exists, else the first
// existing DefaultConfigPaths entry, else "".
func findConfigFile() string {
	candidates := DefaultConfigPaths
	if p := os.Getenv(ConfigPathEnvVar); p != "" {
		candidates = append([]string{p}, candidates...)
	}
	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// listPaths are slice settings that arrive from the environment as
// comma-separated strings.
var listPaths = []string{"security.cors_origins"}

func splitListValues(k *koanf.Koanf) error {
	for _, path := range listPaths {
		raw, ok := k.Get(path).(string)
		if !ok {
			continue
		}
		var items []string
		for _, item := range strings.Split(raw, ",") {
			if item = strings.TrimSpace(item); item != "" {
				items = append(items, item)
			}
		}
		if len(items) == 0 {
			continue
		}
		if err := k.Set(path, items); err != nil {
			return fmt.Errorf("failed to split %s: %w", path, err)
		}
	}
	return nil
}

// envMappings maps environment variable names (lower-cased) to koanf paths.
var envMappings = map[string]string{
	// Database
	"database_driver":         "database.driver",
	"duckdb_path":             "database.path",
	"duckdb_max_memory":       "database.max_memory",
	"duckdb_threads":          "database.threads",
	"database_dsn":            "database.dsn",
	"database_max_open_conns": "database.max_open_conns",

	// Server
	"http_port":      "server.port",
	"http_host":      "server.host",
	"server_timeout": "server.timeout",
	"environment":    "server.environment",

	// Security
	"jwt_secret":          "security.jwt_secret",
	"session_timeout":     "security.session_timeout",
	"credential_secret":   "security.credential_secret",
	"webhook_secret":      "security.webhook_secret",
	"cors_origins":        "security.cors_origins",
	"rate_limit_requests": "security.rate_limit_reqs",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",

	// Providers
	"gsc_lag_days":                "providers.search_console_lag_days",
	"provider_request_timeout":    "providers.request_timeout",
	"provider_requests_per_sec":   "providers.requests_per_second",
	"provider_burst":              "providers.burst",
	"cloudflare_graphql_endpoint": "providers.cloudflare_endpoint",
	"breaker_max_requests":        "providers.breaker_max_requests",
	"breaker_interval":            "providers.breaker_interval",
	"breaker_timeout":             "providers.breaker_timeout",
	"breaker_failure_ratio":       "providers.breaker_failure_ratio",
	"breaker_min_requests":        "providers.breaker_min_requests",

	// Ingest
	"ingest_max_range_days": "ingest.max_range_days",

	// Logging
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

// envTransformFunc maps an environment variable to its koanf path, e.g.
// GSC_LAG_DAYS to providers.search_console_lag_days. Unmapped variables
// yield "" and are dropped.
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
