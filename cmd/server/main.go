// Rankpulse - SEO and Marketing Analytics Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rankpulse

package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/tomtom215/rankpulse/internal/api"
	"github.com/tomtom215/rankpulse/internal/auth"
	"github.com/tomtom215/rankpulse/internal/config"
	"github.com/tomtom215/rankpulse/internal/credentials"
	"github.com/tomtom215/rankpulse/internal/database"
	"github.com/tomtom215/rankpulse/internal/ingest"
	"github.com/tomtom215/rankpulse/internal/logging"
	"github.com/tomtom215/rankpulse/internal/metrics"
	"github.com/tomtom215/rankpulse/internal/models"
	"github.com/tomtom215/rankpulse/internal/providers"
	"github.com/tomtom215/rankpulse/internal/providers/analytics"
	"github.com/tomtom215/rankpulse/internal/providers/cloudflare"
	"github.com/tomtom215/rankpulse/internal/providers/searchconsole"
	"github.com/tomtom215/rankpulse/internal/supervisor"
	"github.com/tomtom215/rankpulse/internal/supervisor/services"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := run(); err != nil {
		logging.Fatal().Err(err).Msg("Rankpulse stopped with an error")
	}
}

//nolint:gocyclo // Sequential setup steps
func run() error {
	cfg, err := config.Load()
	if err != nil {
		// Logging is not configured yet; the default logger reports it.
		logging.Error().Err(err).Msg("Failed to load configuration")
		return err
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
		App:       "rankpulse",
	})

	logging.Info().
		Str("version", version).
		Str("driver", cfg.Database.Driver).
		Str("environment", cfg.Server.Environment).
		Bool("credential_encryption", cfg.Security.CredentialSecret != "").
		Bool("webhook_secret", cfg.Security.WebhookSecret != "").
		Msg("Starting Rankpulse")
	if cfg.ShouldWarnAboutCORS() {
		logging.Warn().Msg("CORS_ORIGINS allows any origin; restrict it before exposing the API publicly")
	}

	metrics.AppInfo.WithLabelValues(version, runtime.Version()).Set(1)

	db, err := database.New(&cfg.Database)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing database")
		}
	}()
	logging.Info().Str("driver", db.Driver()).Msg("Database initialized")

	var encryptor *config.CredentialEncryptor
	if cfg.Security.CredentialSecret != "" {
		encryptor, err = config.NewCredentialEncryptor(cfg.Security.CredentialSecret)
		if err != nil {
			return err
		}
		if err := encryptor.SelfCheck(); err != nil {
			return err
		}
	} else {
		logging.Warn().Msg("CREDENTIAL_SECRET not set; tenant credentials are stored unencrypted")
	}
	store := credentials.NewStore(db, encryptor)

	guards := providers.NewGuards(cfg.Providers)
	opts := providers.Options{
		Guards:             guards,
		HTTPClient:         &http.Client{Timeout: cfg.Providers.RequestTimeout},
		CloudflareEndpoint: cfg.Providers.CloudflareEndpoint,
	}
	registry := providers.NewRegistry()
	registry.Register(models.ServiceSearchConsole, searchconsole.Constructor(opts))
	registry.Register(models.ServiceAnalytics, analytics.Constructor(opts))
	registry.Register(models.ServiceCloudflare, cloudflare.Constructor(opts))

	orchestrator := ingest.NewOrchestrator(db, store, registry, cfg)

	jwtManager, err := auth.NewJWTManager(&cfg.Security)
	if err != nil {
		return err
	}

	handler := api.NewHandler(api.Dependencies{
		DB:       db,
		Store:    store,
		Accounts: auth.NewService(db, jwtManager),
		Fetcher:  orchestrator,
		Guards:   guards,
		Config:   cfg,
		Version:  version,
	})
	router := api.NewRouter(handler,
		auth.NewMiddleware(jwtManager, api.AuthErrorWriter),
		api.ChiMiddlewareConfigFromSecurity(&cfg.Security))

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router.SetupChi(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		// Fetches run synchronously and may span many provider calls.
		WriteTimeout: 0,
		IdleTimeout:  60 * time.Second,
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger("supervisor"), supervisor.DefaultTreeConfig())
	if err != nil {
		return err
	}
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))
	if db.Driver() == config.DriverDuckDB {
		tree.AddDataService(services.NewCheckpointService(db, services.DefaultCheckpointInterval))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logging.Info().Str("addr", server.Addr).Msg("Starting supervisor tree")
	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Shutdown signal received, waiting for services")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	if unstopped, _ := tree.UnstoppedServiceReport(); len(unstopped) > 0 {
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
		}
	}

	logging.Info().Msg("Rankpulse stopped")
	return nil
}
