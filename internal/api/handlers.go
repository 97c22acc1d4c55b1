// Rankpulse - SEO and Marketing Analytics Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rankpulse

package api

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/tomtom215/rankpulse/internal/auth"
	"github.com/tomtom215/rankpulse/internal/config"
	"github.com/tomtom215/rankpulse/internal/credentials"
	"github.com/tomtom215/rankpulse/internal/database"
	"github.com/tomtom215/rankpulse/internal/ingest"
	"github.com/tomtom215/rankpulse/internal/models"
	"github.com/tomtom215/rankpulse/internal/providers"
)

// Fetcher runs provider fetches. *ingest.Orchestrator implements it.
type Fetcher interface {
	RunFetch(ctx context.Context, tenantID string, svc models.Service, r models.DateRange) (*ingest.Result, error)
}

// Dependencies are the services the handlers call.
type Dependencies struct {
	DB       *database.DB
	Store    *credentials.Store
	Accounts *auth.Service
	Fetcher  Fetcher

	// Guards is optional; without it /health omits breaker state.
	Guards *providers.Guards

	Config  *config.Config
	Version string
}

// Handler holds the HTTP handlers.
type Handler struct {
	db        *database.DB
	store     *credentials.Store
	accounts  *auth.Service
	fetcher   Fetcher
	guards    *providers.Guards
	config    *config.Config
	version   string
	startTime time.Time
	now       func() time.Time
}

// NewHandler creates the handler set.
func NewHandler(deps Dependencies) *Handler {
	version := deps.Version
	if version == "" {
		version = "dev"
	}
	return &Handler{
		db:        deps.DB,
		store:     deps.Store,
		accounts:  deps.Accounts,
		fetcher:   deps.Fetcher,
		guards:    deps.Guards,
		config:    deps.Config,
		version:   version,
		startTime: time.Now(),
		now:       time.Now,
	}
}

// tenantID returns the authenticated tenant. Routes using it sit behind
// auth.Middleware, so an empty value only happens on misconfigured routes.
func tenantID(r *http.Request) string {
	return auth.TenantFromContext(r.Context())
}

func clientInfo(r *http.Request) auth.ClientInfo {
	ip := r.RemoteAddr
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		ip = host
	}
	return auth.ClientInfo{IP: ip, UserAgent: r.UserAgent()}
}
