// Rankpulse - SEO and Marketing Analytics Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rankpulse

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/rankpulse/internal/models"
)

// HealthStatus is the /health payload.
type HealthStatus struct {
	Status            string                    `json:"status"`
	Version           string                    `json:"version"`
	DatabaseConnected bool                      `json:"database_connected"`
	DatabaseDriver    string                    `json:"database_driver,omitempty"`
	Providers         map[models.Service]string `json:"providers,omitempty"`
	Uptime            float64                   `json:"uptime_seconds"`
}

// Health reports database connectivity and provider circuit breaker state.
// An open breaker degrades the status; a lost database answers 503.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	dbConnected := h.db != nil && h.db.Ping(r.Context()) == nil

	health := HealthStatus{
		Status:            "healthy",
		Version:           h.version,
		DatabaseConnected: dbConnected,
		Uptime:            time.Since(h.startTime).Seconds(),
	}
	if h.db != nil {
		health.DatabaseDriver = h.db.Driver()
	}

	if h.guards != nil {
		health.Providers = h.guards.State()
		for _, state := range health.Providers {
			if state != "closed" {
				health.Status = "degraded"
			}
		}
	}

	if !dbConnected {
		health.Status = "unhealthy"
		NewResponseWriter(w, r).ErrorWithDetails(http.StatusServiceUnavailable,
			ErrCodeServiceUnavailable, "database unavailable", health)
		return
	}

	WriteSuccess(w, r, health)
}
