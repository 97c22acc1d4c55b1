// Rankpulse - SEO and Marketing Analytics Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rankpulse

package api

import (
	"crypto/subtle"
	"fmt"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/tomtom215/rankpulse/internal/database"
	"github.com/tomtom215/rankpulse/internal/logging"
	"github.com/tomtom215/rankpulse/internal/metrics"
)

// WebhookSecretHeader carries the shared secret of the alert webhook.
const WebhookSecretHeader = "X-Webhook-Secret"

// AlertWebhook stores an alert sent by an external monitor. The complete
// JSON body is kept in the event's data column. When a webhook secret is
// configured the request must present it.
func (h *Handler) AlertWebhook(w http.ResponseWriter, r *http.Request) {
	if secret := h.webhookSecret(); secret != "" {
		got := r.Header.Get(WebhookSecretHeader)
		if subtle.ConstantTimeCompare([]byte(got), []byte(secret)) != 1 {
			respondErr(w, r, ErrWebhookSecret)
			return
		}
	}

	body, err := readBody(w, r)
	if err != nil {
		respondErr(w, r, err)
		return
	}

	var req alertRequest
	if err := decodeBytes(body, &req, false); err != nil {
		respondErr(w, r, err)
		return
	}

	var payload map[string]interface{}
	if err := json.Unmarshal(body, &payload); err != nil {
		respondErr(w, r, fmt.Errorf("%w: invalid JSON body: %v", ErrBadRequest, err))
		return
	}

	ctx := r.Context()
	if err := h.db.EnsureTenant(ctx, req.TenantID); err != nil {
		respondErr(w, r, err)
		return
	}

	event := &database.AlertEvent{
		TenantID:       req.TenantID,
		AlertType:      req.AlertType,
		Message:        req.Message,
		AlertTriggered: req.AlertTriggered,
	}
	if err := h.db.InsertAlertEvent(ctx, event, payload); err != nil {
		respondErr(w, r, err)
		return
	}

	metrics.AlertEventsReceived.WithLabelValues(req.AlertType).Inc()
	logging.Ctx(ctx).Info().
		Str("tenant_id", req.TenantID).
		Str("alert_type", req.AlertType).
		Bool("alert_triggered", req.AlertTriggered).
		Str("alert_id", event.ID).
		Msg("Alert event stored")

	event.CreatedAt = h.now().UTC()
	NewResponseWriter(w, r).Created(event)
}

// ListAlerts returns the caller's stored alerts, newest first. The limit
// query parameter caps the count as it does for data reads.
func (h *Handler) ListAlerts(w http.ResponseWriter, r *http.Request) {
	filter, err := database.RowFilterFromQuery(r.URL.Query(), h.now())
	if err != nil {
		respondErr(w, r, err)
		return
	}

	events, err := h.db.ListAlertEvents(r.Context(), tenantID(r), filter.Limit)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	NewResponseWriter(w, r).SuccessWithCount(events, len(events))
}

func (h *Handler) webhookSecret() string {
	if h.config == nil {
		return ""
	}
	return h.config.Security.WebhookSecret
}
