// Rankpulse - SEO and Marketing Analytics Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rankpulse

package database

import (
	"context"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx/types"
)

// AlertEvent is an alert received through the webhook. Data holds the full
// JSON payload as received.
type AlertEvent struct {
	ID             string         `db:"id" json:"id"`
	TenantID       string         `db:"tenant_id" json:"tenant_id"`
	AlertType      string         `db:"alert_type" json:"alert_type"`
	Message        string         `db:"message" json:"message"`
	AlertTriggered bool           `db:"alert_triggered" json:"alert_triggered"`
	Data           types.JSONText `db:"data" json:"data,omitempty"`
	CreatedAt      time.Time      `db:"created_at" json:"created_at"`
}

// InsertAlertEvent stores the alert, assigning an id when none is set.
// payload is marshaled into the data column.
func (db *DB) InsertAlertEvent(ctx context.Context, event *AlertEvent, payload any) error {
	if event.TenantID == "" {
		return ErrEmptyTenantID
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}

	data := "{}"
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal alert payload: %w", err)
		}
		data = string(raw)
	}
	event.Data = types.JSONText(data)

	ctx, cancel := ensureContext(ctx)
	defer cancel()

	_, err := db.conn.ExecContext(ctx, db.rebind(`
		INSERT INTO alert_events (id, tenant_id, alert_type, message, alert_triggered, data)
		VALUES (?, ?, ?, ?, ?, ?)`),
		event.ID, event.TenantID, event.AlertType, event.Message, event.AlertTriggered, data)
	if err != nil {
		return fmt.Errorf("failed to insert alert event: %w", classifyError(err))
	}
	return nil
}

// ListAlertEvents returns a tenant's most recent alerts, newest first.
func (db *DB) ListAlertEvents(ctx context.Context, tenantID string, limit int) ([]AlertEvent, error) {
	if limit <= 0 {
		limit = DefaultRowLimit
	}

	ctx, cancel := ensureContext(ctx)
	defer cancel()

	events := []AlertEvent{}
	err := db.conn.SelectContext(ctx, &events, db.rebind(`
		SELECT id, tenant_id, alert_type, message, alert_triggered, data, created_at
		FROM alert_events
		WHERE tenant_id = ?
		ORDER BY created_at DESC
		LIMIT ?`), tenantID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list alert events: %w", classifyError(err))
	}
	return events, nil
}
