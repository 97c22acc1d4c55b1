// Rankpulse - SEO and Marketing Analytics Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rankpulse

package database

import (
	"context"
	"strings"
	"testing"

	"github.com/goccy/go-json"
)

func TestEnsureTenant(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	checkNoError(t, db.EnsureTenant(ctx, "t1"))
	checkNoError(t, db.EnsureTenant(ctx, "t1"))

	tenant, err := db.GetTenant(ctx, "t1")
	checkNoError(t, err)
	checkStringEqual(t, "tenant id", tenant.TenantID, "t1")

	_, err = db.GetTenant(ctx, "missing")
	checkErrorIs(t, err, ErrNotFound)

	checkErrorIs(t, db.EnsureTenant(ctx, "  "), ErrEmptyTenantID)
}

func TestCredentialRows_LastWriteWins(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	first, err := db.PutCredentialRow(ctx, &CredentialRow{
		TenantID: "t1", Service: "ga4", KeyName: "PROPERTY_ID", MatchKey: "PROPERTYID", Value: "123",
	})
	checkNoError(t, err)
	checkStringEqual(t, "value", first.Value, "123")
	if first.UpdatedAt.IsZero() {
		t.Error("updated_at not populated")
	}

	// Different spelling, same match key: replaces the entry.
	second, err := db.PutCredentialRow(ctx, &CredentialRow{
		TenantID: "t1", Service: "ga4", KeyName: "PROPERTYID", MatchKey: "PROPERTYID", Value: "456",
	})
	checkNoError(t, err)
	checkStringEqual(t, "key name", second.KeyName, "PROPERTYID")
	checkStringEqual(t, "value", second.Value, "456")

	rows, err := db.GetCredentialRows(ctx, "t1", "ga4")
	checkNoError(t, err)
	checkSliceLen(t, "ga4 rows", len(rows), 1)
	checkStringEqual(t, "stored value", rows[0].Value, "456")
}

func TestCredentialRows_ScopedByTenantAndService(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	put := func(tenant, service, key, value string) {
		t.Helper()
		_, err := db.PutCredentialRow(ctx, &CredentialRow{
			TenantID: tenant, Service: service, KeyName: key, MatchKey: strings.ReplaceAll(key, "_", ""), Value: value,
		})
		checkNoError(t, err)
	}
	put("t1", "cloudflare", "API_TOKEN", "tok-1")
	put("t1", "cloudflare", "ZONE_ID", "zone-1")
	put("t1", "gsc", "SITE_URL", "https://example.com/")
	put("t2", "cloudflare", "API_TOKEN", "tok-2")

	cf, err := db.GetCredentialRows(ctx, "t1", "cloudflare")
	checkNoError(t, err)
	checkSliceLen(t, "t1 cloudflare", len(cf), 2)
	checkStringEqual(t, "sorted first key", cf[0].KeyName, "API_TOKEN")

	all, err := db.ListCredentialRows(ctx, "t1")
	checkNoError(t, err)
	checkSliceLen(t, "t1 all", len(all), 3)
	checkStringEqual(t, "service order", all[0].Service, "cloudflare")
	checkStringEqual(t, "service order", all[2].Service, "gsc")

	none, err := db.GetCredentialRows(ctx, "t3", "ga4")
	checkNoError(t, err)
	if none == nil || len(none) != 0 {
		t.Errorf("expected empty non-nil slice, got %v", none)
	}

	_, err = db.PutCredentialRow(ctx, &CredentialRow{TenantID: "t1", Service: "gsc"})
	if err == nil {
		t.Error("expected error for empty match key")
	}
}

func TestUsers(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	user := &User{UserID: "u1", Email: " Owner@Example.com ", PasswordHash: "hash", TenantID: "tenant-1"}
	checkNoError(t, db.CreateUser(ctx, user))
	checkStringEqual(t, "normalized email", user.Email, "owner@example.com")

	got, err := db.GetUserByEmail(ctx, "OWNER@example.com")
	checkNoError(t, err)
	checkStringEqual(t, "user id", got.UserID, "u1")
	checkStringEqual(t, "tenant id", got.TenantID, "tenant-1")
	checkStringEqual(t, "hash", got.PasswordHash, "hash")

	// Registration creates the tenant too.
	_, err = db.GetTenant(ctx, "tenant-1")
	checkNoError(t, err)

	dup := &User{UserID: "u2", Email: "owner@example.com", PasswordHash: "x", TenantID: "tenant-2"}
	checkErrorIs(t, db.CreateUser(ctx, dup), ErrDuplicate)

	_, err = db.GetTenant(ctx, "tenant-2")
	checkErrorIs(t, err, ErrNotFound)

	_, err = db.GetUserByEmail(ctx, "nobody@example.com")
	checkErrorIs(t, err, ErrNotFound)
}

func TestAlertEvents(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	payload := map[string]any{
		"tenant_id":       "t1",
		"alert_type":      "traffic_drop",
		"message":         "clicks down 40%",
		"alert_triggered": true,
	}
	event := &AlertEvent{TenantID: "t1", AlertType: "traffic_drop", Message: "clicks down 40%", AlertTriggered: true}
	checkNoError(t, db.InsertAlertEvent(ctx, event, payload))
	if event.ID == "" {
		t.Fatal("expected an id to be assigned")
	}

	checkNoError(t, db.InsertAlertEvent(ctx, &AlertEvent{TenantID: "t2", AlertType: "x", Message: "y"}, nil))

	events, err := db.ListAlertEvents(ctx, "t1", 0)
	checkNoError(t, err)
	checkSliceLen(t, "t1 events", len(events), 1)
	checkStringEqual(t, "alert type", events[0].AlertType, "traffic_drop")
	if !events[0].AlertTriggered {
		t.Error("alert_triggered not persisted")
	}

	var data map[string]any
	checkNoError(t, json.Unmarshal(events[0].Data, &data))
	if data["message"] != "clicks down 40%" {
		t.Errorf("payload message = %v", data["message"])
	}

	checkErrorIs(t, db.InsertAlertEvent(ctx, &AlertEvent{}, nil), ErrEmptyTenantID)
}
