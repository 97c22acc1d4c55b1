// Rankpulse - SEO and Marketing Analytics Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rankpulse

//go:build integration

package database

import (
	"context"
	"testing"
	"time"

	"github.com/tomtom215/rankpulse/internal/config"
	"github.com/tomtom215/rankpulse/internal/models"
	"github.com/tomtom215/rankpulse/internal/testinfra"
)

// TestPostgres_WriteAndReadPaths runs the write path, read path and
// credential upsert against a real Postgres server.
func TestPostgres_WriteAndReadPaths(t *testing.T) {
	testinfra.SkipIfNoDocker(t)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	pg, err := testinfra.NewPostgresContainer(ctx)
	if err != nil {
		t.Fatalf("start postgres: %v", err)
	}
	testinfra.CleanupContainer(t, pg)

	db, err := New(&config.DatabaseConfig{Driver: config.DriverPostgres, DSN: pg.DSN, MaxOpenConns: 4})
	checkNoError(t, err)
	t.Cleanup(func() { closeQuietly(db) })

	checkNoError(t, db.EnsureTenant(ctx, "t1"))

	rows := searchRows(t, models.TableGSCQueries, "t1", testDate, "golang", "postgres")
	first, err := db.UpsertRows(ctx, models.TableGSCQueries, rows)
	checkNoError(t, err)
	checkIntEqual(t, "first inserted", first.Inserted, 2)

	second, err := db.UpsertRows(ctx, models.TableGSCQueries, rows)
	checkNoError(t, err)
	checkIntEqual(t, "second inserted", second.Inserted, 0)
	checkIntEqual(t, "second skipped", second.Skipped, 2)

	got, err := db.FetchRows(ctx, models.TableGSCQueries, "t1", RowFilter{})
	checkNoError(t, err)
	checkSliceLen(t, "rows", len(got), 2)
	checkStringEqual(t, "date", got[0].Base().Date.Format(models.DateLayout), "2024-01-10")

	_, err = db.PutCredentialRow(ctx, &CredentialRow{TenantID: "t1", Service: "ga4", KeyName: "PROPERTY_ID", MatchKey: "PROPERTYID", Value: "1"})
	checkNoError(t, err)
	stored, err := db.PutCredentialRow(ctx, &CredentialRow{TenantID: "t1", Service: "ga4", KeyName: "PROPERTYID", MatchKey: "PROPERTYID", Value: "2"})
	checkNoError(t, err)
	checkStringEqual(t, "value", stored.Value, "2")

	event := &AlertEvent{TenantID: "t1", AlertType: "drop", Message: "m", AlertTriggered: true}
	checkNoError(t, db.InsertAlertEvent(ctx, event, map[string]any{"message": "m"}))
	events, err := db.ListAlertEvents(ctx, "t1", 10)
	checkNoError(t, err)
	checkSliceLen(t, "events", len(events), 1)
}
