// Rankpulse - SEO and Marketing Analytics Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rankpulse

/*
orchestrator.go - Fetch Orchestration

RunFetch drives one synchronous fetch:

 1. validate the service and range
 2. ensure the tenant row exists
 3. load credentials and build the adapter
 4. fetch each date in ascending order (or the whole range at once for
    range-capable adapters)
 5. write each date's rows in the service's fixed table order

No transaction spans an adapter call; every table write is its own
UpsertRows transaction.
*/

//nolint:staticcheck // File documentation, not package doc
package ingest

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/rankpulse/internal/config"
	"github.com/tomtom215/rankpulse/internal/credentials"
	"github.com/tomtom215/rankpulse/internal/database"
	"github.com/tomtom215/rankpulse/internal/logging"
	"github.com/tomtom215/rankpulse/internal/metrics"
	"github.com/tomtom215/rankpulse/internal/models"
	"github.com/tomtom215/rankpulse/internal/providers"
)

// DefaultMaxRangeDays is used when no config is given.
const DefaultMaxRangeDays = 366

// Writer is the persistence the orchestrator needs. *database.DB implements it.
type Writer interface {
	EnsureTenant(ctx context.Context, tenantID string) error
	UpsertRows(ctx context.Context, table models.Table, rows []models.Row) (database.UpsertResult, error)
}

// CredentialSource loads a tenant's decoded credentials for one service.
// *credentials.Store implements it.
type CredentialSource interface {
	GetCredentials(ctx context.Context, tenantID string, service models.Service) (credentials.Credentials, error)
}

// Result summarizes a fetch run.
type Result struct {
	TenantID  string         `json:"tenant_id"`
	Service   models.Service `json:"service"`
	StartDate string         `json:"start_date"`
	EndDate   string         `json:"end_date"`

	// Days is the number of dates fully fetched and written.
	Days int `json:"days"`

	// Counts holds the rows written per table.
	Counts map[models.Table]int `json:"counts"`

	// Skipped holds rows per table that were already stored.
	Skipped map[models.Table]int `json:"skipped"`

	// Failures holds the last write error per table.
	Failures map[models.Table]string `json:"failures,omitempty"`
}

// Partial reports whether any table failed to persist.
func (r *Result) Partial() bool {
	return len(r.Failures) > 0
}

// Inserted returns the total rows written across tables.
func (r *Result) Inserted() int {
	n := 0
	for _, c := range r.Counts {
		n += c
	}
	return n
}

func newResult(tenantID string, svc models.Service, r models.DateRange) *Result {
	res := &Result{
		TenantID:  tenantID,
		Service:   svc,
		StartDate: r.Start.Format(models.DateLayout),
		EndDate:   r.End.Format(models.DateLayout),
		Counts:    make(map[models.Table]int),
		Skipped:   make(map[models.Table]int),
		Failures:  make(map[models.Table]string),
	}
	for _, table := range svc.Tables() {
		res.Counts[table] = 0
		res.Skipped[table] = 0
	}
	return res
}

// Orchestrator runs fetches. It holds no per-run state and is safe for
// concurrent use.
type Orchestrator struct {
	db           Writer
	creds        CredentialSource
	factory      providers.Factory
	maxRangeDays int
}

// NewOrchestrator creates an orchestrator. A nil cfg applies the defaults.
func NewOrchestrator(db Writer, creds CredentialSource, factory providers.Factory, cfg *config.Config) *Orchestrator {
	o := &Orchestrator{
		db:           db,
		creds:        creds,
		factory:      factory,
		maxRangeDays: DefaultMaxRangeDays,
	}
	if cfg != nil {
		if cfg.Ingest.MaxRangeDays > 0 {
			o.maxRangeDays = cfg.Ingest.MaxRangeDays
		}
	}
	return o
}

// RunFetch fetches and persists svc's metrics for every date of r, exactly
// as given. Callers apply provider reporting lag before calling.
//
// On a fetch error the returned Result is non-nil and describes the dates
// persisted before the failing one.
func (o *Orchestrator) RunFetch(ctx context.Context, tenantID string, svc models.Service, r models.DateRange) (result *Result, err error) {
	if len(svc.Tables()) == 0 {
		return nil, fmt.Errorf("%w: %q", models.ErrUnknownService, svc)
	}
	if tenantID == "" {
		return nil, database.ErrEmptyTenantID
	}
	if r.End.Before(r.Start) {
		return nil, fmt.Errorf("%w: end %s is before start %s", models.ErrInvalidRange,
			r.End.Format(models.DateLayout), r.Start.Format(models.DateLayout))
	}
	if days := r.Days(); days > o.maxRangeDays {
		return nil, fmt.Errorf("%w: %d days exceeds the maximum of %d", models.ErrInvalidRange, days, o.maxRangeDays)
	}

	ctx = logging.ContextWithTenantID(ctx, tenantID)
	logger := logging.Ctx(ctx).With().
		Str("tenant_id", tenantID).
		Str("service", string(svc)).
		Str("range", r.String()).
		Logger()

	result = newResult(tenantID, svc, r)
	start := time.Now()
	defer func() {
		metrics.RecordFetchRun(string(svc), result.Days, time.Since(start), result.Partial(), err)
	}()

	if err = o.db.EnsureTenant(ctx, tenantID); err != nil {
		return result, fmt.Errorf("failed to ensure tenant: %w", err)
	}

	creds, err := o.creds.GetCredentials(ctx, tenantID, svc)
	if err != nil {
		return result, fmt.Errorf("failed to load %s credentials: %w", svc, err)
	}

	adapter, err := o.factory.New(ctx, svc, creds)
	if err != nil {
		return result, err
	}

	if rf, ok := adapter.(providers.RangeFetcher); ok {
		err = o.runRange(ctx, &logger, rf, tenantID, svc, r, result)
	} else {
		err = o.runDaily(ctx, &logger, adapter, tenantID, svc, r, result)
	}
	if err != nil {
		logger.Error().Err(err).Int("days_completed", result.Days).Msg("Fetch run failed")
		return result, err
	}

	logger.Info().
		Int("days", result.Days).
		Int("inserted", result.Inserted()).
		Int("failed_tables", len(result.Failures)).
		Dur("duration", time.Since(start)).
		Msg("Fetch run completed")

	return result, nil
}

// runDaily fetches and persists one date at a time.
func (o *Orchestrator) runDaily(ctx context.Context, logger *zerolog.Logger, adapter providers.Adapter,
	tenantID string, svc models.Service, r models.DateRange, result *Result) error {
	for _, date := range r.Dates() {
		if err := ctx.Err(); err != nil {
			return err
		}

		rows, err := adapter.FetchDailyMetrics(ctx, tenantID, date)
		if err != nil {
			return fmt.Errorf("fetch %s %s: %w", svc, date.Format(models.DateLayout), err)
		}

		o.persist(ctx, logger, svc, date, rows, result)
		result.Days++
	}
	return nil
}

// runRange fetches the whole range at once and persists it date by date.
func (o *Orchestrator) runRange(ctx context.Context, logger *zerolog.Logger, rf providers.RangeFetcher,
	tenantID string, svc models.Service, r models.DateRange, result *Result) error {
	byDate, err := rf.FetchRange(ctx, tenantID, r)
	if err != nil {
		return fmt.Errorf("fetch %s %s: %w", svc, r, err)
	}

	for _, date := range r.Dates() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if rows, ok := byDate[date.Format(models.DateLayout)]; ok {
			o.persist(ctx, logger, svc, date, rows, result)
		}
		result.Days++
	}
	return nil
}

// persist writes one date's rows in the service's table order. A failing
// table is recorded and the rest are still written.
func (o *Orchestrator) persist(ctx context.Context, logger *zerolog.Logger, svc models.Service,
	date time.Time, rows models.TableRows, result *Result) {
	day := date.Format(models.DateLayout)

	for table := range rows {
		if table.Service() != svc {
			logger.Warn().Str("table", string(table)).Str("date", day).Msg("Adapter returned rows for a foreign table, ignoring")
		}
	}

	for _, table := range svc.Tables() {
		batch := rows[table]
		if len(batch) == 0 {
			continue
		}

		start := time.Now()
		res, err := o.db.UpsertRows(ctx, table, batch)
		metrics.RecordUpsert(string(table), res.Inserted, res.Skipped, time.Since(start), err)
		if err != nil {
			result.Failures[table] = err.Error()
			logger.Error().Err(err).
				Str("table", string(table)).
				Str("date", day).
				Int("rows", len(batch)).
				Msg("Failed to persist table")
			continue
		}

		result.Counts[table] += res.Inserted
		result.Skipped[table] += res.Skipped
	}
}
