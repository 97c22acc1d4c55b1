// Rankpulse - SEO and Marketing Analytics Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rankpulse

package searchconsole

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/tomtom215/rankpulse/internal/credentials"
	"github.com/tomtom215/rankpulse/internal/logging"
	"github.com/tomtom215/rankpulse/internal/models"
	"github.com/tomtom215/rankpulse/internal/providers"
)

// rowLimit is the maximum rows Search Console returns per query.
const rowLimit = 25000

// grouping pairs a destination table with its query dimensions.
type grouping struct {
	table      models.Table
	dimensions []string
}

// groupings are queried in table write order.
var groupings = []grouping{
	{table: models.TableGSCSummary},
	{table: models.TableGSCQueries, dimensions: []string{"query"}},
	{table: models.TableGSCPages, dimensions: []string{"page"}},
	{table: models.TableGSCCountries, dimensions: []string{"country"}},
	{table: models.TableGSCDevices, dimensions: []string{"device"}},
}

// Adapter fetches Search Console data for one tenant.
type Adapter struct {
	client Client
	guard  *providers.Guard

	mu      sync.Mutex
	siteURL string
}

// Constructor returns the registry constructor for Search Console.
func Constructor(opts providers.Options) providers.Constructor {
	return func(ctx context.Context, creds credentials.Credentials) (providers.Adapter, error) {
		return New(ctx, creds, opts)
	}
}

// New validates creds and builds an adapter backed by the Search Console API.
func New(ctx context.Context, creds credentials.Credentials, opts providers.Options) (*Adapter, error) {
	cfg, err := loadSettings(creds)
	if err != nil {
		return nil, err
	}

	client, err := newGoogleClient(ctx, cfg.serviceAccountJSON)
	if err != nil {
		return nil, err
	}

	return newAdapter(client, opts.GuardFor(models.ServiceSearchConsole), cfg.siteURL), nil
}

func newAdapter(client Client, guard *providers.Guard, siteURL string) *Adapter {
	return &Adapter{client: client, guard: guard, siteURL: siteURL}
}

// Service implements providers.Adapter.
func (a *Adapter) Service() models.Service {
	return models.ServiceSearchConsole
}

// FetchDailyMetrics queries every grouping for date. A failing grouping is
// logged and leaves its table empty; the call only fails when the site cannot
// be resolved or every grouping failed.
func (a *Adapter) FetchDailyMetrics(ctx context.Context, tenantID string, date time.Time) (models.TableRows, error) {
	siteURL, err := a.resolveSite(ctx)
	if err != nil {
		return nil, err
	}

	day := date.Format(models.DateLayout)
	logger := logging.Ctx(ctx).With().
		Str("service", string(models.ServiceSearchConsole)).
		Str("tenant_id", tenantID).
		Str("date", day).
		Logger()

	out := make(models.TableRows, len(groupings))
	var firstErr error
	failed := 0

	for _, g := range groupings {
		rows, err := a.query(ctx, siteURL, Query{
			StartDate:  day,
			EndDate:    day,
			Dimensions: g.dimensions,
			RowLimit:   rowLimit,
		})
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			logger.Warn().Err(err).Str("table", string(g.table)).Msg("Search Console grouping failed")
			failed++
			if firstErr == nil {
				firstErr = err
			}
			out[g.table] = []models.Row{}
			continue
		}

		mapped, err := mapRows(g.table, tenantID, date, rows)
		if err != nil {
			return nil, err
		}
		out[g.table] = mapped
	}

	if failed == len(groupings) {
		return nil, providers.FetchError("search console query", firstErr)
	}
	return out, nil
}

func (a *Adapter) query(ctx context.Context, siteURL string, q Query) ([]Row, error) {
	return providers.Call(ctx, a.guard, "searchanalytics.query", func(ctx context.Context) ([]Row, error) {
		return a.client.Query(ctx, siteURL, q)
	})
}

// resolveSite returns the configured site or discovers the first site the
// account owns or fully controls. The result is cached per adapter.
func (a *Adapter) resolveSite(ctx context.Context) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.siteURL != "" {
		return a.siteURL, nil
	}

	sites, err := providers.Call(ctx, a.guard, "sites.list", a.client.ListSites)
	if err != nil {
		return "", providers.FetchError("search console site list", err)
	}

	for _, s := range sites {
		if s.PermissionLevel == "siteOwner" || s.PermissionLevel == "siteFullUser" {
			logging.Ctx(ctx).Info().Str("site_url", s.URL).Msg("Auto-detected Search Console site")
			a.siteURL = s.URL
			return s.URL, nil
		}
	}
	return "", fmt.Errorf("search console: %w", providers.ErrNoAccessibleProperty)
}

// mapRows converts API rows into typed rows of table. Rows of a grouped
// query without a dimension value are invalid responses.
func mapRows(table models.Table, tenantID string, date time.Time, rows []Row) ([]models.Row, error) {
	out := make([]models.Row, 0, len(rows))
	grouped := table.DimensionColumn() != ""

	for i, r := range rows {
		dimension := ""
		if grouped {
			if len(r.Keys) == 0 {
				return nil, providers.FetchError("search console response",
					fmt.Errorf("%s row %d has no dimension value", table, i))
			}
			dimension = r.Keys[0]
		}

		row, err := models.NewSearchRow(table, tenantID, date, dimension, models.SearchMetrics{
			Clicks:      int64(math.Round(r.Clicks)),
			Impressions: int64(math.Round(r.Impressions)),
			CTR:         r.CTR,
			Position:    r.Position,
		})
		if err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, nil
}

var _ providers.Adapter = (*Adapter)(nil)
