// Rankpulse - SEO and Marketing Analytics Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rankpulse

package cloudflare

import (
	"context"
	"net/http"
	"time"

	"github.com/tomtom215/rankpulse/internal/config"
	"github.com/tomtom215/rankpulse/internal/credentials"
	"github.com/tomtom215/rankpulse/internal/logging"
	"github.com/tomtom215/rankpulse/internal/models"
	"github.com/tomtom215/rankpulse/internal/providers"
)

var requirement = credentials.Requirement{
	Service: models.ServiceCloudflare,
	Fields: []credentials.Field{
		{Name: "api_token"},
		{Name: "zone_id"},
	},
}

// Adapter reads zone analytics for one tenant.
type Adapter struct {
	http     *http.Client
	guard    *providers.Guard
	endpoint string
	apiToken string
	zoneID   string
}

// Constructor returns the registry constructor for Cloudflare.
func Constructor(opts providers.Options) providers.Constructor {
	return func(ctx context.Context, creds credentials.Credentials) (providers.Adapter, error) {
		return New(ctx, creds, opts)
	}
}

// New validates creds and builds the adapter. No request is made.
func New(_ context.Context, creds credentials.Credentials, opts providers.Options) (*Adapter, error) {
	resolved, err := requirement.Resolve(creds)
	if err != nil {
		return nil, err
	}

	endpoint := opts.CloudflareEndpoint
	if endpoint == "" {
		endpoint = config.DefaultCloudflareEndpoint
	}

	return &Adapter{
		http:     opts.Client(),
		guard:    opts.GuardFor(models.ServiceCloudflare),
		endpoint: endpoint,
		apiToken: resolved.String("api_token"),
		zoneID:   resolved.String("zone_id"),
	}, nil
}

// Service implements providers.Adapter.
func (a *Adapter) Service() models.Service {
	return models.ServiceCloudflare
}

// FetchDailyMetrics fetches a single date. A date without traffic yields an
// empty table.
func (a *Adapter) FetchDailyMetrics(ctx context.Context, tenantID string, date time.Time) (models.TableRows, error) {
	byDate, err := a.FetchRange(ctx, tenantID, models.SingleDay(date))
	if err != nil {
		return nil, err
	}
	if rows, ok := byDate[date.Format(models.DateLayout)]; ok {
		return rows, nil
	}
	return models.TableRows{models.TableCloudflareSummary: []models.Row{}}, nil
}

// FetchRange fetches every date of r in one request. Dates Cloudflare
// reports outside r are dropped.
func (a *Adapter) FetchRange(ctx context.Context, tenantID string, r models.DateRange) (map[string]models.TableRows, error) {
	start, end := r.Start.Format(models.DateLayout), r.End.Format(models.DateLayout)

	groups, err := providers.Call(ctx, a.guard, "httpRequests1dGroups", func(ctx context.Context) ([]dailyGroup, error) {
		return a.queryDailyTraffic(ctx, start, end)
	})
	if err != nil {
		return nil, providers.FetchError("cloudflare graphql", err)
	}

	out := make(map[string]models.TableRows, len(groups))
	for _, g := range groups {
		date, err := models.ParseDate(g.Dimensions.Date)
		if err != nil || !r.Contains(date) {
			logging.Ctx(ctx).Debug().Str("date", g.Dimensions.Date).Msg("Skipping Cloudflare group outside range")
			continue
		}

		row := &models.CloudflareSummaryRow{
			RowBase:   models.NewRowBase(tenantID, models.TableCloudflareSummary, date, ""),
			PageViews: g.Sum.PageViews,
			Visits:    g.Uniq.Uniques,
		}
		key := date.Format(models.DateLayout)
		out[key] = models.TableRows{models.TableCloudflareSummary: []models.Row{row}}
	}
	return out, nil
}

var (
	_ providers.Adapter      = (*Adapter)(nil)
	_ providers.RangeFetcher = (*Adapter)(nil)
)
