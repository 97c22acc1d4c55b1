// Rankpulse - SEO and Marketing Analytics Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rankpulse

package analytics

import (
	"context"
	"strings"
	"time"

	"github.com/tomtom215/rankpulse/internal/credentials"
	"github.com/tomtom215/rankpulse/internal/logging"
	"github.com/tomtom215/rankpulse/internal/models"
	"github.com/tomtom215/rankpulse/internal/providers"
)

var requirement = credentials.Requirement{
	Service: models.ServiceAnalytics,
	Fields:  []credentials.Field{{Name: "property_id"}},
}

// Adapter fetches GA4 reports for one tenant and property.
type Adapter struct {
	client     Client
	guard      *providers.Guard
	propertyID string
}

// Constructor returns the registry constructor for GA4.
func Constructor(opts providers.Options) providers.Constructor {
	return func(ctx context.Context, creds credentials.Credentials) (providers.Adapter, error) {
		return New(ctx, creds, opts)
	}
}

// New validates creds and builds an adapter backed by the GA4 Data API. The
// service account may be a service_account_json object or flat client_email
// and private_key entries.
func New(ctx context.Context, creds credentials.Credentials, opts providers.Options) (*Adapter, error) {
	propertyID, saJSON, err := loadSettings(creds)
	if err != nil {
		return nil, err
	}

	client, err := newGoogleClient(ctx, saJSON)
	if err != nil {
		return nil, err
	}
	return newAdapter(client, opts.GuardFor(models.ServiceAnalytics), propertyID), nil
}

func loadSettings(creds credentials.Credentials) (propertyID string, saJSON []byte, err error) {
	resolved, err := requirement.Resolve(creds)
	if err != nil {
		return "", nil, err
	}
	sa, err := providers.ResolveServiceAccount(models.ServiceAnalytics, creds)
	if err != nil {
		return "", nil, err
	}
	saJSON, err = sa.JSON()
	if err != nil {
		return "", nil, err
	}
	return resolved.String("property_id"), saJSON, nil
}

func newAdapter(client Client, guard *providers.Guard, propertyID string) *Adapter {
	return &Adapter{
		client:     client,
		guard:      guard,
		propertyID: strings.TrimPrefix(propertyID, "properties/"),
	}
}

// Service implements providers.Adapter.
func (a *Adapter) Service() models.Service {
	return models.ServiceAnalytics
}

// FetchDailyMetrics runs the four reports for date. A failing report is
// logged and leaves its table empty. Metric values that cannot be parsed
// fail the whole fetch.
func (a *Adapter) FetchDailyMetrics(ctx context.Context, tenantID string, date time.Time) (models.TableRows, error) {
	day := date.Format(models.DateLayout)
	logger := logging.Ctx(ctx).With().
		Str("service", string(models.ServiceAnalytics)).
		Str("tenant_id", tenantID).
		Str("property_id", a.propertyID).
		Str("date", day).
		Logger()

	out := make(models.TableRows, len(reports))
	var firstErr error
	failed := 0

	for _, rep := range reports {
		req := ReportRequest{StartDate: day, EndDate: day, Dimension: rep.dimension, Metrics: rep.metrics}
		rows, err := providers.Call(ctx, a.guard, "runReport", func(ctx context.Context) ([]ReportRow, error) {
			return a.client.RunReport(ctx, a.propertyID, req)
		})
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			logger.Warn().Err(err).Str("table", string(rep.table)).Msg("GA4 report failed")
			failed++
			if firstErr == nil {
				firstErr = err
			}
			out[rep.table] = []models.Row{}
			continue
		}

		mapped, err := mapReport(rep, tenantID, date, rows)
		if err != nil {
			return nil, providers.FetchError("ga4 report", err)
		}
		out[rep.table] = mapped
	}

	if failed == len(reports) {
		return nil, providers.FetchError("ga4 report", firstErr)
	}
	return out, nil
}

var _ providers.Adapter = (*Adapter)(nil)
