// Rankpulse - SEO and Marketing Analytics Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rankpulse

package analytics

import (
	"context"
	"fmt"
	"strings"

	analyticsdata "google.golang.org/api/analyticsdata/v1beta"
	"google.golang.org/api/option"
)

// ReportRequest is one single-dimension GA4 report over a date range.
type ReportRequest struct {
	StartDate string
	EndDate   string
	Dimension string
	Metrics   []string
}

// ReportRow holds the dimension value and the metric values in request order.
type ReportRow struct {
	Dimension string
	Metrics   []string
}

// Client is the subset of the GA4 Data API the adapter uses.
type Client interface {
	RunReport(ctx context.Context, propertyID string, req ReportRequest) ([]ReportRow, error)
}

type googleClient struct {
	svc *analyticsdata.Service
}

func newGoogleClient(ctx context.Context, serviceAccountJSON []byte) (Client, error) {
	svc, err := analyticsdata.NewService(ctx,
		option.WithCredentialsJSON(serviceAccountJSON),
		option.WithScopes(analyticsdata.AnalyticsReadonlyScope),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create analytics data client: %w", err)
	}
	return &googleClient{svc: svc}, nil
}

func (c *googleClient) RunReport(ctx context.Context, propertyID string, req ReportRequest) ([]ReportRow, error) {
	metrics := make([]*analyticsdata.Metric, 0, len(req.Metrics))
	for _, m := range req.Metrics {
		metrics = append(metrics, &analyticsdata.Metric{Name: m})
	}

	resp, err := c.svc.Properties.RunReport(propertyResource(propertyID), &analyticsdata.RunReportRequest{
		DateRanges: []*analyticsdata.DateRange{{StartDate: req.StartDate, EndDate: req.EndDate}},
		Dimensions: []*analyticsdata.Dimension{{Name: req.Dimension}},
		Metrics:    metrics,
	}).Context(ctx).Do()
	if err != nil {
		return nil, err
	}

	rows := make([]ReportRow, 0, len(resp.Rows))
	for _, r := range resp.Rows {
		if r == nil {
			continue
		}
		row := ReportRow{Metrics: make([]string, 0, len(r.MetricValues))}
		if len(r.DimensionValues) > 0 && r.DimensionValues[0] != nil {
			row.Dimension = r.DimensionValues[0].Value
		}
		for _, mv := range r.MetricValues {
			if mv == nil {
				row.Metrics = append(row.Metrics, "")
				continue
			}
			row.Metrics = append(row.Metrics, mv.Value)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// propertyResource accepts "123" or "properties/123".
func propertyResource(propertyID string) string {
	if strings.HasPrefix(propertyID, "properties/") {
		return propertyID
	}
	return "properties/" + propertyID
}
