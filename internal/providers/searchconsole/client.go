// Rankpulse - SEO and Marketing Analytics Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rankpulse

package searchconsole

import (
	"context"
	"fmt"

	"google.golang.org/api/option"
	"google.golang.org/api/searchconsole/v1"
)

// Site is a Search Console property visible to the service account.
type Site struct {
	URL             string
	PermissionLevel string
}

// Row is one search analytics row. Keys holds the dimension values in
// request order and is empty for an ungrouped query.
type Row struct {
	Keys        []string
	Clicks      float64
	Impressions float64
	CTR         float64
	Position    float64
}

// Query is a search analytics request for one date range.
type Query struct {
	StartDate  string
	EndDate    string
	Dimensions []string
	RowLimit   int64
}

// Client is the subset of the Search Console API the adapter uses.
type Client interface {
	ListSites(ctx context.Context) ([]Site, error)
	Query(ctx context.Context, siteURL string, q Query) ([]Row, error)
}

// googleClient implements Client with google.golang.org/api/searchconsole/v1.
type googleClient struct {
	svc *searchconsole.Service
}

func newGoogleClient(ctx context.Context, serviceAccountJSON []byte) (Client, error) {
	svc, err := searchconsole.NewService(ctx,
		option.WithCredentialsJSON(serviceAccountJSON),
		option.WithScopes(searchconsole.WebmastersReadonlyScope),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create search console client: %w", err)
	}
	return &googleClient{svc: svc}, nil
}

func (c *googleClient) ListSites(ctx context.Context) ([]Site, error) {
	resp, err := c.svc.Sites.List().Context(ctx).Do()
	if err != nil {
		return nil, err
	}
	sites := make([]Site, 0, len(resp.SiteEntry))
	for _, entry := range resp.SiteEntry {
		if entry == nil {
			continue
		}
		sites = append(sites, Site{URL: entry.SiteUrl, PermissionLevel: entry.PermissionLevel})
	}
	return sites, nil
}

func (c *googleClient) Query(ctx context.Context, siteURL string, q Query) ([]Row, error) {
	resp, err := c.svc.Searchanalytics.Query(siteURL, &searchconsole.SearchAnalyticsQueryRequest{
		StartDate:  q.StartDate,
		EndDate:    q.EndDate,
		Dimensions: q.Dimensions,
		RowLimit:   q.RowLimit,
	}).Context(ctx).Do()
	if err != nil {
		return nil, err
	}
	rows := make([]Row, 0, len(resp.Rows))
	for _, r := range resp.Rows {
		if r == nil {
			continue
		}
		rows = append(rows, Row{
			Keys:        r.Keys,
			Clicks:      r.Clicks,
			Impressions: r.Impressions,
			CTR:         r.Ctr,
			Position:    r.Position,
		})
	}
	return rows, nil
}
