// Rankpulse - SEO and Marketing Analytics Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rankpulse

package models

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownTable is returned when a table name cannot be resolved.
var ErrUnknownTable = errors.New("unknown table")

// Table is the SQL name of a logical metric table.
type Table string

// Search Console tables.
const (
	TableGSCSummary   Table = "gsc_summary_daily"
	TableGSCQueries   Table = "gsc_queries_daily"
	TableGSCPages     Table = "gsc_pages_daily"
	TableGSCCountries Table = "gsc_countries_daily"
	TableGSCDevices   Table = "gsc_devices_daily"
)

// Google Analytics 4 tables.
const (
	TableGA4TopPages  Table = "ga4_top_pages_daily"
	TableGA4Traffic   Table = "ga4_traffic_acquisition_daily"
	TableGA4Countries Table = "ga4_country_metrics_daily"
	TableGA4Browsers  Table = "ga4_browser_metrics_daily"
)

// Cloudflare tables.
const (
	TableCloudflareSummary Table = "cloudflare_summary_daily"
)

// tableSpec describes the column layout of a table after the shared base columns.
type tableSpec struct {
	service   Service
	alias     string
	dimension string
	metrics   []string
}

var (
	searchMetricColumns   = []string{"clicks", "impressions", "ctr", "position"}
	audienceMetricColumns = []string{
		"active_users", "new_users", "engaged_sessions", "engaged_sessions_per_user",
		"engagement_rate", "avg_engagement_time", "event_count",
	}
)

var tableSpecs = map[Table]tableSpec{
	TableGSCSummary:   {service: ServiceSearchConsole, alias: "summary", metrics: searchMetricColumns},
	TableGSCQueries:   {service: ServiceSearchConsole, alias: "queries", dimension: "query", metrics: searchMetricColumns},
	TableGSCPages:     {service: ServiceSearchConsole, alias: "pages", dimension: "page", metrics: searchMetricColumns},
	TableGSCCountries: {service: ServiceSearchConsole, alias: "countries", dimension: "country", metrics: searchMetricColumns},
	TableGSCDevices:   {service: ServiceSearchConsole, alias: "devices", dimension: "device", metrics: searchMetricColumns},
	TableGA4TopPages: {
		service: ServiceAnalytics, alias: "top_pages", dimension: "page_path",
		metrics: []string{"views", "active_users", "views_per_user", "avg_engagement_time", "event_count", "bounce_rate", "engagement_rate"},
	},
	TableGA4Traffic: {
		service: ServiceAnalytics, alias: "traffic", dimension: "source_medium",
		metrics: []string{"sessions", "engaged_sessions", "engagement_rate", "avg_engagement_time", "events_per_session", "total_events"},
	},
	TableGA4Countries:      {service: ServiceAnalytics, alias: "countries", dimension: "country", metrics: audienceMetricColumns},
	TableGA4Browsers:       {service: ServiceAnalytics, alias: "browsers", dimension: "browser", metrics: audienceMetricColumns},
	TableCloudflareSummary: {service: ServiceCloudflare, alias: "summary", metrics: []string{"page_views", "visits"}},
}

// baseColumns are carried by every metric table.
var baseColumns = []string{"tenant_id", "date", "session_id"}

// AllTables returns every logical table grouped by service.
func AllTables() []Table {
	var tables []Table
	for _, svc := range AllServices() {
		tables = append(tables, svc.Tables()...)
	}
	return tables
}

// ParseTable resolves a full table name such as "gsc_pages_daily".
func ParseTable(name string) (Table, error) {
	t := Table(strings.ToLower(strings.TrimSpace(name)))
	if _, ok := tableSpecs[t]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownTable, name)
	}
	return t, nil
}

// TableByAlias resolves the short per-service name used by the data API
// (e.g. "queries" for gsc, "browsers" for ga4). Full names are also accepted.
func TableByAlias(svc Service, alias string) (Table, error) {
	alias = strings.ToLower(strings.TrimSpace(alias))
	for _, t := range svc.Tables() {
		if tableSpecs[t].alias == alias || string(t) == alias {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: %q for service %s", ErrUnknownTable, alias, svc)
}

// Valid reports whether t is a known table.
func (t Table) Valid() bool {
	_, ok := tableSpecs[t]
	return ok
}

// String implements fmt.Stringer.
func (t Table) String() string {
	return string(t)
}

// Service returns the provider that populates the table.
func (t Table) Service() Service {
	return tableSpecs[t].service
}

// Alias returns the short per-service name of the table.
func (t Table) Alias() string {
	return tableSpecs[t].alias
}

// DimensionColumn returns the breakdown column, or "" for summary tables.
func (t Table) DimensionColumn() string {
	return tableSpecs[t].dimension
}

// Columns returns the insert column list: base columns, the dimension column
// (if any) and the metric columns. Row.Values returns values in this order.
func (t Table) Columns() []string {
	spec, ok := tableSpecs[t]
	if !ok {
		return nil
	}
	cols := make([]string, 0, len(baseColumns)+1+len(spec.metrics))
	cols = append(cols, baseColumns...)
	if spec.dimension != "" {
		cols = append(cols, spec.dimension)
	}
	return append(cols, spec.metrics...)
}
