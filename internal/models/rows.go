// Rankpulse - SEO and Marketing Analytics Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rankpulse

package models

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidRow is returned by Row.Validate.
var ErrInvalidRow = errors.New("invalid row")

// Row is a single typed record of one logical table.
type Row interface {
	// Table returns the logical table the row belongs to.
	Table() Table

	// Base returns the shared identity fields.
	Base() *RowBase

	// Values returns the insert values in Table().Columns() order.
	Values() []any

	// Validate checks the shared identity fields.
	Validate() error
}

// TableRows groups rows produced by one fetch by destination table.
type TableRows map[Table][]Row

// Len returns the total number of rows across all tables.
func (tr TableRows) Len() int {
	n := 0
	for _, rows := range tr {
		n += len(rows)
	}
	return n
}

// RowBase holds the fields every metric table carries.
type RowBase struct {
	TenantID  string    `db:"tenant_id" json:"tenant_id"`
	Date      time.Time `db:"date" json:"date"`
	SessionID string    `db:"session_id" json:"session_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at,omitempty"`
}

// NewRowBase fills the identity fields and derives the session id.
func NewRowBase(tenantID string, table Table, date time.Time, dimension string) RowBase {
	d := Day(date)
	return RowBase{
		TenantID:  tenantID,
		Date:      d,
		SessionID: SessionID(tenantID, table, d, dimension),
	}
}

// Base returns the receiver; embedding types inherit it.
func (b *RowBase) Base() *RowBase {
	return b
}

func (b *RowBase) validate(table Table) error {
	switch {
	case b.TenantID == "":
		return fmt.Errorf("%w: %s: tenant_id is empty", ErrInvalidRow, table)
	case b.Date.IsZero():
		return fmt.Errorf("%w: %s: date is zero", ErrInvalidRow, table)
	case b.SessionID == "":
		return fmt.Errorf("%w: %s: session_id is empty", ErrInvalidRow, table)
	}
	return nil
}

func (b *RowBase) baseValues() []any {
	return []any{b.TenantID, b.Date.Format(DateLayout), b.SessionID}
}

// SearchMetrics are the Search Console performance metrics.
type SearchMetrics struct {
	Clicks      int64   `db:"clicks" json:"clicks"`
	Impressions int64   `db:"impressions" json:"impressions"`
	CTR         float64 `db:"ctr" json:"ctr"`
	Position    float64 `db:"position" json:"position"`
}

func (m SearchMetrics) metricValues() []any {
	return []any{m.Clicks, m.Impressions, m.CTR, m.Position}
}

// SearchSummaryRow is a row of gsc_summary_daily.
type SearchSummaryRow struct {
	RowBase
	SearchMetrics
}

func (r *SearchSummaryRow) Table() Table    { return TableGSCSummary }
func (r *SearchSummaryRow) Validate() error { return r.validate(r.Table()) }
func (r *SearchSummaryRow) Values() []any {
	return append(r.baseValues(), r.SearchMetrics.metricValues()...)
}

// SearchQueryRow is a row of gsc_queries_daily.
type SearchQueryRow struct {
	RowBase
	Query string `db:"query" json:"query"`
	SearchMetrics
}

func (r *SearchQueryRow) Table() Table    { return TableGSCQueries }
func (r *SearchQueryRow) Validate() error { return r.validate(r.Table()) }
func (r *SearchQueryRow) Values() []any {
	return append(append(r.baseValues(), r.Query), r.SearchMetrics.metricValues()...)
}

// SearchPageRow is a row of gsc_pages_daily.
type SearchPageRow struct {
	RowBase
	Page string `db:"page" json:"page"`
	SearchMetrics
}

func (r *SearchPageRow) Table() Table    { return TableGSCPages }
func (r *SearchPageRow) Validate() error { return r.validate(r.Table()) }
func (r *SearchPageRow) Values() []any {
	return append(append(r.baseValues(), r.Page), r.SearchMetrics.metricValues()...)
}

// SearchCountryRow is a row of gsc_countries_daily.
type SearchCountryRow struct {
	RowBase
	Country string `db:"country" json:"country"`
	SearchMetrics
}

func (r *SearchCountryRow) Table() Table    { return TableGSCCountries }
func (r *SearchCountryRow) Validate() error { return r.validate(r.Table()) }
func (r *SearchCountryRow) Values() []any {
	return append(append(r.baseValues(), r.Country), r.SearchMetrics.metricValues()...)
}

// SearchDeviceRow is a row of gsc_devices_daily.
type SearchDeviceRow struct {
	RowBase
	Device string `db:"device" json:"device"`
	SearchMetrics
}

func (r *SearchDeviceRow) Table() Table    { return TableGSCDevices }
func (r *SearchDeviceRow) Validate() error { return r.validate(r.Table()) }
func (r *SearchDeviceRow) Values() []any {
	return append(append(r.baseValues(), r.Device), r.SearchMetrics.metricValues()...)
}

// NewSearchRow builds the typed Search Console row for table. dimension is the
// breakdown key and is ignored for the summary table.
func NewSearchRow(table Table, tenantID string, date time.Time, dimension string, m SearchMetrics) (Row, error) {
	if table == TableGSCSummary {
		dimension = ""
	}
	base := NewRowBase(tenantID, table, date, dimension)
	switch table {
	case TableGSCSummary:
		return &SearchSummaryRow{RowBase: base, SearchMetrics: m}, nil
	case TableGSCQueries:
		return &SearchQueryRow{RowBase: base, Query: dimension, SearchMetrics: m}, nil
	case TableGSCPages:
		return &SearchPageRow{RowBase: base, Page: dimension, SearchMetrics: m}, nil
	case TableGSCCountries:
		return &SearchCountryRow{RowBase: base, Country: dimension, SearchMetrics: m}, nil
	case TableGSCDevices:
		return &SearchDeviceRow{RowBase: base, Device: dimension, SearchMetrics: m}, nil
	default:
		return nil, fmt.Errorf("%w: %s is not a search console table", ErrUnknownTable, table)
	}
}

// AnalyticsTopPageRow is a row of ga4_top_pages_daily.
type AnalyticsTopPageRow struct {
	RowBase
	PagePath          string  `db:"page_path" json:"page_path"`
	Views             int64   `db:"views" json:"views"`
	ActiveUsers       int64   `db:"active_users" json:"active_users"`
	ViewsPerUser      float64 `db:"views_per_user" json:"views_per_user"`
	AvgEngagementTime float64 `db:"avg_engagement_time" json:"avg_engagement_time"`
	EventCount        int64   `db:"event_count" json:"event_count"`
	BounceRate        float64 `db:"bounce_rate" json:"bounce_rate"`
	EngagementRate    float64 `db:"engagement_rate" json:"engagement_rate"`
}

func (r *AnalyticsTopPageRow) Table() Table    { return TableGA4TopPages }
func (r *AnalyticsTopPageRow) Validate() error { return r.validate(r.Table()) }
func (r *AnalyticsTopPageRow) Values() []any {
	return append(r.baseValues(), r.PagePath, r.Views, r.ActiveUsers, r.ViewsPerUser,
		r.AvgEngagementTime, r.EventCount, r.BounceRate, r.EngagementRate)
}

// AnalyticsTrafficRow is a row of ga4_traffic_acquisition_daily.
type AnalyticsTrafficRow struct {
	RowBase
	SourceMedium      string  `db:"source_medium" json:"source_medium"`
	Sessions          int64   `db:"sessions" json:"sessions"`
	EngagedSessions   int64   `db:"engaged_sessions" json:"engaged_sessions"`
	EngagementRate    float64 `db:"engagement_rate" json:"engagement_rate"`
	AvgEngagementTime float64 `db:"avg_engagement_time" json:"avg_engagement_time"`
	EventsPerSession  float64 `db:"events_per_session" json:"events_per_session"`
	TotalEvents       int64   `db:"total_events" json:"total_events"`
}

func (r *AnalyticsTrafficRow) Table() Table    { return TableGA4Traffic }
func (r *AnalyticsTrafficRow) Validate() error { return r.validate(r.Table()) }
func (r *AnalyticsTrafficRow) Values() []any {
	return append(r.baseValues(), r.SourceMedium, r.Sessions, r.EngagedSessions, r.EngagementRate,
		r.AvgEngagementTime, r.EventsPerSession, r.TotalEvents)
}

// AudienceMetrics are shared by the GA4 country and browser breakdowns.
type AudienceMetrics struct {
	ActiveUsers            int64   `db:"active_users" json:"active_users"`
	NewUsers               int64   `db:"new_users" json:"new_users"`
	EngagedSessions        int64   `db:"engaged_sessions" json:"engaged_sessions"`
	EngagedSessionsPerUser float64 `db:"engaged_sessions_per_user" json:"engaged_sessions_per_user"`
	EngagementRate         float64 `db:"engagement_rate" json:"engagement_rate"`
	AvgEngagementTime      float64 `db:"avg_engagement_time" json:"avg_engagement_time"`
	EventCount             int64   `db:"event_count" json:"event_count"`
}

func (m AudienceMetrics) metricValues() []any {
	return []any{m.ActiveUsers, m.NewUsers, m.EngagedSessions, m.EngagedSessionsPerUser,
		m.EngagementRate, m.AvgEngagementTime, m.EventCount}
}

// AnalyticsCountryRow is a row of ga4_country_metrics_daily.
type AnalyticsCountryRow struct {
	RowBase
	Country string `db:"country" json:"country"`
	AudienceMetrics
}

func (r *AnalyticsCountryRow) Table() Table    { return TableGA4Countries }
func (r *AnalyticsCountryRow) Validate() error { return r.validate(r.Table()) }
func (r *AnalyticsCountryRow) Values() []any {
	return append(append(r.baseValues(), r.Country), r.AudienceMetrics.metricValues()...)
}

// AnalyticsBrowserRow is a row of ga4_browser_metrics_daily.
type AnalyticsBrowserRow struct {
	RowBase
	Browser string `db:"browser" json:"browser"`
	AudienceMetrics
}

func (r *AnalyticsBrowserRow) Table() Table    { return TableGA4Browsers }
func (r *AnalyticsBrowserRow) Validate() error { return r.validate(r.Table()) }
func (r *AnalyticsBrowserRow) Values() []any {
	return append(append(r.baseValues(), r.Browser), r.AudienceMetrics.metricValues()...)
}

// CloudflareSummaryRow is a row of cloudflare_summary_daily.
type CloudflareSummaryRow struct {
	RowBase
	PageViews int64 `db:"page_views" json:"page_views"`
	Visits    int64 `db:"visits" json:"visits"`
}

func (r *CloudflareSummaryRow) Table() Table    { return TableCloudflareSummary }
func (r *CloudflareSummaryRow) Validate() error { return r.validate(r.Table()) }
func (r *CloudflareSummaryRow) Values() []any {
	return append(r.baseValues(), r.PageViews, r.Visits)
}

// NewRow returns an empty row of the table's type, used as a scan target.
func NewRow(table Table) (Row, error) {
	switch table {
	case TableGSCSummary:
		return &SearchSummaryRow{}, nil
	case TableGSCQueries:
		return &SearchQueryRow{}, nil
	case TableGSCPages:
		return &SearchPageRow{}, nil
	case TableGSCCountries:
		return &SearchCountryRow{}, nil
	case TableGSCDevices:
		return &SearchDeviceRow{}, nil
	case TableGA4TopPages:
		return &AnalyticsTopPageRow{}, nil
	case TableGA4Traffic:
		return &AnalyticsTrafficRow{}, nil
	case TableGA4Countries:
		return &AnalyticsCountryRow{}, nil
	case TableGA4Browsers:
		return &AnalyticsBrowserRow{}, nil
	case TableCloudflareSummary:
		return &CloudflareSummaryRow{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownTable, table)
	}
}
