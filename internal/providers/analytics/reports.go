// Rankpulse - SEO and Marketing Analytics Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rankpulse

package analytics

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/tomtom215/rankpulse/internal/models"
)

// report describes one GA4 report and how its rows map onto a table.
type report struct {
	table     models.Table
	dimension string
	metrics   []string
	mapRow    func(base models.RowBase, dimension string, m *metricReader) models.Row
}

var audienceMetrics = []string{
	"activeUsers", "newUsers", "engagedSessions", "engagementRate", "averageSessionDuration", "eventCount",
}

// reports are run in table write order.
var reports = []report{
	{
		table:     models.TableGA4TopPages,
		dimension: "pagePath",
		metrics:   []string{"screenPageViews", "activeUsers", "bounceRate", "engagementRate", "averageSessionDuration", "eventCount"},
		mapRow: func(base models.RowBase, dim string, m *metricReader) models.Row {
			views, users := m.integer(0), m.integer(1)
			return &models.AnalyticsTopPageRow{
				RowBase:           base,
				PagePath:          dim,
				Views:             views,
				ActiveUsers:       users,
				ViewsPerUser:      perUser(views, users),
				BounceRate:        m.decimal(2),
				EngagementRate:    m.decimal(3),
				AvgEngagementTime: m.decimal(4),
				EventCount:        m.integer(5),
			}
		},
	},
	{
		table:     models.TableGA4Traffic,
		dimension: "sessionSourceMedium",
		metrics:   []string{"sessions", "engagedSessions", "engagementRate", "averageSessionDuration", "eventsPerSession", "eventCount"},
		mapRow: func(base models.RowBase, dim string, m *metricReader) models.Row {
			return &models.AnalyticsTrafficRow{
				RowBase:           base,
				SourceMedium:      dim,
				Sessions:          m.integer(0),
				EngagedSessions:   m.integer(1),
				EngagementRate:    m.decimal(2),
				AvgEngagementTime: m.decimal(3),
				EventsPerSession:  m.decimal(4),
				TotalEvents:       m.integer(5),
			}
		},
	},
	{
		table:     models.TableGA4Countries,
		dimension: "country",
		metrics:   audienceMetrics,
		mapRow: func(base models.RowBase, dim string, m *metricReader) models.Row {
			return &models.AnalyticsCountryRow{RowBase: base, Country: dim, AudienceMetrics: readAudience(m)}
		},
	},
	{
		table:     models.TableGA4Browsers,
		dimension: "browser",
		metrics:   audienceMetrics,
		mapRow: func(base models.RowBase, dim string, m *metricReader) models.Row {
			return &models.AnalyticsBrowserRow{RowBase: base, Browser: dim, AudienceMetrics: readAudience(m)}
		},
	},
}

func readAudience(m *metricReader) models.AudienceMetrics {
	users, engaged := m.integer(0), m.integer(2)
	return models.AudienceMetrics{
		ActiveUsers:            users,
		NewUsers:               m.integer(1),
		EngagedSessions:        engaged,
		EngagedSessionsPerUser: perUser(engaged, users),
		EngagementRate:         m.decimal(3),
		AvgEngagementTime:      m.decimal(4),
		EventCount:             m.integer(5),
	}
}

// round2 rounds to two decimal places.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// perUser divides by users, treating zero users as one.
func perUser(n, users int64) float64 {
	if users < 1 {
		users = 1
	}
	return round2(float64(n) / float64(users))
}

// metricReader parses metric values by index and keeps the first error.
type metricReader struct {
	values []string
	names  []string
	err    error
}

func (m *metricReader) raw(i int) (string, bool) {
	if i >= len(m.values) {
		m.fail(i, "missing value")
		return "", false
	}
	return strings.TrimSpace(m.values[i]), true
}

func (m *metricReader) integer(i int) int64 {
	s, ok := m.raw(i)
	if !ok {
		return 0
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n
	}
	// Integer metrics occasionally arrive as "12.0".
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		m.fail(i, fmt.Sprintf("%q is not a number", s))
		return 0
	}
	return int64(math.Round(f))
}

func (m *metricReader) decimal(i int) float64 {
	s, ok := m.raw(i)
	if !ok {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		m.fail(i, fmt.Sprintf("%q is not a number", s))
		return 0
	}
	return f
}

func (m *metricReader) fail(i int, reason string) {
	if m.err != nil {
		return
	}
	name := fmt.Sprintf("#%d", i)
	if i < len(m.names) {
		name = m.names[i]
	}
	m.err = fmt.Errorf("metric %s: %s", name, reason)
}

// mapReport converts the rows of one report into typed rows.
func mapReport(rep report, tenantID string, date time.Time, rows []ReportRow) ([]models.Row, error) {
	out := make([]models.Row, 0, len(rows))
	for i, r := range rows {
		reader := &metricReader{values: r.Metrics, names: rep.metrics}
		base := models.NewRowBase(tenantID, rep.table, date, r.Dimension)
		row := rep.mapRow(base, r.Dimension, reader)
		if reader.err != nil {
			return nil, fmt.Errorf("%s row %d: %w", rep.table, i, reader.err)
		}
		out = append(out, row)
	}
	return out, nil
}
