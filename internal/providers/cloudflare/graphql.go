// Rankpulse - SEO and Marketing Analytics Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rankpulse

package cloudflare

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/goccy/go-json"

	"github.com/tomtom215/rankpulse/internal/providers"
)

// groupLimit caps the daily groups returned per request; one per date.
const groupLimit = 1000

// maxResponseBytes caps the size of a GraphQL response body.
const maxResponseBytes = 10 << 20

// ErrZoneNotFound means a successful response carried no zone for the
// configured zone_id, either because it does not exist or the token cannot
// read it.
var ErrZoneNotFound = errors.New("zone not found or not accessible")

const dailyTrafficQuery = `query DailyTraffic($zoneTag: string, $start: Date, $end: Date, $limit: uint64) {
  viewer {
    zones(filter: {zoneTag: $zoneTag}) {
      httpRequests1dGroups(filter: {date_geq: $start, date_leq: $end}, limit: $limit, orderBy: [date_ASC]) {
        dimensions { date }
        sum { pageViews }
        uniq { uniques }
      }
    }
  }
}`

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

type graphQLError struct {
	Message string `json:"message"`
}

type dailyGroup struct {
	Dimensions struct {
		Date string `json:"date"`
	} `json:"dimensions"`
	Sum struct {
		PageViews int64 `json:"pageViews"`
	} `json:"sum"`
	Uniq struct {
		Uniques int64 `json:"uniques"`
	} `json:"uniq"`
}

type dailyTrafficResponse struct {
	Data *struct {
		Viewer struct {
			Zones []struct {
				Groups []dailyGroup `json:"httpRequests1dGroups"`
			} `json:"zones"`
		} `json:"viewer"`
	} `json:"data"`
	Errors []graphQLError `json:"errors"`
}

// queryDailyTraffic posts the daily traffic query and returns its groups.
func (a *Adapter) queryDailyTraffic(ctx context.Context, start, end string) ([]dailyGroup, error) {
	payload, err := json.Marshal(graphQLRequest{
		Query: dailyTrafficQuery,
		Variables: map[string]any{
			"zoneTag": a.zoneID,
			"start":   start,
			"end":     end,
			"limit":   groupLimit,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode graphql request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request failed: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+a.apiToken)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := a.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, providers.NewAPIError(resp.StatusCode, body)
	}

	var decoded dailyTrafficResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if len(decoded.Errors) > 0 {
		msgs := make([]string, 0, len(decoded.Errors))
		for _, e := range decoded.Errors {
			msgs = append(msgs, e.Message)
		}
		return nil, fmt.Errorf("graphql errors: %s", strings.Join(msgs, "; "))
	}

	// A zone with no traffic still returns an empty group list.
	if decoded.Data == nil || len(decoded.Data.Viewer.Zones) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrZoneNotFound, a.zoneID)
	}
	return decoded.Data.Viewer.Zones[0].Groups, nil
}
