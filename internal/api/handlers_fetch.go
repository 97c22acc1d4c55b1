// Rankpulse - SEO and Marketing Analytics Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rankpulse

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/rankpulse/internal/models"
)

// defaultSearchConsoleLagDays applies when the handler has no config.
const defaultSearchConsoleLagDays = 3

// Fetch runs a synchronous fetch of one service for the caller's tenant.
// end_date defaults to start_date. Search Console ranges are moved back by
// the reporting lag first, since the provider has no data for recent days.
// When the run fails part way, the error details carry the result of the
// dates already persisted.
func (h *Handler) Fetch(w http.ResponseWriter, r *http.Request) {
	svc, err := models.ParseService(chi.URLParam(r, "service"))
	if err != nil {
		respondErr(w, r, err)
		return
	}

	var req fetchRequest
	if err := decodeJSON(w, r, &req, true); err != nil {
		respondErr(w, r, err)
		return
	}
	if req.EndDate == "" {
		req.EndDate = req.StartDate
	}

	dateRange, err := models.ParseDateRange(req.StartDate, req.EndDate)
	if err != nil {
		respondErr(w, r, err)
		return
	}

	result, err := h.fetcher.RunFetch(r.Context(), tenantID(r), svc, h.reportingRange(svc, dateRange))
	if err != nil {
		if result != nil && result.Days > 0 {
			respondErrWithDetails(w, r, err, map[string]interface{}{"partial_result": result})
			return
		}
		respondErr(w, r, err)
		return
	}

	WriteSuccess(w, r, result)
}

// reportingRange shifts Search Console ranges back by the configured lag.
func (h *Handler) reportingRange(svc models.Service, dr models.DateRange) models.DateRange {
	if svc != models.ServiceSearchConsole {
		return dr
	}
	lag := defaultSearchConsoleLagDays
	if h.config != nil {
		lag = h.config.Providers.SearchConsoleLagDays
	}
	if lag <= 0 {
		return dr
	}
	return dr.Shift(-lag)
}
