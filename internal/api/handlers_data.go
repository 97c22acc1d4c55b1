// Rankpulse - SEO and Marketing Analytics Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rankpulse

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/rankpulse/internal/database"
	"github.com/tomtom215/rankpulse/internal/models"
)

type serviceDataResponse struct {
	Service   models.Service          `json:"service"`
	TenantID  string                  `json:"tenant_id"`
	StartDate string                  `json:"start_date,omitempty"`
	EndDate   string                  `json:"end_date,omitempty"`
	Tables    map[string][]models.Row `json:"tables"`
}

type tableDataResponse struct {
	Service  models.Service `json:"service"`
	Table    models.Table   `json:"table"`
	TenantID string         `json:"tenant_id"`
	Rows     []models.Row   `json:"rows"`
}

// ServiceData returns the caller's rows of every table of a service.
//
// Query parameters: start and end (YYYY-MM-DD), or range=today|N, and limit
// (default 100 rows per table, newest first).
func (h *Handler) ServiceData(w http.ResponseWriter, r *http.Request) {
	svc, err := models.ParseService(chi.URLParam(r, "service"))
	if err != nil {
		respondErr(w, r, err)
		return
	}

	filter, err := database.RowFilterFromQuery(r.URL.Query(), h.now())
	if err != nil {
		respondErr(w, r, err)
		return
	}

	tenant := tenantID(r)
	tables, err := h.db.FetchServiceRows(r.Context(), svc, tenant, filter)
	if err != nil {
		respondErr(w, r, err)
		return
	}

	total := 0
	for _, rows := range tables {
		total += len(rows)
	}

	resp := serviceDataResponse{
		Service:  svc,
		TenantID: tenant,
		Tables:   tables,
	}
	if filter.Range != nil {
		resp.StartDate = filter.Range.Start.Format(models.DateLayout)
		resp.EndDate = filter.Range.End.Format(models.DateLayout)
	}

	NewResponseWriter(w, r).SuccessWithCount(resp, total)
}

// TableData returns the caller's rows of one table. The table is addressed
// by its short name within the service (e.g. "queries") or its full name.
func (h *Handler) TableData(w http.ResponseWriter, r *http.Request) {
	svc, err := models.ParseService(chi.URLParam(r, "service"))
	if err != nil {
		respondErr(w, r, err)
		return
	}

	table, err := models.TableByAlias(svc, chi.URLParam(r, "table"))
	if err != nil {
		respondErr(w, r, err)
		return
	}

	filter, err := database.RowFilterFromQuery(r.URL.Query(), h.now())
	if err != nil {
		respondErr(w, r, err)
		return
	}

	tenant := tenantID(r)
	rows, err := h.db.FetchRows(r.Context(), table, tenant, filter)
	if err != nil {
		respondErr(w, r, err)
		return
	}

	NewResponseWriter(w, r).SuccessWithCount(tableDataResponse{
		Service:  svc,
		Table:    table,
		TenantID: tenant,
		Rows:     rows,
	}, len(rows))
}
