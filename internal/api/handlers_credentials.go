// Rankpulse - SEO and Marketing Analytics Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rankpulse

package api

import (
	"net/http"

	"github.com/tomtom215/rankpulse/internal/credentials"
	"github.com/tomtom215/rankpulse/internal/models"
)

// credentialListResponse is the body of GET /api/v1/tenant/credentials.
type credentialListResponse struct {
	TenantID  string                                 `json:"tenant_id"`
	Encrypted bool                                   `json:"encrypted"`
	Services  map[models.Service][]credentials.Entry `json:"services"`
}

// PutCredential stores one credential entry for the caller's tenant and echoes it masked.
func (h *Handler) PutCredential(w http.ResponseWriter, r *http.Request) {
	var req credentialRequest
	if err := decodeJSON(w, r, &req, true); err != nil {
		respondErr(w, r, err)
		return
	}

	svc, err := models.ParseService(req.Service)
	if err != nil {
		respondErr(w, r, err)
		return
	}

	value, err := credentialValue(req.Value)
	if err != nil {
		respondErr(w, r, err)
		return
	}

	entry, err := h.store.PutCredential(r.Context(), tenantID(r), svc, req.Key, value)
	if err != nil {
		respondErr(w, r, err)
		return
	}

	WriteSuccess(w, r, entry)
}

// ListCredentials reports the configured keys per service, values masked.
func (h *Handler) ListCredentials(w http.ResponseWriter, r *http.Request) {
	tenant := tenantID(r)

	services, err := h.store.ListKeys(r.Context(), tenant)
	if err != nil {
		respondErr(w, r, err)
		return
	}

	WriteSuccess(w, r, credentialListResponse{
		TenantID:  tenant,
		Encrypted: h.store.Encrypted(),
		Services:  services,
	})
}
