// Rankpulse - SEO and Marketing Analytics Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rankpulse

package api

import (
	"net/http"
	"time"
)

type registerResponse struct {
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	TenantID  string    `json:"tenant_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Register creates a user and the tenant it owns.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(w, r, &req, true); err != nil {
		respondErr(w, r, err)
		return
	}

	user, err := h.accounts.Register(r.Context(), req.Email, req.Password, clientInfo(r))
	if err != nil {
		respondErr(w, r, err)
		return
	}

	createdAt := user.CreatedAt
	if createdAt.IsZero() {
		createdAt = h.now().UTC()
	}

	NewResponseWriter(w, r).Created(registerResponse{
		UserID:    user.UserID,
		Email:     user.Email,
		TenantID:  user.TenantID,
		CreatedAt: createdAt,
	})
}

// Login exchanges email and password for a bearer token.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(w, r, &req, true); err != nil {
		respondErr(w, r, err)
		return
	}

	token, err := h.accounts.Login(r.Context(), req.Email, req.Password, clientInfo(r))
	if err != nil {
		respondErr(w, r, err)
		return
	}

	WriteSuccess(w, r, token)
}
