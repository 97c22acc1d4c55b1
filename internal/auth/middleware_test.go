// Rankpulse - SEO and Marketing Analytics Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rankpulse

package auth

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/tomtom215/rankpulse/internal/logging"
)

func TestAuthenticate(t *testing.T) {
	manager := newTestManager(t)
	valid, err := manager.GenerateToken("user-1", "tenant-1")
	if err != nil {
		t.Fatal(err)
	}

	var rejected error
	mw := NewMiddleware(manager, func(w http.ResponseWriter, _ *http.Request, err error) {
		rejected = err
		w.WriteHeader(http.StatusUnauthorized)
	})

	var gotTenant, gotLogTenant string
	handler := mw.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotTenant = TenantFromContext(r.Context())
		gotLogTenant = logging.TenantIDFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{"valid bearer", "Bearer " + valid, http.StatusNoContent},
		{"lowercase scheme", "bearer " + valid, http.StatusNoContent},
		{"missing header", "", http.StatusUnauthorized},
		{"basic scheme", "Basic dXNlcjpwYXNz", http.StatusUnauthorized},
		{"empty token", "Bearer ", http.StatusUnauthorized},
		{"bad token", "Bearer abc.def.ghi", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotTenant, gotLogTenant, rejected = "", "", nil

			req := httptest.NewRequest(http.MethodGet, "/api/v1/tenant/credentials", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if tt.wantStatus == http.StatusNoContent {
				if gotTenant != "tenant-1" || gotLogTenant != "tenant-1" {
					t.Errorf("tenant in context = %q / %q", gotTenant, gotLogTenant)
				}
				return
			}
			if !errors.Is(rejected, ErrInvalidToken) {
				t.Errorf("error writer got %v, want ErrInvalidToken", rejected)
			}
		})
	}
}

func TestNewMiddleware_DefaultErrorWriter(t *testing.T) {
	mw := NewMiddleware(newTestManager(t), nil)
	handler := mw.Authenticate(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Error("handler must not run")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestTenantFromContext_Empty(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if got := TenantFromContext(req.Context()); got != "" {
		t.Errorf("TenantFromContext() = %q, want empty", got)
	}
}
