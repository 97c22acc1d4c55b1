// Rankpulse - SEO and Marketing Analytics Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rankpulse

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/rankpulse/internal/auth"
	"github.com/tomtom215/rankpulse/internal/middleware"
)

// Router wires handlers and middleware into a chi mux.
type Router struct {
	handler       *Handler
	auth          *auth.Middleware
	chiMiddleware *ChiMiddleware
}

// NewRouter creates the router. A nil chiConfig uses the defaults.
func NewRouter(handler *Handler, authMiddleware *auth.Middleware, chiConfig *ChiMiddlewareConfig) *Router {
	return &Router{
		handler:       handler,
		auth:          authMiddleware,
		chiMiddleware: NewChiMiddleware(chiConfig),
	}
}

// AuthErrorWriter renders authentication failures with the API envelope.
// Pass it to auth.NewMiddleware.
func AuthErrorWriter(w http.ResponseWriter, r *http.Request, err error) {
	respondErr(w, r, err)
}

// SetupChi configures all HTTP routes.
func (router *Router) SetupChi() http.Handler {
	r := chi.NewRouter()

	// Applied to every route, in order.
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestLogger)
	r.Use(chimiddleware.Recoverer)
	r.Use(router.chiMiddleware.CORS())
	r.Use(middleware.PrometheusMetrics)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		NewResponseWriter(w, r).NotFound("route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, r, http.StatusMethodNotAllowed, ErrCodeMethodNotAllowed, "method not allowed")
	})

	r.With(router.chiMiddleware.RateLimitCustom("health", RateLimitHealth)).
		Get("/health", router.handler.Health)
	r.Handle("/metrics", promhttp.Handler())

	r.With(router.chiMiddleware.RateLimitCustom("webhook", RateLimitWebhook)).
		Post("/webhook/alert", router.handler.AlertWebhook)

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimitCustom("auth", RateLimitAuth))
		r.Post("/register", router.handler.Register)
		r.Post("/login", router.handler.Login)
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit("api"))
		r.Use(router.auth.Authenticate)

		r.Post("/tenant/credentials", router.handler.PutCredential)
		r.Get("/tenant/credentials", router.handler.ListCredentials)
		r.Get("/alerts", router.handler.ListAlerts)

		r.With(router.chiMiddleware.RateLimitCustom("fetch", RateLimitFetch)).
			Post("/fetch/{service}", router.handler.Fetch)

		r.Group(func(r chi.Router) {
			r.Use(chimiddleware.Compress(5, "application/json"))
			r.Get("/data/{service}", router.handler.ServiceData)
			r.Get("/data/{service}/{table}", router.handler.TableData)
		})
	})

	return r
}
