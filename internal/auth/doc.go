// Rankpulse - SEO and Marketing Analytics Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rankpulse

/*
Package auth provides tenant accounts, bearer tokens and the authentication
middleware guarding the tenant API.

Key Components:

  - JWTManager: HS256 token issue and validation (claims sub, tenant_id, exp)
  - Service: registration (bcrypt hash, new tenant per user) and login
  - Middleware: chi-compatible middleware placing *Claims and the tenant id
    in the request context

Tokens are stateless and cannot be revoked before they expire. Every API
call made with a token is scoped to the token's tenant; handlers read it
with TenantFromContext and never from the request body.

Usage Example:

	jwtManager, err := auth.NewJWTManager(&cfg.Security)
	if err != nil {
	    return err
	}
	accounts := auth.NewService(db, jwtManager)
	mw := auth.NewMiddleware(jwtManager, nil)

	r.Group(func(r chi.Router) {
	    r.Use(mw.Authenticate)
	    r.Get("/api/v1/tenant/credentials", h.ListCredentials)
	})

Security:

  - only HS256 is accepted, which rules out algorithm confusion
  - tokens without exp, sub or tenant_id are rejected
  - rejected tokens are recorded through the security logger
  - passwords must satisfy config.DefaultPasswordPolicy
*/
package auth
