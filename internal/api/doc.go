// Rankpulse - SEO and Marketing Analytics Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rankpulse

/*
Package api provides the REST surface of Rankpulse.

Routing uses chi with go-chi/cors for CORS and go-chi/httprate for rate
limiting. Every response, success or failure, uses one envelope:

	{
	  "success": true,
	  "data": {...},
	  "error": {"code": "...", "message": "...", "details": {...}},
	  "meta": {"timestamp": "...", "request_id": "..."}
	}

Endpoints:

	POST /api/v1/auth/register          create a user and its tenant
	POST /api/v1/auth/login             issue a bearer token
	POST /api/v1/tenant/credentials     store one credential entry (JWT)
	GET  /api/v1/tenant/credentials     list configured keys, masked (JWT)
	POST /api/v1/fetch/{service}        run a synchronous fetch (JWT)
	GET  /api/v1/data/{service}         rows of every table of a service (JWT)
	GET  /api/v1/data/{service}/{table} rows of one table (JWT)
	GET  /api/v1/alerts                 stored alert events, newest first (JWT)
	POST /webhook/alert                 store an alert event
	GET  /health                        database and circuit breaker status
	GET  /metrics                       Prometheus exposition

The tenant of every authenticated call comes from the token, never from the
request. Errors are mapped to HTTP statuses in errors.go: 400 for malformed
bodies, 401 for authentication, 404 for unknown services or tables, 409 for
duplicates, 422 for semantic validation and credential problems, 502 for
provider failures and 500 for everything else.
*/
package api
