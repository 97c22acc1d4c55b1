// Rankpulse - SEO and Marketing Analytics Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rankpulse

/*
Package validation validates decoded API request bodies with
go-playground/validator v10.

A single validator instance is built once and shared; it caches struct
metadata and is safe for concurrent use. Field names in messages are the
JSON names of the request, so a failure reads "start_date is required"
rather than naming the Go field.

Custom tags:

  - service: gsc, ga4 or cloudflare (and their accepted aliases)
  - isodate: a YYYY-MM-DD calendar date

Example:

	type fetchRequest struct {
	    StartDate string `json:"start_date" validate:"required,isodate"`
	    EndDate   string `json:"end_date" validate:"required,isodate"`
	}

	if verr := validation.ValidateStruct(&req); verr != nil {
	    respondError(w, r, http.StatusUnprocessableEntity, "VALIDATION_ERROR", verr.Error(), verr.Details())
	    return
	}
*/
package validation
