// Rankpulse - SEO and Marketing Analytics Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rankpulse

package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// DateLayout is the wire and SQL format of calendar dates.
const DateLayout = "2006-01-02"

// sessionNamespace is the UUIDv5 namespace for metric row session ids.
// Changing it changes every derived id and breaks deduplication of existing data.
var sessionNamespace = uuid.MustParse("6f1d3c2a-8b4e-5a7f-9c0d-2e3f4a5b6c7d")

// sessionSeparator cannot appear in tenant ids, table names or dates.
const sessionSeparator = "\x1f"

// SessionID derives the deterministic row identifier for a
// (tenant, table, date, dimension value) combination.
func SessionID(tenantID string, table Table, date time.Time, dimension string) string {
	name := strings.Join([]string{tenantID, string(table), date.Format(DateLayout), dimension}, sessionSeparator)
	return uuid.NewSHA1(sessionNamespace, []byte(name)).String()
}
