// Rankpulse - SEO and Marketing Analytics Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rankpulse

package searchconsole

import (
	"github.com/tomtom215/rankpulse/internal/credentials"
	"github.com/tomtom215/rankpulse/internal/models"
	"github.com/tomtom215/rankpulse/internal/providers"
)

var siteRequirement = credentials.Requirement{
	Service: models.ServiceSearchConsole,
	Fields:  []credentials.Field{{Name: "site_url", Optional: true}},
}

// settings are the resolved inputs of a Search Console adapter.
type settings struct {
	serviceAccountJSON []byte
	siteURL            string
}

// loadSettings reads the service account in either supported shape. A
// site_url credential takes precedence over one stored inside the key
// object; with neither the adapter discovers the site.
func loadSettings(creds credentials.Credentials) (settings, error) {
	sa, err := providers.ResolveServiceAccount(models.ServiceSearchConsole, creds)
	if err != nil {
		return settings{}, err
	}

	site, err := siteRequirement.Resolve(creds)
	if err != nil {
		return settings{}, err
	}
	siteURL := site.String("site_url")
	if siteURL == "" {
		siteURL = sa.String("site_url")
	}

	raw, err := sa.JSON()
	if err != nil {
		return settings{}, err
	}
	return settings{serviceAccountJSON: raw, siteURL: siteURL}, nil
}
