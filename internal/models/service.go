// Rankpulse - SEO and Marketing Analytics Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rankpulse

package models

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownService is returned when a service name cannot be resolved.
var ErrUnknownService = errors.New("unknown service")

// Service identifies an external analytics provider.
type Service string

const (
	// ServiceSearchConsole is Google Search Console.
	ServiceSearchConsole Service = "gsc"

	// ServiceAnalytics is Google Analytics 4.
	ServiceAnalytics Service = "ga4"

	// ServiceCloudflare is Cloudflare zone analytics.
	ServiceCloudflare Service = "cloudflare"
)

// serviceAliases maps accepted spellings to canonical services.
var serviceAliases = map[string]Service{
	"gsc":            ServiceSearchConsole,
	"search-console": ServiceSearchConsole,
	"search_console": ServiceSearchConsole,
	"searchconsole":  ServiceSearchConsole,
	"ga4":            ServiceAnalytics,
	"analytics":      ServiceAnalytics,
	"cloudflare":     ServiceCloudflare,
	"edge-cdn":       ServiceCloudflare,
	"edge_cdn":       ServiceCloudflare,
}

// AllServices returns every supported service in a stable order.
func AllServices() []Service {
	return []Service{ServiceSearchConsole, ServiceAnalytics, ServiceCloudflare}
}

// ParseService resolves a service name or alias (case-insensitive).
func ParseService(name string) (Service, error) {
	if svc, ok := serviceAliases[strings.ToLower(strings.TrimSpace(name))]; ok {
		return svc, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownService, name)
}

// Valid reports whether s is one of the supported services.
func (s Service) Valid() bool {
	switch s {
	case ServiceSearchConsole, ServiceAnalytics, ServiceCloudflare:
		return true
	default:
		return false
	}
}

// String implements fmt.Stringer.
func (s Service) String() string {
	return string(s)
}

// Tables returns the logical tables populated by the service, in write order.
func (s Service) Tables() []Table {
	switch s {
	case ServiceSearchConsole:
		return []Table{TableGSCSummary, TableGSCQueries, TableGSCPages, TableGSCCountries, TableGSCDevices}
	case ServiceAnalytics:
		return []Table{TableGA4TopPages, TableGA4Traffic, TableGA4Countries, TableGA4Browsers}
	case ServiceCloudflare:
		return []Table{TableCloudflareSummary}
	default:
		return nil
	}
}
