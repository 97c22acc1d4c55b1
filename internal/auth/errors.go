// Rankpulse - SEO and Marketing Analytics Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rankpulse

package auth

import "fmt"

var (
	errMissingToken    = fmt.Errorf("%w: missing bearer token", ErrInvalidToken)
	errMalformedHeader = fmt.Errorf("%w: invalid authorization header", ErrInvalidToken)
)
