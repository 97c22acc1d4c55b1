// Rankpulse - SEO and Marketing Analytics Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rankpulse

package logging

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type ctxKey int

const (
	keyCorrelationID ctxKey = iota
	keyRequestID
	keyTenantID
	keyLogger
)

// ctxFields lists the context values Ctx copies into log fields.
var ctxFields = []struct {
	key   ctxKey
	field string
}{
	{keyCorrelationID, "correlation_id"},
	{keyRequestID, "request_id"},
	{keyTenantID, "tenant_id"},
}

// GenerateCorrelationID returns a short id tagging one ingestion run.
func GenerateCorrelationID() string {
	return uuid.NewString()[:8]
}

// GenerateRequestID returns a full UUID for an HTTP request.
func GenerateRequestID() string {
	return uuid.NewString()
}

func ContextWithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, keyCorrelationID, id)
}

func ContextWithNewCorrelationID(ctx context.Context) context.Context {
	return ContextWithCorrelationID(ctx, GenerateCorrelationID())
}

func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, keyRequestID, id)
}

func ContextWithTenantID(ctx context.Context, tenantID string) context.Context {
	return context.WithValue(ctx, keyTenantID, tenantID)
}

// ContextWithLogger makes Ctx start from logger instead of the global one.
//
//nolint:gocritic // zerolog.Logger is passed by value
func ContextWithLogger(ctx context.Context, logger zerolog.Logger) context.Context {
	return context.WithValue(ctx, keyLogger, logger)
}

func stringValue(ctx context.Context, key ctxKey) string {
	s, _ := ctx.Value(key).(string)
	return s
}

// CorrelationIDFromContext returns "" when no id is set. The same holds for
// the other *FromContext getters.
func CorrelationIDFromContext(ctx context.Context) string {
	return stringValue(ctx, keyCorrelationID)
}

func RequestIDFromContext(ctx context.Context) string {
	return stringValue(ctx, keyRequestID)
}

func TenantIDFromContext(ctx context.Context) string {
	return stringValue(ctx, keyTenantID)
}

// Ctx returns a logger carrying correlation_id, request_id and tenant_id
// from ctx.
//
//	logging.Ctx(ctx).Info().Str("service", "gsc").Msg("Fetch finished")
func Ctx(ctx context.Context) *zerolog.Logger {
	logger := CtxWith(ctx).Logger()
	return &logger
}

// CtxWith is Ctx for callers adding their own fields.
func CtxWith(ctx context.Context) zerolog.Context {
	logger, ok := ctx.Value(keyLogger).(zerolog.Logger)
	if !ok {
		logger = Logger()
	}

	zctx := logger.With()
	for _, f := range ctxFields {
		if v := stringValue(ctx, f.key); v != "" {
			zctx = zctx.Str(f.field, v)
		}
	}
	return zctx
}

// WithComponent returns a child of the global logger tagged with component.
func WithComponent(component string) zerolog.Logger {
	return With().Str("component", component).Logger()
}
