// Marquee - Media Catalog Access Layer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package logging

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type contextKey string

// requestIDKey is the context key for HTTP request IDs.
const requestIDKey contextKey = "request_id"

// GenerateRequestID creates a new unique request ID.
func GenerateRequestID() string {
	return uuid.New().String()
}

// ContextWithRequestID returns a new context with the given request ID.
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromContext retrieves the request ID from context.
// Returns empty string if not present.
func RequestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}
	return ""
}

// Ctx returns the global logger with the request ID from ctx attached.
//
//	logging.Ctx(ctx).Info().Msg("Processing request")
//	// {"level":"info","request_id":"uuid","message":"Processing request"}
func Ctx(ctx context.Context) *zerolog.Logger {
	l := Logger()
	if requestID := RequestIDFromContext(ctx); requestID != "" {
		l = l.With().Str("request_id", requestID).Logger()
	}
	return &l
}

// WithComponent creates a child logger with a component field.
//
//	storeLogger := logging.WithComponent("store")
func WithComponent(component string) zerolog.Logger {
	return With().Str("component", component).Logger()
}
