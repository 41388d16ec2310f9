// Marquee - Media Catalog Access Layer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package logging

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
)

// Audit event types.
const (
	AuditRegister     = "auth.register"
	AuditLoginSuccess = "auth.login.success"
	AuditLoginFailure = "auth.login.failure"
)

// AuditLogger records account lifecycle events. Emails are masked and
// credentials are never written.
type AuditLogger struct {
	logger zerolog.Logger
}

// NewAuditLogger creates an audit logger on top of the global logger.
func NewAuditLogger() *AuditLogger {
	return &AuditLogger{logger: WithComponent("audit")}
}

// NewAuditLoggerWith creates an audit logger writing to the given logger.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewAuditLoggerWith(l zerolog.Logger) *AuditLogger {
	return &AuditLogger{logger: l.With().Str("component", "audit").Logger()}
}

// LogRegister records a registration attempt.
func (a *AuditLogger) LogRegister(ctx context.Context, email, ip string, err error) {
	event := a.logger.Info()
	if err != nil {
		event = a.logger.Warn().Str("reason", err.Error())
	}
	a.with(ctx, event, AuditRegister, email, ip).
		Bool("success", err == nil).
		Msg("Account registration")
}

// LogLoginSuccess records a successful login.
func (a *AuditLogger) LogLoginSuccess(ctx context.Context, email, ip string) {
	a.with(ctx, a.logger.Info(), AuditLoginSuccess, email, ip).
		Bool("success", true).
		Msg("Login succeeded")
}

// LogLoginFailure records a failed login with a short reason.
func (a *AuditLogger) LogLoginFailure(ctx context.Context, email, ip, reason string) {
	a.with(ctx, a.logger.Warn(), AuditLoginFailure, email, ip).
		Bool("success", false).
		Str("reason", reason).
		Msg("Login failed")
}

func (a *AuditLogger) with(ctx context.Context, event *zerolog.Event, kind, email, ip string) *zerolog.Event {
	event = event.Str("event_type", kind).
		Str("email", SanitizeEmail(email)).
		Str("ip_address", ip)
	if id := RequestIDFromContext(ctx); id != "" {
		event = event.Str("request_id", id)
	}
	return event
}

// SanitizeEmail masks an email address, keeping the first character of the
// local part and the domain.
//
//	SanitizeEmail("alice@example.com") // "a***@example.com"
func SanitizeEmail(email string) string {
	email = strings.TrimSpace(email)
	if email == "" {
		return ""
	}
	at := strings.LastIndex(email, "@")
	if at <= 0 {
		return "***"
	}
	local := []rune(email[:at])
	return string(local[0]) + "***" + email[at:]
}
