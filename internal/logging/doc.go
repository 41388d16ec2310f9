// Marquee - Media Catalog Access Layer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package logging provides centralized zerolog-based logging.
//
// # Quick Start
//
//	logging.Init(logging.Config{
//	    Level:  "info",
//	    Format: "json",
//	})
//
//	logging.Info().Msg("Server starting")
//	logging.Error().Err(err).Msg("Operation failed")
//
//	// With request context (request_id is added automatically)
//	logging.Ctx(ctx).Info().Str("show_id", id).Msg("Watchlist updated")
//
// # Output
//
// Logs go to stderr unless Config.File is set, in which case they are
// written to a size-rotated file (lumberjack). Format "console" renders
// human-readable lines for development.
//
// # Audit Events
//
// AuditLogger records registration and login outcomes with the email
// masked by SanitizeEmail. Passwords and tokens are never logged.
//
// # Interop
//
// NewSlogLogger bridges log/slog to zerolog for libraries that only speak
// slog, such as sutureslog.
//
// Always terminate log chains with .Msg() or .Send():
//
//	logging.Info().Str("key", "value").Msg("message")  // Correct
//	logging.Info().Str("key", "value")                 // WRONG - log not emitted
package logging
