// Marquee - Media Catalog Access Layer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package main is the entry point for the Marquee API server.
//
// Marquee serves a read-mostly media catalog (browse, search, title
// details) with age-based content gating, plus account registration,
// login and a per-account watchlist.
//
// # Startup
//
//  1. Configuration: defaults, optional config.yaml, environment (Koanf v2)
//  2. Logging: zerolog, optionally to a rotating file
//  3. Store: MongoDB or embedded BadgerDB; failure to open is fatal
//  4. Circuit breaker: wraps the store when breaker.enabled is set
//  5. Seed (optional): loads catalog.seed_file into the title store
//  6. Services and HTTP router
//  7. Supervisor tree: HTTP server plus Badger value-log GC
//
// # Configuration
//
// Settings are overridden by flat environment variables, for example:
//
//	export STORE_DRIVER=mongo
//	export MONGO_URI=mongodb://localhost:27017
//	export JWT_SECRET=$(openssl rand -hex 32)
//	./marquee
//
// # Signal Handling
//
// SIGINT and SIGTERM cancel the supervisor tree. The HTTP server drains
// in-flight requests within server.shutdown_timeout, then the store is
// closed.
package main
