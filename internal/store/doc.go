// Marquee - Media Catalog Access Layer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package store defines the document store contracts used by the catalog,
// account and watchlist services.
//
// Two backends implement Store:
//
//   - mongostore: MongoDB via the official v2 driver (production)
//   - badgerstore: an embedded BadgerDB document store (single node, tests)
//
// Both expose the same primitives: predicate-based find with skip/limit,
// count, lookup by unique key, and atomic add/remove on the account's
// watchlist array. Guard decorates any Store with a circuit breaker and
// Prometheus instrumentation.
//
// Connectivity failures are reported wrapped around models.ErrStoreUnavailable.
package store
