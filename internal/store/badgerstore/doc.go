// Marquee - Media Catalog Access Layer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package badgerstore implements store.Store on an embedded BadgerDB.
//
// Documents are JSON encoded and stored under prefixed keys:
//
//	title:<show_id>   catalog title document
//	account:<email>   account document
//
// Finds scan the title prefix and evaluate predicates in process with
// filter.Matcher, so query cost is linear in catalog size. This backend is
// meant for single-node deployments, development and tests (InMemory).
// Watchlist mutations run in serialisable transactions; a transaction that
// loses a write conflict is re-run against the new state.
package badgerstore
