// Marquee - Media Catalog Access Layer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package mongostore implements store.Store on MongoDB using the official
// v2 driver.
//
// Accounts live in the users collection (unique index on email) and titles
// in the netflix_titles collection (unique index on show_id). Predicates
// from the filter package are translated to BSON query documents; regex
// predicates become case-insensitive $regex matches, which MongoDB applies
// element-wise to array fields such as cast.
//
// Watchlist additions are a single conditional update:
//
//	filter: {email: E, watchlist: {$ne: ID}}
//	update: {$push: {watchlist: ID}}
//
// so concurrent adds of the same title cannot both succeed.
package mongostore
