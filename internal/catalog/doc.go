// Marquee - Media Catalog Access Layer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package catalog builds catalog queries and serves paginated listings,
// single-title lookups and free-text search.
//
// # Filters
//
// ListFilter narrows by kind and applies the age gate. Kind labels map as
// follows (exact, case-sensitive):
//
//	""  or "All"  no kind restriction
//	"TV"          type == "TV Show"
//	anything else type == "Movie"
//
// Requesters younger than models.AdultAge never see titles rated "R".
//
// SearchFilter matches the query against title OR cast, case-insensitively.
// Queries shorter than three characters match as substrings; longer ones
// must appear as a whole word. Query text is escaped, so regex
// metacharacters match literally.
//
// # Pagination
//
// Pages are 1-based; values below 1 are treated as page 1. An empty page is
// reported as models.ErrNotFound even when the filter matches other pages.
package catalog
