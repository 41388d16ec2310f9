// Marquee - Media Catalog Access Layer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

// Query parameter structs validated with go-playground/validator. Integer
// fields are parsed by parseIntParam before validation.

// ListTitlesQuery holds GET /titles parameters. Kind is matched
// case-sensitively; anything other than "All" or "TV" selects movies.
type ListTitlesQuery struct {
	Kind string `query:"type" validate:"max=32"`
	Age  int    `query:"age" validate:"gte=0,lte=200"`
	Page int    `query:"page" validate:"gte=0,lte=1000000"`
}

// SearchQuery holds GET /title/search parameters. A blank q is reported as
// an empty query by the catalog service, not as a validation failure.
type SearchQuery struct {
	Q     string `query:"q" validate:"max=200"`
	Age   int    `query:"age" validate:"gte=0,lte=200"`
	Limit int    `query:"limit" validate:"gte=0"`
}

// WatchlistQuery holds the show_id parameter of watchlist mutations.
type WatchlistQuery struct {
	ShowID string `query:"show_id" validate:"notblank,showid"`
}
