// Marquee - Media Catalog Access Layer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package ingest loads catalog exports into the title store.
//
// The input is the netflix_titles CSV export: a header row naming the
// columns (show_id, type, title, director, cast, country, date_added,
// release_year, rating, duration, listed_in, description) followed by one
// row per title. Column order is taken from the header and unknown columns
// are carried through unchanged. The cast column is split on commas into
// an array so cast matching works per name, and release_year is stored as
// an integer when it parses.
//
// Titles are upserted by show_id in batches, so re-running a load is
// idempotent.
package ingest
