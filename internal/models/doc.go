// Marquee - Media Catalog Access Layer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package models defines the data structures shared across Marquee.

It is the single source of truth for the persisted document shapes and the
HTTP request/response payloads:

  - Account: a registered account holder (collection "users")
  - Title: an open catalog document (collection "netflix_titles")
  - Request/response payloads for the catalog, auth and watchlist endpoints
  - Sentinel errors describing every failure the services can report

Field names follow the documents written by the catalog ingestion process, so
both store backends read and write the same shapes.
*/
package models
