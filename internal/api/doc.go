// Marquee - Media Catalog Access Layer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package api provides the HTTP transport: chi routing, request decoding and
// validation, and the mapping of service errors to status codes.
//
// Routes:
//
//	POST   /register                 create an account
//	POST   /login                    verify credentials, issue a session token
//	GET    /titles                   paginated listing (?type=&age=&page=)
//	GET    /titles/details/{id}      one title document
//	GET    /title/search             free-text search (?q=&age=&limit=)
//	GET    /titles/watchlist         resolve the caller's watchlist   (bearer)
//	POST   /titles/watchlist         add ?show_id=                    (bearer)
//	DELETE /titles/watchlist         remove ?show_id=                 (bearer)
//	GET    /health/live, /health/ready
//	GET    /metrics
//
// On list and search, a valid bearer token's age replaces the age query
// parameter. Errors use the envelope
// {"success":false,"error":{"code":...,"message":...,"request_id":...}}.
package api
