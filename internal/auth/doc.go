// Marquee - Media Catalog Access Layer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package auth issues and validates session tokens and attaches the
// authenticated identity to request contexts.
//
// Tokens are HS256-signed JWTs carrying the account email and age. The
// services never trust client-supplied identity: watchlist handlers take
// the identity from the validated token only.
//
//	jwtManager, err := auth.NewJWTManager(&cfg.Security)
//	mw := auth.NewMiddleware(jwtManager)
//
//	r.With(mw.RequireIdentity).Get("/titles/watchlist", h.GetWatchlist)
//	r.With(mw.OptionalIdentity).Get("/titles", h.ListTitles)
package auth
