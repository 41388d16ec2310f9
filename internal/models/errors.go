// Marquee - Media Catalog Access Layer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package models

import "errors"

// Errors reported by the services. Callers match them with errors.Is; the
// services wrap them with operation context.
var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrDuplicateAccount   = errors.New("account already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUnknownAccount     = errors.New("account not found")
	ErrNotFound           = errors.New("not found")
	ErrEmptyQuery         = errors.New("empty search query")
	ErrAlreadyInWatchlist = errors.New("title already in watchlist")
	ErrUpdateFailed       = errors.New("watchlist update was not applied")
	ErrStoreUnavailable   = errors.New("store unavailable")
)
