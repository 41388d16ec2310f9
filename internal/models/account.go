// Marquee - Media Catalog Access Layer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package models

import "slices"

// AdultAge is the minimum age at which restricted titles become visible.
const AdultAge = 18

// Account is a registered account holder.
//
// Email is the unique, case-sensitive identifier. PasswordHash holds the
// bcrypt hash and is never returned to clients. Watchlist is a set of
// title identifiers; order is not significant and duplicates are rejected
// by the store's conditional update.
type Account struct {
	Email        string   `json:"email" bson:"email"`
	PasswordHash string   `json:"password" bson:"password"`
	Age          int      `json:"age" bson:"age"`
	Watchlist    []string `json:"watchlist" bson:"watchlist"`
}

// IsMinor reports whether restricted titles must be hidden from the account.
func (a *Account) IsMinor() bool {
	return a.Age < AdultAge
}

// HasTitle reports whether titleID is already on the watchlist.
func (a *Account) HasTitle(titleID string) bool {
	return slices.Contains(a.Watchlist, titleID)
}

// Identity is an authenticated account as seen by the services.
// It is derived from a validated session token, never from request input.
type Identity struct {
	Email string `json:"email"`
	Age   int    `json:"age"`
}
