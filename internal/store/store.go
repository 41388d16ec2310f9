// Marquee - Media Catalog Access Layer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/tomtom215/marquee/internal/filter"
	"github.com/tomtom215/marquee/internal/models"
)

var (
	// ErrNotFound is returned when a lookup by unique key matches nothing.
	ErrNotFound = fmt.Errorf("document %w", models.ErrNotFound)

	// ErrDuplicateKey is returned when an insert violates a unique key.
	ErrDuplicateKey = errors.New("duplicate key")
)

// FindOptions bounds a find. A zero Limit means no limit.
type FindOptions struct {
	Skip  int64
	Limit int64
}

// UpdateResult reports the outcome of a single-document update, mirroring
// the matched/modified counts of a document store.
type UpdateResult struct {
	MatchedCount  int64
	ModifiedCount int64
}

// Titles is the read side of the catalog plus the bulk write used by ingestion.
type Titles interface {
	// FindTitles returns the titles matching p, in the backend's natural order.
	FindTitles(ctx context.Context, p filter.Predicate, opts FindOptions) ([]models.Title, error)

	// CountTitles returns the number of titles matching p, ignoring skip/limit.
	CountTitles(ctx context.Context, p filter.Predicate) (int64, error)

	// GetTitle returns the title with the given show_id or ErrNotFound.
	GetTitle(ctx context.Context, showID string) (models.Title, error)

	// UpsertTitles inserts or replaces titles keyed by show_id.
	UpsertTitles(ctx context.Context, titles []models.Title) (int, error)
}

// Accounts stores account documents keyed by email.
type Accounts interface {
	// CreateAccount inserts a new account or returns ErrDuplicateKey.
	CreateAccount(ctx context.Context, account *models.Account) error

	// GetAccount returns the account with the given email or ErrNotFound.
	GetAccount(ctx context.Context, email string) (*models.Account, error)

	// AddToWatchlist appends titleID to the account's watchlist in one atomic
	// conditional update. The update only matches when the account exists and
	// titleID is not already present, so MatchedCount is 0 in both of those cases.
	AddToWatchlist(ctx context.Context, email, titleID string) (UpdateResult, error)

	// RemoveFromWatchlist removes titleID from the account's watchlist.
	// MatchedCount is 0 only when the account does not exist.
	RemoveFromWatchlist(ctx context.Context, email, titleID string) (UpdateResult, error)
}

// Store is a complete backend with an explicit lifecycle.
type Store interface {
	Titles
	Accounts

	// Ping verifies the backend is reachable.
	Ping(ctx context.Context) error

	// Close releases the backend's resources.
	Close(ctx context.Context) error
}
