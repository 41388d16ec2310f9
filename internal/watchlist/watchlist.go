// Marquee - Media Catalog Access Layer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package watchlist manages each account's set of saved titles.
//
// A watchlist holds title references only. Resolution is tolerant: ids that
// no longer exist in the catalog are dropped when the list is read. When
// Config.VerifyTitles is set, Add also refuses ids that do not resolve.
package watchlist

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tomtom215/marquee/internal/catalog"
	"github.com/tomtom215/marquee/internal/models"
	"github.com/tomtom215/marquee/internal/store"
)

// EmptyMessage is reported when an account has no saved titles.
const EmptyMessage = "Watchlist is empty"

// Config controls watchlist integrity checks.
type Config struct {
	VerifyTitles bool
}

// Service implements Get, Add and Remove for authenticated identities.
type Service struct {
	accounts store.Accounts
	titles   store.Titles
	cfg      Config
}

// NewService creates a watchlist service.
func NewService(accounts store.Accounts, titles store.Titles, cfg Config) *Service {
	return &Service{accounts: accounts, titles: titles, cfg: cfg}
}

// Get resolves the identity's watchlist into title documents. Titles are
// age-gated by the account's stored age.
func (s *Service) Get(ctx context.Context, id models.Identity) (*models.WatchlistResponse, error) {
	acct, err := s.account(ctx, id.Email)
	if err != nil {
		return nil, fmt.Errorf("get watchlist: %w", err)
	}

	if len(acct.Watchlist) == 0 {
		return &models.WatchlistResponse{Message: EmptyMessage, Shows: []models.Title{}}, nil
	}

	shows, err := s.titles.FindTitles(ctx, catalog.WatchlistFilter(acct.Watchlist, acct.Age), store.FindOptions{})
	if err != nil {
		return nil, fmt.Errorf("resolve watchlist: %w", err)
	}
	count := len(shows)
	return &models.WatchlistResponse{Count: &count, Shows: shows}, nil
}

// Add inserts titleID into the identity's watchlist.
func (s *Service) Add(ctx context.Context, id models.Identity, titleID string) error {
	titleID = strings.TrimSpace(titleID)
	if titleID == "" {
		return fmt.Errorf("add to watchlist: %w: show_id is required", models.ErrInvalidInput)
	}

	if s.cfg.VerifyTitles {
		if _, err := s.titles.GetTitle(ctx, titleID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fmt.Errorf("title %q: %w", titleID, models.ErrNotFound)
			}
			return fmt.Errorf("add to watchlist: %w", err)
		}
	}

	res, err := s.accounts.AddToWatchlist(ctx, id.Email, titleID)
	if err != nil {
		return fmt.Errorf("add to watchlist: %w", err)
	}

	if res.MatchedCount == 0 {
		// The conditional update matches neither a missing account nor one
		// that already holds the title; a re-read tells them apart.
		if _, err := s.account(ctx, id.Email); err != nil {
			return fmt.Errorf("add to watchlist: %w", err)
		}
		return fmt.Errorf("title %q: %w", titleID, models.ErrAlreadyInWatchlist)
	}
	if res.ModifiedCount == 0 {
		return fmt.Errorf("add %q: %w", titleID, models.ErrUpdateFailed)
	}
	return nil
}

// Remove deletes titleID from the identity's watchlist. Removing an id that
// is not present succeeds.
func (s *Service) Remove(ctx context.Context, id models.Identity, titleID string) error {
	titleID = strings.TrimSpace(titleID)
	if titleID == "" {
		return fmt.Errorf("remove from watchlist: %w: show_id is required", models.ErrInvalidInput)
	}

	res, err := s.accounts.RemoveFromWatchlist(ctx, id.Email, titleID)
	if err != nil {
		return fmt.Errorf("remove from watchlist: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("remove from watchlist: %w", models.ErrUnknownAccount)
	}
	return nil
}

func (s *Service) account(ctx context.Context, email string) (*models.Account, error) {
	acct, err := s.accounts.GetAccount(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("%q: %w", email, models.ErrUnknownAccount)
	}
	if err != nil {
		return nil, err
	}
	return acct, nil
}
