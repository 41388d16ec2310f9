// Marquee - Media Catalog Access Layer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tomtom215/marquee/internal/models"
	"github.com/tomtom215/marquee/internal/store"
)

// Config holds the catalog's server-side limits.
type Config struct {
	PageSize           int
	SearchDefaultLimit int
	SearchMaxLimit     int
}

// DefaultConfig returns the standard limits.
func DefaultConfig() Config {
	return Config{
		PageSize:           15,
		SearchDefaultLimit: 15,
		SearchMaxLimit:     100,
	}
}

// ListParams are the inputs of a catalog listing.
type ListParams struct {
	Kind string
	Age  int
	Page int
}

// SearchParams are the inputs of a catalog search. A Limit of zero or less
// selects the default.
type SearchParams struct {
	Query string
	Age   int
	Limit int
}

// Service answers catalog reads.
type Service struct {
	titles store.Titles
	cfg    Config
}

// NewService creates a catalog service. Zero config fields take defaults.
func NewService(titles store.Titles, cfg Config) *Service {
	def := DefaultConfig()
	if cfg.PageSize <= 0 {
		cfg.PageSize = def.PageSize
	}
	if cfg.SearchDefaultLimit <= 0 {
		cfg.SearchDefaultLimit = def.SearchDefaultLimit
	}
	if cfg.SearchMaxLimit <= 0 {
		cfg.SearchMaxLimit = def.SearchMaxLimit
	}
	if cfg.SearchDefaultLimit > cfg.SearchMaxLimit {
		cfg.SearchDefaultLimit = cfg.SearchMaxLimit
	}
	return &Service{titles: titles, cfg: cfg}
}

// PageSize returns the fixed listing page size.
func (s *Service) PageSize() int {
	return s.cfg.PageSize
}

// List returns one page of titles for the kind and age.
func (s *Service) List(ctx context.Context, params ListParams) (*models.TitlePage, error) {
	page, err := Paginate(ctx, s.titles, ListFilter(params.Kind, params.Age), params.Page, s.cfg.PageSize)
	if err != nil {
		return nil, fmt.Errorf("list titles: %w", err)
	}
	return page, nil
}

// Get returns the title with the given show_id.
func (s *Service) Get(ctx context.Context, showID string) (models.Title, error) {
	showID = strings.TrimSpace(showID)
	if showID == "" {
		return nil, fmt.Errorf("get title: %w: show_id is required", models.ErrInvalidInput)
	}
	t, err := s.titles.GetTitle(ctx, showID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("title %q: %w", showID, models.ErrNotFound)
		}
		return nil, fmt.Errorf("get title: %w", err)
	}
	return t, nil
}

// Search returns titles whose title or cast matches the query.
// No matches is a successful, empty result.
func (s *Service) Search(ctx context.Context, params SearchParams) (*models.SearchResult, error) {
	p, err := SearchFilter(params.Query, params.Age)
	if err != nil {
		return nil, err
	}

	limit := params.Limit
	if limit <= 0 {
		limit = s.cfg.SearchDefaultLimit
	}
	if limit > s.cfg.SearchMaxLimit {
		limit = s.cfg.SearchMaxLimit
	}

	found, err := s.titles.FindTitles(ctx, p, store.FindOptions{Limit: int64(limit)})
	if err != nil {
		return nil, fmt.Errorf("search titles: %w", err)
	}
	return &models.SearchResult{Count: len(found), Results: found}, nil
}
