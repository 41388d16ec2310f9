// Marquee - Media Catalog Access Layer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package catalog

import (
	"context"
	"fmt"

	"github.com/sourcegraph/conc/pool"

	"github.com/tomtom215/marquee/internal/filter"
	"github.com/tomtom215/marquee/internal/models"
	"github.com/tomtom215/marquee/internal/store"
)

// Offsets returns the skip for a 1-based page and the page number actually
// used. Pages below 1 are treated as page 1.
func Offsets(page, size int) (skip int64, normalized int) {
	if page < 1 {
		page = 1
	}
	if size < 0 {
		size = 0
	}
	return int64(page-1) * int64(size), page
}

// Paginate counts the matches and fetches one page concurrently.
// An empty page yields models.ErrNotFound.
func Paginate(ctx context.Context, titles store.Titles, p filter.Predicate, page, size int) (*models.TitlePage, error) {
	skip, page := Offsets(page, size)

	var (
		total int64
		data  []models.Title
	)

	wg := pool.New().WithContext(ctx).WithCancelOnError()
	wg.Go(func(ctx context.Context) error {
		n, err := titles.CountTitles(ctx, p)
		if err != nil {
			return fmt.Errorf("count: %w", err)
		}
		total = n
		return nil
	})
	wg.Go(func(ctx context.Context) error {
		found, err := titles.FindTitles(ctx, p, store.FindOptions{Skip: skip, Limit: int64(size)})
		if err != nil {
			return fmt.Errorf("find: %w", err)
		}
		data = found
		return nil
	})
	if err := wg.Wait(); err != nil {
		return nil, fmt.Errorf("paginate: %w", err)
	}

	if len(data) == 0 {
		return nil, fmt.Errorf("page %d: %w", page, models.ErrNotFound)
	}

	return &models.TitlePage{
		Total: total,
		Page:  page,
		Limit: size,
		Data:  data,
	}, nil
}
