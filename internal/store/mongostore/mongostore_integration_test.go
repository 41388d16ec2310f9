// Marquee - Media Catalog Access Layer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

//go:build integration

package mongostore

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/tomtom215/marquee/internal/catalog"
	"github.com/tomtom215/marquee/internal/filter"
	"github.com/tomtom215/marquee/internal/models"
	"github.com/tomtom215/marquee/internal/store"
	"github.com/tomtom215/marquee/internal/testinfra"
)

func openIntegrationStore(t *testing.T) *Store {
	t.Helper()
	testinfra.SkipIfNoDocker(t)

	ctx := context.Background()
	container, err := testinfra.NewMongoContainer(ctx)
	if err != nil {
		t.Fatalf("NewMongoContainer() error = %v", err)
	}
	t.Cleanup(func() { testinfra.CleanupContainer(t, context.Background(), container) })

	s, err := Open(ctx, Config{URI: container.URI, Database: "marquee_test", ConnectTimeout: 10 * time.Second})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { _ = s.Close(context.Background()) })
	return s
}

func TestMongoStore_Integration(t *testing.T) {
	s := openIntegrationStore(t)
	ctx := context.Background()

	titles := []models.Title{
		{"show_id": "s1", "title": "Cats", "type": "Movie", "rating": "PG", "cast": []string{"Ann Lee"}},
		{"show_id": "s2", "title": "Category", "type": "Movie", "rating": "R", "cast": []string{"Bo Chan"}},
		{"show_id": "s3", "title": "Wildcat", "type": "TV Show", "rating": "TV-14", "cast": []string{"Cat Stevens"}},
	}
	if _, err := s.UpsertTitles(ctx, titles); err != nil {
		t.Fatalf("UpsertTitles() error = %v", err)
	}

	t.Run("search by word boundary", func(t *testing.T) {
		p, err := catalog.SearchFilter("cat", 15)
		if err != nil {
			t.Fatalf("SearchFilter() error = %v", err)
		}
		got, err := s.FindTitles(ctx, p, store.FindOptions{})
		if err != nil {
			t.Fatalf("FindTitles() error = %v", err)
		}
		if len(got) != 1 || got[0].ID() != "s3" {
			t.Fatalf("FindTitles() = %v, want [s3]", got)
		}
		if _, ok := got[0]["_id"]; ok {
			t.Error("FindTitles() should project out _id")
		}
	})

	t.Run("count and page", func(t *testing.T) {
		n, err := s.CountTitles(ctx, filter.Equal{Field: "type", Value: "Movie"})
		if err != nil || n != 2 {
			t.Fatalf("CountTitles() = %d, %v; want 2", n, err)
		}
		got, err := s.FindTitles(ctx, filter.All(), store.FindOptions{Skip: 2, Limit: 15})
		if err != nil || len(got) != 1 {
			t.Fatalf("FindTitles(skip 2) = %v, %v", got, err)
		}
	})

	t.Run("search words with non-ascii letters", func(t *testing.T) {
		extra := []models.Title{
			{"show_id": "s10", "title": "Big Little Lies", "type": "TV Show", "rating": "TV-MA", "cast": []string{"Zoë Kravitz"}},
			{"show_id": "s11", "title": "日本語", "type": "Movie", "rating": "G"},
		}
		if _, err := s.UpsertTitles(ctx, extra); err != nil {
			t.Fatalf("UpsertTitles() error = %v", err)
		}
		t.Cleanup(func() {
			_, _ = s.titles.DeleteMany(context.Background(), bson.M{"show_id": bson.M{"$in": bson.A{"s10", "s11"}}})
		})

		for q, want := range map[string]string{"Zoë": "s10", "zoë kravitz": "s10", "日本語": "s11"} {
			p, err := catalog.SearchFilter(q, 30)
			if err != nil {
				t.Fatalf("SearchFilter(%q) error = %v", q, err)
			}
			got, err := s.FindTitles(ctx, p, store.FindOptions{})
			if err != nil {
				t.Fatalf("FindTitles(%q) error = %v", q, err)
			}
			if len(got) != 1 || got[0].ID() != want {
				t.Errorf("search %q = %v, want [%s]", q, got, want)
			}
		}
	})

	t.Run("get title", func(t *testing.T) {
		if _, err := s.GetTitle(ctx, "missing"); !errors.Is(err, store.ErrNotFound) {
			t.Errorf("GetTitle(missing) error = %v", err)
		}
	})

	t.Run("accounts and watchlist", func(t *testing.T) {
		acct := &models.Account{Email: "a@x.com", PasswordHash: "h", Age: 15}
		if err := s.CreateAccount(ctx, acct); err != nil {
			t.Fatalf("CreateAccount() error = %v", err)
		}
		if err := s.CreateAccount(ctx, &models.Account{Email: "a@x.com"}); !errors.Is(err, store.ErrDuplicateKey) {
			t.Errorf("duplicate CreateAccount() error = %v", err)
		}

		var wg sync.WaitGroup
		var modified atomic.Int64
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				res, err := s.AddToWatchlist(ctx, "a@x.com", "s1")
				if err != nil {
					t.Errorf("AddToWatchlist() error = %v", err)
					return
				}
				modified.Add(res.ModifiedCount)
			}()
		}
		wg.Wait()
		if modified.Load() != 1 {
			t.Errorf("concurrent adds modified %d times, want 1", modified.Load())
		}

		res, err := s.RemoveFromWatchlist(ctx, "a@x.com", "s9")
		if err != nil || res.MatchedCount != 1 || res.ModifiedCount != 0 {
			t.Errorf("remove absent = %+v, %v", res, err)
		}
		res, err = s.RemoveFromWatchlist(ctx, "b@x.com", "s1")
		if err != nil || res.MatchedCount != 0 {
			t.Errorf("remove unknown = %+v, %v", res, err)
		}

		got, err := s.GetAccount(ctx, "a@x.com")
		if err != nil {
			t.Fatalf("GetAccount() error = %v", err)
		}
		if len(got.Watchlist) != 1 || got.Watchlist[0] != "s1" {
			t.Errorf("Watchlist = %v, want [s1]", got.Watchlist)
		}
	})
}

func TestOpen_UnreachableIsUnavailable(t *testing.T) {
	ctx := context.Background()
	_, err := Open(ctx, Config{URI: "mongodb://127.0.0.1:1", ConnectTimeout: 500 * time.Millisecond})
	if !errors.Is(err, models.ErrStoreUnavailable) {
		t.Errorf("Open() error = %v, want ErrStoreUnavailable", err)
	}
}
