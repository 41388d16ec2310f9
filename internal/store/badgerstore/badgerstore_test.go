// Marquee - Media Catalog Access Layer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package badgerstore

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/tomtom215/marquee/internal/filter"
	"github.com/tomtom215/marquee/internal/models"
	"github.com/tomtom215/marquee/internal/store"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory() error = %v", err)
	}
	t.Cleanup(func() { _ = s.Close(context.Background()) })
	return s
}

func seedTitles(t *testing.T, s *Store) {
	t.Helper()
	titles := []models.Title{
		{"show_id": "s1", "title": "Cats", "type": "Movie", "rating": "PG", "cast": []string{"Ann Lee"}},
		{"show_id": "s2", "title": "Category", "type": "Movie", "rating": "R", "cast": []string{"Bo Chan"}},
		{"show_id": "s3", "title": "Wildcat", "type": "TV Show", "rating": "TV-14", "cast": "Cat Stevens, Dee Roe"},
		{"show_id": "s4", "title": "Dogs", "type": "TV Show", "rating": "R"},
	}
	n, err := s.UpsertTitles(context.Background(), titles)
	if err != nil {
		t.Fatalf("UpsertTitles() error = %v", err)
	}
	if n != len(titles) {
		t.Fatalf("UpsertTitles() = %d, want %d", n, len(titles))
	}
}

func ids(titles []models.Title) []string {
	out := make([]string, len(titles))
	for i, t := range titles {
		out[i] = t.ID()
	}
	return out
}

func TestStore_FindAndCount(t *testing.T) {
	t.Parallel()
	s := openTestStore(t)
	seedTitles(t, s)
	ctx := context.Background()

	tests := []struct {
		name    string
		pred    filter.Predicate
		opts    store.FindOptions
		want    []string
		wantCnt int64
	}{
		{"all", filter.All(), store.FindOptions{}, []string{"s1", "s2", "s3", "s4"}, 4},
		{"movies", filter.Equal{Field: "type", Value: "Movie"}, store.FindOptions{}, []string{"s1", "s2"}, 2},
		{"not restricted", filter.NotEqual{Field: "rating", Value: "R"}, store.FindOptions{}, []string{"s1", "s3"}, 2},
		{"skip and limit", filter.All(), store.FindOptions{Skip: 1, Limit: 2}, []string{"s2", "s3"}, 4},
		{"skip past end", filter.All(), store.FindOptions{Skip: 10}, []string{}, 4},
		{"in", filter.In{Field: "show_id", Values: []string{"s4", "s1", "s9"}}, store.FindOptions{}, []string{"s1", "s4"}, 2},
		{
			"cast string",
			filter.Regex{Field: "cast", Pattern: `\bdee\b`, IgnoreCase: true},
			store.FindOptions{}, []string{"s3"}, 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.FindTitles(ctx, tt.pred, tt.opts)
			if err != nil {
				t.Fatalf("FindTitles() error = %v", err)
			}
			gotIDs := ids(got)
			if len(gotIDs) != len(tt.want) {
				t.Fatalf("FindTitles() = %v, want %v", gotIDs, tt.want)
			}
			for i := range gotIDs {
				if gotIDs[i] != tt.want[i] {
					t.Errorf("FindTitles()[%d] = %s, want %s", i, gotIDs[i], tt.want[i])
				}
			}

			cnt, err := s.CountTitles(ctx, tt.pred)
			if err != nil {
				t.Fatalf("CountTitles() error = %v", err)
			}
			if cnt != tt.wantCnt {
				t.Errorf("CountTitles() = %d, want %d", cnt, tt.wantCnt)
			}
		})
	}
}

func TestStore_GetTitle(t *testing.T) {
	t.Parallel()
	s := openTestStore(t)
	seedTitles(t, s)

	got, err := s.GetTitle(context.Background(), "s3")
	if err != nil {
		t.Fatalf("GetTitle() error = %v", err)
	}
	if got.Name() != "Wildcat" {
		t.Errorf("GetTitle().Name() = %q, want Wildcat", got.Name())
	}

	_, err = s.GetTitle(context.Background(), "missing")
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("GetTitle(missing) error = %v, want ErrNotFound", err)
	}
}

func TestStore_UpsertRejectsMissingID(t *testing.T) {
	t.Parallel()
	s := openTestStore(t)

	_, err := s.UpsertTitles(context.Background(), []models.Title{{"title": "No ID"}})
	if !errors.Is(err, models.ErrInvalidInput) {
		t.Errorf("UpsertTitles() error = %v, want ErrInvalidInput", err)
	}
}

func TestStore_Accounts(t *testing.T) {
	t.Parallel()
	s := openTestStore(t)
	ctx := context.Background()

	acct := &models.Account{Email: "a@x.com", PasswordHash: "hash", Age: 15}
	if err := s.CreateAccount(ctx, acct); err != nil {
		t.Fatalf("CreateAccount() error = %v", err)
	}
	if err := s.CreateAccount(ctx, acct); !errors.Is(err, store.ErrDuplicateKey) {
		t.Errorf("second CreateAccount() error = %v, want ErrDuplicateKey", err)
	}

	got, err := s.GetAccount(ctx, "a@x.com")
	if err != nil {
		t.Fatalf("GetAccount() error = %v", err)
	}
	if got.Age != 15 || got.PasswordHash != "hash" {
		t.Errorf("GetAccount() = %+v", got)
	}
	if got.Watchlist == nil || len(got.Watchlist) != 0 {
		t.Errorf("GetAccount().Watchlist = %v, want empty non-nil", got.Watchlist)
	}

	if _, err := s.GetAccount(ctx, "A@X.COM"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("GetAccount() is case-sensitive, error = %v", err)
	}
}

func TestStore_WatchlistUpdates(t *testing.T) {
	t.Parallel()
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.CreateAccount(ctx, &models.Account{Email: "a@x.com", Age: 30}); err != nil {
		t.Fatalf("CreateAccount() error = %v", err)
	}

	steps := []struct {
		name   string
		add    bool
		email  string
		id     string
		want   store.UpdateResult
		wantWL []string
	}{
		{"add new", true, "a@x.com", "s1", store.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, []string{"s1"}},
		{"add duplicate", true, "a@x.com", "s1", store.UpdateResult{}, []string{"s1"}},
		{"add second", true, "a@x.com", "s2", store.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, []string{"s1", "s2"}},
		{"add unknown account", true, "b@x.com", "s1", store.UpdateResult{}, []string{"s1", "s2"}},
		{"remove absent", false, "a@x.com", "s9", store.UpdateResult{MatchedCount: 1}, []string{"s1", "s2"}},
		{"remove present", false, "a@x.com", "s1", store.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, []string{"s2"}},
		{"remove unknown account", false, "b@x.com", "s2", store.UpdateResult{}, []string{"s2"}},
	}

	for _, step := range steps {
		var (
			got store.UpdateResult
			err error
		)
		if step.add {
			got, err = s.AddToWatchlist(ctx, step.email, step.id)
		} else {
			got, err = s.RemoveFromWatchlist(ctx, step.email, step.id)
		}
		if err != nil {
			t.Fatalf("%s: error = %v", step.name, err)
		}
		if got != step.want {
			t.Errorf("%s: result = %+v, want %+v", step.name, got, step.want)
		}

		acct, err := s.GetAccount(ctx, "a@x.com")
		if err != nil {
			t.Fatalf("%s: GetAccount() error = %v", step.name, err)
		}
		if len(acct.Watchlist) != len(step.wantWL) {
			t.Fatalf("%s: watchlist = %v, want %v", step.name, acct.Watchlist, step.wantWL)
		}
		for i := range acct.Watchlist {
			if acct.Watchlist[i] != step.wantWL[i] {
				t.Errorf("%s: watchlist = %v, want %v", step.name, acct.Watchlist, step.wantWL)
			}
		}
	}
}

func TestStore_ConcurrentAddAppliesOnce(t *testing.T) {
	t.Parallel()
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.CreateAccount(ctx, &models.Account{Email: "a@x.com", Age: 30}); err != nil {
		t.Fatalf("CreateAccount() error = %v", err)
	}

	const workers = 10
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		modified int64
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := s.AddToWatchlist(ctx, "a@x.com", "s1")
			if err != nil {
				t.Errorf("AddToWatchlist() error = %v", err)
				return
			}
			mu.Lock()
			modified += res.ModifiedCount
			mu.Unlock()
		}()
	}
	wg.Wait()

	if modified != 1 {
		t.Errorf("total modified = %d, want 1", modified)
	}
	acct, err := s.GetAccount(ctx, "a@x.com")
	if err != nil {
		t.Fatalf("GetAccount() error = %v", err)
	}
	if len(acct.Watchlist) != 1 {
		t.Errorf("watchlist = %v, want [s1]", acct.Watchlist)
	}
}

func TestStore_ClosedIsUnavailable(t *testing.T) {
	t.Parallel()
	s, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory() error = %v", err)
	}
	if err := s.Ping(context.Background()); err != nil {
		t.Fatalf("Ping() error = %v", err)
	}
	if err := s.Close(context.Background()); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	if err := s.Ping(context.Background()); !errors.Is(err, models.ErrStoreUnavailable) {
		t.Errorf("Ping() after close error = %v, want ErrStoreUnavailable", err)
	}
	if err := s.RunGC(); err != nil {
		t.Errorf("RunGC() in memory error = %v", err)
	}
}

func TestStore_DeadlineIsUnavailable(t *testing.T) {
	t.Parallel()
	s := openTestStore(t)
	seedTitles(t, s)

	expired, cancel := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
	defer cancel()
	canceled, cancelNow := context.WithCancel(context.Background())
	cancelNow()

	calls := map[string]func(ctx context.Context) error{
		"find": func(ctx context.Context) error {
			_, err := s.FindTitles(ctx, filter.All(), store.FindOptions{})
			return err
		},
		"count": func(ctx context.Context) error {
			_, err := s.CountTitles(ctx, filter.All())
			return err
		},
		"get title": func(ctx context.Context) error {
			_, err := s.GetTitle(ctx, "s1")
			return err
		},
		"get account": func(ctx context.Context) error {
			_, err := s.GetAccount(ctx, "a@x.com")
			return err
		},
		"add to watchlist": func(ctx context.Context) error {
			_, err := s.AddToWatchlist(ctx, "a@x.com", "s1")
			return err
		},
		"ping": s.Ping,
	}

	for name, call := range calls {
		t.Run(name, func(t *testing.T) {
			err := call(expired)
			if !errors.Is(err, models.ErrStoreUnavailable) {
				t.Errorf("expired deadline error = %v, want ErrStoreUnavailable", err)
			}
			if !errors.Is(err, context.DeadlineExceeded) {
				t.Errorf("expired deadline error = %v, want DeadlineExceeded", err)
			}

			err = call(canceled)
			if !errors.Is(err, context.Canceled) {
				t.Errorf("canceled error = %v, want Canceled", err)
			}
			if errors.Is(err, models.ErrStoreUnavailable) {
				t.Errorf("canceled error = %v, should not be ErrStoreUnavailable", err)
			}
		})
	}
}

func TestOpen_RequiresPath(t *testing.T) {
	t.Parallel()
	if _, err := Open(Config{}); err == nil {
		t.Error("Open() without path should fail")
	}
}

func TestOpen_OnDisk(t *testing.T) {
	t.Parallel()
	s, err := Open(Config{Path: t.TempDir()})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer s.Close(context.Background())

	seedTitles(t, s)
	if err := s.RunGC(); err != nil {
		t.Errorf("RunGC() error = %v", err)
	}
}
