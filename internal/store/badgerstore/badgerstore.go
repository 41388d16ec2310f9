// Marquee - Media Catalog Access Layer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package badgerstore

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/tomtom215/marquee/internal/filter"
	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/models"
	"github.com/tomtom215/marquee/internal/store"
)

// Key prefixes for BadgerDB storage
const (
	titleKeyPrefix   = "title:"
	accountKeyPrefix = "account:"
)

// maxConflictRetries bounds how often a read-modify-write transaction is
// re-run after losing a conflict.
const maxConflictRetries = 16

// Config configures the embedded store.
type Config struct {
	// Path is the database directory. Ignored when InMemory is set.
	Path string

	// InMemory keeps all data in memory. Used by tests.
	InMemory bool

	// SyncWrites fsyncs every commit.
	SyncWrites bool

	// GCRatio is the discard ratio passed to RunValueLogGC.
	GCRatio float64
}

// Store is a BadgerDB backed store.Store.
type Store struct {
	db  *badger.DB
	cfg Config
}

var _ store.Store = (*Store)(nil)

// Open opens (or creates) the database described by cfg.
func Open(cfg Config) (*Store, error) {
	if !cfg.InMemory && cfg.Path == "" {
		return nil, fmt.Errorf("badger path is required unless in-memory")
	}
	if cfg.GCRatio <= 0 || cfg.GCRatio >= 1 {
		cfg.GCRatio = 0.5
	}

	opts := badger.DefaultOptions(cfg.Path)
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	}
	opts.SyncWrites = cfg.SyncWrites

	// Reduce logging verbosity
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open BadgerDB: %w: %w", models.ErrStoreUnavailable, err)
	}

	logging.Info().
		Str("path", cfg.Path).
		Bool("in_memory", cfg.InMemory).
		Msg("Badger store opened")

	return &Store{db: db, cfg: cfg}, nil
}

// OpenInMemory opens an empty in-memory store.
func OpenInMemory() (*Store, error) {
	return Open(Config{InMemory: true})
}

func titleKey(id string) []byte     { return []byte(titleKeyPrefix + id) }
func accountKey(email string) []byte { return []byte(accountKeyPrefix + email) }

// wrap marks engine-level failures and timeouts as unavailability.
// Cancellation is passed through unmarked.
func wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, badger.ErrDBClosed) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s: %w: %w", op, models.ErrStoreUnavailable, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// FindTitles scans the catalog and returns matching titles in key order.
func (s *Store) FindTitles(ctx context.Context, p filter.Predicate, opts store.FindOptions) ([]models.Title, error) {
	m, err := filter.Compile(p)
	if err != nil {
		return nil, fmt.Errorf("find titles: %w", err)
	}

	results := make([]models.Title, 0)
	var skipped int64

	err = s.db.View(func(txn *badger.Txn) error {
		return scanTitles(ctx, txn, func(t models.Title) bool {
			if !m.Match(t) {
				return true
			}
			if skipped < opts.Skip {
				skipped++
				return true
			}
			results = append(results, t)
			return opts.Limit <= 0 || int64(len(results)) < opts.Limit
		})
	})
	if err != nil {
		return nil, wrap("find titles", err)
	}
	return results, nil
}

// CountTitles counts matching titles.
func (s *Store) CountTitles(ctx context.Context, p filter.Predicate) (int64, error) {
	m, err := filter.Compile(p)
	if err != nil {
		return 0, fmt.Errorf("count titles: %w", err)
	}

	var n int64
	err = s.db.View(func(txn *badger.Txn) error {
		return scanTitles(ctx, txn, func(t models.Title) bool {
			if m.Match(t) {
				n++
			}
			return true
		})
	})
	if err != nil {
		return 0, wrap("count titles", err)
	}
	return n, nil
}

// scanTitles decodes every title document and hands it to fn until fn
// returns false or the context is done.
func scanTitles(ctx context.Context, txn *badger.Txn, fn func(models.Title) bool) error {
	opts := badger.DefaultIteratorOptions
	opts.Prefix = []byte(titleKeyPrefix)
	it := txn.NewIterator(opts)
	defer it.Close()

	for it.Rewind(); it.Valid(); it.Next() {
		if err := ctx.Err(); err != nil {
			return err
		}
		var t models.Title
		if err := it.Item().Value(func(val []byte) error {
			return json.Unmarshal(val, &t)
		}); err != nil {
			return fmt.Errorf("decode %s: %w", it.Item().Key(), err)
		}
		if !fn(t) {
			return nil
		}
	}
	return nil
}

// GetTitle returns a single title by show_id.
func (s *Store) GetTitle(ctx context.Context, showID string) (models.Title, error) {
	if err := ctx.Err(); err != nil {
		return nil, wrap("get title", err)
	}

	var t models.Title
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(titleKey(showID))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return store.ErrNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &t)
		})
	})
	if err != nil {
		return nil, wrap("get title", err)
	}
	return t, nil
}

// UpsertTitles writes titles keyed by show_id, replacing existing documents.
// Titles without a show_id are rejected.
func (s *Store) UpsertTitles(ctx context.Context, titles []models.Title) (int, error) {
	wb := s.db.NewWriteBatch()
	defer wb.Cancel()

	for _, t := range titles {
		if err := ctx.Err(); err != nil {
			return 0, wrap("upsert titles", err)
		}
		id := t.ID()
		if id == "" {
			return 0, fmt.Errorf("upsert titles: %w: title without %s", models.ErrInvalidInput, models.FieldShowID)
		}
		data, err := json.Marshal(t)
		if err != nil {
			return 0, fmt.Errorf("marshal title %s: %w", id, err)
		}
		if err := wb.Set(titleKey(id), data); err != nil {
			return 0, wrap("upsert titles", err)
		}
	}
	if err := wb.Flush(); err != nil {
		return 0, wrap("upsert titles", err)
	}
	return len(titles), nil
}

// CreateAccount inserts an account if the email is not taken.
func (s *Store) CreateAccount(ctx context.Context, account *models.Account) error {
	if err := ctx.Err(); err != nil {
		return wrap("create account", err)
	}
	if account.Watchlist == nil {
		account.Watchlist = []string{}
	}
	data, err := json.Marshal(account)
	if err != nil {
		return fmt.Errorf("marshal account: %w", err)
	}

	err = s.update(func(txn *badger.Txn) error {
		key := accountKey(account.Email)
		_, err := txn.Get(key)
		if err == nil {
			return store.ErrDuplicateKey
		}
		if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}
		return txn.Set(key, data)
	})
	return wrap("create account", err)
}

// GetAccount returns the account with the given email.
func (s *Store) GetAccount(ctx context.Context, email string) (*models.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, wrap("get account", err)
	}

	var acct *models.Account
	err := s.db.View(func(txn *badger.Txn) error {
		var err error
		acct, err = readAccount(txn, email)
		return err
	})
	if err != nil {
		return nil, wrap("get account", err)
	}
	return acct, nil
}

// AddToWatchlist appends titleID when the account exists and does not
// already hold it.
func (s *Store) AddToWatchlist(ctx context.Context, email, titleID string) (store.UpdateResult, error) {
	return s.mutateWatchlist(ctx, "watchlist add", email, func(acct *models.Account) (matched, modified bool) {
		if acct.HasTitle(titleID) {
			return false, false
		}
		acct.Watchlist = append(acct.Watchlist, titleID)
		return true, true
	})
}

// RemoveFromWatchlist removes every occurrence of titleID.
func (s *Store) RemoveFromWatchlist(ctx context.Context, email, titleID string) (store.UpdateResult, error) {
	return s.mutateWatchlist(ctx, "watchlist remove", email, func(acct *models.Account) (matched, modified bool) {
		before := len(acct.Watchlist)
		acct.Watchlist = slices.DeleteFunc(acct.Watchlist, func(id string) bool { return id == titleID })
		return true, len(acct.Watchlist) != before
	})
}

// mutateWatchlist reads the account, applies fn and writes it back when fn
// reports a modification, all in one transaction.
func (s *Store) mutateWatchlist(
	ctx context.Context,
	op, email string,
	fn func(*models.Account) (matched, modified bool),
) (store.UpdateResult, error) {
	if err := ctx.Err(); err != nil {
		return store.UpdateResult{}, wrap(op, err)
	}

	var res store.UpdateResult
	err := s.update(func(txn *badger.Txn) error {
		res = store.UpdateResult{}
		acct, err := readAccount(txn, email)
		if errors.Is(err, store.ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		matched, modified := fn(acct)
		if matched {
			res.MatchedCount = 1
		}
		if !modified {
			return nil
		}
		data, err := json.Marshal(acct)
		if err != nil {
			return fmt.Errorf("marshal account: %w", err)
		}
		if err := txn.Set(accountKey(email), data); err != nil {
			return err
		}
		res.ModifiedCount = 1
		return nil
	})
	if err != nil {
		return store.UpdateResult{}, wrap(op, err)
	}
	return res, nil
}

func readAccount(txn *badger.Txn, email string) (*models.Account, error) {
	item, err := txn.Get(accountKey(email))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var acct models.Account
	if err := item.Value(func(val []byte) error {
		return json.Unmarshal(val, &acct)
	}); err != nil {
		return nil, fmt.Errorf("decode account: %w", err)
	}
	if acct.Watchlist == nil {
		acct.Watchlist = []string{}
	}
	return &acct, nil
}

// update runs fn in a read-write transaction, re-running it when the commit
// loses a conflict with a concurrent writer.
func (s *Store) update(fn func(txn *badger.Txn) error) error {
	var err error
	for attempt := 0; attempt < maxConflictRetries; attempt++ {
		err = s.db.Update(fn)
		if !errors.Is(err, badger.ErrConflict) {
			return err
		}
	}
	return err
}

// Ping reports whether the database is open.
func (s *Store) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return wrap("ping", err)
	}
	if s.db.IsClosed() {
		return fmt.Errorf("ping: %w: %w", models.ErrStoreUnavailable, badger.ErrDBClosed)
	}
	return nil
}

// RunGC reclaims value log space until no more rewrites are possible.
// It is a no-op for in-memory databases.
func (s *Store) RunGC() error {
	if s.cfg.InMemory {
		return nil
	}
	for {
		err := s.db.RunValueLogGC(s.cfg.GCRatio)
		if errors.Is(err, badger.ErrNoRewrite) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("run GC: %w", err)
		}
	}
}

// Close closes the database.
func (s *Store) Close(_ context.Context) error {
	if s.db.IsClosed() {
		return nil
	}
	return s.db.Close()
}
