// Marquee - Media Catalog Access Layer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package mongostore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"

	"github.com/tomtom215/marquee/internal/filter"
	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/models"
	"github.com/tomtom215/marquee/internal/store"
)

// Config configures the MongoDB connection.
type Config struct {
	URI               string
	Database          string
	UsersCollection   string
	TitlesCollection  string
	ConnectTimeout    time.Duration
	SkipIndexCreation bool
}

func (c *Config) applyDefaults() {
	if c.Database == "" {
		c.Database = "fletnix"
	}
	if c.UsersCollection == "" {
		c.UsersCollection = "users"
	}
	if c.TitlesCollection == "" {
		c.TitlesCollection = "netflix_titles"
	}
	if c.ConnectTimeout <= 0 {
		c.ConnectTimeout = 5 * time.Second
	}
}

// Store is a MongoDB backed store.Store.
type Store struct {
	client *mongo.Client
	users  *mongo.Collection
	titles *mongo.Collection
}

var _ store.Store = (*Store)(nil)

// Open connects to MongoDB, verifies the server is reachable and ensures the
// unique indexes exist. Connection failures wrap models.ErrStoreUnavailable.
func Open(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.URI == "" {
		return nil, fmt.Errorf("mongo uri is required")
	}
	cfg.applyDefaults()

	opts := options.Client().
		ApplyURI(cfg.URI).
		SetServerSelectionTimeout(cfg.ConnectTimeout).
		SetConnectTimeout(cfg.ConnectTimeout)

	client, err := mongo.Connect(opts)
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w: %w", models.ErrStoreUnavailable, err)
	}

	db := client.Database(cfg.Database)
	s := &Store{
		client: client,
		users:  db.Collection(cfg.UsersCollection),
		titles: db.Collection(cfg.TitlesCollection),
	}

	pingCtx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()
	if err := s.Ping(pingCtx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	if !cfg.SkipIndexCreation {
		if err := s.ensureIndexes(ctx); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, err
		}
	}

	logging.Info().
		Str("database", cfg.Database).
		Str("users", cfg.UsersCollection).
		Str("titles", cfg.TitlesCollection).
		Msg("MongoDB store connected")

	return s, nil
}

func (s *Store) ensureIndexes(ctx context.Context) error {
	_, err := s.users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return classify("create users index", err)
	}

	_, err = s.titles.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: models.FieldShowID, Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return classify("create titles index", err)
	}
	return nil
}

// classify maps driver errors onto the store error vocabulary.
func classify(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return store.ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return fmt.Errorf("%s: %w: %w", op, store.ErrDuplicateKey, err)
	case errors.Is(err, context.Canceled):
		return fmt.Errorf("%s: %w", op, err)
	case mongo.IsTimeout(err),
		mongo.IsNetworkError(err),
		errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, mongo.ErrClientDisconnected):
		return fmt.Errorf("%s: %w: %w", op, models.ErrStoreUnavailable, err)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}

var titleProjection = bson.D{{Key: "_id", Value: 0}}

// FindTitles returns matching titles in natural order.
func (s *Store) FindTitles(ctx context.Context, p filter.Predicate, opts store.FindOptions) ([]models.Title, error) {
	q, err := Translate(p)
	if err != nil {
		return nil, fmt.Errorf("find titles: %w", err)
	}

	findOpts := options.Find().SetProjection(titleProjection)
	if opts.Skip > 0 {
		findOpts.SetSkip(opts.Skip)
	}
	if opts.Limit > 0 {
		findOpts.SetLimit(opts.Limit)
	}

	cur, err := s.titles.Find(ctx, q, findOpts)
	if err != nil {
		return nil, classify("find titles", err)
	}
	defer cur.Close(ctx)

	results := make([]models.Title, 0)
	for cur.Next(ctx) {
		var doc bson.M
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode title: %w", err)
		}
		results = append(results, toTitle(doc))
	}
	if err := cur.Err(); err != nil {
		return nil, classify("find titles", err)
	}
	return results, nil
}

// CountTitles counts matching titles.
func (s *Store) CountTitles(ctx context.Context, p filter.Predicate) (int64, error) {
	q, err := Translate(p)
	if err != nil {
		return 0, fmt.Errorf("count titles: %w", err)
	}
	n, err := s.titles.CountDocuments(ctx, q)
	if err != nil {
		return 0, classify("count titles", err)
	}
	return n, nil
}

// GetTitle returns the title with the given show_id.
func (s *Store) GetTitle(ctx context.Context, showID string) (models.Title, error) {
	var doc bson.M
	err := s.titles.FindOne(ctx,
		bson.D{{Key: models.FieldShowID, Value: showID}},
		options.FindOne().SetProjection(titleProjection),
	).Decode(&doc)
	if err != nil {
		return nil, classify("get title", err)
	}
	return toTitle(doc), nil
}

// UpsertTitles replaces or inserts titles keyed by show_id in one unordered
// bulk write.
func (s *Store) UpsertTitles(ctx context.Context, titles []models.Title) (int, error) {
	if len(titles) == 0 {
		return 0, nil
	}

	writes := make([]mongo.WriteModel, 0, len(titles))
	for _, t := range titles {
		id := t.ID()
		if id == "" {
			return 0, fmt.Errorf("upsert titles: %w: title without %s", models.ErrInvalidInput, models.FieldShowID)
		}
		writes = append(writes, mongo.NewReplaceOneModel().
			SetFilter(bson.D{{Key: models.FieldShowID, Value: id}}).
			SetReplacement(bson.M(t)).
			SetUpsert(true))
	}

	res, err := s.titles.BulkWrite(ctx, writes, options.BulkWrite().SetOrdered(false))
	if err != nil {
		return 0, classify("upsert titles", err)
	}
	return int(res.UpsertedCount + res.MatchedCount), nil
}

// CreateAccount inserts a new account; the unique email index rejects
// duplicates even under concurrent registration.
func (s *Store) CreateAccount(ctx context.Context, account *models.Account) error {
	if account.Watchlist == nil {
		account.Watchlist = []string{}
	}
	_, err := s.users.InsertOne(ctx, account)
	return classify("create account", err)
}

// GetAccount returns the account with the given email.
func (s *Store) GetAccount(ctx context.Context, email string) (*models.Account, error) {
	var acct models.Account
	err := s.users.FindOne(ctx, bson.D{{Key: "email", Value: email}}).Decode(&acct)
	if err != nil {
		return nil, classify("get account", err)
	}
	if acct.Watchlist == nil {
		acct.Watchlist = []string{}
	}
	return &acct, nil
}

// AddToWatchlist pushes titleID when it is not already present.
func (s *Store) AddToWatchlist(ctx context.Context, email, titleID string) (store.UpdateResult, error) {
	res, err := s.users.UpdateOne(ctx,
		bson.D{
			{Key: "email", Value: email},
			{Key: "watchlist", Value: bson.D{{Key: "$ne", Value: titleID}}},
		},
		bson.D{{Key: "$push", Value: bson.D{{Key: "watchlist", Value: titleID}}}},
	)
	if err != nil {
		return store.UpdateResult{}, classify("watchlist add", err)
	}
	return store.UpdateResult{MatchedCount: res.MatchedCount, ModifiedCount: res.ModifiedCount}, nil
}

// RemoveFromWatchlist pulls every occurrence of titleID.
func (s *Store) RemoveFromWatchlist(ctx context.Context, email, titleID string) (store.UpdateResult, error) {
	res, err := s.users.UpdateOne(ctx,
		bson.D{{Key: "email", Value: email}},
		bson.D{{Key: "$pull", Value: bson.D{{Key: "watchlist", Value: titleID}}}},
	)
	if err != nil {
		return store.UpdateResult{}, classify("watchlist remove", err)
	}
	return store.UpdateResult{MatchedCount: res.MatchedCount, ModifiedCount: res.ModifiedCount}, nil
}

// Ping checks the primary is reachable.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("ping mongo: %w: %w", models.ErrStoreUnavailable, err)
	}
	return nil
}

// Close disconnects the client.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
