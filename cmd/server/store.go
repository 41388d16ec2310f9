// Marquee - Media Catalog Access Layer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package main

import (
	"context"
	"fmt"

	"github.com/sony/gobreaker/v2"

	"github.com/tomtom215/marquee/internal/config"
	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/store"
	"github.com/tomtom215/marquee/internal/store/badgerstore"
	"github.com/tomtom215/marquee/internal/store/mongostore"
)

// gcRunner is implemented by stores that need periodic compaction.
type gcRunner interface {
	RunGC() error
}

type storeBackend struct {
	store store.Store
	gc    gcRunner // nil unless the driver needs GC
}

// openStore opens the configured driver and wraps it in the circuit breaker
// when enabled.
func openStore(ctx context.Context, cfg *config.Config) (*storeBackend, error) {
	var (
		s  store.Store
		gc gcRunner
	)

	switch cfg.Store.Driver {
	case config.DriverMongo:
		ms, err := mongostore.Open(ctx, mongostore.Config{
			URI:              cfg.Store.MongoURI,
			Database:         cfg.Store.Database,
			UsersCollection:  cfg.Store.UsersCollection,
			TitlesCollection: cfg.Store.TitlesCollection,
			ConnectTimeout:   cfg.Store.ConnectTimeout,
		})
		if err != nil {
			return nil, err
		}
		s = ms
		logging.Info().Str("database", cfg.Store.Database).Msg("Connected to MongoDB")

	case config.DriverBadger:
		bs, err := badgerstore.Open(badgerstore.Config{
			Path:       cfg.Store.BadgerPath,
			InMemory:   cfg.Store.BadgerInMemory,
			SyncWrites: cfg.Store.BadgerSyncWrites,
			GCRatio:    cfg.Store.BadgerGCRatio,
		})
		if err != nil {
			return nil, err
		}
		s, gc = bs, bs
		logging.Info().
			Str("path", cfg.Store.BadgerPath).
			Bool("in_memory", cfg.Store.BadgerInMemory).
			Msg("Opened BadgerDB store")

	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}

	if cfg.Breaker.Enabled {
		s = store.NewGuard(s, store.GuardConfig{
			Name:             cfg.Store.Driver,
			FailureThreshold: cfg.Breaker.FailureThreshold,
			OpenTimeout:      cfg.Breaker.OpenTimeout,
			MaxRequests:      cfg.Breaker.MaxRequests,
			OnStateChange: func(name string, from, to gobreaker.State) {
				logging.Warn().
					Str("breaker", name).
					Str("from", from.String()).
					Str("to", to.String()).
					Msg("Store circuit breaker state changed")
			},
		})
	}

	return &storeBackend{store: s, gc: gc}, nil
}
