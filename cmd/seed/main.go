// Marquee - Media Catalog Access Layer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Command seed loads a netflix_titles CSV export into the configured store.
//
// It reads the same configuration as the server (config.yaml and
// environment), so JWT_SECRET must be set even though seeding does not
// issue tokens.
//
//	seed -file netflix_titles.csv [-batch 500]
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/marquee/internal/config"
	"github.com/tomtom215/marquee/internal/ingest"
	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/store"
	"github.com/tomtom215/marquee/internal/store/badgerstore"
	"github.com/tomtom215/marquee/internal/store/mongostore"
)

func main() {
	file := flag.String("file", "", "path to the catalog CSV export (default: catalog.seed_file)")
	batch := flag.Int("batch", ingest.DefaultBatchSize, "titles per upsert")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}
	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
		Output:    os.Stderr,
	})

	path := *file
	if path == "" {
		path = cfg.Catalog.SeedFile
	}
	if path == "" {
		logging.Fatal().Msg("No catalog file given; use -file or CATALOG_SEED_FILE")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s, err := open(ctx, cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to open store")
	}

	res, loadErr := ingest.NewLoader(s, *batch).LoadFile(ctx, path)

	closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.Close(closeCtx); err != nil {
		logging.Error().Err(err).Msg("Error closing store")
	}

	if loadErr != nil {
		logging.Fatal().Err(loadErr).Int("written", res.Written).Msg("Catalog seed failed")
	}
	logging.Info().
		Str("file", path).
		Int("rows", res.Rows).
		Int("written", res.Written).
		Int("skipped", res.Skipped).
		Msg("Catalog seed complete")
}

func open(ctx context.Context, cfg *config.Config) (store.Store, error) {
	if cfg.Store.Driver == config.DriverBadger {
		return badgerstore.Open(badgerstore.Config{
			Path:       cfg.Store.BadgerPath,
			InMemory:   cfg.Store.BadgerInMemory,
			SyncWrites: cfg.Store.BadgerSyncWrites,
			GCRatio:    cfg.Store.BadgerGCRatio,
		})
	}
	return mongostore.Open(ctx, mongostore.Config{
		URI:              cfg.Store.MongoURI,
		Database:         cfg.Store.Database,
		UsersCollection:  cfg.Store.UsersCollection,
		TitlesCollection: cfg.Store.TitlesCollection,
		ConnectTimeout:   cfg.Store.ConnectTimeout,
	})
}
