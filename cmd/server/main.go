// Marquee - Media Catalog Access Layer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/marquee/internal/accounts"
	"github.com/tomtom215/marquee/internal/api"
	"github.com/tomtom215/marquee/internal/auth"
	"github.com/tomtom215/marquee/internal/catalog"
	"github.com/tomtom215/marquee/internal/config"
	"github.com/tomtom215/marquee/internal/ingest"
	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/supervisor"
	"github.com/tomtom215/marquee/internal/supervisor/services"
	"github.com/tomtom215/marquee/internal/watchlist"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:      cfg.Logging.Level,
		Format:     cfg.Logging.Format,
		Caller:     cfg.Logging.Caller,
		Timestamp:  true,
		Output:     os.Stderr,
		File:       cfg.Logging.File,
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
		MaxAgeDays: cfg.Logging.MaxAgeDays,
		Compress:   cfg.Logging.Compress,
	})
	defer func() {
		if err := logging.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "close log file: %v\n", err)
		}
	}()

	logging.Info().
		Str("driver", cfg.Store.Driver).
		Str("environment", cfg.Server.Environment).
		Bool("breaker", cfg.Breaker.Enabled).
		Msg("Starting Marquee")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, openStore); err != nil {
		logging.Fatal().Err(err).Msg("Marquee failed")
	}
	logging.Info().Msg("Marquee stopped")
}

// storeOpener opens the configured backend.
type storeOpener func(context.Context, *config.Config) (*storeBackend, error)

// run wires the services and blocks until ctx is canceled. The store is
// closed on every return path once it has been opened.
func run(ctx context.Context, cfg *config.Config, open storeOpener) error {
	backend, err := open(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := backend.store.Close(closeCtx); err != nil {
			logging.Error().Err(err).Msg("Error closing store")
		}
	}()

	if cfg.Catalog.SeedFile != "" {
		res, err := ingest.NewLoader(backend.store, ingest.DefaultBatchSize).LoadFile(ctx, cfg.Catalog.SeedFile)
		if err != nil {
			return fmt.Errorf("seed catalog from %s: %w", cfg.Catalog.SeedFile, err)
		}
		logging.Info().Int("titles", res.Written).Msg("Catalog seeded")
	}

	accountService, err := accounts.NewService(backend.store, cfg.Security.BcryptCost)
	if err != nil {
		return fmt.Errorf("initialize account service: %w", err)
	}
	jwtManager, err := auth.NewJWTManager(&cfg.Security)
	if err != nil {
		return fmt.Errorf("initialize JWT manager: %w", err)
	}

	handler, err := api.NewHandler(api.Deps{
		Catalog: catalog.NewService(backend.store, catalog.Config{
			PageSize:           cfg.Catalog.PageSize,
			SearchDefaultLimit: cfg.Catalog.SearchDefaultLimit,
			SearchMaxLimit:     cfg.Catalog.SearchMaxLimit,
		}),
		Accounts:  accountService,
		Watchlist: watchlist.NewService(backend.store, backend.store, watchlist.Config{VerifyTitles: cfg.Watchlist.VerifyTitles}),
		Tokens:    jwtManager,
		Store:     backend.store,
		Audit:     logging.NewAuditLogger(),
	})
	if err != nil {
		return fmt.Errorf("initialize handlers: %w", err)
	}

	if cfg.Security.RateLimitDisabled {
		logging.Warn().Msg("Rate limiting is DISABLED (DISABLE_RATE_LIMIT=true)")
	}
	if cfg.IsProduction() && len(cfg.Security.CORSOrigins) == 1 && cfg.Security.CORSOrigins[0] == "*" {
		logging.Warn().Msg("CORS allows any origin in production; set CORS_ORIGINS")
	}

	router := api.NewRouter(
		handler,
		auth.NewMiddleware(jwtManager),
		api.NewChiMiddleware(api.ChiMiddlewareConfigFromSecurity(&cfg.Security)),
		cfg.Server.RequestTimeout,
	)

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router.SetupChi(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      cfg.Server.RequestTimeout + 5*time.Second,
		IdleTimeout:       120 * time.Second,
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger("supervisor"), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout + 5*time.Second,
	})
	if err != nil {
		return fmt.Errorf("create supervisor tree: %w", err)
	}

	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
	if backend.gc != nil {
		tree.AddStoreService(services.NewPeriodicService("store-gc", cfg.Store.BadgerGCInterval, func(context.Context) error {
			return backend.gc.RunGC()
		}))
	}

	logging.Info().Str("addr", server.Addr).Msg("Supervisor tree starting")
	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logging.Error().Err(err).Msg("Supervisor tree stopped with error")
	}

	if report, err := tree.UnstoppedServiceReport(); err == nil && len(report) > 0 {
		for _, svc := range report {
			logging.Warn().Str("service", svc.Name).Msg("Service did not stop in time")
		}
	}
	return nil
}
