// Marquee - Media Catalog Access Layer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/tomtom215/marquee/internal/filter"
	"github.com/tomtom215/marquee/internal/metrics"
	"github.com/tomtom215/marquee/internal/models"
)

// GuardConfig configures the circuit breaker placed in front of a Store.
type GuardConfig struct {
	// Name labels the breaker in metrics and logs.
	Name string

	// FailureThreshold is the number of consecutive unavailability errors
	// that opens the circuit.
	FailureThreshold uint32

	// OpenTimeout is how long the circuit stays open before probing.
	OpenTimeout time.Duration

	// MaxRequests is the number of probe requests allowed while half-open.
	MaxRequests uint32

	// OnStateChange, if set, is called after every transition.
	OnStateChange func(name string, from, to gobreaker.State)
}

// DefaultGuardConfig returns production defaults.
func DefaultGuardConfig() GuardConfig {
	return GuardConfig{
		Name:             "store",
		FailureThreshold: 5,
		OpenTimeout:      30 * time.Second,
		MaxRequests:      1,
	}
}

// Guard decorates a Store with a circuit breaker and per-operation metrics.
//
// Only errors wrapping models.ErrStoreUnavailable count as failures. Domain
// outcomes such as ErrNotFound or ErrDuplicateKey pass through without
// affecting the breaker. While the circuit is open every call fails fast
// with an error wrapping models.ErrStoreUnavailable.
type Guard struct {
	next Store
	cb   *gobreaker.CircuitBreaker[any]
}

var _ Store = (*Guard)(nil)

// NewGuard wraps next with a circuit breaker.
func NewGuard(next Store, cfg GuardConfig) *Guard {
	if cfg.Name == "" {
		cfg.Name = "store"
	}
	if cfg.FailureThreshold == 0 {
		cfg.FailureThreshold = 5
	}
	if cfg.MaxRequests == 0 {
		cfg.MaxRequests = 1
	}

	settings := gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.MaxRequests,
		Timeout:     cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.FailureThreshold
		},
		IsSuccessful: func(err error) bool {
			return err == nil || !errors.Is(err, models.ErrStoreUnavailable)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			metrics.SetCircuitBreakerState(name, from.String(), to.String(), stateValue(to))
			if cfg.OnStateChange != nil {
				cfg.OnStateChange(name, from, to)
			}
		},
	}
	metrics.CircuitBreakerState.WithLabelValues(cfg.Name).Set(0)

	return &Guard{
		next: next,
		cb:   gobreaker.NewCircuitBreaker[any](settings),
	}
}

// State returns the current breaker state.
func (g *Guard) State() gobreaker.State {
	return g.cb.State()
}

func stateValue(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}

// guarded runs fn through the breaker and records the outcome under op.
func guarded[T any](g *Guard, op string, fn func() (T, error)) (T, error) {
	start := time.Now()
	res, err := g.cb.Execute(func() (any, error) {
		return fn()
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		err = fmt.Errorf("%s: %w: %w", op, models.ErrStoreUnavailable, err)
	}
	metrics.RecordStoreOperation(op, time.Since(start), err)

	var zero T
	if res == nil {
		return zero, err
	}
	v, ok := res.(T)
	if !ok {
		return zero, err
	}
	return v, err
}

func (g *Guard) FindTitles(ctx context.Context, p filter.Predicate, opts FindOptions) ([]models.Title, error) {
	return guarded(g, "find_titles", func() ([]models.Title, error) {
		return g.next.FindTitles(ctx, p, opts)
	})
}

func (g *Guard) CountTitles(ctx context.Context, p filter.Predicate) (int64, error) {
	return guarded(g, "count_titles", func() (int64, error) {
		return g.next.CountTitles(ctx, p)
	})
}

func (g *Guard) GetTitle(ctx context.Context, showID string) (models.Title, error) {
	return guarded(g, "get_title", func() (models.Title, error) {
		return g.next.GetTitle(ctx, showID)
	})
}

func (g *Guard) UpsertTitles(ctx context.Context, titles []models.Title) (int, error) {
	return guarded(g, "upsert_titles", func() (int, error) {
		return g.next.UpsertTitles(ctx, titles)
	})
}

func (g *Guard) CreateAccount(ctx context.Context, account *models.Account) error {
	_, err := guarded(g, "create_account", func() (struct{}, error) {
		return struct{}{}, g.next.CreateAccount(ctx, account)
	})
	return err
}

func (g *Guard) GetAccount(ctx context.Context, email string) (*models.Account, error) {
	return guarded(g, "get_account", func() (*models.Account, error) {
		return g.next.GetAccount(ctx, email)
	})
}

func (g *Guard) AddToWatchlist(ctx context.Context, email, titleID string) (UpdateResult, error) {
	return guarded(g, "watchlist_add", func() (UpdateResult, error) {
		return g.next.AddToWatchlist(ctx, email, titleID)
	})
}

func (g *Guard) RemoveFromWatchlist(ctx context.Context, email, titleID string) (UpdateResult, error) {
	return guarded(g, "watchlist_remove", func() (UpdateResult, error) {
		return g.next.RemoveFromWatchlist(ctx, email, titleID)
	})
}

// Ping bypasses the breaker so readiness reflects the backend directly.
func (g *Guard) Ping(ctx context.Context) error {
	start := time.Now()
	err := g.next.Ping(ctx)
	metrics.RecordStoreOperation("ping", time.Since(start), err)
	return err
}

func (g *Guard) Close(ctx context.Context) error {
	return g.next.Close(ctx)
}
