// Marquee - Media Catalog Access Layer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

import (
	"context"
	"errors"
	"time"

	"github.com/tomtom215/marquee/internal/accounts"
	"github.com/tomtom215/marquee/internal/auth"
	"github.com/tomtom215/marquee/internal/catalog"
	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/watchlist"
)

// Pinger reports store reachability for the readiness probe.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Deps are the collaborators of the HTTP handlers.
type Deps struct {
	Catalog   *catalog.Service
	Accounts  *accounts.Service
	Watchlist *watchlist.Service
	Tokens    *auth.JWTManager
	Store     Pinger
	Audit     *logging.AuditLogger

	// ReadyTimeout bounds the readiness ping. Default: 2s.
	ReadyTimeout time.Duration
}

// Handler holds the HTTP handlers.
type Handler struct {
	catalog      *catalog.Service
	accounts     *accounts.Service
	watchlist    *watchlist.Service
	tokens       *auth.JWTManager
	store        Pinger
	audit        *logging.AuditLogger
	readyTimeout time.Duration
}

// NewHandler validates deps and creates the handler set.
func NewHandler(deps Deps) (*Handler, error) {
	switch {
	case deps.Catalog == nil:
		return nil, errors.New("api: catalog service is required")
	case deps.Accounts == nil:
		return nil, errors.New("api: accounts service is required")
	case deps.Watchlist == nil:
		return nil, errors.New("api: watchlist service is required")
	case deps.Tokens == nil:
		return nil, errors.New("api: token manager is required")
	case deps.Store == nil:
		return nil, errors.New("api: store is required")
	}

	audit := deps.Audit
	if audit == nil {
		audit = logging.NewAuditLogger()
	}
	readyTimeout := deps.ReadyTimeout
	if readyTimeout <= 0 {
		readyTimeout = 2 * time.Second
	}

	return &Handler{
		catalog:      deps.Catalog,
		accounts:     deps.Accounts,
		watchlist:    deps.Watchlist,
		tokens:       deps.Tokens,
		store:        deps.Store,
		audit:        audit,
		readyTimeout: readyTimeout,
	}, nil
}
