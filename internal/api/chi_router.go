// Marquee - Media Catalog Access Layer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/marquee/internal/auth"
	"github.com/tomtom215/marquee/internal/middleware"
)

// Router wires handlers and middleware into a chi router.
type Router struct {
	handler        *Handler
	identity       *auth.Middleware
	chiMiddleware  *ChiMiddleware
	requestTimeout time.Duration
}

// NewRouter creates a router. A zero requestTimeout disables the
// per-request deadline.
func NewRouter(handler *Handler, identity *auth.Middleware, mw *ChiMiddleware, requestTimeout time.Duration) *Router {
	if mw == nil {
		mw = NewChiMiddleware(nil)
	}
	return &Router{
		handler:        handler,
		identity:       identity,
		chiMiddleware:  mw,
		requestTimeout: requestTimeout,
	}
}

// SetupChi configures all HTTP routes.
func (router *Router) SetupChi() http.Handler {
	r := chi.NewRouter()

	// Global middleware, outermost first.
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.AccessLog)
	r.Use(chimiddleware.Recoverer)
	r.Use(router.chiMiddleware.CORS()) // must be global to answer OPTIONS preflight
	r.Use(middleware.PrometheusMetrics)
	if router.requestTimeout > 0 {
		r.Use(chimiddleware.Timeout(router.requestTimeout))
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, r, http.StatusNotFound, ErrCodeNotFound, "Route not found", nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, r, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed", nil)
	})

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", router.handler.HealthLive)
		r.Get("/ready", router.handler.HealthReady)
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimitAuth())
		r.Use(APISecurityHeaders())
		r.Post("/register", router.handler.Register)
		r.Post("/login", router.handler.Login)
	})

	r.Group(func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())
		r.Use(APISecurityHeaders())

		r.With(router.identity.OptionalIdentity).Get("/titles", router.handler.ListTitles)
		r.With(router.identity.OptionalIdentity).Get("/title/search", router.handler.SearchTitles)
		r.Get("/titles/details/{id}", router.handler.TitleDetails)

		r.Route("/titles/watchlist", func(r chi.Router) {
			r.Use(router.identity.RequireIdentity)
			r.Get("/", router.handler.GetWatchlist)
			r.Post("/", router.handler.AddToWatchlist)
			r.Delete("/", router.handler.RemoveFromWatchlist)
		})
	})

	return r
}
