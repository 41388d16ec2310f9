// Marquee - Media Catalog Access Layer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

import (
	"net/http"

	"github.com/tomtom215/marquee/internal/auth"
	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/models"
	"github.com/tomtom215/marquee/internal/validation"
)

// GetWatchlist handles GET /titles/watchlist.
func (h *Handler) GetWatchlist(w http.ResponseWriter, r *http.Request) {
	id, ok := h.identity(w, r)
	if !ok {
		return
	}

	resp, err := h.watchlist.Get(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// AddToWatchlist handles POST /titles/watchlist?show_id=.
func (h *Handler) AddToWatchlist(w http.ResponseWriter, r *http.Request) {
	id, showID, ok := h.watchlistTarget(w, r)
	if !ok {
		return
	}

	if err := h.watchlist.Add(r.Context(), id, showID); err != nil {
		respondServiceError(w, r, err)
		return
	}
	logging.Ctx(r.Context()).Debug().Str("show_id", showID).Msg("Watchlist title added")
	writeJSON(w, http.StatusOK, models.MessageResponse{Message: "Show added to watchlist"})
}

// RemoveFromWatchlist handles DELETE /titles/watchlist?show_id=.
func (h *Handler) RemoveFromWatchlist(w http.ResponseWriter, r *http.Request) {
	id, showID, ok := h.watchlistTarget(w, r)
	if !ok {
		return
	}

	if err := h.watchlist.Remove(r.Context(), id, showID); err != nil {
		respondServiceError(w, r, err)
		return
	}
	logging.Ctx(r.Context()).Debug().Str("show_id", showID).Msg("Watchlist title removed")
	writeJSON(w, http.StatusOK, models.MessageResponse{Message: "Show removed from watchlist"})
}

// identity returns the authenticated identity placed by RequireIdentity.
func (h *Handler) identity(w http.ResponseWriter, r *http.Request) (models.Identity, bool) {
	id, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		respondError(w, r, http.StatusUnauthorized, ErrCodeUnauthorized, "Authentication required", nil)
	}
	return id, ok
}

func (h *Handler) watchlistTarget(w http.ResponseWriter, r *http.Request) (models.Identity, string, bool) {
	id, ok := h.identity(w, r)
	if !ok {
		return id, "", false
	}
	q := WatchlistQuery{ShowID: r.URL.Query().Get("show_id")}
	if err := validation.ValidateStruct(&q); err != nil {
		respondServiceError(w, r, err)
		return id, "", false
	}
	return id, q.ShowID, true
}
