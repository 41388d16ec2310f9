// Marquee - Media Catalog Access Layer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/models"
)

// HealthLive reports that the process is serving.
func (h *Handler) HealthLive(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, models.HealthResponse{Status: "ok", Timestamp: time.Now().UTC()})
}

// HealthReady pings the store; an unreachable store is 503.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.readyTimeout)
	defer cancel()

	resp := models.HealthResponse{Status: "ok", Store: "up", Timestamp: time.Now().UTC()}
	status := http.StatusOK
	if err := h.store.Ping(ctx); err != nil {
		logging.Ctx(r.Context()).Warn().Err(err).Msg("Readiness check failed")
		resp.Status, resp.Store = "unavailable", "down"
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, resp)
}
