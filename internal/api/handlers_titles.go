// Marquee - Media Catalog Access Layer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/marquee/internal/auth"
	"github.com/tomtom215/marquee/internal/catalog"
	"github.com/tomtom215/marquee/internal/validation"
)

// ListTitles handles GET /titles.
func (h *Handler) ListTitles(w http.ResponseWriter, r *http.Request) {
	q, err := h.listQuery(r)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	page, err := h.catalog.List(r.Context(), catalog.ListParams{Kind: q.Kind, Age: q.Age, Page: q.Page})
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (h *Handler) listQuery(r *http.Request) (ListTitlesQuery, error) {
	q := ListTitlesQuery{Kind: r.URL.Query().Get("type")}
	var err error
	if q.Age, err = requesterAge(r); err != nil {
		return q, err
	}
	if q.Page, err = parseIntParam(r, "page", 0); err != nil {
		return q, err
	}
	return q, validation.ValidateStruct(&q)
}

// TitleDetails handles GET /titles/details/{id}.
func (h *Handler) TitleDetails(w http.ResponseWriter, r *http.Request) {
	title, err := h.catalog.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, title)
}

// SearchTitles handles GET /title/search.
func (h *Handler) SearchTitles(w http.ResponseWriter, r *http.Request) {
	q := SearchQuery{Q: r.URL.Query().Get("q")}
	var err error
	if q.Age, err = requesterAge(r); err == nil {
		if q.Limit, err = parseIntParam(r, "limit", 0); err == nil {
			err = validation.ValidateStruct(&q)
		}
	}
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	result, err := h.catalog.Search(r.Context(), catalog.SearchParams{Query: q.Q, Age: q.Age, Limit: q.Limit})
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// requesterAge prefers the authenticated identity's age over ?age=.
// Anonymous callers default to 0 and are treated as minors.
func requesterAge(r *http.Request) (int, error) {
	if id, ok := auth.IdentityFromContext(r.Context()); ok {
		return id.Age, nil
	}
	return parseIntParam(r, "age", 0)
}
