// Marquee - Media Catalog Access Layer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package models

import "time"

// APIError is the error body returned by every endpoint.
//
//	{
//	  "success": false,
//	  "error": {"code": "NOT_FOUND", "message": "No shows found", "request_id": "..."}
//	}
type APIError struct {
	Code      string      `json:"code"`
	Message   string      `json:"message"`
	Details   interface{} `json:"details,omitempty"`
	RequestID string      `json:"request_id,omitempty"`
}

// ErrorResponse wraps APIError.
type ErrorResponse struct {
	Success bool      `json:"success"`
	Error   *APIError `json:"error"`
}

// MessageResponse is a plain acknowledgement.
type MessageResponse struct {
	Message string `json:"message"`
}

// RegisterRequest is the body of POST /register. Age is a pointer so that a
// missing value can be told apart from zero.
type RegisterRequest struct {
	Email    string `json:"email" validate:"notblank,max=320"`
	Password string `json:"password" validate:"required"`
	Age      *int   `json:"age" validate:"required,gte=0"`
}

// LoginRequest is the body of POST /login.
type LoginRequest struct {
	Email    string `json:"email" validate:"notblank"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse is returned by a successful login. Token is a signed session
// token that must be sent as "Authorization: Bearer <token>" on watchlist
// requests.
type LoginResponse struct {
	Message   string    `json:"message"`
	Email     string    `json:"email"`
	Age       int       `json:"age"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// TitlePage is one page of a catalog listing.
type TitlePage struct {
	Total int64   `json:"total"`
	Page  int     `json:"page"`
	Limit int     `json:"limit"`
	Data  []Title `json:"data"`
}

// SearchResult is the response of GET /title/search.
type SearchResult struct {
	Count   int     `json:"count"`
	Results []Title `json:"results"`
}

// WatchlistResponse is the response of GET /titles/watchlist. An empty
// watchlist carries Message and no Count.
type WatchlistResponse struct {
	Message string  `json:"message,omitempty"`
	Count   *int    `json:"count,omitempty"`
	Shows   []Title `json:"shows"`
}

// HealthResponse is returned by the health endpoints.
type HealthResponse struct {
	Status    string    `json:"status"`
	Store     string    `json:"store,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
