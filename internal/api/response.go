// Marquee - Media Catalog Access Layer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

import (
	"errors"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/models"
	"github.com/tomtom215/marquee/internal/validation"
)

// Error codes for API responses
const (
	ErrCodeBadRequest         = "BAD_REQUEST"
	ErrCodeValidationFailed   = "VALIDATION_FAILED"
	ErrCodeUnauthorized       = "UNAUTHORIZED"
	ErrCodeInvalidCredentials = "INVALID_CREDENTIALS"
	ErrCodeNotFound           = "NOT_FOUND"
	ErrCodeDuplicateAccount   = "DUPLICATE_ACCOUNT"
	ErrCodeEmptyQuery         = "EMPTY_QUERY"
	ErrCodeAlreadyInWatchlist = "ALREADY_IN_WATCHLIST"
	ErrCodeUpdateFailed       = "UPDATE_FAILED"
	ErrCodeTooManyRequests    = "TOO_MANY_REQUESTS"
	ErrCodeInternalError      = "INTERNAL_ERROR"
	ErrCodeServiceUnavailable = "SERVICE_UNAVAILABLE"
)

// errorMapping pairs a service sentinel with its HTTP rendering.
type errorMapping struct {
	target  error
	status  int
	code    string
	message string
}

// serviceErrors is checked in order; the first errors.Is match wins.
// UnknownAccount precedes NotFound since both may appear in one chain.
var serviceErrors = []errorMapping{
	{models.ErrStoreUnavailable, http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "Service temporarily unavailable"},
	{models.ErrEmptyQuery, http.StatusBadRequest, ErrCodeEmptyQuery, "Search query must not be empty"},
	{models.ErrDuplicateAccount, http.StatusBadRequest, ErrCodeDuplicateAccount, "Email already exists"},
	{models.ErrInvalidCredentials, http.StatusUnauthorized, ErrCodeInvalidCredentials, "Invalid email or password"},
	{models.ErrUnknownAccount, http.StatusNotFound, ErrCodeNotFound, "User not found"},
	{models.ErrAlreadyInWatchlist, http.StatusBadRequest, ErrCodeAlreadyInWatchlist, "Show already in watchlist"},
	{models.ErrUpdateFailed, http.StatusInternalServerError, ErrCodeUpdateFailed, "Failed to update watchlist"},
	{models.ErrNotFound, http.StatusNotFound, ErrCodeNotFound, "No shows found"},
	{models.ErrInvalidInput, http.StatusBadRequest, ErrCodeBadRequest, "Invalid request"},
}

// writeJSON writes JSON response with proper headers.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		logging.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

// respondError writes the error envelope.
func respondError(w http.ResponseWriter, r *http.Request, status int, code, message string, details interface{}) {
	writeJSON(w, status, models.ErrorResponse{
		Success: false,
		Error: &models.APIError{
			Code:      code,
			Message:   message,
			Details:   details,
			RequestID: logging.RequestIDFromContext(r.Context()),
		},
	})
}

// respondServiceError maps err to a status and writes the envelope.
// Unmapped errors are logged and reported as 500 without detail.
func respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *validation.RequestValidationError
	if errors.As(err, &verr) {
		respondError(w, r, http.StatusBadRequest, ErrCodeValidationFailed, verr.Error(), verr.Fields)
		return
	}

	for _, m := range serviceErrors {
		if !errors.Is(err, m.target) {
			continue
		}
		if m.status >= http.StatusInternalServerError {
			logging.Ctx(r.Context()).Error().Err(err).Str("code", m.code).Msg("Request failed")
		}
		respondError(w, r, m.status, m.code, m.message, nil)
		return
	}

	logging.Ctx(r.Context()).Error().Err(err).Msg("Unhandled service error")
	respondError(w, r, http.StatusInternalServerError, ErrCodeInternalError, "Internal server error", nil)
}
