// Marquee - Media Catalog Access Layer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

import (
	"errors"
	"net/http"

	"github.com/tomtom215/marquee/internal/models"
)

// Register handles POST /register.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	err := decodeJSON(w, r, &req)
	if err == nil {
		err = h.accounts.Register(r.Context(), req.Email, req.Password, req.Age)
	}
	h.audit.LogRegister(r.Context(), req.Email, clientIP(r), err)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, models.MessageResponse{Message: "User registered successfully"})
}

// Login handles POST /login. A successful login returns a bearer token.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondServiceError(w, r, err)
		return
	}

	id, err := h.accounts.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		reason := "error"
		if errors.Is(err, models.ErrInvalidCredentials) {
			reason = "invalid_credentials"
		}
		h.audit.LogLoginFailure(r.Context(), req.Email, clientIP(r), reason)
		respondServiceError(w, r, err)
		return
	}

	token, expires, err := h.tokens.GenerateToken(*id)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	h.audit.LogLoginSuccess(r.Context(), id.Email, clientIP(r))

	writeJSON(w, http.StatusOK, models.LoginResponse{
		Message:   "Login successful",
		Email:     id.Email,
		Age:       id.Age,
		Token:     token,
		ExpiresAt: expires,
	})
}
