// Marquee - Media Catalog Access Layer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/goccy/go-json"

	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/models"
)

type contextKey string

const identityContextKey contextKey = "identity"

// ContextWithIdentity returns a context carrying the authenticated identity.
func ContextWithIdentity(ctx context.Context, id models.Identity) context.Context {
	return context.WithValue(ctx, identityContextKey, id)
}

// IdentityFromContext returns the identity placed by the middleware.
func IdentityFromContext(ctx context.Context) (models.Identity, bool) {
	id, ok := ctx.Value(identityContextKey).(models.Identity)
	return id, ok
}

// Middleware attaches identities from bearer tokens.
type Middleware struct {
	jwt *JWTManager
}

// NewMiddleware creates identity middleware backed by the token manager.
func NewMiddleware(jwtManager *JWTManager) *Middleware {
	return &Middleware{jwt: jwtManager}
}

// RequireIdentity rejects requests without a valid bearer token.
func (m *Middleware) RequireIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok {
			writeUnauthorized(w, r, "Authentication required")
			return
		}
		m.serveWithToken(w, r, token, next)
	})
}

// OptionalIdentity attaches an identity when a bearer token is present.
// Requests without an Authorization header pass through unchanged; a
// presented but invalid token is rejected.
func (m *Middleware) OptionalIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") == "" {
			next.ServeHTTP(w, r)
			return
		}
		token, ok := bearerToken(r)
		if !ok {
			writeUnauthorized(w, r, "Invalid authorization header")
			return
		}
		m.serveWithToken(w, r, token, next)
	})
}

func (m *Middleware) serveWithToken(w http.ResponseWriter, r *http.Request, token string, next http.Handler) {
	claims, err := m.jwt.ValidateToken(token)
	if err != nil {
		logging.Ctx(r.Context()).Debug().Err(err).Msg("Token validation failed")
		writeUnauthorized(w, r, "Invalid or expired session token")
		return
	}
	ctx := ContextWithIdentity(r.Context(), claims.Identity())
	next.ServeHTTP(w, r.WithContext(ctx))
}

// bearerToken extracts the token from "Authorization: Bearer <token>".
func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func writeUnauthorized(w http.ResponseWriter, r *http.Request, message string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("WWW-Authenticate", `Bearer realm="marquee"`)
	w.WriteHeader(http.StatusUnauthorized)

	body := models.ErrorResponse{
		Success: false,
		Error: &models.APIError{
			Code:      "UNAUTHORIZED",
			Message:   message,
			RequestID: logging.RequestIDFromContext(r.Context()),
		},
	}
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logging.Error().Err(err).Msg("Failed to encode unauthorized response")
	}
}
