// Marquee - Media Catalog Access Layer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/tomtom215/marquee/internal/config"
	"github.com/tomtom215/marquee/internal/models"
)

// tokenIssuer is written to and required on every token.
const tokenIssuer = "marquee"

// ErrInvalidToken is returned for any token that fails validation.
var ErrInvalidToken = errors.New("invalid session token")

// Claims represents JWT claims
type Claims struct {
	Email string `json:"email"`
	Age   int    `json:"age"`
	jwt.RegisteredClaims
}

// Identity returns the authenticated identity carried by the claims.
func (c *Claims) Identity() models.Identity {
	return models.Identity{Email: c.Email, Age: c.Age}
}

// JWTManager handles JWT token creation and validation
type JWTManager struct {
	secret  []byte
	timeout time.Duration
	now     func() time.Time
}

// NewJWTManager creates a token manager from the security configuration.
// The secret must be non-empty; length rules are enforced by config validation.
func NewJWTManager(cfg *config.SecurityConfig) (*JWTManager, error) {
	if cfg == nil || cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required but was empty")
	}
	if cfg.SessionTimeout <= 0 {
		return nil, fmt.Errorf("session timeout must be positive, got %s", cfg.SessionTimeout)
	}

	return &JWTManager{
		secret:  []byte(cfg.JWTSecret),
		timeout: cfg.SessionTimeout,
		now:     time.Now,
	}, nil
}

// GenerateToken signs a session token for the identity and returns it with
// its expiry time.
func (m *JWTManager) GenerateToken(id models.Identity) (string, time.Time, error) {
	now := m.now()
	expires := now.Add(m.timeout)

	claims := &Claims{
		Email: id.Email,
		Age:   id.Age,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Subject:   id.Email,
			ExpiresAt: jwt.NewNumericDate(expires),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, expires, nil
}

// ValidateToken checks signature, algorithm, issuer and time claims, and
// returns the decoded claims. All failures wrap ErrInvalidToken.
func (m *JWTManager) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return m.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if !token.Valid || claims.Email == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
