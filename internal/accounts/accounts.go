// Marquee - Media Catalog Access Layer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package accounts registers account holders and verifies their credentials.
//
// Secrets are stored as bcrypt hashes with a per-call salt. Authentication
// failures are deliberately undifferentiated: an unknown email and a wrong
// password both return models.ErrInvalidCredentials, and both pay for a
// bcrypt comparison.
package accounts

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/tomtom215/marquee/internal/metrics"
	"github.com/tomtom215/marquee/internal/models"
	"github.com/tomtom215/marquee/internal/store"
)

// DefaultCost is the bcrypt work factor used when none is configured.
const DefaultCost = 12

// Service implements registration and authentication over an account store.
type Service struct {
	accounts  store.Accounts
	cost      int
	dummyHash []byte
}

// NewService creates an account service. A cost outside bcrypt's accepted
// range falls back to DefaultCost.
func NewService(accounts store.Accounts, cost int) (*Service, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}

	// Compared against when the email is unknown so the response time
	// matches a wrong-password attempt.
	dummy, err := bcrypt.GenerateFromPassword([]byte("marquee-timing-equalizer"), cost)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare dummy hash: %w", err)
	}

	return &Service{
		accounts:  accounts,
		cost:      cost,
		dummyHash: dummy,
	}, nil
}

// Register creates an account with an empty watchlist.
func (s *Service) Register(ctx context.Context, email, password string, age *int) error {
	switch {
	case strings.TrimSpace(email) == "":
		return s.registerFailed(fmt.Errorf("register: %w: email is required", models.ErrInvalidInput))
	case password == "":
		return s.registerFailed(fmt.Errorf("register: %w: password is required", models.ErrInvalidInput))
	case age == nil:
		return s.registerFailed(fmt.Errorf("register: %w: age is required", models.ErrInvalidInput))
	case *age < 0:
		return s.registerFailed(fmt.Errorf("register: %w: age must not be negative", models.ErrInvalidInput))
	}

	if _, err := s.accounts.GetAccount(ctx, email); err == nil {
		return s.registerFailed(fmt.Errorf("register %q: %w", email, models.ErrDuplicateAccount))
	} else if !errors.Is(err, store.ErrNotFound) {
		return s.registerFailed(fmt.Errorf("register: %w", err))
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return s.registerFailed(fmt.Errorf("register: %w: password exceeds 72 bytes", models.ErrInvalidInput))
		}
		return s.registerFailed(fmt.Errorf("register: hash password: %w", err))
	}

	err = s.accounts.CreateAccount(ctx, &models.Account{
		Email:        email,
		PasswordHash: string(hash),
		Age:          *age,
		Watchlist:    []string{},
	})
	if errors.Is(err, store.ErrDuplicateKey) {
		return s.registerFailed(fmt.Errorf("register %q: %w", email, models.ErrDuplicateAccount))
	}
	if err != nil {
		return s.registerFailed(fmt.Errorf("register: %w", err))
	}

	metrics.RecordAuthAttempt("register", "success")
	return nil
}

func (s *Service) registerFailed(err error) error {
	metrics.RecordAuthAttempt("register", outcome(err))
	return err
}

// Authenticate verifies the credentials and returns the account identity.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*models.Identity, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		metrics.RecordAuthAttempt("login", "failure")
		return nil, fmt.Errorf("authenticate: %w", models.ErrInvalidCredentials)
	}

	acct, err := s.accounts.GetAccount(ctx, email)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			metrics.RecordAuthAttempt("login", outcome(err))
			return nil, fmt.Errorf("authenticate: %w", err)
		}
		_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
		metrics.RecordAuthAttempt("login", "failure")
		return nil, fmt.Errorf("authenticate: %w", models.ErrInvalidCredentials)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(acct.PasswordHash), []byte(password)); err != nil {
		metrics.RecordAuthAttempt("login", "failure")
		return nil, fmt.Errorf("authenticate: %w", models.ErrInvalidCredentials)
	}

	metrics.RecordAuthAttempt("login", "success")
	return &models.Identity{Email: acct.Email, Age: acct.Age}, nil
}

func outcome(err error) string {
	switch {
	case errors.Is(err, models.ErrStoreUnavailable):
		return "error"
	case errors.Is(err, models.ErrDuplicateAccount):
		return "duplicate"
	case errors.Is(err, models.ErrInvalidInput):
		return "invalid"
	default:
		return "failure"
	}
}
