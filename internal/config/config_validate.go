// Marquee - Media Catalog Access Layer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// minJWTSecretLength is the shortest accepted HMAC signing secret.
const minJWTSecretLength = 32

// Validate checks that required configuration is present and valid
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}

	if err := c.validateStore(); err != nil {
		return err
	}

	if err := c.validateCatalog(); err != nil {
		return err
	}

	if err := c.validateSecurity(); err != nil {
		return err
	}

	if err := c.validateBreaker(); err != nil {
		return err
	}

	return c.validateLogging()
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.RequestTimeout <= 0 {
		return fmt.Errorf("REQUEST_TIMEOUT must be positive")
	}
	switch c.Server.Environment {
	case "development", "staging", "production":
	default:
		return fmt.Errorf("ENVIRONMENT must be development, staging or production, got %q", c.Server.Environment)
	}
	return nil
}

func (c *Config) validateStore() error {
	switch c.Store.Driver {
	case DriverMongo:
		return c.validateMongo()
	case DriverBadger:
		if !c.Store.BadgerInMemory && c.Store.BadgerPath == "" {
			return fmt.Errorf("BADGER_PATH is required when STORE_DRIVER=badger")
		}
		if c.Store.BadgerGCRatio <= 0 || c.Store.BadgerGCRatio >= 1 {
			return fmt.Errorf("BADGER_GC_RATIO must be between 0 and 1, got %v", c.Store.BadgerGCRatio)
		}
		return nil
	default:
		return fmt.Errorf("STORE_DRIVER must be %q or %q, got %q", DriverMongo, DriverBadger, c.Store.Driver)
	}
}

func (c *Config) validateMongo() error {
	if c.Store.MongoURI == "" {
		return fmt.Errorf("MONGO_URI is required when STORE_DRIVER=mongo")
	}
	u, err := url.Parse(c.Store.MongoURI)
	if err != nil {
		return fmt.Errorf("MONGO_URI is invalid: %w", err)
	}
	if u.Scheme != "mongodb" && u.Scheme != "mongodb+srv" {
		return fmt.Errorf("MONGO_URI must use the mongodb or mongodb+srv scheme")
	}
	if c.Store.Database == "" || c.Store.UsersCollection == "" || c.Store.TitlesCollection == "" {
		return fmt.Errorf("store database and collection names must not be empty")
	}
	if c.Store.ConnectTimeout <= 0 {
		return fmt.Errorf("MONGO_TIMEOUT must be positive")
	}
	return nil
}

func (c *Config) validateCatalog() error {
	if c.Catalog.PageSize < 1 {
		return fmt.Errorf("CATALOG_PAGE_SIZE must be at least 1, got %d", c.Catalog.PageSize)
	}
	if c.Catalog.SearchMaxLimit < 1 {
		return fmt.Errorf("SEARCH_MAX_LIMIT must be at least 1, got %d", c.Catalog.SearchMaxLimit)
	}
	if c.Catalog.SearchDefaultLimit < 1 || c.Catalog.SearchDefaultLimit > c.Catalog.SearchMaxLimit {
		return fmt.Errorf("SEARCH_DEFAULT_LIMIT must be between 1 and SEARCH_MAX_LIMIT (%d), got %d",
			c.Catalog.SearchMaxLimit, c.Catalog.SearchDefaultLimit)
	}
	return nil
}

func (c *Config) validateSecurity() error {
	if c.Security.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if len(c.Security.JWTSecret) < minJWTSecretLength {
		return fmt.Errorf("JWT_SECRET must be at least %d characters", minJWTSecretLength)
	}
	if c.Security.SessionTimeout < time.Minute {
		return fmt.Errorf("SESSION_TIMEOUT must be at least 1m, got %v", c.Security.SessionTimeout)
	}
	if c.Security.BcryptCost < 4 || c.Security.BcryptCost > 31 {
		return fmt.Errorf("BCRYPT_COST must be between 4 and 31, got %d", c.Security.BcryptCost)
	}
	if c.IsProduction() && c.Security.BcryptCost < 10 {
		return fmt.Errorf("BCRYPT_COST must be at least 10 in production")
	}
	if !c.Security.RateLimitDisabled {
		if c.Security.RateLimitReqs < 1 || c.Security.AuthRateLimitReqs < 1 {
			return fmt.Errorf("rate limits must be positive unless DISABLE_RATE_LIMIT=true")
		}
		if c.Security.RateLimitWindow <= 0 {
			return fmt.Errorf("RATE_LIMIT_WINDOW must be positive")
		}
	}
	for _, origin := range c.Security.CORSOrigins {
		if origin == "*" {
			continue
		}
		if !strings.HasPrefix(origin, "http://") && !strings.HasPrefix(origin, "https://") {
			return fmt.Errorf("CORS_ORIGINS entry %q must be * or an http(s) origin", origin)
		}
	}
	return nil
}

func (c *Config) validateBreaker() error {
	if !c.Breaker.Enabled {
		return nil
	}
	if c.Breaker.FailureThreshold == 0 {
		return fmt.Errorf("BREAKER_FAILURE_THRESHOLD must be at least 1")
	}
	if c.Breaker.OpenTimeout <= 0 {
		return fmt.Errorf("BREAKER_OPEN_TIMEOUT must be positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch strings.ToLower(c.Logging.Level) {
	case "trace", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("LOG_LEVEL must be trace, debug, info, warn or error, got %q", c.Logging.Level)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "json", "console":
	default:
		return fmt.Errorf("LOG_FORMAT must be json or console, got %q", c.Logging.Format)
	}
	if c.Logging.File != "" && c.Logging.MaxSizeMB < 1 {
		return fmt.Errorf("LOG_MAX_SIZE_MB must be at least 1 when LOG_FILE is set")
	}
	return nil
}
