// Marquee - Media Catalog Access Layer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package config

import "time"

// Store drivers
const (
	DriverMongo  = "mongo"
	DriverBadger = "badger"
)

// Config holds all application configuration
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Store     StoreConfig     `koanf:"store"`
	Catalog   CatalogConfig   `koanf:"catalog"`
	Watchlist WatchlistConfig `koanf:"watchlist"`
	Security  SecurityConfig  `koanf:"security"`
	Breaker   BreakerConfig   `koanf:"breaker"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port            int           `koanf:"port"`
	Host            string        `koanf:"host"`
	RequestTimeout  time.Duration `koanf:"request_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	Environment     string        `koanf:"environment"` // "development", "staging" or "production"
}

// StoreConfig selects and configures the document store.
type StoreConfig struct {
	Driver string `koanf:"driver"`

	// MongoDB
	MongoURI         string        `koanf:"mongo_uri"`
	Database         string        `koanf:"database"`
	UsersCollection  string        `koanf:"users_collection"`
	TitlesCollection string        `koanf:"titles_collection"`
	ConnectTimeout   time.Duration `koanf:"connect_timeout"`

	// BadgerDB
	BadgerPath       string        `koanf:"badger_path"`
	BadgerInMemory   bool          `koanf:"badger_in_memory"`
	BadgerSyncWrites bool          `koanf:"badger_sync_writes"`
	BadgerGCInterval time.Duration `koanf:"badger_gc_interval"`
	BadgerGCRatio    float64       `koanf:"badger_gc_ratio"`
}

// CatalogConfig holds listing and search limits.
type CatalogConfig struct {
	PageSize           int `koanf:"page_size"`
	SearchDefaultLimit int `koanf:"search_default_limit"`
	SearchMaxLimit     int `koanf:"search_max_limit"`

	// SeedFile, when set, is a catalog CSV export loaded at startup.
	SeedFile string `koanf:"seed_file"`
}

// WatchlistConfig holds watchlist integrity settings.
type WatchlistConfig struct {
	// VerifyTitles rejects additions of ids that are not in the catalog.
	VerifyTitles bool `koanf:"verify_titles"`
}

// SecurityConfig holds authentication, hashing and request limiting settings
type SecurityConfig struct {
	JWTSecret         string        `koanf:"jwt_secret"`
	SessionTimeout    time.Duration `koanf:"session_timeout"`
	BcryptCost        int           `koanf:"bcrypt_cost"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	AuthRateLimitReqs int           `koanf:"auth_rate_limit_reqs"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
}

// BreakerConfig configures the circuit breaker in front of the store.
type BreakerConfig struct {
	Enabled          bool          `koanf:"enabled"`
	FailureThreshold uint32        `koanf:"failure_threshold"`
	OpenTimeout      time.Duration `koanf:"open_timeout"`
	MaxRequests      uint32        `koanf:"max_requests"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	Level string `koanf:"level"`

	// Format is the output format: json or console.
	Format string `koanf:"format"`

	// Caller includes caller file and line number in logs.
	Caller bool `koanf:"caller"`

	// File, when set, writes logs to a rotating file instead of stderr.
	File       string `koanf:"file"`
	MaxSizeMB  int    `koanf:"max_size_mb"`
	MaxBackups int    `koanf:"max_backups"`
	MaxAgeDays int    `koanf:"max_age_days"`
	Compress   bool   `koanf:"compress"`
}

// Load reads configuration from defaults, an optional config file and the
// environment, then validates it.
func Load() (*Config, error) {
	return LoadWithKoanf()
}

// IsProduction reports whether the server runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}
