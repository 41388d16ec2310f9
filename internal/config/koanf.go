// Marquee - Media Catalog Access Layer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/marquee/config.yaml",
	"/etc/marquee/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns a Config struct with all sensible default values.
// These defaults are applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8000,
			Host:            "0.0.0.0",
			RequestTimeout:  15 * time.Second,
			ShutdownTimeout: 30 * time.Second,
			Environment:     "development",
		},
		Store: StoreConfig{
			Driver:           DriverMongo,
			MongoURI:         "",
			Database:         "fletnix",
			UsersCollection:  "users",
			TitlesCollection: "netflix_titles",
			ConnectTimeout:   5 * time.Second,
			BadgerPath:       "/data/marquee",
			BadgerInMemory:   false,
			BadgerSyncWrites: true,
			BadgerGCInterval: 10 * time.Minute,
			BadgerGCRatio:    0.5,
		},
		Catalog: CatalogConfig{
			PageSize:           15,
			SearchDefaultLimit: 15,
			SearchMaxLimit:     100,
		},
		Watchlist: WatchlistConfig{
			VerifyTitles: false,
		},
		Security: SecurityConfig{
			SessionTimeout:    24 * time.Hour,
			BcryptCost:        12,
			RateLimitReqs:     300,
			RateLimitWindow:   time.Minute,
			AuthRateLimitReqs: 10,
			RateLimitDisabled: false,
			CORSOrigins:       []string{"*"},
		},
		Breaker: BreakerConfig{
			Enabled:          true,
			FailureThreshold: 5,
			OpenTimeout:      30 * time.Second,
			MaxRequests:      1,
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "json",
			Caller:     false,
			MaxSizeMB:  100,
			MaxBackups: 5,
			MaxAgeDays: 28,
			Compress:   true,
		},
	}
}

// LoadWithKoanf loads configuration using Koanf v2 with layered sources:
//  1. Defaults: Built-in sensible defaults
//  2. Config File: Optional YAML config file (if exists)
//  3. Environment Variables: Override any setting
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	// Layer 1: Load defaults from struct
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: Load config file (optional)
	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: Load environment variables (highest priority)
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile searches for a config file in the default paths.
// Returns the path to the first file found, or empty string if none found.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths defines which config paths should be parsed as comma-separated slices
var sliceConfigPaths = []string{
	"security.cors_origins",
}

// processSliceFields converts comma-separated string values to slices for known slice fields.
// Env vars arrive as strings while the config expects slices.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}

		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) > 0 {
			if err := k.Set(path, trimmed); err != nil {
				return fmt.Errorf("failed to set %s: %w", path, err)
			}
		}
	}
	return nil
}

// envMappings maps flat environment variable names (lower-cased) to config paths.
var envMappings = map[string]string{
	// Server
	"http_port":        "server.port",
	"http_host":        "server.host",
	"request_timeout":  "server.request_timeout",
	"shutdown_timeout": "server.shutdown_timeout",
	"environment":      "server.environment",

	// Store
	"store_driver":       "store.driver",
	"mongo_uri":          "store.mongo_uri",
	"mongo_database":     "store.database",
	"mongo_users":        "store.users_collection",
	"mongo_titles":       "store.titles_collection",
	"mongo_timeout":      "store.connect_timeout",
	"badger_path":        "store.badger_path",
	"badger_in_memory":   "store.badger_in_memory",
	"badger_sync_writes": "store.badger_sync_writes",
	"badger_gc_interval": "store.badger_gc_interval",
	"badger_gc_ratio":    "store.badger_gc_ratio",

	// Catalog
	"catalog_page_size":    "catalog.page_size",
	"search_default_limit": "catalog.search_default_limit",
	"search_max_limit":     "catalog.search_max_limit",
	"catalog_seed_file":    "catalog.seed_file",

	// Watchlist
	"watchlist_verify_titles": "watchlist.verify_titles",

	// Security
	"jwt_secret":           "security.jwt_secret",
	"session_timeout":      "security.session_timeout",
	"bcrypt_cost":          "security.bcrypt_cost",
	"rate_limit_reqs":      "security.rate_limit_reqs",
	"rate_limit_window":    "security.rate_limit_window",
	"auth_rate_limit_reqs": "security.auth_rate_limit_reqs",
	"disable_rate_limit":   "security.rate_limit_disabled",
	"cors_origins":         "security.cors_origins",

	// Circuit breaker
	"breaker_enabled":           "breaker.enabled",
	"breaker_failure_threshold": "breaker.failure_threshold",
	"breaker_open_timeout":      "breaker.open_timeout",
	"breaker_max_requests":      "breaker.max_requests",

	// Logging
	"log_level":       "logging.level",
	"log_format":      "logging.format",
	"log_caller":      "logging.caller",
	"log_file":        "logging.file",
	"log_max_size_mb": "logging.max_size_mb",
	"log_max_backups": "logging.max_backups",
	"log_max_age":     "logging.max_age_days",
	"log_compress":    "logging.compress",
}

// envTransformFunc transforms environment variable names to koanf config paths.
//
// Examples:
//   - MONGO_URI -> store.mongo_uri
//   - HTTP_PORT -> server.port
//   - LOG_LEVEL -> logging.level
func envTransformFunc(key string) string {
	if mapped, ok := envMappings[strings.ToLower(key)]; ok {
		return mapped
	}

	// Unmapped keys are skipped so random environment variables cannot
	// pollute the config.
	return ""
}
