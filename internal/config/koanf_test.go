// Marquee - Media Catalog Access Layer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const testSecret = "this_is_a_very_long_secret_key_for_testing_purposes_12345"

// setBaseEnv sets the variables a valid configuration needs.
func setBaseEnv(t *testing.T) {
	t.Helper()
	t.Setenv(ConfigPathEnvVar, "")
	t.Setenv("JWT_SECRET", testSecret)
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")
}

// TestDefaultConfig verifies that defaultConfig() returns proper defaults
func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	if cfg.Server.Port != 8000 {
		t.Errorf("Server.Port = %d, want 8000", cfg.Server.Port)
	}
	if cfg.Store.Driver != DriverMongo {
		t.Errorf("Store.Driver = %q, want mongo", cfg.Store.Driver)
	}
	if cfg.Store.Database != "fletnix" || cfg.Store.UsersCollection != "users" || cfg.Store.TitlesCollection != "netflix_titles" {
		t.Errorf("Store names = %q/%q/%q", cfg.Store.Database, cfg.Store.UsersCollection, cfg.Store.TitlesCollection)
	}
	if cfg.Store.ConnectTimeout != 5*time.Second {
		t.Errorf("Store.ConnectTimeout = %v, want 5s", cfg.Store.ConnectTimeout)
	}
	if cfg.Catalog.PageSize != 15 || cfg.Catalog.SearchDefaultLimit != 15 || cfg.Catalog.SearchMaxLimit != 100 {
		t.Errorf("Catalog = %+v", cfg.Catalog)
	}
	if cfg.Watchlist.VerifyTitles {
		t.Error("Watchlist.VerifyTitles should default to false")
	}
	if cfg.Security.BcryptCost != 12 {
		t.Errorf("Security.BcryptCost = %d, want 12", cfg.Security.BcryptCost)
	}
	if len(cfg.Security.CORSOrigins) != 1 || cfg.Security.CORSOrigins[0] != "*" {
		t.Errorf("Security.CORSOrigins = %v, want [*]", cfg.Security.CORSOrigins)
	}
	if !cfg.Breaker.Enabled || cfg.Breaker.FailureThreshold != 5 {
		t.Errorf("Breaker = %+v", cfg.Breaker)
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "json" {
		t.Errorf("Logging = %+v", cfg.Logging)
	}
}

func TestEnvTransformFunc(t *testing.T) {
	t.Parallel()

	tests := []struct {
		env  string
		want string
	}{
		{"MONGO_URI", "store.mongo_uri"},
		{"HTTP_PORT", "server.port"},
		{"JWT_SECRET", "security.jwt_secret"},
		{"CORS_ORIGINS", "security.cors_origins"},
		{"CATALOG_PAGE_SIZE", "catalog.page_size"},
		{"WATCHLIST_VERIFY_TITLES", "watchlist.verify_titles"},
		{"LOG_LEVEL", "logging.level"},
		{"PATH", ""},
		{"HOME", ""},
	}

	for _, tt := range tests {
		if got := envTransformFunc(tt.env); got != tt.want {
			t.Errorf("envTransformFunc(%q) = %q, want %q", tt.env, got, tt.want)
		}
	}
}

func TestFindConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	if err := os.WriteFile(path, []byte("server:\n  port: 9100\n"), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	t.Setenv(ConfigPathEnvVar, path)
	if got := findConfigFile(); got != path {
		t.Errorf("findConfigFile() = %q, want %q", got, path)
	}

	t.Setenv(ConfigPathEnvVar, filepath.Join(dir, "missing.yaml"))
	if got := findConfigFile(); got == filepath.Join(dir, "missing.yaml") {
		t.Error("findConfigFile() returned a path that does not exist")
	}
}

func TestLoadWithKoanfEnvVars(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("HTTP_PORT", "9000")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("CATALOG_PAGE_SIZE", "20")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example ,")
	t.Setenv("WATCHLIST_VERIFY_TITLES", "true")
	t.Setenv("MONGO_TIMEOUT", "2s")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}

	if cfg.Server.Port != 9000 {
		t.Errorf("Server.Port = %d, want 9000", cfg.Server.Port)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
	if cfg.Catalog.PageSize != 20 {
		t.Errorf("Catalog.PageSize = %d, want 20", cfg.Catalog.PageSize)
	}
	if !cfg.Watchlist.VerifyTitles {
		t.Error("Watchlist.VerifyTitles = false, want true")
	}
	if cfg.Store.ConnectTimeout != 2*time.Second {
		t.Errorf("Store.ConnectTimeout = %v, want 2s", cfg.Store.ConnectTimeout)
	}
	want := []string{"https://a.example", "https://b.example"}
	if strings.Join(cfg.Security.CORSOrigins, "|") != strings.Join(want, "|") {
		t.Errorf("Security.CORSOrigins = %v, want %v", cfg.Security.CORSOrigins, want)
	}

	// Defaults still apply for unset values
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("Server.Host = %q, want 0.0.0.0 (default)", cfg.Server.Host)
	}
	if cfg.Store.Database != "fletnix" {
		t.Errorf("Store.Database = %q, want fletnix (default)", cfg.Store.Database)
	}
}

func TestLoadWithKoanfConfigFile(t *testing.T) {
	setBaseEnv(t)

	content := `
server:
  port: 9100
  environment: staging
store:
  driver: badger
  badger_path: /tmp/marquee-test
catalog:
  page_size: 25
  search_max_limit: 50
security:
  cors_origins:
    - https://app.example
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	t.Setenv(ConfigPathEnvVar, path)
	t.Setenv("LOG_FORMAT", "console")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}

	if cfg.Server.Port != 9100 || cfg.Server.Environment != "staging" {
		t.Errorf("Server = %+v", cfg.Server)
	}
	if cfg.Store.Driver != DriverBadger || cfg.Store.BadgerPath != "/tmp/marquee-test" {
		t.Errorf("Store = %+v", cfg.Store)
	}
	if cfg.Catalog.PageSize != 25 || cfg.Catalog.SearchMaxLimit != 50 {
		t.Errorf("Catalog = %+v", cfg.Catalog)
	}
	if len(cfg.Security.CORSOrigins) != 1 || cfg.Security.CORSOrigins[0] != "https://app.example" {
		t.Errorf("Security.CORSOrigins = %v", cfg.Security.CORSOrigins)
	}
	if cfg.Logging.Format != "console" {
		t.Errorf("Logging.Format = %q, want console (env override)", cfg.Logging.Format)
	}
}

func TestLoadWithKoanfEnvOverridesFile(t *testing.T) {
	setBaseEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("server:\n  port: 9100\n"), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	t.Setenv(ConfigPathEnvVar, path)
	t.Setenv("HTTP_PORT", "9200")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}
	if cfg.Server.Port != 9200 {
		t.Errorf("Server.Port = %d, want 9200 (env override)", cfg.Server.Port)
	}
}

func TestLoadWithKoanfValidation(t *testing.T) {
	tests := []struct {
		name    string
		envVars map[string]string
		errMsg  string
	}{
		{
			name:    "missing JWT secret",
			envVars: map[string]string{"JWT_SECRET": ""},
			errMsg:  "JWT_SECRET is required",
		},
		{
			name:    "short JWT secret",
			envVars: map[string]string{"JWT_SECRET": "short"},
			errMsg:  "JWT_SECRET must be at least",
		},
		{
			name:    "missing mongo uri",
			envVars: map[string]string{"MONGO_URI": ""},
			errMsg:  "MONGO_URI is required",
		},
		{
			name:    "bad mongo scheme",
			envVars: map[string]string{"MONGO_URI": "http://localhost:27017"},
			errMsg:  "MONGO_URI must use",
		},
		{
			name:    "unknown driver",
			envVars: map[string]string{"STORE_DRIVER": "sqlite"},
			errMsg:  "STORE_DRIVER must be",
		},
		{
			name:    "badger in memory needs no path",
			envVars: map[string]string{"STORE_DRIVER": "badger", "BADGER_PATH": "", "BADGER_IN_MEMORY": "true"},
		},
		{
			name:    "badger requires path",
			envVars: map[string]string{"STORE_DRIVER": "badger", "BADGER_PATH": ""},
			errMsg:  "BADGER_PATH is required",
		},
		{
			name:    "page size",
			envVars: map[string]string{"CATALOG_PAGE_SIZE": "0"},
			errMsg:  "CATALOG_PAGE_SIZE",
		},
		{
			name:    "search default above max",
			envVars: map[string]string{"SEARCH_DEFAULT_LIMIT": "200"},
			errMsg:  "SEARCH_DEFAULT_LIMIT",
		},
		{
			name:    "bcrypt cost",
			envVars: map[string]string{"BCRYPT_COST": "3"},
			errMsg:  "BCRYPT_COST",
		},
		{
			name:    "production bcrypt floor",
			envVars: map[string]string{"ENVIRONMENT": "production", "BCRYPT_COST": "4"},
			errMsg:  "in production",
		},
		{
			name:    "bad cors origin",
			envVars: map[string]string{"CORS_ORIGINS": "example.com"},
			errMsg:  "CORS_ORIGINS",
		},
		{
			name:    "bad log level",
			envVars: map[string]string{"LOG_LEVEL": "loud"},
			errMsg:  "LOG_LEVEL",
		},
		{
			name:    "valid defaults",
			envVars: map[string]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setBaseEnv(t)
			for k, v := range tt.envVars {
				t.Setenv(k, v)
			}

			_, err := LoadWithKoanf()
			if tt.errMsg == "" {
				if err != nil {
					t.Errorf("LoadWithKoanf() unexpected error = %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("LoadWithKoanf() expected error containing %q, got nil", tt.errMsg)
			}
			if !strings.Contains(err.Error(), tt.errMsg) {
				t.Errorf("LoadWithKoanf() error = %v, want containing %q", err, tt.errMsg)
			}
		})
	}
}
