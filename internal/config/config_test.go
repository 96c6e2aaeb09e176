// Gravitus - Workout Analytics and Strength Progress Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gravitus

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultsValidate(t *testing.T) {
	cfg := defaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Hevy.BaseURL != "https://api.hevyapp.com" {
		t.Errorf("hevy.base_url default = %q", cfg.Hevy.BaseURL)
	}
	if cfg.Store.Backend != "badger" {
		t.Errorf("store.backend default = %q", cfg.Store.Backend)
	}
	if cfg.Hevy.Timeout != 30*time.Second {
		t.Errorf("hevy.timeout default = %s", cfg.Hevy.Timeout)
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := `
hevy:
  base_url: http://localhost:9999
store:
  backend: memory
server:
  port: 8080
`
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv(ConfigPathEnvVar, path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Hevy.BaseURL != "http://localhost:9999" {
		t.Errorf("hevy.base_url = %q", cfg.Hevy.BaseURL)
	}
	if cfg.Store.Backend != "memory" {
		t.Errorf("store.backend = %q", cfg.Store.Backend)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("server.port = %d", cfg.Server.Port)
	}
	// Untouched settings keep their defaults.
	if cfg.Sync.PrefetchWorkers != 4 {
		t.Errorf("sync.prefetch_workers = %d", cfg.Sync.PrefetchWorkers)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	t.Setenv("GRAVITUS_SERVER_PORT", "9090")
	t.Setenv("GRAVITUS_STORE_BACKEND", "memory")
	t.Setenv("GRAVITUS_SERVER_CORS_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("server.port = %d, want env override 9090", cfg.Server.Port)
	}
	if cfg.Store.Backend != "memory" {
		t.Errorf("store.backend = %q, want env override", cfg.Store.Backend)
	}
	if len(cfg.Server.CORSOrigins) != 2 || cfg.Server.CORSOrigins[1] != "https://b.example" {
		t.Errorf("cors_origins = %v", cfg.Server.CORSOrigins)
	}
}

func TestEnvTransform(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"GRAVITUS_HEVY_BASE_URL", "hevy.base_url"},
		{"GRAVITUS_HEVY_API_KEY", "hevy.api_key"},
		{"GRAVITUS_STORE_BACKEND", "store.backend"},
		{"GRAVITUS_SYNC_PREFETCH_WORKERS", "sync.prefetch_workers"},
		{"GRAVITUS_SERVER_PORT", "server.port"},
	}
	for _, tt := range tests {
		if got := envTransformFunc(tt.in); got != tt.want {
			t.Errorf("envTransformFunc(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty base url", func(c *Config) { c.Hevy.BaseURL = "" }},
		{"bad scheme", func(c *Config) { c.Hevy.BaseURL = "ftp://api.example" }},
		{"zero timeout", func(c *Config) { c.Hevy.Timeout = 0 }},
		{"unknown backend", func(c *Config) { c.Store.Backend = "sqlite" }},
		{"badger without path", func(c *Config) { c.Store.Backend = "badger"; c.Store.Path = "" }},
		{"zero workers", func(c *Config) { c.Sync.PrefetchWorkers = 0 }},
		{"bad port", func(c *Config) { c.Server.Port = 0 }},
		{"zero rate limit", func(c *Config) { c.Server.RateLimitReqs = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}
