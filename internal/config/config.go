// Gravitus - Workout Analytics and Strength Progress Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gravitus

package config

import "time"

// Config is the root configuration for Gravitus.
type Config struct {
	Hevy    HevyConfig    `koanf:"hevy"`
	Store   StoreConfig   `koanf:"store"`
	Sync    SyncConfig    `koanf:"sync"`
	Server  ServerConfig  `koanf:"server"`
	Logging LoggingConfig `koanf:"logging"`
}

// HevyConfig configures the remote fitness API client.
type HevyConfig struct {
	// BaseURL is the API root, e.g. https://api.hevyapp.com
	BaseURL string `koanf:"base_url"`

	// APIKey is sent as the x-api-key header on every call.
	APIKey string `koanf:"api_key"`

	// Timeout bounds a single HTTP exchange.
	Timeout time.Duration `koanf:"timeout"`
}

// StoreConfig selects and configures the local store backend.
type StoreConfig struct {
	// Backend is "badger" for durable storage or "memory" for a
	// session-scoped store that is lost on restart.
	Backend string `koanf:"backend"`

	// Path is the BadgerDB directory (badger backend only).
	Path string `koanf:"path"`
}

// SyncConfig tunes the sync engine.
type SyncConfig struct {
	// PrefetchWorkers bounds the feed image prefetch pool.
	PrefetchWorkers int `koanf:"prefetch_workers"`

	// PrefetchPerSecond rate-limits image downloads so prefetch bursts
	// cannot starve sync traffic. 0 disables the limit.
	PrefetchPerSecond int `koanf:"prefetch_per_second"`
}

// ServerConfig configures the dashboard HTTP server.
type ServerConfig struct {
	Host    string        `koanf:"host"`
	Port    int           `koanf:"port"`
	Timeout time.Duration `koanf:"timeout"`

	CORSOrigins     []string      `koanf:"cors_origins"`
	RateLimitReqs   int           `koanf:"rate_limit_reqs"`
	RateLimitWindow time.Duration `koanf:"rate_limit_window"`
}

// LoggingConfig configures the global logger.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// defaultConfig returns a Config with all default values. Defaults are
// applied first, then overridden by the config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Hevy: HevyConfig{
			BaseURL: "https://api.hevyapp.com",
			APIKey:  "with_great_power",
			Timeout: 30 * time.Second,
		},
		Store: StoreConfig{
			Backend: "badger",
			Path:    "/data/gravitus",
		},
		Sync: SyncConfig{
			PrefetchWorkers:   4,
			PrefetchPerSecond: 10,
		},
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            4148,
			Timeout:         30 * time.Second,
			CORSOrigins:     []string{"*"},
			RateLimitReqs:   100,
			RateLimitWindow: time.Minute,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}
