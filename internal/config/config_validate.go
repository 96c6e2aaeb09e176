// Gravitus - Workout Analytics and Strength Progress Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gravitus

package config

import (
	"fmt"
	"net/url"
	"strings"
)

// Validate checks the configuration for values that would fail at runtime.
func (c *Config) Validate() error {
	if err := c.validateHevy(); err != nil {
		return err
	}
	if err := c.validateStore(); err != nil {
		return err
	}
	if err := c.validateSync(); err != nil {
		return err
	}
	return c.validateServer()
}

func (c *Config) validateHevy() error {
	if c.Hevy.BaseURL == "" {
		return fmt.Errorf("hevy.base_url is required")
	}
	u, err := url.Parse(c.Hevy.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("hevy.base_url %q is not a valid URL", c.Hevy.BaseURL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("hevy.base_url scheme must be http or https, got %q", u.Scheme)
	}
	if c.Hevy.Timeout <= 0 {
		return fmt.Errorf("hevy.timeout must be positive, got %s", c.Hevy.Timeout)
	}
	return nil
}

func (c *Config) validateStore() error {
	switch strings.ToLower(c.Store.Backend) {
	case "badger":
		if c.Store.Path == "" {
			return fmt.Errorf("store.path is required for the badger backend")
		}
	case "memory":
		// no further settings
	default:
		return fmt.Errorf("store.backend must be badger or memory, got %q", c.Store.Backend)
	}
	return nil
}

func (c *Config) validateSync() error {
	if c.Sync.PrefetchWorkers < 1 {
		return fmt.Errorf("sync.prefetch_workers must be at least 1, got %d", c.Sync.PrefetchWorkers)
	}
	if c.Sync.PrefetchPerSecond < 0 {
		return fmt.Errorf("sync.prefetch_per_second must not be negative, got %d", c.Sync.PrefetchPerSecond)
	}
	return nil
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("server.timeout must be positive, got %s", c.Server.Timeout)
	}
	if c.Server.RateLimitReqs < 1 {
		return fmt.Errorf("server.rate_limit_reqs must be at least 1, got %d", c.Server.RateLimitReqs)
	}
	return nil
}
