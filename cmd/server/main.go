// Gravitus - Workout Analytics and Strength Progress Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gravitus

// Package main is the entry point for the Gravitus server application.
//
// Gravitus is a self-hosted personal fitness analytics dashboard. It
// synchronizes workout history, routines and account data from a
// Hevy-compatible fitness service into a local store and serves
// strength-progress analytics over a REST API.
//
// # Application Architecture
//
// The server initializes components in the following order:
//
//  1. Configuration: Load settings from environment variables and config files (Koanf v2)
//  2. Store: Open the local BadgerDB (or in-memory) store
//  3. Remote client: Hevy API client wrapped in a circuit breaker
//  4. Image prefetcher: rate-limited background download pool
//  5. Sync Manager: backfill + delta reconciliation engine
//  6. HTTP Server: REST API with health and Prometheus metrics endpoints
//
// # Configuration
//
// Configuration is loaded via Koanf v2 with layered sources (highest priority wins):
//   - Environment variables with the GRAVITUS_ prefix
//   - Config file (config.yaml, or CONFIG_PATH)
//   - Built-in defaults
//
// # Signal Handling
//
// The server handles graceful shutdown on SIGINT and SIGTERM:
//   - Stops accepting new connections
//   - Waits for in-flight requests to complete (10s timeout)
//   - Stops the image prefetch pool and closes the store
//
// # Example Usage
//
//	export GRAVITUS_STORE_PATH=/data/gravitus
//	export GRAVITUS_SERVER_PORT=4148
//	./gravitus
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/gravitus/internal/api"
	"github.com/tomtom215/gravitus/internal/config"
	"github.com/tomtom215/gravitus/internal/logging"
	"github.com/tomtom215/gravitus/internal/store"
	"github.com/tomtom215/gravitus/internal/sync"
)

func main() {
	// Load configuration first to get logging settings
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("hevy_url", cfg.Hevy.BaseURL).
		Str("store_backend", cfg.Store.Backend).
		Str("store_path", cfg.Store.Path).
		Msg("Configuration loaded")

	s, err := openStore(cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to open store")
	}
	defer func() {
		if err := s.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing store")
		}
	}()
	logging.Info().Msg("Store opened successfully")

	// Remote client with circuit breaker for fault tolerance. The breaker
	// prevents hammering the Hevy API when it is unavailable.
	client := sync.NewCircuitBreakerClient(&cfg.Hevy)

	prefetcher := sync.NewImagePrefetcher(s, client, cfg.Sync.PrefetchWorkers, cfg.Sync.PrefetchPerSecond)
	defer prefetcher.Close()

	manager := sync.NewManager(cfg, s, client, prefetcher)
	if manager.Credentials().LoggedIn() {
		logging.Info().Msg("Stored session found")
	} else {
		logging.Info().Msg("No stored session - login required before first sync")
	}

	router := api.NewRouter(cfg, manager)

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router.Setup(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       120 * time.Second,
	}

	// Start the server and wait for a shutdown signal.
	errCh := make(chan error, 1)
	go func() {
		logging.Info().Str("addr", server.Addr).Msg("Starting HTTP server")
		errCh <- server.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logging.Info().Str("signal", sig.String()).Msg("Shutdown signal received")
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal().Err(err).Msg("HTTP server failed")
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logging.Error().Err(err).Msg("Graceful shutdown failed")
	}
	logging.Info().Msg("Server stopped")
}

// openStore opens the configured store backend.
func openStore(cfg *config.Config) (store.Store, error) {
	switch cfg.Store.Backend {
	case "badger":
		return store.OpenBadger(cfg.Store.Path)
	case "memory":
		return store.NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown store backend: %s", cfg.Store.Backend)
	}
}
