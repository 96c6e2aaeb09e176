// Gravitus - Workout Analytics and Strength Progress Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gravitus

package api

import (
	"time"

	"github.com/tomtom215/gravitus/internal/config"
	"github.com/tomtom215/gravitus/internal/sync"
)

// Handler holds the dependencies shared by all HTTP handlers.
type Handler struct {
	cfg       *config.Config
	manager   *sync.Manager
	startTime time.Time
}

// NewHandler creates the API handler set.
func NewHandler(cfg *config.Config, manager *sync.Manager) *Handler {
	return &Handler{
		cfg:       cfg,
		manager:   manager,
		startTime: time.Now(),
	}
}

// LoginRequest is the body for POST /api/v1/login.
type LoginRequest struct {
	EmailOrUsername string `json:"emailOrUsername"`
	Password        string `json:"password"`
}

// SyncResult is the body of a sync trigger response.
type SyncResult struct {
	Synced  bool   `json:"synced"`
	Message string `json:"message"`
}
