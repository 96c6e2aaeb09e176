// Gravitus - Workout Analytics and Strength Progress Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gravitus

package api

import (
	"net/http"

	"github.com/goccy/go-json"

	"github.com/tomtom215/gravitus/internal/logging"
)

// Login handles POST /api/v1/login. Credentials are forwarded to the
// remote service and never stored; only the resulting session token is.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		rw.BadRequest("invalid request body")
		return
	}
	if req.EmailOrUsername == "" || req.Password == "" {
		rw.BadRequest("emailOrUsername and password are required")
		return
	}

	status := h.manager.Login(r.Context(), req.EmailOrUsername, req.Password)
	if status != http.StatusOK {
		logging.Ctx(r.Context()).Warn().Int("remote_status", status).Msg("Login failed")
		rw.RemoteError(status, "login rejected by remote service")
		return
	}

	rw.SuccessMessage("logged in")
}

// Logout handles POST /api/v1/logout. Synced data stays in the local
// store so the dashboard remains usable offline.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	if err := h.manager.Logout(); err != nil {
		rw.StoreError(err)
		return
	}
	rw.SuccessMessage("logged out")
}
