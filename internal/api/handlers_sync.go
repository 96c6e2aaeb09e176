// Gravitus - Workout Analytics and Strength Progress Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gravitus

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Sync handles POST /api/v1/sync: one full reconciliation run. The
// result message names the failing stream and remote status verbatim so
// the dashboard can surface it directly.
func (h *Handler) Sync(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	ok, message := h.manager.SyncAll(r.Context())
	result := SyncResult{Synced: ok, Message: message}
	if !ok {
		rw.writeJSON(http.StatusBadGateway, APIResponse{
			Success: false,
			Data:    result,
			Error:   &APIError{Code: ErrCodeSyncFailed, Message: message},
			Meta:    rw.meta(),
		})
		return
	}
	rw.Success(result)
}

// RefreshResource handles POST /api/v1/resources/{name}/refresh: one
// conditional fetch of a singleton resource.
func (h *Handler) RefreshResource(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	name := chi.URLParam(r, "name")

	status := h.manager.Resources().Refresh(r.Context(), name)
	switch status {
	case http.StatusOK:
		rw.SuccessMessage("resource updated")
	case http.StatusNotModified:
		rw.SuccessMessage("resource unchanged")
	case http.StatusForbidden:
		rw.Forbidden("not logged in")
	case http.StatusNotFound:
		rw.NotFound("unknown resource: " + name)
	default:
		rw.RemoteError(status, "resource refresh failed")
	}
}

// Resource handles GET /api/v1/resources/{name}: the cached copy of a
// singleton resource, without touching the network.
func (h *Handler) Resource(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	name := chi.URLParam(r, "name")

	cached, err := h.manager.Resources().Cached(name)
	if err != nil {
		rw.NotFound("resource not cached: " + name)
		return
	}
	rw.Success(cached)
}
