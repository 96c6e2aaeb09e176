// Gravitus - Workout Analytics and Strength Progress Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gravitus

package api

import (
	"net/http"
	"time"
)

// HealthStatus is the body of the health endpoint.
type HealthStatus struct {
	Status        string    `json:"status"`
	UptimeSeconds int64     `json:"uptime_seconds"`
	LoggedIn      bool      `json:"logged_in"`
	LastSync      time.Time `json:"last_sync"`
}

// Health handles GET /healthz. It reports process liveness plus the two
// facts a dashboard probe cares about: session presence and last
// successful sync.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	rw.Success(HealthStatus{
		Status:        "ok",
		UptimeSeconds: int64(time.Since(h.startTime).Seconds()),
		LoggedIn:      h.manager.Credentials().LoggedIn(),
		LastSync:      h.manager.LastSync(),
	})
}
