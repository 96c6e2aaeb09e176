// Gravitus - Workout Analytics and Strength Progress Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gravitus

/*
handlers_analytics.go - Dashboard Analytics Endpoints

Aggregations are recomputed from the store per request. A single user's
history is small; recomputation keeps the endpoints consistent with the
last sync without cache invalidation machinery.
*/

package api

import (
	"net/http"

	"github.com/tomtom215/gravitus/internal/analytics"
	"github.com/tomtom215/gravitus/internal/models/hevy"
)

// loadProjection reads the synced workouts and flattens them. Returns
// false after writing the error response.
func (h *Handler) loadProjection(rw *ResponseWriter) ([]hevy.Workout, []analytics.SetRow, bool) {
	workouts, err := h.manager.Workouts()
	if err != nil {
		rw.StoreError(err)
		return nil, nil, false
	}
	return workouts, analytics.Flatten(workouts), true
}

// AnalyticsSets handles GET /api/v1/analytics/sets: the flat set-level
// projection the dashboard charts are built from.
func (h *Handler) AnalyticsSets(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	if _, rows, ok := h.loadProjection(rw); ok {
		rw.Success(rows)
	}
}

// AnalyticsFrequency handles GET /api/v1/analytics/frequency: workouts,
// working sets and volume per ISO week.
func (h *Handler) AnalyticsFrequency(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	if workouts, rows, ok := h.loadProjection(rw); ok {
		rw.Success(analytics.WeeklyBuckets(workouts, rows))
	}
}

// AnalyticsVolume is an alias of the weekly buckets focused on volume.
// Kept as its own endpoint so the dashboard volume chart has a stable
// URL independent of the frequency chart.
func (h *Handler) AnalyticsVolume(w http.ResponseWriter, r *http.Request) {
	h.AnalyticsFrequency(w, r)
}

// AnalyticsMuscles handles GET /api/v1/analytics/muscles: training share
// per primary muscle group.
func (h *Handler) AnalyticsMuscles(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	if _, rows, ok := h.loadProjection(rw); ok {
		rw.Success(analytics.MuscleBreakdown(rows))
	}
}

// AnalyticsEquipment handles GET /api/v1/analytics/equipment: training
// share per equipment category.
func (h *Handler) AnalyticsEquipment(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	if _, rows, ok := h.loadProjection(rw); ok {
		rw.Success(analytics.EquipmentBreakdown(rows))
	}
}

// AnalyticsProgress handles GET /api/v1/analytics/progress?exercise=T:
// per-workout best efforts for one exercise over time.
func (h *Handler) AnalyticsProgress(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	exercise := r.URL.Query().Get("exercise")
	if exercise == "" {
		rw.BadRequest("exercise query parameter is required")
		return
	}

	if _, rows, ok := h.loadProjection(rw); ok {
		rw.Success(analytics.ExerciseProgress(rows, exercise))
	}
}
