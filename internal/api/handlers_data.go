// Gravitus - Workout Analytics and Strength Progress Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gravitus

package api

import (
	"net/http"
	"sort"
	"strconv"
)

// Workouts handles GET /api/v1/workouts: the locally synced workout
// history, newest first.
func (h *Handler) Workouts(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	workouts, err := h.manager.Workouts()
	if err != nil {
		rw.StoreError(err)
		return
	}
	sort.Slice(workouts, func(i, j int) bool {
		return workouts[i].Index > workouts[j].Index
	})
	rw.Success(workouts)
}

// Routines handles GET /api/v1/routines: the locally synced routines,
// sorted by name.
func (h *Handler) Routines(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	routines, err := h.manager.Routines()
	if err != nil {
		rw.StoreError(err)
		return
	}
	sort.Slice(routines, func(i, j int) bool {
		return routines[i].Name < routines[j].Name
	})
	rw.Success(routines)
}

// Feed handles GET /api/v1/feed?from=N: one page of the remote social
// feed. Images on the page are queued for background download.
func (h *Handler) Feed(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	startFrom := 0
	if from := r.URL.Query().Get("from"); from != "" {
		n, err := strconv.Atoi(from)
		if err != nil || n < 0 {
			rw.BadRequest("from must be a non-negative integer")
			return
		}
		startFrom = n
	}

	status, feed := h.manager.FeedPage(r.Context(), startFrom)
	if status != http.StatusOK {
		rw.RemoteError(status, "feed fetch failed")
		return
	}
	rw.Success(feed)
}
