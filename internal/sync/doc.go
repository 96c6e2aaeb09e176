// Gravitus - Workout Analytics and Strength Progress Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gravitus

// Package sync reconciles the remote Hevy-compatible fitness API with
// the local store: index-cursor backfill of workout history, delta
// polls with tombstones for workouts and routines, conditional refresh
// of singleton resources, and background feed image prefetch.
package sync
