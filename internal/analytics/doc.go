// Gravitus - Workout Analytics and Strength Progress Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gravitus

// Package analytics derives dashboard figures from synced workouts:
// a flat set-level projection plus weekly, muscle, equipment and
// per-exercise progress aggregations.
package analytics
