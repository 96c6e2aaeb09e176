// Gravitus - Workout Analytics and Strength Progress Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gravitus

package hevy

// Routine is a saved exercise template. Routines share the workout's delta
// sync semantics but carry no index: the remote exposes no historical
// backfill for them, so delta sync is the only reconciliation path.
type Routine struct {
	ID        string     `json:"id"`
	Name      string     `json:"title"`
	Notes     string     `json:"notes"`
	CreatedAt string     `json:"created_at"`
	UpdatedAt string     `json:"updated_at"`
	Exercises []Exercise `json:"exercises"`
}
