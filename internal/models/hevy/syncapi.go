// Gravitus - Workout Analytics and Strength Progress Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gravitus

package hevy

// LoginRequest is the body posted to /login.
type LoginRequest struct {
	EmailOrUsername string `json:"emailOrUsername"`
	Password        string `json:"password"`
}

// LoginResponse is the 200 body from /login. The token is opaque and is
// replayed on every authenticated call in the auth-token header.
type LoginResponse struct {
	AuthToken string `json:"auth_token"`
}

// WorkoutSyncResponse is the 200 body from /workouts_sync_batch.
//
// Updated carries full-record replacements, Deleted carries tombstone ids
// for workouts removed out of band, and IsMore tells the caller to poll
// again with the refreshed known-id map.
type WorkoutSyncResponse struct {
	Updated []Workout `json:"updated"`
	Deleted []string  `json:"deleted"`
	IsMore  bool      `json:"isMore"`
}

// RoutineSyncResponse is the 200 body from /routines_sync_batch, shaped
// identically to the workout variant.
type RoutineSyncResponse struct {
	Updated []Routine `json:"updated"`
	Deleted []string  `json:"deleted"`
	IsMore  bool      `json:"isMore"`
}

// Feed is the 200 body from /feed_workouts_paged. The feed is a social
// timeline; its workouts carry image URLs which are prefetched in the
// background for display.
type Feed struct {
	Workouts []Workout `json:"workouts"`
}

// Account is the profile payload from /account. Only the fields Gravitus
// reads are decoded; the raw payload is what gets cached.
type Account struct {
	ID         string `json:"id"`
	Username   string `json:"username"`
	ProfilePic string `json:"profile_pic"`
}
