// Gravitus - Workout Analytics and Strength Progress Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gravitus

// Package hevy defines the wire types of the Hevy-compatible fitness API.
//
// The structs mirror the remote JSON exactly; anything Gravitus derives
// (set-level rows, aggregates) lives in internal/analytics instead.
package hevy
