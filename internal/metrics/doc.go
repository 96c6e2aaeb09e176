// Gravitus - Workout Analytics and Strength Progress Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gravitus

// Package metrics holds the Prometheus collectors shared across Gravitus.
// Collectors are registered at init via promauto and served on /metrics.
package metrics
