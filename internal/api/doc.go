// Gravitus - Workout Analytics and Strength Progress Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gravitus

// Package api is the HTTP surface of Gravitus: session management, sync
// triggers, synced data access and dashboard analytics, served over a
// Chi router with request tracing, rate limiting and Prometheus
// instrumentation.
package api
