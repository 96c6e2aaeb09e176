// Gravitus - Workout Analytics and Strength Progress Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gravitus

/*
manager.go - Sync Manager Core

The Manager owns reconciliation between the remote Hevy-compatible API
and the local store. It runs three stream loops strictly in sequence:

 1. workout backfill   (index-cursor pages until an empty page)
 2. workout deltas     (full known-map upload, tombstones applied)
 3. routine deltas     (same protocol over the routines partition)

A stream is RUNNING while the remote reports more data, DONE when its
source is exhausted, and FAILED on the first non-2xx response. FAILED is
terminal for the run: later streams are skipped and the run reports the
failing stream's status. Pages already applied are never rolled back;
the next run resumes from whatever the store now holds.

Related files:
  - manager_sync.go:  the per-stream step functions
  - manager_login.go: login, logout and feed browsing
  - resource_updater.go: conditional singleton refreshes
*/

package sync

import (
	"context"
	"fmt"
	gosync "sync"
	"time"

	"github.com/tomtom215/gravitus/internal/auth"
	"github.com/tomtom215/gravitus/internal/config"
	"github.com/tomtom215/gravitus/internal/logging"
	"github.com/tomtom215/gravitus/internal/metrics"
	"github.com/tomtom215/gravitus/internal/store"
)

// streamState tracks one sync stream through a run.
type streamState int

const (
	stateRunning streamState = iota
	stateDone
	stateFailed
)

// Stream names, used in failure messages and metric labels.
const (
	streamWorkouts      = "workouts"
	streamWorkoutDeltas = "workout deltas"
	streamRoutines      = "routines"
)

// syncSuccessMessage is reported when every stream reaches DONE.
const syncSuccessMessage = "All workout data synced successfully!"

// Manager coordinates sync runs against the remote API. A single Manager
// is the sole writer of the workout and routine partitions; SyncAll
// serializes itself so overlapping triggers cannot interleave pages.
type Manager struct {
	cfg        *config.Config
	store      store.Store
	creds      *auth.Credentials
	client     Client
	resources  *ResourceUpdater
	prefetcher *ImagePrefetcher

	syncMu gosync.Mutex // serializes SyncAll runs

	mu       gosync.Mutex // guards lastSync
	lastSync time.Time
}

// NewManager creates a sync manager. The prefetcher may be nil, in which
// case feed image prefetch is disabled.
func NewManager(cfg *config.Config, s store.Store, client Client, prefetcher *ImagePrefetcher) *Manager {
	creds := auth.NewCredentials(s)
	return &Manager{
		cfg:        cfg,
		store:      s,
		creds:      creds,
		client:     client,
		resources:  NewResourceUpdater(s, client, creds, prefetcher),
		prefetcher: prefetcher,
	}
}

// Credentials exposes the session credential manager.
func (m *Manager) Credentials() *auth.Credentials {
	return m.creds
}

// Resources exposes the conditional resource updater.
func (m *Manager) Resources() *ResourceUpdater {
	return m.resources
}

// LastSync returns the completion time of the most recent successful run,
// zero if none has succeeded yet.
func (m *Manager) LastSync() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastSync
}

// stepFunc performs one page or poll of a stream. It reports whether the
// stream still has data, the HTTP status of the exchange, and any
// transport error. A transport error carries no usable status and is
// surfaced as 500.
type stepFunc func(ctx context.Context, token string) (more bool, status int, err error)

// SyncAll runs the full reconciliation: backfill, workout deltas, then
// routine deltas. It returns (true, success message) when every stream
// completes, or (false, "Error syncing <stream>: <status>") naming the
// first stream that failed. Concurrent calls queue behind syncMu.
func (m *Manager) SyncAll(ctx context.Context) (bool, string) {
	m.syncMu.Lock()
	defer m.syncMu.Unlock()

	start := time.Now()

	token, err := m.creds.Token()
	if err != nil {
		// No session: report the first stream as unauthorized without
		// touching the network.
		logging.Warn().Msg("Sync requested without a stored session")
		metrics.SyncErrors.WithLabelValues(streamWorkouts).Inc()
		metrics.RecordSyncRun(time.Since(start), false)
		return false, syncFailureMessage(streamWorkouts, 403)
	}

	streams := []struct {
		name string
		step stepFunc
	}{
		{streamWorkouts, m.stepBackfill},
		{streamWorkoutDeltas, m.stepWorkoutsDelta},
		{streamRoutines, m.stepRoutinesDelta},
	}

	for _, s := range streams {
		if status, ok := m.runStream(ctx, s.name, token, s.step); !ok {
			metrics.SyncErrors.WithLabelValues(s.name).Inc()
			metrics.RecordSyncRun(time.Since(start), false)
			return false, syncFailureMessage(s.name, status)
		}
	}

	m.mu.Lock()
	m.lastSync = time.Now()
	m.mu.Unlock()

	metrics.RecordSyncRun(time.Since(start), true)
	logging.Info().Dur("duration", time.Since(start)).Msg("Sync completed")
	return true, syncSuccessMessage
}

// runStream drives one stream from RUNNING to DONE or FAILED. It returns
// the failing status and false on the first non-2xx or transport error;
// pages applied before the failure stay applied.
func (m *Manager) runStream(ctx context.Context, name, token string, step stepFunc) (int, bool) {
	state := stateRunning
	for state == stateRunning {
		more, status, err := step(ctx, token)
		switch {
		case err != nil:
			logging.Error().Err(err).Str("stream", name).Msg("Sync stream transport failure")
			return 500, false
		case status < 200 || status >= 300:
			logging.Error().Int("status", status).Str("stream", name).Msg("Sync stream failed")
			return status, false
		case more:
			state = stateRunning
		default:
			state = stateDone
		}
	}
	return 200, true
}

// syncFailureMessage formats the user-facing failure string for a stream.
func syncFailureMessage(stream string, status int) string {
	return fmt.Sprintf("Error syncing %s: %d", stream, status)
}
