// Gravitus - Workout Analytics and Strength Progress Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gravitus

/*
manager_sync.go - Sync Stream Step Functions

One step = one remote exchange plus its local application. Each step
recomputes its inputs from the store rather than carrying loop state, so
an interrupted run resumes correctly from whatever the previous run
persisted:

  - backfill:  cursor = max(stored workout index) + 1, fresh every page
  - deltas:    full {id: updated_at} map rebuilt from the store per poll

Applying a page is upserts keyed by record id (re-downloading a page is
a byte-for-byte no-op) and, for deltas, tombstone deletes.
*/

package sync

import (
	"context"
	"fmt"

	"github.com/goccy/go-json"

	"github.com/tomtom215/gravitus/internal/logging"
	"github.com/tomtom215/gravitus/internal/metrics"
	"github.com/tomtom215/gravitus/internal/models/hevy"
	"github.com/tomtom215/gravitus/internal/store"
)

// stepBackfill downloads one page of the workout backfill. The cursor is
// one past the highest index currently stored; an empty page means the
// remote history is exhausted.
func (m *Manager) stepBackfill(ctx context.Context, token string) (bool, int, error) {
	cursor, err := m.backfillCursor()
	if err != nil {
		return false, 0, err
	}

	status, workouts, err := m.client.BatchDownload(ctx, token, cursor)
	if err != nil {
		return false, 0, err
	}
	if status != 200 {
		return false, status, nil
	}

	metrics.SyncBatchSize.Observe(float64(len(workouts)))
	if len(workouts) == 0 {
		return false, status, nil
	}

	for i := range workouts {
		if err := m.putWorkout(&workouts[i]); err != nil {
			return false, 0, err
		}
	}
	metrics.SyncRecordsTotal.WithLabelValues(streamWorkouts, "upsert").Add(float64(len(workouts)))
	logging.Debug().Int("cursor", cursor).Int("count", len(workouts)).Msg("Applied backfill page")

	return true, status, nil
}

// backfillCursor computes the next index cursor from the stored workouts.
// Indices are assigned by the remote and never reused, so max+1 is always
// the first unseen slot; an empty store starts at 0.
func (m *Manager) backfillCursor() (int, error) {
	records, err := m.store.GetAll(store.PartitionWorkouts)
	if err != nil {
		return 0, fmt.Errorf("read workouts for cursor: %w", err)
	}

	cursor := 0
	for key, raw := range records {
		var w hevy.Workout
		if err := json.Unmarshal(raw, &w); err != nil {
			return 0, fmt.Errorf("decode stored workout %s: %w", key, err)
		}
		if w.Index+1 > cursor {
			cursor = w.Index + 1
		}
	}
	return cursor, nil
}

// stepWorkoutsDelta performs one poll of the workout delta endpoint,
// uploading the full known map and applying upserts then tombstones.
func (m *Manager) stepWorkoutsDelta(ctx context.Context, token string) (bool, int, error) {
	known, err := m.knownWorkouts()
	if err != nil {
		return false, 0, err
	}

	status, delta, err := m.client.WorkoutsDelta(ctx, token, known)
	if err != nil {
		return false, 0, err
	}
	if status != 200 {
		return false, status, nil
	}

	metrics.SyncBatchSize.Observe(float64(len(delta.Updated) + len(delta.Deleted)))
	for i := range delta.Updated {
		if err := m.putWorkout(&delta.Updated[i]); err != nil {
			return false, 0, err
		}
	}
	for _, id := range delta.Deleted {
		if err := m.store.Delete(store.PartitionWorkouts, id); err != nil {
			return false, 0, fmt.Errorf("delete workout %s: %w", id, err)
		}
	}
	metrics.SyncRecordsTotal.WithLabelValues(streamWorkoutDeltas, "upsert").Add(float64(len(delta.Updated)))
	metrics.SyncRecordsTotal.WithLabelValues(streamWorkoutDeltas, "delete").Add(float64(len(delta.Deleted)))
	logging.Debug().Int("updated", len(delta.Updated)).Int("deleted", len(delta.Deleted)).Bool("more", delta.IsMore).Msg("Applied workout delta")

	return delta.IsMore, status, nil
}

// stepRoutinesDelta is stepWorkoutsDelta over the routines partition.
func (m *Manager) stepRoutinesDelta(ctx context.Context, token string) (bool, int, error) {
	known, err := m.knownRoutines()
	if err != nil {
		return false, 0, err
	}

	status, delta, err := m.client.RoutinesDelta(ctx, token, known)
	if err != nil {
		return false, 0, err
	}
	if status != 200 {
		return false, status, nil
	}

	metrics.SyncBatchSize.Observe(float64(len(delta.Updated) + len(delta.Deleted)))
	for i := range delta.Updated {
		if err := m.putRoutine(&delta.Updated[i]); err != nil {
			return false, 0, err
		}
	}
	for _, id := range delta.Deleted {
		if err := m.store.Delete(store.PartitionRoutines, id); err != nil {
			return false, 0, fmt.Errorf("delete routine %s: %w", id, err)
		}
	}
	metrics.SyncRecordsTotal.WithLabelValues(streamRoutines, "upsert").Add(float64(len(delta.Updated)))
	metrics.SyncRecordsTotal.WithLabelValues(streamRoutines, "delete").Add(float64(len(delta.Deleted)))
	logging.Debug().Int("updated", len(delta.Updated)).Int("deleted", len(delta.Deleted)).Bool("more", delta.IsMore).Msg("Applied routine delta")

	return delta.IsMore, status, nil
}

// knownWorkouts builds the complete {id: updated_at} map the delta
// endpoint requires. The remote computes its answer against exactly this
// set, so every stored record must be present.
func (m *Manager) knownWorkouts() (map[string]string, error) {
	records, err := m.store.GetAll(store.PartitionWorkouts)
	if err != nil {
		return nil, fmt.Errorf("read workouts for delta: %w", err)
	}

	known := make(map[string]string, len(records))
	for key, raw := range records {
		var w hevy.Workout
		if err := json.Unmarshal(raw, &w); err != nil {
			return nil, fmt.Errorf("decode stored workout %s: %w", key, err)
		}
		known[w.ID] = w.UpdatedAt
	}
	return known, nil
}

// knownRoutines builds the {id: updated_at} map for the routine stream.
func (m *Manager) knownRoutines() (map[string]string, error) {
	records, err := m.store.GetAll(store.PartitionRoutines)
	if err != nil {
		return nil, fmt.Errorf("read routines for delta: %w", err)
	}

	known := make(map[string]string, len(records))
	for key, raw := range records {
		var r hevy.Routine
		if err := json.Unmarshal(raw, &r); err != nil {
			return nil, fmt.Errorf("decode stored routine %s: %w", key, err)
		}
		known[r.ID] = r.UpdatedAt
	}
	return known, nil
}

// putWorkout upserts one workout keyed by its remote id.
func (m *Manager) putWorkout(w *hevy.Workout) error {
	raw, err := json.Marshal(w)
	if err != nil {
		return fmt.Errorf("encode workout %s: %w", w.ID, err)
	}
	if err := m.store.Put(store.PartitionWorkouts, w.ID, raw); err != nil {
		return fmt.Errorf("store workout %s: %w", w.ID, err)
	}
	return nil
}

// putRoutine upserts one routine keyed by its remote id.
func (m *Manager) putRoutine(r *hevy.Routine) error {
	raw, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("encode routine %s: %w", r.ID, err)
	}
	if err := m.store.Put(store.PartitionRoutines, r.ID, raw); err != nil {
		return fmt.Errorf("store routine %s: %w", r.ID, err)
	}
	return nil
}
