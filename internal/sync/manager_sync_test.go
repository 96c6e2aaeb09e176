// Gravitus - Workout Analytics and Strength Progress Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gravitus

package sync

import (
	"context"
	"fmt"
	"reflect"
	"testing"

	"github.com/goccy/go-json"

	"github.com/tomtom215/gravitus/internal/config"
	"github.com/tomtom215/gravitus/internal/models/hevy"
	"github.com/tomtom215/gravitus/internal/store"
)

func newTestManager(t *testing.T, client Client) (*Manager, store.Store) {
	t.Helper()
	s := store.NewMemoryStore()
	cfg := &config.Config{}
	m := NewManager(cfg, s, client, nil)
	return m, s
}

func loggedInManager(t *testing.T, client Client) (*Manager, store.Store) {
	t.Helper()
	m, s := newTestManager(t, client)
	checkNoError(t, m.Credentials().Store("test-token", "user-1"))
	return m, s
}

func mkWorkout(id string, index int, updatedAt string) hevy.Workout {
	return hevy.Workout{ID: id, Index: index, Name: "Workout " + id, UpdatedAt: updatedAt}
}

func storedWorkouts(t *testing.T, s store.Store) map[string]hevy.Workout {
	t.Helper()
	records, err := s.GetAll(store.PartitionWorkouts)
	checkNoError(t, err)
	out := make(map[string]hevy.Workout, len(records))
	for key, raw := range records {
		var w hevy.Workout
		checkNoError(t, json.Unmarshal(raw, &w))
		out[key] = w
	}
	return out
}

func TestSyncAllRequiresLogin(t *testing.T) {
	client := &fakeClient{}
	m, _ := newTestManager(t, client)

	ok, msg := m.SyncAll(context.Background())
	checkTrue(t, "sync rejected", !ok)
	checkStringEqual(t, "message", msg, "Error syncing workouts: 403")
	checkIntEqual(t, "network calls", len(client.calls), 0)
}

func TestSyncAllBackfillUnionsPages(t *testing.T) {
	pages := map[int][]hevy.Workout{
		0: {mkWorkout("w0", 0, "t0"), mkWorkout("w1", 1, "t1")},
		2: {mkWorkout("w2", 2, "t2")},
	}
	client := &fakeClient{
		batchFn: func(cursor int) (int, []hevy.Workout, error) {
			return 200, pages[cursor], nil
		},
	}
	m, s := loggedInManager(t, client)

	ok, msg := m.SyncAll(context.Background())
	checkTrue(t, "sync succeeded", ok)
	checkStringEqual(t, "message", msg, "All workout data synced successfully!")

	stored := storedWorkouts(t, s)
	checkIntEqual(t, "stored workouts", len(stored), 3)
	for _, id := range []string{"w0", "w1", "w2"} {
		if _, ok := stored[id]; !ok {
			t.Errorf("workout %s missing from store", id)
		}
	}
	// Pages at cursors 0, 2 and the empty page at 3.
	checkIntEqual(t, "batch calls", client.callCount("batch"), 3)
}

func TestSyncAllIsIdempotent(t *testing.T) {
	pages := map[int][]hevy.Workout{
		0: {mkWorkout("w0", 0, "t0"), mkWorkout("w1", 1, "t1")},
	}
	client := &fakeClient{
		batchFn: func(cursor int) (int, []hevy.Workout, error) {
			return 200, pages[cursor], nil
		},
	}
	m, s := loggedInManager(t, client)

	ok, _ := m.SyncAll(context.Background())
	checkTrue(t, "first sync succeeded", ok)
	first, err := s.GetAll(store.PartitionWorkouts)
	checkNoError(t, err)

	ok, _ = m.SyncAll(context.Background())
	checkTrue(t, "second sync succeeded", ok)
	second, err := s.GetAll(store.PartitionWorkouts)
	checkNoError(t, err)

	if !reflect.DeepEqual(first, second) {
		t.Error("store changed across a re-sync with no remote changes")
	}
}

func TestBackfillCursorIsMaxIndexPlusOne(t *testing.T) {
	m, s := newTestManager(t, &fakeClient{})

	for _, w := range []hevy.Workout{mkWorkout("a", 0, ""), mkWorkout("b", 2, ""), mkWorkout("c", 5, "")} {
		raw, err := json.Marshal(w)
		checkNoError(t, err)
		checkNoError(t, s.Put(store.PartitionWorkouts, w.ID, raw))
	}

	cursor, err := m.backfillCursor()
	checkNoError(t, err)
	checkIntEqual(t, "cursor", cursor, 6)
}

func TestBackfillCursorEmptyStore(t *testing.T) {
	m, _ := newTestManager(t, &fakeClient{})
	cursor, err := m.backfillCursor()
	checkNoError(t, err)
	checkIntEqual(t, "cursor", cursor, 0)
}

func TestSyncAllKeepsAppliedPagesOnFailure(t *testing.T) {
	page := make([]hevy.Workout, 30)
	for i := range page {
		page[i] = mkWorkout(fmt.Sprintf("w%02d", i), i, "t")
	}
	client := &fakeClient{
		batchFn: func(cursor int) (int, []hevy.Workout, error) {
			if cursor == 0 {
				return 200, page, nil
			}
			return 500, nil, nil
		},
	}
	m, s := loggedInManager(t, client)

	ok, msg := m.SyncAll(context.Background())
	checkTrue(t, "sync failed", !ok)
	checkStringEqual(t, "message", msg, "Error syncing workouts: 500")

	checkIntEqual(t, "stored workouts", len(storedWorkouts(t, s)), 30)
	// A failed stream short-circuits the rest of the run.
	checkIntEqual(t, "workout delta calls", client.callCount("workouts_delta"), 0)
	checkIntEqual(t, "routine delta calls", client.callCount("routines_delta"), 0)
}

func TestSyncAllTransportErrorReportsAs500(t *testing.T) {
	client := &fakeClient{
		batchFn: func(int) (int, []hevy.Workout, error) {
			return 0, nil, fmt.Errorf("connection refused")
		},
	}
	m, _ := loggedInManager(t, client)

	ok, msg := m.SyncAll(context.Background())
	checkTrue(t, "sync failed", !ok)
	checkStringEqual(t, "message", msg, "Error syncing workouts: 500")
}

func TestSyncAllDeltaFailureNamesStream(t *testing.T) {
	tests := []struct {
		name   string
		client *fakeClient
		want   string
	}{
		{
			name: "workout deltas",
			client: &fakeClient{
				wDeltaFn: func(map[string]string) (int, *hevy.WorkoutSyncResponse, error) {
					return 404, nil, nil
				},
			},
			want: "Error syncing workout deltas: 404",
		},
		{
			name: "routines",
			client: &fakeClient{
				rDeltaFn: func(map[string]string) (int, *hevy.RoutineSyncResponse, error) {
					return 502, nil, nil
				},
			},
			want: "Error syncing routines: 502",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := loggedInManager(t, tt.client)
			ok, msg := m.SyncAll(context.Background())
			checkTrue(t, "sync failed", !ok)
			checkStringEqual(t, "message", msg, tt.want)
		})
	}
}

func TestWorkoutDeltaAppliesUpsertsAndTombstones(t *testing.T) {
	var uploaded map[string]string
	client := &fakeClient{
		wDeltaFn: func(known map[string]string) (int, *hevy.WorkoutSyncResponse, error) {
			uploaded = known
			return 200, &hevy.WorkoutSyncResponse{
				Updated: []hevy.Workout{mkWorkout("w2", 1, "t2-new")},
				Deleted: []string{"w1"},
			}, nil
		},
	}
	m, s := loggedInManager(t, client)

	for _, w := range []hevy.Workout{mkWorkout("w1", 0, "t1"), mkWorkout("w2", 1, "t2")} {
		checkNoError(t, m.putWorkout(&w))
	}

	ok, _ := m.SyncAll(context.Background())
	checkTrue(t, "sync succeeded", ok)

	// The full known map is uploaded, not a subset.
	checkIntEqual(t, "uploaded map size", len(uploaded), 2)
	checkStringEqual(t, "uploaded w1", uploaded["w1"], "t1")
	checkStringEqual(t, "uploaded w2", uploaded["w2"], "t2")

	stored := storedWorkouts(t, s)
	checkIntEqual(t, "stored workouts", len(stored), 1)
	checkStringEqual(t, "surviving workout updated_at", stored["w2"].UpdatedAt, "t2-new")
}

func TestWorkoutDeltaPollsUntilExhausted(t *testing.T) {
	polls := 0
	client := &fakeClient{
		wDeltaFn: func(map[string]string) (int, *hevy.WorkoutSyncResponse, error) {
			polls++
			if polls == 1 {
				return 200, &hevy.WorkoutSyncResponse{
					Updated: []hevy.Workout{mkWorkout("w1", 0, "t1")},
					IsMore:  true,
				}, nil
			}
			return 200, &hevy.WorkoutSyncResponse{}, nil
		},
	}
	m, s := loggedInManager(t, client)

	ok, _ := m.SyncAll(context.Background())
	checkTrue(t, "sync succeeded", ok)
	checkIntEqual(t, "delta polls", polls, 2)
	checkIntEqual(t, "stored workouts", len(storedWorkouts(t, s)), 1)
}

func TestRoutineDeltaAppliesTombstones(t *testing.T) {
	client := &fakeClient{
		rDeltaFn: func(known map[string]string) (int, *hevy.RoutineSyncResponse, error) {
			return 200, &hevy.RoutineSyncResponse{
				Updated: []hevy.Routine{{ID: "r2", Name: "Push Day", UpdatedAt: "t2"}},
				Deleted: []string{"r1"},
			}, nil
		},
	}
	m, s := loggedInManager(t, client)
	checkNoError(t, m.putRoutine(&hevy.Routine{ID: "r1", Name: "Old", UpdatedAt: "t1"}))

	ok, _ := m.SyncAll(context.Background())
	checkTrue(t, "sync succeeded", ok)

	records, err := s.GetAll(store.PartitionRoutines)
	checkNoError(t, err)
	checkIntEqual(t, "stored routines", len(records), 1)
	if _, ok := records["r2"]; !ok {
		t.Error("routine r2 missing from store")
	}
}

func TestSyncAllStreamsRunInOrder(t *testing.T) {
	client := &fakeClient{}
	m, _ := loggedInManager(t, client)

	ok, _ := m.SyncAll(context.Background())
	checkTrue(t, "sync succeeded", ok)

	want := []string{"batch", "workouts_delta", "routines_delta"}
	if !reflect.DeepEqual(client.calls, want) {
		t.Errorf("call order = %v, want %v", client.calls, want)
	}
}

func TestLastSyncSetOnSuccessOnly(t *testing.T) {
	failing := &fakeClient{
		batchFn: func(int) (int, []hevy.Workout, error) { return 500, nil, nil },
	}
	m, _ := loggedInManager(t, failing)

	if ok, _ := m.SyncAll(context.Background()); ok {
		t.Fatal("expected failure")
	}
	checkTrue(t, "last sync unset after failure", m.LastSync().IsZero())

	m2, _ := loggedInManager(t, &fakeClient{})
	if ok, _ := m2.SyncAll(context.Background()); !ok {
		t.Fatal("expected success")
	}
	checkTrue(t, "last sync set after success", !m2.LastSync().IsZero())
}

func TestEndToEndBackfillThenDelta(t *testing.T) {
	// 50 workouts served in pages of 20.
	history := make([]hevy.Workout, 50)
	for i := range history {
		history[i] = mkWorkout(fmt.Sprintf("w%02d", i), i, "t")
	}
	client := &fakeClient{
		batchFn: func(cursor int) (int, []hevy.Workout, error) {
			if cursor >= len(history) {
				return 200, nil, nil
			}
			end := cursor + 20
			if end > len(history) {
				end = len(history)
			}
			return 200, history[cursor:end], nil
		},
	}
	m, s := loggedInManager(t, client)

	ok, msg := m.SyncAll(context.Background())
	checkTrue(t, "sync succeeded", ok)
	checkStringEqual(t, "message", msg, "All workout data synced successfully!")
	checkIntEqual(t, "stored workouts", len(storedWorkouts(t, s)), 50)

	// A later delta edits one workout and deletes another.
	client.wDeltaFn = func(known map[string]string) (int, *hevy.WorkoutSyncResponse, error) {
		checkIntEqual(t, "known map size", len(known), 50)
		return 200, &hevy.WorkoutSyncResponse{
			Updated: []hevy.Workout{mkWorkout("w10", 10, "t-edited")},
			Deleted: []string{"w20"},
		}, nil
	}

	ok, _ = m.SyncAll(context.Background())
	checkTrue(t, "second sync succeeded", ok)

	stored := storedWorkouts(t, s)
	checkIntEqual(t, "stored workouts after delta", len(stored), 49)
	checkStringEqual(t, "edited workout", stored["w10"].UpdatedAt, "t-edited")
	if _, exists := stored["w20"]; exists {
		t.Error("tombstoned workout w20 still in store")
	}
}
