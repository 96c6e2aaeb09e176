// Gravitus - Workout Analytics and Strength Progress Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gravitus

package sync

import (
	"context"
	gosync "sync"

	"github.com/tomtom215/gravitus/internal/models/hevy"
)

// fakeClient is a scriptable Client. Each call is recorded in calls;
// unset function fields answer with a benign empty success so tests
// only script the exchanges they care about.
type fakeClient struct {
	loginFn    func(user, password string) (int, *hevy.LoginResponse, error)
	batchFn    func(cursor int) (int, []hevy.Workout, error)
	wDeltaFn   func(known map[string]string) (int, *hevy.WorkoutSyncResponse, error)
	rDeltaFn   func(known map[string]string) (int, *hevy.RoutineSyncResponse, error)
	resourceFn func(path, etag string) (int, []byte, string, error)
	feedFn     func(startFrom int) (int, *hevy.Feed, error)
	imageFn    func(url string) ([]byte, error)

	mu    gosync.Mutex
	calls []string
}

func (f *fakeClient) record(name string) {
	f.mu.Lock()
	f.calls = append(f.calls, name)
	f.mu.Unlock()
}

func (f *fakeClient) callCount(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c == name {
			n++
		}
	}
	return n
}

func (f *fakeClient) Login(_ context.Context, user, password string) (int, *hevy.LoginResponse, error) {
	f.record("login")
	if f.loginFn != nil {
		return f.loginFn(user, password)
	}
	return 200, &hevy.LoginResponse{AuthToken: "fake-token"}, nil
}

func (f *fakeClient) BatchDownload(_ context.Context, _ string, cursor int) (int, []hevy.Workout, error) {
	f.record("batch")
	if f.batchFn != nil {
		return f.batchFn(cursor)
	}
	return 200, nil, nil
}

func (f *fakeClient) WorkoutsDelta(_ context.Context, _ string, known map[string]string) (int, *hevy.WorkoutSyncResponse, error) {
	f.record("workouts_delta")
	if f.wDeltaFn != nil {
		return f.wDeltaFn(known)
	}
	return 200, &hevy.WorkoutSyncResponse{}, nil
}

func (f *fakeClient) RoutinesDelta(_ context.Context, _ string, known map[string]string) (int, *hevy.RoutineSyncResponse, error) {
	f.record("routines_delta")
	if f.rDeltaFn != nil {
		return f.rDeltaFn(known)
	}
	return 200, &hevy.RoutineSyncResponse{}, nil
}

func (f *fakeClient) FetchResource(_ context.Context, _, path, etag string) (int, []byte, string, error) {
	f.record("resource " + path)
	if f.resourceFn != nil {
		return f.resourceFn(path, etag)
	}
	return 200, []byte(`{}`), "", nil
}

func (f *fakeClient) FeedPaged(_ context.Context, _ string, startFrom int) (int, *hevy.Feed, error) {
	f.record("feed")
	if f.feedFn != nil {
		return f.feedFn(startFrom)
	}
	return 200, &hevy.Feed{}, nil
}

func (f *fakeClient) FetchImage(_ context.Context, url string) ([]byte, error) {
	f.record("image")
	if f.imageFn != nil {
		return f.imageFn(url)
	}
	return []byte("img"), nil
}
