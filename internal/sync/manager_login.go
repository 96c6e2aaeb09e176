// Gravitus - Workout Analytics and Strength Progress Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gravitus

/*
manager_login.go - Session Establishment and Feed Browsing

Login chains three exchanges: credentials for a token, then the account
resource to learn the user id, then the workout count so the dashboard
has a figure before the first sync. The profile image refresh rides
along best-effort.
*/

package sync

import (
	"context"

	"github.com/goccy/go-json"

	"github.com/tomtom215/gravitus/internal/logging"
	"github.com/tomtom215/gravitus/internal/models/hevy"
	"github.com/tomtom215/gravitus/internal/store"
)

// Login establishes a session with the remote service and returns the
// HTTP status of the first exchange that did not succeed, or 200. On
// success the token and user id are persisted and the account and
// workout count resources are cached.
func (m *Manager) Login(ctx context.Context, user, password string) int {
	status, resp, err := m.client.Login(ctx, user, password)
	if err != nil {
		logging.Error().Err(err).Msg("Login transport failure")
		return 500
	}
	if status != 200 {
		logging.Warn().Int("status", status).Msg("Login rejected")
		return status
	}

	accountStatus, body, etag, err := m.client.FetchResource(ctx, resp.AuthToken, "/account", "")
	if err != nil {
		logging.Error().Err(err).Msg("Account fetch transport failure during login")
		return 500
	}
	if accountStatus != 200 {
		return accountStatus
	}

	var account hevy.Account
	if err := json.Unmarshal(body, &account); err != nil {
		logging.Error().Err(err).Msg("Could not decode account during login")
		return 500
	}

	if err := m.creds.Store(resp.AuthToken, account.ID); err != nil {
		logging.Error().Err(err).Msg("Failed to persist session")
		return 500
	}
	if err := m.resources.storeResource("account", body, etag); err != nil {
		logging.Error().Err(err).Msg("Failed to cache account")
		return 500
	}
	m.resources.refreshProfileImage(body)

	// Prime the workout count; a failure here does not invalidate the
	// session that was just established.
	if countStatus := m.resources.Refresh(ctx, "workout_count"); countStatus != 200 {
		logging.Warn().Int("status", countStatus).Msg("Workout count priming failed")
	}

	logging.Info().Str("username", account.Username).Msg("Login succeeded")
	return 200
}

// Logout drops the stored session. Synced data stays available offline.
func (m *Manager) Logout() error {
	return m.creds.Clear()
}

// FeedPage fetches one page of the social feed and queues its workout
// images for background download. startFrom 0 requests the feed head.
func (m *Manager) FeedPage(ctx context.Context, startFrom int) (int, *hevy.Feed) {
	token, err := m.creds.Token()
	if err != nil {
		return 403, nil
	}

	status, feed, err := m.client.FeedPaged(ctx, token, startFrom)
	if err != nil {
		logging.Error().Err(err).Msg("Feed fetch transport failure")
		return 500, nil
	}
	if status != 200 {
		return status, nil
	}

	if m.prefetcher != nil {
		for i := range feed.Workouts {
			m.prefetcher.Prefetch(feed.Workouts[i].ImageURLs)
		}
	}
	return status, feed
}

// Workouts returns all locally stored workouts, decoded.
func (m *Manager) Workouts() ([]hevy.Workout, error) {
	records, err := m.store.GetAll(store.PartitionWorkouts)
	if err != nil {
		return nil, err
	}
	workouts := make([]hevy.Workout, 0, len(records))
	for key, raw := range records {
		var w hevy.Workout
		if err := json.Unmarshal(raw, &w); err != nil {
			logging.Warn().Err(err).Str("key", key).Msg("Skipping undecodable workout")
			continue
		}
		workouts = append(workouts, w)
	}
	return workouts, nil
}

// Routines returns all locally stored routines, decoded.
func (m *Manager) Routines() ([]hevy.Routine, error) {
	records, err := m.store.GetAll(store.PartitionRoutines)
	if err != nil {
		return nil, err
	}
	routines := make([]hevy.Routine, 0, len(records))
	for key, raw := range records {
		var r hevy.Routine
		if err := json.Unmarshal(raw, &r); err != nil {
			logging.Warn().Err(err).Str("key", key).Msg("Skipping undecodable routine")
			continue
		}
		routines = append(routines, r)
	}
	return routines, nil
}
