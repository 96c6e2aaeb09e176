// Gravitus - Workout Analytics and Strength Progress Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gravitus

/*
resource_updater.go - Conditional Singleton Resource Refresh

Small remote singletons (account, preferences, body measurements, ...)
are refreshed with conditional GETs: the validation token from the last
200 is replayed as If-None-Match, and a 304 proves the cached copy is
current without transferring the body.

Body and validation token are persisted as one record, so a crash can
never leave a token that vouches for a body it does not belong to.
*/

package sync

import (
	"context"
	"fmt"

	"github.com/goccy/go-json"

	"github.com/tomtom215/gravitus/internal/auth"
	"github.com/tomtom215/gravitus/internal/logging"
	"github.com/tomtom215/gravitus/internal/metrics"
	"github.com/tomtom215/gravitus/internal/models/hevy"
	"github.com/tomtom215/gravitus/internal/store"
)

// resourcePaths maps refreshable resource names to their remote paths.
// Names outside this set are rejected with 404 before any network call.
var resourcePaths = map[string]string{
	"account":              "/account",
	"user_preferences":     "/user_preferences",
	"body_measurements":    "/body_measurements",
	"workout_count":        "/workout_count",
	"set_personal_records": "/set_personal_records",
	"user_subscription":    "/user_subscription",
}

// CachedResource is the stored form of a singleton resource: the raw
// response body plus the validation token that vouches for it.
type CachedResource struct {
	Data json.RawMessage `json:"data"`
	ETag string          `json:"etag"`
}

// ResourceUpdater refreshes cached singleton resources.
type ResourceUpdater struct {
	store      store.Store
	client     Client
	creds      *auth.Credentials
	prefetcher *ImagePrefetcher
}

// NewResourceUpdater creates a resource updater. The prefetcher may be
// nil, which disables the best-effort profile image refresh.
func NewResourceUpdater(s store.Store, client Client, creds *auth.Credentials, prefetcher *ImagePrefetcher) *ResourceUpdater {
	return &ResourceUpdater{
		store:      s,
		client:     client,
		creds:      creds,
		prefetcher: prefetcher,
	}
}

// Names returns the refreshable resource names.
func Names() []string {
	names := make([]string, 0, len(resourcePaths))
	for name := range resourcePaths {
		names = append(names, name)
	}
	return names
}

// Cached returns the stored copy of a resource, or store.ErrKeyNotFound
// if it has never been fetched.
func (r *ResourceUpdater) Cached(name string) (*CachedResource, error) {
	raw, err := r.store.Get(store.PartitionResources, name)
	if err != nil {
		return nil, err
	}
	var cached CachedResource
	if err := json.Unmarshal(raw, &cached); err != nil {
		return nil, fmt.Errorf("decode cached resource %s: %w", name, err)
	}
	return &cached, nil
}

// Refresh performs one conditional fetch of the named resource and
// returns the HTTP status of the exchange. 403 means no session and 404
// an unknown name; neither touches the network. On 304 the cache is left
// untouched. Transport failures report 500.
func (r *ResourceUpdater) Refresh(ctx context.Context, name string) int {
	token, err := r.creds.Token()
	if err != nil {
		metrics.ResourceRefreshTotal.WithLabelValues(name, "error").Inc()
		return 403
	}

	path, ok := resourcePaths[name]
	if !ok {
		metrics.ResourceRefreshTotal.WithLabelValues(name, "error").Inc()
		return 404
	}

	etag := ""
	if cached, err := r.Cached(name); err == nil {
		etag = cached.ETag
	}

	status, body, newETag, err := r.client.FetchResource(ctx, token, path, etag)
	if err != nil {
		logging.Error().Err(err).Str("resource", name).Msg("Resource refresh transport failure")
		metrics.ResourceRefreshTotal.WithLabelValues(name, "error").Inc()
		return 500
	}

	switch status {
	case 200:
		if err := r.storeResource(name, body, newETag); err != nil {
			logging.Error().Err(err).Str("resource", name).Msg("Failed to store refreshed resource")
			metrics.ResourceRefreshTotal.WithLabelValues(name, "error").Inc()
			return 500
		}
		metrics.ResourceRefreshTotal.WithLabelValues(name, "updated").Inc()
		if name == "account" {
			r.refreshProfileImage(body)
		}
	case 304:
		metrics.ResourceRefreshTotal.WithLabelValues(name, "not_modified").Inc()
		logging.Debug().Str("resource", name).Msg("Resource unchanged")
	default:
		metrics.ResourceRefreshTotal.WithLabelValues(name, "error").Inc()
		logging.Warn().Int("status", status).Str("resource", name).Msg("Resource refresh rejected")
	}
	return status
}

// storeResource persists body and validation token as a single record.
func (r *ResourceUpdater) storeResource(name string, body []byte, etag string) error {
	raw, err := json.Marshal(CachedResource{Data: body, ETag: etag})
	if err != nil {
		return fmt.Errorf("encode resource %s: %w", name, err)
	}
	return r.store.Put(store.PartitionResources, name, raw)
}

// refreshProfileImage re-fetches the account profile picture after an
// account update. Best effort: failures are logged and swallowed, the
// account refresh itself already succeeded.
func (r *ResourceUpdater) refreshProfileImage(accountBody []byte) {
	if r.prefetcher == nil {
		return
	}

	var account hevy.Account
	if err := json.Unmarshal(accountBody, &account); err != nil {
		logging.Warn().Err(err).Msg("Could not decode account for profile image refresh")
		return
	}
	if account.ProfilePic == "" {
		return
	}
	r.prefetcher.Prefetch([]string{account.ProfilePic})
}
