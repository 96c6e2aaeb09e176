// Gravitus - Workout Analytics and Strength Progress Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gravitus

/*
hevy_client.go - Core Hevy API Client

This file provides the HevyClient struct and HTTP communication layer for
the Hevy-compatible fitness API.

Client semantics:
  - Exactly one HTTP exchange per call; no retries and no loops. Paging
    and re-polling belong to the sync Manager, fail-fast protection to
    the CircuitBreakerClient wrapper.
  - Every call takes a context for cancellation and timeout.
  - Status codes are returned alongside payloads so the Manager can
    surface them verbatim; a transport-level failure returns an error
    with status 0.

Related files:
  - circuit_breaker.go: fail-fast wrapper around this client
  - manager_sync.go:    the reconciliation loops driving these calls
  - resource_updater.go: conditional singleton fetches
*/

package sync

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/tomtom215/gravitus/internal/config"
	"github.com/tomtom215/gravitus/internal/models/hevy"
)

// maxImageSize caps profile/feed image downloads to keep a hostile or
// misconfigured CDN from exhausting memory.
const maxImageSize = 8 << 20 // 8MB

// Client is the remote-service surface the sync engine depends on.
// HevyClient implements it for production; tests substitute fakes.
//
// All methods are safe for concurrent use.
type Client interface {
	// Login exchanges credentials for an auth token.
	Login(ctx context.Context, user, password string) (int, *hevy.LoginResponse, error)

	// BatchDownload fetches the page of workouts starting at the index
	// cursor. An empty page signals the backfill is exhausted.
	BatchDownload(ctx context.Context, token string, cursor int) (int, []hevy.Workout, error)

	// WorkoutsDelta uploads the full known {id: updated_at} map and
	// returns the remote's changes since those timestamps.
	WorkoutsDelta(ctx context.Context, token string, known map[string]string) (int, *hevy.WorkoutSyncResponse, error)

	// RoutinesDelta is WorkoutsDelta for the routines partition.
	RoutinesDelta(ctx context.Context, token string, known map[string]string) (int, *hevy.RoutineSyncResponse, error)

	// FetchResource performs a conditional GET of a singleton resource
	// path, sending etag as If-None-Match when non-empty. Returns the
	// status, the body (200 only) and the response ETag.
	FetchResource(ctx context.Context, token, path, etag string) (int, []byte, string, error)

	// FeedPaged fetches a page of the social feed starting from the
	// given workout index (0 means the head of the feed).
	FeedPaged(ctx context.Context, token string, startFrom int) (int, *hevy.Feed, error)

	// FetchImage downloads an image by absolute URL. Image CDNs are
	// outside the API, so no auth or API headers are sent.
	FetchImage(ctx context.Context, imageURL string) ([]byte, error)
}

// HevyClient handles communication with the Hevy-compatible HTTP API.
type HevyClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewHevyClient creates a client from configuration.
func NewHevyClient(cfg *config.HevyConfig) *HevyClient {
	return &HevyClient{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// newRequest builds a request with the standard API headers. The auth-token
// header is added only when token is non-empty (login has no token yet).
func (c *HevyClient) newRequest(ctx context.Context, method, path, token string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("accept-encoding", "gzip")
	if token != "" {
		req.Header.Set("auth-token", token)
	}
	return req, nil
}

// Login exchanges credentials for an auth token.
func (c *HevyClient) Login(ctx context.Context, user, password string) (int, *hevy.LoginResponse, error) {
	payload, err := json.Marshal(hevy.LoginRequest{EmailOrUsername: user, Password: password})
	if err != nil {
		return 0, nil, fmt.Errorf("marshal login request: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/login", "", bytes.NewReader(payload))
	if err != nil {
		return 0, nil, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("login request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return resp.StatusCode, nil, nil
	}

	var login hevy.LoginResponse
	if err := json.NewDecoder(resp.Body).Decode(&login); err != nil {
		return resp.StatusCode, nil, fmt.Errorf("decode login response: %w", err)
	}
	return resp.StatusCode, &login, nil
}

// BatchDownload fetches one backfill page starting at the index cursor.
func (c *HevyClient) BatchDownload(ctx context.Context, token string, cursor int) (int, []hevy.Workout, error) {
	req, err := c.newRequest(ctx, http.MethodGet, fmt.Sprintf("/workouts_batch/%d", cursor), token, http.NoBody)
	if err != nil {
		return 0, nil, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("workouts_batch request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return resp.StatusCode, nil, nil
	}

	var workouts []hevy.Workout
	if err := json.NewDecoder(resp.Body).Decode(&workouts); err != nil {
		return resp.StatusCode, nil, fmt.Errorf("decode workouts_batch response: %w", err)
	}
	return resp.StatusCode, workouts, nil
}

// WorkoutsDelta posts the full known-id map and decodes the delta response.
func (c *HevyClient) WorkoutsDelta(ctx context.Context, token string, known map[string]string) (int, *hevy.WorkoutSyncResponse, error) {
	status, body, err := c.postDelta(ctx, "/workouts_sync_batch", token, known)
	if err != nil || status != http.StatusOK {
		return status, nil, err
	}

	var delta hevy.WorkoutSyncResponse
	if err := json.Unmarshal(body, &delta); err != nil {
		return status, nil, fmt.Errorf("decode workouts_sync_batch response: %w", err)
	}
	return status, &delta, nil
}

// RoutinesDelta posts the full known-id map for routines.
func (c *HevyClient) RoutinesDelta(ctx context.Context, token string, known map[string]string) (int, *hevy.RoutineSyncResponse, error) {
	status, body, err := c.postDelta(ctx, "/routines_sync_batch", token, known)
	if err != nil || status != http.StatusOK {
		return status, nil, err
	}

	var delta hevy.RoutineSyncResponse
	if err := json.Unmarshal(body, &delta); err != nil {
		return status, nil, fmt.Errorf("decode routines_sync_batch response: %w", err)
	}
	return status, &delta, nil
}

// postDelta is the shared POST for the two delta endpoints. The full map is
// uploaded every poll: the remote computes its answer from exactly this set,
// so thinning it would corrupt the delta.
func (c *HevyClient) postDelta(ctx context.Context, path, token string, known map[string]string) (int, []byte, error) {
	if known == nil {
		known = map[string]string{}
	}
	payload, err := json.Marshal(known)
	if err != nil {
		return 0, nil, fmt.Errorf("marshal known map: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, path, token, bytes.NewReader(payload))
	if err != nil {
		return 0, nil, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("%s request failed: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return resp.StatusCode, nil, nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("read %s response: %w", path, err)
	}
	return resp.StatusCode, body, nil
}

// FetchResource performs a conditional GET of a singleton resource.
func (c *HevyClient) FetchResource(ctx context.Context, token, path, etag string) (int, []byte, string, error) {
	req, err := c.newRequest(ctx, http.MethodGet, path, token, http.NoBody)
	if err != nil {
		return 0, nil, "", err
	}
	if etag != "" {
		req.Header.Set("If-None-Match", etag)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, nil, "", fmt.Errorf("%s request failed: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return resp.StatusCode, nil, "", nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, "", fmt.Errorf("read %s response: %w", path, err)
	}
	return resp.StatusCode, body, resp.Header.Get("Etag"), nil
}

// FeedPaged fetches a feed page. startFrom 0 requests the feed head, which
// the remote serves on the bare path.
func (c *HevyClient) FeedPaged(ctx context.Context, token string, startFrom int) (int, *hevy.Feed, error) {
	path := "/feed_workouts_paged/"
	if startFrom != 0 {
		path = fmt.Sprintf("/feed_workouts_paged/%d", startFrom)
	}

	req, err := c.newRequest(ctx, http.MethodGet, path, token, http.NoBody)
	if err != nil {
		return 0, nil, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("feed_workouts_paged request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return resp.StatusCode, nil, nil
	}

	var feed hevy.Feed
	if err := json.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return resp.StatusCode, nil, fmt.Errorf("decode feed response: %w", err)
	}
	return resp.StatusCode, &feed, nil
}

// FetchImage downloads an image by absolute URL.
func (c *HevyClient) FetchImage(ctx context.Context, imageURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create image request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("image request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("image request returned status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageSize))
	if err != nil {
		return nil, fmt.Errorf("read image body: %w", err)
	}
	return data, nil
}
