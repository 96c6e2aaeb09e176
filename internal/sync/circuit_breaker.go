// Gravitus - Workout Analytics and Strength Progress Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gravitus

package sync

import (
	"context"
	"errors"
	"fmt"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/gravitus/internal/config"
	"github.com/tomtom215/gravitus/internal/logging"
	"github.com/tomtom215/gravitus/internal/metrics"
	"github.com/tomtom215/gravitus/internal/models/hevy"
)

// CircuitBreakerClient wraps HevyClient with circuit breaker pattern.
// Circuit breaker pattern prevents hammering the remote API when it is
// unavailable or slow.
//
// Only transport-level failures count against the breaker. A non-2xx
// response reached the remote and got an answer, so it passes through
// as a successful exchange; the sync Manager decides what the status
// means. The breaker never retries: a rejected or failed call surfaces
// immediately.
//
// DETERMINISM NOTE: The circuit breaker uses real time (via sony/gobreaker)
// for its interval and timeout calculations. Tests should mock the
// underlying client, not the breaker.
type CircuitBreakerClient struct {
	client Client
	cb     *gobreaker.CircuitBreaker[interface{}]
	name   string
}

// NewCircuitBreakerClient creates a Hevy client with circuit breaker.
// Circuit breaker configuration:
// - Max 3 concurrent requests in half-open state
// - 1 minute measurement window
// - 2 minute timeout before attempting recovery
// - Opens after 60% failure rate with minimum 10 requests
func NewCircuitBreakerClient(cfg *config.HevyConfig) *CircuitBreakerClient {
	return wrapWithBreaker(NewHevyClient(cfg), "hevy-api")
}

func wrapWithBreaker(client Client, cbName string) *CircuitBreakerClient {
	metrics.CircuitBreakerState.WithLabelValues(cbName).Set(0) // 0 = closed

	cb := gobreaker.NewCircuitBreaker[interface{}](gobreaker.Settings{
		Name:        cbName,
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     2 * time.Minute,

		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 10 {
				return false
			}

			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			shouldTrip := failureRatio >= 0.6

			if shouldTrip {
				logging.Warn().Uint32("failures", counts.TotalFailures).Float64("failure_rate", failureRatio*100).Msg("[CIRCUIT BREAKER] Opening circuit")
			}

			return shouldTrip
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr := stateToString(from)
			toStr := stateToString(to)

			logging.Info().Str("from", fromStr).Str("to", toStr).Msg("[CIRCUIT BREAKER] State transition")

			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, fromStr, toStr).Inc()
		},
	})

	return &CircuitBreakerClient{
		client: client,
		cb:     cb,
		name:   cbName,
	}
}

// execute wraps a remote API call with circuit breaker protection.
func (cbc *CircuitBreakerClient) execute(fn func() (interface{}, error)) (interface{}, error) {
	result, err := cbc.cb.Execute(fn)

	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.CircuitBreakerRequests.WithLabelValues(cbc.name, "rejected").Inc()
			logging.Warn().Err(err).Msg("[CIRCUIT BREAKER] Request rejected")
		} else {
			metrics.CircuitBreakerRequests.WithLabelValues(cbc.name, "failure").Inc()
		}
		return nil, err
	}

	metrics.CircuitBreakerRequests.WithLabelValues(cbc.name, "success").Inc()
	return result, nil
}

// castResult safely type-casts the circuit breaker result with error checking.
func castResult[T any](result interface{}, err error) (T, error) {
	var zero T
	if err != nil {
		return zero, err
	}
	typed, ok := result.(T)
	if !ok {
		return zero, fmt.Errorf("circuit breaker: unexpected result type %T", result)
	}
	return typed, nil
}

// stateToFloat converts circuit breaker state to numeric value for metrics.
func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

// stateToString converts circuit breaker state to string for logging.
func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}

// Result carriers so multi-value client returns fit through the breaker.
type loginResult struct {
	status int
	resp   *hevy.LoginResponse
}

type batchResult struct {
	status   int
	workouts []hevy.Workout
}

type workoutDeltaResult struct {
	status int
	delta  *hevy.WorkoutSyncResponse
}

type routineDeltaResult struct {
	status int
	delta  *hevy.RoutineSyncResponse
}

type resourceResult struct {
	status int
	body   []byte
	etag   string
}

type feedResult struct {
	status int
	feed   *hevy.Feed
}

// Login exchanges credentials with circuit breaker protection.
func (cbc *CircuitBreakerClient) Login(ctx context.Context, user, password string) (int, *hevy.LoginResponse, error) {
	res, err := castResult[loginResult](cbc.execute(func() (interface{}, error) {
		status, resp, err := cbc.client.Login(ctx, user, password)
		return loginResult{status: status, resp: resp}, err
	}))
	return res.status, res.resp, err
}

// BatchDownload fetches a backfill page with circuit breaker protection.
func (cbc *CircuitBreakerClient) BatchDownload(ctx context.Context, token string, cursor int) (int, []hevy.Workout, error) {
	res, err := castResult[batchResult](cbc.execute(func() (interface{}, error) {
		status, workouts, err := cbc.client.BatchDownload(ctx, token, cursor)
		return batchResult{status: status, workouts: workouts}, err
	}))
	return res.status, res.workouts, err
}

// WorkoutsDelta polls the workout delta endpoint with circuit breaker protection.
func (cbc *CircuitBreakerClient) WorkoutsDelta(ctx context.Context, token string, known map[string]string) (int, *hevy.WorkoutSyncResponse, error) {
	res, err := castResult[workoutDeltaResult](cbc.execute(func() (interface{}, error) {
		status, delta, err := cbc.client.WorkoutsDelta(ctx, token, known)
		return workoutDeltaResult{status: status, delta: delta}, err
	}))
	return res.status, res.delta, err
}

// RoutinesDelta polls the routine delta endpoint with circuit breaker protection.
func (cbc *CircuitBreakerClient) RoutinesDelta(ctx context.Context, token string, known map[string]string) (int, *hevy.RoutineSyncResponse, error) {
	res, err := castResult[routineDeltaResult](cbc.execute(func() (interface{}, error) {
		status, delta, err := cbc.client.RoutinesDelta(ctx, token, known)
		return routineDeltaResult{status: status, delta: delta}, err
	}))
	return res.status, res.delta, err
}

// FetchResource performs a conditional GET with circuit breaker protection.
func (cbc *CircuitBreakerClient) FetchResource(ctx context.Context, token, path, etag string) (int, []byte, string, error) {
	res, err := castResult[resourceResult](cbc.execute(func() (interface{}, error) {
		status, body, newETag, err := cbc.client.FetchResource(ctx, token, path, etag)
		return resourceResult{status: status, body: body, etag: newETag}, err
	}))
	return res.status, res.body, res.etag, err
}

// FeedPaged fetches a feed page with circuit breaker protection.
func (cbc *CircuitBreakerClient) FeedPaged(ctx context.Context, token string, startFrom int) (int, *hevy.Feed, error) {
	res, err := castResult[feedResult](cbc.execute(func() (interface{}, error) {
		status, feed, err := cbc.client.FeedPaged(ctx, token, startFrom)
		return feedResult{status: status, feed: feed}, err
	}))
	return res.status, res.feed, err
}

// FetchImage downloads an image with circuit breaker protection.
func (cbc *CircuitBreakerClient) FetchImage(ctx context.Context, imageURL string) ([]byte, error) {
	return castResult[[]byte](cbc.execute(func() (interface{}, error) {
		return cbc.client.FetchImage(ctx, imageURL)
	}))
}
