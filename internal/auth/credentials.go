// Gravitus - Workout Analytics and Strength Progress Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gravitus

// Package auth manages the remote-service session credentials: the opaque
// bearer token returned by login and the remote user id it belongs to.
//
// The sync engine never sees a password; it only asks "is there a token"
// and short-circuits with AuthRequired when there is not.
package auth

import (
	"errors"
	"fmt"

	"github.com/tomtom215/gravitus/internal/store"
)

// Storage keys inside the auth partition.
const (
	tokenKey  = "token"
	userIDKey = "user_id"
)

// ErrNotLoggedIn is returned when no token is stored.
var ErrNotLoggedIn = errors.New("auth: not logged in")

// Credentials persists the session token and user id in the auth partition
// of the local store.
type Credentials struct {
	store store.Store
}

// NewCredentials creates a credential manager over the given store.
func NewCredentials(s store.Store) *Credentials {
	return &Credentials{store: s}
}

// Token returns the stored bearer token, or ErrNotLoggedIn.
func (c *Credentials) Token() (string, error) {
	value, err := c.store.Get(store.PartitionAuth, tokenKey)
	if errors.Is(err, store.ErrKeyNotFound) {
		return "", ErrNotLoggedIn
	}
	if err != nil {
		return "", fmt.Errorf("read token: %w", err)
	}
	if len(value) == 0 {
		return "", ErrNotLoggedIn
	}
	return string(value), nil
}

// UserID returns the stored remote user id, or ErrNotLoggedIn.
func (c *Credentials) UserID() (string, error) {
	value, err := c.store.Get(store.PartitionAuth, userIDKey)
	if errors.Is(err, store.ErrKeyNotFound) {
		return "", ErrNotLoggedIn
	}
	if err != nil {
		return "", fmt.Errorf("read user id: %w", err)
	}
	return string(value), nil
}

// Store saves the token and user id returned by a successful login.
func (c *Credentials) Store(token, userID string) error {
	if token == "" {
		return fmt.Errorf("auth: refusing to store empty token")
	}
	if err := c.store.Put(store.PartitionAuth, tokenKey, []byte(token)); err != nil {
		return fmt.Errorf("store token: %w", err)
	}
	if err := c.store.Put(store.PartitionAuth, userIDKey, []byte(userID)); err != nil {
		return fmt.Errorf("store user id: %w", err)
	}
	return nil
}

// Clear logs out by removing the token and user id. Synced workout data is
// intentionally left in place so the dashboard keeps working offline.
func (c *Credentials) Clear() error {
	if err := c.store.Delete(store.PartitionAuth, tokenKey); err != nil {
		return fmt.Errorf("clear token: %w", err)
	}
	if err := c.store.Delete(store.PartitionAuth, userIDKey); err != nil {
		return fmt.Errorf("clear user id: %w", err)
	}
	return nil
}

// LoggedIn reports whether a token is currently stored.
func (c *Credentials) LoggedIn() bool {
	_, err := c.Token()
	return err == nil
}
