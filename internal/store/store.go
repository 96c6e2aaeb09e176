// Gravitus - Workout Analytics and Strength Progress Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gravitus

package store

import "errors"

// Partition names the independent keyspaces of the local store. Records in
// different partitions never collide even when their keys are equal.
type Partition string

// Store partitions. Auth holds the session token and user id, Workouts and
// Routines hold one record per remote entity id, Resources holds cached
// singleton payloads together with their validation tokens, and Images holds
// raw image bytes keyed by file name.
const (
	PartitionAuth      Partition = "auth"
	PartitionWorkouts  Partition = "workouts"
	PartitionRoutines  Partition = "routines"
	PartitionResources Partition = "resources"
	PartitionImages    Partition = "images"
)

// ErrKeyNotFound is returned by Get when no value is stored under the key.
var ErrKeyNotFound = errors.New("store: key not found")

// Store is the keyed persistence contract the sync engine writes through.
//
// Implementations must make each single-key operation atomic: a concurrent
// reader sees either the previous value or the new one, never a partial
// write. No ordering is guaranteed across partitions.
//
// Concurrent readers are safe. The sync engine is the only writer for the
// workouts, routines and resources partitions; running two syncs against the
// same store at once is a caller error.
type Store interface {
	// Put stores value under key in the given partition, replacing any
	// previous value wholesale.
	Put(partition Partition, key string, value []byte) error

	// Get returns the value stored under key, or ErrKeyNotFound.
	Get(partition Partition, key string) ([]byte, error)

	// GetAll returns every key/value pair in the partition. The returned
	// map is a snapshot owned by the caller.
	GetAll(partition Partition) (map[string][]byte, error)

	// Delete removes the value stored under key. Deleting an absent key
	// is not an error.
	Delete(partition Partition, key string) error

	// Clear removes every record in every partition.
	Clear() error

	// Close releases any underlying resources.
	Close() error
}
