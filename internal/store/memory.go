// Gravitus - Workout Analytics and Strength Progress Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gravitus

package store

import "sync"

// MemoryStore implements Store with an in-process map. Nothing survives a
// restart; it backs tests and the ephemeral session-scoped mode.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[Partition]map[string][]byte
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[Partition]map[string][]byte)}
}

// Put stores value under key in the given partition.
func (s *MemoryStore) Put(partition Partition, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.data[partition]
	if !ok {
		p = make(map[string][]byte)
		s.data[partition] = p
	}
	// Copy so later caller mutation cannot corrupt stored state.
	buf := make([]byte, len(value))
	copy(buf, value)
	p[key] = buf
	return nil
}

// Get returns the value stored under key, or ErrKeyNotFound.
func (s *MemoryStore) Get(partition Partition, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.data[partition][key]
	if !ok {
		return nil, ErrKeyNotFound
	}
	buf := make([]byte, len(value))
	copy(buf, value)
	return buf, nil
}

// GetAll returns a snapshot of every key/value pair in the partition.
func (s *MemoryStore) GetAll(partition Partition) (map[string][]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make(map[string][]byte, len(s.data[partition]))
	for key, value := range s.data[partition] {
		buf := make([]byte, len(value))
		copy(buf, value)
		result[key] = buf
	}
	return result, nil
}

// Delete removes the value stored under key. Absent keys are ignored.
func (s *MemoryStore) Delete(partition Partition, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.data[partition], key)
	return nil
}

// Clear removes every record in every partition.
func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data = make(map[Partition]map[string][]byte)
	return nil
}

// Close is a no-op for the in-memory store.
func (s *MemoryStore) Close() error {
	return nil
}
