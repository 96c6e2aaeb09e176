// Gravitus - Workout Analytics and Strength Progress Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gravitus

package store

import (
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
)

// BadgerStore implements Store using BadgerDB for durable storage.
// This is the production backend: records survive restarts, so a failed sync
// can re-enter without re-downloading the full history.
//
// Keys are laid out as "<partition>:<key>". Partition names never contain
// ':' so prefix iteration cannot bleed across partitions.
type BadgerStore struct {
	db *badger.DB
}

// OpenBadger opens (creating if necessary) a BadgerDB-backed store at path.
func OpenBadger(path string) (*BadgerStore, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil // badger's own logger is noisy; we log at the store API level
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger at %s: %w", path, err)
	}
	return &BadgerStore{db: db}, nil
}

// NewBadgerStore wraps an already-open BadgerDB handle.
func NewBadgerStore(db *badger.DB) *BadgerStore {
	return &BadgerStore{db: db}
}

func storeKey(partition Partition, key string) []byte {
	return []byte(string(partition) + ":" + key)
}

// Put stores value under key in the given partition.
func (s *BadgerStore) Put(partition Partition, key string, value []byte) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(storeKey(partition, key), value)
	})
	if err != nil {
		return fmt.Errorf("put %s/%s: %w", partition, key, err)
	}
	return nil
}

// Get returns the value stored under key, or ErrKeyNotFound.
func (s *BadgerStore) Get(partition Partition, key string) ([]byte, error) {
	var value []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(storeKey(partition, key))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrKeyNotFound
		}
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		if errors.Is(err, ErrKeyNotFound) {
			return nil, ErrKeyNotFound
		}
		return nil, fmt.Errorf("get %s/%s: %w", partition, key, err)
	}
	return value, nil
}

// GetAll returns every key/value pair in the partition.
func (s *BadgerStore) GetAll(partition Partition) (map[string][]byte, error) {
	result := make(map[string][]byte)
	prefix := []byte(string(partition) + ":")

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			key := string(item.Key()[len(prefix):])
			value, err := item.ValueCopy(nil)
			if err != nil {
				return err
			}
			result[key] = value
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", partition, err)
	}
	return result, nil
}

// Delete removes the value stored under key. Absent keys are ignored.
func (s *BadgerStore) Delete(partition Partition, key string) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		err := txn.Delete(storeKey(partition, key))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		return err
	})
	if err != nil {
		return fmt.Errorf("delete %s/%s: %w", partition, key, err)
	}
	return nil
}

// Clear removes every record in every partition.
func (s *BadgerStore) Clear() error {
	if err := s.db.DropAll(); err != nil {
		return fmt.Errorf("clear store: %w", err)
	}
	return nil
}

// Close closes the underlying BadgerDB.
func (s *BadgerStore) Close() error {
	return s.db.Close()
}
