// Cinematch - Catalog Similarity Recommender Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package cache

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/dgraph-io/badger/v4"
)

// Badger is a Cacher backed by an in-memory BadgerDB. Nothing is written
// to disk.
type Badger struct {
	db  *badger.DB
	ttl time.Duration

	hits      atomic.Int64
	misses    atomic.Int64
	evictions atomic.Int64
}

// NewBadger opens an in-memory BadgerDB.
func NewBadger(ttl time.Duration) (*Badger, error) {
	opts := badger.DefaultOptions("").
		WithInMemory(true).
		WithLogger(nil).
		WithNumVersionsToKeep(1)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger cache: %w", err)
	}
	return &Badger{db: db, ttl: ttl}, nil
}

// Get returns the value for key if present and not expired.
func (b *Badger) Get(key string) ([]byte, bool) {
	var value []byte
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		b.misses.Add(1)
		return nil, false
	}
	b.hits.Add(1)
	return value, true
}

// Set stores value with the default TTL.
func (b *Badger) Set(key string, value []byte) {
	b.SetWithTTL(key, value, b.ttl)
}

// SetWithTTL stores value with a custom TTL. Write failures leave the
// cache without the entry.
func (b *Badger) SetWithTTL(key string, value []byte, ttl time.Duration) {
	_ = b.db.Update(func(txn *badger.Txn) error {
		return txn.SetEntry(badger.NewEntry([]byte(key), value).WithTTL(ttl))
	})
}

// Delete removes key.
func (b *Badger) Delete(key string) {
	err := b.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(key))
	})
	if err == nil {
		b.evictions.Add(1)
	}
}

// Clear drops every entry.
func (b *Badger) Clear() {
	n := b.count()
	if err := b.db.DropAll(); err == nil {
		b.evictions.Add(n)
	}
}

// GetStats returns a snapshot of the counters.
func (b *Badger) GetStats() Stats {
	return Stats{
		Hits:      b.hits.Load(),
		Misses:    b.misses.Load(),
		Evictions: b.evictions.Load(),
		TotalKeys: b.count(),
	}
}

// Close closes the database.
func (b *Badger) Close() error {
	if err := b.db.Close(); err != nil {
		return fmt.Errorf("close badger cache: %w", err)
	}
	return nil
}

func (b *Badger) count() int64 {
	var n int64
	_ = b.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			n++
		}
		return nil
	})
	return n
}
