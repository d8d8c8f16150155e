// Cinematch - Catalog Similarity Recommender Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

// Package cache provides the recommendation result cache.
//
// Two backends implement Cacher:
//
//   - memory: a bounded LRU with per-entry TTL (O(1) get, set and eviction)
//   - badger: BadgerDB opened in in-memory mode, entries expire through
//     Badger's native TTL
//
// Values are opaque byte slices; callers encode them. Keys should embed the
// dataset hash so entries from an older model are never read back.
package cache
