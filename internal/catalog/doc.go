// Cinematch - Catalog Similarity Recommender Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

// Package catalog loads the title catalog CSV into an ordered, immutable
// Dataset.
//
// Row order in the file is the canonical index space: item i of the
// Dataset is row i of every matrix built from it. Missing director, cast,
// listed_in and country values become "Unknown"; a missing description
// becomes "". Each item's CombinedFeatures string is derived once at load
// time and is the only text the recommender reads.
//
// Every Dataset carries the BLAKE2b-256 hash of the file bytes it was
// parsed from. Downstream caches key on that hash.
package catalog
