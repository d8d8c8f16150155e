// Cinematch - Catalog Similarity Recommender Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

// Package reload turns dataset-change signals into model rebuilds.
//
// The Service subscribes to events.TopicDatasetChanged. Each signal waits
// on a token-bucket limiter (reload.min_interval) and then reloads the
// configured CSV through a gobreaker circuit breaker, so a dataset that
// keeps failing to parse stops being re-read on every signal. Outcomes are
// published as events.TopicModelRebuilt or events.TopicReloadFailed and
// counted in dataset_reloads_total. A failed reload never replaces the
// model being served.
package reload
