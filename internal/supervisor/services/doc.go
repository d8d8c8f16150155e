// Cinematch - Catalog Similarity Recommender Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

// Package services adapts components that do not speak suture.Service
// natively.
//
// HTTPServerService turns the blocking ListenAndServe/Shutdown pair of an
// *http.Server into a context-aware Serve. PollService emits a periodic
// dataset-change signal for deployments where filesystem notifications are
// unavailable, such as network mounts; the reload service's content-hash
// memo turns an unchanged file into a no-op.
package services
