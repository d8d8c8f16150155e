// Cinematch - Catalog Similarity Recommender Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

/*
Package metrics provides Prometheus metrics collection and export.

Collectors are registered with the default registry through promauto and
exposed at /metrics:

	curl http://localhost:8080/metrics

# Available Metrics

API:
  - api_requests_total (method, endpoint, status_code)
  - api_request_duration_seconds (method, endpoint)
  - api_active_requests

Model:
  - model_build_duration_seconds (phase: load, vectorize, similarity, total)
  - model_builds_total (outcome: built, unchanged, failed)
  - model_catalog_rows, model_vocabulary_size, model_version
  - dataset_reloads_total (source, outcome)

Queries:
  - recommendations_served_total, suggestions_served_total
  - title_not_found_total (kind: recommend, suggest)

Cache and WebSocket:
  - cache_hits_total, cache_misses_total (cache_type)
  - websocket_connections_active, websocket_messages_sent_total (message_type)

# Usage

	start := time.Now()
	// ... handle request ...
	metrics.RecordAPIRequest("GET", "/api/v1/recommend", "200", time.Since(start))
*/
package metrics
