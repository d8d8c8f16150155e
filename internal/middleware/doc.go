// Cinematch - Catalog Similarity Recommender Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

/*
Package middleware provides HTTP middleware shared by the API router.

  - RequestID: assigns or propagates X-Request-ID and seeds the logging
    context with request and correlation IDs
  - PrometheusMetrics: per-route request count, latency and in-flight gauge
    labeled by chi route pattern
  - Compression: gzip for clients that accept it, skipping WebSocket
    upgrades and bodyless statuses

All three use the func(http.HandlerFunc) http.HandlerFunc shape; the api
package adapts them to chi's func(http.Handler) http.Handler.

	h := middleware.RequestID(middleware.PrometheusMetrics(handler))
*/
package middleware
