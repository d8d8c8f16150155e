// Cinematch - Catalog Similarity Recommender Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus instrumentation for:
// - API endpoint latency and throughput
// - Similarity model builds and reloads
// - Recommendation and suggestion traffic
// - Result cache efficiency
// - WebSocket connections

var (
	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	// Model Metrics
	ModelBuildDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "model_build_duration_seconds",
			Help:    "Duration of model build phases in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"phase"}, // load, vectorize, similarity, total
	)

	ModelRows = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "model_catalog_rows",
			Help: "Rows in the currently served catalog",
		},
	)

	ModelVocabularySize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "model_vocabulary_size",
			Help: "TF-IDF vocabulary size of the currently served model",
		},
	)

	ModelVersion = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "model_version",
			Help: "Monotonic version of the currently served model",
		},
	)

	ModelBuildsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "model_builds_total",
			Help: "Model build attempts by outcome",
		},
		[]string{"outcome"}, // built, unchanged, failed
	)

	ReloadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dataset_reloads_total",
			Help: "Dataset reload signals by source and outcome",
		},
		[]string{"source", "outcome"},
	)

	// Query Metrics
	RecommendationsServed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recommendations_served_total",
			Help: "Recommendation requests answered with at least one result",
		},
	)

	SuggestionsServed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "suggestions_served_total",
			Help: "Fuzzy suggestion requests answered with at least one result",
		},
	)

	TitleNotFound = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "title_not_found_total",
			Help: "Soft not-found outcomes",
		},
		[]string{"kind"}, // recommend, suggest
	)

	// Cache Metrics
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_hits_total",
			Help: "Total number of cache hits",
		},
		[]string{"cache_type"},
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_misses_total",
			Help: "Total number of cache misses",
		},
		[]string{"cache_type"},
	)

	// WebSocket Metrics
	WSConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "websocket_connections_active",
			Help: "Current number of active WebSocket connections",
		},
	)

	WSMessagesSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "websocket_messages_sent_total",
			Help: "Total number of WebSocket messages sent",
		},
		[]string{"message_type"},
	)
)

// RecordAPIRequest records API request metrics.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest increments or decrements the active request gauge.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordBuildPhase observes the duration of one build phase.
func RecordBuildPhase(phase string, duration time.Duration) {
	ModelBuildDuration.WithLabelValues(phase).Observe(duration.Seconds())
}

// RecordModelBuilt publishes the shape of a freshly swapped-in model.
func RecordModelBuilt(version int64, rows, vocab int) {
	ModelBuildsTotal.WithLabelValues("built").Inc()
	ModelVersion.Set(float64(version))
	ModelRows.Set(float64(rows))
	ModelVocabularySize.Set(float64(vocab))
}

// RecordModelUnchanged counts a build request that hit the memo.
func RecordModelUnchanged() {
	ModelBuildsTotal.WithLabelValues("unchanged").Inc()
}

// RecordModelFailed counts a failed build.
func RecordModelFailed() {
	ModelBuildsTotal.WithLabelValues("failed").Inc()
}

// RecordReload counts a dataset-change signal by source (api, watcher) and
// outcome (rebuilt, unchanged, failed, throttled, rejected).
func RecordReload(source, outcome string) {
	ReloadsTotal.WithLabelValues(source, outcome).Inc()
}

// RecordRecommend records a recommendation lookup.
func RecordRecommend(found bool) {
	if found {
		RecommendationsServed.Inc()
		return
	}
	TitleNotFound.WithLabelValues("recommend").Inc()
}

// RecordSuggest records a fuzzy suggestion lookup.
func RecordSuggest(matches int) {
	if matches > 0 {
		SuggestionsServed.Inc()
		return
	}
	TitleNotFound.WithLabelValues("suggest").Inc()
}

// RecordCacheLookup records a hit or miss for cacheType.
func RecordCacheLookup(cacheType string, hit bool) {
	if hit {
		CacheHits.WithLabelValues(cacheType).Inc()
	} else {
		CacheMisses.WithLabelValues(cacheType).Inc()
	}
}
