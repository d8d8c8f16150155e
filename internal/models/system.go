// Cinematch - Catalog Similarity Recommender Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package models

import (
	"github.com/tomtom215/cinematch/internal/recommend"
)

// HealthStatus answers GET /health.
//
// Status is "healthy" once a model is being served and "starting" before
// that. Reload is the circuit breaker state of the reload service.
type HealthStatus struct {
	Status         string            `json:"status"`
	Version        string            `json:"version"`
	Uptime         float64           `json:"uptime_seconds"`
	Model          recommend.Status  `json:"model"`
	Engine         recommend.Metrics `json:"engine"`
	InsightsEngine string            `json:"insights_engine"`
	Reload         string            `json:"reload_breaker"`
	WSClients      int               `json:"websocket_clients"`
}

// ReloadAccepted acknowledges POST /admin/reload. The rebuild itself runs
// asynchronously; its outcome arrives over the websocket.
type ReloadAccepted struct {
	EventID      string `json:"event_id"`
	Source       string `json:"source"`
	BreakerState string `json:"breaker_state"`
}
