// Cinematch - Catalog Similarity Recommender Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/cinematch/internal/events"
	"github.com/tomtom215/cinematch/internal/logging"
	"github.com/tomtom215/cinematch/internal/models"
)

// Health reports liveness and the served model.
//
// @Summary Service health
// @Description Returns uptime, the served model's status (dataset hash, rows, vocabulary size, build time), engine counters, reload breaker state and websocket clients.
// @Tags Core
// @Produce json
// @Success 200 {object} models.APIResponse{data=models.HealthStatus}
// @Router /health [get]
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	st := h.engine.Status()
	status := "healthy"
	if !st.Ready {
		status = "starting"
	}

	health := models.HealthStatus{
		Status:  status,
		Version: Version,
		Uptime:  time.Since(h.startTime).Seconds(),
		Model:   st,
		Engine:  h.engine.GetMetrics(),
	}
	if h.insights != nil {
		health.InsightsEngine = h.insights.Name()
	}
	if h.reloader != nil {
		health.Reload = h.reloader.BreakerState()
	}
	if h.wsHub != nil {
		health.WSClients = h.wsHub.GetClientCount()
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status:   models.StatusSuccess,
		Data:     health,
		Metadata: models.Metadata{Timestamp: time.Now().UTC(), ModelVersion: st.Version},
	})
}

// HealthLive answers 200 while the process runs.
//
// @Summary Liveness probe
// @Tags Core
// @Produce json
// @Success 200 {object} models.APIResponse
// @Router /health/live [get]
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: models.StatusSuccess,
		Data: map[string]interface{}{
			"alive":  true,
			"uptime": time.Since(h.startTime).Seconds(),
		},
		Metadata: models.Metadata{Timestamp: time.Now().UTC()},
	})
}

// HealthReady answers 200 once a model is being served and 503 before.
//
// @Summary Readiness probe
// @Tags Core
// @Produce json
// @Success 200 {object} models.APIResponse
// @Failure 503 {object} models.APIResponse "No model yet"
// @Router /health/ready [get]
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	st := h.engine.Status()
	if !st.Ready {
		respondError(w, http.StatusServiceUnavailable, models.ErrCodeModelUnavailable, "No model has been built yet", nil)
		return
	}
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: models.StatusSuccess,
		Data: map[string]interface{}{
			"ready":   true,
			"version": st.Version,
			"rows":    st.Rows,
		},
		Metadata: models.Metadata{Timestamp: time.Now().UTC(), ModelVersion: st.Version},
	})
}

// Reload emits a dataset-change signal. The rebuild runs asynchronously and
// its outcome is broadcast over the websocket.
//
// @Summary Reload the dataset
// @Description Signals that the dataset file changed. The file is re-read and, if its content hash differs, a new model is built and swapped in. A failed rebuild keeps the current model.
// @Tags Admin
// @Produce json
// @Success 202 {object} models.APIResponse{data=models.ReloadAccepted}
// @Failure 503 {object} models.APIResponse "Reload unavailable"
// @Router /admin/reload [post]
func (h *Handler) Reload(w http.ResponseWriter, r *http.Request) {
	if h.reloader == nil {
		respondError(w, http.StatusServiceUnavailable, models.ErrCodeReloadRejected, "Reloading is disabled", nil)
		return
	}

	id, err := h.reloader.Trigger(events.SourceAPI)
	if err != nil {
		respondError(w, http.StatusServiceUnavailable, models.ErrCodeReloadRejected, "Reload signal was not accepted", err)
		return
	}

	logging.Ctx(r.Context()).Info().Str("event_id", id).Msg("dataset reload requested")
	respondJSON(w, http.StatusAccepted, &models.APIResponse{
		Status: models.StatusSuccess,
		Data: models.ReloadAccepted{
			EventID:      id,
			Source:       events.SourceAPI,
			BreakerState: h.reloader.BreakerState(),
		},
		Metadata: models.Metadata{Timestamp: time.Now().UTC(), ModelVersion: h.modelVersion()},
	})
}
