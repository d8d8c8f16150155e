// Cinematch - Catalog Similarity Recommender Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/tomtom215/cinematch/internal/config"
	"github.com/tomtom215/cinematch/internal/insights"
	"github.com/tomtom215/cinematch/internal/logging"
	"github.com/tomtom215/cinematch/internal/models"
	"github.com/tomtom215/cinematch/internal/recommend"
	ws "github.com/tomtom215/cinematch/internal/websocket"
)

// Version is reported by /health. It is set at link time.
var Version = "dev"

// Reloader accepts dataset-change signals. internal/reload implements it.
type Reloader interface {
	Trigger(source string) (string, error)
	BreakerState() string
}

// Handler serves the API routes.
type Handler struct {
	engine    *recommend.Engine
	insights  insights.Aggregator
	reloader  Reloader
	wsHub     *ws.Hub
	config    *config.Config
	startTime time.Time
}

// NewHandler creates the API handler. reloader and wsHub may be nil, in
// which case /admin/reload and /ws answer 503.
//
// Example:
//
//	handler := api.NewHandler(engine, agg, reloadSvc, hub, cfg)
//	router := api.NewRouter(handler, cfg)
//	http.ListenAndServe(":8080", router.SetupChi())
func NewHandler(engine *recommend.Engine, agg insights.Aggregator, reloader Reloader, wsHub *ws.Hub, cfg *config.Config) *Handler {
	return &Handler{
		engine:    engine,
		insights:  agg,
		reloader:  reloader,
		wsHub:     wsHub,
		config:    cfg,
		startTime: time.Now(),
	}
}

func (h *Handler) modelVersion() int64 {
	if m := h.engine.Model(); m != nil {
		return m.Version()
	}
	return 0
}

func (h *Handler) pageSizes() (defaultSize, maxSize int) {
	defaultSize, maxSize = 50, 500
	if h.config != nil {
		if h.config.API.DefaultPageSize > 0 {
			defaultSize = h.config.API.DefaultPageSize
		}
		if h.config.API.MaxPageSize > 0 {
			maxSize = h.config.API.MaxPageSize
		}
	}
	return defaultSize, maxSize
}

// respondEngineError maps engine errors to API errors.
func respondEngineError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, recommend.ErrNoModel):
		respondError(w, http.StatusServiceUnavailable, models.ErrCodeModelUnavailable,
			"The catalog model is not available yet", nil)
	default:
		respondError(w, http.StatusInternalServerError, models.ErrCodeInternal,
			"Internal server error", err)
	}
}

// getUpgrader creates a WebSocket upgrader with origin checking and a
// handshake timeout.
func (h *Handler) getUpgrader() websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:   1024,
		WriteBufferSize:  1024,
		CheckOrigin:      h.checkWebSocketOrigin,
		HandshakeTimeout: 10 * time.Second,
	}
}

// checkWebSocketOrigin accepts same-host origins and the configured CORS
// origins. Browsers always send Origin, so a missing header is rejected.
func (h *Handler) checkWebSocketOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		logging.Warn().Msg("WebSocket connection rejected: missing Origin header")
		return false
	}

	if origin == "http://"+r.Host || origin == "https://"+r.Host {
		return true
	}

	if h.config != nil {
		for _, allowed := range h.config.API.CORSOrigins {
			if allowed == "*" || allowed == origin {
				return true
			}
		}
	}

	logging.Warn().Str("origin", sanitizeLogValue(origin)).Msg("WebSocket connection rejected from unauthorized origin")
	return false
}

// WebSocket upgrades the connection and registers it with the hub.
//
// @Summary Model change notifications
// @Description Upgrades to a WebSocket that receives model_rebuilt and reload_failed messages.
// @Tags Live
// @Success 101 "Switching protocols"
// @Failure 503 {object} models.APIResponse "Notifications unavailable"
// @Router /ws [get]
func (h *Handler) WebSocket(w http.ResponseWriter, r *http.Request) {
	if h.wsHub == nil {
		respondError(w, http.StatusServiceUnavailable, models.ErrCodeInternal, "Live notifications are disabled", nil)
		return
	}

	upgrader := h.getUpgrader()
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.Error().Err(err).Msg("WebSocket upgrade error")
		return
	}

	client := ws.NewClient(h.wsHub, conn)
	h.wsHub.Register <- client
	client.Start()
}
