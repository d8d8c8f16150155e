// Cinematch - Catalog Similarity Recommender Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package api

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/tomtom215/cinematch/internal/config"
	"github.com/tomtom215/cinematch/internal/logging"
	"github.com/tomtom215/cinematch/internal/middleware"
	"github.com/tomtom215/cinematch/internal/models"
)

//go:embed web/index.html.tmpl
var webFS embed.FS

var indexTemplate = template.Must(template.ParseFS(webFS, "web/index.html.tmpl"))

// Router wires the handler into a chi mux.
type Router struct {
	handler        *Handler
	chiMiddleware  *ChiMiddleware
	requestTimeout time.Duration
}

// NewRouter creates a router. cfg may be nil in tests.
func NewRouter(handler *Handler, cfg *config.Config) *Router {
	mwConfig := DefaultChiMiddlewareConfig()
	timeout := 30 * time.Second
	if cfg != nil {
		mwConfig = ChiMiddlewareConfigFrom(cfg.API)
		if cfg.API.RequestTimeout > 0 {
			timeout = cfg.API.RequestTimeout
		}
	}
	return &Router{
		handler:        handler,
		chiMiddleware:  NewChiMiddleware(mwConfig),
		requestTimeout: timeout,
	}
}

// chiMiddleware adapts http.HandlerFunc middleware to Chi's func(http.Handler) http.Handler.
func chiMiddleware(mw func(http.HandlerFunc) http.HandlerFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return mw(next.ServeHTTP)
	}
}

// SetupChi configures all HTTP routes.
func (router *Router) SetupChi() http.Handler {
	r := chi.NewRouter()

	// Global middleware, applied to every route in order.
	r.Use(chiMiddleware(middleware.RequestID))
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(router.chiMiddleware.CORS()) // global so OPTIONS preflight is answered

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, http.StatusNotFound, models.ErrCodeNotFound, "Route not found", nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, http.StatusMethodNotAllowed, models.ErrCodeMethodNotAllowed, "Method not allowed", nil)
	})

	// Health probes are limited separately so monitoring never competes
	// with dashboard traffic.
	r.Route("/api/v1/health", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimitHealth())
		r.Use(APISecurityHeaders())
		r.Use(chiMiddleware(middleware.PrometheusMetrics))
		r.Get("/", router.handler.Health)
		r.Get("/live", router.handler.HealthLive)
		r.Get("/ready", router.handler.HealthReady)
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())
		r.Use(APISecurityHeaders())
		r.Use(chiMiddleware(middleware.PrometheusMetrics))

		// Long-lived; excluded from the timeout and compression.
		r.With(router.chiMiddleware.RateLimitWebSocket()).Get("/ws", router.handler.WebSocket)

		r.Group(func(r chi.Router) {
			r.Use(chimiddleware.Timeout(router.requestTimeout))
			r.Use(chiMiddleware(middleware.Compression))

			r.Get("/catalog", router.handler.Catalog)
			r.Get("/catalog/filters", router.handler.CatalogFilters)
			r.Get("/titles/{title}", router.handler.TitleDetail)
			r.Get("/recommend", router.handler.Recommend)
			r.Get("/suggest", router.handler.Suggest)
			r.Get("/search", router.handler.Search)
			r.Get("/insights/types", router.handler.InsightsTypes)
			r.Get("/insights/years", router.handler.InsightsYears)

			r.With(router.chiMiddleware.RateLimitReload()).Post("/admin/reload", router.handler.Reload)
		})
	})

	r.Handle("/metrics", promhttp.Handler())

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
		httpSwagger.DeepLinking(true),
		httpSwagger.DocExpansion("list"),
		httpSwagger.DomID("swagger-ui"),
	))

	r.With(DashboardSecurityHeaders(), chiMiddleware(middleware.Compression)).Get("/", router.Index)

	return r
}

// indexData is rendered into the dashboard page.
type indexData struct {
	Version      string
	DefaultN     int
	DefaultLimit int
}

// Index serves the dashboard.
func (router *Router) Index(w http.ResponseWriter, r *http.Request) {
	defaultLimit, _ := router.handler.pageSizes()
	data := indexData{
		Version:      Version,
		DefaultN:     router.handler.engine.NormalizeN(0),
		DefaultLimit: defaultLimit,
	}

	var buf bytes.Buffer
	if err := indexTemplate.Execute(&buf, data); err != nil {
		logging.Error().Err(err).Msg("Failed to render dashboard")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	if _, err := w.Write(buf.Bytes()); err != nil {
		logging.Error().Err(err).Msg("Failed to write dashboard")
	}
}
