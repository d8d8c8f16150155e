// Cinematch - Catalog Similarity Recommender Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

/*
Package api serves the recommender over HTTP.

Routes (all JSON bodies use models.APIResponse):

	GET  /api/v1/catalog              filtered, paged catalog rows
	GET  /api/v1/catalog/filters      filter control options
	GET  /api/v1/titles/{title}       detail panel for one title
	GET  /api/v1/recommend            ?title=&n= ranked similar titles
	GET  /api/v1/suggest              ?q= "did you mean" suggestions
	GET  /api/v1/search               ?title=&n= the dashboard lookup flow
	GET  /api/v1/insights/types       rows per content type
	GET  /api/v1/insights/years       rows per release year
	POST /api/v1/admin/reload         dataset-change signal
	GET  /api/v1/health               liveness and model status
	GET  /api/v1/ws                   model_rebuilt / reload_failed notifications
	GET  /metrics                     Prometheus
	GET  /swagger/*                   OpenAPI UI
	GET  /                            dashboard

Unknown titles are not errors: /recommend and /suggest answer 200 with
found=false. Only the detail panel answers 404. Every data route answers 503
MODEL_UNAVAILABLE until the first model has been built.

Filters on /catalog are display-only. The insights charts always count the
full catalog.

Usage:

	handler := api.NewHandler(engine, agg, reloader, hub, cfg)
	router := api.NewRouter(handler, cfg)
	srv := &http.Server{Addr: cfg.Server.Address(), Handler: router.SetupChi()}
*/
package api
