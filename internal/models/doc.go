// Cinematch - Catalog Similarity Recommender Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

/*
Package models defines the JSON bodies exchanged by the HTTP API.

Every endpoint wraps its payload in APIResponse:

	{
	  "status": "success",
	  "data": {...},
	  "metadata": {"timestamp": "2026-01-01T12:00:00Z", "query_time_ms": 3}
	}

Errors use the same envelope with status "error" and an APIError body
carrying one of the codes below.

Payload types:

  - CatalogPage: filtered, paged catalog rows
  - TitleDetail: the detail panel for one title
  - RecommendResponse / SuggestResponse: ranked neighbors and "did you mean"
  - SearchResponse: the dashboard's combined lookup flow
  - HealthStatus: liveness plus the served model's status
  - ReloadAccepted: acknowledgement of a dataset-change signal

Domain types such as catalog.Item, recommend.Recommendation, fuzzy.Match and
the insights counts are embedded as-is; their JSON tags live with them.
*/
package models
