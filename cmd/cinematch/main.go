// Cinematch - Catalog Similarity Recommender Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

// Command cinematch serves content-based recommendations for a streaming
// catalog CSV and answers one-off queries from the shell.
//
//	cinematch serve --dataset netflix_titles.csv
//	cinematch recommend "Stranger Things" -n 10
//	cinematch suggest "Strnger Things"
//	cinematch sample --rows 500 --out sample.csv
//
// @title Cinematch API
// @version 1.0
// @description Content-based recommendations over a streaming catalog.
// @description
// @description Every response uses the envelope
// @description `{status, data, metadata{timestamp, query_time_ms, cached, model_version}, error{code, message, details}}`.
// @description A title that is not in the catalog is not an error: `/recommend` and `/suggest`
// @description answer 200 with `found: false`.
//
// @contact.name GitHub Repository
// @contact.url https://github.com/tomtom215/cinematch
//
// @license.name AGPL-3.0-or-later
// @license.url https://www.gnu.org/licenses/agpl-3.0.html
//
// @host localhost:8080
// @BasePath /api/v1
package main

import (
	"os"

	"github.com/tomtom215/cinematch/cmd/cinematch/cmd"
	_ "github.com/tomtom215/cinematch/docs" // swagger spec served at /swagger/
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
