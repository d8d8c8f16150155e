// Cinematch - Catalog Similarity Recommender Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

// Package logging provides the process-wide zerolog logger for Cinematch.
//
// The logger is configured once from the "logging" config section and is
// safe to use before Init is called (defaults to JSON at info level on
// stderr).
//
//	logging.Init(logging.Config{Level: "debug", Format: "console"})
//	logging.Info().Str("dataset", path).Msg("dataset loaded")
//	logging.Ctx(r.Context()).Warn().Msg("title not found")
//
// Components that want a fixed "component" field derive a child logger:
//
//	logger := logging.WithComponent("recommend")
//
// NewSlogLogger bridges the zerolog backend to slog for libraries that only
// speak slog, such as the suture supervisor event hook.
package logging
