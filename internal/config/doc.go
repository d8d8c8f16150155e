// Cinematch - Catalog Similarity Recommender Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

// Package config loads Cinematch configuration with Koanf v2.
//
// Sources are layered, later layers winning:
//
//  1. Built-in defaults (defaultConfig)
//  2. Optional YAML file (CONFIG_PATH, ./config.yaml, /etc/cinematch/config.yaml)
//  3. Environment variables (DATASET_PATH, HTTP_PORT, LOG_LEVEL, ...)
//
// Only environment variables listed in envTransformFunc are honored so that
// unrelated process environment never leaks into the configuration.
package config
