// Cinematch - Catalog Similarity Recommender Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

// Package cmd holds the cinematch cobra commands.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tomtom215/cinematch/internal/config"
	"github.com/tomtom215/cinematch/internal/logging"
)

// globalFlags are the persistent flags shared by every subcommand.
type globalFlags struct {
	configPath string
	dataset    string
}

// NewRootCommand builds the command tree. Each call returns an independent
// tree, so tests can run commands in parallel.
func NewRootCommand() *cobra.Command {
	g := &globalFlags{}
	root := &cobra.Command{
		Use:           "cinematch",
		Short:         "cinematch: catalog similarity recommender",
		Long:          "Content-based recommendations over a streaming catalog CSV, served as a dashboard and JSON API.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&g.configPath, "config", "", "YAML config file (default: $CONFIG_PATH, ./config.yaml)")
	root.PersistentFlags().StringVar(&g.dataset, "dataset", "", "catalog CSV path (overrides dataset.path)")

	root.AddCommand(newServeCmd(g))
	root.AddCommand(newRecommendCmd(g))
	root.AddCommand(newSuggestCmd(g))
	root.AddCommand(newSampleCmd())
	return root
}

// Execute runs the root command and prints a failure to stderr.
func Execute() error {
	err := NewRootCommand().Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
	}
	return err
}

// load reads configuration, applies the --dataset override and initializes
// logging. One-shot commands pass quiet to keep stdout free of log lines
// below warn.
func (g *globalFlags) load(quiet bool) (*config.Config, error) {
	cfg, err := config.LoadWithKoanf(g.configPath)
	if err != nil {
		return nil, err
	}
	if g.dataset != "" {
		cfg.Dataset.Path = g.dataset
	}

	level := cfg.Logging.Level
	if quiet && level != "debug" && level != "trace" {
		level = "warn"
	}
	logging.Init(logging.Config{
		Level:     level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
	})
	return cfg, nil
}
