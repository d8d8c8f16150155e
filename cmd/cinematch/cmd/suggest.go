// Cinematch - Catalog Similarity Recommender Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSuggestCmd(g *globalFlags) *cobra.Command {
	var asJSON bool
	c := &cobra.Command{
		Use:   "suggest <query>",
		Short: "Print catalog titles close to a misspelled query",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.load(true)
			if err != nil {
				return err
			}
			engine, cleanup, err := loadEngine(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer cleanup()

			matches, err := engine.SuggestScored(args[0])
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(w, matches)
			}
			if len(matches) == 0 {
				fmt.Fprintf(w, "No title matches %q.\n", args[0])
				return nil
			}
			for _, m := range matches {
				fmt.Fprintf(w, "%.3f  %s\n", m.Ratio, m.Title)
			}
			return nil
		},
	}
	c.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return c
}
