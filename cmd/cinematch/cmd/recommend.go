// Cinematch - Catalog Similarity Recommender Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/tomtom215/cinematch/internal/fuzzy"
	"github.com/tomtom215/cinematch/internal/recommend"
)

type recommendOutput struct {
	Query       string                     `json:"query"`
	Found       bool                       `json:"found"`
	Results     []recommend.Recommendation `json:"results"`
	Suggestions []fuzzy.Match              `json:"suggestions,omitempty"`
}

func newRecommendCmd(g *globalFlags) *cobra.Command {
	var (
		n      int
		asJSON bool
	)
	c := &cobra.Command{
		Use:   "recommend <title>",
		Short: "Print the titles most similar to an exact catalog title",
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

			title := args[0]
			out := recommendOutput{Query: title, Results: []recommend.Recommendation{}}
			if _, out.Found, err = engine.Lookup(title); err != nil {
				return err
			}
			if out.Found {
				if out.Results, err = engine.Recommend(cmd.Context(), title, n); err != nil {
					return err
				}
			} else if out.Suggestions, err = engine.SuggestScored(title); err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(w, out)
			}
			if !out.Found {
				formatSuggestions(w, title, out.Suggestions)
				return nil
			}
			return formatRecommendations(w, title, out.Results)
		},
	}
	c.Flags().IntVarP(&n, "n", "n", 0, "number of recommendations (default recommend.default_n)")
	c.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return c
}
