// Cinematch - Catalog Similarity Recommender Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/tomtom215/cinematch/internal/catalog"
)

func newSampleCmd() *cobra.Command {
	var (
		rows int
		out  string
		seed int64
	)
	c := &cobra.Command{
		Use:   "sample",
		Short: "Write a synthetic catalog CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if rows < 1 {
				return errors.New("--rows must be at least 1")
			}
			var w io.Writer = cmd.OutOrStdout()
			if out != "" && out != "-" {
				f, err := os.Create(out)
				if err != nil {
					return fmt.Errorf("create %s: %w", out, err)
				}
				defer f.Close()
				w = f
			}
			if err := catalog.WriteSample(w, rows, seed); err != nil {
				return err
			}
			if out != "" && out != "-" {
				fmt.Fprintf(cmd.ErrOrStderr(), "wrote %d rows to %s\n", rows, out)
			}
			return nil
		},
	}
	c.Flags().IntVar(&rows, "rows", 200, "number of rows")
	c.Flags().StringVar(&out, "out", "", "output file (default stdout)")
	c.Flags().Int64Var(&seed, "seed", 1, "random seed; equal seeds give equal files")
	return c
}
