package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/born-ml/grad/internal/autodiff"
	"github.com/born-ml/grad/internal/graphfile"
)

func newGraphCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "graph FILE",
		Short: "List the edges of a graph document",
		Long: `Print one "input -> consumer [op]" line per edge reachable from the root.

The output is meant to be piped into an external graph renderer.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := graphfile.Load(args[0])
			if err != nil {
				return err
			}
			built, err := doc.Build(nil)
			if err != nil {
				return err
			}

			g := autodiff.Trace(built.Root)
			a.logger.Debug("graph traced", slog.Int("nodes", len(g.Nodes)), slog.Int("edges", len(g.Edges)))
			newRenderer(a.out).edges(g)
			return nil
		},
	}
}
