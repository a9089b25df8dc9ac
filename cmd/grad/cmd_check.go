package main

import (
	"context"
	"errors"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/born-ml/grad/internal/gradcheck"
	"github.com/born-ml/grad/internal/graphfile"
	"github.com/born-ml/grad/internal/parallel"
)

// errCheckFailed is returned when at least one leaf fails the gradient check.
var errCheckFailed = errors.New("gradient check failed")

func newCheckCmd(a *app) *cobra.Command {
	var (
		cfg     gradcheck.Config
		workers int
	)

	cmd := &cobra.Command{
		Use:   "check FILE",
		Short: "Compare gradients with finite differences",
		Long: `Run a backward pass over a graph document and compare the gradient of
every constant with a central finite difference estimate.

Exits with status 1 when any leaf exceeds the tolerance.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.Parallel = parallel.DefaultConfig()
			if workers > 0 {
				cfg.Parallel.NumWorkers = workers
			}
			return a.runCheck(cmd.Context(), args[0], cfg)
		},
	}

	cmd.Flags().Float64Var(&cfg.Step, "step", gradcheck.DefaultStep, "Finite difference step")
	cmd.Flags().Float64Var(&cfg.Tolerance, "tolerance", gradcheck.DefaultTolerance, "Maximum relative error")
	cmd.Flags().IntVar(&workers, "workers", 0, "Leaves estimated concurrently (default: number of CPUs)")
	return cmd
}

func (a *app) runCheck(ctx context.Context, path string, cfg gradcheck.Config) error {
	doc, err := graphfile.Load(path)
	if err != nil {
		return err
	}

	cfg.Logger = a.logger
	report, err := gradcheck.Check(ctx, doc.Leaves(), doc.BuildFunc(), cfg)
	if err != nil {
		return err
	}

	p := newRenderer(a.out)
	p.heading("gradient check: %s", doc.RootName())
	p.report(report)

	if !report.OK() {
		a.logger.Error("gradient check failed",
			slog.Int("failed", len(report.Failed())),
			slog.Float64("max_rel_error", report.MaxError()))
		return errCheckFailed
	}
	a.logger.Info("gradient check passed", slog.Float64("max_rel_error", report.MaxError()))
	return nil
}
