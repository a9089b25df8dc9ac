package main

import (
	"fmt"
	"log/slog"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/born-ml/grad/internal/autodiff"
	"github.com/born-ml/grad/internal/graphfile"
)

type evalOptions struct {
	passes int
	zero   bool
	set    map[string]string
}

func newEvalCmd(a *app) *cobra.Command {
	opts := &evalOptions{}

	cmd := &cobra.Command{
		Use:   "eval FILE",
		Short: "Evaluate a graph document and backpropagate",
		Long: `Build the expression described by a YAML graph document, run backward
passes from its root and print every node with its value and gradient.

Gradients accumulate across passes unless --zero is given.

Examples:
  grad eval neuron.yaml
  grad eval neuron.yaml --set x1=1.5 --set b=0
  grad eval neuron.yaml --passes 2`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runEval(args[0], opts)
		},
	}

	cmd.Flags().IntVar(&opts.passes, "passes", 1, "Number of backward passes to run")
	cmd.Flags().BoolVar(&opts.zero, "zero", false, "Reset gradients before every pass")
	cmd.Flags().StringToStringVar(&opts.set, "set", nil, "Override constant values (name=value)")
	return cmd
}

func (a *app) runEval(path string, opts *evalOptions) error {
	if opts.passes < 0 {
		return fmt.Errorf("--passes must not be negative, got %d", opts.passes)
	}

	doc, err := graphfile.Load(path)
	if err != nil {
		return err
	}
	overrides, err := parseOverrides(opts.set)
	if err != nil {
		return err
	}

	built, err := doc.Build(overrides)
	if err != nil {
		return err
	}
	a.logger.Debug("graph built",
		slog.String("file", path),
		slog.String("root", doc.RootName()),
		slog.Int("nodes", len(built.Order)))

	for i := 0; i < opts.passes; i++ {
		if opts.zero {
			autodiff.ZeroGrad(built.Root)
		}
		autodiff.Backward(built.Root)
		a.logger.Debug("backward pass complete", slog.Int("pass", i+1))
	}

	p := newRenderer(a.out)
	title := doc.Name
	if title == "" {
		title = path
	}
	p.heading("%s: %s = %.4f", title, doc.RootName(), built.Root.Data())
	p.values(built.Root)
	return nil
}

// parseOverrides converts --set name=value pairs to numbers.
func parseOverrides(set map[string]string) (map[string]float64, error) {
	if len(set) == 0 {
		return nil, nil
	}
	names := make([]string, 0, len(set))
	for name := range set {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make(map[string]float64, len(set))
	for _, name := range names {
		f, err := strconv.ParseFloat(set[name], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid value for %s: %w", name, err)
		}
		out[name] = f
	}
	return out, nil
}
