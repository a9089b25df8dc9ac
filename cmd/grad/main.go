// Package main provides the Born Grad CLI.
//
// Usage:
//
//	grad demo                       # run the built-in example expressions
//	grad eval expr.yaml             # evaluate a graph document and backpropagate
//	grad eval expr.yaml --passes 2  # show gradient accumulation across passes
//	grad check expr.yaml            # compare gradients with finite differences
//	grad graph expr.yaml            # list edges for an external renderer
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
)

const version = "v0.1.0-dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd(os.Stdout, os.Stderr).ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

// app carries state shared by subcommands.
type app struct {
	out       io.Writer
	logger    *slog.Logger
	verbose   bool
	logFormat string
}

// newRootCmd builds the command tree writing results to out and logs to errOut.
func newRootCmd(out, errOut io.Writer) *cobra.Command {
	a := &app{out: out}

	root := &cobra.Command{
		Use:          "grad",
		Short:        "Scalar reverse-mode automatic differentiation",
		Long:         "Born Grad builds scalar expression graphs and computes their gradients by backpropagation.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(errOut, a.logFormat, a.verbose)
			if err != nil {
				return err
			}
			a.logger = logger
			return nil
		},
	}
	root.SetOut(out)
	root.SetErr(errOut)

	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging")
	root.PersistentFlags().StringVar(&a.logFormat, "log-format", "text", "Log format: text or json")

	root.AddCommand(
		newVersionCmd(a),
		newDemoCmd(a),
		newEvalCmd(a),
		newCheckCmd(a),
		newGraphCmd(a),
	)
	return root
}

// newLogger creates the slog logger used by all commands.
func newLogger(w io.Writer, format string, verbose bool) (*slog.Logger, error) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}

	switch strings.ToLower(format) {
	case "", "text":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("unknown log format %q (want text or json)", format)
	}
}

func newVersionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(a.out, "Born Grad %s\n", version)
		},
	}
}
