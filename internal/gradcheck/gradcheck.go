// Package gradcheck verifies autodiff gradients against finite differences.
//
// A check builds the expression once with the given leaf values, runs a
// backward pass and then rebuilds the expression twice per leaf with the leaf
// perturbed by ±Step. Leaves are estimated concurrently when Config.Parallel
// allows it, each on graphs of its own. The central difference (f(x+h) - f(x-h)) / 2h is
// compared with the analytic gradient using a relative error that falls back
// to an absolute one near zero.
package gradcheck

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sort"

	"github.com/born-ml/grad/internal/autodiff"
	"github.com/born-ml/grad/internal/parallel"
)

// Default settings.
const (
	DefaultStep      = 1e-4
	DefaultTolerance = 1e-3
)

// ErrNoLeaves is returned when there is nothing to check.
var ErrNoLeaves = errors.New("gradcheck: no leaves to check")

// BuildFunc builds an expression from leaf values.
// It returns the root and the leaf nodes keyed by the same names as values.
// Every call must construct a fresh graph; with parallel checking it is
// called from several goroutines.
type BuildFunc func(values map[string]float64) (root *autodiff.Value, leaves map[string]*autodiff.Value, err error)

// Config controls a check.
type Config struct {
	Step      float64      // Finite difference step h (default 1e-4)
	Tolerance float64      // Maximum accepted relative error (default 1e-3)
	Logger    *slog.Logger // Optional; mismatches are logged at debug level
	Parallel  parallel.Config
}

func (c Config) withDefaults() Config {
	if c.Step <= 0 {
		c.Step = DefaultStep
	}
	if c.Tolerance <= 0 {
		c.Tolerance = DefaultTolerance
	}
	if c.Logger == nil {
		c.Logger = slog.New(slog.DiscardHandler)
	}
	return c
}

// Result is the outcome for one leaf.
type Result struct {
	Leaf     string
	Analytic float64
	Numeric  float64
	RelError float64
	OK       bool
}

// Report collects the results of a check, sorted by leaf name.
type Report struct {
	Results []Result
}

// OK reports whether every leaf passed.
func (r Report) OK() bool {
	for _, res := range r.Results {
		if !res.OK {
			return false
		}
	}
	return true
}

// MaxError returns the largest relative error seen.
func (r Report) MaxError() float64 {
	maxErr := 0.0
	for _, res := range r.Results {
		if res.RelError > maxErr || math.IsNaN(res.RelError) {
			maxErr = res.RelError
		}
	}
	return maxErr
}

// Failed returns the results that exceeded the tolerance.
func (r Report) Failed() []Result {
	var failed []Result
	for _, res := range r.Results {
		if !res.OK {
			failed = append(failed, res)
		}
	}
	return failed
}

// Check compares analytic and numerical gradients for every leaf in values.
func Check(ctx context.Context, values map[string]float64, build BuildFunc, cfg Config) (Report, error) {
	if len(values) == 0 {
		return Report{}, ErrNoLeaves
	}
	cfg = cfg.withDefaults()

	root, leaves, err := build(values)
	if err != nil {
		return Report{}, fmt.Errorf("gradcheck: build: %w", err)
	}
	autodiff.Backward(root)

	names := make([]string, 0, len(values))
	for name := range values {
		if _, ok := leaves[name]; !ok {
			return Report{}, fmt.Errorf("gradcheck: leaf %q not returned by build", name)
		}
		names = append(names, name)
	}
	sort.Strings(names)

	numeric := make([]float64, len(names))
	err = parallel.For(ctx, len(names), func(_ context.Context, i int) error {
		n, err := centralDifference(values, names[i], build, cfg.Step)
		numeric[i] = n
		return err
	}, cfg.Parallel)
	if err != nil {
		return Report{}, err
	}

	report := Report{Results: make([]Result, 0, len(names))}
	for i, name := range names {
		res := Result{
			Leaf:     name,
			Analytic: leaves[name].Grad(),
			Numeric:  numeric[i],
		}
		res.RelError = relativeError(res.Analytic, res.Numeric)
		res.OK = res.RelError <= cfg.Tolerance
		if !res.OK {
			cfg.Logger.Debug("gradient mismatch",
				slog.String("leaf", name),
				slog.Float64("analytic", res.Analytic),
				slog.Float64("numeric", res.Numeric),
				slog.Float64("rel_error", res.RelError))
		}
		report.Results = append(report.Results, res)
	}

	return report, nil
}

// centralDifference estimates d(root)/d(leaf) by rebuilding with leaf ± step.
func centralDifference(values map[string]float64, leaf string, build BuildFunc, step float64) (float64, error) {
	eval := func(x float64) (float64, error) {
		perturbed := make(map[string]float64, len(values))
		for k, v := range values {
			perturbed[k] = v
		}
		perturbed[leaf] = x

		root, _, err := build(perturbed)
		if err != nil {
			return 0, fmt.Errorf("gradcheck: build with %s=%g: %w", leaf, x, err)
		}
		return root.Data(), nil
	}

	x := values[leaf]
	fPlus, err := eval(x + step)
	if err != nil {
		return 0, err
	}
	fMinus, err := eval(x - step)
	if err != nil {
		return 0, err
	}
	return (fPlus - fMinus) / (2 * step), nil
}

// relativeError returns |a-n| / max(1, |a|, |n|). NaN on either side is an error of +Inf
// unless both are NaN.
func relativeError(analytic, numeric float64) float64 {
	if analytic == numeric {
		return 0
	}
	aNaN, nNaN := math.IsNaN(analytic), math.IsNaN(numeric)
	switch {
	case aNaN && nNaN:
		return 0
	case aNaN || nNaN:
		return math.Inf(1)
	}
	scale := math.Max(1, math.Max(math.Abs(analytic), math.Abs(numeric)))
	return math.Abs(analytic-numeric) / scale
}
