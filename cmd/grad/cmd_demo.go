package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/born-ml/grad/internal/autodiff"
)

// demos maps demo names to graph builders.
var demos = map[string]func() *autodiff.Value{
	"arith":  arithmeticChain,
	"neuron": neuron,
}

var demoOrder = []string{"arith", "neuron"}

func newDemoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "demo [arith|neuron|all]",
		Short: "Run the built-in example expressions",
		Long: `Build an example expression, run a backward pass and print every node.

Demos:
  arith   L = (a*b + c) * f
  neuron  o = tanh(x1*w1 + x2*w2 + b), written with exp`,
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"arith", "neuron", "all"},
		RunE: func(cmd *cobra.Command, args []string) error {
			name := "all"
			if len(args) == 1 {
				name = args[0]
			}
			return a.runDemo(name)
		},
	}
}

func (a *app) runDemo(name string) error {
	names := demoOrder
	if name != "all" {
		if _, ok := demos[name]; !ok {
			return fmt.Errorf("unknown demo %q", name)
		}
		names = []string{name}
	}

	p := newRenderer(a.out)
	for _, n := range names {
		root := demos[n]()
		root.Backward()
		a.logger.Debug("backward pass complete", slog.String("demo", n), slog.Int("nodes", len(autodiff.TopoSort(root))))

		p.heading("%s: %s = %.4f", n, root.Label(), root.Data())
		p.values(root)
	}
	return nil
}

// arithmeticChain builds L = (a*b + c) * f with a=2, b=-3, c=10, f=-2.
func arithmeticChain() *autodiff.Value {
	a := autodiff.NewValue(2.0, "a")
	b := autodiff.NewValue(-3.0, "b")
	c := autodiff.NewValue(10.0, "c")
	e := a.Mul(b).SetLabel("e")
	d := e.Add(c).SetLabel("d")
	f := autodiff.NewValue(-2.0, "f")
	return d.Mul(f).SetLabel("L")
}

// neuron builds a single tanh neuron with two inputs, expanding tanh through exp.
func neuron() *autodiff.Value {
	x1 := autodiff.NewValue(2.0, "x1")
	x2 := autodiff.NewValue(0.0, "x2")
	w1 := autodiff.NewValue(-3.0, "w1")
	w2 := autodiff.NewValue(-1.0, "w2")
	b := autodiff.NewValue(6.8813735870195432, "b")

	x1w1 := x1.Mul(w1).SetLabel("x1*w1")
	x2w2 := x2.Mul(w2).SetLabel("x2*w2")
	sum := x1w1.Add(x2w2).SetLabel("x1*w1 + x2*w2")
	n := sum.Add(b).SetLabel("n")
	e := n.MulScalar(2).Exp().SetLabel("e")
	return e.SubScalar(1).Div(e.AddScalar(1)).SetLabel("o")
}
