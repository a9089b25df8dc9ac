package graphfile

import (
	"fmt"
	"sort"

	"github.com/born-ml/grad/internal/autodiff"
)

// Operation names accepted in documents.
const (
	opConst = "const"
	opAdd   = "add"
	opSub   = "sub"
	opMul   = "mul"
	opDiv   = "div"
	opNeg   = "neg"
	opPow   = "pow"
	opTanh  = "tanh"
	opExp   = "exp"
	opLog   = "log"
	opReLU  = "relu"
)

type buildFunc func(def NodeDef, in []*autodiff.Value, nodes map[string]*autodiff.Value) (*autodiff.Value, error)

type opSpec struct {
	arity int
	build buildFunc
}

func binary(f func(a, b *autodiff.Value) *autodiff.Value) opSpec {
	return opSpec{arity: 2, build: func(_ NodeDef, in []*autodiff.Value, _ map[string]*autodiff.Value) (*autodiff.Value, error) {
		return f(in[0], in[1]), nil
	}}
}

func unary(f func(a *autodiff.Value) *autodiff.Value) opSpec {
	return opSpec{arity: 1, build: func(_ NodeDef, in []*autodiff.Value, _ map[string]*autodiff.Value) (*autodiff.Value, error) {
		return f(in[0]), nil
	}}
}

var builders = map[string]opSpec{
	opConst: {arity: 0, build: buildConst},
	opAdd:   binary(autodiff.Add),
	opSub:   binary(autodiff.Sub),
	opMul:   binary(autodiff.Mul),
	opDiv:   binary(autodiff.Div),
	opNeg:   unary(autodiff.Neg),
	opPow:   {arity: 1, build: buildPow},
	opTanh:  unary(autodiff.Tanh),
	opExp:   unary(autodiff.Exp),
	opLog:   unary((*autodiff.Value).Log),
	opReLU:  unary((*autodiff.Value).ReLU),
}

func buildConst(def NodeDef, _ []*autodiff.Value, _ map[string]*autodiff.Value) (*autodiff.Value, error) {
	if def.Value == nil {
		return nil, ErrMissingValue
	}
	return autodiff.Scalar(*def.Value), nil
}

// buildPow hands the exponent to autodiff.Power. An exponent naming a node
// is resolved to that node so the engine rejects it as a non-constant.
func buildPow(def NodeDef, in []*autodiff.Value, nodes map[string]*autodiff.Value) (*autodiff.Value, error) {
	exponent := def.Exponent
	if exponent == nil {
		return nil, ErrNoExponent
	}
	if name, ok := exponent.(string); ok {
		if node, found := nodes[name]; found {
			exponent = node
		}
	}
	return autodiff.Power(in[0], exponent)
}

// Built is an evaluated document.
type Built struct {
	Root   *autodiff.Value
	Nodes  map[string]*autodiff.Value
	Order  []string // declaration order
	Leaves []string // constant names, sorted
}

// Node returns the node declared under name.
func (b *Built) Node(name string) (*autodiff.Value, bool) {
	v, ok := b.Nodes[name]
	return v, ok
}

// Build evaluates the document into a fresh graph.
// overrides replaces the value of constants by name; unknown names are an error.
func (d *Document) Build(overrides map[string]float64) (*Built, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}

	leaves := d.Leaves()
	for name := range overrides {
		if _, ok := leaves[name]; !ok {
			return nil, &NodeError{Node: name, Err: fmt.Errorf("%w: override does not name a constant", ErrUnknownNode)}
		}
	}

	b := &Built{
		Nodes: make(map[string]*autodiff.Value, len(d.Nodes)),
		Order: make([]string, 0, len(d.Nodes)),
	}
	for _, def := range d.Nodes {
		if v, ok := overrides[def.Name]; ok {
			def.Value = &v
		}

		in := make([]*autodiff.Value, len(def.Inputs))
		for i, name := range def.Inputs {
			in[i] = b.Nodes[name]
		}

		node, err := builders[def.op()].build(def, in, b.Nodes)
		if err != nil {
			return nil, &NodeError{Node: def.Name, Err: err}
		}

		label := def.Label
		if label == "" {
			label = def.Name
		}
		node.SetLabel(label)

		b.Nodes[def.Name] = node
		b.Order = append(b.Order, def.Name)
		if def.op() == opConst {
			b.Leaves = append(b.Leaves, def.Name)
		}
	}
	sort.Strings(b.Leaves)

	b.Root = b.Nodes[d.RootName()]
	return b, nil
}

// BuildFunc adapts the document to the gradcheck build signature.
func (d *Document) BuildFunc() func(map[string]float64) (*autodiff.Value, map[string]*autodiff.Value, error) {
	return func(values map[string]float64) (*autodiff.Value, map[string]*autodiff.Value, error) {
		b, err := d.Build(values)
		if err != nil {
			return nil, nil, err
		}
		leaves := make(map[string]*autodiff.Value, len(b.Leaves))
		for _, name := range b.Leaves {
			leaves[name] = b.Nodes[name]
		}
		return b.Root, leaves, nil
	}
}
