// Package autodiff implements reverse-mode automatic differentiation on scalars.
//
// Architecture:
//   - Value: a node of the computation graph (data, accumulated gradient,
//     producing operation and its inputs)
//   - ops.Operation: each op (Add, Mul, Pow, Tanh, Exp, ...) defines its
//     forward value and local backward rule
//   - TopoSort: orders every node reachable from a root after its inputs
//   - Backward: walks the order in reverse, accumulating gradients via the chain rule
//
// Usage:
//
//	a := autodiff.NewValue(2.0, "a")
//	b := autodiff.NewValue(-3.0, "b")
//	c := a.Mul(b).AddScalar(10) // c = a*b + 10
//
//	c.Backward()
//	fmt.Println(a.Grad()) // dc/da = b = -3
//
// The graph grows implicitly as operations are applied. Gradients accumulate
// across Backward calls until ZeroGrad is called explicitly.
//
// Values are not safe for concurrent use. Graphs built from disjoint nodes may
// be constructed and differentiated from different goroutines.
package autodiff

import (
	"fmt"
	"sync/atomic"

	"github.com/born-ml/grad/internal/autodiff/ops"
)

var nextID atomic.Uint64

// Value is a scalar node in the computation graph.
//
// data, op and inputs are fixed at construction. grad is the only mutable
// field and holds the sum of gradients from every backward pass that reached
// this node.
type Value struct {
	data   float64
	grad   float64
	op     ops.Operation // nil for constants
	inputs []*Value      // operands, shared with other consumers
	label  string
	id     uint64
}

// NewValue creates a leaf node with a debug label.
func NewValue(data float64, label string) *Value {
	return &Value{
		data:  data,
		label: label,
		id:    nextID.Add(1),
	}
}

// Scalar creates an unlabeled leaf node.
// It is the explicit promotion used whenever a plain number meets a Value.
func Scalar(data float64) *Value {
	return NewValue(data, "")
}

// Lift converts x into a Value.
// A *Value is returned as-is, Go numeric types become constants and anything
// else fails with ErrUnsupportedOperation.
func Lift(x any) (*Value, error) {
	if v, ok := x.(*Value); ok {
		if v == nil {
			return nil, &OperationError{Op: "lift", Operand: "<nil>", Reason: "nil value"}
		}
		return v, nil
	}
	f, ok := toFloat(x)
	if !ok {
		return nil, &OperationError{Op: "lift", Operand: fmt.Sprintf("%T", x), Reason: "not a number"}
	}
	return Scalar(f), nil
}

// newResult applies op to inputs and returns the resulting node.
func newResult(op ops.Operation, inputs ...*Value) *Value {
	if len(inputs) != op.Arity() {
		panic(fmt.Sprintf("autodiff: %s expects %d inputs, got %d", op.Symbol(), op.Arity(), len(inputs)))
	}
	in := make([]float64, len(inputs))
	for i, x := range inputs {
		if x == nil {
			panic(fmt.Sprintf("autodiff: nil operand %d for %s", i, op.Symbol()))
		}
		in[i] = x.data
	}
	return &Value{
		data:   op.Forward(in),
		op:     op,
		inputs: inputs,
		id:     nextID.Add(1),
	}
}

// Data returns the forward value.
func (v *Value) Data() float64 {
	return v.data
}

// Grad returns the accumulated gradient.
func (v *Value) Grad() float64 {
	return v.grad
}

// SetGrad overwrites the accumulated gradient.
// Useful for seeding gradients by hand; Backward does not need it.
func (v *Value) SetGrad(g float64) {
	v.grad = g
}

// Label returns the debug label.
func (v *Value) Label() string {
	return v.label
}

// SetLabel sets the debug label and returns v for chaining.
func (v *Value) SetLabel(label string) *Value {
	v.label = label
	return v
}

// ID returns a process-wide unique identifier. IDs increase in creation order.
func (v *Value) ID() uint64 {
	return v.id
}

// Op returns the operation that produced v, or nil for constants.
func (v *Value) Op() ops.Operation {
	return v.op
}

// Kind returns the tag of the producing operation.
func (v *Value) Kind() ops.Kind {
	if v.op == nil {
		return ops.KindConst
	}
	return v.op.Kind()
}

// Symbol returns the display label of the producing operation, e.g. "**2".
func (v *Value) Symbol() string {
	if v.op == nil {
		return ""
	}
	return v.op.Symbol()
}

// Inputs returns a copy of the operand list.
func (v *Value) Inputs() []*Value {
	if len(v.inputs) == 0 {
		return nil
	}
	out := make([]*Value, len(v.inputs))
	copy(out, v.inputs)
	return out
}

// IsLeaf reports whether v has no inputs.
func (v *Value) IsLeaf() bool {
	return len(v.inputs) == 0
}

// String implements fmt.Stringer.
func (v *Value) String() string {
	if v.label != "" {
		return fmt.Sprintf("Value(%s, data=%g, grad=%g)", v.label, v.data, v.grad)
	}
	return fmt.Sprintf("Value(data=%g, grad=%g)", v.data, v.grad)
}
