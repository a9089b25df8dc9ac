// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package autodiff provides reverse-mode automatic differentiation on scalars.
//
// Values form a computation graph as operations are applied. A single call
// to Backward on a root fills in the gradient of that root with respect to
// every value it depends on.
//
// Example:
//
//	import "github.com/born-ml/grad/autodiff"
//
//	func main() {
//	    a := autodiff.NewValue(2.0, "a")
//	    b := autodiff.NewValue(-3.0, "b")
//	    c := autodiff.NewValue(10.0, "c")
//
//	    L := a.Mul(b).Add(c) // L = a*b + c
//	    L.Backward()
//
//	    fmt.Println(a.Grad()) // dL/da = b = -3
//	}
//
// Go has no operator overloading, so expressions are written with methods
// (Add, Mul, Pow, ...) and plain numbers are promoted explicitly with Scalar
// or the *Scalar helpers.
//
// Gradients accumulate across Backward calls; call ZeroGrad between
// independent passes over the same graph.
package autodiff

import (
	"github.com/born-ml/grad/internal/autodiff"
	"github.com/born-ml/grad/internal/autodiff/ops"
)

// Value is a scalar node of the computation graph.
type Value = autodiff.Value

// Edge connects an input value to the value that consumes it.
type Edge = autodiff.Edge

// Graph is a read-only view of everything reachable from a root.
type Graph = autodiff.Graph

// OperationError describes a rejected operation.
type OperationError = autodiff.OperationError

// Kind tags the operation that produced a value.
type Kind = ops.Kind

// Operation kinds.
const (
	KindConst = ops.KindConst
	KindAdd   = ops.KindAdd
	KindMul   = ops.KindMul
	KindPow   = ops.KindPow
	KindTanh  = ops.KindTanh
	KindExp   = ops.KindExp
	KindLog   = ops.KindLog
	KindReLU  = ops.KindReLU
)

// ErrUnsupportedOperation is returned for operands an operation cannot
// differentiate, such as a Value used as an exponent.
var ErrUnsupportedOperation = autodiff.ErrUnsupportedOperation

// NewValue creates a labeled leaf value.
func NewValue(data float64, label string) *Value {
	return autodiff.NewValue(data, label)
}

// Scalar creates an unlabeled constant.
func Scalar(data float64) *Value {
	return autodiff.Scalar(data)
}

// Lift converts a number or *Value into a *Value.
func Lift(x any) (*Value, error) {
	return autodiff.Lift(x)
}

// Power returns base^exponent. The exponent must be a number.
func Power(base *Value, exponent any) (*Value, error) {
	return autodiff.Power(base, exponent)
}

// Sum adds values together.
func Sum(values ...*Value) *Value {
	return autodiff.Sum(values...)
}

// Backward fills in d(root)/d(v) for every v reachable from root.
func Backward(root *Value) {
	autodiff.Backward(root)
}

// ZeroGrad resets every gradient reachable from root.
func ZeroGrad(root *Value) {
	autodiff.ZeroGrad(root)
}

// TopoSort orders the values reachable from root, inputs first.
func TopoSort(root *Value) []*Value {
	return autodiff.TopoSort(root)
}

// Trace enumerates the nodes and edges reachable from root.
func Trace(root *Value) Graph {
	return autodiff.Trace(root)
}

// Gradients snapshots the gradients reachable from root.
func Gradients(root *Value) map[*Value]float64 {
	return autodiff.Gradients(root)
}
