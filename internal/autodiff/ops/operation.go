// Package ops defines the scalar operations supported by the autodiff engine.
//
// Each operation implements the Operation interface, which provides:
//   - Forward pass: the output value computed from the input values
//   - Backward pass: the contribution to each input gradient given the output gradient
//
// Operations are pure: they never see graph nodes, only float64 values. The
// engine in package autodiff owns the graph and accumulates the contributions.
//
// Supported operations:
//   - AddOp: addition (d(a+b)/da = 1, d(a+b)/db = 1)
//   - MulOp: multiplication (d(a*b)/da = b, d(a*b)/db = a)
//   - PowOp: power by a constant exponent (d(a^p)/da = p*a^(p-1))
//   - TanhOp: hyperbolic tangent (d(tanh(x))/dx = 1 - tanh²(x))
//   - ExpOp: exponential (d(exp(x))/dx = exp(x))
//   - LogOp: natural logarithm (d(log(x))/dx = 1/x)
//   - ReLUOp: rectified linear unit (d(ReLU(x))/dx = 1 if x > 0, else 0)
//
// Negation, subtraction and division are not operations of their own: the
// engine composes them from MulOp, AddOp and PowOp.
package ops

// Kind tags the operation that produced a node.
type Kind uint8

// Operation kinds. KindConst marks a leaf with no inputs.
const (
	KindConst Kind = iota
	KindAdd
	KindMul
	KindPow
	KindTanh
	KindExp
	KindLog
	KindReLU
)

var kindSymbols = [...]string{
	KindConst: "",
	KindAdd:   "+",
	KindMul:   "*",
	KindPow:   "**",
	KindTanh:  "tanh",
	KindExp:   "exp",
	KindLog:   "log",
	KindReLU:  "relu",
}

// String returns the display symbol of the kind. Constants have an empty symbol.
func (k Kind) String() string {
	if int(k) < len(kindSymbols) {
		return kindSymbols[k]
	}
	return "unknown"
}

// Operation represents a differentiable scalar operation in the computation graph.
type Operation interface {
	// Kind returns the tag of this operation.
	Kind() Kind

	// Arity returns the number of inputs the operation consumes.
	Arity() int

	// Symbol returns a short display label, e.g. "+" or "**2".
	Symbol() string

	// Forward computes the output value from the input values.
	Forward(in []float64) float64

	// Backward computes the contribution to each input gradient.
	// in holds the input values, out the forward output and outGrad
	// the gradient of the root with respect to the output.
	//
	// Example for AddOp:
	//   in: [a, b]
	//   outGrad: dL/d(a+b)
	//   returns: [dL/d(a+b), dL/d(a+b)] (gradient flows equally to both inputs)
	Backward(in []float64, out, outGrad float64) []float64
}
