package ops

import "math"

// ExpOp represents the exponential operation: y = exp(x).
//
// Backward pass:
//   - d(exp(x))/dx = exp(x) = y
//   - grad_input = grad_output * output
type ExpOp struct{}

// Kind returns KindExp.
func (ExpOp) Kind() Kind { return KindExp }

// Arity returns 1.
func (ExpOp) Arity() int { return 1 }

// Symbol returns "exp".
func (ExpOp) Symbol() string { return KindExp.String() }

// Forward returns exp(x).
func (ExpOp) Forward(in []float64) float64 {
	return math.Exp(in[0])
}

// Backward computes input gradient for exp.
//
// Since d(exp(x))/dx = exp(x), and we already have exp(x) as output:
// grad_input = grad_output * output.
func (ExpOp) Backward(_ []float64, out, outGrad float64) []float64 {
	return []float64{out * outGrad}
}
