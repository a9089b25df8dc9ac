package ops

import "math"

// LogOp represents the natural logarithm.
//
// Forward:
//
//	output = log(input)
//
// Backward:
//
//	∂L/∂input = ∂L/∂output * (1 / input)
//
// Non-positive inputs follow IEEE semantics (NaN or -Inf).
type LogOp struct{}

// Kind returns KindLog.
func (LogOp) Kind() Kind { return KindLog }

// Arity returns 1.
func (LogOp) Arity() int { return 1 }

// Symbol returns "log".
func (LogOp) Symbol() string { return KindLog.String() }

// Forward returns log(x).
func (LogOp) Forward(in []float64) float64 {
	return math.Log(in[0])
}

// Backward returns outGrad / x.
func (LogOp) Backward(in []float64, _, outGrad float64) []float64 {
	return []float64{outGrad / in[0]}
}
