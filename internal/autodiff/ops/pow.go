package ops

import (
	"math"
	"strconv"
)

// PowOp raises its input to a constant exponent: output = a^p.
//
// Backward pass:
//   - d(a^p)/da = p * a^(p-1)
//
// The exponent is part of the operation, not an input node, so no
// gradient flows to it.
type PowOp struct {
	Exponent float64
}

// Kind returns KindPow.
func (op PowOp) Kind() Kind { return KindPow }

// Arity returns 1.
func (op PowOp) Arity() int { return 1 }

// Symbol returns "**" followed by the exponent, e.g. "**-1".
func (op PowOp) Symbol() string {
	return KindPow.String() + strconv.FormatFloat(op.Exponent, 'g', -1, 64)
}

// Forward returns a^p.
func (op PowOp) Forward(in []float64) float64 {
	return math.Pow(in[0], op.Exponent)
}

// Backward computes the input gradient p * a^(p-1) * outputGrad.
func (op PowOp) Backward(in []float64, _, outGrad float64) []float64 {
	return []float64{op.Exponent * math.Pow(in[0], op.Exponent-1) * outGrad}
}
