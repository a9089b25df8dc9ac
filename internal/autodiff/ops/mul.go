package ops

// MulOp represents multiplication: output = a * b.
//
// Backward pass:
//   - d(a*b)/da = b, so grad_a = outputGrad * b
//   - d(a*b)/db = a, so grad_b = outputGrad * a
type MulOp struct{}

// Kind returns KindMul.
func (MulOp) Kind() Kind { return KindMul }

// Arity returns 2.
func (MulOp) Arity() int { return 2 }

// Symbol returns "*".
func (MulOp) Symbol() string { return KindMul.String() }

// Forward returns a * b.
func (MulOp) Forward(in []float64) float64 {
	return in[0] * in[1]
}

// Backward computes input gradients for multiplication.
func (MulOp) Backward(in []float64, _, outGrad float64) []float64 {
	a, b := in[0], in[1]
	return []float64{b * outGrad, a * outGrad}
}
