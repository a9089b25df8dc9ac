package ops

// ReLUOp represents a ReLU (Rectified Linear Unit) activation: output = max(0, x).
//
// Backward pass:
//   - d(ReLU(x))/dx = 1 if x > 0, else 0
type ReLUOp struct{}

// Kind returns KindReLU.
func (ReLUOp) Kind() Kind { return KindReLU }

// Arity returns 1.
func (ReLUOp) Arity() int { return 1 }

// Symbol returns "relu".
func (ReLUOp) Symbol() string { return KindReLU.String() }

// Forward returns max(0, x).
func (ReLUOp) Forward(in []float64) float64 {
	if in[0] > 0 {
		return in[0]
	}
	return 0
}

// Backward passes the gradient through where the input was positive.
func (ReLUOp) Backward(in []float64, _, outGrad float64) []float64 {
	if in[0] > 0 {
		return []float64{outGrad}
	}
	return []float64{0}
}
