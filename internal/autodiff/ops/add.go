package ops

// AddOp represents addition: output = a + b.
//
// Backward pass:
//   - d(a+b)/da = 1, so grad_a = outputGrad
//   - d(a+b)/db = 1, so grad_b = outputGrad
type AddOp struct{}

// Kind returns KindAdd.
func (AddOp) Kind() Kind { return KindAdd }

// Arity returns 2.
func (AddOp) Arity() int { return 2 }

// Symbol returns "+".
func (AddOp) Symbol() string { return KindAdd.String() }

// Forward returns a + b.
func (AddOp) Forward(in []float64) float64 {
	return in[0] + in[1]
}

// Backward computes input gradients for addition.
// Since d(a+b)/da = d(a+b)/db = 1, the gradient flows equally to both inputs.
func (AddOp) Backward(_ []float64, _, outGrad float64) []float64 {
	return []float64{outGrad, outGrad}
}
