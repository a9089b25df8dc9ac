package ops

import "math"

// TanhOp represents the hyperbolic tangent: tanh(x) = (exp(2x) - 1) / (exp(2x) + 1).
type TanhOp struct{}

// Kind returns KindTanh.
func (TanhOp) Kind() Kind { return KindTanh }

// Arity returns 1.
func (TanhOp) Arity() int { return 1 }

// Symbol returns "tanh".
func (TanhOp) Symbol() string { return KindTanh.String() }

// Forward evaluates tanh through exp(2x). When exp(2x) overflows the quotient
// would be Inf/Inf, so the library tanh is used instead.
func (TanhOp) Forward(in []float64) float64 {
	x := in[0]
	e := math.Exp(2 * x)
	if math.IsInf(e, 0) {
		return math.Tanh(x)
	}
	return (e - 1) / (e + 1)
}

// Backward computes the gradient for tanh.
//
// For tanh(x):
// d(tanh(x))/dx = 1 - tanh²(x)
//
// Since we have the output tanh(x) already computed:
// grad_input = grad_output * (1 - output²).
func (TanhOp) Backward(_ []float64, out, outGrad float64) []float64 {
	return []float64{(1 - out*out) * outGrad}
}
