package autodiff

import (
	"fmt"
	"math"

	"github.com/born-ml/grad/internal/autodiff/ops"
)

// Add returns v + other.
func (v *Value) Add(other *Value) *Value {
	return newResult(ops.AddOp{}, v, other)
}

// Mul returns v * other.
func (v *Value) Mul(other *Value) *Value {
	return newResult(ops.MulOp{}, v, other)
}

// Pow returns v raised to a constant exponent.
// Use Power when the exponent comes from untyped input.
func (v *Value) Pow(exponent float64) *Value {
	return newResult(ops.PowOp{Exponent: exponent}, v)
}

// Neg returns -v, computed as v * -1.
func (v *Value) Neg() *Value {
	return v.Mul(Scalar(-1))
}

// Sub returns v - other, computed as v + (-other).
func (v *Value) Sub(other *Value) *Value {
	return v.Add(other.Neg())
}

// Div returns v / other, computed as v * other^-1.
// Division by a zero-valued node yields ±Inf or NaN.
func (v *Value) Div(other *Value) *Value {
	return v.Mul(other.Pow(-1))
}

// Tanh returns the hyperbolic tangent of v.
func (v *Value) Tanh() *Value {
	return newResult(ops.TanhOp{}, v)
}

// Exp returns e^v.
func (v *Value) Exp() *Value {
	return newResult(ops.ExpOp{}, v)
}

// Log returns the natural logarithm of v.
func (v *Value) Log() *Value {
	return newResult(ops.LogOp{}, v)
}

// ReLU returns max(0, v).
func (v *Value) ReLU() *Value {
	return newResult(ops.ReLUOp{}, v)
}

// AddScalar returns v + s.
func (v *Value) AddScalar(s float64) *Value {
	return v.Add(Scalar(s))
}

// SubScalar returns v - s.
func (v *Value) SubScalar(s float64) *Value {
	return v.Sub(Scalar(s))
}

// MulScalar returns v * s.
func (v *Value) MulScalar(s float64) *Value {
	return v.Mul(Scalar(s))
}

// DivScalar returns v / s.
func (v *Value) DivScalar(s float64) *Value {
	return v.Div(Scalar(s))
}

// RSubScalar returns s - v.
func (v *Value) RSubScalar(s float64) *Value {
	return Scalar(s).Sub(v)
}

// RDivScalar returns s / v.
func (v *Value) RDivScalar(s float64) *Value {
	return Scalar(s).Div(v)
}

// Add returns a + b.
func Add(a, b *Value) *Value { return a.Add(b) }

// Mul returns a * b.
func Mul(a, b *Value) *Value { return a.Mul(b) }

// Sub returns a - b.
func Sub(a, b *Value) *Value { return a.Sub(b) }

// Div returns a / b.
func Div(a, b *Value) *Value { return a.Div(b) }

// Neg returns -a.
func Neg(a *Value) *Value { return a.Neg() }

// Tanh returns tanh(a).
func Tanh(a *Value) *Value { return a.Tanh() }

// Exp returns e^a.
func Exp(a *Value) *Value { return a.Exp() }

// Power returns base^exponent.
//
// The exponent must be a plain number. Passing a *Value (or any other
// non-numeric type) returns an *OperationError wrapping ErrUnsupportedOperation:
// gradients never flow into an exponent.
func Power(base *Value, exponent any) (*Value, error) {
	if base == nil {
		return nil, &OperationError{Op: "pow", Operand: "<nil>", Reason: "nil base"}
	}
	if _, ok := exponent.(*Value); ok {
		return nil, &OperationError{
			Op:      "pow",
			Operand: fmt.Sprintf("%v", exponent),
			Reason:  "exponent must be a constant number, not a graph node",
		}
	}
	p, ok := toFloat(exponent)
	if !ok {
		return nil, &OperationError{
			Op:      "pow",
			Operand: fmt.Sprintf("%T", exponent),
			Reason:  "exponent must be a constant number",
		}
	}
	return base.Pow(p), nil
}

// Sum returns the sum of values as a chain of additions.
// An empty sum is the constant 0.
func Sum(values ...*Value) *Value {
	if len(values) == 0 {
		return Scalar(0)
	}
	acc := values[0]
	for _, v := range values[1:] {
		acc = acc.Add(v)
	}
	return acc
}

// toFloat converts Go numeric kinds to float64.
func toFloat(x any) (float64, bool) {
	switch n := x.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	default:
		return math.NaN(), false
	}
}
