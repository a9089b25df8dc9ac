package autodiff

import (
	"errors"
	"fmt"
)

// ErrUnsupportedOperation is returned when an operation is applied to an
// operand it cannot differentiate, e.g. a Value used as an exponent.
var ErrUnsupportedOperation = errors.New("unsupported operation")

// OperationError describes a rejected operation.
// It wraps ErrUnsupportedOperation.
type OperationError struct {
	Op      string // Operation name (e.g., "pow")
	Operand string // Offending operand, formatted for humans
	Reason  string // Additional details
}

// Error implements the error interface.
func (e *OperationError) Error() string {
	return fmt.Sprintf("%s: %v: %s (operand %s)", e.Op, ErrUnsupportedOperation, e.Reason, e.Operand)
}

// Unwrap returns ErrUnsupportedOperation.
func (e *OperationError) Unwrap() error {
	return ErrUnsupportedOperation
}
