package eval

import (
	"fmt"

	"github.com/erikmannerfelt/manus/internal/value"
)

// DivisionByZeroError reports a '/' whose right-hand side evaluated to zero.
type DivisionByZeroError struct {
	Numerator float64
}

func (e *DivisionByZeroError) Error() string {
	return fmt.Sprintf("division of %s by zero", value.FormatNumber(e.Numerator))
}

// NumericOverflowError reports an operation that produced a non-finite
// result.
type NumericOverflowError struct {
	Op string
}

func (e *NumericOverflowError) Error() string {
	return fmt.Sprintf("numeric overflow in %s", e.Op)
}

// TypeMismatchError reports a referenced key holding a value that cannot be
// used as a number.
type TypeMismatchError struct {
	Key  value.Path
	Kind string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("key %q holds a %s, not a number", e.Key.String(), e.Kind)
}

// BadCallError reports a call that the evaluator cannot resolve: an unknown
// function name or a malformed argument list.
type BadCallError struct {
	Name    string
	Message string
}

func (e *BadCallError) Error() string {
	return fmt.Sprintf("call to %s: %s", e.Name, e.Message)
}
