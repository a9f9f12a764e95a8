package interp

import "fmt"

// EvalError is a runtime failure at a labelled IR node: an unbound name, a
// type mismatch, an arity mismatch or division by zero.
type EvalError struct {
	Label   int
	Message string
}

func (e *EvalError) Error() string {
	return fmt.Sprintf("evaluation error at label %d: %s", e.Label, e.Message)
}

func evalErrorf(label int, format string, args ...any) *EvalError {
	return &EvalError{Label: label, Message: fmt.Sprintf(format, args...)}
}
