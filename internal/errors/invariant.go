package errors

import "fmt"

// InvariantKind classifies the two compiler-bug failures of the pipeline.
type InvariantKind string

const (
	// KindContract: conversion received a structurally malformed tree,
	// e.g. a non-lambda where fix requires a lambda.
	KindContract InvariantKind = "contract violation"

	// KindScope: CFG construction met a named continuation with no
	// enclosing binding.
	KindScope InvariantKind = "scope resolution failure"
)

// InvariantError is raised by a pass that finds its input breaking an
// invariant an earlier pass should have established. Passes panic with it
// and their public entry points turn it into a returned error; there is no
// partial result.
type InvariantError struct {
	Kind    InvariantKind
	Message string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Contract panics with a KindContract invariant error.
func Contract(format string, args ...any) {
	panic(&InvariantError{Kind: KindContract, Message: fmt.Sprintf(format, args...)})
}

// Scope panics with a KindScope invariant error.
func Scope(format string, args ...any) {
	panic(&InvariantError{Kind: KindScope, Message: fmt.Sprintf(format, args...)})
}

// Recover converts a panicking *InvariantError into *err. It must be
// deferred directly. Other panics are re-raised untouched.
func Recover(err *error) {
	r := recover()
	if r == nil {
		return
	}
	if inv, ok := r.(*InvariantError); ok {
		*err = inv
		return
	}
	panic(r)
}
