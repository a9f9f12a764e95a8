// Package ir holds the continuation-passing-style intermediate
// representation: atoms, the seven node variants, conversion from
// direct-style expressions, normalization, validation and printing.
//
// IR trees are immutable once built. Passes that change a tree rebuild the
// parts they touch and share the rest.
package ir

import (
	"cpsir/internal/ast"
)

// Compile converts expr to CPS and, when normalize is set, hoists value
// bindings above continuation bindings.
func Compile(expr ast.Expr, normalize bool) (Node, error) {
	prog, err := Convert(expr)
	if err != nil {
		return nil, err
	}
	if normalize {
		prog = Normalize(prog)
	}
	return prog, nil
}
