// Package analysis instantiates the dataflow engine with concrete
// analyses. Available expressions is a forward must-analysis: an expression
// is available at a point when it has been computed on every path reaching
// it.
package analysis

import (
	"sort"
	"strings"

	"cpsir/internal/builtins"
	"cpsir/internal/ir"
)

// Expression is a primitive operation applied to atoms
type Expression struct {
	Op   builtins.Op
	Args []ir.Atom
}

// From builds the expression computed by a Let. Expressions with a lambda
// operand are never tracked, so ok is false for them.
func From(op builtins.Op, args []ir.Atom) (e Expression, ok bool) {
	for _, a := range args {
		if _, isLambda := a.(*ir.Lambda); isLambda {
			return Expression{}, false
		}
	}
	return Expression{Op: op, Args: args}, true
}

func (e Expression) String() string {
	parts := make([]string, len(e.Args))
	for i, a := range e.Args {
		parts[i] = a.String()
	}
	return e.Op.String() + "(" + strings.Join(parts, ", ") + ")"
}

// Key identifies the expression in a Set. Atom text differs between literal
// kinds (2, 2i64, 2u32) so equal keys mean equal expressions.
func (e Expression) Key() string { return e.String() }

// Set is a lattice value. The nil Set is Bottom ("no information yet"),
// which is different from an empty set ("nothing available").
type Set map[string]Expression

// Exprs returns a non-Bottom set holding exprs
func Exprs(exprs ...Expression) Set {
	s := make(Set, len(exprs))
	for _, e := range exprs {
		s[e.Key()] = e
	}
	return s
}

func (s Set) IsBottom() bool { return s == nil }

func (s Set) Has(e Expression) bool {
	_, ok := s[e.Key()]
	return ok
}

// Expressions returns the members sorted by their text
func (s Set) Expressions() []Expression {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]Expression, len(keys))
	for i, k := range keys {
		out[i] = s[k]
	}
	return out
}

func (s Set) String() string {
	if s.IsBottom() {
		return "⊥"
	}
	exprs := s.Expressions()
	parts := make([]string, len(exprs))
	for i, e := range exprs {
		parts[i] = e.String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// Lattice is the available-expressions lattice: Bottom is the identity and
// Join of two sets is their intersection.
type Lattice struct{}

func (Lattice) Bottom() Set { return nil }

func (Lattice) Join(a, b Set) Set {
	if a.IsBottom() {
		return b
	}
	if b.IsBottom() {
		return a
	}
	out := Set{}
	for k, e := range a {
		if _, ok := b[k]; ok {
			out[k] = e
		}
	}
	return out
}

func (Lattice) Equal(a, b Set) bool {
	if a.IsBottom() || b.IsBottom() {
		return a.IsBottom() == b.IsBottom()
	}
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if _, ok := b[k]; !ok {
			return false
		}
	}
	return true
}

// Transfer joins the expression of a Let into the incoming set. Every
// other node passes its input through.
func Transfer(_ int, node ir.Node, in Set) Set {
	let, ok := node.(*ir.Let)
	if !ok {
		return in
	}
	e, ok := From(let.Op, let.Args)
	if !ok {
		return in
	}
	return Lattice{}.Join(in, Exprs(e))
}
