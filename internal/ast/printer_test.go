package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"cpsir/internal/builtins"
)

func TestLiteralStrings(t *testing.T) {
	tests := []struct {
		expr     Expr
		expected string
	}{
		{I32(-7), "-7"},
		{I64(7), "7i64"},
		{U32(7), "7u32"},
		{U64(7), "7u64"},
		{Bool(true), "true"},
		{Char('a'), `#\a`},
		{Str("hi\n"), `"hi\n"`},
		{Var("x"), "x"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, tt.expr.String())
	}
}

func TestFactorialString(t *testing.T) {
	fact := Lambda([]string{"x"},
		If(PrimApp(builtins.I32Leq, Var("x"), I32(1)),
			I32(1),
			PrimApp(builtins.I32Mul,
				App(Var("fact"), PrimApp(builtins.I32Sub, Var("x"), I32(1))),
				Var("x"))))
	prog := Fix([]string{"fact"}, []Expr{fact}, App(Var("fact"), I32(5)))

	expected := "(fix ((fact (lambda (x) (if (prim i32.leq x 1) 1 " +
		"(prim i32.mul (fact (prim i32.sub x 1)) x))))) (fact 5))"
	assert.Equal(t, expected, prog.String())
}

func TestLetString(t *testing.T) {
	expr := Let("a", PrimApp(builtins.I32Add, I32(2), I32(3)), Var("a"))
	assert.Equal(t, "(let a (prim i32.add 2 3) a)", expr.String())
	assert.Equal(t, LET, expr.NodeType())
	assert.Equal(t, Position{}, expr.NodePos())
}
