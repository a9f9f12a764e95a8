package interp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cpsir/internal/ast"
	"cpsir/internal/builtins"
	"cpsir/internal/ir"
)

func factorial(n int32) ast.Expr {
	fact := ast.Lambda([]string{"x"},
		ast.If(ast.PrimApp(builtins.I32Leq, ast.Var("x"), ast.I32(1)),
			ast.I32(1),
			ast.PrimApp(builtins.I32Mul,
				ast.App(ast.Var("fact"), ast.PrimApp(builtins.I32Sub, ast.Var("x"), ast.I32(1))),
				ast.Var("x"))))
	return ast.Fix([]string{"fact"}, []ast.Expr{fact}, ast.App(ast.Var("fact"), ast.I32(n)))
}

func eval(t *testing.T, expr ast.Expr, normalize bool) Value {
	t.Helper()
	prog, err := ir.Compile(expr, normalize)
	require.NoError(t, err)
	v, err := Run(prog)
	require.NoError(t, err)
	return v
}

func TestRunFactorial(t *testing.T) {
	assert.Equal(t, ir.I32(120), eval(t, factorial(5), false))
	assert.Equal(t, ir.I32(120), eval(t, factorial(5), true))
	assert.Equal(t, ir.I32(1), eval(t, factorial(0), false))
}

func TestRunPrograms(t *testing.T) {
	tests := []struct {
		name     string
		expr     ast.Expr
		expected Value
	}{
		{"literal", ast.I64(7), ir.I64(7)},
		{"string", ast.Str("hi"), ir.Str("hi")},
		{"let", ast.Let("a", ast.I32(2), ast.PrimApp(builtins.I32Add, ast.Var("a"), ast.Var("a"))), ir.I32(4)},
		{"if true", ast.If(ast.Bool(true), ast.Char('y'), ast.Char('n')), ir.Char('y')},
		{"if false", ast.If(ast.PrimApp(builtins.U32Gt, ast.U32(1), ast.U32(2)), ast.I32(1), ast.I32(2)), ir.I32(2)},
		{"closure", ast.App(ast.Let("k", ast.I32(3),
			ast.Lambda([]string{"x"}, ast.PrimApp(builtins.I32Mul, ast.Var("x"), ast.Var("k")))), ast.I32(4)), ir.I32(12)},
		{"nested call", ast.Let("id", ast.Lambda([]string{"x"}, ast.Var("x")),
			ast.PrimApp(builtins.I32Add,
				ast.App(ast.Var("id"), ast.I32(1)),
				ast.App(ast.Var("id"), ast.I32(2)))), ir.I32(3)},
		{"mutual recursion", ast.Fix([]string{"even", "odd"}, []ast.Expr{
			ast.Lambda([]string{"n"}, ast.If(ast.PrimApp(builtins.I32Eq, ast.Var("n"), ast.I32(0)),
				ast.Bool(true), ast.App(ast.Var("odd"), ast.PrimApp(builtins.I32Sub, ast.Var("n"), ast.I32(1))))),
			ast.Lambda([]string{"n"}, ast.If(ast.PrimApp(builtins.I32Eq, ast.Var("n"), ast.I32(0)),
				ast.Bool(false), ast.App(ast.Var("even"), ast.PrimApp(builtins.I32Sub, ast.Var("n"), ast.I32(1))))),
		}, ast.App(ast.Var("even"), ast.I32(10))), ir.Bool(true)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, eval(t, tt.expr, false))
			assert.Equal(t, tt.expected, eval(t, tt.expr, true))
		})
	}
}

func TestRunErrors(t *testing.T) {
	tests := []struct {
		name    string
		expr    ast.Expr
		message string
	}{
		{"unbound", ast.Var("nope"), "unbound variable nope"},
		{"call non-function", ast.App(ast.I32(1)), "cannot call i32 1"},
		{"non-bool test", ast.If(ast.I32(1), ast.I32(2), ast.I32(3)), "if test is i32 1, not bool"},
		{"division by zero", ast.PrimApp(builtins.I32Div, ast.I32(1), ast.I32(0)), "i32.div: division by zero"},
		{"arity", ast.App(ast.Lambda([]string{"x"}, ast.Var("x"))), "expects 1 arguments, got 0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prog, err := ir.Convert(tt.expr)
			require.NoError(t, err)

			_, err = Run(prog)
			var evalErr *EvalError
			require.ErrorAs(t, err, &evalErr)
			assert.Contains(t, evalErr.Message, tt.message)
		})
	}
}

func TestStepLimit(t *testing.T) {
	loop := ast.Fix([]string{"loop"},
		[]ast.Expr{ast.Lambda([]string{"x"}, ast.App(ast.Var("loop"), ast.Var("x")))},
		ast.App(ast.Var("loop"), ast.I32(0)))
	prog, err := ir.Convert(loop)
	require.NoError(t, err)

	m := &Machine{MaxSteps: 100}
	_, err = m.Run(prog)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "step limit of 100 exceeded")
	assert.Equal(t, 100, m.Steps)
}
