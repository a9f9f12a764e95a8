package ir

import (
	"cpsir/internal/ast"
	"cpsir/internal/builtins"
)

// factorialProgram is fix fact = λx. if x≤1 then 1 else fact(x-1)*x in fact(5)
func factorialProgram() ast.Expr {
	fact := ast.Lambda([]string{"x"},
		ast.If(ast.PrimApp(builtins.I32Leq, ast.Var("x"), ast.I32(1)),
			ast.I32(1),
			ast.PrimApp(builtins.I32Mul,
				ast.App(ast.Var("fact"), ast.PrimApp(builtins.I32Sub, ast.Var("x"), ast.I32(1))),
				ast.Var("x"))))
	return ast.Fix([]string{"fact"}, []ast.Expr{fact}, ast.App(ast.Var("fact"), ast.I32(5)))
}
