package ast

import "cpsir/internal/builtins"

// Constructors for building expression trees in code. Positions are left zero.

func Var(name string) *VarExpr        { return &VarExpr{Name: name} }
func I32(v int32) *I32Lit             { return &I32Lit{Value: v} }
func I64(v int64) *I64Lit             { return &I64Lit{Value: v} }
func U32(v uint32) *U32Lit            { return &U32Lit{Value: v} }
func U64(v uint64) *U64Lit            { return &U64Lit{Value: v} }
func Bool(v bool) *BoolLit            { return &BoolLit{Value: v} }
func Char(v rune) *CharLit            { return &CharLit{Value: v} }
func Str(v string) *StringLit         { return &StringLit{Value: v} }
func If(test, then, els Expr) *IfExpr { return &IfExpr{Test: test, Then: then, Else: els} }

func Lambda(params []string, body Expr) *LambdaExpr {
	return &LambdaExpr{Params: params, Body: body}
}

func App(fn Expr, args ...Expr) *AppExpr {
	return &AppExpr{Func: fn, Args: args}
}

func PrimApp(op builtins.Op, args ...Expr) *PrimAppExpr {
	return &PrimAppExpr{Op: op, Args: args}
}

func Let(name string, value, body Expr) *LetExpr {
	return &LetExpr{Name: name, Value: value, Body: body}
}

func Fix(names []string, values []Expr, body Expr) *FixExpr {
	return &FixExpr{Names: names, Values: values, Body: body}
}
