package ast

import "cpsir/internal/builtins"

// Expr is a direct-style expression: the input of CPS conversion.
type Expr interface {
	Node
	isExpr()
}

func (*VarExpr) isExpr()     {}
func (*I32Lit) isExpr()      {}
func (*I64Lit) isExpr()      {}
func (*U32Lit) isExpr()      {}
func (*U64Lit) isExpr()      {}
func (*BoolLit) isExpr()     {}
func (*CharLit) isExpr()     {}
func (*StringLit) isExpr()   {}
func (*LambdaExpr) isExpr()  {}
func (*AppExpr) isExpr()     {}
func (*PrimAppExpr) isExpr() {}
func (*IfExpr) isExpr()      {}
func (*LetExpr) isExpr()     {}
func (*FixExpr) isExpr()     {}

type VarExpr struct {
	Span
	Name string
}

type I32Lit struct {
	Span
	Value int32
}

type I64Lit struct {
	Span
	Value int64
}

type U32Lit struct {
	Span
	Value uint32
}

type U64Lit struct {
	Span
	Value uint64
}

type BoolLit struct {
	Span
	Value bool
}

type CharLit struct {
	Span
	Value rune
}

type StringLit struct {
	Span
	Value string
}

// LambdaExpr is an anonymous function of Params
type LambdaExpr struct {
	Span
	Params []string
	Body   Expr
}

// AppExpr calls Func with Args, evaluated left to right after Func
type AppExpr struct {
	Span
	Func Expr
	Args []Expr
}

// PrimAppExpr applies a primitive operation. Primitives never capture
// their continuation, so conversion binds the result directly.
type PrimAppExpr struct {
	Span
	Op   builtins.Op
	Args []Expr
}

type IfExpr struct {
	Span
	Test Expr
	Then Expr
	Else Expr
}

// LetExpr binds Name to Value within Body
type LetExpr struct {
	Span
	Name  string
	Value Expr
	Body  Expr
}

// FixExpr binds Names to mutually recursive Values within Body.
// Every value must be a *LambdaExpr.
type FixExpr struct {
	Span
	Names  []string
	Values []Expr
	Body   Expr
}
