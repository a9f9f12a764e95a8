package ir

import (
	"github.com/tliron/commonlog"

	"cpsir/internal/ast"
	"cpsir/internal/errors"
)

var log = commonlog.GetLogger("cpsir.ir")

// metaCont receives the atom holding a sub-expression's value and produces
// the IR that follows it.
type metaCont func(Atom) Node

// builder converts one program. It owns the generator for that run.
type builder struct {
	gen *GenTable
}

// Convert turns a direct-style program into CPS IR whose final result is
// delivered to Return. Labels and generated names come from a fresh
// GenTable, so they are unique within the result. A structurally malformed
// tree (a non-lambda bound by fix, a binder using a generated name) yields
// an *errors.InvariantError and no IR.
func Convert(expr ast.Expr) (prog Node, err error) {
	defer errors.Recover(&err)

	b := &builder{gen: NewGenTable()}
	label := b.gen.Label()
	prog = b.convert(expr, func(result Atom) Node {
		return &AppCont{Label: label, Cont: Return, Args: []Atom{result}}
	})

	log.Debugf("converted program: %d labels, %d continuations, %d temporaries",
		b.gen.labels, b.gen.conts, b.gen.vars)
	return prog, nil
}

func (b *builder) convert(expr ast.Expr, k metaCont) Node {
	switch e := expr.(type) {
	case *ast.VarExpr:
		b.checkName(e.Name)
		return k(Var(e.Name))
	case *ast.I32Lit:
		return k(I32(e.Value))
	case *ast.I64Lit:
		return k(I64(e.Value))
	case *ast.U32Lit:
		return k(U32(e.Value))
	case *ast.U64Lit:
		return k(U64(e.Value))
	case *ast.BoolLit:
		return k(Bool(e.Value))
	case *ast.CharLit:
		return k(Char(e.Value))
	case *ast.StringLit:
		return k(Str(e.Value))
	case *ast.LambdaExpr:
		return k(b.convertLambda(e))
	case *ast.AppExpr:
		return b.convertApp(e, k)
	case *ast.PrimAppExpr:
		return b.convertSeq(e.Args, nil, func(args []Atom) Node {
			label := b.gen.Label()
			result := b.gen.Var()
			return &Let{Label: label, Var: result, Op: e.Op, Args: args, Rest: k(Var(result))}
		})
	case *ast.IfExpr:
		return b.convertIf(e, k)
	case *ast.LetExpr:
		b.checkName(e.Name)
		return b.convert(e.Value, func(value Atom) Node {
			label := b.gen.Label()
			return &LetVal{Label: label, Var: e.Name, Value: value, Rest: b.convert(e.Body, k)}
		})
	case *ast.FixExpr:
		if len(e.Names) != len(e.Values) {
			errors.Contract("fix binds %d names to %d values", len(e.Names), len(e.Values))
		}
		label := b.gen.Label()
		funcs := make([]*Lambda, len(e.Values))
		for i, value := range e.Values {
			b.checkName(e.Names[i])
			funcs[i] = b.convertLambda(value)
		}
		return &Fix{Label: label, Names: e.Names, Funcs: funcs, Rest: b.convert(e.Body, k)}
	default:
		errors.Contract("cannot convert expression of type %T", expr)
		return nil
	}
}

// convertApp evaluates the callee, then the arguments, then calls through a
// fresh continuation whose body is whatever k builds from the result.
func (b *builder) convertApp(e *ast.AppExpr, k metaCont) Node {
	return b.convert(e.Func, func(fn Atom) Node {
		return b.convertSeq(e.Args, nil, func(args []Atom) Node {
			letLabel := b.gen.Label()
			appLabel := b.gen.Label()
			name := b.gen.Cont()
			result := b.gen.Var()
			return &LetCont{
				Label:  letLabel,
				Name:   name,
				Params: []string{result},
				Body:   k(Var(result)),
				Rest:   &App{Label: appLabel, Func: fn, Args: args, Cont: Named(name)},
			}
		})
	})
}

// convertIf shares one join continuation between both branches so k is
// expanded once.
func (b *builder) convertIf(e *ast.IfExpr, k metaCont) Node {
	return b.convert(e.Test, func(test Atom) Node {
		ifLabel := b.gen.Label()
		joinLabel := b.gen.Label()
		thenLabel := b.gen.Label()
		elseLabel := b.gen.Label()
		join := b.gen.Cont()
		result := b.gen.Var()

		body := k(Var(result))
		then := b.convert(e.Then, func(value Atom) Node {
			return &AppCont{Label: thenLabel, Cont: Named(join), Args: []Atom{value}}
		})
		els := b.convert(e.Else, func(value Atom) Node {
			return &AppCont{Label: elseLabel, Cont: Named(join), Args: []Atom{value}}
		})

		return &LetCont{
			Label:  joinLabel,
			Name:   join,
			Params: []string{result},
			Body:   body,
			Rest:   &If{Label: ifLabel, Test: test, Then: then, Else: els},
		}
	})
}

// convertLambda converts a function eagerly; its body returns through Return.
func (b *builder) convertLambda(expr ast.Expr) *Lambda {
	lam, ok := expr.(*ast.LambdaExpr)
	if !ok {
		errors.Contract("expected a lambda, got %T", expr)
	}
	for _, param := range lam.Params {
		b.checkName(param)
	}

	label := b.gen.Label()
	body := b.convert(lam.Body, func(result Atom) Node {
		return &AppCont{Label: b.gen.Label(), Cont: Return, Args: []Atom{result}}
	})
	return &Lambda{Label: label, Params: lam.Params, Body: body}
}

// convertSeq converts exprs left to right, accumulating their atoms in
// source order, and hands the complete list to k.
func (b *builder) convertSeq(exprs []ast.Expr, acc []Atom, k func([]Atom) Node) Node {
	if len(exprs) == 0 {
		return k(acc)
	}
	return b.convert(exprs[0], func(atom Atom) Node {
		return b.convertSeq(exprs[1:], append(acc[:len(acc):len(acc)], atom), k)
	})
}

func (b *builder) checkName(name string) {
	if IsGenerated(name) {
		errors.Contract("source name %q collides with generated names", name)
	}
}
