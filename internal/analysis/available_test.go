package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cpsir/internal/ast"
	"cpsir/internal/builtins"
	"cpsir/internal/cfg"
	"cpsir/internal/ir"
)

var (
	add23 = Expression{Op: builtins.I32Add, Args: []ir.Atom{ir.I32(2), ir.I32(3)}}
	sub23 = Expression{Op: builtins.I32Sub, Args: []ir.Atom{ir.I32(2), ir.I32(3)}}
	mulXY = Expression{Op: builtins.I32Mul, Args: []ir.Atom{ir.Var("x"), ir.Var("y")}}
)

func TestJoinIsIntersection(t *testing.T) {
	l := Lattice{}

	got := l.Join(Exprs(add23, sub23), Exprs(sub23, mulXY))
	assert.True(t, l.Equal(Exprs(sub23), got))

	empty := l.Join(Exprs(add23), Exprs(mulXY))
	assert.False(t, empty.IsBottom())
	assert.Empty(t, empty)
}

func TestJoinLaws(t *testing.T) {
	l := Lattice{}
	values := []Set{nil, Exprs(), Exprs(add23), Exprs(add23, sub23), Exprs(sub23, mulXY)}

	for _, a := range values {
		assert.True(t, l.Equal(a, l.Join(l.Bottom(), a)), "bottom is the identity for %s", a)
		assert.True(t, l.Equal(a, l.Join(a, l.Bottom())), "bottom is the identity for %s", a)
		assert.True(t, l.Equal(a, l.Join(a, a)), "join is idempotent for %s", a)
		for _, b := range values {
			assert.True(t, l.Equal(l.Join(a, b), l.Join(b, a)), "join commutes for %s and %s", a, b)
			for _, c := range values {
				assert.True(t, l.Equal(l.Join(l.Join(a, b), c), l.Join(a, l.Join(b, c))),
					"join associates for %s, %s and %s", a, b, c)
			}
		}
	}
}

func TestBottomDiffersFromEmpty(t *testing.T) {
	l := Lattice{}
	assert.False(t, l.Equal(nil, Exprs()))
	assert.True(t, l.Equal(nil, nil))
	assert.Equal(t, "⊥", Set(nil).String())
	assert.Equal(t, "{}", Exprs().String())
}

func TestExpressionKeysDistinguishKinds(t *testing.T) {
	wide := Expression{Op: builtins.I32Add, Args: []ir.Atom{ir.I64(2), ir.I64(3)}}
	assert.NotEqual(t, add23.Key(), wide.Key())
	assert.Equal(t, "i32.add(2, 3)", add23.String())
}

func TestFromSkipsLambdas(t *testing.T) {
	lam := &ir.Lambda{Label: 1, Params: []string{"x"}, Body: &ir.AppCont{Label: 2, Cont: ir.Return, Args: []ir.Atom{ir.Var("x")}}}
	_, ok := From(builtins.I32Add, []ir.Atom{lam, ir.I32(1)})
	assert.False(t, ok)

	e, ok := From(builtins.I32Add, []ir.Atom{ir.I32(2), ir.I32(3)})
	assert.True(t, ok)
	assert.Equal(t, add23, e)

	let := &ir.Let{Label: 3, Var: "v", Op: builtins.I32Add, Args: []ir.Atom{lam, ir.I32(1)}}
	assert.Nil(t, Transfer(3, let, nil))
}

func TestTransfer(t *testing.T) {
	let := &ir.Let{Label: 1, Var: "v", Op: builtins.I32Add, Args: []ir.Atom{ir.I32(2), ir.I32(3)}}
	assert.Equal(t, Exprs(add23), Transfer(1, let, nil))
	assert.Equal(t, Exprs(add23), Transfer(1, let, Exprs(add23)))

	other := &ir.LetVal{Label: 2, Var: "w", Value: ir.I32(1)}
	in := Exprs(sub23)
	assert.Equal(t, in, Transfer(2, other, in))
}

func analyze(t *testing.T, expr ast.Expr, order cfg.Order) *Result {
	t.Helper()
	prog, err := ir.Convert(expr)
	require.NoError(t, err)
	result, err := Analyze(prog, order)
	require.NoError(t, err)
	return result
}

// let a = 2+3 in let b = 2+3 in b
func repeated() ast.Expr {
	return ast.Let("a", ast.PrimApp(builtins.I32Add, ast.I32(2), ast.I32(3)),
		ast.Let("b", ast.PrimApp(builtins.I32Add, ast.I32(2), ast.I32(3)),
			ast.Var("b")))
}

func TestAnalyzeRepeatedExpression(t *testing.T) {
	result := analyze(t, repeated(), cfg.LIFO)

	// let#1 computes the first 2+3, let#3 the second
	first, ok := result.Before(1)
	require.True(t, ok)
	assert.True(t, first.IsBottom())

	second, ok := result.Before(3)
	require.True(t, ok)
	assert.True(t, second.Has(add23))

	lets := result.Lets()
	require.Len(t, lets, 2)
	assert.Equal(t, 1, lets[0].Label)
	assert.Equal(t, 3, lets[1].Label)
	assert.True(t, lets[0].After.Has(add23))

	_, ok = result.Before(99)
	assert.False(t, ok)
}

func TestAnalyzeBranchesIntersect(t *testing.T) {
	// let x = if c then 1+2 else 3-4 in 1+2
	expr := ast.Let("x",
		ast.If(ast.Var("c"),
			ast.PrimApp(builtins.I32Add, ast.I32(1), ast.I32(2)),
			ast.PrimApp(builtins.I32Sub, ast.I32(3), ast.I32(4))),
		ast.PrimApp(builtins.I32Add, ast.I32(1), ast.I32(2)))
	result := analyze(t, expr, cfg.LIFO)

	// letval#5 binds x in the join continuation
	atJoin, ok := result.Before(5)
	require.True(t, ok)
	assert.False(t, atJoin.IsBottom())
	assert.Empty(t, atJoin)

	thenBranch, _ := result.After(7)
	assert.Equal(t, "{i32.add(1, 2)}", thenBranch.String())
	elseBranch, _ := result.After(8)
	assert.Equal(t, "{i32.sub(3, 4)}", elseBranch.String())
}

func TestAnalyzeOrderIndependent(t *testing.T) {
	lifo := analyze(t, repeated(), cfg.LIFO)
	fifo := analyze(t, repeated(), cfg.FIFO)

	l := Lattice{}
	for i := range lifo.Graph.Nodes {
		assert.True(t, l.Equal(lifo.Graph.Node(i).In, fifo.Graph.Node(i).In))
		assert.True(t, l.Equal(lifo.Graph.Node(i).Out, fifo.Graph.Node(i).Out))
	}
}

func TestAnalyzeScopeError(t *testing.T) {
	_, err := Analyze(&ir.AppCont{Label: 0, Cont: ir.Named("k")}, cfg.LIFO)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "building control flow graph")
}
