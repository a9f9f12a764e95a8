package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cpsir/internal/ast"
	"cpsir/internal/builtins"
	"cpsir/internal/errors"
)

func TestConvertLiteral(t *testing.T) {
	prog, err := Convert(ast.I32(5))
	require.NoError(t, err)

	assert.Equal(t, &AppCont{Label: 0, Cont: Return, Args: []Atom{I32(5)}}, prog)
}

func TestConvertLiteralKinds(t *testing.T) {
	tests := []struct {
		expr ast.Expr
		atom Atom
	}{
		{ast.I64(-3), I64(-3)},
		{ast.U32(3), U32(3)},
		{ast.U64(3), U64(3)},
		{ast.Bool(false), Bool(false)},
		{ast.Char('z'), Char('z')},
		{ast.Str("s"), Str("s")},
		{ast.Var("y"), Var("y")},
	}

	for _, tt := range tests {
		prog, err := Convert(tt.expr)
		require.NoError(t, err)
		assert.Equal(t, []Atom{tt.atom}, prog.(*AppCont).Args)
	}
}

func TestConvertApplication(t *testing.T) {
	prog, err := Convert(ast.App(ast.Var("f"), ast.I32(1), ast.I32(2)))
	require.NoError(t, err)

	expected := &LetCont{
		Label:  1,
		Name:   "cont$0",
		Params: []string{"var$0"},
		Body:   &AppCont{Label: 0, Cont: Return, Args: []Atom{Var("var$0")}},
		Rest:   &App{Label: 2, Func: Var("f"), Args: []Atom{I32(1), I32(2)}, Cont: Named("cont$0")},
	}
	assert.Equal(t, expected, prog)
}

func TestConvertArgumentsKeepSourceOrder(t *testing.T) {
	prog, err := Convert(ast.App(ast.Var("f"),
		ast.PrimApp(builtins.I32Add, ast.I32(1), ast.I32(2)),
		ast.Var("y"),
		ast.PrimApp(builtins.I32Sub, ast.I32(3), ast.I32(4))))
	require.NoError(t, err)

	first := prog.(*Let)
	assert.Equal(t, "var$0", first.Var)
	assert.Equal(t, builtins.I32Add, first.Op)
	second := first.Rest.(*Let)
	assert.Equal(t, "var$1", second.Var)
	assert.Equal(t, builtins.I32Sub, second.Op)

	app := second.Rest.(*LetCont).Rest.(*App)
	assert.Equal(t, []Atom{Var("var$0"), Var("y"), Var("var$1")}, app.Args)
}

func TestConvertPrimitive(t *testing.T) {
	prog, err := Convert(ast.PrimApp(builtins.I32Add, ast.I32(2), ast.I32(3)))
	require.NoError(t, err)

	expected := &Let{
		Label: 1,
		Var:   "var$0",
		Op:    builtins.I32Add,
		Args:  []Atom{I32(2), I32(3)},
		Rest:  &AppCont{Label: 0, Cont: Return, Args: []Atom{Var("var$0")}},
	}
	assert.Equal(t, expected, prog)
}

func TestConvertConditionalSharesJoin(t *testing.T) {
	prog, err := Convert(ast.If(ast.Bool(true), ast.I32(1), ast.I32(2)))
	require.NoError(t, err)

	expected := &LetCont{
		Label:  2,
		Name:   "cont$0",
		Params: []string{"var$0"},
		Body:   &AppCont{Label: 0, Cont: Return, Args: []Atom{Var("var$0")}},
		Rest: &If{
			Label: 1,
			Test:  Bool(true),
			Then:  &AppCont{Label: 3, Cont: Named("cont$0"), Args: []Atom{I32(1)}},
			Else:  &AppCont{Label: 4, Cont: Named("cont$0"), Args: []Atom{I32(2)}},
		},
	}
	assert.Equal(t, expected, prog)
}

func TestConvertLet(t *testing.T) {
	prog, err := Convert(ast.Let("a", ast.I32(7), ast.Var("a")))
	require.NoError(t, err)

	expected := &LetVal{
		Label: 1,
		Var:   "a",
		Value: I32(7),
		Rest:  &AppCont{Label: 0, Cont: Return, Args: []Atom{Var("a")}},
	}
	assert.Equal(t, expected, prog)
}

func TestConvertLambdaReturnsThroughReturn(t *testing.T) {
	prog, err := Convert(ast.Lambda([]string{"x"}, ast.Var("x")))
	require.NoError(t, err)

	lam := prog.(*AppCont).Args[0].(*Lambda)
	assert.Equal(t, 1, lam.Label)
	assert.Equal(t, []string{"x"}, lam.Params)
	assert.Equal(t, &AppCont{Label: 2, Cont: Return, Args: []Atom{Var("x")}}, lam.Body)
}

func TestConvertFactorialLabelsUnique(t *testing.T) {
	prog, err := Convert(factorialProgram())
	require.NoError(t, err)

	labels := Labels(prog)
	assert.Len(t, labels, 15)
	assert.ElementsMatch(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14}, labels)
	assert.NoError(t, CheckLabels(prog))
	assert.NoError(t, CheckScopes(prog))
}

func TestConvertFixRequiresLambda(t *testing.T) {
	prog, err := Convert(ast.Fix([]string{"f"}, []ast.Expr{ast.I32(1)}, ast.Var("f")))

	assert.Nil(t, prog)
	var inv *errors.InvariantError
	require.ErrorAs(t, err, &inv)
	assert.Equal(t, errors.KindContract, inv.Kind)
}

func TestConvertFixArityMismatch(t *testing.T) {
	_, err := Convert(ast.Fix([]string{"f", "g"}, []ast.Expr{ast.Lambda(nil, ast.I32(1))}, ast.Var("f")))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fix binds 2 names to 1 values")
}

func TestConvertRejectsGeneratedNames(t *testing.T) {
	_, err := Convert(ast.Let("var$0", ast.I32(1), ast.Var("var$0")))

	var inv *errors.InvariantError
	require.ErrorAs(t, err, &inv)
	assert.Equal(t, errors.KindContract, inv.Kind)
}

func TestConvertNilExpression(t *testing.T) {
	_, err := Convert(nil)
	require.Error(t, err)
}

func TestConvertIsDeterministic(t *testing.T) {
	first, err := Convert(factorialProgram())
	require.NoError(t, err)
	second, err := Convert(factorialProgram())
	require.NoError(t, err)

	assert.Equal(t, Print(first), Print(second))
}

func TestCompileNormalizes(t *testing.T) {
	prog, err := Compile(factorialProgram(), true)
	require.NoError(t, err)
	assert.NoError(t, CheckScopes(prog))

	_, err = Compile(ast.Fix([]string{"f"}, []ast.Expr{ast.Var("g")}, ast.Var("f")), true)
	assert.Error(t, err)
}
