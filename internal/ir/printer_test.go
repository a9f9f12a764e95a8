package ir

import (
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cpsir/internal/ast"
	"cpsir/internal/builtins"
)

func TestPrintFactorial(t *testing.T) {
	prog, err := Convert(factorialProgram())
	require.NoError(t, err)

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "factorial", []byte(Print(prog)))
}

func TestPrintWhereBlock(t *testing.T) {
	prog, err := Convert(ast.App(ast.Var("f"), ast.Lambda([]string{"y"}, ast.Var("y"))))
	require.NoError(t, err)

	expected := "letcont#3 cont$0(var$0) {\n" +
		"  appcont#0 return(var$0)\n" +
		"}\n" +
		"app#4 f(lambda#1(y)) -> cont$0\n" +
		"  where lambda#1(y) {\n" +
		"    appcont#2 return(y)\n" +
		"  }\n"
	assert.Equal(t, expected, Print(prog))
}

func TestPrintLiterals(t *testing.T) {
	prog, err := Convert(ast.Let("s", ast.Str("hi"),
		ast.Let("c", ast.Char('a'),
			ast.PrimApp(builtins.U64Add, ast.U64(1), ast.U64(2)))))
	require.NoError(t, err)

	out := Print(prog)
	assert.Contains(t, out, `letval#1 s = "hi"`)
	assert.Contains(t, out, `letval#2 c = #\a`)
	assert.Contains(t, out, "let#3 var$0 = u64.add(1u64, 2u64)")
}

func TestTree(t *testing.T) {
	prog, err := Convert(factorialProgram())
	require.NoError(t, err)

	out := Tree(prog)
	assert.Contains(t, out, "program")
	assert.Contains(t, out, "fix#1 fact")
	assert.Contains(t, out, "lambda#2(x)")
	assert.Contains(t, out, "if#4 var$0")
	assert.Contains(t, out, "app#14 fact(5) -> cont$2")
}
