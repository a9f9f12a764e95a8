package repl

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cpsir/internal/config"
)

func run(t *testing.T, input string) string {
	t.Helper()
	color.NoColor = true
	var out bytes.Buffer
	require.NoError(t, Start(strings.NewReader(input), &out, config.Default()))
	return out.String()
}

func TestEvaluatesExpression(t *testing.T) {
	out := run(t, "(prim i32.add 2 3)\n")

	assert.Contains(t, out, "let#1 var$0 = i32.add(2, 3)")
	assert.Contains(t, out, "=> 5")
}

func TestMultiLineInput(t *testing.T) {
	out := run(t, "(let x 4\n  (prim i32.mul x x))\n")

	assert.Contains(t, out, CONTINUATION)
	assert.Contains(t, out, "=> 16")
}

func TestReportsErrorsAndContinues(t *testing.T) {
	out := run(t, "(prim nope 1)\n(prim i32.div 1 0)\n42\n")

	assert.Contains(t, out, "E0201")
	assert.Contains(t, out, "division by zero")
	assert.Contains(t, out, "=> 42")
}

func TestCommands(t *testing.T) {
	out := run(t, ":normalize\n:quit\n42\n")

	assert.Contains(t, out, "normalize: true")
	assert.NotContains(t, out, "=> 42")
}

func TestDepth(t *testing.T) {
	assert.Equal(t, 0, depth("(a (b c))"))
	assert.Equal(t, 2, depth("(a (b"))
	assert.Equal(t, 1, depth(`(f "(" #\( ; )`))
}
