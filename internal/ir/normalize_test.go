package ir

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cpsir/internal/ast"
	"cpsir/internal/builtins"
)

// valueAfterCont is
//
//	letcont k(r) { return(r) }
//	let x = i32.add(1, 2)
//	letval y = x
//	appcont k(y)
func valueAfterCont() Node {
	return &LetCont{
		Label:  1,
		Name:   "k",
		Params: []string{"r"},
		Body:   &AppCont{Label: 2, Cont: Return, Args: []Atom{Var("r")}},
		Rest: &Let{
			Label: 3,
			Var:   "x",
			Op:    builtins.I32Add,
			Args:  []Atom{I32(1), I32(2)},
			Rest: &LetVal{
				Label: 4,
				Var:   "y",
				Value: Var("x"),
				Rest:  &AppCont{Label: 5, Cont: Named("k"), Args: []Atom{Var("y")}},
			},
		},
	}
}

func TestNormalizeHoistsValues(t *testing.T) {
	got := Normalize(valueAfterCont())

	expected := &Let{
		Label: 3,
		Var:   "x",
		Op:    builtins.I32Add,
		Args:  []Atom{I32(1), I32(2)},
		Rest: &LetVal{
			Label: 4,
			Var:   "y",
			Value: Var("x"),
			Rest: &LetCont{
				Label:  1,
				Name:   "k",
				Params: []string{"r"},
				Body:   &AppCont{Label: 2, Cont: Return, Args: []Atom{Var("r")}},
				Rest:   &AppCont{Label: 5, Cont: Named("k"), Args: []Atom{Var("y")}},
			},
		},
	}
	if diff := cmp.Diff(expected, got); diff != "" {
		t.Errorf("Normalize mismatch (-want +got):\n%s", diff)
	}
}

func TestNormalizeKeepsGroupOrder(t *testing.T) {
	prog := &LetCont{
		Label: 1, Name: "k1", Params: []string{"a"},
		Body: &AppCont{Label: 2, Cont: Return, Args: []Atom{Var("a")}},
		Rest: &LetVal{
			Label: 3, Var: "v1", Value: I32(1),
			Rest: &LetCont{
				Label: 4, Name: "k2", Params: []string{"b"},
				Body: &AppCont{Label: 5, Cont: Named("k1"), Args: []Atom{Var("b")}},
				Rest: &LetVal{
					Label: 6, Var: "v2", Value: I32(2),
					Rest: &App{Label: 7, Func: Var("f"), Args: []Atom{Var("v1"), Var("v2")}, Cont: Named("k2")},
				},
			},
		},
	}

	var kinds []string
	var labels []int
	for n := Normalize(prog); n != nil; {
		kinds = append(kinds, Kind(n))
		labels = append(labels, n.GetLabel())
		children := Children(n)
		switch len(children) {
		case 0:
			n = nil
		default:
			n = children[len(children)-1]
		}
	}

	assert.Equal(t, []string{"letval", "letval", "letcont", "letcont", "app"}, kinds)
	assert.Equal(t, []int{3, 6, 1, 4, 7}, labels)
}

func TestNormalizeRecursesIntoBodies(t *testing.T) {
	lam := &Lambda{Label: 10, Params: []string{"p"}, Body: valueAfterCont()}
	prog := &LetVal{Label: 11, Var: "f", Value: lam, Rest: &AppCont{Label: 12, Cont: Return, Args: []Atom{Var("f")}}}

	got := Normalize(prog).(*LetVal)
	body := got.Value.(*Lambda).Body
	assert.Equal(t, "let", Kind(body))
	assert.Equal(t, Normalize(valueAfterCont()), body)

	// the input is left untouched
	assert.Equal(t, "letcont", Kind(lam.Body))
}

func TestNormalizeIdempotent(t *testing.T) {
	progs := []Node{valueAfterCont()}
	fact, err := Convert(factorialProgram())
	require.NoError(t, err)
	progs = append(progs, fact)

	for _, prog := range progs {
		once := Normalize(prog)
		twice := Normalize(once)
		if diff := cmp.Diff(once, twice); diff != "" {
			t.Errorf("Normalize not idempotent (-once +twice):\n%s", diff)
		}
		assert.ElementsMatch(t, Labels(prog), Labels(once))
		assert.NoError(t, CheckScopes(once))
	}
}

func TestNormalizeBuilderOutput(t *testing.T) {
	prog, err := Convert(ast.Let("a",
		ast.App(ast.Var("f"), ast.I32(1)),
		ast.PrimApp(builtins.I32Add, ast.Var("a"), ast.I32(2))))
	require.NoError(t, err)

	if diff := cmp.Diff(prog, Normalize(prog)); diff != "" {
		t.Errorf("builder output changed by Normalize (-want +got):\n%s", diff)
	}
}
