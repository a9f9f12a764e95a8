package ir

import (
	"strconv"
	"strings"

	"cpsir/internal/builtins"
)

// Atoms are side-effect-free operands. All atoms except *Lambda are plain
// comparable values; a *Lambda compares by identity.

type Atom interface {
	isAtom()
	String() string
}

type (
	Var  string
	I32  int32
	I64  int64
	U32  uint32
	U64  uint64
	Bool bool
	Char rune
	Str  string
)

// Lambda is a function value: parameters and an owned CPS body. The label
// keys the function's entry and exit in the control flow graph.
type Lambda struct {
	Label  int
	Params []string
	Body   Node
}

func (Var) isAtom()     {}
func (I32) isAtom()     {}
func (I64) isAtom()     {}
func (U32) isAtom()     {}
func (U64) isAtom()     {}
func (Bool) isAtom()    {}
func (Char) isAtom()    {}
func (Str) isAtom()     {}
func (*Lambda) isAtom() {}

func (v Var) String() string  { return string(v) }
func (v I32) String() string  { return strconv.FormatInt(int64(v), 10) }
func (v I64) String() string  { return strconv.FormatInt(int64(v), 10) + "i64" }
func (v U32) String() string  { return strconv.FormatUint(uint64(v), 10) + "u32" }
func (v U64) String() string  { return strconv.FormatUint(uint64(v), 10) + "u64" }
func (v Bool) String() string { return strconv.FormatBool(bool(v)) }
func (v Char) String() string { return `#\` + string(rune(v)) }
func (v Str) String() string  { return strconv.Quote(string(v)) }

func (l *Lambda) String() string {
	return "lambda#" + strconv.Itoa(l.Label) + "(" + strings.Join(l.Params, ", ") + ")"
}

// Cont names where control goes next: a continuation bound by an enclosing
// LetCont, or Return, which leaves the current function.
type Cont struct {
	Name string
}

// Return exits the current function, or the program at top level.
var Return = Cont{}

func Named(name string) Cont { return Cont{Name: name} }

func (c Cont) IsReturn() bool { return c.Name == "" }

func (c Cont) String() string {
	if c.IsReturn() {
		return "return"
	}
	return c.Name
}

// Node is one of the seven IR variants. Labels are unique within a tree.
type Node interface {
	GetLabel() int
	isNode()
}

// LetCont binds continuation Name(Params) = Body over Rest
type LetCont struct {
	Label  int
	Name   string
	Params []string
	Body   Node
	Rest   Node
}

// Let binds Var to Op applied to Args
type Let struct {
	Label int
	Var   string
	Op    builtins.Op
	Args  []Atom
	Rest  Node
}

// LetVal binds Var to an atom
type LetVal struct {
	Label int
	Var   string
	Value Atom
	Rest  Node
}

// If selects one of two terminal subtrees
type If struct {
	Label int
	Test  Atom
	Then  Node
	Else  Node
}

// App calls Func with Args and delivers the result to Cont
type App struct {
	Label int
	Func  Atom
	Args  []Atom
	Cont  Cont
}

// Fix binds mutually recursive functions over Rest
type Fix struct {
	Label int
	Names []string
	Funcs []*Lambda
	Rest  Node
}

// AppCont invokes a continuation
type AppCont struct {
	Label int
	Cont  Cont
	Args  []Atom
}

func (n *LetCont) GetLabel() int { return n.Label }
func (n *Let) GetLabel() int     { return n.Label }
func (n *LetVal) GetLabel() int  { return n.Label }
func (n *If) GetLabel() int      { return n.Label }
func (n *App) GetLabel() int     { return n.Label }
func (n *Fix) GetLabel() int     { return n.Label }
func (n *AppCont) GetLabel() int { return n.Label }

func (*LetCont) isNode() {}
func (*Let) isNode()     {}
func (*LetVal) isNode()  {}
func (*If) isNode()      {}
func (*App) isNode()     {}
func (*Fix) isNode()     {}
func (*AppCont) isNode() {}

// Kind names the variant of n, for logs and dumps
func Kind(n Node) string {
	switch n.(type) {
	case *LetCont:
		return "letcont"
	case *Let:
		return "let"
	case *LetVal:
		return "letval"
	case *If:
		return "if"
	case *App:
		return "app"
	case *Fix:
		return "fix"
	case *AppCont:
		return "appcont"
	default:
		return "?"
	}
}

// IsTerminal reports whether n ends a control-flow spine
func IsTerminal(n Node) bool {
	switch n.(type) {
	case *App, *AppCont, *If:
		return true
	default:
		return false
	}
}
