package ast

// Position is a location in a source file. Zero for trees built in code.
type Position struct {
	Filename string
	Offset   int
	Line     int
	Column   int
}

type NodeType string

const (
	VAR      NodeType = "Var"
	I32_LIT  NodeType = "I32Lit"
	I64_LIT  NodeType = "I64Lit"
	U32_LIT  NodeType = "U32Lit"
	U64_LIT  NodeType = "U64Lit"
	BOOL_LIT NodeType = "BoolLit"
	CHAR_LIT NodeType = "CharLit"
	STR_LIT  NodeType = "StringLit"
	LAMBDA   NodeType = "Lambda"
	APP      NodeType = "App"
	PRIM_APP NodeType = "PrimApp"
	IF       NodeType = "If"
	LET      NodeType = "Let"
	FIX      NodeType = "Fix"
)

type Node interface {
	NodePos() Position
	NodeEndPos() Position
	NodeType() NodeType
	String() string
}

// Span is embedded by every expression to carry its source range.
type Span struct {
	Pos    Position
	EndPos Position
}

func (s Span) NodePos() Position    { return s.Pos }
func (s Span) NodeEndPos() Position { return s.EndPos }

func (*VarExpr) NodeType() NodeType     { return VAR }
func (*I32Lit) NodeType() NodeType      { return I32_LIT }
func (*I64Lit) NodeType() NodeType      { return I64_LIT }
func (*U32Lit) NodeType() NodeType      { return U32_LIT }
func (*U64Lit) NodeType() NodeType      { return U64_LIT }
func (*BoolLit) NodeType() NodeType     { return BOOL_LIT }
func (*CharLit) NodeType() NodeType     { return CHAR_LIT }
func (*StringLit) NodeType() NodeType   { return STR_LIT }
func (*LambdaExpr) NodeType() NodeType  { return LAMBDA }
func (*AppExpr) NodeType() NodeType     { return APP }
func (*PrimAppExpr) NodeType() NodeType { return PRIM_APP }
func (*IfExpr) NodeType() NodeType      { return IF }
func (*LetExpr) NodeType() NodeType     { return LET }
func (*FixExpr) NodeType() NodeType     { return FIX }

// SetSpan records the source range of a node built by a reader
func (s *Span) SetSpan(pos, end Position) {
	s.Pos = pos
	s.EndPos = end
}
