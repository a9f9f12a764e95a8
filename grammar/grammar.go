package grammar

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// Program is a source file. Exactly one expression is expected; the reader
// reports any others.
type Program struct {
	Exprs []*SExpr `parser:"@@*"`
}

type SExpr struct {
	Pos    lexer.Position
	EndPos lexer.Position

	Int   *string `parser:"  @Int"`
	Char  *string `parser:"| @Char"`
	Str   *string `parser:"| @String"`
	Ident *string `parser:"| @Ident"`
	List  *List   `parser:"| @@"`
}

type List struct {
	Pos    lexer.Position
	EndPos lexer.Position

	Items []*SExpr `parser:"\"(\" @@* \")\""`
}
