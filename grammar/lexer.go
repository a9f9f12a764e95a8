package grammar

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// SExprLexer tokenizes the s-expression surface syntax. Identifiers never
// contain '$', which is reserved for generated names.
var SExprLexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		// Comments
		{Name: "Comment", Pattern: `;[^\n]*`, Action: nil},

		// Literals (integers before identifiers so "-5" is a number)
		{Name: "String", Pattern: `"(\\.|[^"\\])*"`, Action: nil},
		{Name: "Char", Pattern: `#\\([a-z]+|.)`, Action: nil},
		{Name: "Int", Pattern: `-?[0-9]+(i32|i64|u32|u64)?`, Action: nil},

		// Identifiers, keywords and primitive names such as i32.add
		{Name: "Ident", Pattern: `[a-zA-Z_+\-*/<>=!?][a-zA-Z0-9_+\-*/<>=!?.]*`, Action: nil},

		// Punctuation
		{Name: "Punct", Pattern: `[()]`, Action: nil},

		// Whitespace
		{Name: "Whitespace", Pattern: `[ \t\r\n]+`, Action: nil},
	},
})
