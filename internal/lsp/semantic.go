package lsp

import (
	"strings"
	"unicode/utf8"

	"github.com/alecthomas/participle/v2/lexer"

	"cpsir/grammar"
	"cpsir/internal/builtins"
)

// SemanticToken represents a single LSP semantic token entry
// Line and StartChar are 0-based positions
// TokenType is an index into the semanticTokenTypes array
// TokenModifiers is a bitmask based on semanticTokenModifiers
type SemanticToken struct {
	Line           uint32
	StartChar      uint32
	Length         uint32
	TokenType      int // index into semanticTokenTypes
	TokenModifiers int // bitmask
}

var keywords = []string{"fix", "if", "lambda", "let", "prim", "true", "false"}

func isKeyword(s string) bool {
	for _, k := range keywords {
		if k == s {
			return true
		}
	}
	return false
}

// tokenClassifier tracks just enough of the surrounding forms to tell
// binders from uses.
type tokenClassifier struct {
	prev       string
	inParams   bool
	fixDepth   int
	fixPending bool
}

// collectSemanticTokens lexes text and classifies every token. Text the
// lexer rejects yields the tokens before the error.
func collectSemanticTokens(filename, text string) []SemanticToken {
	var tokens []SemanticToken

	lex, err := grammar.SExprLexer.Lex(filename, strings.NewReader(text))
	if err != nil {
		return tokens
	}
	names := lexer.SymbolsByRune(grammar.SExprLexer)

	c := &tokenClassifier{}
	for {
		tok, err := lex.Next()
		if err != nil || tok.EOF() {
			return tokens
		}
		kind := names[tok.Type]
		if kind == "Whitespace" {
			continue
		}
		if tokenType, modifiers, ok := c.classify(kind, tok.Value); ok {
			tokens = append(tokens, makeToken(tok.Pos, tok.Value, tokenType, modifiers)...)
		}
		if kind != "Comment" {
			c.prev = tok.Value
		}
	}
}

func (c *tokenClassifier) classify(kind, value string) (tokenType string, declaration int, ok bool) {
	switch kind {
	case "Comment":
		return "comment", 0, true
	case "Int":
		return "number", 0, true
	case "String", "Char":
		return "string", 0, true
	case "Punct":
		c.punct(value)
		return "", 0, false
	}

	switch {
	case c.inParams:
		return "parameter", 1, true
	case c.fixDepth == 2 && c.prev == "(":
		return "function", 1, true
	case isKeyword(value):
		if value == "fix" {
			c.fixPending = true
		}
		return "keyword", 0, true
	case c.prev == "prim":
		if _, known := builtins.Lookup(value); known {
			return "operator", 0, true
		}
		return "variable", 0, true
	case c.prev == "let":
		return "variable", 1, true
	}
	return "variable", 0, true
}

func (c *tokenClassifier) punct(value string) {
	if value == "(" {
		if c.prev == "lambda" {
			c.inParams = true
		}
		if c.fixPending {
			c.fixPending = false
			c.fixDepth = 1
		} else if c.fixDepth > 0 {
			c.fixDepth++
		}
		return
	}

	c.inParams = false
	if c.fixDepth > 0 {
		c.fixDepth--
	}
}

// makeToken creates a semantic token for a given position and text
func makeToken(pos lexer.Position, value, tokenType string, declModifier int) []SemanticToken {
	if value == "" {
		return nil
	}

	// multi-line tokens are not representable; mark their first line only
	if i := strings.IndexByte(value, '\n'); i >= 0 {
		value = value[:i]
	}

	return []SemanticToken{{
		Line:           uint32(pos.Line - 1),   // LSP uses 0-based line numbers
		StartChar:      uint32(pos.Column - 1), // LSP uses 0-based column numbers
		Length:         uint32(utf8.RuneCountInString(value)),
		TokenType:      indexOf(tokenType, SemanticTokenTypes),
		TokenModifiers: declModifier << indexOf("declaration", SemanticTokenModifiers),
	}}
}

// indexOf returns the index of a string in a slice, or 0 if not found
func indexOf(target string, list []string) int {
	for i, v := range list {
		if v == target {
			return i
		}
	}
	return 0 // Default to first token type if not found
}
