package grammar

import (
	"fmt"
	"os"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"cpsir/internal/ast"
	"cpsir/internal/errors"
)

var parser = participle.MustBuild[Program](
	participle.Lexer(SExprLexer),
	participle.Elide("Whitespace", "Comment"),
	participle.UseLookahead(2),
)

// Parse reads one expression from src. When diagnostics are returned the
// expression is nil.
func Parse(filename, src string) (ast.Expr, []errors.Diagnostic) {
	program, err := parser.ParseString(filename, src)
	if err != nil {
		return nil, []errors.Diagnostic{syntaxDiagnostic(filename, err)}
	}

	if len(program.Exprs) == 0 {
		end := ast.Position{Filename: filename, Offset: len(src), Line: 1, Column: 1}
		return nil, []errors.Diagnostic{errors.NewDiagnostic(errors.ErrorSyntax, "expected an expression", end)}
	}

	l := &lowerer{}
	expr := l.lower(program.Exprs[0])
	for _, extra := range program.Exprs[1:] {
		l.report(errors.NewDiagnostic(errors.ErrorTrailingExpr, "unexpected expression after the program", position(extra.Pos)).
			WithLength(extra.EndPos.Offset-extra.Pos.Offset).
			WithHelp("a source file holds exactly one expression; wrap several in let"))
	}
	if len(l.diags) > 0 {
		return nil, l.diags
	}
	return expr, nil
}

// ParseFile reads and parses the file at path. The error is only set when
// the file cannot be read.
func ParseFile(path string) (ast.Expr, []errors.Diagnostic, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read file: %w", err)
	}
	expr, diags := Parse(path, string(source))
	return expr, diags, nil
}

func syntaxDiagnostic(filename string, err error) errors.Diagnostic {
	pe, ok := err.(participle.Error)
	if !ok {
		return errors.NewDiagnostic(errors.ErrorSyntax, err.Error(), ast.Position{Filename: filename, Line: 1, Column: 1})
	}
	return errors.NewDiagnostic(errors.ErrorSyntax, pe.Message(), position(pe.Position()))
}

func position(p lexer.Position) ast.Position {
	return ast.Position{Filename: p.Filename, Offset: p.Offset, Line: p.Line, Column: p.Column}
}
