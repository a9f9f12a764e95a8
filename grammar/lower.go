package grammar

import (
	"fmt"
	"strconv"
	"strings"

	"cpsir/internal/ast"
	"cpsir/internal/builtins"
	"cpsir/internal/errors"
)

// lowerer turns s-expressions into expression trees, collecting a
// diagnostic for every malformed form instead of stopping at the first.
type lowerer struct {
	diags []errors.Diagnostic
}

func (l *lowerer) report(d errors.Diagnostic) {
	l.diags = append(l.diags, d)
}

func (l *lowerer) errorf(s *SExpr, code, format string, args ...any) {
	l.report(errors.NewDiagnostic(code, fmt.Sprintf(format, args...), position(s.Pos)).
		WithLength(max(1, s.EndPos.Offset-s.Pos.Offset)))
}

func (l *lowerer) lower(s *SExpr) ast.Expr {
	expr := l.lowerExpr(s)
	if spanned, ok := expr.(interface{ SetSpan(pos, end ast.Position) }); ok {
		spanned.SetSpan(position(s.Pos), position(s.EndPos))
	}
	return expr
}

func (l *lowerer) lowerExpr(s *SExpr) ast.Expr {
	switch {
	case s.Int != nil:
		return l.integer(s, *s.Int)
	case s.Char != nil:
		return l.char(s, *s.Char)
	case s.Str != nil:
		v, err := strconv.Unquote(*s.Str)
		if err != nil {
			l.errorf(s, errors.ErrorBadLiteral, "malformed string literal %s", *s.Str)
			return ast.Str("")
		}
		return ast.Str(v)
	case s.Ident != nil:
		switch *s.Ident {
		case "true":
			return ast.Bool(true)
		case "false":
			return ast.Bool(false)
		}
		return ast.Var(*s.Ident)
	default:
		return l.list(s)
	}
}

func (l *lowerer) integer(s *SExpr, text string) ast.Expr {
	digits, suffix := text, "i32"
	for _, kind := range []string{"i32", "i64", "u32", "u64"} {
		if strings.HasSuffix(text, kind) {
			digits, suffix = strings.TrimSuffix(text, kind), kind
			break
		}
	}

	var err error
	var expr ast.Expr
	switch suffix {
	case "i32":
		var v int64
		v, err = strconv.ParseInt(digits, 10, 32)
		expr = ast.I32(int32(v))
	case "i64":
		var v int64
		v, err = strconv.ParseInt(digits, 10, 64)
		expr = ast.I64(v)
	case "u32":
		var v uint64
		v, err = strconv.ParseUint(digits, 10, 32)
		expr = ast.U32(uint32(v))
	case "u64":
		var v uint64
		v, err = strconv.ParseUint(digits, 10, 64)
		expr = ast.U64(v)
	}
	if err != nil {
		l.errorf(s, errors.ErrorLiteralRange, "integer literal %s does not fit in %s", text, suffix)
	}
	return expr
}

var charNames = map[string]rune{
	"space":   ' ',
	"newline": '\n',
	"tab":     '\t',
}

func (l *lowerer) char(s *SExpr, text string) ast.Expr {
	body := strings.TrimPrefix(text, `#\`)
	if r, ok := charNames[body]; ok {
		return ast.Char(r)
	}
	runes := []rune(body)
	if len(runes) != 1 {
		l.errorf(s, errors.ErrorBadLiteral, "unknown character name %s", text)
		return ast.Char(0)
	}
	return ast.Char(runes[0])
}

func (l *lowerer) list(s *SExpr) ast.Expr {
	items := s.List.Items
	if len(items) == 0 {
		l.errorf(s, errors.ErrorEmptyApplication, "empty application")
		return ast.Var("_")
	}

	if head := items[0].Ident; head != nil {
		switch *head {
		case "lambda":
			return l.lambda(s, items)
		case "prim":
			return l.prim(s, items)
		case "if":
			if len(items) != 4 {
				l.errorf(s, errors.ErrorMalformedForm, "if takes a test and two branches")
				return ast.Var("_")
			}
			return ast.If(l.lower(items[1]), l.lower(items[2]), l.lower(items[3]))
		case "let":
			return l.let(s, items)
		case "fix":
			return l.fix(s, items)
		}
	}

	fn := l.lower(items[0])
	args := make([]ast.Expr, len(items)-1)
	for i, item := range items[1:] {
		args[i] = l.lower(item)
	}
	return ast.App(fn, args...)
}

// (lambda (x y) body)
func (l *lowerer) lambda(s *SExpr, items []*SExpr) ast.Expr {
	if len(items) != 3 || items[1].List == nil {
		l.errorf(s, errors.ErrorMalformedForm, "lambda takes a parameter list and a body")
		return ast.Var("_")
	}
	params := l.names(items[1].List.Items)
	return ast.Lambda(params, l.lower(items[2]))
}

// (prim i32.add a b)
func (l *lowerer) prim(s *SExpr, items []*SExpr) ast.Expr {
	if len(items) < 2 || items[1].Ident == nil {
		l.errorf(s, errors.ErrorMalformedForm, "prim takes an operation name and operands")
		return ast.Var("_")
	}
	op, ok := builtins.Lookup(*items[1].Ident)
	if !ok {
		l.errorf(items[1], errors.ErrorUnknownPrimitive, "unknown primitive %s", *items[1].Ident)
		return ast.Var("_")
	}
	operands := items[2:]
	if len(operands) != op.Arity() {
		l.errorf(s, errors.ErrorPrimitiveArity, "%s takes %d operands, got %d", op, op.Arity(), len(operands))
	}
	args := make([]ast.Expr, len(operands))
	for i, item := range operands {
		args[i] = l.lower(item)
	}
	return ast.PrimApp(op, args...)
}

// (let x value body)
func (l *lowerer) let(s *SExpr, items []*SExpr) ast.Expr {
	if len(items) != 4 || items[1].Ident == nil {
		l.errorf(s, errors.ErrorMalformedForm, "let takes a name, a value and a body")
		return ast.Var("_")
	}
	return ast.Let(*items[1].Ident, l.lower(items[2]), l.lower(items[3]))
}

// (fix ((f (lambda ...)) (g (lambda ...))) body)
func (l *lowerer) fix(s *SExpr, items []*SExpr) ast.Expr {
	if len(items) != 3 || items[1].List == nil {
		l.errorf(s, errors.ErrorMalformedForm, "fix takes a binding list and a body")
		return ast.Var("_")
	}

	var names []string
	var values []ast.Expr
	for _, binding := range items[1].List.Items {
		if binding.List == nil || len(binding.List.Items) != 2 || binding.List.Items[0].Ident == nil {
			l.errorf(binding, errors.ErrorMalformedForm, "fix binding must be (name (lambda ...))")
			continue
		}
		value := binding.List.Items[1]
		if !isLambda(value) {
			l.errorf(value, errors.ErrorFixNotLambda, "fix can only bind lambdas")
			continue
		}
		names = append(names, *binding.List.Items[0].Ident)
		values = append(values, l.lower(value))
	}
	return ast.Fix(names, values, l.lower(items[2]))
}

func (l *lowerer) names(items []*SExpr) []string {
	names := make([]string, 0, len(items))
	for _, item := range items {
		if item.Ident == nil {
			l.errorf(item, errors.ErrorMalformedForm, "expected a parameter name")
			continue
		}
		names = append(names, *item.Ident)
	}
	return names
}

func isLambda(s *SExpr) bool {
	if s.List == nil || len(s.List.Items) == 0 {
		return false
	}
	head := s.List.Items[0].Ident
	return head != nil && *head == "lambda"
}
