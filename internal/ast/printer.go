package ast

import (
	"fmt"
	"strconv"
	"strings"
)

// String methods render expressions in the surface s-expression syntax read
// by the grammar package.

func (v *VarExpr) String() string { return v.Name }
func (l *I32Lit) String() string  { return strconv.FormatInt(int64(l.Value), 10) }
func (l *I64Lit) String() string  { return strconv.FormatInt(l.Value, 10) + "i64" }
func (l *U32Lit) String() string  { return strconv.FormatUint(uint64(l.Value), 10) + "u32" }
func (l *U64Lit) String() string  { return strconv.FormatUint(l.Value, 10) + "u64" }
func (l *BoolLit) String() string { return strconv.FormatBool(l.Value) }
func (l *CharLit) String() string { return `#\` + string(l.Value) }

func (l *StringLit) String() string { return strconv.Quote(l.Value) }

func (l *LambdaExpr) String() string {
	return fmt.Sprintf("(lambda (%s) %s)", strings.Join(l.Params, " "), l.Body)
}

func (a *AppExpr) String() string {
	parts := []string{a.Func.String()}
	for _, arg := range a.Args {
		parts = append(parts, arg.String())
	}
	return "(" + strings.Join(parts, " ") + ")"
}

func (p *PrimAppExpr) String() string {
	parts := []string{"prim", p.Op.String()}
	for _, arg := range p.Args {
		parts = append(parts, arg.String())
	}
	return "(" + strings.Join(parts, " ") + ")"
}

func (i *IfExpr) String() string {
	return fmt.Sprintf("(if %s %s %s)", i.Test, i.Then, i.Else)
}

func (l *LetExpr) String() string {
	return fmt.Sprintf("(let %s %s %s)", l.Name, l.Value, l.Body)
}

func (f *FixExpr) String() string {
	var b strings.Builder
	b.WriteString("(fix (")
	for i, name := range f.Names {
		if i > 0 {
			b.WriteString(" ")
		}
		value := "?"
		if i < len(f.Values) {
			value = f.Values[i].String()
		}
		b.WriteString(fmt.Sprintf("(%s %s)", name, value))
	}
	b.WriteString(") ")
	b.WriteString(f.Body.String())
	b.WriteString(")")
	return b.String()
}
