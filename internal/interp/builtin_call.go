package interp

import (
	"fmt"

	"cpsir/internal/builtins"
	"cpsir/internal/ir"
)

type integer interface {
	ir.I32 | ir.I64 | ir.U32 | ir.U64
	String() string
}

// CallBuiltin applies op to args. Arithmetic wraps around on overflow;
// division by zero is an error.
func CallBuiltin(op builtins.Op, args []Value) (Value, error) {
	if !op.Valid() {
		return nil, fmt.Errorf("unknown primitive %s", op)
	}
	if len(args) != op.Arity() {
		return nil, fmt.Errorf("%s expects %d operands, got %d", op, op.Arity(), len(args))
	}

	switch op.Kind() {
	case builtins.I32:
		return apply[ir.I32](op, args)
	case builtins.I64:
		return apply[ir.I64](op, args)
	case builtins.U32:
		return apply[ir.U32](op, args)
	default:
		return apply[ir.U64](op, args)
	}
}

func apply[T integer](op builtins.Op, args []Value) (Value, error) {
	operands := make([]T, len(args))
	for i, arg := range args {
		v, ok := arg.(T)
		if !ok {
			return nil, fmt.Errorf("%s: operand %d is %s, not %s", op, i+1, describe(arg), op.Kind())
		}
		operands[i] = v
	}

	a := operands[0]
	if op.Operation() == builtins.Not {
		return ^a, nil
	}
	b := operands[1]

	switch op.Operation() {
	case builtins.Add:
		return a + b, nil
	case builtins.Sub:
		return a - b, nil
	case builtins.Mul:
		return a * b, nil
	case builtins.Div:
		if b == 0 {
			return nil, fmt.Errorf("%s: division by zero", op)
		}
		return a / b, nil
	case builtins.Eq:
		return ir.Bool(a == b), nil
	case builtins.Gt:
		return ir.Bool(a > b), nil
	case builtins.Geq:
		return ir.Bool(a >= b), nil
	case builtins.Lt:
		return ir.Bool(a < b), nil
	case builtins.Leq:
		return ir.Bool(a <= b), nil
	case builtins.And:
		return a & b, nil
	case builtins.Or:
		return a | b, nil
	case builtins.Xor:
		return a ^ b, nil
	}
	return nil, fmt.Errorf("unknown primitive %s", op)
}

func describe(v Value) string {
	switch v.(type) {
	case ir.I32:
		return "i32 " + v.String()
	case ir.I64:
		return "i64 " + v.String()
	case ir.U32:
		return "u32 " + v.String()
	case ir.U64:
		return "u64 " + v.String()
	case ir.Bool:
		return "bool " + v.String()
	case ir.Char:
		return "char " + v.String()
	case ir.Str:
		return "string " + v.String()
	case *Closure:
		return "a closure"
	case nil:
		return "nothing"
	}
	return fmt.Sprintf("%T", v)
}
