package builtins

import "fmt"

// Op is a primitive operation applied by a Let binding. The set is closed:
// thirteen operations for each of the four integer kinds.
type Op int

const (
	I32Add Op = iota
	I32Sub
	I32Mul
	I32Div
	I32Eq
	I32Gt
	I32Geq
	I32Lt
	I32Leq
	I32And
	I32Or
	I32Xor
	I32Not

	I64Add
	I64Sub
	I64Mul
	I64Div
	I64Eq
	I64Gt
	I64Geq
	I64Lt
	I64Leq
	I64And
	I64Or
	I64Xor
	I64Not

	U32Add
	U32Sub
	U32Mul
	U32Div
	U32Eq
	U32Gt
	U32Geq
	U32Lt
	U32Leq
	U32And
	U32Or
	U32Xor
	U32Not

	U64Add
	U64Sub
	U64Mul
	U64Div
	U64Eq
	U64Gt
	U64Geq
	U64Lt
	U64Leq
	U64And
	U64Or
	U64Xor
	U64Not

	opCount
)

// IntKind is the operand type family of an Op
type IntKind int

const (
	I32 IntKind = iota
	I64
	U32
	U64
)

var kindNames = [...]string{"i32", "i64", "u32", "u64"}

func (k IntKind) String() string { return kindNames[k] }

// Operation is the kind-independent part of an Op
type Operation int

const (
	Add Operation = iota
	Sub
	Mul
	Div
	Eq
	Gt
	Geq
	Lt
	Leq
	And
	Or
	Xor
	Not

	operationCount
)

var operationNames = [...]string{"add", "sub", "mul", "div", "eq", "gt", "geq", "lt", "leq", "and", "or", "xor", "not"}

func (o Operation) String() string { return operationNames[o] }

// IsComparison reports whether the operation produces a boolean
func (o Operation) IsComparison() bool {
	switch o {
	case Eq, Gt, Geq, Lt, Leq:
		return true
	default:
		return false
	}
}

// Make combines an integer kind and an operation into an Op
func Make(kind IntKind, operation Operation) Op {
	return Op(int(kind)*int(operationCount) + int(operation))
}

// Kind returns the operand type family of the op
func (op Op) Kind() IntKind { return IntKind(int(op) / int(operationCount)) }

// Operation returns the kind-independent operation of the op
func (op Op) Operation() Operation { return Operation(int(op) % int(operationCount)) }

// Arity is the number of operands the evaluator expects
func (op Op) Arity() int {
	if op.Operation() == Not {
		return 1
	}
	return 2
}

// Valid reports whether op names one of the defined operations
func (op Op) Valid() bool { return op >= 0 && op < opCount }

// String renders the op in its surface form, e.g. "i32.add"
func (op Op) String() string {
	if !op.Valid() {
		return fmt.Sprintf("op(%d)", int(op))
	}
	return op.Kind().String() + "." + op.Operation().String()
}

var opsByName = func() map[string]Op {
	table := make(map[string]Op, opCount)
	for op := Op(0); op < opCount; op++ {
		table[op.String()] = op
	}
	return table
}()

// Lookup resolves a surface name such as "u64.leq"
func Lookup(name string) (Op, bool) {
	op, ok := opsByName[name]
	return op, ok
}

// All returns every defined op in declaration order
func All() []Op {
	ops := make([]Op, 0, opCount)
	for op := Op(0); op < opCount; op++ {
		ops = append(ops, op)
	}
	return ops
}
