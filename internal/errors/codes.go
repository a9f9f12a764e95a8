package errors

// Diagnostic codes for the surface reader and the conversion pipeline.
//
// Code ranges:
// E0100-E0199: Syntax errors from the s-expression reader
// E0200-E0299: Malformed special forms
// E0900-E0999: Compiler invariant failures surfaced to tooling

const (
	// E0100: Token or structure the grammar does not accept
	ErrorSyntax = "E0100"

	// E0101: Integer literal out of range for its type
	ErrorLiteralRange = "E0101"

	// E0102: Malformed character or string literal
	ErrorBadLiteral = "E0102"

	// E0103: More than one top-level expression
	ErrorTrailingExpr = "E0103"

	// E0200: Special form with the wrong shape
	ErrorMalformedForm = "E0200"

	// E0201: Unknown primitive operation name
	ErrorUnknownPrimitive = "E0201"

	// E0202: Primitive applied to the wrong number of operands
	ErrorPrimitiveArity = "E0202"

	// E0203: fix binding whose value is not a lambda
	ErrorFixNotLambda = "E0203"

	// E0204: Empty application ()
	ErrorEmptyApplication = "E0204"

	// E0900: Invariant violation reported by a compiler pass
	ErrorInvariant = "E0900"
)
