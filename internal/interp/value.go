package interp

import (
	"fmt"

	"cpsir/internal/ir"
)

// Value is a runtime value. Scalars reuse the IR literal types (ir.I32,
// ir.Bool, ...) so a literal atom evaluates to itself.
type Value interface {
	String() string
}

// Closure is a lambda paired with the environment it was created in
type Closure struct {
	Lambda *ir.Lambda
	env    *env
}

func (c *Closure) String() string {
	return fmt.Sprintf("<closure %s>", c.Lambda)
}

// continuation is a LetCont captured with its environment and the return
// continuation of the function that bound it. A nil ret means the top level.
type continuation struct {
	params []string
	body   ir.Node
	env    *env
	ret    *continuation
}

// env is one frame of a lexical environment chain. Variables and
// continuations live in separate namespaces.
type env struct {
	vars   map[string]Value
	conts  map[string]*continuation
	parent *env
}

func newEnv(parent *env) *env {
	return &env{vars: map[string]Value{}, conts: map[string]*continuation{}, parent: parent}
}

func (e *env) lookup(name string) (Value, bool) {
	for f := e; f != nil; f = f.parent {
		if v, ok := f.vars[name]; ok {
			return v, true
		}
	}
	return nil, false
}

func (e *env) lookupCont(name string) (*continuation, bool) {
	for f := e; f != nil; f = f.parent {
		if k, ok := f.conts[name]; ok {
			return k, true
		}
	}
	return nil, false
}

// bind extends e with one variable
func (e *env) bind(name string, v Value) *env {
	frame := newEnv(e)
	frame.vars[name] = v
	return frame
}
