// Package interp evaluates CPS IR directly. It exists to check that
// conversion and normalization preserve meaning; it makes no attempt to be
// fast.
package interp

import (
	"github.com/tliron/commonlog"

	"cpsir/internal/ir"
)

var log = commonlog.GetLogger("cpsir.interp")

// DefaultMaxSteps bounds evaluation when no explicit limit is given
const DefaultMaxSteps = 1_000_000

// Machine runs one program. Every App, AppCont and binding is one step.
type Machine struct {
	MaxSteps int
	Steps    int
}

// Run evaluates prog with the default step limit and returns the value
// passed to the top-level Return.
func Run(prog ir.Node) (Value, error) {
	m := &Machine{MaxSteps: DefaultMaxSteps}
	return m.Run(prog)
}

// state is the current node, the environment it sees and the continuation
// Return refers to there.
type state struct {
	node ir.Node
	env  *env
	ret  *continuation
}

func (m *Machine) Run(prog ir.Node) (Value, error) {
	if prog == nil {
		return nil, evalErrorf(-1, "empty program")
	}
	s := state{node: prog, env: newEnv(nil)}
	for {
		if m.MaxSteps > 0 && m.Steps >= m.MaxSteps {
			return nil, evalErrorf(s.node.GetLabel(), "step limit of %d exceeded", m.MaxSteps)
		}
		m.Steps++

		next, result, done, err := m.step(s)
		if err != nil {
			return nil, err
		}
		if done {
			log.Debugf("evaluation finished after %d steps", m.Steps)
			return result, nil
		}
		s = next
	}
}

func (m *Machine) step(s state) (next state, result Value, done bool, err error) {
	switch node := s.node.(type) {
	case *ir.LetCont:
		frame := newEnv(s.env)
		frame.conts[node.Name] = &continuation{params: node.Params, body: node.Body, env: frame, ret: s.ret}
		return state{node: node.Rest, env: frame, ret: s.ret}, nil, false, nil

	case *ir.Let:
		args, err := m.atoms(node.Label, node.Args, s.env)
		if err != nil {
			return next, nil, false, err
		}
		v, err := CallBuiltin(node.Op, args)
		if err != nil {
			return next, nil, false, &EvalError{Label: node.Label, Message: err.Error()}
		}
		return state{node: node.Rest, env: s.env.bind(node.Var, v), ret: s.ret}, nil, false, nil

	case *ir.LetVal:
		v, err := m.atom(node.Label, node.Value, s.env)
		if err != nil {
			return next, nil, false, err
		}
		return state{node: node.Rest, env: s.env.bind(node.Var, v), ret: s.ret}, nil, false, nil

	case *ir.Fix:
		frame := newEnv(s.env)
		for i, fn := range node.Funcs {
			frame.vars[node.Names[i]] = &Closure{Lambda: fn, env: frame}
		}
		return state{node: node.Rest, env: frame, ret: s.ret}, nil, false, nil

	case *ir.If:
		test, err := m.atom(node.Label, node.Test, s.env)
		if err != nil {
			return next, nil, false, err
		}
		b, ok := test.(ir.Bool)
		if !ok {
			return next, nil, false, evalErrorf(node.Label, "if test is %s, not bool", describe(test))
		}
		if b {
			return state{node: node.Then, env: s.env, ret: s.ret}, nil, false, nil
		}
		return state{node: node.Else, env: s.env, ret: s.ret}, nil, false, nil

	case *ir.App:
		fn, err := m.atom(node.Label, node.Func, s.env)
		if err != nil {
			return next, nil, false, err
		}
		closure, ok := fn.(*Closure)
		if !ok {
			return next, nil, false, evalErrorf(node.Label, "cannot call %s", describe(fn))
		}
		args, err := m.atoms(node.Label, node.Args, s.env)
		if err != nil {
			return next, nil, false, err
		}
		if len(args) != len(closure.Lambda.Params) {
			return next, nil, false, evalErrorf(node.Label, "%s expects %d arguments, got %d",
				closure.Lambda, len(closure.Lambda.Params), len(args))
		}
		k, err := m.cont(node.Label, node.Cont, s)
		if err != nil {
			return next, nil, false, err
		}
		frame := newEnv(closure.env)
		for i, param := range closure.Lambda.Params {
			frame.vars[param] = args[i]
		}
		return state{node: closure.Lambda.Body, env: frame, ret: k}, nil, false, nil

	case *ir.AppCont:
		args, err := m.atoms(node.Label, node.Args, s.env)
		if err != nil {
			return next, nil, false, err
		}
		k, err := m.cont(node.Label, node.Cont, s)
		if err != nil {
			return next, nil, false, err
		}
		if k == nil {
			if len(args) != 1 {
				return next, nil, false, evalErrorf(node.Label, "program returns %d values", len(args))
			}
			return next, args[0], true, nil
		}
		if len(args) != len(k.params) {
			return next, nil, false, evalErrorf(node.Label, "%s expects %d arguments, got %d",
				node.Cont, len(k.params), len(args))
		}
		frame := newEnv(k.env)
		for i, param := range k.params {
			frame.vars[param] = args[i]
		}
		return state{node: k.body, env: frame, ret: k.ret}, nil, false, nil
	}

	return next, nil, false, evalErrorf(-1, "unknown node %T", s.node)
}

// cont resolves a continuation reference. Return resolves to the current
// function's return continuation, which is nil at top level.
func (m *Machine) cont(label int, c ir.Cont, s state) (*continuation, error) {
	if c.IsReturn() {
		return s.ret, nil
	}
	k, ok := s.env.lookupCont(c.Name)
	if !ok {
		return nil, evalErrorf(label, "unbound continuation %s", c.Name)
	}
	return k, nil
}

func (m *Machine) atom(label int, a ir.Atom, e *env) (Value, error) {
	switch atom := a.(type) {
	case ir.Var:
		v, ok := e.lookup(string(atom))
		if !ok {
			return nil, evalErrorf(label, "unbound variable %s", atom)
		}
		return v, nil
	case *ir.Lambda:
		return &Closure{Lambda: atom, env: e}, nil
	case ir.I32, ir.I64, ir.U32, ir.U64, ir.Bool, ir.Char, ir.Str:
		return atom.(Value), nil
	}
	return nil, evalErrorf(label, "unknown atom %T", a)
}

func (m *Machine) atoms(label int, atoms []ir.Atom, e *env) ([]Value, error) {
	values := make([]Value, len(atoms))
	for i, a := range atoms {
		v, err := m.atom(label, a, e)
		if err != nil {
			return nil, err
		}
		values[i] = v
	}
	return values, nil
}
