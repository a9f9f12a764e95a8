package ir

// Normalize rewrites prog so that along every control-flow spine all Let,
// LetVal and Fix bindings sit above all LetCont bindings. Each group keeps
// its relative order, and nested bodies (continuation bodies, branches,
// lambda bodies) are normalized first. Normalize is idempotent.
//
// Hoisting a value binding over a LetCont widens its scope to the
// continuation body. Builder output never has a continuation body that
// refers to an outer variable shadowed further down the spine, so the
// rewrite preserves meaning for it.
func Normalize(prog Node) Node {
	var values []Node
	var conts []*LetCont

	n := prog
	for !IsTerminal(n) {
		switch node := n.(type) {
		case *Let:
			values = append(values, &Let{Label: node.Label, Var: node.Var, Op: node.Op, Args: normalizeAtoms(node.Args)})
			n = node.Rest
		case *LetVal:
			values = append(values, &LetVal{Label: node.Label, Var: node.Var, Value: normalizeAtom(node.Value)})
			n = node.Rest
		case *Fix:
			funcs := make([]*Lambda, len(node.Funcs))
			for i, fn := range node.Funcs {
				funcs[i] = normalizeLambda(fn)
			}
			values = append(values, &Fix{Label: node.Label, Names: node.Names, Funcs: funcs})
			n = node.Rest
		case *LetCont:
			conts = append(conts, &LetCont{Label: node.Label, Name: node.Name, Params: node.Params, Body: Normalize(node.Body)})
			n = node.Rest
		default:
			panic("ir: unknown node in Normalize")
		}
	}

	result := normalizeTerminal(n)
	for i := len(conts) - 1; i >= 0; i-- {
		conts[i].Rest = result
		result = conts[i]
	}
	for i := len(values) - 1; i >= 0; i-- {
		result = setRest(values[i], result)
	}
	return result
}

func normalizeTerminal(n Node) Node {
	switch node := n.(type) {
	case *App:
		return &App{Label: node.Label, Func: normalizeAtom(node.Func), Args: normalizeAtoms(node.Args), Cont: node.Cont}
	case *AppCont:
		return &AppCont{Label: node.Label, Cont: node.Cont, Args: normalizeAtoms(node.Args)}
	case *If:
		return &If{Label: node.Label, Test: normalizeAtom(node.Test), Then: Normalize(node.Then), Else: Normalize(node.Else)}
	}
	panic("ir: non-terminal node at end of spine")
}

func setRest(binding, rest Node) Node {
	switch node := binding.(type) {
	case *Let:
		node.Rest = rest
	case *LetVal:
		node.Rest = rest
	case *Fix:
		node.Rest = rest
	}
	return binding
}

func normalizeLambda(l *Lambda) *Lambda {
	return &Lambda{Label: l.Label, Params: l.Params, Body: Normalize(l.Body)}
}

func normalizeAtom(a Atom) Atom {
	if l, ok := a.(*Lambda); ok {
		return normalizeLambda(l)
	}
	return a
}

func normalizeAtoms(atoms []Atom) []Atom {
	if atoms == nil {
		return nil
	}
	out := make([]Atom, len(atoms))
	for i, a := range atoms {
		out[i] = normalizeAtom(a)
	}
	return out
}
