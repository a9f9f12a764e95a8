package ir

import (
	"fmt"

	"cpsir/internal/errors"
)

// Atoms returns the operands n uses directly
func Atoms(n Node) []Atom {
	switch node := n.(type) {
	case *Let:
		return node.Args
	case *LetVal:
		return []Atom{node.Value}
	case *If:
		return []Atom{node.Test}
	case *App:
		return append([]Atom{node.Func}, node.Args...)
	case *Fix:
		atoms := make([]Atom, len(node.Funcs))
		for i, fn := range node.Funcs {
			atoms[i] = fn
		}
		return atoms
	case *AppCont:
		return node.Args
	default:
		return nil
	}
}

// Children returns the nodes directly nested under n, excluding lambda
// bodies.
func Children(n Node) []Node {
	switch node := n.(type) {
	case *LetCont:
		return []Node{node.Body, node.Rest}
	case *Let:
		return []Node{node.Rest}
	case *LetVal:
		return []Node{node.Rest}
	case *If:
		return []Node{node.Then, node.Else}
	case *Fix:
		return []Node{node.Rest}
	default:
		return nil
	}
}

// Inspect calls visitNode for every node and visitLambda for every lambda
// atom in pre-order, descending into lambda bodies. Either callback may be
// nil.
func Inspect(prog Node, visitNode func(Node), visitLambda func(*Lambda)) {
	if prog == nil {
		return
	}
	if visitNode != nil {
		visitNode(prog)
	}
	for _, atom := range Atoms(prog) {
		if l, ok := atom.(*Lambda); ok {
			if visitLambda != nil {
				visitLambda(l)
			}
			Inspect(l.Body, visitNode, visitLambda)
		}
	}
	for _, child := range Children(prog) {
		Inspect(child, visitNode, visitLambda)
	}
}

// Labels returns every node and lambda label in prog in pre-order
func Labels(prog Node) []int {
	var labels []int
	Inspect(prog,
		func(n Node) { labels = append(labels, n.GetLabel()) },
		func(l *Lambda) { labels = append(labels, l.Label) })
	return labels
}

// CheckLabels reports the first label used twice in prog
func CheckLabels(prog Node) error {
	seen := make(map[int]bool)
	for _, label := range Labels(prog) {
		if seen[label] {
			return fmt.Errorf("label %d is used more than once", label)
		}
		seen[label] = true
	}
	return nil
}

// CheckScopes verifies that every Named continuation reference resolves to
// an enclosing LetCont. A LetCont's name is visible in its own body and in
// its rest; a lambda body starts with no continuations in scope. Failure is
// an *errors.InvariantError of kind KindScope.
func CheckScopes(prog Node) (err error) {
	defer errors.Recover(&err)
	checkScopes(prog, map[string]int{})
	return nil
}

func checkScopes(n Node, scope map[string]int) {
	for _, atom := range Atoms(n) {
		if l, ok := atom.(*Lambda); ok {
			checkScopes(l.Body, map[string]int{})
		}
	}

	switch node := n.(type) {
	case *LetCont:
		scope[node.Name]++
		checkScopes(node.Body, scope)
		checkScopes(node.Rest, scope)
		scope[node.Name]--
	case *App:
		checkCont(node.Label, node.Cont, scope)
	case *AppCont:
		checkCont(node.Label, node.Cont, scope)
	default:
		for _, child := range Children(n) {
			checkScopes(child, scope)
		}
	}
}

func checkCont(label int, cont Cont, scope map[string]int) {
	if !cont.IsReturn() && scope[cont.Name] == 0 {
		errors.Scope("continuation %q used at label %d is not in scope", cont.Name, label)
	}
}
