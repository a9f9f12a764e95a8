package cfg

import (
	"github.com/tliron/commonlog"

	"cpsir/internal/errors"
	"cpsir/internal/ir"
)

var log = commonlog.GetLogger("cpsir.cfg")

// scope maps continuation names to the node index of their bodies. It is
// immutable so that leaving a LetCont restores the outer bindings.
type scope struct {
	name   string
	node   int
	parent *scope
}

func (s *scope) bind(name string, node int) *scope {
	return &scope{name: name, node: node, parent: s}
}

func (s *scope) lookup(name string) (int, bool) {
	for c := s; c != nil; c = c.parent {
		if c.name == name {
			return c.node, true
		}
	}
	return 0, false
}

type builder[L any] struct {
	g *Graph[L]
}

// Build constructs the control flow graph of prog. Each lambda becomes its
// own FunEntry/FunExit subgraph in which Return leads to the FunExit; at top
// level Return leads to the program exit. Calls and jumps to named
// continuations get an edge to the first node of the continuation body. A
// continuation name with no enclosing LetCont yields an
// *errors.InvariantError of kind KindScope.
func Build[L any](prog ir.Node) (g *Graph[L], err error) {
	defer errors.Recover(&err)

	b := &builder[L]{g: newGraph[L]()}
	b.g.Entry = b.g.add(ProgramEntry, NoLabel, nil)
	b.g.Exit = b.g.add(ProgramExit, NoLabel, nil)

	start := b.build(prog, b.g.Exit, nil)
	b.g.addEdge(b.g.Entry, start)

	log.Debugf("built graph: %d nodes, %d functions", len(b.g.Nodes), len(b.g.funcs))
	return b.g, nil
}

func (b *builder[L]) build(n ir.Node, exit int, conts *scope) int {
	if n == nil {
		errors.Contract("missing node in IR tree")
	}
	index := b.g.add(Common, n.GetLabel(), n)
	b.link(index, n, exit, conts)
	return index
}

// link adds the outgoing edges of the node already allocated at index
func (b *builder[L]) link(index int, n ir.Node, exit int, conts *scope) {
	for _, atom := range ir.Atoms(n) {
		if l, ok := atom.(*ir.Lambda); ok {
			b.function(l)
		}
	}

	switch node := n.(type) {
	case *ir.LetCont:
		body := b.g.add(Common, node.Body.GetLabel(), node.Body)
		inner := conts.bind(node.Name, body)
		b.link(body, node.Body, exit, inner)
		b.g.addEdge(index, b.build(node.Rest, exit, inner))
	case *ir.Let:
		b.g.addEdge(index, b.build(node.Rest, exit, conts))
	case *ir.LetVal:
		b.g.addEdge(index, b.build(node.Rest, exit, conts))
	case *ir.Fix:
		b.g.addEdge(index, b.build(node.Rest, exit, conts))
	case *ir.If:
		b.g.addEdge(index, b.build(node.Then, exit, conts))
		b.g.addEdge(index, b.build(node.Else, exit, conts))
	case *ir.App:
		b.g.addEdge(index, b.target(node.Label, node.Cont, exit, conts))
	case *ir.AppCont:
		b.g.addEdge(index, b.target(node.Label, node.Cont, exit, conts))
	default:
		errors.Contract("unknown IR node %T", n)
	}
}

func (b *builder[L]) target(label int, cont ir.Cont, exit int, conts *scope) int {
	if cont.IsReturn() {
		return exit
	}
	node, ok := conts.lookup(cont.Name)
	if !ok {
		errors.Scope("continuation %q used at label %d is not in scope", cont.Name, label)
	}
	return node
}

// function builds the isolated subgraph of a lambda. Continuations of the
// enclosing code are not visible inside it.
func (b *builder[L]) function(l *ir.Lambda) {
	entry := b.g.add(FunEntry, l.Label, nil)
	exit := b.g.add(FunExit, l.Label, nil)
	b.g.funcs[l.Label] = [2]int{entry, exit}
	b.g.addEdge(entry, b.build(l.Body, exit, nil))
}
