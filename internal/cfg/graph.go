// Package cfg builds control flow graphs over CPS IR and solves dataflow
// problems on them with a worklist engine.
//
// A Graph is an arena: nodes refer to each other by index only. Function
// entry and exit pairs and jumps to continuations make the graph cyclic, so
// nothing in it owns anything else.
package cfg

import (
	"fmt"
	"strings"

	"cpsir/internal/ir"
)

// Kind distinguishes program boundaries, function boundaries and IR nodes
type Kind int

const (
	ProgramEntry Kind = iota
	ProgramExit
	FunEntry
	FunExit
	Common
)

var kindNames = [...]string{"program-entry", "program-exit", "fun-entry", "fun-exit", "common"}

func (k Kind) String() string { return kindNames[k] }

// NoLabel is the label of the program entry and exit nodes
const NoLabel = -1

// Node is one program point. Label is the IR label for Common nodes and the
// lambda label for FunEntry and FunExit. In and Out hold the facts of the
// last analysis run on the graph.
type Node[L any] struct {
	Kind  Kind
	Label int
	IR    ir.Node
	Preds []int
	Succs []int
	In    L
	Out   L
}

func (n *Node[L]) String() string {
	switch n.Kind {
	case ProgramEntry, ProgramExit:
		return n.Kind.String()
	case FunEntry, FunExit:
		return fmt.Sprintf("%s#%d", n.Kind, n.Label)
	default:
		return fmt.Sprintf("%s#%d", ir.Kind(n.IR), n.Label)
	}
}

// Graph owns every node of one build. Entry and Exit are the program
// boundary nodes.
type Graph[L any] struct {
	Nodes []*Node[L]
	Entry int
	Exit  int

	labels map[int]int
	funcs  map[int][2]int
}

func newGraph[L any]() *Graph[L] {
	return &Graph[L]{labels: map[int]int{}, funcs: map[int][2]int{}}
}

func (g *Graph[L]) add(kind Kind, label int, node ir.Node) int {
	index := len(g.Nodes)
	g.Nodes = append(g.Nodes, &Node[L]{Kind: kind, Label: label, IR: node})
	if kind == Common {
		g.labels[label] = index
	}
	return index
}

func (g *Graph[L]) addEdge(from, to int) {
	g.Nodes[from].Succs = append(g.Nodes[from].Succs, to)
	g.Nodes[to].Preds = append(g.Nodes[to].Preds, from)
}

// Node returns the node at index i
func (g *Graph[L]) Node(i int) *Node[L] {
	return g.Nodes[i]
}

// Len returns the number of nodes
func (g *Graph[L]) Len() int { return len(g.Nodes) }

// Lookup returns the Common node for an IR label
func (g *Graph[L]) Lookup(label int) (*Node[L], bool) {
	index, ok := g.labels[label]
	if !ok {
		return nil, false
	}
	return g.Nodes[index], true
}

// Function returns the entry and exit indices of the lambda with the given
// label.
func (g *Graph[L]) Function(label int) (entry, exit int, ok bool) {
	pair, ok := g.funcs[label]
	return pair[0], pair[1], ok
}

// Dump renders the graph one node per line with its successors
func (g *Graph[L]) Dump() string {
	var sb strings.Builder
	for i, n := range g.Nodes {
		if len(n.Succs) == 0 {
			fmt.Fprintf(&sb, "%d %s -> [END]\n", i, n)
			continue
		}
		succs := make([]string, len(n.Succs))
		for j, s := range n.Succs {
			succs[j] = fmt.Sprint(s)
		}
		fmt.Fprintf(&sb, "%d %s -> %s\n", i, n, strings.Join(succs, ", "))
	}
	return sb.String()
}

// Dot renders the graph in Graphviz format. facts, when non-nil, is called
// for every node and its result is appended to the node's label.
func (g *Graph[L]) Dot(facts func(n *Node[L]) string) string {
	var sb strings.Builder
	sb.WriteString("digraph cfg {\n")
	sb.WriteString("  node [shape=box, fontname=\"monospace\"];\n")
	for i, n := range g.Nodes {
		label := dotEscape(n.String())
		if facts != nil {
			label += `\n` + dotEscape(facts(n))
		}
		shape := ""
		if n.Kind != Common {
			shape = ", shape=ellipse"
		}
		fmt.Fprintf(&sb, "  n%d [label=\"%s\"%s];\n", i, label, shape)
	}
	for i, n := range g.Nodes {
		for _, s := range n.Succs {
			fmt.Fprintf(&sb, "  n%d -> n%d;\n", i, s)
		}
	}
	sb.WriteString("}\n")
	return sb.String()
}

func dotEscape(s string) string {
	return strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`).Replace(s)
}
