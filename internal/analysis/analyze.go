package analysis

import (
	"fmt"
	"sort"

	"github.com/tliron/commonlog"

	"cpsir/internal/cfg"
	"cpsir/internal/ir"
)

var log = commonlog.GetLogger("cpsir.analysis")

// Result holds the solved graph of one analysis run
type Result struct {
	Graph *cfg.Graph[Set]
	Stats cfg.Stats
}

// Analyze builds the control flow graph of prog and computes the
// expressions available before and after every node.
func Analyze(prog ir.Node, order cfg.Order) (*Result, error) {
	g, err := cfg.Build[Set](prog)
	if err != nil {
		return nil, fmt.Errorf("building control flow graph: %w", err)
	}

	engine := &cfg.Engine[Set]{
		Lattice:   Lattice{},
		Direction: cfg.Forward,
		Transfer:  Transfer,
		Order:     order,
	}
	stats := engine.Run(g)
	log.Debugf("available expressions solved in %d steps", stats.Steps)

	return &Result{Graph: g, Stats: stats}, nil
}

// Before returns the expressions available on entry to the node with the
// given IR label.
func (r *Result) Before(label int) (Set, bool) {
	n, ok := r.Graph.Lookup(label)
	if !ok {
		return nil, false
	}
	return n.In, true
}

// After returns the expressions available on exit from the node
func (r *Result) After(label int) (Set, bool) {
	n, ok := r.Graph.Lookup(label)
	if !ok {
		return nil, false
	}
	return n.Out, true
}

// Fact is the solution at one Let node
type Fact struct {
	Label  int
	Let    *ir.Let
	Before Set
	After  Set
}

// Lets returns the facts of every Let node ordered by label
func (r *Result) Lets() []Fact {
	var facts []Fact
	for _, n := range r.Graph.Nodes {
		if let, ok := n.IR.(*ir.Let); ok && n.Kind == cfg.Common {
			facts = append(facts, Fact{Label: n.Label, Let: let, Before: n.In, After: n.Out})
		}
	}
	sort.Slice(facts, func(i, j int) bool { return facts[i].Label < facts[j].Label })
	return facts
}
