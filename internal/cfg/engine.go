package cfg

import (
	"fmt"

	"cpsir/internal/ir"
)

// Lattice supplies the join-semilattice an analysis works in. Join must be
// associative, commutative and idempotent with Bottom as its identity.
type Lattice[L any] interface {
	Bottom() L
	Join(a, b L) L
	Equal(a, b L) bool
}

// Direction selects which neighbours receive a node's Out
type Direction int

const (
	Forward Direction = iota
	Backward
)

func (d Direction) String() string {
	if d == Backward {
		return "backward"
	}
	return "forward"
}

// Order is the worklist pop order. The fixpoint does not depend on it; the
// number of steps does.
type Order int

const (
	LIFO Order = iota
	FIFO
)

func (o Order) String() string {
	if o == FIFO {
		return "fifo"
	}
	return "lifo"
}

// ParseOrder accepts "lifo" or "fifo"
func ParseOrder(s string) (Order, error) {
	switch s {
	case "lifo":
		return LIFO, nil
	case "fifo":
		return FIFO, nil
	}
	return LIFO, fmt.Errorf("unknown worklist order %q (want lifo or fifo)", s)
}

// TransferFunc computes a Common node's Out from its In. Boundary nodes
// always use the identity.
type TransferFunc[L any] func(label int, node ir.Node, in L) L

// Engine is a worklist fixpoint solver
type Engine[L any] struct {
	Lattice   Lattice[L]
	Direction Direction
	Transfer  TransferFunc[L]
	Order     Order
}

// Stats describes one solver run
type Stats struct {
	Steps   int
	Updates int
}

// Run solves the dataflow problem on g, overwriting every In and Out. All
// facts start at Bottom and every node starts on the worklist. A node whose
// Out changes joins it into the In of each downstream neighbour and
// requeues the neighbours whose In changed. The run terminates when the
// lattice has finite height and the transfer function is monotone.
func (e *Engine[L]) Run(g *Graph[L]) Stats {
	for _, n := range g.Nodes {
		n.In = e.Lattice.Bottom()
		n.Out = e.Lattice.Bottom()
	}

	w := newWorklist(e.Order, len(g.Nodes))
	var stats Stats
	for !w.empty() {
		index := w.pop()
		n := g.Nodes[index]
		stats.Steps++

		out := n.In
		if n.Kind == Common {
			out = e.Transfer(n.Label, n.IR, n.In)
		}
		if e.Lattice.Equal(out, n.Out) {
			continue
		}
		n.Out = out
		stats.Updates++

		downstream := n.Succs
		if e.Direction == Backward {
			downstream = n.Preds
		}
		for _, d := range downstream {
			next := g.Nodes[d]
			in := e.Lattice.Join(next.In, out)
			if !e.Lattice.Equal(in, next.In) {
				next.In = in
				w.push(d)
			}
		}
	}

	log.Debugf("%s fixpoint (%s) reached after %d steps, %d updates", e.Direction, e.Order, stats.Steps, stats.Updates)
	return stats
}

// worklist holds each node at most once
type worklist struct {
	order  Order
	items  []int
	queued []bool
}

// newWorklist seeds every index so that index 0 is popped first in
// either order.
func newWorklist(order Order, n int) *worklist {
	w := &worklist{order: order, queued: make([]bool, n)}
	if order == LIFO {
		for i := n - 1; i >= 0; i-- {
			w.push(i)
		}
	} else {
		for i := 0; i < n; i++ {
			w.push(i)
		}
	}
	return w
}

func (w *worklist) empty() bool { return len(w.items) == 0 }

func (w *worklist) push(i int) {
	if w.queued[i] {
		return
	}
	w.queued[i] = true
	w.items = append(w.items, i)
}

func (w *worklist) pop() int {
	var i int
	if w.order == FIFO {
		i = w.items[0]
		w.items = w.items[1:]
	} else {
		i = w.items[len(w.items)-1]
		w.items = w.items[:len(w.items)-1]
	}
	w.queued[i] = false
	return i
}
