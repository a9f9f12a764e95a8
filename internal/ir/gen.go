package ir

import (
	"fmt"
	"strings"
)

// GenTable allocates labels and generated names for one conversion. One
// table belongs to exactly one conversion run and is discarded afterwards.
// Generated names contain '$', which source identifiers never do.
type GenTable struct {
	labels int
	conts  int
	vars   int
}

func NewGenTable() *GenTable {
	return &GenTable{}
}

func (g *GenTable) Label() int {
	label := g.labels
	g.labels++
	return label
}

func (g *GenTable) Cont() string {
	name := fmt.Sprintf("cont$%d", g.conts)
	g.conts++
	return name
}

func (g *GenTable) Var() string {
	name := fmt.Sprintf("var$%d", g.vars)
	g.vars++
	return name
}

// Allocated returns how many labels have been handed out
func (g *GenTable) Allocated() int { return g.labels }

// IsGenerated reports whether name could have come from a GenTable
func IsGenerated(name string) bool {
	return strings.ContainsRune(name, '$')
}
