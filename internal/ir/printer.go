package ir

import (
	"fmt"
	"strings"

	"github.com/xlab/treeprint"
)

// Printer renders IR as indented text, one binding or terminal per line.
// Lambda atoms that are not bound directly by letval or fix are printed
// after the line that uses them, in a "where" block.
type Printer struct {
	indent int
	output strings.Builder
}

// NewPrinter creates a new IR printer
func NewPrinter() *Printer {
	return &Printer{indent: 0}
}

// Print returns the text form of prog
func Print(prog Node) string {
	p := NewPrinter()
	p.printNode(prog)
	return p.output.String()
}

func (p *Printer) writeIndent() {
	for i := 0; i < p.indent; i++ {
		p.output.WriteString("  ")
	}
}

func (p *Printer) writeLine(format string, args ...interface{}) {
	p.writeIndent()
	p.output.WriteString(fmt.Sprintf(format, args...))
	p.output.WriteString("\n")
}

func (p *Printer) printNode(n Node) {
	switch node := n.(type) {
	case *LetCont:
		p.writeLine("letcont#%d %s(%s) {", node.Label, node.Name, strings.Join(node.Params, ", "))
		p.block(node.Body)
		p.writeLine("}")
		p.printNode(node.Rest)
	case *Let:
		p.writeLine("let#%d %s = %s(%s)", node.Label, node.Var, node.Op, atomList(node.Args))
		p.where(node.Args)
		p.printNode(node.Rest)
	case *LetVal:
		if l, ok := node.Value.(*Lambda); ok {
			p.writeLine("letval#%d %s = %s {", node.Label, node.Var, l)
			p.block(l.Body)
			p.writeLine("}")
		} else {
			p.writeLine("letval#%d %s = %s", node.Label, node.Var, node.Value)
		}
		p.printNode(node.Rest)
	case *If:
		p.writeLine("if#%d %s {", node.Label, node.Test)
		p.block(node.Then)
		p.writeLine("} else {")
		p.block(node.Else)
		p.writeLine("}")
	case *App:
		p.writeLine("app#%d %s(%s) -> %s", node.Label, node.Func, atomList(node.Args), node.Cont)
		p.where(append([]Atom{node.Func}, node.Args...))
	case *Fix:
		p.writeLine("fix#%d {", node.Label)
		p.indent++
		for i, fn := range node.Funcs {
			p.writeLine("%s = %s {", node.Names[i], fn)
			p.block(fn.Body)
			p.writeLine("}")
		}
		p.indent--
		p.writeLine("}")
		p.printNode(node.Rest)
	case *AppCont:
		p.writeLine("appcont#%d %s(%s)", node.Label, node.Cont, atomList(node.Args))
		p.where(node.Args)
	default:
		p.writeLine("<%T>", n)
	}
}

func (p *Printer) block(n Node) {
	p.indent++
	p.printNode(n)
	p.indent--
}

func (p *Printer) where(atoms []Atom) {
	for _, atom := range atoms {
		if l, ok := atom.(*Lambda); ok {
			p.indent++
			p.writeLine("where %s {", l)
			p.block(l.Body)
			p.writeLine("}")
			p.indent--
		}
	}
}

func atomList(atoms []Atom) string {
	parts := make([]string, len(atoms))
	for i, a := range atoms {
		parts[i] = a.String()
	}
	return strings.Join(parts, ", ")
}

// Tree renders prog as a box-drawing tree, one branch per nested body
func Tree(prog Node) string {
	root := treeprint.New()
	addTree(root.AddBranch("program"), prog)
	return root.String()
}

func addTree(parent treeprint.Tree, n Node) {
	switch node := n.(type) {
	case *LetCont:
		branch := parent.AddBranch(fmt.Sprintf("letcont#%d %s(%s)", node.Label, node.Name, strings.Join(node.Params, ", ")))
		addTree(branch.AddBranch("body"), node.Body)
		addTree(parent, node.Rest)
	case *Let:
		parent.AddNode(fmt.Sprintf("let#%d %s = %s(%s)", node.Label, node.Var, node.Op, atomList(node.Args)))
		addLambdas(parent, node.Args)
		addTree(parent, node.Rest)
	case *LetVal:
		parent.AddNode(fmt.Sprintf("letval#%d %s = %s", node.Label, node.Var, node.Value))
		addLambdas(parent, []Atom{node.Value})
		addTree(parent, node.Rest)
	case *If:
		branch := parent.AddBranch(fmt.Sprintf("if#%d %s", node.Label, node.Test))
		addTree(branch.AddBranch("then"), node.Then)
		addTree(branch.AddBranch("else"), node.Else)
	case *App:
		parent.AddNode(fmt.Sprintf("app#%d %s(%s) -> %s", node.Label, node.Func, atomList(node.Args), node.Cont))
		addLambdas(parent, append([]Atom{node.Func}, node.Args...))
	case *Fix:
		branch := parent.AddBranch(fmt.Sprintf("fix#%d %s", node.Label, strings.Join(node.Names, ", ")))
		for _, fn := range node.Funcs {
			addTree(branch.AddBranch(fn.String()), fn.Body)
		}
		addTree(parent, node.Rest)
	case *AppCont:
		parent.AddNode(fmt.Sprintf("appcont#%d %s(%s)", node.Label, node.Cont, atomList(node.Args)))
		addLambdas(parent, node.Args)
	}
}

func addLambdas(parent treeprint.Tree, atoms []Atom) {
	for _, atom := range atoms {
		if l, ok := atom.(*Lambda); ok {
			addTree(parent.AddBranch(l.String()), l.Body)
		}
	}
}
