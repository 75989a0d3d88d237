package gp

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind discriminates the tree node variants
type Kind int

const (
	// KindPrimitive is an internal node applying a primitive to its children
	KindPrimitive Kind = iota
	// KindVariable is a leaf referencing an input variable by index
	KindVariable
	// KindConstant is a leaf carrying a pre-sampled ephemeral value
	KindConstant
)

// Node is one node of an expression tree. A tree is owned by exactly one
// individual; Clone before sharing.
type Node struct {
	Kind     Kind
	Prim     Primitive // KindPrimitive
	Var      int       // KindVariable
	Value    float64   // KindConstant
	Children []*Node
}

// Clone deep-copies the tree
func (n *Node) Clone() *Node {
	out := &Node{Kind: n.Kind, Prim: n.Prim, Var: n.Var, Value: n.Value}
	if len(n.Children) > 0 {
		out.Children = make([]*Node, len(n.Children))
		for i, c := range n.Children {
			out.Children[i] = c.Clone()
		}
	}
	return out
}

// Equal reports structural equality: same shape, same primitives, same
// variable indices and constant values
func (n *Node) Equal(other *Node) bool {
	if n.Kind != other.Kind {
		return false
	}
	switch n.Kind {
	case KindVariable:
		return n.Var == other.Var
	case KindConstant:
		return n.Value == other.Value
	}
	if n.Prim.Name != other.Prim.Name || len(n.Children) != len(other.Children) {
		return false
	}
	for i := range n.Children {
		if !n.Children[i].Equal(other.Children[i]) {
			return false
		}
	}
	return true
}

// Height returns the longest root-to-leaf edge count; a leaf has height 0
func (n *Node) Height() int {
	h := 0
	for _, c := range n.Children {
		if ch := c.Height() + 1; ch > h {
			h = ch
		}
	}
	return h
}

// Size returns the total node count
func (n *Node) Size() int {
	s := 1
	for _, c := range n.Children {
		s += c.Size()
	}
	return s
}

// Eval interprets the tree over the given variable values
func (n *Node) Eval(vars []float64) float64 {
	switch n.Kind {
	case KindVariable:
		return vars[n.Var]
	case KindConstant:
		return n.Value
	}
	args := make([]float64, len(n.Children))
	for i, c := range n.Children {
		args[i] = c.Eval(vars)
	}
	return n.Prim.Apply(args)
}

// Compile flattens the tree into a callable numeric function, so repeated
// evaluation over sample points skips the tree walk dispatch
func (n *Node) Compile() func(vars []float64) float64 {
	switch n.Kind {
	case KindVariable:
		idx := n.Var
		return func(vars []float64) float64 { return vars[idx] }
	case KindConstant:
		v := n.Value
		return func([]float64) float64 { return v }
	}
	apply := n.Prim.Apply
	children := make([]func([]float64) float64, len(n.Children))
	for i, c := range n.Children {
		children[i] = c.Compile()
	}
	return func(vars []float64) float64 {
		args := make([]float64, len(children))
		for i, c := range children {
			args[i] = c(vars)
		}
		return apply(args)
	}
}

// String renders the tree in prefix call syntax, e.g. add(x0, mul(x1, 0.5))
func (n *Node) String() string {
	var b strings.Builder
	n.write(&b)
	return b.String()
}

func (n *Node) write(b *strings.Builder) {
	switch n.Kind {
	case KindVariable:
		fmt.Fprintf(b, "x%d", n.Var)
	case KindConstant:
		b.WriteString(strconv.FormatFloat(n.Value, 'g', -1, 64))
	default:
		b.WriteString(n.Prim.Name)
		b.WriteByte('(')
		for i, c := range n.Children {
			if i > 0 {
				b.WriteString(", ")
			}
			c.write(b)
		}
		b.WriteByte(')')
	}
}

// subtreeAt returns the idx-th node in preorder
func subtreeAt(root *Node, idx int) *Node {
	node, _ := findPreorder(root, &idx)
	return node
}

func findPreorder(n *Node, remaining *int) (*Node, bool) {
	if *remaining == 0 {
		return n, true
	}
	*remaining--
	for _, c := range n.Children {
		if found, ok := findPreorder(c, remaining); ok {
			return found, true
		}
	}
	return nil, false
}

// replaceAt returns the tree with the idx-th preorder node replaced by sub.
// The input tree is modified in place unless idx is the root.
func replaceAt(root *Node, idx int, sub *Node) *Node {
	if idx == 0 {
		return sub
	}
	idx--
	replacePreorder(root, &idx, sub)
	return root
}

func replacePreorder(n *Node, remaining *int, sub *Node) bool {
	for i, c := range n.Children {
		if *remaining == 0 {
			n.Children[i] = sub
			return true
		}
		*remaining--
		if replacePreorder(c, remaining, sub) {
			return true
		}
	}
	return false
}
