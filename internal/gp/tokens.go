package gp

import (
	"fmt"
	"strconv"
	"strings"
)

// Token is one element of a tree's prefix-order linear form. The sequence is
// lossless: arities come from the primitive set, so the tree structure is
// fully determined by token order.
type Token struct {
	Kind  Kind    `json:"kind"`
	Name  string  `json:"name,omitempty"`  // KindPrimitive
	Var   int     `json:"var,omitempty"`   // KindVariable
	Value float64 `json:"value,omitempty"` // KindConstant
}

// Tokens linearizes the tree in preorder
func (n *Node) Tokens() []Token {
	out := make([]Token, 0, n.Size())
	n.appendTokens(&out)
	return out
}

func (n *Node) appendTokens(out *[]Token) {
	switch n.Kind {
	case KindVariable:
		*out = append(*out, Token{Kind: KindVariable, Var: n.Var})
	case KindConstant:
		*out = append(*out, Token{Kind: KindConstant, Value: n.Value})
	default:
		*out = append(*out, Token{Kind: KindPrimitive, Name: n.Prim.Name})
		for _, c := range n.Children {
			c.appendTokens(out)
		}
	}
}

// FromTokens reconstructs a tree from its prefix token sequence. The
// primitive set resolves names to arities and apply funcs.
func FromTokens(ps *PrimitiveSet, tokens []Token) (*Node, error) {
	pos := 0
	node, err := parseTokens(ps, tokens, &pos)
	if err != nil {
		return nil, err
	}
	if pos != len(tokens) {
		return nil, fmt.Errorf("trailing tokens after position %d of %d", pos, len(tokens))
	}
	return node, nil
}

func parseTokens(ps *PrimitiveSet, tokens []Token, pos *int) (*Node, error) {
	if *pos >= len(tokens) {
		return nil, fmt.Errorf("unexpected end of token sequence at position %d", *pos)
	}
	tok := tokens[*pos]
	*pos++

	switch tok.Kind {
	case KindVariable:
		if tok.Var < 0 || tok.Var >= len(ps.Variables) {
			return nil, fmt.Errorf("variable index %d out of range", tok.Var)
		}
		return &Node{Kind: KindVariable, Var: tok.Var}, nil
	case KindConstant:
		return &Node{Kind: KindConstant, Value: tok.Value}, nil
	}

	prim, ok := ps.Lookup(tok.Name)
	if !ok {
		return nil, fmt.Errorf("unknown primitive %q", tok.Name)
	}
	node := &Node{Kind: KindPrimitive, Prim: prim, Children: make([]*Node, prim.Arity)}
	for i := 0; i < prim.Arity; i++ {
		child, err := parseTokens(ps, tokens, pos)
		if err != nil {
			return nil, err
		}
		node.Children[i] = child
	}
	return node, nil
}

// Key returns a compact canonical string of the tree, usable as a cache key
// for structurally identical trees
func (n *Node) Key() string {
	var b strings.Builder
	for _, tok := range n.Tokens() {
		switch tok.Kind {
		case KindVariable:
			b.WriteByte('x')
			b.WriteString(strconv.Itoa(tok.Var))
		case KindConstant:
			b.WriteString(strconv.FormatFloat(tok.Value, 'b', -1, 64))
		default:
			b.WriteString(tok.Name)
		}
		b.WriteByte(';')
	}
	return b.String()
}
