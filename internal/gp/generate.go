package gp

import "math/rand"

// Grow generates a random tree where each branch may stop at a random depth
// between min and max, independently at each node
func Grow(ps *PrimitiveSet, min, max int, rng *rand.Rand) *Node {
	return generate(ps, rng, func(depth int) bool {
		if depth >= max {
			return true
		}
		if depth < min {
			return false
		}
		// Past the minimum depth, stop with the terminal ratio of the set
		nTerms := terminalCount(ps)
		return rng.Float64() < float64(nTerms)/float64(nTerms+len(ps.Primitives))
	})
}

// Full generates a random tree where every branch reaches a depth between
// min and max (the target depth is fixed per tree)
func Full(ps *PrimitiveSet, min, max int, rng *rand.Rand) *Node {
	target := min
	if max > min {
		target = min + rng.Intn(max-min+1)
	}
	return generate(ps, rng, func(depth int) bool {
		return depth >= target
	})
}

// HalfAndHalf picks Grow or Full with equal probability, balancing tree
// shape diversity across an initial population
func HalfAndHalf(ps *PrimitiveSet, min, max int, rng *rand.Rand) *Node {
	if rng.Float64() < 0.5 {
		return Grow(ps, min, max, rng)
	}
	return Full(ps, min, max, rng)
}

func generate(ps *PrimitiveSet, rng *rand.Rand, stop func(depth int) bool) *Node {
	return generateNode(ps, 0, rng, stop)
}

func generateNode(ps *PrimitiveSet, depth int, rng *rand.Rand, stop func(depth int) bool) *Node {
	if stop(depth) {
		return randomTerminal(ps, rng)
	}
	prim := ps.Primitives[rng.Intn(len(ps.Primitives))]
	node := &Node{Kind: KindPrimitive, Prim: prim, Children: make([]*Node, prim.Arity)}
	for i := range node.Children {
		node.Children[i] = generateNode(ps, depth+1, rng, stop)
	}
	return node
}

func terminalCount(ps *PrimitiveSet) int {
	// The ephemeral generator counts as one terminal alongside the variables
	n := len(ps.Variables)
	if ps.Ephemeral != nil {
		n++
	}
	return n
}

func randomTerminal(ps *PrimitiveSet, rng *rand.Rand) *Node {
	pick := rng.Intn(terminalCount(ps))
	if pick < len(ps.Variables) {
		return &Node{Kind: KindVariable, Var: pick}
	}
	return &Node{Kind: KindConstant, Value: ps.Ephemeral(rng)}
}
