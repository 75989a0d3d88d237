package gp

import "math/rand"

// SubtreeCrossover returns a one-point tree crossover: a random node is
// picked independently in each parent and the subtrees rooted there are
// swapped. An offspring whose height exceeds heightLimit reverts to a clone
// of its pre-operator parent, keeping bloat bounded without ever failing.
func SubtreeCrossover(heightLimit int) func(a, b *Node, rng *rand.Rand) (*Node, *Node) {
	return func(a, b *Node, rng *rand.Rand) (*Node, *Node) {
		keepA, keepB := a.Clone(), b.Clone()

		ia := rng.Intn(a.Size())
		ib := rng.Intn(b.Size())
		subA := subtreeAt(a, ia).Clone()
		subB := subtreeAt(b, ib).Clone()

		childA := replaceAt(a, ia, subB)
		childB := replaceAt(b, ib, subA)

		if childA.Height() > heightLimit {
			childA = keepA
		}
		if childB.Height() > heightLimit {
			childB = keepB
		}
		return childA, childB
	}
}

// UniformMutation returns a mutator that replaces the subtree rooted at a
// random node with a freshly grown subtree of depth in [min, max], subject
// to the same height-limit revert rule as crossover.
func UniformMutation(ps *PrimitiveSet, min, max, heightLimit int) func(*Node, *rand.Rand) *Node {
	return func(tree *Node, rng *rand.Rand) *Node {
		keep := tree.Clone()

		idx := rng.Intn(tree.Size())
		sub := Grow(ps, min, max, rng)
		mutated := replaceAt(tree, idx, sub)

		if mutated.Height() > heightLimit {
			return keep
		}
		return mutated
	}
}
