// Package bitstring provides the fixed-length binary genome and its
// variation operators.
package bitstring

import "math/rand"

// Genome is a fixed-length sequence of 0/1 genes
type Genome []uint8

// Random returns a genome of the given length with each gene sampled
// uniformly from {0,1}
func Random(length int, rng *rand.Rand) Genome {
	g := make(Genome, length)
	for i := range g {
		g[i] = uint8(rng.Intn(2))
	}
	return g
}

// Clone deep-copies a genome
func Clone(g Genome) Genome {
	out := make(Genome, len(g))
	copy(out, g)
	return out
}

// Equal reports gene-for-gene equality
func Equal(a, b Genome) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Ones counts the set genes
func Ones(g Genome) int {
	n := 0
	for _, gene := range g {
		if gene != 0 {
			n++
		}
	}
	return n
}

// OnePointCrossover picks an interior cut point uniformly at random and
// swaps the tails of the two parents
func OnePointCrossover(a, b Genome, rng *rand.Rand) (Genome, Genome) {
	if len(a) < 2 {
		return a, b
	}
	point := 1 + rng.Intn(len(a)-1)
	for i := point; i < len(a); i++ {
		a[i], b[i] = b[i], a[i]
	}
	return a, b
}

// FlipMutation returns a mutator that flips each gene independently with
// probability indpb
func FlipMutation(indpb float64) func(Genome, *rand.Rand) Genome {
	return func(g Genome, rng *rand.Rand) Genome {
		for i := range g {
			if rng.Float64() < indpb {
				g[i] ^= 1
			}
		}
		return g
	}
}
