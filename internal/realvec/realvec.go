// Package realvec provides the bounded real-valued genome and its variation
// operators. Every operator respects the configured [low, high] bounds;
// offspring genes are clipped after crossover and mutation so a gene outside
// bounds can only mean an operator bug.
package realvec

import (
	"math"
	"math/rand"
)

// Genome is a fixed-dimensionality vector of bounded genes
type Genome []float64

// Bounds is the closed per-gene interval shared by all operators
type Bounds struct {
	Low, High float64
}

// Clip clamps v into the bounds
func (b Bounds) Clip(v float64) float64 {
	if v < b.Low {
		return b.Low
	}
	if v > b.High {
		return b.High
	}
	return v
}

// Random returns a genome with each gene sampled uniformly from the bounds,
// independently per dimension
func Random(dim int, bounds Bounds, rng *rand.Rand) Genome {
	g := make(Genome, dim)
	for i := range g {
		g[i] = bounds.Low + rng.Float64()*(bounds.High-bounds.Low)
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

// SBXCrossover returns a simulated-binary bounded crossover parameterized by
// the crowding factor eta. Per gene pair, a coin flip decides whether the
// pair recombines; offspring values are clipped to the bounds.
func SBXCrossover(eta float64, bounds Bounds) func(Genome, Genome, *rand.Rand) (Genome, Genome) {
	return func(a, b Genome, rng *rand.Rand) (Genome, Genome) {
		for i := range a {
			if rng.Float64() > 0.5 {
				continue
			}
			x1, x2 := a[i], b[i]
			if math.Abs(x1-x2) < 1e-14 {
				continue
			}
			if x1 > x2 {
				x1, x2 = x2, x1
			}

			u := rng.Float64()

			beta := 1.0 + 2.0*(x1-bounds.Low)/(x2-x1)
			alpha := 2.0 - math.Pow(beta, -(eta+1))
			c1 := 0.5 * (x1 + x2 - betaQ(u, alpha, eta)*(x2-x1))

			beta = 1.0 + 2.0*(bounds.High-x2)/(x2-x1)
			alpha = 2.0 - math.Pow(beta, -(eta+1))
			c2 := 0.5 * (x1 + x2 + betaQ(u, alpha, eta)*(x2-x1))

			c1 = bounds.Clip(c1)
			c2 = bounds.Clip(c2)
			if rng.Float64() < 0.5 {
				c1, c2 = c2, c1
			}
			a[i], b[i] = c1, c2
		}
		return a, b
	}
}

func betaQ(u, alpha, eta float64) float64 {
	if u <= 1.0/alpha {
		return math.Pow(u*alpha, 1.0/(eta+1))
	}
	return math.Pow(1.0/(2.0-u*alpha), 1.0/(eta+1))
}

// PolynomialMutation returns a polynomial bounded mutator parameterized by
// the crowding factor eta. Each gene mutates independently with probability
// indpb; mutated values are clipped to the bounds.
func PolynomialMutation(eta float64, bounds Bounds, indpb float64) func(Genome, *rand.Rand) Genome {
	span := bounds.High - bounds.Low
	return func(g Genome, rng *rand.Rand) Genome {
		for i := range g {
			if rng.Float64() >= indpb {
				continue
			}
			x := g[i]
			d1 := (x - bounds.Low) / span
			d2 := (bounds.High - x) / span

			u := rng.Float64()
			mutPow := 1.0 / (eta + 1)

			var deltaQ float64
			if u < 0.5 {
				xy := 1.0 - d1
				val := 2.0*u + (1.0-2.0*u)*math.Pow(xy, eta+1)
				deltaQ = math.Pow(val, mutPow) - 1.0
			} else {
				xy := 1.0 - d2
				val := 2.0*(1.0-u) + 2.0*(u-0.5)*math.Pow(xy, eta+1)
				deltaQ = 1.0 - math.Pow(val, mutPow)
			}

			g[i] = bounds.Clip(x + deltaQ*span)
		}
		return g
	}
}
