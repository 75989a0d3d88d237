// Package problem defines the benchmark fitness functions the driver wires
// into the engine: OneMax over bit strings, the Eggholder surface over real
// vectors, and symbolic regression over expression trees.
package problem

import "evolve/internal/bitstring"

// OneMax is the bit-counting benchmark: fitness is the number of set genes,
// maximized. The optimum equals the genome length.
func OneMax(g bitstring.Genome) float64 {
	return float64(bitstring.Ones(g))
}
