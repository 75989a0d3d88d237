package problem

import (
	"math"

	"evolve/internal/realvec"
)

// Eggholder evaluates the Eggholder surface, a highly multimodal
// minimization benchmark usually run on [-512, 512]^2. For higher
// dimensions the pairwise sum generalization is used. The 2-D global
// minimum is about -959.64 at (512, 404.23).
func Eggholder(g realvec.Genome) float64 {
	total := 0.0
	for i := 0; i+1 < len(g); i++ {
		x, y := g[i], g[i+1]
		total += -(y+47)*math.Sin(math.Sqrt(math.Abs(x/2+y+47))) -
			x*math.Sin(math.Sqrt(math.Abs(x-(y+47))))
	}
	return total
}
