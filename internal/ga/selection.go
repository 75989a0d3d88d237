package ga

import (
	"fmt"
	"math/rand"
)

// Selector chooses one parent from an evaluated population. Pick returns a
// view into the population; the engine clones before variation, so selection
// never mutates the source population.
type Selector[G any] interface {
	Pick(pop *Population[G], obj Objective, rng *rand.Rand) *Individual[G]
}

// Tournament selects the best of K uniform draws (with replacement).
// Larger K increases selection pressure.
type Tournament[G any] struct {
	K int
}

// NewTournament creates a tournament selector of size k
func NewTournament[G any](k int) Tournament[G] {
	return Tournament[G]{K: k}
}

func (t Tournament[G]) Pick(pop *Population[G], obj Objective, rng *rand.Rand) *Individual[G] {
	inds := pop.Individuals
	best := inds[rng.Intn(len(inds))]
	for i := 1; i < t.K; i++ {
		candidate := inds[rng.Intn(len(inds))]
		if obj.Better(candidate.Fitness, best.Fitness) {
			best = candidate
		}
	}
	return best
}

// Roulette is fitness-proportionate selection. It requires strictly positive
// fitness values: callers with negative or zero fitness must shift or
// transform fitness themselves before using it. A non-positive wheel total is
// an invariant violation, not a recoverable condition, and panics.
type Roulette[G any] struct{}

// NewRoulette creates a roulette-wheel selector
func NewRoulette[G any]() Roulette[G] {
	return Roulette[G]{}
}

func (Roulette[G]) Pick(pop *Population[G], obj Objective, rng *rand.Rand) *Individual[G] {
	inds := pop.Individuals
	total := 0.0
	for _, ind := range inds {
		if ind.Fitness <= 0 {
			panic(fmt.Sprintf("roulette selection requires strictly positive fitness, got %g", ind.Fitness))
		}
		total += ind.Fitness
	}

	spin := rng.Float64() * total
	acc := 0.0
	for _, ind := range inds {
		acc += ind.Fitness
		if acc >= spin {
			return ind
		}
	}
	return inds[len(inds)-1]
}
