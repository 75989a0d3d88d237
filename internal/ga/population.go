package ga

import "sort"

// Population holds the current generation. Size is fixed at configuration
// time and stays constant across every generation transition.
type Population[G any] struct {
	Individuals []*Individual[G]
}

// Size returns the population size
func (p *Population[G]) Size() int {
	return len(p.Individuals)
}

// Best returns the individual with the best fitness under the objective
func (p *Population[G]) Best(obj Objective) *Individual[G] {
	if len(p.Individuals) == 0 {
		return nil
	}
	best := p.Individuals[0]
	for _, ind := range p.Individuals[1:] {
		if obj.Better(ind.Fitness, best.Fitness) {
			best = ind
		}
	}
	return best
}

// Sort orders individuals best-first under the objective
func (p *Population[G]) Sort(obj Objective) {
	sort.SliceStable(p.Individuals, func(i, j int) bool {
		return obj.Better(p.Individuals[i].Fitness, p.Individuals[j].Fitness)
	})
}

// Fitnesses collects the fitness values of all individuals
func (p *Population[G]) Fitnesses() []float64 {
	out := make([]float64, len(p.Individuals))
	for i, ind := range p.Individuals {
		out[i] = ind.Fitness
	}
	return out
}

// bestK returns the indices of the k best individuals, best first
func bestK[G any](inds []*Individual[G], k int, obj Objective) []int {
	idx := sortedIndices(inds, obj)
	if k > len(idx) {
		k = len(idx)
	}
	return idx[:k]
}

// worstK returns the indices of the k worst individuals, worst first
func worstK[G any](inds []*Individual[G], k int, obj Objective) []int {
	idx := sortedIndices(inds, obj)
	if k > len(idx) {
		k = len(idx)
	}
	out := make([]int, k)
	for i := 0; i < k; i++ {
		out[i] = idx[len(idx)-1-i]
	}
	return out
}

func sortedIndices[G any](inds []*Individual[G], obj Objective) []int {
	idx := make([]int, len(inds))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return obj.Better(inds[idx[a]].Fitness, inds[idx[b]].Fitness)
	})
	return idx
}
