package ga

// Objective sets the direction of search and supplies the better-than
// comparator used by selection, elitism and the hall of fame.
type Objective int

const (
	Maximize Objective = iota
	Minimize
)

// Better reports whether fitness a beats fitness b under the objective
func (o Objective) Better(a, b float64) bool {
	if o == Minimize {
		return a < b
	}
	return a > b
}

func (o Objective) String() string {
	if o == Minimize {
		return "minimize"
	}
	return "maximize"
}

// Individual is one candidate solution: a genome plus its cached fitness.
// Fitness is absent (Valid false) until evaluated and is invalidated
// whenever variation touches the genome.
type Individual[G any] struct {
	Genome  G
	Fitness float64
	Valid   bool
}

// Invalidate clears the cached fitness after a genome change
func (ind *Individual[G]) Invalidate() {
	ind.Fitness = 0
	ind.Valid = false
}
