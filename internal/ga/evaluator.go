package ga

import (
	"runtime"

	"github.com/sourcegraph/conc/pool"
)

// Evaluator maps a genome to a scalar fitness. It must be pure with respect
// to the engine: evaluations of distinct individuals share no mutable state,
// so batches can run in parallel.
type Evaluator[G any] func(G) float64

// EvaluateAll assigns fitness to every individual lacking a valid one and
// returns the number of evaluations performed. Individuals with cached
// fitness are skipped. Results are written back into their index positions
// before returning, so callers observe a fully evaluated batch.
func EvaluateAll[G any](inds []*Individual[G], eval Evaluator[G], workers int) int {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	p := pool.New().WithMaxGoroutines(workers)
	evaluated := 0
	for _, ind := range inds {
		if ind.Valid {
			continue
		}
		evaluated++
		ind := ind
		p.Go(func() {
			ind.Fitness = eval(ind.Genome)
			ind.Valid = true
		})
	}
	p.Wait()
	return evaluated
}
