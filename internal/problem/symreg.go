package problem

import (
	"context"
	"fmt"
	"math"

	"github.com/PaesslerAG/gval"
	lru "github.com/hashicorp/golang-lru"

	"evolve/internal/gp"
)

type sample struct {
	x, y float64
}

// SymReg is the symbolic-regression fitness: mean squared error of a
// compiled tree against a target curve over a fixed set of sample points,
// minimized. Non-finite or oversized errors are capped at a configured
// ceiling so an individual combining primitives badly can never stall the
// run. Structurally identical trees hit an LRU cache instead of being
// re-evaluated.
type SymReg struct {
	samples []sample
	cap     float64
	cache   *lru.Cache
}

// NewSymReg compiles targetExpr (an expression in the variable x) and
// samples it at count evenly spaced points over [from, to]
func NewSymReg(targetExpr string, from, to float64, count int, fitnessCap float64, cacheSize int) (*SymReg, error) {
	if count <= 0 {
		return nil, fmt.Errorf("sample count must be positive, got %d", count)
	}
	target, err := gval.Full().NewEvaluable(targetExpr)
	if err != nil {
		return nil, fmt.Errorf("compile target expression %q: %w", targetExpr, err)
	}

	ctx := context.Background()
	samples := make([]sample, count)
	step := 0.0
	if count > 1 {
		step = (to - from) / float64(count-1)
	}
	for i := range samples {
		x := from + float64(i)*step
		y, err := target.EvalFloat64(ctx, map[string]interface{}{"x": x})
		if err != nil {
			return nil, fmt.Errorf("evaluate target at x=%g: %w", x, err)
		}
		samples[i] = sample{x: x, y: y}
	}

	cache, err := lru.New(cacheSize)
	if err != nil {
		return nil, fmt.Errorf("create fitness cache: %w", err)
	}

	return &SymReg{samples: samples, cap: fitnessCap, cache: cache}, nil
}

// Evaluate returns the capped MSE of the tree against the target samples
func (s *SymReg) Evaluate(tree *gp.Node) float64 {
	key := tree.Key()
	if v, ok := s.cache.Get(key); ok {
		return v.(float64)
	}

	fn := tree.Compile()
	vars := make([]float64, 1)
	sum := 0.0
	for _, sm := range s.samples {
		vars[0] = sm.x
		d := fn(vars) - sm.y
		sum += d * d
	}
	mse := sum / float64(len(s.samples))
	if math.IsNaN(mse) || math.IsInf(mse, 0) || mse > s.cap {
		mse = s.cap
	}

	s.cache.Add(key, mse)
	return mse
}

// Samples returns the number of target sample points
func (s *SymReg) Samples() int {
	return len(s.samples)
}
