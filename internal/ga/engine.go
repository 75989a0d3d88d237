package ga

import (
	"context"
	"fmt"
	"math/rand"
)

// Operators bundles the genome-specific operator set. Each genome package
// exports constructors returning these funcs bound to their configuration;
// no global operator registry exists.
type Operators[G any] struct {
	// Initialize produces one random, valid genome
	Initialize func(rng *rand.Rand) G
	// Crossover combines two parent genomes into two offspring genomes.
	// Inputs are already private copies and may be consumed.
	Crossover func(a, b G, rng *rand.Rand) (G, G)
	// Mutate perturbs a genome. The input is a private copy.
	Mutate func(g G, rng *rand.Rand) G
	// Clone deep-copies a genome
	Clone func(G) G
	// Equal reports structural genome equality (hall-of-fame dedup)
	Equal func(a, b G) bool
	// Measure is optional; when set its value is recorded as the "size"
	// chapter of each generation's statistics
	Measure func(G) float64
}

// Config holds the engine parameters for one run
type Config struct {
	PopulationSize int
	Generations    int
	CrossoverRate  float64
	MutationRate   float64
	Elites         int
	HallOfFame     int
	Objective      Objective
	Seed           int64
	Workers        int
}

// Result is the run output consumed by external reporting code
type Result[G any] struct {
	Population *Population[G]
	HallOfFame *HallOfFame[G]
	Logbook    *Logbook
}

// Engine drives the generational loop: selection, variation, evaluation,
// elitist replacement, statistics. All randomness flows through a single
// seeded RNG on the loop thread, so runs with the same seed reproduce
// identical per-generation statistics.
type Engine[G any] struct {
	cfg  Config
	ops  Operators[G]
	sel  Selector[G]
	eval Evaluator[G]
	rng  *rand.Rand

	// Terminator, when set, stops the run early once it returns true.
	// Checked at the generation boundary.
	Terminator func(*Logbook) bool
	// OnGeneration, when set, is invoked with each generation's statistics
	// at the boundary. The engine itself performs no I/O.
	OnGeneration func(Statistics)
}

// NewEngine validates the configuration and operator set. Any violation is a
// fatal setup error; once Run starts, the loop always completes.
func NewEngine[G any](cfg Config, ops Operators[G], sel Selector[G], eval Evaluator[G]) (*Engine[G], error) {
	if cfg.PopulationSize <= 0 {
		return nil, fmt.Errorf("population size must be positive, got %d", cfg.PopulationSize)
	}
	if cfg.Generations < 0 {
		return nil, fmt.Errorf("generations must be non-negative, got %d", cfg.Generations)
	}
	if cfg.CrossoverRate < 0 || cfg.CrossoverRate > 1 {
		return nil, fmt.Errorf("crossover rate must be in [0,1], got %g", cfg.CrossoverRate)
	}
	if cfg.MutationRate < 0 || cfg.MutationRate > 1 {
		return nil, fmt.Errorf("mutation rate must be in [0,1], got %g", cfg.MutationRate)
	}
	if cfg.Elites < 0 || cfg.Elites > cfg.PopulationSize {
		return nil, fmt.Errorf("elites must be in [0,%d], got %d", cfg.PopulationSize, cfg.Elites)
	}
	if cfg.HallOfFame < 0 {
		return nil, fmt.Errorf("hall of fame capacity must be non-negative, got %d", cfg.HallOfFame)
	}
	if ops.Initialize == nil || ops.Crossover == nil || ops.Mutate == nil || ops.Clone == nil || ops.Equal == nil {
		return nil, fmt.Errorf("operator set incomplete: initialize, crossover, mutate, clone and equal are required")
	}
	if sel == nil {
		return nil, fmt.Errorf("selector is required")
	}
	if eval == nil {
		return nil, fmt.Errorf("evaluator is required")
	}

	return &Engine[G]{
		cfg:  cfg,
		ops:  ops,
		sel:  sel,
		eval: eval,
		rng:  rand.New(rand.NewSource(cfg.Seed)),
	}, nil
}

// Run executes the evolutionary loop to the configured generation count, an
// early Terminator stop, or ctx cancellation. Cancellation is honored
// cooperatively at the generation boundary; the partial result is returned
// alongside the ctx error.
func (e *Engine[G]) Run(ctx context.Context) (*Result[G], error) {
	pop := &Population[G]{Individuals: e.initialize()}
	hof := NewHallOfFame[G](e.cfg.HallOfFame, e.cfg.Objective, e.ops.Clone, e.ops.Equal)
	logbook := &Logbook{}
	result := &Result[G]{Population: pop, HallOfFame: hof, Logbook: logbook}

	nev := EvaluateAll(pop.Individuals, e.eval, e.cfg.Workers)
	hof.Update(pop.Individuals)
	e.record(logbook, 0, pop, nev)

	for gen := 1; gen <= e.cfg.Generations; gen++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}
		if e.Terminator != nil && e.Terminator(logbook) {
			break
		}

		offspring := e.vary(pop)
		nev := EvaluateAll(offspring, e.eval, e.cfg.Workers)
		hof.Update(offspring)
		e.applyElitism(pop.Individuals, offspring)

		pop.Individuals = offspring
		e.record(logbook, gen, pop, nev)
	}

	return result, nil
}

// initialize creates the starting population with fitness unset
func (e *Engine[G]) initialize() []*Individual[G] {
	inds := make([]*Individual[G], e.cfg.PopulationSize)
	for i := range inds {
		inds[i] = &Individual[G]{Genome: e.ops.Initialize(e.rng)}
	}
	return inds
}

// vary selects parents and applies crossover then mutation to private
// copies. Crossover and mutation fire independently per their rates, so an
// offspring can undergo both, either, or neither in one generation.
func (e *Engine[G]) vary(pop *Population[G]) []*Individual[G] {
	n := e.cfg.PopulationSize
	offspring := make([]*Individual[G], n)
	for i := range offspring {
		picked := e.sel.Pick(pop, e.cfg.Objective, e.rng)
		offspring[i] = &Individual[G]{
			Genome:  e.ops.Clone(picked.Genome),
			Fitness: picked.Fitness,
			Valid:   picked.Valid,
		}
	}

	for i := 0; i+1 < n; i += 2 {
		if e.rng.Float64() < e.cfg.CrossoverRate {
			a, b := e.ops.Crossover(offspring[i].Genome, offspring[i+1].Genome, e.rng)
			offspring[i].Genome, offspring[i+1].Genome = a, b
			offspring[i].Invalidate()
			offspring[i+1].Invalidate()
		}
	}

	for _, child := range offspring {
		if e.rng.Float64() < e.cfg.MutationRate {
			child.Genome = e.ops.Mutate(child.Genome, e.rng)
			child.Invalidate()
		}
	}

	return offspring
}

// applyElitism clones the K best of the previous generation over the K worst
// offspring, guaranteeing the best-ever fitness never regresses under
// generational replacement.
func (e *Engine[G]) applyElitism(prev, offspring []*Individual[G]) {
	k := e.cfg.Elites
	if k == 0 {
		return
	}
	elite := bestK(prev, k, e.cfg.Objective)
	worst := worstK(offspring, k, e.cfg.Objective)
	for j := range elite {
		src := prev[elite[j]]
		offspring[worst[j]] = &Individual[G]{
			Genome:  e.ops.Clone(src.Genome),
			Fitness: src.Fitness,
			Valid:   src.Valid,
		}
	}
}

func (e *Engine[G]) record(lb *Logbook, gen int, pop *Population[G], nev int) {
	chapters := map[string]Aggregate{
		ChapterFitness: NewAggregate(pop.Fitnesses()),
	}
	if e.ops.Measure != nil {
		sizes := make([]float64, pop.Size())
		for i, ind := range pop.Individuals {
			sizes[i] = e.ops.Measure(ind.Genome)
		}
		chapters[ChapterSize] = NewAggregate(sizes)
	}

	stats := Statistics{
		Generation:  gen,
		Evaluations: nev,
		Chapters:    chapters,
	}
	lb.Append(stats)
	if e.OnGeneration != nil {
		e.OnGeneration(stats)
	}
}
