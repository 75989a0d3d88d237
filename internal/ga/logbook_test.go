package ga_test

import (
	"math"
	"testing"

	"evolve/internal/ga"
)

func TestNewAggregate(t *testing.T) {
	agg := ga.NewAggregate([]float64{2, 4, 4, 4, 5, 5, 7, 9})

	if agg.Min != 2 || agg.Max != 9 {
		t.Errorf("min/max = %g/%g, want 2/9", agg.Min, agg.Max)
	}
	if agg.Mean != 5 {
		t.Errorf("mean = %g, want 5", agg.Mean)
	}
	// Population standard deviation of this classic sample is exactly 2
	if math.Abs(agg.Std-2) > 1e-12 {
		t.Errorf("std = %g, want 2", agg.Std)
	}
}

func TestNewAggregateEmpty(t *testing.T) {
	agg := ga.NewAggregate(nil)
	if agg != (ga.Aggregate{}) {
		t.Errorf("aggregate of empty input = %+v, want zero value", agg)
	}
}

func TestLogbookSelect(t *testing.T) {
	lb := &ga.Logbook{}
	for gen := 0; gen < 3; gen++ {
		lb.Append(ga.Statistics{
			Generation: gen,
			Chapters: map[string]ga.Aggregate{
				ga.ChapterFitness: {Max: float64(gen * 10)},
			},
		})
	}

	maxes := lb.Select(ga.ChapterFitness, func(a ga.Aggregate) float64 { return a.Max })
	want := []float64{0, 10, 20}
	for i := range want {
		if maxes[i] != want[i] {
			t.Errorf("maxes[%d] = %g, want %g", i, maxes[i], want[i])
		}
	}

	if lb.Last().Generation != 2 {
		t.Errorf("last generation = %d, want 2", lb.Last().Generation)
	}
}
