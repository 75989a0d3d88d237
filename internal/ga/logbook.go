package ga

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Aggregate summarizes one measure over a generation
type Aggregate struct {
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
	Mean float64 `json:"mean"`
	Std  float64 `json:"std"`
}

// NewAggregate computes min/max/mean/population-std of the values
func NewAggregate(values []float64) Aggregate {
	if len(values) == 0 {
		return Aggregate{}
	}
	return Aggregate{
		Min:  floats.Min(values),
		Max:  floats.Max(values),
		Mean: stat.Mean(values, nil),
		Std:  stat.PopStdDev(values, nil),
	}
}

// Statistics is the immutable per-generation record. Chapters maps a measure
// name ("fitness", and "size" when the operator set supplies a measure) to
// its aggregate.
type Statistics struct {
	Generation  int                  `json:"generation"`
	Evaluations int                  `json:"evaluations"`
	Chapters    map[string]Aggregate `json:"chapters"`
}

// Fitness returns the fitness chapter of the record
func (s Statistics) Fitness() Aggregate {
	return s.Chapters[ChapterFitness]
}

const (
	ChapterFitness = "fitness"
	ChapterSize    = "size"
)

// Logbook is the ordered sequence of per-generation statistics, indexed by
// generation number.
type Logbook struct {
	Records []Statistics
}

// Append records one generation
func (lb *Logbook) Append(s Statistics) {
	lb.Records = append(lb.Records, s)
}

// Last returns the most recent record, or nil if empty
func (lb *Logbook) Last() *Statistics {
	if len(lb.Records) == 0 {
		return nil
	}
	return &lb.Records[len(lb.Records)-1]
}

// Select extracts one aggregate field of one chapter across all generations
func (lb *Logbook) Select(chapter string, field func(Aggregate) float64) []float64 {
	out := make([]float64, len(lb.Records))
	for i, rec := range lb.Records {
		out[i] = field(rec.Chapters[chapter])
	}
	return out
}
