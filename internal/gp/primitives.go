// Package gp provides the expression-tree genome for symbolic regression:
// primitive sets, random tree generation, an interpreter, variation
// operators with static height limiting, and a lossless prefix-token
// serialization.
package gp

import (
	"fmt"
	"math"
	"math/rand"
)

// Primitive is an internal tree node type: a named operator with fixed arity
type Primitive struct {
	Name  string
	Arity int
	Apply func(args []float64) float64
}

// PrimitiveSet defines the building blocks of a tree genome: primitives for
// internal nodes, variables and an ephemeral-constant generator for leaves.
type PrimitiveSet struct {
	Primitives []Primitive
	Variables  []string
	// Ephemeral samples a fresh constant at node-creation time. The sampled
	// value is stored immutably on the node.
	Ephemeral func(rng *rand.Rand) float64
}

const divEpsilon = 1e-12

// Arithmetic returns the standard symbolic-regression primitive set:
// add, sub, mul, protected div, neg, sin, cos. Division by (near-)zero
// returns divFallback instead of producing Inf/NaN.
func Arithmetic(variables []string, divFallback float64) *PrimitiveSet {
	return &PrimitiveSet{
		Primitives: []Primitive{
			{Name: "add", Arity: 2, Apply: func(a []float64) float64 { return a[0] + a[1] }},
			{Name: "sub", Arity: 2, Apply: func(a []float64) float64 { return a[0] - a[1] }},
			{Name: "mul", Arity: 2, Apply: func(a []float64) float64 { return a[0] * a[1] }},
			{Name: "div", Arity: 2, Apply: func(a []float64) float64 {
				if math.Abs(a[1]) < divEpsilon {
					return divFallback
				}
				return a[0] / a[1]
			}},
			{Name: "neg", Arity: 1, Apply: func(a []float64) float64 { return -a[0] }},
			{Name: "sin", Arity: 1, Apply: func(a []float64) float64 { return math.Sin(a[0]) }},
			{Name: "cos", Arity: 1, Apply: func(a []float64) float64 { return math.Cos(a[0]) }},
		},
		Variables: variables,
		Ephemeral: func(rng *rand.Rand) float64 { return rng.Float64()*2 - 1 },
	}
}

// Validate reports a configuration error for a set that cannot generate
// valid trees
func (ps *PrimitiveSet) Validate() error {
	if len(ps.Primitives) == 0 {
		return fmt.Errorf("primitive set has no primitives")
	}
	if len(ps.Variables) == 0 && ps.Ephemeral == nil {
		return fmt.Errorf("primitive set has no terminals")
	}
	for _, p := range ps.Primitives {
		if p.Arity <= 0 {
			return fmt.Errorf("primitive %q has non-positive arity %d", p.Name, p.Arity)
		}
		if p.Apply == nil {
			return fmt.Errorf("primitive %q has no apply func", p.Name)
		}
	}
	return nil
}

// Lookup finds a primitive by name
func (ps *PrimitiveSet) Lookup(name string) (Primitive, bool) {
	for _, p := range ps.Primitives {
		if p.Name == name {
			return p, true
		}
	}
	return Primitive{}, false
}
