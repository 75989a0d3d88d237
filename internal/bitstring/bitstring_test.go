package bitstring

import (
	"math/rand"
	"testing"
)

func TestRandomLengthAndRange(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	g := Random(50, rng)
	if len(g) != 50 {
		t.Fatalf("length = %d, want 50", len(g))
	}
	for i, gene := range g {
		if gene > 1 {
			t.Fatalf("gene %d = %d, want 0 or 1", i, gene)
		}
	}
}

func TestFlipMutationZeroProbabilityIsIdentity(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	parent := Random(64, rng)
	child := FlipMutation(0)(Clone(parent), rng)

	if !Equal(parent, child) {
		t.Error("indpb=0 mutation changed the genome")
	}
}

func TestFlipMutationFullProbabilityFlipsEverything(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	parent := Random(64, rng)
	child := FlipMutation(1)(Clone(parent), rng)

	for i := range parent {
		if parent[i] == child[i] {
			t.Fatalf("gene %d not flipped under indpb=1", i)
		}
	}
}

func TestOnePointCrossover(t *testing.T) {
	a := Genome{0, 0, 0, 0, 0, 0, 0, 0}
	b := Genome{1, 1, 1, 1, 1, 1, 1, 1}
	rng := rand.New(rand.NewSource(4))

	c1, c2 := OnePointCrossover(Clone(a), Clone(b), rng)

	if len(c1) != len(a) || len(c2) != len(b) {
		t.Fatal("crossover changed genome length")
	}
	// Tails swap, heads stay: each child is a prefix of one parent followed
	// by the other's suffix, with the cut strictly interior
	point := 0
	for point < len(c1) && c1[point] == 0 {
		point++
	}
	if point == 0 || point == len(c1) {
		t.Fatalf("cut point %d at the extremes", point)
	}
	for i := 0; i < len(c1); i++ {
		wantC1, wantC2 := uint8(0), uint8(1)
		if i >= point {
			wantC1, wantC2 = 1, 0
		}
		if c1[i] != wantC1 || c2[i] != wantC2 {
			t.Fatalf("gene %d: got (%d,%d), want (%d,%d)", i, c1[i], c2[i], wantC1, wantC2)
		}
	}
}

func TestOnePointCrossoverTooShort(t *testing.T) {
	a, b := Genome{0}, Genome{1}
	rng := rand.New(rand.NewSource(5))
	c1, c2 := OnePointCrossover(a, b, rng)
	if c1[0] != 0 || c2[0] != 1 {
		t.Error("length-1 genomes must pass through crossover unchanged")
	}
}

func TestOnes(t *testing.T) {
	cases := []struct {
		g    Genome
		want int
	}{
		{Genome{}, 0},
		{Genome{0, 0, 0}, 0},
		{Genome{1, 1, 1}, 3},
		{Genome{1, 0, 1, 0, 1}, 3},
	}
	for _, tc := range cases {
		if got := Ones(tc.g); got != tc.want {
			t.Errorf("Ones(%v) = %d, want %d", tc.g, got, tc.want)
		}
	}
}
