package problem

import (
	"math"
	"testing"

	"evolve/internal/bitstring"
	"evolve/internal/gp"
	"evolve/internal/realvec"
)

func TestOneMax(t *testing.T) {
	cases := []struct {
		g    bitstring.Genome
		want float64
	}{
		{bitstring.Genome{0, 0, 0, 0}, 0},
		{bitstring.Genome{1, 1, 1, 1}, 4},
		{bitstring.Genome{1, 0, 1, 0}, 2},
	}
	for _, tc := range cases {
		if got := OneMax(tc.g); got != tc.want {
			t.Errorf("OneMax(%v) = %g, want %g", tc.g, got, tc.want)
		}
	}
}

func TestEggholderKnownMinimum(t *testing.T) {
	// Global minimum of the 2-D surface
	got := Eggholder(realvec.Genome{512, 404.2319})
	if math.Abs(got-(-959.6407)) > 0.001 {
		t.Errorf("Eggholder(512, 404.2319) = %g, want about -959.6407", got)
	}
}

func TestEggholderOrigin(t *testing.T) {
	got := Eggholder(realvec.Genome{0, 0})
	want := -47 * math.Sin(math.Sqrt(47.0))
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("Eggholder(0, 0) = %g, want %g", got, want)
	}
}

func newTestSymReg(t *testing.T) *SymReg {
	t.Helper()
	s, err := NewSymReg("x*x + x", -1, 1, 21, 1000, 64)
	if err != nil {
		t.Fatalf("NewSymReg: %v", err)
	}
	return s
}

func TestSymRegExactTargetScoresZero(t *testing.T) {
	s := newTestSymReg(t)
	ps := gp.Arithmetic([]string{"x"}, 1)

	// add(mul(x, x), x) is exactly the target curve
	mul, _ := ps.Lookup("mul")
	add, _ := ps.Lookup("add")
	x := &gp.Node{Kind: gp.KindVariable, Var: 0}
	tree := &gp.Node{Kind: gp.KindPrimitive, Prim: add, Children: []*gp.Node{
		{Kind: gp.KindPrimitive, Prim: mul, Children: []*gp.Node{x, x.Clone()}},
		x.Clone(),
	}}

	if mse := s.Evaluate(tree); mse > 1e-18 {
		t.Errorf("MSE of exact target tree = %g, want 0", mse)
	}
}

func TestSymRegCapsMonsterFitness(t *testing.T) {
	s := newTestSymReg(t)
	ps := gp.Arithmetic([]string{"x"}, 1)

	// A huge constant drives the squared error far past the ceiling
	mul, _ := ps.Lookup("mul")
	big := &gp.Node{Kind: gp.KindConstant, Value: 1e200}
	tree := &gp.Node{Kind: gp.KindPrimitive, Prim: mul, Children: []*gp.Node{big, big.Clone()}}

	got := s.Evaluate(tree)
	if got != 1000 {
		t.Errorf("capped fitness = %g, want 1000", got)
	}
	if math.IsNaN(got) || math.IsInf(got, 0) {
		t.Error("fitness must never be NaN or Inf")
	}
}

func TestSymRegProtectedDivisionInsideFitness(t *testing.T) {
	s := newTestSymReg(t)
	ps := gp.Arithmetic([]string{"x"}, 1)

	// div(1, 0) evaluates to the fallback 1 at every sample; its MSE against
	// the target is finite and uncapped
	div, _ := ps.Lookup("div")
	tree := &gp.Node{Kind: gp.KindPrimitive, Prim: div, Children: []*gp.Node{
		{Kind: gp.KindConstant, Value: 1},
		{Kind: gp.KindConstant, Value: 0},
	}}

	got := s.Evaluate(tree)
	if math.IsNaN(got) || math.IsInf(got, 0) {
		t.Fatalf("protected division leaked a non-finite fitness: %g", got)
	}
	if got >= 1000 {
		t.Errorf("fitness = %g, want finite value below the cap", got)
	}
}

func TestSymRegCacheReturnsSameValue(t *testing.T) {
	s := newTestSymReg(t)
	ps := gp.Arithmetic([]string{"x"}, 1)

	add, _ := ps.Lookup("add")
	tree := &gp.Node{Kind: gp.KindPrimitive, Prim: add, Children: []*gp.Node{
		{Kind: gp.KindVariable, Var: 0},
		{Kind: gp.KindConstant, Value: 0.25},
	}}

	first := s.Evaluate(tree)
	second := s.Evaluate(tree.Clone())
	if first != second {
		t.Errorf("cache returned %g for a structurally identical tree, first run gave %g", second, first)
	}
}

func TestNewSymRegErrors(t *testing.T) {
	if _, err := NewSymReg("x +* 2", -1, 1, 10, 1000, 64); err == nil {
		t.Error("expected error for malformed target expression")
	}
	if _, err := NewSymReg("x", -1, 1, 0, 1000, 64); err == nil {
		t.Error("expected error for zero sample count")
	}
}

func TestSymRegTargetMatchesExpression(t *testing.T) {
	s, err := NewSymReg("x*x*x*x + x*x*x + x*x + x", -1, 1, 20, 1000, 64)
	if err != nil {
		t.Fatalf("NewSymReg: %v", err)
	}
	if s.Samples() != 20 {
		t.Errorf("samples = %d, want 20", s.Samples())
	}
}
