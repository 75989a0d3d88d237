package gp_test

import (
	"math"
	"math/rand"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/ginkgo/extensions/table"
	. "github.com/onsi/gomega"

	"evolve/internal/gp"
)

func arith() *gp.PrimitiveSet {
	return gp.Arithmetic([]string{"x"}, 1)
}

func prim(ps *gp.PrimitiveSet, name string, children ...*gp.Node) *gp.Node {
	p, ok := ps.Lookup(name)
	if !ok {
		panic("unknown primitive " + name)
	}
	return &gp.Node{Kind: gp.KindPrimitive, Prim: p, Children: children}
}

func constant(v float64) *gp.Node {
	return &gp.Node{Kind: gp.KindConstant, Value: v}
}

func variable(idx int) *gp.Node {
	return &gp.Node{Kind: gp.KindVariable, Var: idx}
}

var _ = Describe("Eval", func() {
	ps := arith()

	DescribeTable("arithmetic",
		func(tree *gp.Node, x, expected float64) {
			Expect(tree.Eval([]float64{x})).To(BeNumerically("~", expected, 1e-12))
		},
		Entry("constant", constant(2.5), 0.0, 2.5),
		Entry("variable", variable(0), 3.0, 3.0),
		Entry("add", prim(ps, "add", constant(1), constant(2)), 0.0, 3.0),
		Entry("sub", prim(ps, "sub", variable(0), constant(2)), 5.0, 3.0),
		Entry("mul", prim(ps, "mul", variable(0), variable(0)), 4.0, 16.0),
		Entry("div", prim(ps, "div", constant(1), constant(2)), 0.0, 0.5),
		Entry("neg", prim(ps, "neg", variable(0)), 7.0, -7.0),
		Entry("sin", prim(ps, "sin", constant(0)), 0.0, 0.0),
		Entry("cos", prim(ps, "cos", constant(0)), 0.0, 1.0),
		Entry("nested", prim(ps, "add", prim(ps, "mul", variable(0), variable(0)), variable(0)), 3.0, 12.0),
	)

	It("substitutes the fallback for division by zero", func() {
		tree := prim(ps, "div", constant(1), constant(0))
		Expect(tree.Eval(nil)).To(Equal(1.0))
	})

	It("uses the configured fallback value", func() {
		set := gp.Arithmetic([]string{"x"}, 42)
		p, _ := set.Lookup("div")
		tree := &gp.Node{Kind: gp.KindPrimitive, Prim: p, Children: []*gp.Node{constant(3), constant(0)}}
		Expect(tree.Eval(nil)).To(Equal(42.0))
	})

	It("compiles to a function matching the interpreter", func() {
		rng := rand.New(rand.NewSource(9))
		for i := 0; i < 50; i++ {
			tree := gp.HalfAndHalf(ps, 1, 4, rng)
			fn := tree.Compile()
			for _, x := range []float64{-1, -0.5, 0, 0.5, 1} {
				interpreted := tree.Eval([]float64{x})
				compiled := fn([]float64{x})
				if math.IsNaN(interpreted) {
					Expect(math.IsNaN(compiled)).To(BeTrue())
				} else {
					Expect(compiled).To(Equal(interpreted))
				}
			}
		}
	})
})

var _ = Describe("Generation", func() {
	ps := arith()

	It("grow never exceeds the maximum depth", func() {
		rng := rand.New(rand.NewSource(1))
		for i := 0; i < 200; i++ {
			tree := gp.Grow(ps, 1, 4, rng)
			Expect(tree.Height()).To(BeNumerically("<=", 4))
		}
	})

	It("full reaches its target depth on every branch", func() {
		rng := rand.New(rand.NewSource(2))
		for i := 0; i < 200; i++ {
			tree := gp.Full(ps, 3, 3, rng)
			Expect(tree.Height()).To(Equal(3))
			Expect(minLeafDepth(tree)).To(Equal(3))
		}
	})

	It("half-and-half stays within the depth bounds", func() {
		rng := rand.New(rand.NewSource(3))
		for i := 0; i < 200; i++ {
			tree := gp.HalfAndHalf(ps, 1, 5, rng)
			Expect(tree.Height()).To(BeNumerically("<=", 5))
		}
	})

	It("rejects an empty primitive set", func() {
		empty := &gp.PrimitiveSet{}
		Expect(empty.Validate()).To(HaveOccurred())
	})
})

var _ = Describe("Serialization", func() {
	ps := arith()

	It("round-trips random trees through the token sequence", func() {
		rng := rand.New(rand.NewSource(4))
		for i := 0; i < 100; i++ {
			tree := gp.HalfAndHalf(ps, 1, 5, rng)
			rebuilt, err := gp.FromTokens(ps, tree.Tokens())
			Expect(err).ToNot(HaveOccurred())
			Expect(rebuilt.Equal(tree)).To(BeTrue(), "tree %s", tree)
		}
	})

	It("rejects unknown primitives", func() {
		_, err := gp.FromTokens(ps, []gp.Token{{Kind: gp.KindPrimitive, Name: "bogus"}})
		Expect(err).To(HaveOccurred())
	})

	It("rejects truncated sequences", func() {
		tree := prim(ps, "add", constant(1), constant(2))
		tokens := tree.Tokens()
		_, err := gp.FromTokens(ps, tokens[:len(tokens)-1])
		Expect(err).To(HaveOccurred())
	})

	It("rejects trailing tokens", func() {
		tokens := append(constant(1).Tokens(), gp.Token{Kind: gp.KindConstant, Value: 2})
		_, err := gp.FromTokens(ps, tokens)
		Expect(err).To(HaveOccurred())
	})

	It("keys structurally identical trees identically", func() {
		a := prim(ps, "add", variable(0), constant(0.5))
		b := prim(ps, "add", variable(0), constant(0.5))
		c := prim(ps, "add", constant(0.5), variable(0))
		Expect(a.Key()).To(Equal(b.Key()))
		Expect(a.Key()).ToNot(Equal(c.Key()))
	})
})

var _ = Describe("Variation", func() {
	ps := arith()

	It("crossover preserves arity validity and the height limit", func() {
		rng := rand.New(rand.NewSource(5))
		cross := gp.SubtreeCrossover(6)
		for i := 0; i < 200; i++ {
			a := gp.HalfAndHalf(ps, 2, 5, rng)
			b := gp.HalfAndHalf(ps, 2, 5, rng)
			c1, c2 := cross(a, b, rng)
			Expect(c1.Height()).To(BeNumerically("<=", 6))
			Expect(c2.Height()).To(BeNumerically("<=", 6))
			// A structurally broken tree would fail to round-trip
			_, err := gp.FromTokens(ps, c1.Tokens())
			Expect(err).ToNot(HaveOccurred())
			_, err = gp.FromTokens(ps, c2.Tokens())
			Expect(err).ToNot(HaveOccurred())
		}
	})

	It("crossover reverts oversized offspring to a parent", func() {
		rng := rand.New(rand.NewSource(6))
		// Limit equal to the parents' height: any swap that grows a branch
		// reverts, so offspring always match one of the parents' heights
		cross := gp.SubtreeCrossover(3)
		for i := 0; i < 100; i++ {
			a := gp.Full(ps, 3, 3, rng)
			b := gp.Full(ps, 3, 3, rng)
			c1, c2 := cross(a, b, rng)
			Expect(c1.Height()).To(BeNumerically("<=", 3))
			Expect(c2.Height()).To(BeNumerically("<=", 3))
		}
	})

	It("mutation respects the height limit", func() {
		rng := rand.New(rand.NewSource(7))
		mutate := gp.UniformMutation(ps, 0, 2, 4)
		for i := 0; i < 200; i++ {
			tree := gp.HalfAndHalf(ps, 2, 4, rng)
			mutated := mutate(tree, rng)
			Expect(mutated.Height()).To(BeNumerically("<=", 4))
		}
	})
})

var _ = Describe("Clone", func() {
	ps := arith()

	It("produces an independent deep copy", func() {
		rng := rand.New(rand.NewSource(8))
		tree := gp.HalfAndHalf(ps, 2, 4, rng)
		cloned := tree.Clone()
		Expect(cloned.Equal(tree)).To(BeTrue())

		// Mutating the clone must not affect the original
		mutate := gp.UniformMutation(ps, 1, 2, 10)
		original := tree.Key()
		for i := 0; i < 20; i++ {
			cloned = mutate(cloned, rng)
		}
		Expect(tree.Key()).To(Equal(original))
	})
})

func minLeafDepth(n *gp.Node) int {
	if len(n.Children) == 0 {
		return 0
	}
	min := math.MaxInt
	for _, c := range n.Children {
		if d := minLeafDepth(c) + 1; d < min {
			min = d
		}
	}
	return min
}
