package step0

import (
	"testing"

	"go.viam.com/test"
)

func TestConstantAlwaysReturnsT0(t *testing.T) {
	c := NewConstant(2.5)
	test.That(t, c.Init(Input{}), test.ShouldEqual, 2.5)
	test.That(t, c.Init(Input{Iteration: 5}), test.ShouldEqual, 2.5)
}

func TestLinearFirstIterationIsOne(t *testing.T) {
	l := NewLinear()
	test.That(t, l.Init(Input{Iteration: 0}), test.ShouldEqual, 1.0)
}

func TestLinearClampsToOne(t *testing.T) {
	l := NewLinear()
	// PrevDg/Dg = 10 would push well above 1; min(1, ...) clamps it.
	got := l.Init(Input{Iteration: 1, PrevT: 1, PrevDg: -10, Dg: -1})
	test.That(t, got, test.ShouldEqual, 1.0)
}

func TestQuadraticFirstIterationIsOne(t *testing.T) {
	q := NewQuadratic()
	test.That(t, q.Init(Input{Iteration: 0}), test.ShouldEqual, 1.0)
}

func TestCGDescentFirstIterationFallback(t *testing.T) {
	c := NewCGDescent()
	got := c.Init(Input{
		Iteration: 0,
		X:         []float64{1, 2, 3},
		G:         []float64{0.1, 0.2, 0.3},
		F:         10,
	})
	test.That(t, got > 0, test.ShouldBeTrue)
}

func TestCGDescentSubsequentIterationUsesPsi2WithoutEval(t *testing.T) {
	c := NewCGDescent()
	got := c.Init(Input{Iteration: 1, PrevT: 0.5, PrevDg: -1, Dg: -0.5})
	test.That(t, got, test.ShouldEqual, 0.5*c.psi2.Float())
}

func TestFactoryUnknownName(t *testing.T) {
	_, err := Factory("nonexistent")
	test.That(t, err, test.ShouldNotBeNil)
}

func TestFactoryBuildsAll(t *testing.T) {
	for _, name := range []string{"constant", "linear", "quadratic", "cg-descent"} {
		strat, err := Factory(name)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, strat.Name(), test.ShouldEqual, name)
	}
}
