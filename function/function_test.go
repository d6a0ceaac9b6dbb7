package function

import (
	"testing"

	"go.viam.com/test"
)

type quadraticFn struct {
	Base
}

func newQuadraticFn(n int) *quadraticFn {
	f := &quadraticFn{Base: NewBase("test-quadratic", n, ConvexityYes, true, 2)}
	return f
}

func (f *quadraticFn) Evaluate(x, g []float64) float64 {
	f.Tick(len(g) > 0)
	sum := 0.0
	for i, xi := range x {
		sum += xi * xi
		if g != nil {
			g[i] = 2 * xi
		}
	}
	return sum
}

func TestCountersMonotone(t *testing.T) {
	f := newQuadraticFn(3)
	x := []float64{1, 2, 3}
	f.Evaluate(x, nil)
	f.Evaluate(x, make([]float64, 3))
	test.That(t, f.Counters().FCalls(), test.ShouldEqual, int64(2))
	test.That(t, f.Counters().GCalls(), test.ShouldEqual, int64(1))
	test.That(t, f.Counters().Total(), test.ShouldEqual, int64(3))
}

func TestCentralDifferenceGradientMatchesAnalytic(t *testing.T) {
	f := newQuadraticFn(4)
	x := []float64{1, -2, 0.5, 3}
	analytic := make([]float64, 4)
	f.Evaluate(x, analytic)
	numeric := CentralDifferenceGradient(f, x, 1e-6)
	for i := range analytic {
		test.That(t, numeric[i], test.ShouldAlmostEqual, analytic[i], 1e-4)
	}
}

func TestConstraintsResidual(t *testing.T) {
	c := &Constraints{
		LinearEqualities:   []LinearEquality{{A: []float64{1, 1}, B: 2}},
		LinearInequalities: []LinearInequality{{G: []float64{1, 0}, H: 1}},
	}
	test.That(t, c.Valid([]float64{1, 1}, 1e-9), test.ShouldBeTrue)
	test.That(t, c.Valid([]float64{3, 0}, 1e-9), test.ShouldBeFalse)
	test.That(t, c.MaxResidual([]float64{3, 0}), test.ShouldAlmostEqual, 2.0, 1e-9)
}

func TestConstraintsEmpty(t *testing.T) {
	var c Constraints
	test.That(t, c.Empty(), test.ShouldBeTrue)
	test.That(t, c.Valid([]float64{1, 2, 3}, 0), test.ShouldBeTrue)
}
