package constrained

import (
	"context"
	"testing"

	"go.viam.com/test"

	"github.com/accosmin-org/nanogo/function"
	"github.com/accosmin-org/nanogo/logging"
	"github.com/accosmin-org/nanogo/solver"
)

// sumConstrainedSphere is x^Tx subject to sum(x) = 1, whose constrained
// optimum is x_i = 1/n for all i.
type sumConstrainedSphere struct {
	function.Base
	n int
}

func newSumConstrainedSphere(n int) *sumConstrainedSphere {
	f := &sumConstrainedSphere{n: n}
	f.Base = function.NewBase("sum-constrained-sphere", n, function.ConvexityYes, true, 2)
	a := make([]float64, n)
	for i := range a {
		a[i] = 1
	}
	f.Base.WithConstraints(function.Constraints{LinearEqualities: []function.LinearEquality{{A: a, B: 1}}})
	return f
}

func (f *sumConstrainedSphere) Evaluate(x, g []float64) float64 {
	f.Tick(g != nil)
	val := 0.0
	for i, xi := range x {
		val += xi * xi
		if g != nil {
			g[i] = 2 * xi
		}
	}
	return val
}

func TestPenaltyMethodFindsConstrainedOptimum(t *testing.T) {
	f := newSumConstrainedSphere(3)
	inner, err := solver.Factory("lbfgs")
	test.That(t, err, test.ShouldBeNil)

	p := NewPenalty(inner, PenaltyQuadratic)
	state := p.Minimize(context.Background(), f, []float64{0.5, 0.2, -0.1}, logging.NopLogger(), nil)

	for _, xi := range state.X {
		test.That(t, xi, test.ShouldAlmostEqual, 1.0/3.0, 1e-2)
	}
}

func TestAugLagFindsConstrainedOptimum(t *testing.T) {
	f := newSumConstrainedSphere(3)
	inner, err := solver.Factory("lbfgs")
	test.That(t, err, test.ShouldBeNil)

	a := NewAugLag(inner)
	state := a.Minimize(context.Background(), f, []float64{0.5, 0.2, -0.1}, logging.NopLogger(), nil)

	for _, xi := range state.X {
		test.That(t, xi, test.ShouldAlmostEqual, 1.0/3.0, 1e-2)
	}
}
