package stepk

import (
	"math"
	"testing"

	"go.viam.com/test"

	"github.com/accosmin-org/nanogo/function"
	"github.com/accosmin-org/nanogo/function/benchmark"
	"github.com/accosmin-org/nanogo/linesearch"
)

func wolfeSatisfied(t *testing.T, f function.Function, x0, d []float64, f0, dg0, c1, c2, step float64) {
	phi := linesearch.NewPhi(f, x0, d)
	ft, gt := phi.At(step)
	test.That(t, ft <= f0+c1*step*dg0, test.ShouldBeTrue)
	test.That(t, math.Abs(gt) <= c2*math.Abs(dg0), test.ShouldBeTrue)
}

func TestRefinersSatisfyWolfe(t *testing.T) {
	f, err := benchmark.New("sphere", 4)
	test.That(t, err, test.ShouldBeNil)

	x0 := []float64{3, 3, 3, 3}
	g0 := make([]float64, 4)
	f0 := f.Evaluate(x0, g0)
	d := make([]float64, 4)
	for i, gi := range g0 {
		d[i] = -gi
	}
	dg0 := -dotSelf(g0)

	for _, name := range []string{"backtrack", "morethuente", "fletcher", "lemarechal", "cgdescent"} {
		refiner, err := Factory(name)
		test.That(t, err, test.ShouldBeNil)

		phi := linesearch.NewPhi(f, x0, d)
		ok, step := refiner.Refine(phi, f0, dg0, 1.0)
		test.That(t, ok, test.ShouldBeTrue)
		test.That(t, step > 0, test.ShouldBeTrue)

		if name == "backtrack" {
			// backtrack only enforces Armijo, not curvature.
			ft := phi.ValueAt(step)
			test.That(t, ft <= f0+1e-4*step*dg0, test.ShouldBeTrue)
			continue
		}
		wolfeSatisfied(t, f, x0, d, f0, dg0, 1e-4, 0.9, step)
	}
}

func TestFactoryUnknownName(t *testing.T) {
	_, err := Factory("nope")
	test.That(t, err, test.ShouldNotBeNil)
}

func dotSelf(v []float64) float64 {
	s := 0.0
	for _, x := range v {
		s += x * x
	}
	return s
}
