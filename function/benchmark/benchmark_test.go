package benchmark

import (
	"math"
	"math/rand/v2"
	"testing"

	"go.viam.com/test"

	"github.com/accosmin-org/nanogo/function"
)

// smoothNames excludes the nonsmooth benchmarks, whose subgradients need
// not match a central-difference approximation at kink points.
var smoothNames = []string{
	"sphere", "rosenbrock", "powell", "trid", "qing", "cauchy", "sargan",
	"zakharov", "schumer-steiglitz", "geometric", "axis-ellipsoid",
	"rotated-ellipsoid", "styblinski-tang", "chung-reynolds", "dixon-price",
	"exponential", "quadratic",
}

func randomPoint(rng *rand.Rand, n float64, lo, hi float64) []float64 {
	// n is passed as float64 to keep call sites terse; truncated below.
	size := int(n)
	x := make([]float64, size)
	for i := range x {
		x[i] = lo + rng.Float64()*(hi-lo)
	}
	return x
}

func TestGradientMatchesCentralDifference(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for _, name := range smoothNames {
		for _, n := range []int{2, 4, 8} {
			f, err := New(name, n)
			test.That(t, err, test.ShouldBeNil)

			x := randomPoint(rng, float64(f.Size()), -1, 1)
			analytic := make([]float64, f.Size())
			f.Evaluate(x, analytic)

			numeric := function.CentralDifferenceGradient(f, x, 1e-6)
			for i := range analytic {
				denom := math.Max(1, math.Abs(analytic[i]))
				rel := math.Abs(analytic[i]-numeric[i]) / denom
				test.That(t, rel < 1e-6, test.ShouldBeTrue)
			}
		}
	}
}

func TestUnknownNameErrors(t *testing.T) {
	_, err := New("does-not-exist", 3)
	test.That(t, err, test.ShouldNotBeNil)
}

func TestEnumerateFiltersByType(t *testing.T) {
	convex := Enumerate(2, 8, TypeConvexSmooth)
	test.That(t, len(convex) > 0, test.ShouldBeTrue)
	for _, f := range convex {
		test.That(t, f.Convexity(), test.ShouldEqual, function.ConvexityYes)
		test.That(t, f.Smooth(), test.ShouldBeTrue)
	}
}

func TestNonsmoothKinksSubgradient(t *testing.T) {
	f, err := New("kinks", 3)
	test.That(t, err, test.ShouldBeNil)
	g := make([]float64, 3)
	val := f.Evaluate([]float64{2, -3, 0}, g)
	test.That(t, val, test.ShouldAlmostEqual, 5.0, 1e-12)
	test.That(t, g, test.ShouldResemble, []float64{1, -1, 0})
}
