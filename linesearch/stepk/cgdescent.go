package stepk

import (
	"math"

	"github.com/accosmin-org/nanogo/linesearch"
)

// CGDescent implements the Hager-Zhang line search: bracketing expansion
// followed by the U3 interval update, accepting either a strong-Wolfe
// point or an approximate-Wolfe point
// (2*c1-1)*phi'(0) >= phi'(t) >= c2*phi'(0), which is preferred near
// convergence where cancellation makes phi(t) itself unreliable.
type CGDescent struct {
	common
}

// NewCGDescent builds a CGDescent refiner with default constants.
func NewCGDescent() *CGDescent {
	return &CGDescent{common: newCommon("cgdescent", 1e-4, 0.9)}
}

func (c *CGDescent) Name() string { return "cgdescent" }

func (c *CGDescent) approxWolfe(dg0, ft, gt float64) bool {
	return (2*c.c1.Float()-1)*dg0 >= gt && gt >= c.c2.Float()*dg0
}

func (c *CGDescent) Refine(phi *linesearch.Phi, f0, dg0, t0 float64) (bool, float64) {
	maxIters := int(c.maxIters.Int())

	lo, hi := 0.0, clampStep(t0)
	fLo, gLo := f0, dg0

	// Bracketing: expand hi until it brackets a strong/approx-Wolfe point
	// or phi turns upward.
	fHi, gHi := phi.At(hi)
	for iter := 0; iter < maxIters && gHi < 0 && c.armijo(f0, dg0, hi, fHi); iter++ {
		lo, fLo, gLo = hi, fHi, gHi
		hi = clampStep(hi * 2)
		fHi, gHi = phi.At(hi)
	}

	for iter := 0; iter < maxIters; iter++ {
		t := u3Update(lo, fLo, gLo, hi, fHi, gHi)
		ft, gt := phi.At(t)

		if c.curvature(dg0, gt) && c.armijo(f0, dg0, t, ft) {
			return true, t
		}
		if c.approxWolfe(dg0, ft, gt) {
			return true, t
		}

		if gt >= 0 {
			hi, fHi, gHi = t, ft, gt
		} else if c.armijo(f0, dg0, t, ft) {
			lo, fLo, gLo = t, ft, gt
		} else {
			hi, fHi, gHi = t, ft, gt
		}

		if math.Abs(hi-lo) < c.tolerance.Float() {
			return true, t
		}
	}
	return false, clampStep(0.5 * (lo + hi))
}

// u3Update is the Hager-Zhang secant^2-style interval update: it picks a
// new trial point via the secant formula bounded inside [lo, hi].
func u3Update(lo, fLo, gLo, hi, fHi, gHi float64) float64 {
	if gLo == gHi {
		return clampStep(0.5 * (lo + hi))
	}
	t := lo - gLo*(hi-lo)/(gHi-gLo)
	if t <= math.Min(lo, hi) || t >= math.Max(lo, hi) || math.IsNaN(t) {
		t = 0.5 * (lo + hi)
	}
	return clampStep(t)
}
