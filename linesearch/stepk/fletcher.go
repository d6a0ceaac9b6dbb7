package stepk

import (
	"math"

	"github.com/accosmin-org/nanogo/linesearch"
)

// Fletcher-style tie-break constants from spec §4.2.
const (
	tau1 = 9.0
	tau2 = 0.1
	tau3 = 0.5
)

// Fletcher implements a bracketing/zoom line search producing a
// strong-Wolfe point, following R. Fletcher's "Practical Methods of
// Optimization" bracket-then-sectioning scheme.
type Fletcher struct {
	common
}

// NewFletcher builds a Fletcher refiner with default constants.
func NewFletcher() *Fletcher {
	return &Fletcher{common: newCommon("fletcher", 1e-4, 0.9)}
}

func (f *Fletcher) Name() string { return "fletcher" }

func (f *Fletcher) Refine(phi *linesearch.Phi, f0, dg0, t0 float64) (bool, float64) {
	return bracketAndZoom(&f.common, phi, f0, dg0, t0)
}

// Lemarechal runs the same bracketAndZoom scheme as Fletcher under its
// own id; the two refiners differ only in name.
type Lemarechal struct {
	common
}

// NewLemarechal builds a Lemarechal refiner with default constants.
func NewLemarechal() *Lemarechal {
	return &Lemarechal{common: newCommon("lemarechal", 1e-4, 0.9)}
}

func (l *Lemarechal) Name() string { return "lemarechal" }

func (l *Lemarechal) Refine(phi *linesearch.Phi, f0, dg0, t0 float64) (bool, float64) {
	return bracketAndZoom(&l.common, phi, f0, dg0, t0)
}

// bracketAndZoom brackets an interval containing a strong-Wolfe point,
// then repeatedly sections it using the tau1/tau2/tau3 tie-breaks.
func bracketAndZoom(c *common, phi *linesearch.Phi, f0, dg0, t0 float64) (bool, float64) {
	maxIters := int(c.maxIters.Int())

	lo, hi := 0.0, math.Inf(1)
	t := clampStep(t0)
	fLo := f0
	bracketed := false

	for iter := 0; iter < maxIters; iter++ {
		ft, gt := phi.At(t)

		if !c.armijo(f0, dg0, t, ft) || (bracketed && ft >= fLo) {
			hi = t
			bracketed = true
		} else {
			if c.curvature(dg0, gt) {
				return true, t
			}
			if gt >= 0 {
				hi = lo
				bracketed = true
			}
			lo, fLo = t, ft
		}

		if !bracketed {
			// Extrapolate with the tau1 growth factor.
			t = clampStep(math.Min(tau1*t, linesearch.StpMax))
			continue
		}

		// Section [lo, hi] avoiding the tau2/tau3 boundary fractions.
		width := hi - lo
		if width < c.tolerance.Float() {
			return true, t
		}
		cand := lo + tau3*width
		loBound := lo + tau2*width
		hiBound := hi - tau2*width
		if cand < loBound {
			cand = loBound
		}
		if cand > hiBound {
			cand = hiBound
		}
		t = clampStep(cand)
	}
	return false, clampStep(t)
}
