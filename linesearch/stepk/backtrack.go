package stepk

import "github.com/accosmin-org/nanogo/linesearch"

// Backtrack halves t until the Armijo sufficient-decrease condition
// holds: phi(t) <= phi(0) + c1*t*phi'(0).
type Backtrack struct {
	common
}

// NewBacktrack builds a Backtrack refiner with default constants.
func NewBacktrack() *Backtrack {
	return &Backtrack{common: newCommon("backtrack", 1e-4, 0.9)}
}

func (b *Backtrack) Name() string { return "backtrack" }

func (b *Backtrack) Refine(phi *linesearch.Phi, f0, dg0, t0 float64) (bool, float64) {
	t := clampStep(t0)
	maxIters := int(b.maxIters.Int())
	for iter := 0; iter < maxIters; iter++ {
		ft := phi.ValueAt(t)
		if b.armijo(f0, dg0, t, ft) {
			return true, t
		}
		t *= 0.5
		if t < linesearch.StpMin {
			return false, linesearch.StpMin
		}
	}
	return false, t
}
