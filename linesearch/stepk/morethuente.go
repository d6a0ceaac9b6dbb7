package stepk

import (
	"math"

	"github.com/accosmin-org/nanogo/linesearch"
)

// MoreThuente follows the structure of the MINPACK-2 dcsrch/dcstep
// routine: it maintains an interval of uncertainty [stx, sty] and
// safeguards cubic/quadratic interpolation within it, switching between
// a "bracketed" and "unbracketed" mode until a strong-Wolfe point is
// found.
type MoreThuente struct {
	common
}

// NewMoreThuente builds a MoreThuente refiner with default constants.
func NewMoreThuente() *MoreThuente {
	return &MoreThuente{common: newCommon("morethuente", 1e-4, 0.9)}
}

func (m *MoreThuente) Name() string { return "morethuente" }

func (m *MoreThuente) Refine(phi *linesearch.Phi, f0, dg0, t0 float64) (bool, float64) {
	maxIters := int(m.maxIters.Int())

	// Interval of uncertainty endpoints: stx is the best point so far,
	// sty the other endpoint. fx, gx / fy, gy are their (value, deriv).
	stx, fx, gx := 0.0, f0, dg0
	sty, fy, gy := 0.0, f0, dg0
	bracketed := false

	t := clampStep(t0)
	width := linesearch.StpMax - linesearch.StpMin
	prevWidth := 2 * width

	for iter := 0; iter < maxIters; iter++ {
		ft, gt := phi.At(t)

		if !m.armijo(f0, dg0, t, ft) || (bracketed && ft >= fx) {
			sty, fy, gy = t, ft, gt
			bracketed = true
		} else {
			if m.curvature(dg0, gt) {
				return true, t
			}
			if gt*(stx-t) >= 0 {
				sty, fy, gy = stx, fx, gx
				bracketed = true
			}
			stx, fx, gx = t, ft, gt
		}

		if bracketed {
			lo, hi := math.Min(stx, sty), math.Max(stx, sty)
			if hi-lo < m.tolerance.Float()*hi {
				return true, t
			}
			newWidth := hi - lo
			if newWidth >= 0.66*prevWidth {
				t = lo + 0.5*(hi-lo)
			} else {
				t = dcstep(stx, fx, gx, sty, fy, gy, t, ft, gt)
			}
			prevWidth = width
			width = newWidth
		} else {
			// Extrapolate beyond stx.
			t = dcstepExtrapolate(stx, fx, gx, t, ft, gt)
			t = math.Min(t, linesearch.StpMax)
		}
		t = clampStep(t)
	}
	return false, clampStep(t)
}

// dcstep performs a safeguarded cubic/quadratic interpolation within a
// bracketed interval, a simplified analogue of MINPACK-2's dcstep.
func dcstep(stx, fx, gx, sty, fy, gy, t, ft, gt float64) float64 {
	// Cubic interpolation using both endpoints and the trial point.
	theta := 3*(fx-ft)/(t-stx) + gx + gt
	s := math.Max(math.Abs(theta), math.Max(math.Abs(gx), math.Abs(gt)))
	gammaSq := (theta/s)*(theta/s) - (gx/s)*(gt/s)
	if gammaSq < 0 {
		gammaSq = 0
	}
	gamma := s * math.Sqrt(gammaSq)
	if t < stx {
		gamma = -gamma
	}
	p := (gamma - gx) + theta
	q := ((gamma - gx) + gamma) + gt
	r := p / q
	cand := stx + r*(t-stx)

	lo, hi := math.Min(stx, sty), math.Max(stx, sty)
	if cand < lo || cand > hi || math.IsNaN(cand) {
		cand = stx + 0.5*(t-stx)
	}
	return cand
}

func dcstepExtrapolate(stx, fx, gx, t, ft, gt float64) float64 {
	if gt*gx < 0 {
		return t
	}
	step := t - stx
	if step == 0 {
		return t + 1
	}
	theta := 3*(fx-ft)/step + gx + gt
	s := math.Max(math.Abs(theta), math.Max(math.Abs(gx), math.Abs(gt)))
	gammaSq := (theta/s)*(theta/s) - (gx/s)*(gt/s)
	if gammaSq < 0 {
		gammaSq = 0
	}
	gamma := s * math.Sqrt(gammaSq)
	if t > stx {
		gamma = -gamma
	}
	p := (gamma - gt) + theta
	q := ((gamma - gt) + gamma) + gx
	r := p / q
	if r < 0 && (gamma != 0) {
		return t + r*step
	}
	return t + 4*step
}
