// Package linesearch implements the initial-step strategies (step0) and
// Wolfe-condition step refiners (stepk) from spec §4.2.
package linesearch

import (
	"gonum.org/v1/gonum/floats"

	"github.com/accosmin-org/nanogo/function"
)

// Phi is phi(t) = f(x0 + t*d), evaluated along a fixed descent direction.
// Value returns (phi(t), phi'(t)); phi'(t) = grad(x0+t*d) . d.
type Phi struct {
	f    function.Function
	x0   []float64
	d    []float64
	xbuf []float64
	gbuf []float64
}

// NewPhi builds a Phi for function f along direction d from x0. d must be
// a descent direction: phi'(0) < 0.
func NewPhi(f function.Function, x0, d []float64) *Phi {
	return &Phi{f: f, x0: x0, d: d, xbuf: make([]float64, len(x0)), gbuf: make([]float64, len(x0))}
}

// At evaluates (phi(t), phi'(t)).
func (p *Phi) At(t float64) (value, deriv float64) {
	for i := range p.xbuf {
		p.xbuf[i] = p.x0[i] + t*p.d[i]
	}
	value = p.f.Evaluate(p.xbuf, p.gbuf)
	deriv = floats.Dot(p.gbuf, p.d)
	return value, deriv
}

// ValueAt evaluates phi(t) only, without requesting the gradient.
func (p *Phi) ValueAt(t float64) float64 {
	for i := range p.xbuf {
		p.xbuf[i] = p.x0[i] + t*p.d[i]
	}
	return p.f.Evaluate(p.xbuf, nil)
}

// PointAt returns x0 + t*d, the would-be next iterate.
func (p *Phi) PointAt(t float64) []float64 {
	out := make([]float64, len(p.x0))
	for i := range out {
		out[i] = p.x0[i] + t*p.d[i]
	}
	return out
}

const (
	// StpMin and StpMax bound every refiner's returned step, per spec §4.2.
	StpMin = 1e-20
	StpMax = 1e+20
)
