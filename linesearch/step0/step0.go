// Package step0 implements the initial step-length strategies from spec
// §4.2: constant, linear, quadratic and cg-descent.
package step0

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/accosmin-org/nanogo/config"
)

// Input carries everything a strategy needs to propose an initial t for
// the current iteration; fields not relevant to a given strategy may be
// left zero.
type Input struct {
	Iteration int
	// PrevT is t_{k-1}, the step accepted at the previous iteration.
	PrevT float64
	// PrevDg is phi'(0) at the previous iteration.
	PrevDg float64
	// Dg is phi'(0) at the current iteration (always < 0, descent direction).
	Dg float64
	// F is f(x_k), PrevF is f(x_{k-1}).
	F, PrevF float64
	// X, G are the current iterate and gradient, used by cg-descent's
	// first-iteration fallback chain.
	X, G []float64
	// EvalPhi, when non-nil, lets cg-descent evaluate phi at a trial
	// point for its quadratic-interpolation branch.
	EvalPhi func(t float64) (value, deriv float64)
}

// Strategy proposes an initial step length t0 > 0.
type Strategy interface {
	Name() string
	Init(in Input) float64
}

// Factory builds a named strategy.
func Factory(name string) (Strategy, error) {
	switch name {
	case "constant":
		return NewConstant(1.0), nil
	case "linear":
		return NewLinear(), nil
	case "quadratic":
		return NewQuadratic(), nil
	case "cg-descent":
		return NewCGDescent(), nil
	default:
		return nil, unknown(name)
	}
}

func unknown(name string) error { return &unknownError{name} }

type unknownError struct{ name string }

func (e *unknownError) Error() string { return "step0: unknown strategy " + e.name }

// --- constant ---------------------------------------------------------------

// Constant always proposes t0.
type Constant struct {
	config.Configurable
	t0 *config.Parameter
}

// NewConstant builds a Constant strategy with the given fixed step.
func NewConstant(t0 float64) *Constant {
	c := &Constant{Configurable: config.NewConfigurable("constant")}
	p, _ := config.NewFloat("lsearch0::t0", config.Open(0, math.Inf(1)), t0)
	c.Register(p)
	c.t0 = p
	return c
}

func (c *Constant) Name() string { return "constant" }

func (c *Constant) Init(Input) float64 { return c.t0.Float() }

// --- linear -------------------------------------------------------------

// Linear implements t0 = min(1, alpha * t_{k-1} * dg_{k-1} / dg_k),
// clamped away from zero.
type Linear struct {
	config.Configurable
	alpha *config.Parameter
}

// NewLinear builds a Linear strategy with the default alpha.
func NewLinear() *Linear {
	l := &Linear{Configurable: config.NewConfigurable("linear")}
	p, _ := config.NewFloat("lsearch0::alpha", config.Open(0, math.Inf(1)), 1.0)
	l.Register(p)
	l.alpha = p
	return l
}

func (l *Linear) Name() string { return "linear" }

func (l *Linear) Init(in Input) float64 {
	if in.Iteration == 0 || in.Dg == 0 {
		return 1.0
	}
	t := l.alpha.Float() * in.PrevT * in.PrevDg / in.Dg
	return clamp(math.Min(1.0, t))
}

// --- quadratic ------------------------------------------------------------

// Quadratic implements t0 = min(1, -2*alpha*(f_{k-1}-f_k)/dg_{k-1}).
type Quadratic struct {
	config.Configurable
	alpha *config.Parameter
}

// NewQuadratic builds a Quadratic strategy with the default alpha.
func NewQuadratic() *Quadratic {
	q := &Quadratic{Configurable: config.NewConfigurable("quadratic")}
	p, _ := config.NewFloat("lsearch0::alpha", config.Open(0, math.Inf(1)), 1.01)
	q.Register(p)
	q.alpha = p
	return q
}

func (q *Quadratic) Name() string { return "quadratic" }

func (q *Quadratic) Init(in Input) float64 {
	if in.Iteration == 0 || in.PrevDg == 0 {
		return 1.0
	}
	t := -2 * q.alpha.Float() * (in.PrevF - in.F) / in.PrevDg
	return clamp(math.Min(1.0, t))
}

// --- cg-descent -------------------------------------------------------------

// CGDescent implements the Hager-Zhang CG_DESCENT initial step (spec §4.2).
type CGDescent struct {
	config.Configurable
	phi0, psi1, psi2 *config.Parameter
}

// NewCGDescent builds a CGDescent strategy with the paper's default
// constants.
func NewCGDescent() *CGDescent {
	c := &CGDescent{Configurable: config.NewConfigurable("cg-descent")}
	phi0, _ := config.NewFloat("lsearch0::phi0", config.Open(0, 1), 0.01)
	psi1, _ := config.NewFloat("lsearch0::psi1", config.Open(0, 1), 0.1)
	psi2, _ := config.NewFloat("lsearch0::psi2", config.Closed(1, math.Inf(1)), 2.0)
	c.Register(phi0)
	c.Register(psi1)
	c.Register(psi2)
	c.phi0, c.psi1, c.psi2 = phi0, psi1, psi2
	return c
}

func (c *CGDescent) Name() string { return "cg-descent" }

func (c *CGDescent) Init(in Input) float64 {
	if in.Iteration == 0 {
		xinf := floats.Norm(in.X, math.Inf(1))
		ginf := floats.Norm(in.G, math.Inf(1))
		if xinf > 0 && ginf > 0 {
			return c.phi0.Float() * xinf / ginf
		}
		g2 := floats.Dot(in.G, in.G)
		if in.F != 0 && g2 > 0 {
			return c.phi0.Float() * math.Abs(in.F) / g2
		}
		return 1.0
	}

	trial := c.psi1.Float() * in.PrevT
	if in.EvalPhi != nil {
		fTrial, _ := in.EvalPhi(trial)
		// Quadratic interpolant through (0, F, Dg) and (trial, fTrial).
		// q(t) = F + Dg*t + a*t^2, solved for a via fTrial.
		a := (fTrial - in.F - in.Dg*trial) / (trial * trial)
		if a > 0 { // convex quadratic
			tmin := -in.Dg / (2 * a)
			qmin := in.F + in.Dg*tmin + a*tmin*tmin
			if qmin < in.F {
				return clamp(tmin)
			}
		}
	}
	return clamp(c.psi2.Float() * in.PrevT)
}

func clamp(t float64) float64 {
	const eps = 1e-10
	if t < eps {
		return eps
	}
	return t
}
