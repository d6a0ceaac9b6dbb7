// Package constrained implements the nonlinear constrained drivers from
// spec §4.7: the penalty method and the Birgin-Martinez practical
// augmented Lagrangian, both wrapping any unconstrained solver.Solver.
package constrained

import (
	"context"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/accosmin-org/nanogo/config"
	"github.com/accosmin-org/nanogo/function"
	"github.com/accosmin-org/nanogo/logging"
	"github.com/accosmin-org/nanogo/solver"
)

// PenaltyKind selects the constraint-violation aggregate.
type PenaltyKind int

const (
	PenaltyLinear PenaltyKind = iota
	PenaltyQuadratic
)

// Penalty implements the penalty method: minimize F_c(x) = f(x) +
// c*Pi(x), increasing c <- gamma*c until the inner solution is feasible
// within epsilon_feas.
type Penalty struct {
	config.Configurable

	inner solver.Solver
	kind  PenaltyKind

	c0        *config.Parameter
	gamma     *config.Parameter
	epsFeas   *config.Parameter
	maxOuter  *config.Parameter
}

// NewPenalty builds a Penalty driver wrapping inner with the given
// aggregate kind and spec-default constants (c0=1, gamma=2).
func NewPenalty(inner solver.Solver, kind PenaltyKind) *Penalty {
	p := &Penalty{Configurable: config.NewConfigurable("penalty"), inner: inner, kind: kind}
	c0, _ := config.NewFloat("penalty::c0", config.Open(0, math.Inf(1)), 1.0)
	gamma, _ := config.NewFloat("penalty::gamma", config.Closed(1, math.Inf(1)), 2.0)
	eps, _ := config.NewFloat("penalty::epsilon_feas", config.Open(0, 1), 1e-6)
	mo, _ := config.NewInt("penalty::max_outer", config.Closed(1, 1000), 50)
	p.Register(c0)
	p.Register(gamma)
	p.Register(eps)
	p.Register(mo)
	p.c0, p.gamma, p.epsFeas, p.maxOuter = c0, gamma, eps, mo
	return p
}

// Minimize runs the outer penalty loop, returning the last inner State.
func (p *Penalty) Minimize(ctx context.Context, f function.Function, x0 []float64, logger logging.Logger, monitor solver.Monitor) *solver.State {
	if logger == nil {
		logger = logging.NopLogger()
	}
	c := p.c0.Float()
	x := append([]float64(nil), x0...)
	var state *solver.State

	for outer := 0; outer < int(p.maxOuter.Int()); outer++ {
		pf := &penalizedFunction{base: f, c: c, kind: p.kind}
		state = p.inner.Minimize(ctx, pf, x, logger.Sublogger("penalty"), monitor)
		x = state.X

		residual := f.Constraints().MaxResidual(x)
		logger.Debugw("penalty outer step", "outer", outer, "c", c, "residual", residual)
		if residual <= p.epsFeas.Float() {
			break
		}
		c *= p.gamma.Float()
	}
	return state
}

// penalizedFunction wraps base as f(x) + c*Pi(x), Pi being the linear or
// quadratic aggregate of base's constraint violations.
type penalizedFunction struct {
	base function.Function
	c    float64
	kind PenaltyKind
}

func (w *penalizedFunction) Name() string               { return w.base.Name() + "+penalty" }
func (w *penalizedFunction) Size() int                  { return w.base.Size() }
func (w *penalizedFunction) Convexity() function.Convexity { return function.ConvexityIgnore }
func (w *penalizedFunction) Smooth() bool               { return false }
func (w *penalizedFunction) StrongConvexity() float64   { return 0 }
func (w *penalizedFunction) Counters() *function.Counters { return w.base.Counters() }
func (w *penalizedFunction) Constraints() *function.Constraints { return &function.Constraints{} }

func (w *penalizedFunction) Evaluate(x []float64, g []float64) float64 {
	fx := w.base.Evaluate(x, g)
	pen, gpen := aggregatePenalty(w.base.Constraints(), x, w.kind)
	if g != nil {
		for i := range g {
			g[i] += w.c * gpen[i]
		}
	}
	return fx + w.c*pen
}

// aggregatePenalty computes Pi(x) and its gradient for the linear (sum
// of positive parts) or quadratic (sum of squared positive parts)
// aggregate of c's constraint violations.
func aggregatePenalty(c *function.Constraints, x []float64, kind PenaltyKind) (float64, []float64) {
	n := len(x)
	g := make([]float64, n)
	total := 0.0

	addTerm := func(violation float64, grad []float64) {
		if violation <= 0 {
			return
		}
		switch kind {
		case PenaltyQuadratic:
			total += violation * violation
			for i := range g {
				g[i] += 2 * violation * grad[i]
			}
		default:
			total += violation
			for i := range g {
				g[i] += grad[i]
			}
		}
	}

	for _, eq := range c.LinearEqualities {
		v := dot(eq.A, x) - eq.B
		// Equalities are penalized both ways: |v| contributes via
		// sign(v)*grad, matching the linear/quadratic aggregate applied
		// to the signed residual.
		if v > 0 {
			addTerm(v, eq.A)
		} else if v < 0 {
			neg := make([]float64, n)
			for i := range neg {
				neg[i] = -eq.A[i]
			}
			addTerm(-v, neg)
		}
	}
	for _, ineq := range c.LinearInequalities {
		v := dot(ineq.G, x) - ineq.H
		addTerm(v, ineq.G)
	}
	for _, q := range c.Quadratics {
		xv := mat.NewVecDense(n, x)
		var pv mat.VecDense
		pv.MulVec(q.P, xv)
		val := 0.0
		grad := make([]float64, n)
		for i := 0; i < n; i++ {
			val += 0.5 * x[i] * pv.AtVec(i)
			grad[i] = pv.AtVec(i) + q.Q[i]
		}
		val += dot(q.Q, x) + q.R
		addTerm(val, grad)
	}
	for _, nl := range c.Nonlinears {
		v := nl.Eval(x)
		grad := nl.Grad(x)
		if nl.Equality {
			if v > 0 {
				addTerm(v, grad)
			} else if v < 0 {
				neg := make([]float64, n)
				for i := range neg {
					neg[i] = -grad[i]
				}
				addTerm(-v, neg)
			}
		} else {
			addTerm(v, grad)
		}
	}

	return total, g
}

func dot(a, b []float64) float64 {
	s := 0.0
	for i := range a {
		s += a[i] * b[i]
	}
	return s
}
