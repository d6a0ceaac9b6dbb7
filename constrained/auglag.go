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

// AugLag is the Birgin-Martinez practical augmented Lagrangian method:
// it maintains multiplier estimates lambda (equalities) and mu >= 0
// (inequalities) and a penalty rho, minimizes the augmented Lagrangian
// with the wrapped solver, then updates the multipliers and grows rho by
// gamma whenever the infeasibility ratio fails to shrink by tau.
type AugLag struct {
	config.Configurable
	inner solver.Solver

	rho0     *config.Parameter
	tau      *config.Parameter
	gamma    *config.Parameter
	epsFeas  *config.Parameter
	maxOuter *config.Parameter
}

// NewAugLag builds an AugLag driver wrapping inner with spec-default
// constants (tau=0.5, gamma=10).
func NewAugLag(inner solver.Solver) *AugLag {
	a := &AugLag{Configurable: config.NewConfigurable("auglag"), inner: inner}
	rho0, _ := config.NewFloat("auglag::rho0", config.Open(0, math.Inf(1)), 1.0)
	tau, _ := config.NewFloat("auglag::tau", config.Open(0, 1), 0.5)
	gamma, _ := config.NewFloat("auglag::gamma", config.Closed(1, math.Inf(1)), 10.0)
	eps, _ := config.NewFloat("auglag::epsilon_feas", config.Open(0, 1), 1e-6)
	mo, _ := config.NewInt("auglag::max_outer", config.Closed(1, 1000), 50)
	a.Register(rho0)
	a.Register(tau)
	a.Register(gamma)
	a.Register(eps)
	a.Register(mo)
	a.rho0, a.tau, a.gamma, a.epsFeas, a.maxOuter = rho0, tau, gamma, eps, mo
	return a
}

// Minimize runs the outer augmented-Lagrangian loop.
func (a *AugLag) Minimize(ctx context.Context, f function.Function, x0 []float64, logger logging.Logger, monitor solver.Monitor) *solver.State {
	if logger == nil {
		logger = logging.NopLogger()
	}
	c := f.Constraints()
	neq := len(c.LinearEqualities) + countEqualities(c)
	nineq := len(c.LinearInequalities) + len(c.Quadratics) + countInequalities(c)

	lambda := make([]float64, neq)
	mu := make([]float64, nineq)
	rho := a.rho0.Float()
	x := append([]float64(nil), x0...)

	prevInfeas := math.Inf(1)
	var state *solver.State

	for outer := 0; outer < int(a.maxOuter.Int()); outer++ {
		af := &augLagFunction{base: f, lambda: lambda, mu: mu, rho: rho}
		state = a.inner.Minimize(ctx, af, x, logger.Sublogger("auglag"), monitor)
		x = state.X

		hVals, gVals := evalConstraintParts(c, x)
		for i := range lambda {
			lambda[i] += rho * hVals[i]
		}
		for i := range mu {
			mu[i] = math.Max(0, mu[i]+rho*gVals[i])
		}

		infeas := c.MaxResidual(x)
		gradNorm := state.GradientTest()
		logger.Debugw("auglag outer step", "outer", outer, "rho", rho, "infeas", infeas)
		if infeas <= a.epsFeas.Float() && gradNorm <= a.epsFeas.Float() {
			break
		}
		if infeas > a.tau.Float()*prevInfeas {
			rho *= a.gamma.Float()
		}
		prevInfeas = infeas
	}
	return state
}

func countEqualities(c *function.Constraints) int {
	n := 0
	for _, nl := range c.Nonlinears {
		if nl.Equality {
			n++
		}
	}
	return n
}

func countInequalities(c *function.Constraints) int {
	n := 0
	for _, nl := range c.Nonlinears {
		if !nl.Equality {
			n++
		}
	}
	return n
}

// evalConstraintParts returns the signed equality residuals h(x) and
// inequality residuals g(x) (unclipped) in the fixed order
// linear-equalities, nonlinear-equalities / linear-inequalities,
// quadratics, nonlinear-inequalities, matching augLagFunction's
// gradient assembly.
func evalConstraintParts(c *function.Constraints, x []float64) (h, g []float64) {
	for _, eq := range c.LinearEqualities {
		h = append(h, dot(eq.A, x)-eq.B)
	}
	for _, nl := range c.Nonlinears {
		if nl.Equality {
			h = append(h, nl.Eval(x))
		}
	}
	for _, ineq := range c.LinearInequalities {
		g = append(g, dot(ineq.G, x)-ineq.H)
	}
	for _, q := range c.Quadratics {
		n := len(x)
		xv := mat.NewVecDense(n, x)
		var pv mat.VecDense
		pv.MulVec(q.P, xv)
		val := 0.0
		for i := 0; i < n; i++ {
			val += 0.5 * x[i] * pv.AtVec(i)
		}
		val += dot(q.Q, x) + q.R
		g = append(g, val)
	}
	for _, nl := range c.Nonlinears {
		if !nl.Equality {
			g = append(g, nl.Eval(x))
		}
	}
	return h, g
}

// augLagFunction wraps base as the augmented Lagrangian at the current
// multiplier/penalty estimates.
type augLagFunction struct {
	base         function.Function
	lambda, mu   []float64
	rho          float64
}

func (w *augLagFunction) Name() string                      { return w.base.Name() + "+auglag" }
func (w *augLagFunction) Size() int                         { return w.base.Size() }
func (w *augLagFunction) Convexity() function.Convexity     { return function.ConvexityIgnore }
func (w *augLagFunction) Smooth() bool                      { return false }
func (w *augLagFunction) StrongConvexity() float64          { return 0 }
func (w *augLagFunction) Counters() *function.Counters      { return w.base.Counters() }
func (w *augLagFunction) Constraints() *function.Constraints { return &function.Constraints{} }

func (w *augLagFunction) Evaluate(x []float64, g []float64) float64 {
	fx := w.base.Evaluate(x, g)
	c := w.base.Constraints()
	n := len(x)

	val := fx
	grad := make([]float64, n)
	if g != nil {
		copy(grad, g)
	}

	idx := 0
	for _, eq := range c.LinearEqualities {
		h := dot(eq.A, x) - eq.B
		val += w.lambda[idx]*h + 0.5*w.rho*h*h
		coef := w.lambda[idx] + w.rho*h
		for i := range grad {
			grad[i] += coef * eq.A[i]
		}
		idx++
	}
	for _, nl := range c.Nonlinears {
		if !nl.Equality {
			continue
		}
		h := nl.Eval(x)
		hg := nl.Grad(x)
		val += w.lambda[idx]*h + 0.5*w.rho*h*h
		coef := w.lambda[idx] + w.rho*h
		for i := range grad {
			grad[i] += coef * hg[i]
		}
		idx++
	}

	jdx := 0
	addIneq := func(gval float64, ggrad []float64) {
		m := w.mu[jdx]
		z := math.Max(0, m+w.rho*gval)
		val += (z*z - m*m) / (2 * w.rho)
		for i := range grad {
			grad[i] += z * ggrad[i]
		}
		jdx++
	}
	for _, ineq := range c.LinearInequalities {
		addIneq(dot(ineq.G, x)-ineq.H, ineq.G)
	}
	for _, q := range c.Quadratics {
		xv := mat.NewVecDense(n, x)
		var pv mat.VecDense
		pv.MulVec(q.P, xv)
		gradQ := make([]float64, n)
		val2 := 0.0
		for i := 0; i < n; i++ {
			val2 += 0.5 * x[i] * pv.AtVec(i)
			gradQ[i] = pv.AtVec(i) + q.Q[i]
		}
		val2 += dot(q.Q, x) + q.R
		addIneq(val2, gradQ)
	}
	for _, nl := range c.Nonlinears {
		if nl.Equality {
			continue
		}
		addIneq(nl.Eval(x), nl.Grad(x))
	}

	if g != nil {
		copy(g, grad)
	}
	return val
}
