package function

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// LinearEquality is a row of the linear equality constraint set A x = b.
type LinearEquality struct {
	A []float64
	B float64
}

// LinearInequality is a row of the linear inequality constraint set
// G x <= h.
type LinearInequality struct {
	G []float64
	H float64
}

// Quadratic is the constraint 1/2 x^T P x + q^T x + r <= 0.
type Quadratic struct {
	P *mat.Dense
	Q []float64
	R float64
}

// Nonlinear is a generic smooth constraint, either an inequality
// g(x) <= 0 or, when Equality is true, an equality h(x) = 0. Grad, when
// non-nil, fills the same-length gradient of Eval at x.
type Nonlinear struct {
	Equality bool
	Eval     func(x []float64) float64
	Grad     func(x []float64) []float64
}

// Constraints is the attached constraint set from spec §3: lists of
// linear equality, linear inequality, quadratic and generic nonlinear
// constraints. Immutable after construction.
type Constraints struct {
	LinearEqualities   []LinearEquality
	LinearInequalities []LinearInequality
	Quadratics         []Quadratic
	Nonlinears         []Nonlinear
}

// Empty reports whether the function is effectively unconstrained.
func (c *Constraints) Empty() bool {
	return c == nil || (len(c.LinearEqualities) == 0 && len(c.LinearInequalities) == 0 &&
		len(c.Quadratics) == 0 && len(c.Nonlinears) == 0)
}

// Residual returns the per-constraint violation (0 when satisfied),
// matching the nonlinear driver's h_j(x) / g_i(x) bookkeeping.
func (c *Constraints) Residual(x []float64) []float64 {
	if c == nil {
		return nil
	}
	var out []float64
	for _, eq := range c.LinearEqualities {
		out = append(out, math.Abs(floats.Dot(eq.A, x)-eq.B))
	}
	for _, ineq := range c.LinearInequalities {
		out = append(out, math.Max(0, floats.Dot(ineq.G, x)-ineq.H))
	}
	for _, q := range c.Quadratics {
		var xp mat.VecDense
		xp.MulVec(q.P, mat.NewVecDense(len(x), x))
		val := 0.5*mat.Dot(&xp, mat.NewVecDense(len(x), x)) + floats.Dot(q.Q, x) + q.R
		out = append(out, math.Max(0, val))
	}
	for _, nl := range c.Nonlinears {
		v := nl.Eval(x)
		if nl.Equality {
			out = append(out, math.Abs(v))
		} else {
			out = append(out, math.Max(0, v))
		}
	}
	return out
}

// MaxResidual returns the max violation over every constraint, the
// constraint_residual(x) from spec §4.1.
func (c *Constraints) MaxResidual(x []float64) float64 {
	res := c.Residual(x)
	if len(res) == 0 {
		return 0
	}
	return floats.Max(res)
}

// Valid reports feasibility of x within tol (spec §4.1's valid(x)).
func (c *Constraints) Valid(x []float64, tol float64) bool {
	return c.MaxResidual(x) <= tol
}
