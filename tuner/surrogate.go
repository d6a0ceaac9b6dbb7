package tuner

import (
	"context"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/accosmin-org/nanogo/config"
	"github.com/accosmin-org/nanogo/function"
	"github.com/accosmin-org/nanogo/logging"
	"github.com/accosmin-org/nanogo/solver"
)

// Surrogate runs the LocalSearch seed phase, fits a per-dimension
// quadratic surrogate in the scaled [0,1]^d parameter space to the
// observed (point, score) pairs by least squares, minimizes the
// surrogate with an inner smooth solver, then projects the continuous
// optimum back to the grid and evaluates it for real.
type Surrogate struct {
	config.Configurable
	seedEvals *config.Parameter
}

// NewSurrogate builds a Surrogate tuner with the default seed budget.
func NewSurrogate() *Surrogate {
	s := &Surrogate{Configurable: config.NewConfigurable("surrogate")}
	se, _ := config.NewInt("surrogate::seed_evals", config.Closed(1, 100000), 30)
	s.Register(se)
	s.seedEvals = se
	return s
}

func (s *Surrogate) Name() string { return "surrogate" }

// Tune implements Tuner.
func (s *Surrogate) Tune(spaces []ParamSpace, objective Objective) []Step {
	seed := NewLocalSearch()
	seed.maxEvals.Set(s.seedEvals.Float())
	steps := seed.Tune(spaces, objective)

	d := len(spaces)
	coeffs := fitDiagonalQuadratic(spaces, steps, d)

	qf := &diagonalQuadratic{
		Base: function.NewBase("tuner-surrogate", d, function.ConvexityYes, true, 0),
		a:    coeffs.a,
		b:    coeffs.b,
	}
	inner, _ := solver.Factory("lbfgs")
	x0 := make([]float64, d)
	best := Best(steps)
	for i, sp := range spaces {
		x0[i] = sp.Scaled(best.Values[i])
	}
	state := inner.Minimize(context.Background(), qf, x0, logging.NopLogger(), nil)

	index := make([]int, d)
	values := make([]float64, d)
	for i, sp := range spaces {
		t := math.Max(0, math.Min(1, state.X[i]))
		values[i] = sp.Unscaled(t)
		index[i] = sp.Index(values[i])
	}
	final := Step{Index: index, Values: valuesOf(spaces, index), Score: objective(valuesOf(spaces, index))}
	return append(steps, final)
}

type quadraticCoeffs struct {
	a, b []float64
	c    float64
}

// fitDiagonalQuadratic fits f_hat(t) = sum_i a_i t_i^2 + b_i t_i + c by
// ordinary least squares against the observed steps, in each space's
// scaled [0,1] coordinate.
func fitDiagonalQuadratic(spaces []ParamSpace, steps []Step, d int) quadraticCoeffs {
	m := len(steps)
	cols := 2*d + 1
	design := mat.NewDense(m, cols, nil)
	y := make([]float64, m)
	for i, st := range steps {
		for j, sp := range spaces {
			t := sp.Scaled(st.Values[j])
			design.Set(i, j, t*t)
			design.Set(i, d+j, t)
		}
		design.Set(i, 2*d, 1)
		y[i] = st.Score
	}

	var coeffVec mat.VecDense
	if err := coeffVec.SolveVec(design, mat.NewVecDense(m, y)); err != nil {
		return quadraticCoeffs{a: make([]float64, d), b: make([]float64, d)}
	}
	a := make([]float64, d)
	b := make([]float64, d)
	for j := 0; j < d; j++ {
		a[j] = coeffVec.AtVec(j)
		b[j] = coeffVec.AtVec(d + j)
	}
	return quadraticCoeffs{a: a, b: b, c: coeffVec.AtVec(2 * d)}
}

// diagonalQuadratic is the surrogate objective minimized by an inner
// smooth solver.
type diagonalQuadratic struct {
	function.Base
	a, b []float64
}

func (q *diagonalQuadratic) Evaluate(x, g []float64) float64 {
	q.Tick(g != nil)
	val := 0.0
	for i, xi := range x {
		ai := q.a[i]
		if ai < 1e-8 {
			ai = 1e-8 // keep the surrogate convex even when the fit is noisy
		}
		val += ai*xi*xi + q.b[i]*xi
		if g != nil {
			g[i] = 2*ai*xi + q.b[i]
		}
	}
	return val
}

func init() {
	register("surrogate", func() Tuner { return NewSurrogate() })
}
