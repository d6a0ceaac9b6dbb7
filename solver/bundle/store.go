// Package bundle implements the proximal-bundle family of nonsmooth
// solvers (spec §4.5: FPBA1, FPBA2, RQB) sharing a common cutting-plane
// model and dual subproblem solve.
package bundle

import (
	"gonum.org/v1/gonum/mat"

	"github.com/accosmin-org/nanogo/program"
)

// entry is one cutting plane f_i + g_i^T(y - x_i) contributed by an
// evaluation at x_i.
type entry struct {
	x, g []float64
	f    float64
}

// Store is the cutting-plane model shared by every bundle variant: it
// accumulates linearizations around a moving proximal center and solves
// the dual QP for the aggregate direction.
type Store struct {
	entries []entry
	maxSize int
}

// NewStore builds an empty Store capped at maxSize entries (0 means
// unbounded).
func NewStore(maxSize int) *Store {
	return &Store{maxSize: maxSize}
}

// Add records a new cutting plane, evicting the oldest entry once
// maxSize is exceeded (the "restricted" memory policy shared by RQB).
func (s *Store) Add(x, g []float64, f float64) {
	s.entries = append(s.entries, entry{x: append([]float64(nil), x...), g: append([]float64(nil), g...), f: f})
	if s.maxSize > 0 && len(s.entries) > s.maxSize {
		s.entries = s.entries[len(s.entries)-s.maxSize:]
	}
}

// Reset clears the model, called after every serious step once the
// proximal center moves (the standard bundle reset rule).
func (s *Store) Reset() { s.entries = nil }

// Len reports the number of active cutting planes.
func (s *Store) Len() int { return len(s.entries) }

// Solve computes the aggregate direction d = -(1/mu) sum_i lambda_i g_i
// and the corresponding linearization-error estimate, where lambda
// solves the bundle's dual simplex QP
//
//	min_lambda (1/2mu)||sum lambda_i g_i||^2 - sum lambda_i e_i
//	s.t.       lambda >= 0, sum lambda_i = 1
//
// with e_i = fCenter - (f_i + g_i.(xCenter-x_i)) >= 0. This is a genuine
// QP on the simplex, so it is solved by the same interior-point method
// used for the LP/QP layer (program.Solver) instead of a bundle-specific
// routine.
func (s *Store) Solve(xCenter []float64, fCenter, mu float64, _ int) (d []float64, aggregateErr float64) {
	n := len(xCenter)
	k := len(s.entries)
	if k == 0 {
		return make([]float64, n), 0
	}

	e := make([]float64, k)
	for i, en := range s.entries {
		diff := 0.0
		for j := range xCenter {
			diff += en.g[j] * (xCenter[j] - en.x[j])
		}
		e[i] = maxFloat(0, fCenter-(en.f+diff))
	}

	lambda := s.solveDualQP(e, mu)
	sumG := aggregateG(s.entries, lambda, n)

	d = make([]float64, n)
	for j := range d {
		d[j] = -sumG[j] / mu
	}
	aggregateErr = dot(lambda, e)
	return d, aggregateErr
}

// solveDualQP minimizes (1/2mu)||G^T lambda||^2 - e^T lambda over the
// probability simplex, where G is the k x n matrix of bundle gradients,
// by handing the Gram-matrix QP to program.Solver. k=1 is solved
// directly (the simplex forces lambda=1, and a 1x1 interior-point solve
// would be degenerate).
func (s *Store) solveDualQP(e []float64, mu float64) []float64 {
	k := len(s.entries)
	if k == 1 {
		return []float64{1}
	}

	gram := mat.NewDense(k, k, nil)
	for i := 0; i < k; i++ {
		for j := i; j < k; j++ {
			v := dot(s.entries[i].g, s.entries[j].g) / mu
			gram.Set(i, j, v)
			gram.Set(j, i, v)
		}
	}
	q := make([]float64, k)
	for i := range q {
		q[i] = -e[i]
	}
	a := mat.NewDense(1, k, ones(k))
	ineq := mat.NewDense(k, k, nil)
	for i := 0; i < k; i++ {
		ineq.Set(i, i, -1)
	}

	problem := &program.Problem{
		P: gram,
		Q: q,
		A: a,
		B: []float64{1},
		G: ineq,
		H: make([]float64, k),
	}

	result := program.NewSolver().Solve(problem)
	return result.X
}

func aggregateG(entries []entry, lambda []float64, n int) []float64 {
	out := make([]float64, n)
	for i, w := range lambda {
		if w == 0 {
			continue
		}
		for j := 0; j < n; j++ {
			out[j] += w * entries[i].g[j]
		}
	}
	return out
}

func dot(a, b []float64) float64 {
	s := 0.0
	for i := range a {
		s += a[i] * b[i]
	}
	return s
}

func ones(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = 1
	}
	return out
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
