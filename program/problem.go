// Package program implements the primal-dual interior-point solver for
// linear and quadratic programs from spec §4.6:
//
//	min  1/2 x^T P x + q^T x
//	s.t. A x = b, G x <= h
package program

import "gonum.org/v1/gonum/mat"

// Problem is the standard-form LP/QP: P may be nil for a pure LP. A/B
// describe the equality constraints, G/H the inequality constraints;
// either may be empty.
type Problem struct {
	P *mat.Dense // n x n, symmetric PSD; nil means P = 0 (LP)
	Q []float64  // n

	A *mat.Dense // meq x n
	B []float64  // meq

	G *mat.Dense // mineq x n
	H []float64  // mineq
}

// Size returns n, the number of decision variables.
func (p *Problem) Size() int { return len(p.Q) }

// NumEqualities returns meq.
func (p *Problem) NumEqualities() int { return len(p.B) }

// NumInequalities returns mineq.
func (p *Problem) NumInequalities() int { return len(p.H) }

func (p *Problem) applyP(x []float64) []float64 {
	n := len(x)
	out := make([]float64, n)
	if p.P == nil {
		return out
	}
	xv := mat.NewVecDense(n, x)
	var ov mat.VecDense
	ov.MulVec(p.P, xv)
	for i := 0; i < n; i++ {
		out[i] = ov.AtVec(i)
	}
	return out
}

func matVecRows(M *mat.Dense, x []float64) []float64 {
	if M == nil {
		return nil
	}
	rows, _ := M.Dims()
	out := make([]float64, rows)
	xv := mat.NewVecDense(len(x), x)
	var ov mat.VecDense
	ov.MulVec(M, xv)
	for i := 0; i < rows; i++ {
		out[i] = ov.AtVec(i)
	}
	return out
}

func matTVec(M *mat.Dense, y []float64) []float64 {
	if M == nil {
		return nil
	}
	_, cols := M.Dims()
	yv := mat.NewVecDense(len(y), y)
	var ov mat.VecDense
	ov.MulVec(M.T(), yv)
	out := make([]float64, cols)
	for i := 0; i < cols; i++ {
		out[i] = ov.AtVec(i)
	}
	return out
}

func addVec(a, b []float64) []float64 {
	out := make([]float64, len(a))
	for i := range out {
		out[i] = a[i] + b[i]
	}
	return out
}

func subVec(a, b []float64) []float64 {
	out := make([]float64, len(a))
	for i := range out {
		out[i] = a[i] - b[i]
	}
	return out
}

func scaleVec(a []float64, s float64) []float64 {
	out := make([]float64, len(a))
	for i := range out {
		out[i] = a[i] * s
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

func infNorm(v []float64) float64 {
	m := 0.0
	for _, x := range v {
		if ax := abs(x); ax > m {
			m = ax
		}
	}
	return m
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
