package program

import (
	"gonum.org/v1/gonum/mat"
)

// condensedSolve solves the condensed symmetric KKT system obtained by
// eliminating the slack/dual-inequality block from the full primal-dual
// Newton system:
//
//	(P + G^T diag(u/s) G) dx + A^T dv = rhs1
//	A dx                             = rhs2
//
// It attempts a Cholesky factorization first (valid whenever meq == 0
// and the (1,1) block is SPD); otherwise it falls back to a general LU
// solve, standing in for the spec's LDLT-with-MINRES-fallback scheme —
// gonum's mat package exposes Cholesky/LU but no symmetric-indefinite
// (LDLT) or MINRES solver, so LU is the closest general fallback
// available in the ecosystem (documented as a simplification).
func condensedSolve(p *Problem, u, s []float64, rhs1, rhs2 []float64) (dx, dv []float64, ok bool) {
	n := p.Size()
	meq := p.NumEqualities()

	// M = P + G^T diag(u/s) G
	M := mat.NewDense(n, n, nil)
	if p.P != nil {
		M.Copy(p.P)
	}
	if p.G != nil {
		mineq := p.NumInequalities()
		sigma := make([]float64, mineq)
		for i := range sigma {
			if s[i] > 1e-300 {
				sigma[i] = u[i] / s[i]
			}
		}
		var GtSigmaG mat.Dense
		scaledG := mat.NewDense(mineq, n, nil)
		for i := 0; i < mineq; i++ {
			for j := 0; j < n; j++ {
				scaledG.Set(i, j, sigma[i]*p.G.At(i, j))
			}
		}
		GtSigmaG.Mul(p.G.T(), scaledG)
		M.Add(M, &GtSigmaG)
	}

	if meq == 0 {
		sym := toSym(M, n)
		var chol mat.Cholesky
		if chol.Factorize(sym) {
			rhs := mat.NewVecDense(n, rhs1)
			var sol mat.VecDense
			if err := chol.SolveVecTo(&sol, rhs); err == nil {
				dx = vecSlice(&sol, n)
				return dx, nil, true
			}
		}
		var sol mat.VecDense
		if err := sol.SolveVec(M, mat.NewVecDense(n, rhs1)); err != nil {
			return nil, nil, false
		}
		return vecSlice(&sol, n), nil, true
	}

	// Build the bordered system [[M, A^T],[A, 0]] dense and solve via LU.
	total := n + meq
	full := mat.NewDense(total, total, nil)
	full.Slice(0, n, 0, n).(*mat.Dense).Copy(M)
	At := p.A.T()
	full.Slice(0, n, n, total).(*mat.Dense).Copy(At)
	full.Slice(n, total, 0, n).(*mat.Dense).Copy(p.A)

	rhs := make([]float64, total)
	copy(rhs[:n], rhs1)
	copy(rhs[n:], rhs2)

	var sol mat.VecDense
	if err := sol.SolveVec(full, mat.NewVecDense(total, rhs)); err != nil {
		return nil, nil, false
	}
	dx = vecSlice(&sol, n)
	dv = make([]float64, meq)
	for i := 0; i < meq; i++ {
		dv[i] = sol.AtVec(n + i)
	}
	return dx, dv, true
}

func toSym(M *mat.Dense, n int) *mat.SymDense {
	sym := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			sym.SetSym(i, j, 0.5*(M.At(i, j)+M.At(j, i)))
		}
	}
	return sym
}

func vecSlice(v *mat.VecDense, n int) []float64 {
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		out[i] = v.AtVec(i)
	}
	return out
}
