package program

import (
	"math"

	"github.com/accosmin-org/nanogo/config"
	"github.com/accosmin-org/nanogo/solver"
)

// Result is the outcome of a Solve call: the primal point, the
// inequality and equality duals, the terminal status and the iteration
// count actually used.
type Result struct {
	X          []float64
	U, V       []float64
	Status     solver.Status
	Iterations int
}

// Solver is the infeasible-start Mehrotra predictor-corrector
// interior-point method from spec §4.6.
type Solver struct {
	config.Configurable

	epsilon   *config.Parameter
	maxIters  *config.Parameter
	s0        *config.Parameter
	gamma     *config.Parameter
	ruizIters *config.Parameter
}

// NewSolver builds a Solver with spec-default constants.
func NewSolver() *Solver {
	s := &Solver{Configurable: config.NewConfigurable("program")}
	eps, _ := config.NewFloat("program::epsilon", config.Open(0, 1), 1e-8)
	mi, _ := config.NewInt("program::max_iters", config.Closed(1, 10000), 200)
	s0, _ := config.NewFloat("program::s0", config.Open(0, 1), 0.99)
	gamma, _ := config.NewFloat("program::gamma", config.Open(0, 10), 1.0)
	ri, _ := config.NewInt("program::ruiz_iters", config.Closed(0, 100), 10)
	s.Register(eps)
	s.Register(mi)
	s.Register(s0)
	s.Register(gamma)
	s.Register(ri)
	s.epsilon, s.maxIters, s.s0, s.gamma, s.ruizIters = eps, mi, s0, gamma, ri
	return s
}

// Solve runs the primal-dual interior-point method on p.
func (slv *Solver) Solve(p *Problem) *Result {
	eq := ruizEquilibrate(p, int(slv.ruizIters.Int()))
	sp := eq.scaledProblem(p)

	n := sp.Size()
	meq := sp.NumEqualities()
	mineq := sp.NumInequalities()

	x := make([]float64, n)
	v := make([]float64, meq)
	u := ones(mineq)
	s := ones(mineq)

	status := solver.StatusMaxIters
	iter := 0
	for ; iter < int(slv.maxIters.Int()); iter++ {
		rDual, rPrimEq, rPrimIneq := residuals(sp, x, u, v, s)
		mu := 0.0
		if mineq > 0 {
			mu = dot(u, s) / float64(mineq)
		}
		gap := dot(u, subVec(sp.H, matVecRows(sp.G, x)))
		denom := math.Max(1, math.Abs(dot(sp.Q, x)))
		if math.Max(infNorm(rDual), math.Max(infNorm(rPrimEq), math.Abs(gap)/denom)) < slv.epsilon.Float() {
			status = solver.StatusConverged
			break
		}

		// Affine-scaling predictor.
		rComp := make([]float64, mineq)
		for i := range rComp {
			rComp[i] = u[i] * s[i]
		}
		dxAff, dvAff, duAff, dsAff, okAff := slv.direction(sp, u, s, rDual, rPrimEq, rPrimIneq, rComp)
		if !okAff {
			status = solver.StatusFailed
			break
		}

		alphaPAff := fractionToBoundary(s, dsAff, 1.0)
		alphaDAff := fractionToBoundary(u, duAff, 1.0)
		muAff := 0.0
		if mineq > 0 {
			sAff := addVec(s, scaleVec(dsAff, alphaPAff))
			uAff := addVec(u, scaleVec(duAff, alphaDAff))
			muAff = dot(uAff, sAff) / float64(mineq)
		}
		sigma := 0.0
		if mu > 1e-300 {
			sigma = math.Pow(math.Max(0, math.Min(1, muAff/mu)), 3)
		}

		// Corrector combining the affine step with centering.
		for i := range rComp {
			rComp[i] = u[i]*s[i] + dsAff[i]*duAff[i] - sigma*mu
		}
		dx, dv, du, ds, ok := slv.direction(sp, u, s, rDual, rPrimEq, rPrimIneq, rComp)
		if !ok {
			status = solver.StatusFailed
			break
		}

		eta := 1 - (1-slv.s0.Float())/math.Pow(float64(iter+1), slv.gamma.Float())
		alphaP := fractionToBoundary(s, ds, eta)
		alphaD := fractionToBoundary(u, du, eta)

		if alphaP > 1e6 && dot(sp.Q, dx) < -1e-9 {
			status = solver.StatusUnbounded
			break
		}
		if alphaD > 1e6 && dot(sp.B, dv)+dot(sp.H, du) < -1e-9 {
			status = solver.StatusUnfeasible
			break
		}

		x = addVec(x, scaleVec(dx, alphaP))
		s = addVec(s, scaleVec(ds, alphaP))
		v = addVec(v, scaleVec(dv, alphaD))
		u = addVec(u, scaleVec(du, alphaD))
	}

	uOut, vOut := eq.unscaleDuals(u, v)
	return &Result{
		X:          eq.unscaleX(x),
		U:          uOut,
		V:          vOut,
		Status:     status,
		Iterations: iter,
	}
}

// direction solves the condensed Newton system for the given
// complementarity target rComp, returning (dx, dv, du, ds).
func (slv *Solver) direction(p *Problem, u, s, rDual, rPrimEq, rPrimIneq, rComp []float64) (dx, dv, du, ds []float64, ok bool) {
	n := p.Size()
	mineq := p.NumInequalities()

	rhs1 := make([]float64, n)
	for i := range rhs1 {
		rhs1[i] = -rDual[i]
	}
	if mineq > 0 {
		inner := make([]float64, mineq)
		for i := 0; i < mineq; i++ {
			sInv := 0.0
			if s[i] > 1e-300 {
				sInv = 1 / s[i]
			}
			inner[i] = sInv * (-rComp[i] + u[i]*rPrimIneq[i])
		}
		adj := matTVec(p.G, inner)
		for i := range rhs1 {
			rhs1[i] -= adj[i]
		}
	}
	rhs2 := make([]float64, len(rPrimEq))
	for i := range rhs2 {
		rhs2[i] = -rPrimEq[i]
	}

	dx, dv, ok = condensedSolve(p, u, s, rhs1, rhs2)
	if !ok {
		return nil, nil, nil, nil, false
	}

	if mineq == 0 {
		return dx, dv, nil, nil, true
	}
	Gdx := matVecRows(p.G, dx)
	ds = make([]float64, mineq)
	du = make([]float64, mineq)
	for i := 0; i < mineq; i++ {
		ds[i] = -rPrimIneq[i] - Gdx[i]
		sInv := 0.0
		if s[i] > 1e-300 {
			sInv = 1 / s[i]
		}
		du[i] = sInv * (-rComp[i] - u[i]*ds[i])
	}
	return dx, dv, du, ds, true
}

// residuals computes r_dual = Px+q+A^Tv+G^Tu, r_prim_eq = Ax-b,
// r_prim_ineq = Gx+s-h.
func residuals(p *Problem, x, u, v, s []float64) (rDual, rPrimEq, rPrimIneq []float64) {
	rDual = p.applyP(x)
	for i := range rDual {
		rDual[i] += p.Q[i]
	}
	if p.A != nil && len(v) > 0 {
		adj := matTVec(p.A, v)
		for i := range rDual {
			rDual[i] += adj[i]
		}
	}
	if p.G != nil && len(u) > 0 {
		adj := matTVec(p.G, u)
		for i := range rDual {
			rDual[i] += adj[i]
		}
	}

	if p.A != nil {
		Ax := matVecRows(p.A, x)
		rPrimEq = subVec(Ax, p.B)
	}
	if p.G != nil {
		Gx := matVecRows(p.G, x)
		rPrimIneq = make([]float64, len(Gx))
		for i := range rPrimIneq {
			rPrimIneq[i] = Gx[i] + s[i] - p.H[i]
		}
	}
	return rDual, rPrimEq, rPrimIneq
}

// fractionToBoundary returns the largest step in (0,1] scaled by eta
// that keeps v + alpha*dv strictly positive componentwise, or a large
// sentinel when dv never decreases v (unbounded direction).
func fractionToBoundary(v, dv []float64, eta float64) float64 {
	alpha := math.Inf(1)
	for i := range v {
		if dv[i] < 0 {
			cand := -v[i] / dv[i]
			if cand < alpha {
				alpha = cand
			}
		}
	}
	if math.IsInf(alpha, 1) {
		return 1e12
	}
	return math.Min(1, eta*alpha)
}
