package program

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// scaling holds the diagonal row/column scale factors produced by
// modified Ruiz equilibration (spec §4.6): diagonal rescaling of A's and
// G's rows and the shared variable columns, repeated until the scale
// update stabilizes or a small iteration cap is reached. Scales are
// computed from the unmutated problem data and applied once the fixed
// point is reached.
type scaling struct {
	col  []float64 // per-variable column scale, shared by A, G, P, q
	rowA []float64
	rowG []float64
}

func ruizEquilibrate(p *Problem, maxIters int) *scaling {
	n := p.Size()
	meq, mineq := p.NumEqualities(), p.NumInequalities()

	col := ones(n)
	rowA := ones(meq)
	rowG := ones(mineq)

	for iter := 0; iter < maxIters; iter++ {
		maxDelta := 0.0

		for i := 0; i < meq; i++ {
			v := scaledRowInfNorm(p.A, i, rowA[i], col)
			maxDelta = math.Max(maxDelta, rescale(&rowA[i], v))
		}
		for i := 0; i < mineq; i++ {
			v := scaledRowInfNorm(p.G, i, rowG[i], col)
			maxDelta = math.Max(maxDelta, rescale(&rowG[i], v))
		}
		for j := 0; j < n; j++ {
			v := scaledColInfNorm(p.A, j, rowA, col[j])
			if w := scaledColInfNorm(p.G, j, rowG, col[j]); w > v {
				v = w
			}
			maxDelta = math.Max(maxDelta, rescale(&col[j], v))
		}

		if maxDelta < 1e-3 {
			break
		}
	}
	return &scaling{col: col, rowA: rowA, rowG: rowG}
}

// rescale multiplies *scale by 1/sqrt(currentNorm) in place and returns
// the magnitude of the adjustment, used to detect convergence.
func rescale(scale *float64, currentNorm float64) float64 {
	if currentNorm < 1e-300 {
		return 0
	}
	delta := 1 / math.Sqrt(currentNorm)
	*scale *= delta
	return math.Abs(delta - 1)
}

func scaledRowInfNorm(M *mat.Dense, i int, rowScale float64, col []float64) float64 {
	if M == nil {
		return 0
	}
	_, cols := M.Dims()
	m := 0.0
	for j := 0; j < cols; j++ {
		v := math.Abs(rowScale * col[j] * M.At(i, j))
		if v > m {
			m = v
		}
	}
	return m
}

func scaledColInfNorm(M *mat.Dense, j int, rowScale []float64, colScale float64) float64 {
	if M == nil {
		return 0
	}
	rows, _ := M.Dims()
	m := 0.0
	for i := 0; i < rows; i++ {
		v := math.Abs(rowScale[i] * colScale * M.At(i, j))
		if v > m {
			m = v
		}
	}
	return m
}

func ones(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = 1
	}
	return out
}

// scaledProblem applies s to p, returning a new Problem with the scaled
// data: A' = diag(rowA) A diag(col), G' = diag(rowG) G diag(col),
// P' = diag(col) P diag(col), q' = diag(col) q, b' = diag(rowA) b,
// h' = diag(rowG) h.
func (s *scaling) scaledProblem(p *Problem) *Problem {
	n := p.Size()
	out := &Problem{Q: make([]float64, n)}
	for j := 0; j < n; j++ {
		out.Q[j] = s.col[j] * p.Q[j]
	}
	if p.P != nil {
		P := mat.NewDense(n, n, nil)
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				P.Set(i, j, s.col[i]*s.col[j]*p.P.At(i, j))
			}
		}
		out.P = P
	}
	if p.A != nil {
		meq := p.NumEqualities()
		A := mat.NewDense(meq, n, nil)
		out.B = make([]float64, meq)
		for i := 0; i < meq; i++ {
			out.B[i] = s.rowA[i] * p.B[i]
			for j := 0; j < n; j++ {
				A.Set(i, j, s.rowA[i]*s.col[j]*p.A.At(i, j))
			}
		}
		out.A = A
	}
	if p.G != nil {
		mineq := p.NumInequalities()
		G := mat.NewDense(mineq, n, nil)
		out.H = make([]float64, mineq)
		for i := 0; i < mineq; i++ {
			out.H[i] = s.rowG[i] * p.H[i]
			for j := 0; j < n; j++ {
				G.Set(i, j, s.rowG[i]*s.col[j]*p.G.At(i, j))
			}
		}
		out.G = G
	}
	return out
}

// unscaleX maps a scaled-problem solution back to the original
// variables: x = diag(col) x'.
func (s *scaling) unscaleX(x []float64) []float64 {
	out := make([]float64, len(x))
	for i := range out {
		out[i] = s.col[i] * x[i]
	}
	return out
}

// unscaleDuals maps scaled duals back: v = diag(rowA) v', u = diag(rowG) u'.
func (s *scaling) unscaleDuals(u, v []float64) (uOut, vOut []float64) {
	uOut = make([]float64, len(u))
	for i := range uOut {
		uOut[i] = s.rowG[i] * u[i]
	}
	vOut = make([]float64, len(v))
	for i := range vOut {
		vOut[i] = s.rowA[i] * v[i]
	}
	return uOut, vOut
}
