package solver

import (
	"context"
	"math"

	"github.com/accosmin-org/nanogo/config"
	"github.com/accosmin-org/nanogo/function"
	"github.com/accosmin-org/nanogo/logging"
)

// Ellipsoid is the classical ellipsoid method: it maintains a shrinking
// ellipsoid E_k = {x : (x-x_k)^T P_k^-1 (x-x_k) <= 1} guaranteed to
// contain a minimizer, and cuts it in half along the subgradient at the
// center on every iteration. The optional deep-cut variant additionally
// shrinks the ellipsoid using the value gap when a target lower bound is
// available; here it falls back to the plain central cut since no
// target bound is supplied by the caller.
type Ellipsoid struct {
	nonsmoothBase
	deepCut *config.Parameter
}

// NewEllipsoid builds an Ellipsoid solver; deep_cut is registered but
// Minimize does not read it: every iteration uses the central cut.
func NewEllipsoid() *Ellipsoid {
	e := &Ellipsoid{nonsmoothBase: newNonsmoothBase("ellipsoid")}
	deep, _ := config.NewEnum("ellipsoid::deep_cut", []string{"off", "on"}, "off")
	e.Register(deep)
	e.deepCut = deep
	return e
}

func (e *Ellipsoid) Name() string { return "ellipsoid" }

func (e *Ellipsoid) Minimize(ctx context.Context, f function.Function, x0 []float64, logger logging.Logger, monitor Monitor) *State {
	if logger == nil {
		logger = logging.NopLogger()
	}
	state := NewState(f, x0)
	n := f.Size()

	// P starts as R^2 * I for an initial radius R covering a generous
	// neighborhood of x0; the method contracts from there.
	const r0 = 10.0
	P := make([][]float64, n)
	for i := range P {
		P[i] = make([]float64, n)
		P[i][i] = r0 * r0
	}
	x := append([]float64(nil), state.X...)

	for iter := 0; ; iter++ {
		if e.checkStop(state) {
			return state
		}

		g := make([]float64, n)
		fx := f.Evaluate(x, g)
		state.UpdateIfBetter(x, g, fx)
		gnorm := norm2(g)
		if gnorm == 0 {
			state.Status = StatusConverged
			return state
		}

		Pg := matVec(P, g)
		gPg := dotProduct(g, Pg)
		if gPg <= 0 {
			state.Status = StatusFailed
			return state
		}
		denom := math.Sqrt(gPg)

		xNext := make([]float64, n)
		for i := range xNext {
			xNext[i] = x[i] - Pg[i]/(float64(n+1)*denom)
		}

		scaleA := float64(n*n) / float64(n*n-1)
		scaleB := 2.0 / float64(n+1)
		Pnext := make([][]float64, n)
		for i := range Pnext {
			Pnext[i] = make([]float64, n)
			for j := range Pnext[i] {
				Pnext[i][j] = scaleA * (P[i][j] - scaleB*Pg[i]*Pg[j]/gPg)
			}
		}

		x, P = xNext, Pnext
		if checkCancelled(ctx, monitor, state) {
			return state
		}
	}
}

func matVec(M [][]float64, v []float64) []float64 {
	out := make([]float64, len(v))
	for i := range out {
		s := 0.0
		for j := range v {
			s += M[i][j] * v[j]
		}
		out[i] = s
	}
	return out
}

func init() {
	register("ellipsoid", func() Solver { return NewEllipsoid() })
}
