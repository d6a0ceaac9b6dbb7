package solver

import (
	"context"

	"gonum.org/v1/gonum/mat"

	"github.com/accosmin-org/nanogo/function"
	"github.com/accosmin-org/nanogo/logging"
)

// Newton is the classical Newton direction d = -H^-1 g, solved via a
// Cholesky factorization of H when it is positive definite; when H is
// not SPD at the current iterate (common far from the optimum) it falls
// back to the steepest-descent direction rather than failing outright.
type Newton struct {
	smoothBase
}

// NewNewton builds a Newton solver with default parameters.
func NewNewton() *Newton {
	return &Newton{smoothBase: newSmoothBase("newton")}
}

func (s *Newton) Name() string { return "newton" }

func (s *Newton) Minimize(ctx context.Context, f function.Function, x0 []float64, logger logging.Logger, monitor Monitor) *State {
	if logger == nil {
		logger = logging.NopLogger()
	}
	hf, ok := f.(function.HessianFunction)
	state := NewState(f, x0)
	if !ok {
		state.Status = StatusFailed
		return state
	}

	n := f.Size()
	H := mat.NewDense(n, n, nil)

	return runLoop(ctx, &s.smoothBase, state, logger, monitor, func(int) []float64 {
		hf.Hessian(state.X, H)
		return newtonDirection(H, state.G, n)
	})
}

// newtonDirection solves H d = -g via Cholesky when H is SPD, falling
// back to the steepest-descent direction otherwise.
func newtonDirection(H *mat.Dense, g []float64, n int) []float64 {
	sym := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			v := 0.5 * (H.At(i, j) + H.At(j, i))
			sym.SetSym(i, j, v)
		}
	}

	var chol mat.Cholesky
	if chol.Factorize(sym) {
		rhs := mat.NewVecDense(n, g)
		var d mat.VecDense
		if err := chol.SolveVecTo(&d, rhs); err == nil {
			out := make([]float64, n)
			for i := range out {
				out[i] = -d.AtVec(i)
			}
			return out
		}
	}

	out := make([]float64, n)
	for i, gi := range g {
		out[i] = -gi
	}
	return out
}

func init() {
	register("newton", func() Solver { return NewNewton() })
}
