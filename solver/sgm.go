package solver

import (
	"context"
	"math"

	"github.com/accosmin-org/nanogo/config"
	"github.com/accosmin-org/nanogo/function"
	"github.com/accosmin-org/nanogo/logging"
)

// SGM is the subgradient method with a diminishing step alpha/sqrt(k+1):
// d_k = -g_k/||g_k||, x_{k+1} = x_k + t_k*d_k. It never accepts a worse
// iterate into State.F; it keeps the best point seen so far, the
// standard way subgradient methods are made to produce a monotone trace
// despite f(x_k) itself oscillating, while always continuing the walk
// from the latest x_k regardless of whether it improved.
type SGM struct {
	nonsmoothBase
	alpha *config.Parameter
}

// NewSGM builds an SGM solver with the default step-size scale.
func NewSGM() *SGM {
	s := &SGM{nonsmoothBase: newNonsmoothBase("sgm")}
	alpha, _ := config.NewFloat("sgm::alpha", config.Open(0, math.Inf(1)), 1.0)
	s.Register(alpha)
	s.alpha = alpha
	return s
}

func (s *SGM) Name() string { return "sgm" }

func (s *SGM) Minimize(ctx context.Context, f function.Function, x0 []float64, logger logging.Logger, monitor Monitor) *State {
	if logger == nil {
		logger = logging.NopLogger()
	}
	state := NewState(f, x0)
	n := f.Size()
	x := append([]float64(nil), state.X...)
	g := append([]float64(nil), state.G...)

	for iter := 0; ; iter++ {
		if s.checkStop(state) {
			return state
		}

		gnorm := norm2(g)
		if gnorm == 0 {
			state.Status = StatusConverged
			return state
		}
		step := s.alpha.Float() / math.Sqrt(float64(iter)+1)

		xNext := make([]float64, n)
		for i := range xNext {
			xNext[i] = x[i] - step*g[i]/gnorm
		}
		gNext := make([]float64, n)
		fNext := f.Evaluate(xNext, gNext)

		state.T = step
		state.UpdateIfBetter(xNext, gNext, fNext)

		x, g = xNext, gNext
		if checkCancelled(ctx, monitor, state) {
			return state
		}
	}
}

func init() {
	register("sgm", func() Solver { return NewSGM() })
}
