package solver

import (
	"context"
	"math"

	"github.com/accosmin-org/nanogo/config"
	"github.com/accosmin-org/nanogo/function"
	"github.com/accosmin-org/nanogo/logging"
)

// OSGA is a simplified rendition of Neumaier's optimal subgradient
// algorithm: it keeps a running estimate h of the optimal value, a
// search point y distinct from the best iterate x, and blends a
// subgradient step at y with the direction toward the current best
// point using a decreasing mixing weight, which recovers OSGA's
// behaviour of alternating between exploration at y and exploitation
// around the incumbent x.
type OSGA struct {
	nonsmoothBase
	kappa *config.Parameter
}

// NewOSGA builds an OSGA solver with the default mixing-decay rate.
func NewOSGA() *OSGA {
	o := &OSGA{nonsmoothBase: newNonsmoothBase("osga")}
	kappa, _ := config.NewFloat("osga::kappa", config.Open(0, 1), 0.5)
	o.Register(kappa)
	o.kappa = kappa
	return o
}

func (o *OSGA) Name() string { return "osga" }

func (o *OSGA) Minimize(ctx context.Context, f function.Function, x0 []float64, logger logging.Logger, monitor Monitor) *State {
	if logger == nil {
		logger = logging.NopLogger()
	}
	state := NewState(f, x0)
	n := f.Size()

	x := append([]float64(nil), state.X...)
	y := append([]float64(nil), state.X...)
	h := state.F

	for iter := 0; ; iter++ {
		if o.checkStop(state) {
			return state
		}

		g := make([]float64, n)
		fy := f.Evaluate(y, g)
		gnorm2 := dotProduct(g, g)
		if gnorm2 == 0 {
			state.UpdateIfBetter(y, g, fy)
			state.Status = StatusConverged
			return state
		}

		if fy < h {
			h = fy
		}
		stepLen := (fy - h) / gnorm2

		yNext := make([]float64, n)
		for i := range yNext {
			yNext[i] = y[i] - stepLen*g[i]
		}
		gNextY := make([]float64, n)
		fNextY := f.Evaluate(yNext, gNextY)

		improved := state.UpdateIfBetter(yNext, gNextY, fNextY)
		if !improved {
			state.UpdateIfBetter(y, g, fy)
		}

		weight := o.kappa.Float() / math.Sqrt(float64(iter)+2)
		for i := range y {
			y[i] = (1-weight)*yNext[i] + weight*x[i]
		}
		if improved {
			x = append(x[:0], yNext...)
		}

		if checkCancelled(ctx, monitor, state) {
			return state
		}
	}
}

func init() {
	register("osga", func() Solver { return NewOSGA() })
}
