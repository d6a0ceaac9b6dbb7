package solver

import (
	"context"

	"github.com/accosmin-org/nanogo/function"
	"github.com/accosmin-org/nanogo/logging"
)

// GD is plain gradient descent: d_k = -g_k.
type GD struct {
	smoothBase
}

// NewGD builds a GD solver with default parameters.
func NewGD() *GD {
	return &GD{smoothBase: newSmoothBase("gd")}
}

func (s *GD) Name() string { return "gd" }

func (s *GD) Minimize(ctx context.Context, f function.Function, x0 []float64, logger logging.Logger, monitor Monitor) *State {
	if logger == nil {
		logger = logging.NopLogger()
	}
	state := NewState(f, x0)
	return runLoop(ctx, &s.smoothBase, state, logger, monitor, func(int) []float64 {
		d := make([]float64, len(state.G))
		for i, gi := range state.G {
			d[i] = -gi
		}
		return d
	})
}

func init() {
	register("gd", func() Solver { return NewGD() })
}
