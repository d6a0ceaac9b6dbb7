package solver

import (
	"context"

	"github.com/accosmin-org/nanogo/config"
	"github.com/accosmin-org/nanogo/function"
	"github.com/accosmin-org/nanogo/logging"
)

// LBFGS is limited-memory BFGS: it keeps the last `history` (s,y) pairs
// and produces the quasi-Newton direction via the standard two-loop
// recursion. A curvature pair with s.y <= 1e-12 is not stored, and the
// solver falls back to steepest descent when the two-loop direction is
// not a descent direction (with empty memory the two-loop direction is -g).
type LBFGS struct {
	smoothBase
	historySize *config.Parameter

	pairs  []lbfgsPair
	prevX  []float64
	prevG  []float64
}

type lbfgsPair struct {
	s, y []float64
	rho  float64
}

// NewLBFGS builds an LBFGS solver with a default memory of 20 pairs.
func NewLBFGS() *LBFGS {
	s := &LBFGS{smoothBase: newSmoothBase("lbfgs")}
	h, _ := config.NewInt("lbfgs::history_size", config.Closed(1, 100), 20)
	s.Register(h)
	s.historySize = h
	return s
}

func (s *LBFGS) Name() string { return "lbfgs" }

func (s *LBFGS) Minimize(ctx context.Context, f function.Function, x0 []float64, logger logging.Logger, monitor Monitor) *State {
	if logger == nil {
		logger = logging.NopLogger()
	}
	state := NewState(f, x0)
	s.pairs = nil
	s.prevX, s.prevG = nil, nil

	return runLoop(ctx, &s.smoothBase, state, logger, monitor, func(iter int) []float64 {
		if iter > 0 && s.prevX != nil {
			sVec := make([]float64, len(state.X))
			yVec := make([]float64, len(state.X))
			for i := range sVec {
				sVec[i] = state.X[i] - s.prevX[i]
				yVec[i] = state.G[i] - s.prevG[i]
			}
			sy := dotProduct(sVec, yVec)
			if sy > 1e-12 {
				s.pairs = append(s.pairs, lbfgsPair{s: sVec, y: yVec, rho: 1 / sy})
				if len(s.pairs) > int(s.historySize.Int()) {
					s.pairs = s.pairs[1:]
				}
			}
		}
		s.prevX = append(s.prevX[:0], state.X...)
		s.prevG = append(s.prevG[:0], state.G...)

		d := s.twoLoopRecursion(state.G)
		if dotProduct(d, state.G) >= 0 {
			for i, gi := range state.G {
				d[i] = -gi
			}
		}
		return d
	})
}

// twoLoopRecursion is the standard L-BFGS two-loop recursion producing
// an approximation of -H_k * g, scaled on the first iteration by the
// most recent curvature pair (Nocedal & Wright, eq. 7.20).
func (s *LBFGS) twoLoopRecursion(g []float64) []float64 {
	n := len(g)
	q := append([]float64(nil), g...)
	m := len(s.pairs)
	alpha := make([]float64, m)

	for i := m - 1; i >= 0; i-- {
		p := s.pairs[i]
		alpha[i] = p.rho * dotProduct(p.s, q)
		for j := 0; j < n; j++ {
			q[j] -= alpha[i] * p.y[j]
		}
	}

	gamma := 1.0
	if m > 0 {
		last := s.pairs[m-1]
		yy := dotProduct(last.y, last.y)
		if yy > 0 {
			gamma = 1.0 / (last.rho * yy)
		}
	}
	r := make([]float64, n)
	for j := range r {
		r[j] = gamma * q[j]
	}

	for i := 0; i < m; i++ {
		p := s.pairs[i]
		beta := p.rho * dotProduct(p.y, r)
		for j := 0; j < n; j++ {
			r[j] += p.s[j] * (alpha[i] - beta)
		}
	}

	d := make([]float64, n)
	for j := range d {
		d[j] = -r[j]
	}
	return d
}

func init() {
	register("lbfgs", func() Solver { return NewLBFGS() })
}
