// Package solver implements the solver state shared by every minimizer
// (spec §4.3) and the smooth/nonsmooth solver families (spec §4.4, §4.5).
package solver

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/accosmin-org/nanogo/function"
)

// Status is the terminal (or running) classification of a solver call.
// Once a State reaches a terminal status it never changes (spec §4.3).
type Status int

const (
	StatusRunning Status = iota
	StatusMaxIters
	StatusConverged
	StatusDiverged
	StatusFailed
	StatusStopped
	StatusUnbounded
	StatusUnfeasible
	StatusKKTOptimalityTest
)

func (s Status) String() string {
	switch s {
	case StatusRunning:
		return "running"
	case StatusMaxIters:
		return "max_iters"
	case StatusConverged:
		return "converged"
	case StatusDiverged:
		return "diverged"
	case StatusFailed:
		return "failed"
	case StatusStopped:
		return "stopped"
	case StatusUnbounded:
		return "unbounded"
	case StatusUnfeasible:
		return "unfeasible"
	case StatusKKTOptimalityTest:
		return "kkt_optimality_test"
	default:
		return "unknown"
	}
}

// Terminal reports whether s is a terminal status (anything but running).
func (s Status) Terminal() bool { return s != StatusRunning }

// State is the current iterate shared by all solvers: x, f(x), optional
// gradient/Hessian, the last line-search step and descent direction,
// evaluation counters (via the attached Function), constraint residuals,
// dual multipliers and status.
type State struct {
	Fn function.Function

	X []float64
	F float64
	G []float64

	T float64   // last accepted line-search step
	D []float64 // last descent direction

	U []float64 // inequality multipliers
	V []float64 // equality multipliers

	Status Status

	history *history
}

// NewState evaluates fn at x0 and builds the initial State.
func NewState(fn function.Function, x0 []float64) *State {
	n := fn.Size()
	x := append([]float64(nil), x0...)
	g := make([]float64, n)
	f := fn.Evaluate(x, g)
	return &State{
		Fn:      fn,
		X:       x,
		F:       f,
		G:       g,
		Status:  StatusRunning,
		history: newHistory(32),
	}
}

// UpdateIfBetter replaces the state only when f2 strictly improves on
// F, recording the decrement in the convergence history. Returns
// whether the update was applied.
func (s *State) UpdateIfBetter(x2, g2 []float64, f2 float64) bool {
	if !(f2 < s.F) {
		return false
	}
	s.history.push(s.F - f2)
	s.X = append(s.X[:0], x2...)
	s.F = f2
	if g2 != nil {
		s.G = append(s.G[:0], g2...)
	}
	return true
}

// GradientTest returns ||g||_inf / max(1, |f|), the stopping statistic
// for smooth unconstrained solvers.
func (s *State) GradientTest() float64 {
	return floats.Norm(s.G, math.Inf(1)) / math.Max(1, math.Abs(s.F))
}

// ValueTest returns the moving decrement over the last patience
// UpdateIfBetter calls, the fallback stopping statistic for nonsmooth
// solvers that have no reliable gradient norm.
func (s *State) ValueTest(patience int) float64 {
	return s.history.movingDecrement(patience)
}

// KKTOptimalityTest returns max(||h||_inf, ||max(0,g)||_inf) against the
// attached constraint set, used by the constrained driver (spec §4.7).
func (s *State) KKTOptimalityTest() float64 {
	return s.Fn.Constraints().MaxResidual(s.X)
}

// history is a fixed-capacity ring buffer of recent f decrements.
type history struct {
	buf      []float64
	cap      int
	size     int
	writeIdx int
}

func newHistory(capacity int) *history {
	return &history{buf: make([]float64, capacity), cap: capacity}
}

func (h *history) push(decrement float64) {
	h.buf[h.writeIdx] = decrement
	h.writeIdx = (h.writeIdx + 1) % h.cap
	if h.size < h.cap {
		h.size++
	}
}

// movingDecrement averages the last min(patience, size) recorded
// decrements; returns +Inf when there is no history yet (never stop
// before at least one improving step has been observed).
func (h *history) movingDecrement(patience int) float64 {
	if h.size == 0 {
		return math.Inf(1)
	}
	n := patience
	if n > h.size {
		n = h.size
	}
	sum := 0.0
	idx := h.writeIdx
	for i := 0; i < n; i++ {
		idx = (idx - 1 + h.cap) % h.cap
		sum += h.buf[idx]
	}
	return sum / float64(n)
}
