package solver

import (
	"context"
	"math"

	"github.com/accosmin-org/nanogo/config"
	"github.com/accosmin-org/nanogo/linesearch"
	"github.com/accosmin-org/nanogo/linesearch/step0"
	"github.com/accosmin-org/nanogo/linesearch/stepk"
	"github.com/accosmin-org/nanogo/logging"
)

// smoothBase holds the parameters and line-search machinery shared by
// every smooth descent-direction solver (gd, ncg, lbfgs, newton): an
// epsilon gradient-test stopping rule (patience is registered but not
// read by it), a max_evals budget, and a
// pluggable step0/stepk line-search pair (spec §4.4).
type smoothBase struct {
	config.Configurable

	epsilon   *config.Parameter
	patience  *config.Parameter
	maxEvals  *config.Parameter
	lsearch0  *config.Parameter
	lsearchk  *config.Parameter
}

func newSmoothBase(id string) smoothBase {
	b := smoothBase{Configurable: config.NewConfigurable(id)}
	eps, _ := config.NewFloat(id+"::epsilon", config.Open(0, 1), 1e-6)
	pat, _ := config.NewInt(id+"::patience", config.Closed(1, 1000), 10)
	me, _ := config.NewInt(id+"::max_evals", config.Closed(1, math.MaxInt32), 1000)
	l0, _ := config.NewEnum(id+"::lsearch0", []string{"constant", "linear", "quadratic", "cg-descent"}, "quadratic")
	lk, _ := config.NewEnum(id+"::lsearchk", []string{"backtrack", "morethuente", "fletcher", "lemarechal", "cgdescent"}, "morethuente")
	b.Register(eps)
	b.Register(pat)
	b.Register(me)
	b.Register(l0)
	b.Register(lk)
	b.epsilon, b.patience, b.maxEvals, b.lsearch0, b.lsearchk = eps, pat, me, l0, lk
	return b
}

// checkStop applies the shared smooth stopping test: gradient-norm ratio
// below epsilon, or the evaluation budget exhausted.
func (b *smoothBase) checkStop(state *State, iter int) bool {
	if state.GradientTest() <= b.epsilon.Float() {
		state.Status = StatusConverged
		return true
	}
	if state.Fn.Counters().Total() >= b.maxEvals.Int() {
		state.Status = StatusMaxIters
		return true
	}
	return false
}

// lineSearch wraps the step0/stepk pair configured on b into a single
// call: given the current iterate, direction and per-iteration
// bookkeeping, it returns the accepted step together with the trial
// point's value and gradient.
type lineSearch struct {
	s0    step0.Strategy
	sk    stepk.Refiner
	prevT float64
	prevF float64
	prevDg float64
}

func newLineSearch(b *smoothBase) *lineSearch {
	s0, _ := step0.Factory(b.lsearch0.String())
	sk, _ := stepk.Factory(b.lsearchk.String())
	return &lineSearch{s0: s0, sk: sk}
}

// Run performs one line search along d from state, returning the
// accepted step t, the trial point and its value/gradient. ok is false
// when no step satisfying the refiner's conditions could be found.
func (ls *lineSearch) Run(state *State, d []float64, iter int) (ok bool, t float64, x []float64, f float64, g []float64) {
	phi := linesearch.NewPhi(state.Fn, state.X, d)
	dg0 := dotProduct(state.G, d)
	if dg0 >= 0 {
		return false, 0, nil, 0, nil
	}

	t0 := ls.s0.Init(step0.Input{
		Iteration: iter,
		PrevT:     ls.prevT,
		PrevDg:    ls.prevDg,
		Dg:        dg0,
		F:         state.F,
		PrevF:     ls.prevF,
		X:         state.X,
		G:         state.G,
		EvalPhi:   phi.At,
	})

	found, tAccepted := ls.sk.Refine(phi, state.F, dg0, t0)
	if !found {
		return false, 0, nil, 0, nil
	}

	xNext := phi.PointAt(tAccepted)
	gNext := make([]float64, len(xNext))
	fNext := state.Fn.Evaluate(xNext, gNext)

	ls.prevT, ls.prevF, ls.prevDg = tAccepted, state.F, dg0
	return true, tAccepted, xNext, fNext, gNext
}

func dotProduct(a, b []float64) float64 {
	s := 0.0
	for i := range a {
		s += a[i] * b[i]
	}
	return s
}

// runLoop is the shared outer iteration driver used by every smooth
// solver: it calls step to produce the next descent direction, performs
// the line search, updates state and checks stopping/cancellation.
func runLoop(ctx context.Context, b *smoothBase, state *State, logger logging.Logger, monitor Monitor, step func(iter int) []float64) *State {
	ls := newLineSearch(b)
	for iter := 0; ; iter++ {
		if b.checkStop(state, iter) {
			return state
		}
		d := step(iter)
		if d == nil {
			state.Status = StatusFailed
			return state
		}
		ok, t, x, f, g := ls.Run(state, d, iter)
		if !ok {
			state.Status = StatusFailed
			return state
		}
		state.D = d
		state.T = t
		updated := state.UpdateIfBetter(x, g, f)
		logger.Debugw("smooth iteration", "iter", iter, "f", state.F, "step", t, "updated", updated)
		if !updated {
			state.Status = StatusDiverged
			return state
		}
		if checkCancelled(ctx, monitor, state) {
			return state
		}
	}
}
