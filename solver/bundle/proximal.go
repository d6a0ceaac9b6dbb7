package bundle

import (
	"context"
	"math"

	"github.com/accosmin-org/nanogo/config"
	"github.com/accosmin-org/nanogo/function"
	"github.com/accosmin-org/nanogo/logging"
	"github.com/accosmin-org/nanogo/solver"
)

// variant parameterizes the shared proximal bundle driver: maxBundle
// caps the cutting-plane model size (0 = unbounded), and accelerate/
// twoTerm select the Nesterov extrapolation sequence that distinguishes
// FPBA1/FPBA2 from the unaccelerated RQB baseline (see sequence.go).
type variant struct {
	id         string
	maxBundle  int
	accelerate bool
	twoTerm    bool
}

// base is the Configurable+driver shared by FPBA1, FPBA2 and RQB: all
// three solve the same cutting-plane dual subproblem and adapt the
// proximal parameter mu via the same RQB update rule (proximity.go);
// FPBA1/FPBA2 additionally extrapolate the trial point along a Nesterov
// sequence (sequence.go), matching how the original expresses them as
// three instantiations of one proximal bundle template differing only
// in bundle size and acceleration sequence.
type base struct {
	config.Configurable
	v variant

	epsilon  *config.Parameter
	patience *config.Parameter
	maxEvals *config.Parameter
	mu0Min   *config.Parameter
	mu0Max   *config.Parameter
}

func newBase(v variant) base {
	b := base{Configurable: config.NewConfigurable(v.id), v: v}
	eps, _ := config.NewFloat(v.id+"::epsilon", config.Open(0, 1), 1e-6)
	pat, _ := config.NewInt(v.id+"::patience", config.Closed(1, 1000), 20)
	me, _ := config.NewInt(v.id+"::max_evals", config.Closed(1, math.MaxInt32), 2000)
	mu0Min, _ := config.NewFloat(v.id+"::mu0_min", config.Open(0, math.Inf(1)), 1e-4)
	mu0Max, _ := config.NewFloat(v.id+"::mu0_max", config.Open(0, math.Inf(1)), 1e6)
	b.Register(eps)
	b.Register(pat)
	b.Register(me)
	b.Register(mu0Min)
	b.Register(mu0Max)
	b.epsilon, b.patience, b.maxEvals = eps, pat, me
	b.mu0Min, b.mu0Max = mu0Min, mu0Max
	return b
}

func (b *base) Name() string { return b.v.id }

// Minimize runs the shared proximal-bundle loop: at every iteration it
// solves the bundle's dual subproblem for a bundle-point direction,
// extrapolates a trial point along the variant's Nesterov sequence,
// evaluates it, and accepts it as a serious step when the realized
// decrease is at least m1 of the model-predicted decrease (spec §4.5);
// otherwise it folds the trial point into the model as a null step.
func (b *base) Minimize(ctx context.Context, f function.Function, x0 []float64, logger logging.Logger, monitor solver.Monitor) *solver.State {
	if logger == nil {
		logger = logging.NopLogger()
	}
	state := solver.NewState(f, x0)
	n := f.Size()

	store := NewStore(b.v.maxBundle)
	store.Add(state.X, state.G, state.F)
	prox := newProximity(state.G, state.F, b.mu0Min.Float(), b.mu0Max.Float())
	seq := newSequence(b.v.accelerate, b.v.twoTerm)

	xCenter := append([]float64(nil), state.X...)
	gCenter := append([]float64(nil), state.G...)
	fCenter := state.F
	prevBundle := append([]float64(nil), state.X...)

	for iter := 0; ; iter++ {
		if b.checkStop(state) {
			return state
		}

		d, aggregateErr := store.Solve(xCenter, fCenter, prox.mu, 50)
		dnorm2 := 0.0
		for _, di := range d {
			dnorm2 += di * di
		}
		predictedDecrease := aggregateErr + prox.mu*dnorm2/2
		if predictedDecrease < b.epsilon.Float()*math.Max(1, math.Abs(fCenter)) {
			state.Status = solver.StatusConverged
			return state
		}

		xBundle := make([]float64, n)
		for i := range xBundle {
			xBundle[i] = xCenter[i] + d[i]
		}
		alpha, beta := seq.next()
		y := make([]float64, n)
		for i := range y {
			y[i] = xBundle[i] + alpha*(xBundle[i]-prevBundle[i])
			if seq.twoTerm {
				y[i] += beta * (prevBundle[i] - xCenter[i])
			}
		}
		prevBundle = xBundle

		gY := make([]float64, n)
		fY := f.Evaluate(y, gY)
		store.Add(y, gY, fY)

		actualDecrease := fCenter - fY
		if actualDecrease >= m1*predictedDecrease {
			// Serious step: recenter, adapt mu from the two centers, reset
			// the model around the new center.
			prox.update(1, xCenter, y, gCenter, gY)
			xCenter, gCenter, fCenter = y, gY, fY
			state.UpdateIfBetter(y, gY, fY)
			store.Reset()
			store.Add(xCenter, gCenter, fCenter)
		}
		// Null step: keep the center, keep the new cutting plane already
		// added to the model above.

		if checkCancelled(ctx, monitor, state) {
			return state
		}
	}
}

func (b *base) checkStop(state *solver.State) bool {
	if state.ValueTest(int(b.patience.Int())) <= b.epsilon.Float() {
		state.Status = solver.StatusConverged
		return true
	}
	if state.Fn.Counters().Total() >= b.maxEvals.Int() {
		state.Status = solver.StatusMaxIters
		return true
	}
	return false
}

func checkCancelled(ctx context.Context, monitor solver.Monitor, state *solver.State) bool {
	if ctx != nil && ctx.Err() != nil {
		state.Status = solver.StatusStopped
		return true
	}
	if monitor != nil && !monitor(state) {
		state.Status = solver.StatusStopped
		return true
	}
	return false
}
