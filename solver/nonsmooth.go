package solver

import (
	"math"

	"github.com/accosmin-org/nanogo/config"
)

// nonsmoothBase holds the parameters shared by every nonsmooth solver
// (spec §4.5): a max_evals budget and a patience-based value-test
// stopping rule, since subgradient norms do not vanish near a nonsmooth
// minimizer the way gradients do for smooth problems.
type nonsmoothBase struct {
	config.Configurable

	epsilon  *config.Parameter
	patience *config.Parameter
	maxEvals *config.Parameter
}

func newNonsmoothBase(id string) nonsmoothBase {
	b := nonsmoothBase{Configurable: config.NewConfigurable(id)}
	eps, _ := config.NewFloat(id+"::epsilon", config.Open(0, 1), 1e-6)
	pat, _ := config.NewInt(id+"::patience", config.Closed(1, 1000), 20)
	me, _ := config.NewInt(id+"::max_evals", config.Closed(1, math.MaxInt32), 2000)
	b.Register(eps)
	b.Register(pat)
	b.Register(me)
	b.epsilon, b.patience, b.maxEvals = eps, pat, me
	return b
}

func (b *nonsmoothBase) checkStop(state *State) bool {
	if state.ValueTest(int(b.patience.Int())) <= b.epsilon.Float() {
		state.Status = StatusConverged
		return true
	}
	if state.Fn.Counters().Total() >= b.maxEvals.Int() {
		state.Status = StatusMaxIters
		return true
	}
	return false
}

func norm2(v []float64) float64 {
	return math.Sqrt(dotProduct(v, v))
}
