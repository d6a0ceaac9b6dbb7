package solver

import (
	"context"
	"math"

	"github.com/accosmin-org/nanogo/config"
	"github.com/accosmin-org/nanogo/function"
	"github.com/accosmin-org/nanogo/logging"
)

// GSample is the gradient sampling method: at each iterate it samples m
// extra points uniformly inside the axis-aligned cube of half-width
// radius around x (not a Euclidean ball), collects
// their subgradients together with g(x), and steps along the negative
// of the minimum-norm element of their convex hull (a descent direction
// whenever x is not a stationary point of the eps-subdifferential). The
// minimum-norm element is found with a Frank-Wolfe iteration over the
// probability simplex rather than a general QP solver, since the bundle
// size m is small.
type GSample struct {
	nonsmoothBase
	samples *config.Parameter
	radius  *config.Parameter
	alpha   *config.Parameter
	rng     *randSource
}

// NewGSample builds a GSample solver with default sample count and ball
// radius, seeded deterministically (spec §5: components own their PRNG).
func NewGSample(seed uint64) *GSample {
	g := &GSample{nonsmoothBase: newNonsmoothBase("gsample")}
	m, _ := config.NewInt("gsample::samples", config.Closed(1, 1000), 10)
	r, _ := config.NewFloat("gsample::radius", config.Open(0, math.Inf(1)), 1e-3)
	a, _ := config.NewFloat("gsample::alpha", config.Open(0, math.Inf(1)), 1.0)
	g.Register(m)
	g.Register(r)
	g.Register(a)
	g.samples, g.radius, g.alpha = m, r, a
	g.rng = newRandSource(seed)
	return g
}

func (g *GSample) Name() string { return "gsample" }

func (g *GSample) Minimize(ctx context.Context, f function.Function, x0 []float64, logger logging.Logger, monitor Monitor) *State {
	if logger == nil {
		logger = logging.NopLogger()
	}
	state := NewState(f, x0)
	n := f.Size()
	x := append([]float64(nil), state.X...)
	gx := append([]float64(nil), state.G...)
	radius := g.radius.Float()

	for iter := 0; ; iter++ {
		if g.checkStop(state) {
			return state
		}

		m := int(g.samples.Int())
		grads := make([][]float64, 0, m+1)
		grads = append(grads, append([]float64(nil), gx...))
		for k := 0; k < m; k++ {
			xp := make([]float64, n)
			for i := range xp {
				xp[i] = x[i] + radius*(2*g.rng.float64()-1)
			}
			gp := make([]float64, n)
			f.Evaluate(xp, gp)
			grads = append(grads, gp)
		}

		d := negMinNormConvexCombo(grads, 50)
		dnorm := norm2(d)
		if dnorm < 1e-14 {
			state.Status = StatusConverged
			return state
		}

		step := g.alpha.Float() / math.Sqrt(float64(iter)+1)
		xNext := make([]float64, n)
		for i := range xNext {
			xNext[i] = x[i] + step*d[i]/dnorm
		}
		gNext := make([]float64, n)
		fNext := f.Evaluate(xNext, gNext)

		// Spec §4.5: shrink the sampling radius whenever the step fails to
		// make progress, rather than keeping it fixed for the whole run.
		if fNext >= state.F {
			radius = math.Max(radius*0.5, 1e-10)
		}

		state.T = step
		state.UpdateIfBetter(xNext, gNext, fNext)

		x, gx = xNext, gNext
		if checkCancelled(ctx, monitor, state) {
			return state
		}
	}
}

// negMinNormConvexCombo returns -v where v is an approximate minimum
// Euclidean-norm element of the convex hull of vectors, found by
// Frank-Wolfe steps over the probability simplex.
func negMinNormConvexCombo(vectors [][]float64, iters int) []float64 {
	n := len(vectors[0])
	k := len(vectors)
	weights := make([]float64, k)
	for i := range weights {
		weights[i] = 1.0 / float64(k)
	}
	v := combine(vectors, weights, n)

	for t := 0; t < iters; t++ {
		best, bestIdx := math.Inf(1), 0
		for i, g := range vectors {
			val := dotProduct(v, g)
			if val < best {
				best, bestIdx = val, i
			}
		}
		gamma := 2.0 / float64(t+2)
		for i := range weights {
			weights[i] *= 1 - gamma
		}
		weights[bestIdx] += gamma
		v = combine(vectors, weights, n)
	}

	out := make([]float64, n)
	for i := range out {
		out[i] = -v[i]
	}
	return out
}

func combine(vectors [][]float64, weights []float64, n int) []float64 {
	out := make([]float64, n)
	for i, w := range weights {
		if w == 0 {
			continue
		}
		for j := 0; j < n; j++ {
			out[j] += w * vectors[i][j]
		}
	}
	return out
}

// randSource is a small deterministic PRNG (xorshift64) so every
// stochastic component owns its own generator instance instead of
// sharing process-global randomness (spec §5).
type randSource struct{ state uint64 }

func newRandSource(seed uint64) *randSource {
	if seed == 0 {
		seed = 0x9e3779b97f4a7c15
	}
	return &randSource{state: seed}
}

func (r *randSource) next() uint64 {
	r.state ^= r.state << 13
	r.state ^= r.state >> 7
	r.state ^= r.state << 17
	return r.state
}

func (r *randSource) float64() float64 {
	return float64(r.next()>>11) / float64(1<<53)
}

func init() {
	register("gsample", func() Solver { return NewGSample(42) })
}
