package boosting

import (
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/accosmin-org/nanogo/config"
	"github.com/accosmin-org/nanogo/linear"
	"github.com/accosmin-org/nanogo/splitter"
	"github.com/accosmin-org/nanogo/tensor"
)

// GBM accumulates shrunk weak-learner rounds over subsampled rows,
// stopping early when the held-out loss stops improving. Grounded on
// original_source's gboost driver: `shrinkage * weak-learner` rounds with
// a 0.95 default subsample and patience-bounded early stopping.
type GBM struct {
	config.Configurable
	shrinkage   *config.Parameter
	rounds      *config.Parameter
	subsample   *config.Parameter
	patience    *config.Parameter
	seed        *config.Parameter
	learnerName *config.Parameter

	bias     float64
	learners []WeakLearner
}

// NewGBM builds a GBM with the original's defaults: 0.1 shrinkage, 0.95
// subsample, patience 10.
func NewGBM(learner string) *GBM {
	g := &GBM{Configurable: config.NewConfigurable("gbm")}
	shrinkage, _ := config.NewFloat("gbm::shrinkage", config.Open(0, 1), 0.1)
	rounds, _ := config.NewInt("gbm::rounds", config.Closed(1, 100000), 200)
	subsample, _ := config.NewFloat("gbm::subsample", config.Open(0, 1), 0.95)
	patience, _ := config.NewInt("gbm::patience", config.Closed(1, 1000), 10)
	seed, _ := config.NewInt("gbm::seed", config.Closed(0, 1<<62), 42)
	learnerName, _ := config.NewEnum("gbm::learner", append([]string(nil), Names()...), learner)

	for _, p := range []*config.Parameter{shrinkage, rounds, subsample, patience, seed, learnerName} {
		g.Register(p)
	}
	g.shrinkage, g.rounds, g.subsample = shrinkage, rounds, subsample
	g.patience, g.seed, g.learnerName = patience, seed, learnerName
	return g
}

func (g *GBM) Name() string { return "gbm" }

// Fit trains rounds of the configured weak learner against ds, stopping
// early on held-out loss stagnation.
func (g *GBM) Fit(ds linear.Dataset) error {
	n := ds.NumSamples()
	residual := make([]float64, n)
	g.bias = weightedMean(ds)
	for i := 0; i < n; i++ {
		_, y, _ := ds.Row(i)
		residual[i] = y - g.bias
	}

	holdout, err := splitter.Factory("random")
	if err != nil {
		return err
	}
	splits := holdout.Split(n, 1, uint64(g.seed.Int()))
	train, valid := splits[0].Train, splits[0].Valid

	rng := newGBMRand(uint64(g.seed.Int()) ^ 0x9e3779b97f4a7c15)
	draw := distuv.Bernoulli{P: g.subsample.Float(), Src: rng}
	g.learners = nil

	bestLoss := validationSSE(residual, valid)
	noImprove := 0
	shrinkage := g.shrinkage.Float()

	for round := 0; round < int(g.rounds.Int()); round++ {
		mask := tensor.NewMask(n)
		for _, i := range train {
			if draw.Rand() == 1 {
				mask.Set(i)
			}
		}
		if mask.Count() == 0 {
			continue
		}

		learner, err := Factory(g.learnerName.String(), ds)
		if err != nil {
			return err
		}
		gain := learner.Fit(residual, mask)
		if gain <= 0 {
			break
		}

		for i := 0; i < n; i++ {
			x, _, _ := ds.Row(i)
			residual[i] -= shrinkage * learner.Predict(x)
		}
		g.learners = append(g.learners, learner)

		loss := validationSSE(residual, valid)
		if loss < bestLoss-1e-9 {
			bestLoss = loss
			noImprove = 0
		} else {
			noImprove++
			if noImprove >= int(g.patience.Int()) {
				break
			}
		}
	}
	return nil
}

// Predict implements the accumulated model bias + shrinkage*sum(learners).
func (g *GBM) Predict(x []float64) float64 {
	yhat := g.bias
	shrinkage := g.shrinkage.Float()
	for _, l := range g.learners {
		yhat += shrinkage * l.Predict(x)
	}
	return yhat
}

func weightedMean(ds linear.Dataset) float64 {
	n := ds.NumSamples()
	var sumY, sumW float64
	for i := 0; i < n; i++ {
		_, y, w := ds.Row(i)
		sumY += w * y
		sumW += w
	}
	if sumW == 0 {
		return 0
	}
	return sumY / sumW
}

func validationSSE(residual []float64, valid []int) float64 {
	if len(valid) == 0 {
		return 0
	}
	var sse float64
	for _, i := range valid {
		sse += residual[i] * residual[i]
	}
	return sse / float64(len(valid))
}

// gbmRand is a per-instance xorshift64* generator, independent of every
// other component's PRNG per the no-process-wide-generator policy. It
// implements math/rand/v2's Source (Uint64), the source type
// distuv.Bernoulli draws from, and also math/rand.Source (Int63, Seed).
type gbmRand struct{ state uint64 }

func newGBMRand(seed uint64) *gbmRand {
	if seed == 0 {
		seed = 0x2545F4914F6CDD1D
	}
	return &gbmRand{state: seed}
}

func (r *gbmRand) next() uint64 {
	r.state ^= r.state >> 12
	r.state ^= r.state << 25
	r.state ^= r.state >> 27
	return r.state * 0x2545F4914F6CDD1D
}

// Uint64 implements math/rand/v2.Source.
func (r *gbmRand) Uint64() uint64 { return r.next() }

// Int63 implements math/rand.Source.
func (r *gbmRand) Int63() int64 { return int64(r.next() >> 1) }

// Seed implements math/rand.Source.
func (r *gbmRand) Seed(seed int64) { r.state = uint64(seed) }
