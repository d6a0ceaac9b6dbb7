package linear

import (
	"context"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/accosmin-org/nanogo/config"
	"github.com/accosmin-org/nanogo/logging"
	"github.com/accosmin-org/nanogo/solver"
	"github.com/accosmin-org/nanogo/splitter"
	"github.com/accosmin-org/nanogo/tuner"
)

// Variant selects which of alpha1/alpha2 are fixed at zero vs. tuned.
type Variant int

const (
	Ordinary Variant = iota
	Lasso
	Ridge
	ElasticNet
)

// CVResult is one tuned hyper-parameter candidate and its mean
// cross-validated loss, in the order the tuner produced it.
type CVResult struct {
	Alpha1, Alpha2 float64
	Score          float64
}

// Model is the ERM linear model of spec §4.8: ordinary / lasso / ridge /
// elastic-net, fit by cross-validated hyper-parameter search followed by
// a refit on the full training set.
type Model struct {
	config.Configurable

	variant      Variant
	lossName     *config.Parameter
	scalingName  *config.Parameter
	folds        *config.Parameter
	seed         *config.Parameter
	smoothSolver *config.Parameter
	istaIters    *config.Parameter
	alphaSteps   *config.Parameter

	W         []float64
	B         float64
	TrainLoss float64
	CVResults []CVResult
}

// NewModel builds a Model of the given variant with nanogo's usual
// defaults: standard scaling, 5-fold CV, squared loss, lbfgs for the
// smooth fits and proximal gradient descent (ista) for the L1 fits.
func NewModel(variant Variant) *Model {
	m := &Model{Configurable: config.NewConfigurable("linear"), variant: variant}

	loss, _ := config.NewEnum("linear::loss", []string{"squared", "absolute", "cauchy", "hinge", "logistic"}, "squared")
	scaling, _ := config.NewEnum("linear::scaling", []string{"none", "mean", "minmax", "standard"}, "standard")
	folds, _ := config.NewInt("linear::folds", config.Closed(2, 20), 5)
	seed, _ := config.NewInt("linear::seed", config.Closed(0, 1<<62), 42)
	smooth, _ := config.NewEnum("linear::smooth_solver", []string{"lbfgs", "gd", "ncg", "newton"}, "lbfgs")
	istaIters, _ := config.NewInt("linear::ista_iters", config.Closed(1, 100000), 2000)
	alphaSteps, _ := config.NewInt("linear::alpha_steps", config.Closed(1, 50), 9)

	for _, p := range []*config.Parameter{loss, scaling, folds, seed, smooth, istaIters, alphaSteps} {
		m.Register(p)
	}
	m.lossName, m.scalingName, m.folds, m.seed = loss, scaling, folds, seed
	m.smoothSolver, m.istaIters, m.alphaSteps = smooth, istaIters, alphaSteps
	return m
}

func (m *Model) Name() string {
	switch m.variant {
	case Lasso:
		return "lasso"
	case Ridge:
		return "ridge"
	case ElasticNet:
		return "elasticnet"
	default:
		return "ordinary"
	}
}

// Predict returns W.x + b in the model's native (unscaled) feature space.
func (m *Model) Predict(x []float64) float64 {
	yhat := m.B
	for j, v := range x {
		yhat += m.W[j] * v
	}
	return yhat
}

// Fit implements spec §4.8's four-step pipeline: scale, cross-validate,
// refit, store.
func (m *Model) Fit(ds Dataset) error {
	scaling := Scaling(indexOf([]string{"none", "mean", "minmax", "standard"}, m.scalingName.String()))
	scaler := FitScaler(ds, scaling)
	scaled := newScaledDataset(ds, scaler)

	loss, err := LossFactory(m.lossName.String())
	if err != nil {
		return err
	}

	alpha1, alpha2, err := m.tune(scaled, loss)
	if err != nil {
		return err
	}

	wScaled, b, trainLoss := m.fitOnce(scaled, loss, alpha1, alpha2)
	m.unscale(wScaled, b, scaler)
	m.TrainLoss = trainLoss
	return nil
}

// tune runs cross-validation over the variant's active alpha grid and
// returns the winning (alpha1, alpha2) pair; Ordinary skips tuning.
func (m *Model) tune(ds Dataset, loss Loss) (float64, float64, error) {
	switch m.variant {
	case Ordinary:
		return 0, 0, nil
	case Lasso:
		best, results, err := m.tune1D(ds, loss, true)
		m.CVResults = results
		return best, 0, err
	case Ridge:
		best, results, err := m.tune1D(ds, loss, false)
		m.CVResults = results
		return 0, best, err
	default:
		return m.tune2D(ds, loss)
	}
}

func (m *Model) tune1D(ds Dataset, loss Loss, isAlpha1 bool) (float64, []CVResult, error) {
	space := tuner.ParamSpace{Name: "alpha", Scale: tuner.ScaleLog10, Lo: 1e-4, Hi: 1, Steps: int(m.alphaSteps.Int())}
	var results []CVResult
	objective := func(values []float64) float64 {
		var a1, a2 float64
		if isAlpha1 {
			a1 = values[0]
		} else {
			a2 = values[0]
		}
		score := m.cvScore(ds, loss, a1, a2)
		if isAlpha1 {
			results = append(results, CVResult{Alpha1: a1, Score: score})
		} else {
			results = append(results, CVResult{Alpha2: a2, Score: score})
		}
		return score
	}

	t, err := tuner.Factory("local-search")
	if err != nil {
		return 0, nil, err
	}
	steps := t.Tune([]tuner.ParamSpace{space}, objective)
	best := tuner.Best(steps)
	return best.Values[0], results, nil
}

func (m *Model) tune2D(ds Dataset, loss Loss) (float64, float64, error) {
	steps := int(m.alphaSteps.Int())
	spaces := []tuner.ParamSpace{
		{Name: "alpha1", Scale: tuner.ScaleLog10, Lo: 1e-4, Hi: 1, Steps: steps},
		{Name: "alpha2", Scale: tuner.ScaleLog10, Lo: 1e-4, Hi: 1, Steps: steps},
	}
	objective := func(values []float64) float64 {
		score := m.cvScore(ds, loss, values[0], values[1])
		m.CVResults = append(m.CVResults, CVResult{Alpha1: values[0], Alpha2: values[1], Score: score})
		return score
	}
	t, err := tuner.Factory("local-search")
	if err != nil {
		return 0, 0, err
	}
	out := t.Tune(spaces, objective)
	best := tuner.Best(out)
	return best.Values[0], best.Values[1], nil
}

// cvScore returns the mean held-out loss (regularizer-free) of
// (alpha1, alpha2) averaged over the k-fold splits of ds.
func (m *Model) cvScore(ds Dataset, loss Loss, alpha1, alpha2 float64) float64 {
	sp, err := splitter.Factory("k-fold")
	if err != nil {
		return math.Inf(1)
	}
	splits := sp.Split(ds.NumSamples(), int(m.folds.Int()), uint64(m.seed.Int()))

	scores := make([]float64, len(splits))
	for i, split := range splits {
		train := newSubsetDataset(ds, split.Train)
		w, b, _ := m.fitOnce(train, loss, alpha1, alpha2)
		scores[i] = validationLoss(ds, split.Valid, loss, w, b)
	}
	return stat.Mean(scores, nil)
}

func validationLoss(ds Dataset, indices []int, loss Loss, w []float64, b float64) float64 {
	if len(indices) == 0 {
		return 0
	}
	var sum, weight float64
	for _, idx := range indices {
		x, y, wi := ds.Row(idx)
		yhat := b
		for j, xv := range x {
			yhat += w[j] * xv
		}
		sum += wi * loss.Value(yhat, y)
		weight += wi
	}
	if weight == 0 {
		return 0
	}
	return sum / weight
}

// fitOnce minimizes the ERM function for a fixed (alpha1, alpha2) and
// returns (W, b, final objective value). The L1 term (alpha1 > 0) is
// minimized by proximal gradient descent (ista, see ista.go) so that
// irrelevant features are driven to exact zero; ridge-only and ordinary
// fits go through the configured smooth solver instead.
func (m *Model) fitOnce(ds Dataset, loss Loss, alpha1, alpha2 float64) ([]float64, float64, float64) {
	if alpha1 > 0 {
		return ista(ds, loss, alpha1, alpha2, int(m.istaIters.Int()), 1e-9)
	}

	f := newERMFunction(ds, loss, alpha2)
	x0 := make([]float64, f.Size())

	s, err := solver.Factory(m.smoothSolver.String())
	if err != nil {
		s, _ = solver.Factory("lbfgs")
	}
	state := s.Minimize(context.Background(), f, x0, logging.NopLogger(), nil)

	d := len(state.X) - 1
	w := append([]float64(nil), state.X[:d]...)
	return w, state.X[d], state.F
}

func (m *Model) unscale(wScaled []float64, b float64, scaler *Scaler) {
	w := make([]float64, len(wScaled))
	adjust := b
	for j, wj := range wScaled {
		w[j] = wj / scaler.scale[j]
		adjust -= wj * scaler.offset[j] / scaler.scale[j]
	}
	m.W = w
	m.B = adjust
}

func indexOf(values []string, v string) int {
	for i, s := range values {
		if s == v {
			return i
		}
	}
	return 0
}
