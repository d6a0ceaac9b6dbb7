package boosting

import (
	"sort"

	"github.com/accosmin-org/nanogo/config"
	"github.com/accosmin-org/nanogo/linear"
	"github.com/accosmin-org/nanogo/tensor"
)

// Step is the simplest weak learner: a single constant correction
// applied where x[feature] >= threshold, zero elsewhere. Used as the
// boosting baseline/sanity learner.
type Step struct {
	config.Configurable
	ds        linear.Dataset
	feature   int
	threshold float64
	value     float64
}

// NewStep builds a Step learner bound to ds.
func NewStep(ds linear.Dataset) *Step {
	return &Step{Configurable: config.NewConfigurable("step"), ds: ds}
}

func (s *Step) Name() string { return "step" }

// Fit implements WeakLearner.
func (s *Step) Fit(residual []float64, mask *tensor.Mask) float64 {
	rows := maskedRows(mask)
	if len(rows) < 2 {
		return 0
	}
	d := linear.NumFeatures(s.ds)
	base := sumSquares(residual, rows)

	bestGain := 0.0
	for f := 0; f < d; f++ {
		threshold, value, sse := bestOneSidedStep(s.ds, residual, rows, f)
		gain := base - sse
		if gain > bestGain {
			bestGain, s.feature, s.threshold, s.value = gain, f, threshold, value
		}
	}
	return bestGain
}

// Predict implements WeakLearner.
func (s *Step) Predict(x []float64) float64 {
	if x[s.feature] >= s.threshold {
		return s.value
	}
	return 0
}

// bestOneSidedStep sweeps feature f's sorted values for the threshold
// whose right-side constant best reduces sum-of-squares, the left side
// always predicting zero.
func bestOneSidedStep(ds linear.Dataset, residual []float64, rows []int, f int) (threshold, value, sse float64) {
	type pair struct{ v, r float64 }
	sorted := make([]pair, len(rows))
	for i, idx := range rows {
		x, _, _ := ds.Row(idx)
		sorted[i] = pair{v: x[f], r: residual[idx]}
	}
	sort.Slice(sorted, func(a, b int) bool { return sorted[a].v < sorted[b].v })

	n := len(sorted)
	var leftSumSq float64
	var rightSum, rightSumSq float64
	for _, p := range sorted {
		rightSum += p.r
		rightSumSq += p.r * p.r
	}

	bestSSE := leftSumSq + rightSumSq - rightSum*rightSum/float64(n)
	bestThreshold := sorted[0].v
	bestValue := rightSum / float64(n)

	for i := 0; i < n-1; i++ {
		r := sorted[i].r
		leftSumSq += r * r
		rightSum -= r
		rightSumSq -= r * r
		if sorted[i].v == sorted[i+1].v {
			continue
		}
		rightN := float64(n - i - 1)
		rightSSE := rightSumSq - rightSum*rightSum/rightN
		candidate := leftSumSq + rightSSE
		if candidate < bestSSE {
			bestSSE = candidate
			bestThreshold = (sorted[i].v + sorted[i+1].v) / 2
			bestValue = rightSum / rightN
		}
	}
	return bestThreshold, bestValue, bestSSE
}

func init() {
	register("step", func(ds linear.Dataset) WeakLearner { return NewStep(ds) })
}
