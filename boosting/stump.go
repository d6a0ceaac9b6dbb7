package boosting

import (
	"sort"

	"github.com/accosmin-org/nanogo/config"
	"github.com/accosmin-org/nanogo/linear"
	"github.com/accosmin-org/nanogo/tensor"
)

// Stump is a decision-stump weak learner: h(x) = high if
// x[feature] >= threshold, else low. Fit sweeps every feature's sorted
// values for the split maximizing variance reduction.
type Stump struct {
	config.Configurable
	ds        linear.Dataset
	feature   int
	threshold float64
	low, high float64
}

// NewStump builds a Stump learner bound to ds.
func NewStump(ds linear.Dataset) *Stump {
	return &Stump{Configurable: config.NewConfigurable("stump"), ds: ds}
}

func (s *Stump) Name() string { return "stump" }

// Fit implements WeakLearner.
func (s *Stump) Fit(residual []float64, mask *tensor.Mask) float64 {
	rows := maskedRows(mask)
	if len(rows) < 2 {
		return 0
	}
	d := linear.NumFeatures(s.ds)
	base := sumSquares(residual, rows)

	bestGain := 0.0
	for f := 0; f < d; f++ {
		threshold, low, high, sse := bestSplit(s.ds, residual, rows, f)
		gain := base - sse
		if gain > bestGain {
			bestGain, s.feature, s.threshold, s.low, s.high = gain, f, threshold, low, high
		}
	}
	return bestGain
}

// Predict implements WeakLearner.
func (s *Stump) Predict(x []float64) float64 {
	if x[s.feature] >= s.threshold {
		return s.high
	}
	return s.low
}

// bestSplit sweeps the sorted values of feature f over rows, returning
// the threshold/low/high/sse of the best variance-reducing binary split.
func bestSplit(ds linear.Dataset, residual []float64, rows []int, f int) (threshold, low, high, sse float64) {
	type pair struct {
		v float64
		r float64
	}
	sorted := make([]pair, len(rows))
	for i, idx := range rows {
		x, _, _ := ds.Row(idx)
		sorted[i] = pair{v: x[f], r: residual[idx]}
	}
	sort.Slice(sorted, func(a, b int) bool { return sorted[a].v < sorted[b].v })

	n := len(sorted)
	var totalSum, totalSumSq float64
	for _, p := range sorted {
		totalSum += p.r
		totalSumSq += p.r * p.r
	}

	bestSSE := totalSumSq - totalSum*totalSum/float64(n)
	bestThreshold := sorted[0].v
	bestLow, bestHigh := 0.0, totalSum/float64(n)

	var leftSum, leftSumSq float64
	for i := 0; i < n-1; i++ {
		leftSum += sorted[i].r
		leftSumSq += sorted[i].r * sorted[i].r
		if sorted[i].v == sorted[i+1].v {
			continue
		}
		leftN := float64(i + 1)
		rightN := float64(n - i - 1)
		rightSum := totalSum - leftSum
		rightSumSq := totalSumSq - leftSumSq

		leftSSE := leftSumSq - leftSum*leftSum/leftN
		rightSSE := rightSumSq - rightSum*rightSum/rightN
		candidate := leftSSE + rightSSE
		if candidate < bestSSE {
			bestSSE = candidate
			bestThreshold = (sorted[i].v + sorted[i+1].v) / 2
			bestLow = leftSum / leftN
			bestHigh = rightSum / rightN
		}
	}
	return bestThreshold, bestLow, bestHigh, bestSSE
}

func init() {
	register("stump", func(ds linear.Dataset) WeakLearner { return NewStump(ds) })
}
