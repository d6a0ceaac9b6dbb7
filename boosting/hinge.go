package boosting

import (
	"math"

	"github.com/accosmin-org/nanogo/config"
	"github.com/accosmin-org/nanogo/linear"
	"github.com/accosmin-org/nanogo/tensor"
)

// Hinge fits h(x) = beta * max(0, sign*(x[feature]-threshold)), a single
// ReLU kink, searching over feature, threshold and sign.
type Hinge struct {
	config.Configurable
	ds        linear.Dataset
	feature   int
	threshold float64
	sign      float64
	beta      float64
}

// NewHinge builds a Hinge learner bound to ds.
func NewHinge(ds linear.Dataset) *Hinge {
	return &Hinge{Configurable: config.NewConfigurable("hinge"), ds: ds}
}

func (h *Hinge) Name() string { return "hinge" }

// Fit implements WeakLearner.
func (h *Hinge) Fit(residual []float64, mask *tensor.Mask) float64 {
	rows := maskedRows(mask)
	if len(rows) < 2 {
		return 0
	}
	d := linear.NumFeatures(h.ds)
	base := sumSquares(residual, rows)

	bestGain := 0.0
	for f := 0; f < d; f++ {
		thresholds := candidateThresholds(h.ds, rows, f)
		for _, threshold := range thresholds {
			for _, sign := range []float64{1, -1} {
				beta, sse := fitHinge(h.ds, residual, rows, f, threshold, sign)
				gain := base - sse
				if gain > bestGain {
					bestGain, h.feature, h.threshold, h.sign, h.beta = gain, f, threshold, sign, beta
				}
			}
		}
	}
	return bestGain
}

// Predict implements WeakLearner.
func (h *Hinge) Predict(x []float64) float64 {
	return h.beta * math.Max(0, h.sign*(x[h.feature]-h.threshold))
}

func candidateThresholds(ds linear.Dataset, rows []int, f int) []float64 {
	seen := map[float64]bool{}
	var out []float64
	for _, i := range rows {
		x, _, _ := ds.Row(i)
		v := x[f]
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}

func fitHinge(ds linear.Dataset, residual []float64, rows []int, f int, threshold, sign float64) (beta, sse float64) {
	var sRelu2, sReluY float64
	relu := make([]float64, len(rows))
	for k, i := range rows {
		x, _, _ := ds.Row(i)
		v := math.Max(0, sign*(x[f]-threshold))
		relu[k] = v
		sRelu2 += v * v
		sReluY += v * residual[i]
	}
	if sRelu2 < 1e-12 {
		return 0, sumSquares(residual, rows)
	}
	beta = sReluY / sRelu2
	for k, i := range rows {
		d := residual[i] - beta*relu[k]
		sse += d * d
	}
	return beta, sse
}

func init() {
	register("hinge", func(ds linear.Dataset) WeakLearner { return NewHinge(ds) })
}
