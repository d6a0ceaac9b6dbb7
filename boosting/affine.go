package boosting

import (
	"github.com/accosmin-org/nanogo/config"
	"github.com/accosmin-org/nanogo/linear"
	"github.com/accosmin-org/nanogo/tensor"
)

// Affine fits h(x) = weight*x[feature] + bias, picking the single scalar
// feature with the best least-squares fit to the residual.
type Affine struct {
	config.Configurable
	ds      linear.Dataset
	feature int
	weight  float64
	bias    float64
}

// NewAffine builds an Affine learner bound to ds.
func NewAffine(ds linear.Dataset) *Affine {
	return &Affine{Configurable: config.NewConfigurable("affine"), ds: ds}
}

func (a *Affine) Name() string { return "affine" }

// Fit implements WeakLearner.
func (a *Affine) Fit(residual []float64, mask *tensor.Mask) float64 {
	rows := maskedRows(mask)
	if len(rows) == 0 {
		return 0
	}
	d := linear.NumFeatures(a.ds)
	base := sumSquares(residual, rows)

	bestGain := 0.0
	for f := 0; f < d; f++ {
		weight, bias := fitLine(a.ds, residual, rows, f)
		sse := lineSSE(a.ds, residual, rows, f, weight, bias)
		gain := base - sse
		if gain > bestGain {
			bestGain = gain
			a.feature, a.weight, a.bias = f, weight, bias
		}
	}
	return bestGain
}

// Predict implements WeakLearner.
func (a *Affine) Predict(x []float64) float64 {
	return a.weight*x[a.feature] + a.bias
}

func fitLine(ds linear.Dataset, residual []float64, rows []int, feature int) (weight, bias float64) {
	var sx, sy, sxx, sxy float64
	n := float64(len(rows))
	for _, i := range rows {
		x, _, _ := ds.Row(i)
		xv := x[feature]
		sx += xv
		sy += residual[i]
		sxx += xv * xv
		sxy += xv * residual[i]
	}
	meanX, meanY := sx/n, sy/n
	varX := sxx/n - meanX*meanX
	covXY := sxy/n - meanX*meanY
	if varX < 1e-12 {
		return 0, meanY
	}
	weight = covXY / varX
	bias = meanY - weight*meanX
	return weight, bias
}

func lineSSE(ds linear.Dataset, residual []float64, rows []int, feature int, weight, bias float64) float64 {
	var sse float64
	for _, i := range rows {
		x, _, _ := ds.Row(i)
		d := residual[i] - (weight*x[feature] + bias)
		sse += d * d
	}
	return sse
}

func init() {
	register("affine", func(ds linear.Dataset) WeakLearner { return NewAffine(ds) })
}
