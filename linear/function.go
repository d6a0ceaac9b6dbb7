package linear

import "github.com/accosmin-org/nanogo/function"

// ermFunction is the smooth part of spec §4.8's ERM objective,
// F(W, b) = 1/(2N) sum_i w_i*loss(W.x_i+b, y_i) + alpha2/2*||W||^2, with
// x = (W, b) packed as x[0:d]=W, x[d]=b. The L1 term is handled
// separately by proximal gradient descent (ista.go) rather than folded
// into this function's (sub)gradient, so ermFunction is always smooth.
type ermFunction struct {
	function.Base
	ds     Dataset
	loss   Loss
	alpha2 float64
}

func newERMFunction(ds Dataset, loss Loss, alpha2 float64) *ermFunction {
	d := NumFeatures(ds)
	return &ermFunction{
		Base:   function.NewBase("linear-erm", d+1, function.ConvexityYes, true, 0),
		ds:     ds,
		loss:   loss,
		alpha2: alpha2,
	}
}

// Evaluate implements function.Function.
func (f *ermFunction) Evaluate(x, g []float64) float64 {
	f.Tick(g != nil)
	d := len(x) - 1
	w := x[:d]
	b := x[d]

	n := f.ds.NumSamples()
	var totalW float64
	var sumLoss float64
	if g != nil {
		for i := range g {
			g[i] = 0
		}
	}
	for i := 0; i < n; i++ {
		xi, yi, wi := f.ds.Row(i)
		yhat := b
		for j, xv := range xi {
			yhat += w[j] * xv
		}
		sumLoss += wi * f.loss.Value(yhat, yi)
		totalW += wi
		if g != nil {
			dl := wi * f.loss.Gradient(yhat, yi)
			for j, xv := range xi {
				g[j] += dl * xv
			}
			g[d] += dl
		}
	}
	if totalW == 0 {
		totalW = 1
	}
	val := sumLoss / (2 * totalW)
	if g != nil {
		for i := range g[:d+1] {
			g[i] /= 2 * totalW
		}
	}

	for j, wj := range w {
		val += f.alpha2 / 2 * wj * wj
		if g != nil {
			g[j] += f.alpha2 * wj
		}
	}
	return val
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
