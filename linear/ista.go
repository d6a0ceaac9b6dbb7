package linear

import "math"

// ista minimizes F(W,b) = smooth(W,b) + alpha1*||W||_1 by proximal
// gradient descent (ISTA, Beck-Teboulle) with backtracking step size:
// at each iteration it descends the smooth part (squared/ridge-regularized
// loss) then applies the L1 soft-threshold operator to W (never to the
// intercept b). Unlike feeding the L1 subgradient to a generic nonsmooth
// solver, the proximal step drives small coordinates to exact zero,
// which is the property spec §8's feature-selection scenario requires.
func ista(ds Dataset, loss Loss, alpha1, alpha2 float64, maxIters int, epsilon float64) ([]float64, float64, float64) {
	smoothFn := newERMFunction(ds, loss, alpha2)
	d := NumFeatures(ds)
	n := d + 1

	x := make([]float64, n)
	g := make([]float64, n)
	fx := smoothFn.Evaluate(x, g)

	step := 1.0
	for iter := 0; iter < maxIters; iter++ {
		var xNext []float64
		var fNext float64
		for { // backtracking line search on the smooth part only
			xNext = proxStep(x, g, step, alpha1, d)
			gNext := make([]float64, n)
			fNext = smoothFn.Evaluate(xNext, gNext)

			diff := 0.0
			linear := 0.0
			for i := range x {
				dx := xNext[i] - x[i]
				diff += dx * dx
				linear += g[i] * dx
			}
			if fNext <= fx+linear+diff/(2*step) || step < 1e-12 {
				break
			}
			step *= 0.5
		}

		moved := 0.0
		for i := range x {
			dx := xNext[i] - x[i]
			moved += dx * dx
		}
		x, fx = xNext, fNext
		g = make([]float64, n)
		fx = smoothFn.Evaluate(x, g)

		if math.Sqrt(moved)/step < epsilon {
			break
		}
	}

	obj := fx
	for _, wj := range x[:d] {
		obj += alpha1 * abs(wj)
	}
	return append([]float64(nil), x[:d]...), x[d], obj
}

// proxStep takes a gradient-descent step of length t from x along -g,
// then applies the soft-threshold proximal operator of t*alpha1 to the
// first d coordinates (W); the intercept (index d) is left unshrunk.
func proxStep(x, g []float64, t, alpha1 float64, d int) []float64 {
	out := make([]float64, len(x))
	for i := range x {
		z := x[i] - t*g[i]
		if i < d {
			out[i] = softThreshold(z, t*alpha1)
		} else {
			out[i] = z
		}
	}
	return out
}

func softThreshold(v, thresh float64) float64 {
	switch {
	case v > thresh:
		return v - thresh
	case v < -thresh:
		return v + thresh
	default:
		return 0
	}
}
