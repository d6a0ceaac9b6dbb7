package bundle

import "math"

// epsilon0 / epsilon1 are the numerical safeguards used by the proximal
// parameter update below, matching the original's near-zero guards.
const (
	epsilon0 = 1e-12
	epsilon1 = 1e-12
)

// m1 is the fixed serious-vs-null step acceptance ratio shared by every
// bundle variant (spec §4.5): a trial step is a serious step when
// f(y) <= f(center) - m1*predictedDecrease.
const m1 = 0.5

// proximity tracks the proximal parameter mu following the RQB scheme
// (spec §4.5): mu0 = clamp(5||g||^2/(|f|+eps1), mu0_min, mu0_max), and
// after every serious step mu <- ||nu||^2/(nu.u), nu = g_next-g_curr,
// u = xi + (t/mu)*nu, xi = x_next-x_curr, skipped whenever nu.u is not
// safely positive (the function is not locally strictly convex there).
type proximity struct {
	mu             float64
	mu0Min, mu0Max float64
}

func newProximity(g0 []float64, f0, mu0Min, mu0Max float64) *proximity {
	g2 := 0.0
	for _, gi := range g0 {
		g2 += gi * gi
	}
	mu0 := 5 * g2 / (math.Abs(f0) + epsilon1)
	mu0 = math.Max(mu0Min, math.Min(mu0Max, mu0))
	return &proximity{mu: mu0, mu0Min: mu0Min, mu0Max: mu0Max}
}

// update adjusts mu given the previous center (xn, gn) and the newly
// accepted center (xn1, gn1), reached via a step of length t.
func (p *proximity) update(t float64, xn, xn1, gn, gn1 []float64) {
	n := len(xn)
	nu := make([]float64, n)
	xi := make([]float64, n)
	u := make([]float64, n)
	var nuNu, nuU float64
	for i := 0; i < n; i++ {
		nu[i] = gn1[i] - gn[i]
		xi[i] = xn1[i] - xn[i]
		u[i] = xi[i] + (t/p.mu)*nu[i]
		nuNu += nu[i] * nu[i]
		nuU += nu[i] * u[i]
	}
	if nuU > epsilon0 {
		p.mu = math.Max(p.mu0Min, math.Min(p.mu0Max, nuNu/nuU))
	}
}
