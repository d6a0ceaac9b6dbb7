// Package benchmark is the corpus of test functions from spec §4.1: a
// registry of classic smooth and nonsmooth optimization benchmarks used
// throughout the solver test suites.
package benchmark

import (
	"math"

	"github.com/pkg/errors"

	"github.com/accosmin-org/nanogo/function"
)

// Builder constructs a benchmark function of dimension n.
type Builder func(n int) function.Function

var registry = map[string]Builder{}

func register(name string, b Builder) { registry[name] = b }

// New builds the named benchmark function at dimension n.
func New(name string, n int) (function.Function, error) {
	b, ok := registry[name]
	if !ok {
		return nil, errors.Errorf("benchmark: unknown function %q", name)
	}
	return b(n), nil
}

// Names lists every registered benchmark id.
func Names() []string {
	out := make([]string, 0, len(registry))
	for name := range registry {
		out = append(out, name)
	}
	return out
}

// Type classifies a benchmark by its convexity/smoothness, used to drive
// the (min_dim, max_dim, type_filter) enumeration from spec §4.1.
type Type int

const (
	TypeAny Type = iota
	TypeConvexSmooth
	TypeConvexNonsmooth
	TypeNonconvexSmooth
)

var types = map[string]Type{}

func registerType(name string, t Type) { types[name] = t }

// Enumerate returns every registered function whose dimension supports
// [minDim, maxDim] and whose declared Type matches filter (TypeAny
// matches everything), instantiated at the smallest dimension in range.
func Enumerate(minDim, maxDim int, filter Type) []function.Function {
	var out []function.Function
	for name, b := range registry {
		if filter != TypeAny && types[name] != filter {
			continue
		}
		n := minDim
		if n < 1 {
			n = 1
		}
		if n > maxDim {
			continue
		}
		out = append(out, b(n))
	}
	return out
}

func init() {
	register("sphere", newSphere)
	registerType("sphere", TypeConvexSmooth)
	register("rosenbrock", newRosenbrock)
	registerType("rosenbrock", TypeNonconvexSmooth)
	register("powell", newPowell)
	registerType("powell", TypeNonconvexSmooth)
	register("trid", newTrid)
	registerType("trid", TypeConvexSmooth)
	register("qing", newQing)
	registerType("qing", TypeNonconvexSmooth)
	register("cauchy", newCauchy)
	registerType("cauchy", TypeNonconvexSmooth)
	register("kinks", newKinks)
	registerType("kinks", TypeConvexNonsmooth)
	register("chained-lq", newChainedLQ)
	registerType("chained-lq", TypeConvexNonsmooth)
	register("chained-cb3ii", newChainedCB3II)
	registerType("chained-cb3ii", TypeConvexNonsmooth)
	register("maxq", newMaxQ)
	registerType("maxq", TypeConvexNonsmooth)
	register("maxhilb", newMaxHilb)
	registerType("maxhilb", TypeConvexNonsmooth)
	register("sargan", newSargan)
	registerType("sargan", TypeConvexSmooth)
	register("zakharov", newZakharov)
	registerType("zakharov", TypeConvexSmooth)
	register("schumer-steiglitz", newSchumerSteiglitz)
	registerType("schumer-steiglitz", TypeConvexSmooth)
	register("geometric", newGeometric)
	registerType("geometric", TypeConvexSmooth)
	register("axis-ellipsoid", newAxisEllipsoid)
	registerType("axis-ellipsoid", TypeConvexSmooth)
	register("rotated-ellipsoid", newRotatedEllipsoid)
	registerType("rotated-ellipsoid", TypeConvexSmooth)
	register("styblinski-tang", newStyblinskiTang)
	registerType("styblinski-tang", TypeNonconvexSmooth)
	register("chung-reynolds", newChungReynolds)
	registerType("chung-reynolds", TypeConvexSmooth)
	register("dixon-price", newDixonPrice)
	registerType("dixon-price", TypeNonconvexSmooth)
	register("exponential", newExponential)
	registerType("exponential", TypeNonconvexSmooth)
	register("quadratic", newQuadratic)
	registerType("quadratic", TypeConvexSmooth)
}

func fillGrad(g []float64, values ...float64) {
	if g == nil {
		return
	}
	copy(g, values)
}

// --- sphere: f(x) = sum x_i^2 --------------------------------------------

type sphere struct{ function.Base }

func newSphere(n int) function.Function {
	return &sphere{Base: function.NewBase("sphere", n, function.ConvexityYes, true, 2)}
}

func (f *sphere) Evaluate(x, g []float64) float64 {
	f.Tick(len(g) > 0)
	sum := 0.0
	for i, xi := range x {
		sum += xi * xi
		if g != nil {
			g[i] = 2 * xi
		}
	}
	return sum
}

// --- rosenbrock -----------------------------------------------------------

type rosenbrock struct{ function.Base }

func newRosenbrock(n int) function.Function {
	return &rosenbrock{Base: function.NewBase("rosenbrock", n, function.ConvexityNo, true, 0)}
}

func (f *rosenbrock) Evaluate(x, g []float64) float64 {
	f.Tick(len(g) > 0)
	n := len(x)
	sum := 0.0
	if g != nil {
		for i := range g {
			g[i] = 0
		}
	}
	for i := 0; i < n-1; i++ {
		t1 := x[i+1] - x[i]*x[i]
		t2 := 1 - x[i]
		sum += 100*t1*t1 + t2*t2
		if g != nil {
			g[i] += -400*x[i]*t1 - 2*t2
			g[i+1] += 200 * t1
		}
	}
	return sum
}

// --- powell (n must be a multiple of 4) -----------------------------------

type powell struct{ function.Base }

func newPowell(n int) function.Function {
	n = (n / 4) * 4
	if n == 0 {
		n = 4
	}
	return &powell{Base: function.NewBase("powell", n, function.ConvexityNo, true, 0)}
}

func (f *powell) Evaluate(x, g []float64) float64 {
	f.Tick(len(g) > 0)
	sum := 0.0
	if g != nil {
		for i := range g {
			g[i] = 0
		}
	}
	for i := 0; i+3 < len(x); i += 4 {
		x1, x2, x3, x4 := x[i], x[i+1], x[i+2], x[i+3]
		a := x1 + 10*x2
		b := x3 - x4
		c := x2 - 2*x3
		d := x1 - x4
		sum += a*a + 5*b*b + c*c*c*c + 10*d*d*d*d
		if g != nil {
			g[i] += 2*a + 40*d*d*d
			g[i+1] += 20*a + 4*c*c*c
			g[i+2] += 10*b - 8*c*c*c
			g[i+3] += -10*b - 40*d*d*d
		}
	}
	return sum
}

// --- trid: sum (x_i-1)^2 - sum x_i*x_{i-1} --------------------------------

type trid struct{ function.Base }

func newTrid(n int) function.Function {
	return &trid{Base: function.NewBase("trid", n, function.ConvexityYes, true, 0)}
}

func (f *trid) Evaluate(x, g []float64) float64 {
	f.Tick(len(g) > 0)
	sum := 0.0
	if g != nil {
		for i := range g {
			g[i] = 0
		}
	}
	for i, xi := range x {
		d := xi - 1
		sum += d * d
		if g != nil {
			g[i] += 2 * d
		}
		if i > 0 {
			sum -= xi * x[i-1]
			if g != nil {
				g[i] -= x[i-1]
				g[i-1] -= xi
			}
		}
	}
	return sum
}

// --- qing: sum (x_i^2 - i)^2 ----------------------------------------------

type qing struct{ function.Base }

func newQing(n int) function.Function {
	return &qing{Base: function.NewBase("qing", n, function.ConvexityNo, true, 0)}
}

func (f *qing) Evaluate(x, g []float64) float64 {
	f.Tick(len(g) > 0)
	sum := 0.0
	for i, xi := range x {
		t := xi*xi - float64(i+1)
		sum += t * t
		if g != nil {
			g[i] = 4 * t * xi
		}
	}
	return sum
}

// --- cauchy: sum log(1+x_i^2) ----------------------------------------------

type cauchy struct{ function.Base }

func newCauchy(n int) function.Function {
	return &cauchy{Base: function.NewBase("cauchy", n, function.ConvexityNo, true, 0)}
}

func (f *cauchy) Evaluate(x, g []float64) float64 {
	f.Tick(len(g) > 0)
	sum := 0.0
	for i, xi := range x {
		sum += math.Log1p(xi * xi)
		if g != nil {
			g[i] = 2 * xi / (1 + xi*xi)
		}
	}
	return sum
}

// --- kinks: sum |x_i| (nonsmooth convex) -----------------------------------

type kinks struct{ function.Base }

func newKinks(n int) function.Function {
	return &kinks{Base: function.NewBase("kinks", n, function.ConvexityYes, false, 0)}
}

func (f *kinks) Evaluate(x, g []float64) float64 {
	f.Tick(len(g) > 0)
	sum := 0.0
	for i, xi := range x {
		sum += math.Abs(xi)
		if g != nil {
			switch {
			case xi > 0:
				g[i] = 1
			case xi < 0:
				g[i] = -1
			default:
				g[i] = 0
			}
		}
	}
	return sum
}

// --- chained-lq (Lemarechal) -------------------------------------------

type chainedLQ struct{ function.Base }

func newChainedLQ(n int) function.Function {
	if n < 2 {
		n = 2
	}
	return &chainedLQ{Base: function.NewBase("chained-lq", n, function.ConvexityYes, false, 0)}
}

func (f *chainedLQ) Evaluate(x, g []float64) float64 {
	f.Tick(len(g) > 0)
	if g != nil {
		for i := range g {
			g[i] = 0
		}
	}
	sum := 0.0
	for i := 0; i+1 < len(x); i++ {
		a := -x[i] - x[i+1]
		b := -x[i] - x[i+1] + (x[i]*x[i] + x[i+1]*x[i+1] - 1)
		if a >= b {
			sum += a
			if g != nil {
				g[i] += -1
				g[i+1] += -1
			}
		} else {
			sum += b
			if g != nil {
				g[i] += -1 + 2*x[i]
				g[i+1] += -1 + 2*x[i+1]
			}
		}
	}
	return sum
}

// --- chained-cb3ii (Haarala) ---------------------------------------------

type chainedCB3II struct{ function.Base }

func newChainedCB3II(n int) function.Function {
	if n < 2 {
		n = 2
	}
	return &chainedCB3II{Base: function.NewBase("chained-cb3ii", n, function.ConvexityYes, false, 0)}
}

func (f *chainedCB3II) Evaluate(x, g []float64) float64 {
	f.Tick(len(g) > 0)
	if g != nil {
		for i := range g {
			g[i] = 0
		}
	}
	sum := 0.0
	for i := 0; i+1 < len(x); i++ {
		xi, xj := x[i], x[i+1]
		a := xi*xi*xi*xi + xj*xj
		b := (2-xi)*(2-xi) + (2-xj)*(2-xj)
		c := 2 * math.Exp(-xi+xj)
		m := math.Max(a, math.Max(b, c))
		sum += m
		if g == nil {
			continue
		}
		switch m {
		case a:
			g[i] += 4 * xi * xi * xi
			g[i+1] += 2 * xj
		case b:
			g[i] += -2 * (2 - xi)
			g[i+1] += -2 * (2 - xj)
		default:
			g[i] += -c
			g[i+1] += c
		}
	}
	return sum
}

// --- maxq: max_i x_i^2 ------------------------------------------------------

type maxQ struct{ function.Base }

func newMaxQ(n int) function.Function {
	return &maxQ{Base: function.NewBase("maxq", n, function.ConvexityYes, false, 0)}
}

func (f *maxQ) Evaluate(x, g []float64) float64 {
	f.Tick(len(g) > 0)
	best, idx := math.Inf(-1), 0
	for i, xi := range x {
		v := xi * xi
		if v > best {
			best, idx = v, i
		}
	}
	if g != nil {
		for i := range g {
			g[i] = 0
		}
		g[idx] = 2 * x[idx]
	}
	return best
}

// --- maxhilb: max_i (H x)_i, H_ij = 1/(i+j-1) -------------------------------

type maxHilb struct{ function.Base }

func newMaxHilb(n int) function.Function {
	return &maxHilb{Base: function.NewBase("maxhilb", n, function.ConvexityYes, false, 0)}
}

func (f *maxHilb) Evaluate(x, g []float64) float64 {
	f.Tick(len(g) > 0)
	n := len(x)
	best := math.Inf(-1)
	row := make([]float64, n)
	bestRow := make([]float64, n)
	for i := 0; i < n; i++ {
		v := 0.0
		for j := 0; j < n; j++ {
			coef := 1.0 / float64(i+j+1)
			row[j] = coef
			v += coef * x[j]
		}
		if v > best {
			best = v
			copy(bestRow, row)
		}
	}
	if g != nil {
		copy(g, bestRow)
	}
	return best
}

// --- sargan -----------------------------------------------------------------

type sargan struct{ function.Base }

func newSargan(n int) function.Function {
	return &sargan{Base: function.NewBase("sargan", n, function.ConvexityYes, true, 0)}
}

func (f *sargan) Evaluate(x, g []float64) float64 {
	f.Tick(len(g) > 0)
	sumAll := 0.0
	for _, xi := range x {
		sumAll += xi
	}
	sum := 0.0
	for i, xi := range x {
		crossTerm := xi * (sumAll - xi)
		sum += xi*xi + 0.4*crossTerm
		if g != nil {
			// d/dxi [ sum_j xj*(sumAll-xj) ] = d/dxi [ sumAll^2 - sum_j xj^2 ] = 2*(sumAll - xi).
			g[i] = 2*xi + 0.8*(sumAll-xi)
		}
	}
	return sum
}

// --- zakharov ----------------------------------------------------------------

type zakharov struct{ function.Base }

func newZakharov(n int) function.Function {
	return &zakharov{Base: function.NewBase("zakharov", n, function.ConvexityYes, true, 0)}
}

func (f *zakharov) Evaluate(x, g []float64) float64 {
	f.Tick(len(g) > 0)
	sum1, sum2 := 0.0, 0.0
	for i, xi := range x {
		sum1 += xi * xi
		sum2 += 0.5 * float64(i+1) * xi
	}
	val := sum1 + sum2*sum2 + sum2*sum2*sum2*sum2
	if g != nil {
		for i, xi := range x {
			coef := 0.5 * float64(i+1)
			g[i] = 2*xi + (2*sum2+4*sum2*sum2*sum2)*coef
		}
	}
	return val
}

// --- schumer-steiglitz: sum x_i^4 --------------------------------------------

type schumerSteiglitz struct{ function.Base }

func newSchumerSteiglitz(n int) function.Function {
	return &schumerSteiglitz{Base: function.NewBase("schumer-steiglitz", n, function.ConvexityYes, true, 0)}
}

func (f *schumerSteiglitz) Evaluate(x, g []float64) float64 {
	f.Tick(len(g) > 0)
	sum := 0.0
	for i, xi := range x {
		sum += xi * xi * xi * xi
		if g != nil {
			g[i] = 4 * xi * xi * xi
		}
	}
	return sum
}

// --- geometric: log-sum-exp --------------------------------------------------

type geometric struct{ function.Base }

func newGeometric(n int) function.Function {
	return &geometric{Base: function.NewBase("geometric", n, function.ConvexityYes, true, 0)}
}

func (f *geometric) Evaluate(x, g []float64) float64 {
	f.Tick(len(g) > 0)
	m := x[0]
	for _, xi := range x {
		if xi > m {
			m = xi
		}
	}
	sum := 0.0
	exps := make([]float64, len(x))
	for i, xi := range x {
		e := math.Exp(xi - m)
		exps[i] = e
		sum += e
	}
	val := m + math.Log(sum)
	if g != nil {
		for i := range x {
			g[i] = exps[i] / sum
		}
	}
	return val
}

// --- axis-ellipsoid: sum i * x_i^2 -------------------------------------------

type axisEllipsoid struct{ function.Base }

func newAxisEllipsoid(n int) function.Function {
	return &axisEllipsoid{Base: function.NewBase("axis-ellipsoid", n, function.ConvexityYes, true, 2)}
}

func (f *axisEllipsoid) Evaluate(x, g []float64) float64 {
	f.Tick(len(g) > 0)
	sum := 0.0
	for i, xi := range x {
		w := float64(i + 1)
		sum += w * xi * xi
		if g != nil {
			g[i] = 2 * w * xi
		}
	}
	return sum
}

// --- rotated-ellipsoid: sum_i (sum_{j<=i} x_j)^2 -----------------------------

type rotatedEllipsoid struct{ function.Base }

func newRotatedEllipsoid(n int) function.Function {
	return &rotatedEllipsoid{Base: function.NewBase("rotated-ellipsoid", n, function.ConvexityYes, true, 0)}
}

func (f *rotatedEllipsoid) Evaluate(x, g []float64) float64 {
	f.Tick(len(g) > 0)
	n := len(x)
	prefix := make([]float64, n)
	running := 0.0
	for i, xi := range x {
		running += xi
		prefix[i] = running
	}
	sum := 0.0
	for _, p := range prefix {
		sum += p * p
	}
	if g != nil {
		for i := range g {
			g[i] = 0
		}
		for i := 0; i < n; i++ {
			for j := i; j < n; j++ {
				g[i] += 2 * prefix[j]
			}
		}
	}
	return sum
}

// --- styblinski-tang ----------------------------------------------------------

type styblinskiTang struct{ function.Base }

func newStyblinskiTang(n int) function.Function {
	return &styblinskiTang{Base: function.NewBase("styblinski-tang", n, function.ConvexityNo, true, 0)}
}

func (f *styblinskiTang) Evaluate(x, g []float64) float64 {
	f.Tick(len(g) > 0)
	sum := 0.0
	for i, xi := range x {
		sum += xi*xi*xi*xi - 16*xi*xi + 5*xi
		if g != nil {
			g[i] = 0.5 * (4*xi*xi*xi - 32*xi + 5)
		}
	}
	return 0.5 * sum
}

// --- chung-reynolds: (sum x_i^2)^2 --------------------------------------------

type chungReynolds struct{ function.Base }

func newChungReynolds(n int) function.Function {
	return &chungReynolds{Base: function.NewBase("chung-reynolds", n, function.ConvexityYes, true, 0)}
}

func (f *chungReynolds) Evaluate(x, g []float64) float64 {
	f.Tick(len(g) > 0)
	s := 0.0
	for _, xi := range x {
		s += xi * xi
	}
	if g != nil {
		for i, xi := range x {
			g[i] = 4 * s * xi
		}
	}
	return s * s
}

// --- dixon-price ---------------------------------------------------------------

type dixonPrice struct{ function.Base }

func newDixonPrice(n int) function.Function {
	if n < 2 {
		n = 2
	}
	return &dixonPrice{Base: function.NewBase("dixon-price", n, function.ConvexityNo, true, 0)}
}

func (f *dixonPrice) Evaluate(x, g []float64) float64 {
	f.Tick(len(g) > 0)
	if g != nil {
		for i := range g {
			g[i] = 0
		}
	}
	d0 := x[0] - 1
	sum := d0 * d0
	if g != nil {
		g[0] += 2 * d0
	}
	for i := 1; i < len(x); i++ {
		t := 2*x[i]*x[i] - x[i-1]
		w := float64(i + 1)
		sum += w * t * t
		if g != nil {
			g[i] += w * 2 * t * 4 * x[i]
			g[i-1] += w * 2 * t * (-1)
		}
	}
	return sum
}

// --- exponential: -exp(-0.5 sum x_i^2) ------------------------------------------

type exponential struct{ function.Base }

func newExponential(n int) function.Function {
	return &exponential{Base: function.NewBase("exponential", n, function.ConvexityNo, true, 0)}
}

func (f *exponential) Evaluate(x, g []float64) float64 {
	f.Tick(len(g) > 0)
	s := 0.0
	for _, xi := range x {
		s += xi * xi
	}
	e := math.Exp(-0.5 * s)
	val := -e
	if g != nil {
		for i, xi := range x {
			g[i] = e * xi
		}
	}
	return val
}

// --- quadratic: 0.5 x^T x + 1^T x (a generic smooth convex quadratic) -------------

type quadratic struct{ function.Base }

func newQuadratic(n int) function.Function {
	return &quadratic{Base: function.NewBase("quadratic", n, function.ConvexityYes, true, 1)}
}

func (f *quadratic) Evaluate(x, g []float64) float64 {
	f.Tick(len(g) > 0)
	sum := 0.0
	for i, xi := range x {
		sum += 0.5*xi*xi + xi
		if g != nil {
			g[i] = xi + 1
		}
	}
	return sum
}
