package solver

import (
	"context"
	"math"

	"github.com/accosmin-org/nanogo/config"
	"github.com/accosmin-org/nanogo/function"
	"github.com/accosmin-org/nanogo/logging"
)

// NCG is nonlinear conjugate gradients: d_k = -g_k + beta_k * d_{k-1},
// restarting to steepest descent at k=0 or whenever the resulting d_k is
// not a descent direction. The beta family is
// selected by name, covering the variants surveyed in spec §4.4.
type NCG struct {
	smoothBase
	beta *config.Parameter

	prevD, prevG []float64
}

// NewNCG builds an NCG solver defaulting to the Hager-Zhang ("hz") beta.
func NewNCG() *NCG {
	s := &NCG{smoothBase: newSmoothBase("ncg")}
	beta, _ := config.NewEnum("ncg::beta", []string{
		"hs", "fr", "pr", "prp", "cd", "dy", "ls", "dycd", "dyhs", "frpr", "hz", "n", "dl", "dlplus",
	}, "hz")
	s.Register(beta)
	s.beta = beta
	return s
}

func (s *NCG) Name() string { return "ncg" }

func (s *NCG) Minimize(ctx context.Context, f function.Function, x0 []float64, logger logging.Logger, monitor Monitor) *State {
	if logger == nil {
		logger = logging.NopLogger()
	}
	state := NewState(f, x0)
	s.prevD, s.prevG = nil, nil

	return runLoop(ctx, &s.smoothBase, state, logger, monitor, func(iter int) []float64 {
		n := len(state.G)
		d := make([]float64, n)
		if iter == 0 || s.prevD == nil {
			for i, gi := range state.G {
				d[i] = -gi
			}
		} else {
			beta := computeBeta(s.beta.String(), state.G, s.prevG, s.prevD)
			for i := range d {
				d[i] = -state.G[i] + beta*s.prevD[i]
			}
			if dotProduct(d, state.G) >= 0 {
				// Not a descent direction: restart to steepest descent.
				for i, gi := range state.G {
					d[i] = -gi
				}
			}
		}
		s.prevD = append(s.prevD[:0], d...)
		s.prevG = append(s.prevG[:0], state.G...)
		return d
	})
}

// computeBeta evaluates the named nonlinear-CG update formula from the
// current gradient g, the previous gradient gPrev and the previous
// direction dPrev.
func computeBeta(name string, g, gPrev, dPrev []float64) float64 {
	gg := dotProduct(g, g)
	gPrevgPrev := dotProduct(gPrev, gPrev)
	y := make([]float64, len(g))
	for i := range y {
		y[i] = g[i] - gPrev[i]
	}
	gy := dotProduct(g, y)
	dy := dotProduct(dPrev, y)
	dgPrev := dotProduct(dPrev, gPrev)

	fr := safeDiv(gg, gPrevgPrev)
	pr := safeDiv(gy, gPrevgPrev)
	hs := safeDiv(gy, dy)
	cd := safeDiv(-gg, dgPrev)
	dy_ := safeDiv(gg, dy)
	ls := safeDiv(-gy, dgPrev)

	switch name {
	case "fr":
		return fr
	case "pr":
		return pr
	case "prp":
		return math.Max(0, pr)
	case "hs":
		return hs
	case "cd":
		return cd
	case "dy":
		return dy_
	case "ls":
		return ls
	case "dycd":
		return math.Max(0, math.Min(dy_, cd))
	case "dyhs":
		return math.Max(0, math.Min(dy_, hs))
	case "frpr":
		return math.Max(-fr, math.Min(pr, fr))
	case "n":
		// Hager-Zhang's N formula: beta_N = (y - 2*d*||y||^2/dy).g / dy.
		yy := dotProduct(y, y)
		for i := range y {
			y[i] = y[i] - 2*dPrev[i]*safeDiv(yy, dy)
		}
		return safeDiv(dotProduct(y, g), dy)
	case "dl":
		t := 1.0
		return hs - t*safeDiv(dotProduct(y, dPrev), dotProduct(dPrev, dPrev))
	case "dlplus":
		t := 1.0
		return math.Max(0, hs-t*safeDiv(dotProduct(y, dPrev), dotProduct(dPrev, dPrev)))
	case "hz":
		fallthrough
	default:
		// Hager-Zhang CG_DESCENT beta with the eta safeguard against the
		// denominator vanishing.
		const eta = 0.01
		yy := dotProduct(y, y)
		etak := -1.0 / (dotProduct(dPrev, dPrev) * math.Min(eta, math.Sqrt(gPrevgPrev)))
		betaN := safeDiv(dotProduct(y, g), dy) - 2*safeDiv(yy, dy)*safeDiv(dotProduct(dPrev, g), dy)
		return math.Max(betaN, etak)
	}
}

func safeDiv(a, b float64) float64 {
	if b == 0 {
		return 0
	}
	return a / b
}

func init() {
	register("ncg", func() Solver { return NewNCG() })
}
