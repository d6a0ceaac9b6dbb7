// Package stepk implements the Wolfe-condition step refiners from spec
// §4.2: backtrack, morethuente, fletcher, lemarechal, cgdescent.
package stepk

import (
	"math"

	"github.com/accosmin-org/nanogo/config"
	"github.com/accosmin-org/nanogo/linesearch"
)

// Refiner accepts or rejects a trial step, refining it into one
// satisfying (strong) Wolfe conditions.
type Refiner interface {
	Name() string
	// Refine returns (ok, t). f0, dg0 are phi(0), phi'(0) (dg0 < 0). t0 is
	// the initial trial step from a step0.Strategy.
	Refine(phi *linesearch.Phi, f0, dg0, t0 float64) (ok bool, t float64)
}

// Factory builds a named refiner.
func Factory(name string) (Refiner, error) {
	switch name {
	case "backtrack":
		return NewBacktrack(), nil
	case "morethuente":
		return NewMoreThuente(), nil
	case "fletcher":
		return NewFletcher(), nil
	case "lemarechal":
		return NewLemarechal(), nil
	case "cgdescent":
		return NewCGDescent(), nil
	default:
		return nil, &unknownError{name}
	}
}

type unknownError struct{ name string }

func (e *unknownError) Error() string { return "stepk: unknown refiner " + e.name }

// common holds the parameters shared by every refiner: c1, c2,
// max_iterations, tolerance, interpolation. Refiners embed it instead of
// duplicating the registration boilerplate.
type common struct {
	config.Configurable
	c1, c2       *config.Parameter
	maxIters     *config.Parameter
	tolerance    *config.Parameter
	interp       *config.Parameter
}

func newCommon(id string, c1, c2 float64) common {
	c := common{Configurable: config.NewConfigurable(id)}
	p1, _ := config.NewFloat(id+"::c1", config.Open(0, 0.5), c1)
	p2, _ := config.NewFloat(id+"::c2", config.Open(c1, 1), c2)
	pm, _ := config.NewInt(id+"::max_iterations", config.Closed(1, 1000), 50)
	pt, _ := config.NewFloat(id+"::tolerance", config.Open(0, 1), 1e-4)
	pi, _ := config.NewEnum(id+"::interpolation", []string{"bisection", "quadratic", "cubic"}, "cubic")
	c.Register(p1)
	c.Register(p2)
	c.Register(pm)
	c.Register(pt)
	c.Register(pi)
	c.c1, c.c2, c.maxIters, c.tolerance, c.interp = p1, p2, pm, pt, pi
	return c
}

func (c *common) armijo(f0, dg0, t, ft float64) bool {
	return ft <= f0+c.c1.Float()*t*dg0
}

func (c *common) curvature(dg0, gt float64) bool {
	return math.Abs(gt) <= c.c2.Float()*math.Abs(dg0)
}

func clampStep(t float64) float64 {
	if t < linesearch.StpMin {
		return linesearch.StpMin
	}
	if t > linesearch.StpMax {
		return linesearch.StpMax
	}
	return t
}
