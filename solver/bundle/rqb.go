package bundle

import "github.com/accosmin-org/nanogo/solver"

// RQB is the restricted quadratic bundle variant: the plain proximal
// bundle method (no Nesterov extrapolation) that FPBA1/FPBA2 accelerate,
// capping the cutting-plane model at a fixed number of entries (evicting
// the oldest on overflow) to bound memory on high-dimensional problems.
type RQB struct{ base }

// NewRQB builds an RQB solver with a 15-entry bundle cap.
func NewRQB() *RQB {
	return &RQB{base: newBase(variant{id: "rqb", maxBundle: 15, accelerate: false, twoTerm: false})}
}

func init() {
	solver.Register("rqb", func() solver.Solver { return NewRQB() })
}
