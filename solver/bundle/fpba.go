package bundle

import "github.com/accosmin-org/nanogo/solver"

// FPBA1 is the fast proximal bundle algorithm (Ouorou, 2020) using the
// single-term Nesterov sequence to extrapolate trial points, with an
// unbounded cutting-plane model.
type FPBA1 struct{ base }

// NewFPBA1 builds an FPBA1 solver.
func NewFPBA1() *FPBA1 {
	return &FPBA1{base: newBase(variant{id: "fpba1", maxBundle: 0, accelerate: true, twoTerm: false})}
}

// FPBA2 is FPBA1's sibling using the two-term Nesterov sequence, which
// additionally blends the previous bundle point relative to the
// stability center into the extrapolation.
type FPBA2 struct{ base }

// NewFPBA2 builds an FPBA2 solver.
func NewFPBA2() *FPBA2 {
	return &FPBA2{base: newBase(variant{id: "fpba2", maxBundle: 0, accelerate: true, twoTerm: true})}
}

func init() {
	solver.Register("fpba1", func() solver.Solver { return NewFPBA1() })
	solver.Register("fpba2", func() solver.Solver { return NewFPBA2() })
}
