package program

import (
	"testing"

	"go.viam.com/test"
	"gonum.org/v1/gonum/mat"
)

func TestSolveStandardFormLP(t *testing.T) {
	// c = (1,1,1), A = [[2,1,0],[1,0,1]], b = (4,1); x >= 0 expressed as
	// G = -I, h = 0. Known optimum x* = (1,2,0), c^T x* = 3.
	A := mat.NewDense(2, 3, []float64{2, 1, 0, 1, 0, 1})
	G := mat.NewDense(3, 3, []float64{-1, 0, 0, 0, -1, 0, 0, 0, -1})
	p := &Problem{
		Q: []float64{1, 1, 1},
		A: A,
		B: []float64{4, 1},
		G: G,
		H: []float64{0, 0, 0},
	}

	s := NewSolver()
	res := s.Solve(p)

	test.That(t, res.Status.String(), test.ShouldEqual, "converged")
	test.That(t, res.X[0], test.ShouldAlmostEqual, 1.0, 1e-4)
	test.That(t, res.X[1], test.ShouldAlmostEqual, 2.0, 1e-4)
	test.That(t, res.X[2], test.ShouldAlmostEqual, 0.0, 1e-3)
}

func TestSolveQPNocedal162(t *testing.T) {
	// P = I, q = -(2,3,5), A = [[1,1,1]], b = (1); x >= 0.
	P := mat.NewDense(3, 3, []float64{1, 0, 0, 0, 1, 0, 0, 0, 1})
	A := mat.NewDense(1, 3, []float64{1, 1, 1})
	G := mat.NewDense(3, 3, []float64{-1, 0, 0, 0, -1, 0, 0, 0, -1})
	p := &Problem{
		P: P,
		Q: []float64{-2, -3, -5},
		A: A,
		B: []float64{1},
		G: G,
		H: []float64{0, 0, 0},
	}

	s := NewSolver()
	res := s.Solve(p)

	test.That(t, res.Status.String(), test.ShouldEqual, "converged")
	sum := res.X[0] + res.X[1] + res.X[2]
	test.That(t, sum, test.ShouldAlmostEqual, 1.0, 1e-6)
}
