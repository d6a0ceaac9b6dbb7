// Package function defines the scalar objective contract shared by every
// solver in nanogo: f: R^n -> R with optional gradient and Hessian,
// convexity/smoothness/strong-convexity metadata, and an attached
// constraint set (spec §4.1).
package function

import (
	"sync/atomic"

	"gonum.org/v1/gonum/mat"
)

// Convexity is the declared convexity of a Function.
type Convexity int

const (
	ConvexityIgnore Convexity = iota
	ConvexityYes
	ConvexityNo
)

// Function is the contract every solver minimizes against. Evaluate must
// be safe to call concurrently on the same Function from multiple
// goroutines (design note §5: "the function object is logically
// immutable except for atomic counter increments").
type Function interface {
	// Name is a short human-readable identifier, used in logging and the
	// benchmark registry.
	Name() string
	// Size returns n, the dimension of x.
	Size() int
	// Convexity reports the declared convexity flag.
	Convexity() Convexity
	// Smooth reports whether the gradient is defined everywhere.
	Smooth() bool
	// StrongConvexity returns rho >= 0; rho > 0 implies Convexity() == ConvexityYes.
	StrongConvexity() float64
	// Evaluate returns f(x). If g is non-nil (len(g) == Size()), it is
	// filled with a gradient (any subgradient for nonsmooth functions).
	// Preconditions: len(x) == Size(), len(g) in {0, Size()}.
	Evaluate(x []float64, g []float64) float64
	// Counters returns the function's evaluation counters.
	Counters() *Counters
	// Constraints returns the attached constraint set (never nil; empty
	// when the function is unconstrained).
	Constraints() *Constraints
}

// HessianFunction is implemented by functions that can also provide a
// Hessian.
type HessianFunction interface {
	Function
	// Hessian fills H (n x n) with the Hessian at x and returns f(x).
	Hessian(x []float64, H *mat.Dense) float64
}

// Counters track the monotone non-decreasing evaluation counts required
// by spec §4.1. They use atomics so a Function stays safe to share
// across the concurrency worker pool.
type Counters struct {
	fcalls, gcalls, hcalls atomic.Int64
}

// FCalls returns the number of Evaluate calls.
func (c *Counters) FCalls() int64 { return c.fcalls.Load() }

// GCalls returns the number of Evaluate calls that requested a gradient.
func (c *Counters) GCalls() int64 { return c.gcalls.Load() }

// HCalls returns the number of Hessian calls.
func (c *Counters) HCalls() int64 { return c.hcalls.Load() }

// Total returns fcalls+gcalls+hcalls, the quantity compared against
// max_evals in every solver's stopping test (spec §4.4 step 5).
func (c *Counters) Total() int64 { return c.FCalls() + c.GCalls() + c.HCalls() }

func (c *Counters) tickEval(hasGrad bool) {
	c.fcalls.Add(1)
	if hasGrad {
		c.gcalls.Add(1)
	}
}

func (c *Counters) tickHessian() { c.hcalls.Add(1) }
