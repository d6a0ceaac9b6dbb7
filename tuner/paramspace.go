// Package tuner implements the hyper-parameter tuning API from spec
// §4.9: grid-seeded local-search and quadratic-surrogate variants.
package tuner

import "math"

// Scale is the grid-index-to-value mapping for a ParamSpace.
type Scale int

const (
	ScaleLinear Scale = iota
	ScaleLog10
)

// ParamSpace describes one tunable hyper-parameter: a monotone mapping
// from a grid index in [0, Steps) to a value in [Lo, Hi].
type ParamSpace struct {
	Name  string
	Scale Scale
	Lo, Hi float64
	Steps int
}

// Value maps a grid index to a parameter value.
func (p ParamSpace) Value(index int) float64 {
	if p.Steps <= 1 {
		return p.Lo
	}
	t := float64(index) / float64(p.Steps-1)
	switch p.Scale {
	case ScaleLog10:
		lo, hi := math.Log10(p.Lo), math.Log10(p.Hi)
		return math.Pow(10, lo+t*(hi-lo))
	default:
		return p.Lo + t*(p.Hi-p.Lo)
	}
}

// Index maps a value back to the nearest grid index, the "project back
// to grid" step used after the surrogate's continuous minimization.
func (p ParamSpace) Index(value float64) int {
	if p.Steps <= 1 {
		return 0
	}
	var t float64
	switch p.Scale {
	case ScaleLog10:
		lo, hi := math.Log10(p.Lo), math.Log10(p.Hi)
		t = (math.Log10(value) - lo) / (hi - lo)
	default:
		t = (value - p.Lo) / (p.Hi - p.Lo)
	}
	idx := int(math.Round(t * float64(p.Steps-1)))
	if idx < 0 {
		idx = 0
	}
	if idx > p.Steps-1 {
		idx = p.Steps - 1
	}
	return idx
}

// CenterIndex returns the middle grid index, the local-search seed.
func (p ParamSpace) CenterIndex() int { return (p.Steps - 1) / 2 }

// Scaled maps a value to [0,1] in the space's own scale, used by the
// surrogate's quadratic fit so every dimension is comparably weighted.
func (p ParamSpace) Scaled(value float64) float64 {
	switch p.Scale {
	case ScaleLog10:
		lo, hi := math.Log10(p.Lo), math.Log10(p.Hi)
		return (math.Log10(value) - lo) / (hi - lo)
	default:
		return (value - p.Lo) / (p.Hi - p.Lo)
	}
}

// Unscaled maps a [0,1] coordinate back to a value in the space's scale.
func (p ParamSpace) Unscaled(t float64) float64 {
	switch p.Scale {
	case ScaleLog10:
		lo, hi := math.Log10(p.Lo), math.Log10(p.Hi)
		return math.Pow(10, lo+t*(hi-lo))
	default:
		return p.Lo + t*(p.Hi-p.Lo)
	}
}
