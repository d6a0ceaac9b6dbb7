package tuner

import (
	"fmt"

	"gonum.org/v1/gonum/stat"

	"github.com/accosmin-org/nanogo/config"
)

// Step is one evaluated grid point: its per-dimension grid index, the
// mapped parameter values and the observed score.
type Step struct {
	Index  []int
	Values []float64
	Score  float64
}

// Objective scores a candidate parameter vector (lower is better,
// matching every solver/CV loss convention in nanogo).
type Objective func(values []float64) float64

// Tuner explores a set of ParamSpaces against a black-box Objective,
// returning the ordered trace of evaluated steps.
type Tuner interface {
	Name() string
	Parameters() []*config.Parameter
	Tune(spaces []ParamSpace, objective Objective) []Step
}

type builder func() Tuner

var registry = map[string]builder{}

func register(name string, b builder) { registry[name] = b }

// Factory builds a named tuner.
func Factory(name string) (Tuner, error) {
	b, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("tuner: unknown id %q", name)
	}
	return b(), nil
}

// Best returns the step with the lowest score, or the zero Step if
// steps is empty.
func Best(steps []Step) Step {
	if len(steps) == 0 {
		return Step{}
	}
	best := steps[0]
	for _, s := range steps[1:] {
		if s.Score < best.Score {
			best = s
		}
	}
	return best
}

// ScoreSpread returns the (mean, stddev) of every step's score, used to
// judge how much a tuning run actually discriminated between candidates.
func ScoreSpread(steps []Step) (mean, stddev float64) {
	if len(steps) == 0 {
		return 0, 0
	}
	scores := make([]float64, len(steps))
	for i, s := range steps {
		scores[i] = s.Score
	}
	mean, std := stat.MeanStdDev(scores, nil)
	return mean, std
}

func valuesOf(spaces []ParamSpace, index []int) []float64 {
	out := make([]float64, len(spaces))
	for i, sp := range spaces {
		out[i] = sp.Value(index[i])
	}
	return out
}

func cloneIndex(index []int) []int {
	return append([]int(nil), index...)
}
