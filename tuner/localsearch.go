package tuner

import "github.com/accosmin-org/nanogo/config"

// LocalSearch seeds with the grid center, then expands a coordinate
// neighborhood by doubling the search radius whenever no improving
// neighbor is found at the current radius, until max_evals is spent or
// the radius exceeds every dimension's grid extent without improving.
type LocalSearch struct {
	config.Configurable
	maxEvals *config.Parameter
}

// NewLocalSearch builds a LocalSearch tuner with the default budget.
func NewLocalSearch() *LocalSearch {
	l := &LocalSearch{Configurable: config.NewConfigurable("local-search")}
	me, _ := config.NewInt("local-search::max_evals", config.Closed(1, 100000), 100)
	l.Register(me)
	l.maxEvals = me
	return l
}

func (l *LocalSearch) Name() string { return "local-search" }

// Tune implements Tuner.
func (l *LocalSearch) Tune(spaces []ParamSpace, objective Objective) []Step {
	center := make([]int, len(spaces))
	for i, sp := range spaces {
		center[i] = sp.CenterIndex()
	}

	var steps []Step
	evaluate := func(index []int) Step {
		values := valuesOf(spaces, index)
		s := Step{Index: cloneIndex(index), Values: values, Score: objective(values)}
		steps = append(steps, s)
		return s
	}

	best := evaluate(center)
	radius := 1
	budget := int(l.maxEvals.Int())

	for len(steps) < budget {
		improved := false
		allOutOfRange := true

		for d := range spaces {
			for _, sign := range []int{-1, 1} {
				if len(steps) >= budget {
					break
				}
				candidate := cloneIndex(best.Index)
				candidate[d] += sign * radius
				if candidate[d] < 0 || candidate[d] >= spaces[d].Steps {
					continue
				}
				allOutOfRange = false
				cand := evaluate(candidate)
				if cand.Score < best.Score {
					best = cand
					improved = true
				}
			}
		}

		if improved {
			radius = 1
			continue
		}
		if allOutOfRange {
			break
		}
		radius *= 2
	}
	return steps
}

func init() {
	register("local-search", func() Tuner { return NewLocalSearch() })
}
