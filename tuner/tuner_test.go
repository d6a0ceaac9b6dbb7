package tuner

import (
	"math"
	"testing"

	"go.viam.com/test"
)

// monotoneSingleParam is a grid-free objective whose minimum lies at the
// high end of its single parameter, matching the spec's testable property.
func monotoneSingleParam(values []float64) float64 {
	return math.Pow(values[0]-10, 2)
}

func TestLocalSearchFindsMonotoneExtremum(t *testing.T) {
	spaces := []ParamSpace{{Name: "x", Scale: ScaleLinear, Lo: 0, Hi: 10, Steps: 11}}
	l := NewLocalSearch()
	steps := l.Tune(spaces, monotoneSingleParam)
	test.That(t, len(steps), test.ShouldBeGreaterThanOrEqualTo, 1)

	best := Best(steps)
	test.That(t, best.Values[0], test.ShouldAlmostEqual, 10.0, 1e-9)
}

func TestLocalSearchRespectsMaxEvals(t *testing.T) {
	spaces := []ParamSpace{
		{Name: "x", Scale: ScaleLinear, Lo: 0, Hi: 10, Steps: 11},
		{Name: "y", Scale: ScaleLinear, Lo: 0, Hi: 10, Steps: 11},
	}
	l := NewLocalSearch()
	test.That(t, l.Parameter("local-search::max_evals").Set(5), test.ShouldBeNil)
	steps := l.Tune(spaces, func(v []float64) float64 {
		return (v[0]-5)*(v[0]-5) + (v[1]-5)*(v[1]-5)
	})
	test.That(t, len(steps), test.ShouldBeLessThanOrEqualTo, 5)
}

func TestSurrogateImprovesOnQuadraticBowl(t *testing.T) {
	spaces := []ParamSpace{
		{Name: "x", Scale: ScaleLinear, Lo: -5, Hi: 5, Steps: 21},
		{Name: "y", Scale: ScaleLinear, Lo: -5, Hi: 5, Steps: 21},
	}
	objective := func(v []float64) float64 {
		return (v[0]-2)*(v[0]-2) + (v[1]+1)*(v[1]+1)
	}

	s := NewSurrogate()
	steps := s.Tune(spaces, objective)
	test.That(t, len(steps), test.ShouldBeGreaterThan, 0)

	best := Best(steps)
	test.That(t, best.Score, test.ShouldBeLessThanOrEqualTo, objective([]float64{-5, -5})+1e-9)
}

func TestFactoryBuildsAllTuners(t *testing.T) {
	for _, name := range []string{"local-search", "surrogate"} {
		tu, err := Factory(name)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, tu.Name(), test.ShouldEqual, name)
	}
}

func TestFactoryUnknownTuner(t *testing.T) {
	_, err := Factory("nope")
	test.That(t, err, test.ShouldNotBeNil)
}

func TestScoreSpreadReflectsDiscrimination(t *testing.T) {
	spaces := []ParamSpace{{Name: "x", Scale: ScaleLinear, Lo: 0, Hi: 10, Steps: 11}}
	l := NewLocalSearch()
	steps := l.Tune(spaces, monotoneSingleParam)

	mean, stddev := ScoreSpread(steps)
	test.That(t, stddev, test.ShouldBeGreaterThan, 0)
	test.That(t, mean, test.ShouldBeGreaterThanOrEqualTo, 0)
}
