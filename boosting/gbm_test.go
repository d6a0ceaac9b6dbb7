package boosting

import (
	"math"
	"testing"

	"go.viam.com/test"

	"github.com/accosmin-org/nanogo/tensor"
)

func allMask(n int) *tensor.Mask {
	m := tensor.NewMask(n)
	for i := 0; i < n; i++ {
		m.Set(i)
	}
	return m
}

type sineDataset struct {
	x [][]float64
	y []float64
}

func newSineDataset(n int) *sineDataset {
	ds := &sineDataset{x: make([][]float64, n), y: make([]float64, n)}
	for i := 0; i < n; i++ {
		v := float64(i) / float64(n) * 6
		ds.x[i] = []float64{v}
		ds.y[i] = math.Sin(v)
	}
	return ds
}

func (d *sineDataset) NumSamples() int { return len(d.x) }

func (d *sineDataset) Row(i int) (x []float64, y float64, w float64) {
	return d.x[i], d.y[i], 1
}

func TestWeakLearnerFactoryBuildsAll(t *testing.T) {
	ds := newSineDataset(40)
	for _, name := range []string{"affine", "stump", "hinge", "table", "dtree", "step"} {
		l, err := Factory(name, ds)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, l.Name(), test.ShouldEqual, name)
	}
}

func TestWeakLearnerFactoryUnknown(t *testing.T) {
	_, err := Factory("nope", newSineDataset(10))
	test.That(t, err, test.ShouldNotBeNil)
}

func TestStumpFitsStepFunction(t *testing.T) {
	n := 100
	ds := &sineDataset{x: make([][]float64, n), y: make([]float64, n)}
	for i := range ds.x {
		v := float64(i)
		ds.x[i] = []float64{v}
		if v >= 50 {
			ds.y[i] = 1
		} else {
			ds.y[i] = -1
		}
	}
	s := NewStump(ds)
	mask := allMask(n)
	gain := s.Fit(ds.y, mask)
	test.That(t, gain, test.ShouldBeGreaterThan, 0)
	test.That(t, s.Predict([]float64{60}), test.ShouldAlmostEqual, 1.0, 1e-9)
	test.That(t, s.Predict([]float64{10}), test.ShouldAlmostEqual, -1.0, 1e-9)
}

func TestGBMReducesTrainingResidual(t *testing.T) {
	ds := newSineDataset(120)
	g := NewGBM("stump")
	test.That(t, g.Parameter("gbm::rounds").Set(60), test.ShouldBeNil)
	test.That(t, g.Fit(ds), test.ShouldBeNil)

	var sse float64
	for i := 0; i < ds.NumSamples(); i++ {
		x, y, _ := ds.Row(i)
		d := g.Predict(x) - y
		sse += d * d
	}
	baseline := 0.0
	for i := 0; i < ds.NumSamples(); i++ {
		_, y, _ := ds.Row(i)
		baseline += y * y
	}
	test.That(t, sse, test.ShouldBeLessThan, baseline)
}
