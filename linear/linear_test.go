package linear

import (
	"math"
	"testing"

	"go.viam.com/test"
)

// syntheticDataset is a noise-free linear generator over d features,
// only the features with a non-zero weight in w affect the target.
type syntheticDataset struct {
	x [][]float64
	y []float64
}

func newSyntheticDataset(n, d int, w []float64, bias float64) *syntheticDataset {
	ds := &syntheticDataset{x: make([][]float64, n), y: make([]float64, n)}
	for i := 0; i < n; i++ {
		row := make([]float64, d)
		for j := 0; j < d; j++ {
			// deterministic, decorrelated-enough feature generator.
			row[j] = math.Sin(float64(i+1)*0.37+float64(j)*1.9) * 3
		}
		ds.x[i] = row
		yhat := bias
		for j, wj := range w {
			yhat += wj * row[j]
		}
		ds.y[i] = yhat
	}
	return ds
}

func (d *syntheticDataset) NumSamples() int { return len(d.x) }

func (d *syntheticDataset) Row(i int) (x []float64, y float64, w float64) {
	return d.x[i], d.y[i], 1
}

func TestLassoSelectsRelevantFeatures(t *testing.T) {
	trueW := []float64{3, -2, 1.5, 0.8, 0, 0, 0, 0, 0, 0}
	bias := 1.25
	ds := newSyntheticDataset(200, len(trueW), trueW, bias)

	m := NewModel(Lasso)
	test.That(t, m.Fit(ds), test.ShouldBeNil)

	for j, wj := range trueW {
		if wj != 0 {
			test.That(t, math.Abs(m.W[j]), test.ShouldBeGreaterThanOrEqualTo, 1e-3)
		} else {
			test.That(t, math.Abs(m.W[j]), test.ShouldBeLessThanOrEqualTo, 1e-6)
		}
	}
	test.That(t, math.Abs(m.B-bias), test.ShouldBeLessThan, 1e-2)
}

func TestOrdinaryRecoversLinearModel(t *testing.T) {
	trueW := []float64{2, -1, 0.5}
	bias := -0.3
	ds := newSyntheticDataset(100, len(trueW), trueW, bias)

	m := NewModel(Ordinary)
	test.That(t, m.Fit(ds), test.ShouldBeNil)
	test.That(t, m.Name(), test.ShouldEqual, "ordinary")

	for j, wj := range trueW {
		test.That(t, m.W[j], test.ShouldAlmostEqual, wj, 1e-2)
	}
	test.That(t, m.B, test.ShouldAlmostEqual, bias, 1e-2)
}

func TestScalerStandardKeepsFeatureCount(t *testing.T) {
	ds := newSyntheticDataset(50, 3, []float64{1, 1, 1}, 0)
	s := FitScaler(ds, ScaleStandard)
	x, _, _ := ds.Row(0)
	scaled := s.Apply(x)
	test.That(t, len(scaled), test.ShouldEqual, 3)
}

func TestLossFactoryUnknown(t *testing.T) {
	_, err := LossFactory("nope")
	test.That(t, err, test.ShouldNotBeNil)
}
