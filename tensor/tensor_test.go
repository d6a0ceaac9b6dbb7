package tensor

import (
	"bytes"
	"testing"

	"go.viam.com/test"

	"github.com/accosmin-org/nanogo/stream"
)

func TestNewAndSize(t *testing.T) {
	tn := New(2, 3)
	test.That(t, tn.Dims(), test.ShouldResemble, []int{2, 3})
	test.That(t, tn.Size(), test.ShouldEqual, 6)
	for i := 0; i < tn.Size(); i++ {
		test.That(t, tn.At(i), test.ShouldEqual, 0.0)
	}
}

func TestFromSliceShapeMismatch(t *testing.T) {
	_, err := FromSlice([]float64{1, 2, 3}, 2, 2)
	test.That(t, err, test.ShouldNotBeNil)
}

func TestCloneIndependence(t *testing.T) {
	tn, err := FromSlice([]float64{1, 2, 3, 4}, 2, 2)
	test.That(t, err, test.ShouldBeNil)
	clone := tn.Clone()
	clone.Set(0, 99)
	test.That(t, tn.At(0), test.ShouldEqual, 1.0)
	test.That(t, clone.At(0), test.ShouldEqual, 99.0)
}

func TestMapAliasesCaller(t *testing.T) {
	backing := []float64{1, 2, 3, 4}
	m, err := NewMap(backing, 2, 2)
	test.That(t, err, test.ShouldBeNil)
	m.Data()[0] = 42
	test.That(t, backing[0], test.ShouldEqual, 42.0)
}

func TestTensorStreamRoundTrip(t *testing.T) {
	tn, err := FromSlice([]float64{1, 2, 3, 4, 5, 6}, 2, 3)
	test.That(t, err, test.ShouldBeNil)

	var buf bytes.Buffer
	test.That(t, tn.WriteTo(stream.NewWriter(&buf)), test.ShouldBeNil)

	var restored Tensor
	test.That(t, restored.ReadFrom(stream.NewReader(&buf)), test.ShouldBeNil)
	test.That(t, restored.Dims(), test.ShouldResemble, []int{2, 3})
	test.That(t, restored.Data(), test.ShouldResemble, tn.Data())
}

func TestMaskSetClearTest(t *testing.T) {
	m := NewMask(17)
	test.That(t, len(m.Bytes()), test.ShouldEqual, 3)
	test.That(t, m.Test(5), test.ShouldBeFalse)
	m.Set(5)
	m.Set(16)
	test.That(t, m.Test(5), test.ShouldBeTrue)
	test.That(t, m.Test(16), test.ShouldBeTrue)
	test.That(t, m.Count(), test.ShouldEqual, 2)
	m.Clear(5)
	test.That(t, m.Test(5), test.ShouldBeFalse)
	test.That(t, m.Count(), test.ShouldEqual, 1)
}

func TestMaskClearAll(t *testing.T) {
	m := NewMask(10)
	m.Set(1)
	m.Set(2)
	m.ClearAll()
	test.That(t, m.Count(), test.ShouldEqual, 0)
}
