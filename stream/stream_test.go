package stream

import (
	"bytes"
	"testing"

	"go.viam.com/test"
)

func TestRoundTripPrimitives(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	test.That(t, w.WriteVersion(), test.ShouldBeNil)
	w.WriteInt64(-42)
	w.WriteFloat64Slice([]float64{1, 2, 3.5})
	w.WriteString("hello")
	test.That(t, w.Err(), test.ShouldBeNil)

	r := NewReader(&buf)
	v, err := r.ReadVersion()
	test.That(t, err, test.ShouldBeNil)
	test.That(t, v, test.ShouldResemble, Version)
	test.That(t, r.ReadInt64(), test.ShouldEqual, int64(-42))
	test.That(t, r.ReadFloat64Slice(), test.ShouldResemble, []float64{1, 2, 3.5})
	test.That(t, r.ReadString(), test.ShouldEqual, "hello")
	test.That(t, r.Err(), test.ShouldBeNil)
}

func TestVersionMismatch(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	w.WriteUint32(Version.Major + 1)
	w.WriteUint32(0)
	w.WriteUint32(0)

	r := NewReader(&buf)
	_, err := r.ReadVersion()
	test.That(t, err, test.ShouldNotBeNil)
}

func TestTripletNewer(t *testing.T) {
	a := Triplet{Major: 1, Minor: 2, Patch: 3}
	b := Triplet{Major: 1, Minor: 2, Patch: 4}
	test.That(t, b.Newer(a), test.ShouldBeTrue)
	test.That(t, a.Newer(b), test.ShouldBeFalse)
}
