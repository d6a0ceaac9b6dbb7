package config

import (
	"bytes"
	"testing"

	"go.viam.com/test"

	"github.com/accosmin-org/nanogo/stream"
)

func TestBoundsContains(t *testing.T) {
	b := Closed(0, 1)
	test.That(t, b.Contains(0), test.ShouldBeTrue)
	test.That(t, b.Contains(1), test.ShouldBeTrue)
	test.That(t, b.Contains(-0.1), test.ShouldBeFalse)

	o := Open(0, 1)
	test.That(t, o.Contains(0), test.ShouldBeFalse)
	test.That(t, o.Contains(0.5), test.ShouldBeTrue)
}

func TestParameterSetOutOfBounds(t *testing.T) {
	p, err := NewFloat("solver::epsilon", Closed(0, 1), 0.5)
	test.That(t, err, test.ShouldBeNil)

	test.That(t, p.Set(2), test.ShouldNotBeNil)
	test.That(t, p.Float(), test.ShouldEqual, 0.5)
	test.That(t, p.Set(0.9), test.ShouldBeNil)
	test.That(t, p.Float(), test.ShouldEqual, 0.9)
}

func TestParameterEnum(t *testing.T) {
	p, err := NewEnum("lsearchk::interpolation", []string{"bisection", "quadratic", "cubic"}, "quadratic")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, p.SetEnum("nonsense"), test.ShouldNotBeNil)
	test.That(t, p.SetEnum("cubic"), test.ShouldBeNil)
	test.That(t, p.String(), test.ShouldEqual, "cubic")
}

func TestConfigurableDuplicateRegisterPanics(t *testing.T) {
	defer func() {
		test.That(t, recover(), test.ShouldNotBeNil)
	}()
	c := NewConfigurable("gd")
	p1, _ := NewFloat("gd::epsilon", Unbounded(), 1e-6)
	p2, _ := NewFloat("gd::epsilon", Unbounded(), 1e-6)
	c.Register(p1)
	c.Register(p2)
}

func TestConfigurableRoundTrip(t *testing.T) {
	c := NewConfigurable("lbfgs")
	p1, _ := NewInt("lbfgs::history", Closed(1, 30), 6)
	p2, _ := NewFloat("lbfgs::epsilon", Closed(0, 1), 1e-6)
	c.Register(p1)
	c.Register(p2)
	test.That(t, p1.Set(10), test.ShouldBeNil)

	var buf bytes.Buffer
	w := stream.NewWriter(&buf)
	test.That(t, c.WriteTo(w), test.ShouldBeNil)

	other := NewConfigurable("lbfgs")
	q1, _ := NewInt("lbfgs::history", Closed(1, 30), 6)
	q2, _ := NewFloat("lbfgs::epsilon", Closed(0, 1), 1e-6)
	other.Register(q1)
	other.Register(q2)

	r := stream.NewReader(&buf)
	test.That(t, other.ReadFrom(r), test.ShouldBeNil)
	test.That(t, q1.Int(), test.ShouldEqual, int64(10))
	test.That(t, q2.Float(), test.ShouldEqual, p2.Float())
}

func TestTrackerUnused(t *testing.T) {
	c := NewConfigurable("gd")
	p1, _ := NewFloat("gd::epsilon", Unbounded(), 1e-6)
	c.Register(p1)

	tr := NewTracker()
	tr.Touch(&c)
	unused := tr.Unused([]string{"gd::epsilon", "gd::typo"})
	test.That(t, unused, test.ShouldResemble, []string{"gd::typo"})
}
