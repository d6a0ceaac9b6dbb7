package solver

import (
	"context"
	"testing"

	"go.viam.com/test"

	"github.com/accosmin-org/nanogo/function/benchmark"
	"github.com/accosmin-org/nanogo/logging"
)

func TestSmoothSolversConvergeOnSphere(t *testing.T) {
	for _, name := range []string{"gd", "ncg", "lbfgs"} {
		s, err := Factory(name)
		test.That(t, err, test.ShouldBeNil)

		f, err := benchmark.New("sphere", 4)
		test.That(t, err, test.ShouldBeNil)

		x0 := []float64{3, -2, 1, 0.5}
		state := s.Minimize(context.Background(), f, x0, logging.NewTestLogger(t), nil)

		test.That(t, state.Status, test.ShouldEqual, StatusConverged)
		test.That(t, state.F, test.ShouldBeLessThan, 1e-6)
	}
}

func TestNewtonFailsWithoutHessian(t *testing.T) {
	s, err := Factory("newton")
	test.That(t, err, test.ShouldBeNil)

	f, err := benchmark.New("sphere", 3)
	test.That(t, err, test.ShouldBeNil)

	state := s.Minimize(context.Background(), f, []float64{1, 1, 1}, logging.NopLogger(), nil)
	test.That(t, state.Status, test.ShouldEqual, StatusFailed)
}

func TestFactoryUnknown(t *testing.T) {
	_, err := Factory("nope")
	test.That(t, err, test.ShouldNotBeNil)
}

func TestMonitorCancelsRun(t *testing.T) {
	s, err := Factory("gd")
	test.That(t, err, test.ShouldBeNil)

	f, err := benchmark.New("axis-ellipsoid", 4)
	test.That(t, err, test.ShouldBeNil)

	calls := 0
	monitor := func(*State) bool {
		calls++
		return calls < 2
	}
	state := s.Minimize(context.Background(), f, []float64{3, 3, 3, 3}, logging.NopLogger(), monitor)
	test.That(t, state.Status, test.ShouldEqual, StatusStopped)
}
