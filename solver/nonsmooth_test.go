package solver

import (
	"context"
	"testing"

	"go.viam.com/test"

	"github.com/accosmin-org/nanogo/function/benchmark"
	"github.com/accosmin-org/nanogo/logging"
)

func TestNonsmoothSolversImproveOnSphere(t *testing.T) {
	for _, name := range []string{"sgm", "ellipsoid", "osga", "gsample"} {
		s, err := Factory(name)
		test.That(t, err, test.ShouldBeNil)

		f, err := benchmark.New("sphere", 3)
		test.That(t, err, test.ShouldBeNil)

		x0 := []float64{2, -1, 0.5}
		f0 := f.Evaluate(x0, make([]float64, 3))

		state := s.Minimize(context.Background(), f, x0, logging.NewTestLogger(t), nil)
		test.That(t, state.Status.Terminal(), test.ShouldBeTrue)
		test.That(t, state.F, test.ShouldBeLessThan, f0)
	}
}
