// Package boosting implements the gradient-boosting core from spec §2
// (supplemented from original_source/src/wlearner and src/gboost): a
// factory of weak learners (affine, stump, hinge, table, dtree, step)
// and a GBM driver that accumulates shrunk rounds over subsampled rows,
// early-stopping on a held-out loss.
package boosting

import (
	"fmt"

	"github.com/accosmin-org/nanogo/config"
	"github.com/accosmin-org/nanogo/linear"
	"github.com/accosmin-org/nanogo/tensor"
)

// WeakLearner fits a scalar residual on a masked subset of dataset rows
// (spec §4.10) and predicts a scalar contribution for new feature
// vectors. Grounded on wlearner_t (src/wlearner.cpp): real implementations
// search over scalar features for the best univariate split/fit.
type WeakLearner interface {
	Name() string
	Parameters() []*config.Parameter
	// Fit trains on rows i where mask.Test(i) is true, regressing
	// against residual[i], and returns the in-sample gain (sum-of-squares
	// reduction) achieved.
	Fit(residual []float64, mask *tensor.Mask) (gain float64)
	Predict(x []float64) float64
}

type wbuilder func(ds linear.Dataset) WeakLearner

var registry = map[string]wbuilder{}

func register(name string, b wbuilder) { registry[name] = b }

// Factory builds a named weak learner bound to ds, the dataset whose
// rows Fit's mask/residual indices refer to.
func Factory(name string, ds linear.Dataset) (WeakLearner, error) {
	b, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("boosting: unknown weak learner %q", name)
	}
	return b(ds), nil
}

// Names returns every registered weak-learner id.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	return names
}

// maskedRows collects the row indices for which mask is set.
func maskedRows(mask *tensor.Mask) []int {
	var out []int
	for i := 0; i < mask.Len(); i++ {
		if mask.Test(i) {
			out = append(out, i)
		}
	}
	return out
}

// sumSquares returns sum_i residual[i]^2 over rows.
func sumSquares(residual []float64, rows []int) float64 {
	var s float64
	for _, i := range rows {
		s += residual[i] * residual[i]
	}
	return s
}
