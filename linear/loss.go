package linear

import (
	"fmt"
	"math"
)

// Loss is a scalar prediction loss ℓ(y_hat, y), grounded on the
// loss_t hierarchy (mse/mae/cauchy/hinge/logistic in loss.cpp): each
// variant upper-bounds or approximates the true error and supplies the
// derivative wrt the prediction needed to build the ERM gradient.
type Loss interface {
	Name() string
	Value(yhat, y float64) float64
	Gradient(yhat, y float64) float64
}

type lossBuilder func() Loss

var lossRegistry = map[string]lossBuilder{}

func registerLoss(name string, b lossBuilder) { lossRegistry[name] = b }

// LossFactory builds a named Loss.
func LossFactory(name string) (Loss, error) {
	b, ok := lossRegistry[name]
	if !ok {
		return nil, fmt.Errorf("linear: unknown loss %q", name)
	}
	return b(), nil
}

// Squared is mean-squared-error regression loss: ½(y_hat-y)².
type Squared struct{}

func (Squared) Name() string { return "squared" }

func (Squared) Value(yhat, y float64) float64 {
	d := yhat - y
	return 0.5 * d * d
}

func (Squared) Gradient(yhat, y float64) float64 { return yhat - y }

// Absolute is mean-absolute-error regression loss, using sign(yhat-y) as
// a subgradient at the non-differentiable point yhat==y.
type Absolute struct{}

func (Absolute) Name() string { return "absolute" }
func (Absolute) Value(yhat, y float64) float64 { return math.Abs(yhat - y) }
func (Absolute) Gradient(yhat, y float64) float64 {
	d := yhat - y
	switch {
	case d > 0:
		return 1
	case d < 0:
		return -1
	default:
		return 0
	}
}

// Cauchy is the robust Cauchy loss log(1+d²/2), less sensitive to
// outliers than squared error.
type Cauchy struct{}

func (Cauchy) Name() string { return "cauchy" }
func (Cauchy) Value(yhat, y float64) float64 {
	d := yhat - y
	return math.Log1p(0.5 * d * d)
}
func (Cauchy) Gradient(yhat, y float64) float64 {
	d := yhat - y
	return d / (1 + 0.5*d*d)
}

// Hinge is the single-label hinge loss max(0, 1-y*yhat), y in {-1,+1}.
type Hinge struct{}

func (Hinge) Name() string { return "hinge" }
func (Hinge) Value(yhat, y float64) float64 {
	return math.Max(0, 1-y*yhat)
}
func (Hinge) Gradient(yhat, y float64) float64 {
	if 1-y*yhat > 0 {
		return -y
	}
	return 0
}

// Logistic is the single-label logistic loss log(1+exp(-y*yhat)).
type Logistic struct{}

func (Logistic) Name() string { return "logistic" }
func (Logistic) Value(yhat, y float64) float64 {
	return math.Log1p(math.Exp(-y * yhat))
}
func (Logistic) Gradient(yhat, y float64) float64 {
	return -y / (1 + math.Exp(y*yhat))
}

func init() {
	registerLoss("squared", func() Loss { return Squared{} })
	registerLoss("absolute", func() Loss { return Absolute{} })
	registerLoss("cauchy", func() Loss { return Cauchy{} })
	registerLoss("hinge", func() Loss { return Hinge{} })
	registerLoss("logistic", func() Loss { return Logistic{} })
}
