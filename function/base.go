package function

// Base is an embeddable struct that every concrete Function embeds,
// providing the counters, metadata flags and constraint set so each
// benchmark/model function only has to implement Evaluate (and
// optionally Hessian).
type Base struct {
	name            string
	n               int
	convexity       Convexity
	smooth          bool
	strongConvexity float64
	counters        Counters
	constraints     Constraints
}

// NewBase builds a Base with the given metadata and no constraints.
func NewBase(name string, n int, convexity Convexity, smooth bool, strongConvexity float64) Base {
	return Base{name: name, n: n, convexity: convexity, smooth: smooth, strongConvexity: strongConvexity}
}

// Name implements Function.
func (b *Base) Name() string { return b.name }

// Size implements Function.
func (b *Base) Size() int { return b.n }

// Convexity implements Function.
func (b *Base) Convexity() Convexity { return b.convexity }

// Smooth implements Function.
func (b *Base) Smooth() bool { return b.smooth }

// StrongConvexity implements Function.
func (b *Base) StrongConvexity() float64 { return b.strongConvexity }

// Counters implements Function.
func (b *Base) Counters() *Counters { return &b.counters }

// Constraints implements Function.
func (b *Base) Constraints() *Constraints { return &b.constraints }

// WithConstraints attaches a constraint set (builder-style).
func (b *Base) WithConstraints(c Constraints) {
	b.constraints = c
}

// Tick records one Evaluate call, incrementing fcalls and, when a
// gradient was requested, gcalls. Concrete functions must call this at
// the top of Evaluate.
func (b *Base) Tick(hasGrad bool) { b.counters.tickEval(hasGrad) }

// TickHessian records one Hessian call.
func (b *Base) TickHessian() { b.counters.tickHessian() }
