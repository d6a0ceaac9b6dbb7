package solver

import (
	"context"
	"fmt"

	"github.com/accosmin-org/nanogo/config"
	"github.com/accosmin-org/nanogo/function"
	"github.com/accosmin-org/nanogo/logging"
)

// Monitor is invoked at the end of every outer iteration. Returning false
// cancels the run (the returned State gets StatusStopped); a nil Monitor
// never cancels. Solvers must also honor ctx cancellation the same way.
type Monitor func(*State) bool

// Solver is the contract shared by every smooth and nonsmooth minimizer
// (spec §4.4, §4.5): configurable, named, and callable with a starting
// point and an optional monitor.
type Solver interface {
	Name() string
	Parameters() []*config.Parameter
	Minimize(ctx context.Context, f function.Function, x0 []float64, logger logging.Logger, monitor Monitor) *State
}

type builder func() Solver

var registry = map[string]builder{}

func register(name string, b builder) { registry[name] = b }

// Register makes a Solver builder available under name to Factory. It is
// exported so sibling packages (e.g. the proximal-bundle family) can
// register themselves without the core solver package needing to import
// them.
func Register(name string, b func() Solver) { register(name, b) }

// Factory builds a Solver by its registered id, mirroring the
// once-initialized factory pattern used throughout the original library.
func Factory(name string) (Solver, error) {
	b, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("solver: unknown id %q", name)
	}
	return b(), nil
}

// Names returns every registered solver id, in unspecified (map
// iteration) order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	return names
}

// checkCancelled applies ctx and the monitor uniformly; callers invoke it
// once per outer iteration right after a State update.
func checkCancelled(ctx context.Context, monitor Monitor, state *State) bool {
	if ctx != nil && ctx.Err() != nil {
		state.Status = StatusStopped
		return true
	}
	if monitor != nil && !monitor(state) {
		state.Status = StatusStopped
		return true
	}
	return false
}
