package config

import (
	"github.com/pkg/errors"
	"github.com/spf13/pflag"

	"github.com/accosmin-org/nanogo/stream"
)

// Configurable is the base of every solver, model, tuner and splitter: an
// ordered set of Parameters, unique by name, registered once.
type Configurable struct {
	ID     string
	order  []string
	byName map[string]*Parameter
}

// NewConfigurable builds an empty Configurable tagged with a stable
// factory id (e.g. "lbfgs", "k-fold").
func NewConfigurable(id string) Configurable {
	return Configurable{ID: id, byName: map[string]*Parameter{}}
}

// Register adds p to the set. Registering two parameters with the same
// name is a precondition violation.
func (c *Configurable) Register(p *Parameter) {
	if _, exists := c.byName[p.Name]; exists {
		panic(errors.Errorf("config: duplicate parameter %q registered on %q", p.Name, c.ID))
	}
	if c.byName == nil {
		c.byName = map[string]*Parameter{}
	}
	c.byName[p.Name] = p
	c.order = append(c.order, p.Name)
}

// Parameter looks up a registered parameter by name. It panics on an
// unknown name: every call site names a parameter the component itself
// registered, so a miss is a programming error, not recoverable input.
func (c *Configurable) Parameter(name string) *Parameter {
	p, ok := c.byName[name]
	if !ok {
		panic(errors.Errorf("config: %q has no parameter %q", c.ID, name))
	}
	return p
}

// Parameters returns the registered parameters in registration order.
func (c *Configurable) Parameters() []*Parameter {
	out := make([]*Parameter, 0, len(c.order))
	for _, name := range c.order {
		out = append(out, c.byName[name])
	}
	return out
}

// WriteTo implements stream.Codec: id, count, then each parameter.
func (c *Configurable) WriteTo(w *stream.Writer) error {
	w.WriteString(c.ID)
	w.WriteInt64(int64(len(c.order)))
	for _, p := range c.Parameters() {
		if err := p.WriteTo(w); err != nil {
			return err
		}
	}
	return w.Err()
}

// ReadFrom implements stream.Codec. The receiver must already have its
// parameters registered (matching ID and names); only values are restored.
func (c *Configurable) ReadFrom(r *stream.Reader) error {
	id := r.ReadString()
	n := r.ReadInt64()
	if r.Err() != nil {
		return r.Err()
	}
	if id != c.ID {
		return errors.Errorf("config: stream id %q does not match expected %q", id, c.ID)
	}
	if int(n) != len(c.order) {
		return errors.Errorf("config: stream has %d parameters, expected %d", n, len(c.order))
	}
	for _, p := range c.Parameters() {
		if err := p.ReadFrom(r); err != nil {
			return err
		}
	}
	return nil
}

// BindFlags registers one pflag.Flag per parameter, named after the
// parameter itself, which already reads "<component>::<param>".
func (c *Configurable) BindFlags(fs *pflag.FlagSet) {
	for _, p := range c.Parameters() {
		p.BindFlag(fs, p.Name)
	}
}

// Tracker is a small RAII-like utility (parameter_tracker_t in the
// original) that records which parameters were actually read during a
// run and reports the rest as unused (Unused) — catches typo'd CLI flags.
type Tracker struct {
	used map[string]bool
}

// NewTracker builds an empty Tracker.
func NewTracker() *Tracker { return &Tracker{used: map[string]bool{}} }

// Touch marks every parameter of c as used.
func (t *Tracker) Touch(c *Configurable) {
	for _, p := range c.Parameters() {
		t.used[p.Name] = true
	}
}

// Unused reports which of the provided flag names were never touched.
func (t *Tracker) Unused(flagNames []string) []string {
	var out []string
	for _, name := range flagNames {
		if !t.used[name] {
			out = append(out, name)
		}
	}
	return out
}
