// Package config implements the named, bounded, typed parameters attached
// to every solver, model, tuner and splitter in nanogo, following the
// configurable_t/parameter_t pattern of the original library.
package config

import (
	"fmt"
	"math"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"

	"github.com/accosmin-org/nanogo/stream"
)

// Kind is the declared type of a Parameter's value.
type Kind int

const (
	KindInt Kind = iota
	KindFloat
	KindEnum
	KindPairInt
	KindPairFloat
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindEnum:
		return "enum"
	case KindPairInt:
		return "pair-int"
	case KindPairFloat:
		return "pair-float"
	default:
		return "unknown"
	}
}

// Comparison is one edge of a Bounds interval.
type Comparison int

const (
	LE Comparison = iota // <=
	LT                   // <
)

// Bounds encodes an open/closed lower and upper limit, mirroring
// parameter_t::make_{integer,scalar}(lo, LE|LT, value, LE|LT, hi).
type Bounds struct {
	Lo, Hi     float64
	LoCmp      Comparison
	HiCmp      Comparison
	HasLo      bool
	HasHi      bool
}

// Unbounded returns a Bounds accepting any value except NaN.
func Unbounded() Bounds { return Bounds{} }

// Closed returns a Bounds with closed [lo, hi] limits.
func Closed(lo, hi float64) Bounds {
	return Bounds{Lo: lo, Hi: hi, LoCmp: LE, HiCmp: LE, HasLo: true, HasHi: true}
}

// Open returns a Bounds with open (lo, hi) limits.
func Open(lo, hi float64) Bounds {
	return Bounds{Lo: lo, Hi: hi, LoCmp: LT, HiCmp: LT, HasLo: true, HasHi: true}
}

// Contains reports whether v satisfies the declared bounds.
func (b Bounds) Contains(v float64) bool {
	if math.IsNaN(v) {
		return false
	}
	if b.HasLo {
		if b.LoCmp == LE && v < b.Lo {
			return false
		}
		if b.LoCmp == LT && v <= b.Lo {
			return false
		}
	}
	if b.HasHi {
		if b.HiCmp == LE && v > b.Hi {
			return false
		}
		if b.HiCmp == LT && v >= b.Hi {
			return false
		}
	}
	return true
}

func (b Bounds) String() string {
	if !b.HasLo && !b.HasHi {
		return "(-inf,+inf)"
	}
	lo, hi := "-inf", "+inf"
	lb, rb := "(", ")"
	if b.HasLo {
		lo = fmt.Sprintf("%g", b.Lo)
		if b.LoCmp == LE {
			lb = "["
		}
	}
	if b.HasHi {
		hi = fmt.Sprintf("%g", b.Hi)
		if b.HiCmp == LE {
			rb = "]"
		}
	}
	return lb + lo + "," + hi + rb
}

// Parameter is a (name, kind, bounds, value) tuple. Value always lies
// inside Bounds once set through Set.
type Parameter struct {
	Name   string
	Kind   Kind
	Bounds Bounds
	Enum   []string // valid values when Kind == KindEnum

	value float64
	enum  string
}

// NewFloat builds a float64-valued parameter with the given default.
func NewFloat(name string, bounds Bounds, value float64) (*Parameter, error) {
	p := &Parameter{Name: name, Kind: KindFloat, Bounds: bounds}
	if err := p.Set(value); err != nil {
		return nil, err
	}
	return p, nil
}

// NewInt builds an int-valued parameter with the given default.
func NewInt(name string, bounds Bounds, value int64) (*Parameter, error) {
	p := &Parameter{Name: name, Kind: KindInt, Bounds: bounds}
	if err := p.Set(float64(value)); err != nil {
		return nil, err
	}
	return p, nil
}

// NewEnum builds an enum-valued parameter restricted to values.
func NewEnum(name string, values []string, value string) (*Parameter, error) {
	p := &Parameter{Name: name, Kind: KindEnum, Enum: append([]string(nil), values...)}
	if err := p.SetEnum(value); err != nil {
		return nil, err
	}
	return p, nil
}

// Set assigns a numeric value, rejecting it if it violates Bounds.
func (p *Parameter) Set(v float64) error {
	if p.Kind == KindEnum {
		return errors.Errorf("config: parameter %q is enum-valued, use SetEnum", p.Name)
	}
	if !p.Bounds.Contains(v) {
		return errors.Errorf("config: parameter %q value %g outside bounds %s", p.Name, v, p.Bounds)
	}
	p.value = v
	return nil
}

// SetEnum assigns an enum value, rejecting values outside Enum.
func (p *Parameter) SetEnum(v string) error {
	if p.Kind != KindEnum {
		return errors.Errorf("config: parameter %q is not enum-valued", p.Name)
	}
	for _, e := range p.Enum {
		if e == v {
			p.enum = v
			return nil
		}
	}
	return errors.Errorf("config: parameter %q value %q not in %v", p.Name, v, p.Enum)
}

// Float returns the numeric value.
func (p *Parameter) Float() float64 { return p.value }

// Int returns the numeric value truncated to int64.
func (p *Parameter) Int() int64 { return int64(p.value) }

// String returns the enum value.
func (p *Parameter) String() string { return p.enum }

// WriteTo implements stream.Codec.
func (p *Parameter) WriteTo(w *stream.Writer) error {
	w.WriteString(p.Name)
	w.WriteInt64(int64(p.Kind))
	if p.Kind == KindEnum {
		w.WriteString(p.enum)
	} else {
		w.WriteFloat64(p.value)
	}
	return w.Err()
}

// ReadFrom implements stream.Codec. The receiver's Kind/Bounds/Enum must
// already be configured to match the stream (the caller owns the
// Configurable's parameter list); ReadFrom only restores the value.
func (p *Parameter) ReadFrom(r *stream.Reader) error {
	name := r.ReadString()
	kind := Kind(r.ReadInt64())
	if r.Err() != nil {
		return r.Err()
	}
	if name != p.Name || kind != p.Kind {
		return errors.Errorf("config: stream parameter %q/%s does not match expected %q/%s", name, kind, p.Name, p.Kind)
	}
	if p.Kind == KindEnum {
		return p.SetEnum(r.ReadString())
	}
	return p.Set(r.ReadFloat64())
}

// BindFlag registers a pflag.Flag for this parameter under name,
// implementing the CLI binding described in spec §6
// (`component::param = value`).
func (p *Parameter) BindFlag(fs *pflag.FlagSet, flagName string) {
	switch p.Kind {
	case KindEnum:
		fs.String(flagName, p.enum, fmt.Sprintf("%s (one of %v)", p.Name, p.Enum))
	case KindInt, KindPairInt:
		fs.Int64(flagName, p.Int(), fmt.Sprintf("%s %s", p.Name, p.Bounds))
	default:
		fs.Float64(flagName, p.Float(), fmt.Sprintf("%s %s", p.Name, p.Bounds))
	}
}
