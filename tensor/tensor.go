// Package tensor implements the N-rank dense array and bit-mask data
// model from spec §3: a shared view interface over an owning variant and
// non-owning (map) variants, backed by gorgonia.org/tensor for the
// owning storage.
package tensor

import (
	"github.com/pkg/errors"
	gotensor "gorgonia.org/tensor"

	"github.com/accosmin-org/nanogo/stream"
)

// View is the read-only shape/contents contract shared by every storage
// variant (owning Tensor, mutable Map, const ConstMap). Algorithms that
// only need to read data should take a View, never a concrete type, so
// that no hidden aliasing assumptions creep in (design note §9).
type View interface {
	Dims() []int
	Size() int
	Data() []float64
}

func product(dims []int) int {
	n := 1
	for _, d := range dims {
		n *= d
	}
	return n
}

// Tensor is the owning, row-major dense array of float64 described in
// spec §3 as Tensor<S,R>. Storage lives in a *gorgonia.org/tensor.Dense
// so that higher-rank reshapes/transposes reuse a battle-tested backing
// implementation instead of a hand-rolled strided-array type.
type Tensor struct {
	d *gotensor.Dense
}

// New allocates a zero-initialized owning Tensor with the given rank-R
// shape.
func New(dims ...int) *Tensor {
	if len(dims) == 0 {
		dims = []int{1}
	}
	return &Tensor{d: gotensor.New(gotensor.WithShape(dims...), gotensor.Of(gotensor.Float64))}
}

// FromSlice copies data into a new owning Tensor of the given shape.
// Precondition: product(dims) == len(data).
func FromSlice(data []float64, dims ...int) (*Tensor, error) {
	if product(dims) != len(data) {
		return nil, errors.Errorf("tensor: product(dims)=%d != len(data)=%d", product(dims), len(data))
	}
	backing := make([]float64, len(data))
	copy(backing, data)
	return &Tensor{d: gotensor.New(gotensor.WithShape(dims...), gotensor.WithBacking(backing))}, nil
}

// Dims returns the shape.
func (t *Tensor) Dims() []int {
	shape := t.d.Shape()
	out := make([]int, len(shape))
	copy(out, shape)
	return out
}

// Size returns the total element count, product(Dims()).
func (t *Tensor) Size() int { return t.d.Size() }

// Data returns the owning backing slice, in row-major order. Mutating it
// mutates the Tensor.
func (t *Tensor) Data() []float64 {
	raw, ok := t.d.Data().([]float64)
	if !ok {
		return nil
	}
	return raw
}

// At returns the scalar at the flat row-major index i.
func (t *Tensor) At(i int) float64 { return t.Data()[i] }

// Set assigns the scalar at the flat row-major index i.
func (t *Tensor) Set(i int, v float64) { t.Data()[i] = v }

// Clone deep-copies the Tensor.
func (t *Tensor) Clone() *Tensor {
	cloned, _ := FromSlice(t.Data(), t.Dims()...)
	return cloned
}

// Reshape returns a new owning Tensor viewing the same element count
// under a different shape (gorgonia reshapes in place on a clone so the
// receiver is left untouched).
func (t *Tensor) Reshape(dims ...int) (*Tensor, error) {
	if product(dims) != t.Size() {
		return nil, errors.Errorf("tensor: reshape product(dims)=%d != size=%d", product(dims), t.Size())
	}
	cloned := t.d.Clone().(*gotensor.Dense)
	if err := cloned.Reshape(dims...); err != nil {
		return nil, errors.Wrap(err, "tensor: reshape")
	}
	return &Tensor{d: cloned}, nil
}

// Map is a non-owning, mutable view over a caller-provided slice, per the
// "mutable map" storage variant in spec §3. It never copies or frees.
type Map struct {
	data []float64
	dims []int
}

// NewMap wraps data (not copied) as a Map of the given shape.
func NewMap(data []float64, dims ...int) (*Map, error) {
	if product(dims) != len(data) {
		return nil, errors.Errorf("tensor: map product(dims)=%d != len(data)=%d", product(dims), len(data))
	}
	return &Map{data: data, dims: dims}, nil
}

// Dims returns the shape.
func (m *Map) Dims() []int { out := make([]int, len(m.dims)); copy(out, m.dims); return out }

// Size returns the total element count.
func (m *Map) Size() int { return len(m.data) }

// Data returns the wrapped slice itself (no copy).
func (m *Map) Data() []float64 { return m.data }

// ConstMap is a non-owning, read-only view. Data returns the underlying
// slice for efficiency; callers must treat it as immutable by
// convention, since the language has no const-correctness to enforce it
// (design note §9 calls out that operator-overloading tricks used by the
// original's expression templates don't translate — this is the named
// function / convention-based substitute).
type ConstMap struct {
	data []float64
	dims []int
}

// NewConstMap wraps data (not copied) as a read-only view of the given
// shape.
func NewConstMap(data []float64, dims ...int) (*ConstMap, error) {
	if product(dims) != len(data) {
		return nil, errors.Errorf("tensor: const-map product(dims)=%d != len(data)=%d", product(dims), len(data))
	}
	return &ConstMap{data: data, dims: dims}, nil
}

// Dims returns the shape.
func (m *ConstMap) Dims() []int { out := make([]int, len(m.dims)); copy(out, m.dims); return out }

// Size returns the total element count.
func (m *ConstMap) Size() int { return len(m.data) }

// Data returns the wrapped slice.
func (m *ConstMap) Data() []float64 { return m.data }

// WriteTo implements stream.Codec: (rank, dim0..dimR-1, raw bytes), per
// spec §6.
func (t *Tensor) WriteTo(w *stream.Writer) error {
	dims := t.Dims()
	w.WriteInt64(int64(len(dims)))
	for _, d := range dims {
		w.WriteInt64(int64(d))
	}
	w.WriteFloat64Slice(t.Data())
	return w.Err()
}

// ReadFrom implements stream.Codec, replacing the receiver's contents.
func (t *Tensor) ReadFrom(r *stream.Reader) error {
	rank := r.ReadInt64()
	if r.Err() != nil {
		return r.Err()
	}
	dims := make([]int, rank)
	for i := range dims {
		dims[i] = int(r.ReadInt64())
	}
	data := r.ReadFloat64Slice()
	if r.Err() != nil {
		return r.Err()
	}
	rebuilt, err := FromSlice(data, dims...)
	if err != nil {
		return err
	}
	*t = *rebuilt
	return nil
}
