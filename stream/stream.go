// Package stream implements the versioned binary framing used to
// (de)serialize every Configurable and Tensor in nanogo: a (major, minor,
// patch) triplet, then the payload, then the parameter list.
package stream

import (
	"encoding/binary"
	"io"
	"math"

	"github.com/pkg/errors"
)

// Version is the running stream format version. Readers reject any stream
// whose triplet is newer than this.
var Version = Triplet{Major: 1, Minor: 0, Patch: 0}

// Triplet is a (major, minor, patch) version marker written as three
// consecutive 32-bit integers.
type Triplet struct {
	Major, Minor, Patch uint32
}

// Newer reports whether t is strictly newer than other.
func (t Triplet) Newer(other Triplet) bool {
	if t.Major != other.Major {
		return t.Major > other.Major
	}
	if t.Minor != other.Minor {
		return t.Minor > other.Minor
	}
	return t.Patch > other.Patch
}

// ErrVersionMismatch is returned by Reader.ReadVersion when the stream's
// triplet is newer than Version.
var ErrVersionMismatch = errors.New("stream: version mismatch")

// Writer frames primitives in row-major, little-endian form.
type Writer struct {
	w   io.Writer
	err error
}

// NewWriter wraps w.
func NewWriter(w io.Writer) *Writer { return &Writer{w: w} }

// Err returns the first error encountered by any Write* call.
func (w *Writer) Err() error { return w.err }

// WriteVersion writes the current package Version.
func (w *Writer) WriteVersion() error {
	w.WriteUint32(Version.Major)
	w.WriteUint32(Version.Minor)
	w.WriteUint32(Version.Patch)
	return w.err
}

// WriteUint32 writes a single uint32.
func (w *Writer) WriteUint32(v uint32) {
	if w.err != nil {
		return
	}
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	_, w.err = w.w.Write(buf[:])
}

// WriteInt64 writes a single int64.
func (w *Writer) WriteInt64(v int64) {
	if w.err != nil {
		return
	}
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(v))
	_, w.err = w.w.Write(buf[:])
}

// WriteFloat64 writes a single float64.
func (w *Writer) WriteFloat64(v float64) {
	if w.err != nil {
		return
	}
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
	_, w.err = w.w.Write(buf[:])
}

// WriteFloat64Slice writes len(v) followed by v's raw bytes.
func (w *Writer) WriteFloat64Slice(v []float64) {
	w.WriteInt64(int64(len(v)))
	for _, x := range v {
		w.WriteFloat64(x)
	}
}

// WriteString writes len(s) followed by s's bytes.
func (w *Writer) WriteString(s string) {
	w.WriteInt64(int64(len(s)))
	if w.err != nil {
		return
	}
	_, w.err = io.WriteString(w.w, s)
}

// WriteBytes writes len(b) followed by b.
func (w *Writer) WriteBytes(b []byte) {
	w.WriteInt64(int64(len(b)))
	if w.err != nil {
		return
	}
	_, w.err = w.w.Write(b)
}

// Reader reads back what Writer wrote.
type Reader struct {
	r   io.Reader
	err error
}

// NewReader wraps r.
func NewReader(r io.Reader) *Reader { return &Reader{r: r} }

// Err returns the first error encountered by any Read* call.
func (r *Reader) Err() error { return r.err }

// ReadVersion reads a Triplet and rejects it if newer than Version.
func (r *Reader) ReadVersion() (Triplet, error) {
	t := Triplet{
		Major: r.ReadUint32(),
		Minor: r.ReadUint32(),
		Patch: r.ReadUint32(),
	}
	if r.err != nil {
		return t, errors.Wrap(r.err, "stream: reading version")
	}
	if t.Newer(Version) {
		return t, errors.Wrapf(ErrVersionMismatch, "stream version %d.%d.%d is newer than running %d.%d.%d",
			t.Major, t.Minor, t.Patch, Version.Major, Version.Minor, Version.Patch)
	}
	return t, nil
}

// ReadUint32 reads a single uint32.
func (r *Reader) ReadUint32() uint32 {
	if r.err != nil {
		return 0
	}
	var buf [4]byte
	_, r.err = io.ReadFull(r.r, buf[:])
	return binary.LittleEndian.Uint32(buf[:])
}

// ReadInt64 reads a single int64.
func (r *Reader) ReadInt64() int64 {
	if r.err != nil {
		return 0
	}
	var buf [8]byte
	_, r.err = io.ReadFull(r.r, buf[:])
	return int64(binary.LittleEndian.Uint64(buf[:]))
}

// ReadFloat64 reads a single float64.
func (r *Reader) ReadFloat64() float64 {
	if r.err != nil {
		return 0
	}
	var buf [8]byte
	_, r.err = io.ReadFull(r.r, buf[:])
	return math.Float64frombits(binary.LittleEndian.Uint64(buf[:]))
}

// ReadFloat64Slice reads back a slice written by WriteFloat64Slice.
func (r *Reader) ReadFloat64Slice() []float64 {
	n := r.ReadInt64()
	if r.err != nil || n < 0 {
		return nil
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = r.ReadFloat64()
	}
	return out
}

// ReadString reads back a string written by WriteString.
func (r *Reader) ReadString() string {
	b := r.ReadBytes()
	return string(b)
}

// ReadBytes reads back a []byte written by WriteBytes.
func (r *Reader) ReadBytes() []byte {
	n := r.ReadInt64()
	if r.err != nil || n < 0 {
		return nil
	}
	buf := make([]byte, n)
	_, r.err = io.ReadFull(r.r, buf)
	return buf
}

// Codec is implemented by anything that round-trips through the versioned
// framing (Configurable, Tensor).
type Codec interface {
	WriteTo(w *Writer) error
	ReadFrom(r *Reader) error
}
