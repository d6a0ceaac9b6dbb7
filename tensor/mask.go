package tensor

// Mask is a packed bit array, 8 bits per byte, sized ceil(n/8) bytes. Bit
// i set means sample i has the associated feature (spec §3).
type Mask struct {
	bits []byte
	n    int
}

// NewMask allocates a cleared Mask for n samples.
func NewMask(n int) *Mask {
	return &Mask{bits: make([]byte, (n+7)/8), n: n}
}

// Len returns the number of samples the Mask covers.
func (m *Mask) Len() int { return m.n }

// Set marks bit i.
func (m *Mask) Set(i int) { m.bits[i/8] |= 1 << uint(i%8) }

// Clear unmarks bit i.
func (m *Mask) Clear(i int) { m.bits[i/8] &^= 1 << uint(i%8) }

// Test reports whether bit i is set.
func (m *Mask) Test(i int) bool { return m.bits[i/8]&(1<<uint(i%8)) != 0 }

// ClearAll resets every bit, e.g. on dataset reload.
func (m *Mask) ClearAll() {
	for i := range m.bits {
		m.bits[i] = 0
	}
}

// Count returns the number of set bits.
func (m *Mask) Count() int {
	c := 0
	for i := 0; i < m.n; i++ {
		if m.Test(i) {
			c++
		}
	}
	return c
}

// Bytes returns the packed storage (ceil(n/8) bytes), for stream framing.
func (m *Mask) Bytes() []byte { return m.bits }

// MaskFromBytes wraps a previously packed byte slice as a Mask over n
// samples.
func MaskFromBytes(bits []byte, n int) *Mask {
	return &Mask{bits: bits, n: n}
}
