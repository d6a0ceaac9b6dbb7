// Package splitter implements the k-fold and random train/validation
// splitters from spec §4.9.
package splitter

import (
	"fmt"
	"sort"

	"github.com/accosmin-org/nanogo/config"
)

// Split is one (train, valid) partition of sample indices.
type Split struct {
	Train []int
	Valid []int
}

// Splitter produces folds disjoint, sorted, covering (train, valid)
// splits of [0, samples) for a given seed.
type Splitter interface {
	Name() string
	Parameters() []*config.Parameter
	Split(samples, folds int, seed uint64) []Split
}

type builder func() Splitter

var registry = map[string]builder{}

func register(name string, b builder) { registry[name] = b }

// Factory builds a named splitter.
func Factory(name string) (Splitter, error) {
	b, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("splitter: unknown id %q", name)
	}
	return b(), nil
}

// xorshift64star is the small deterministic PRNG every sampling
// component owns a private instance of (spec §5: no process-wide
// generator).
type xorshift64star struct{ state uint64 }

func newRand(seed uint64) *xorshift64star {
	if seed == 0 {
		seed = 0x9e3779b97f4a7c15
	}
	return &xorshift64star{state: seed}
}

func (r *xorshift64star) next() uint64 {
	r.state ^= r.state >> 12
	r.state ^= r.state << 25
	r.state ^= r.state >> 27
	return r.state * 2685821657736338717
}

// intn returns a uniform integer in [0, n).
func (r *xorshift64star) intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(r.next() % uint64(n))
}

// permutation returns a Fisher-Yates shuffle of [0, n).
func (r *xorshift64star) permutation(n int) []int {
	p := make([]int, n)
	for i := range p {
		p[i] = i
	}
	for i := n - 1; i > 0; i-- {
		j := r.intn(i + 1)
		p[i], p[j] = p[j], p[i]
	}
	return p
}

func sortedCopy(idx []int) []int {
	out := append([]int(nil), idx...)
	sort.Ints(out)
	return out
}

func complement(samples int, exclude []int) []int {
	excluded := make(map[int]bool, len(exclude))
	for _, i := range exclude {
		excluded[i] = true
	}
	out := make([]int, 0, samples-len(exclude))
	for i := 0; i < samples; i++ {
		if !excluded[i] {
			out = append(out, i)
		}
	}
	return out
}
