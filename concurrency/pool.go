// Package concurrency provides the single data-parallel primitive nanogo
// uses inside one solver iteration: a blocking parallel_for over an
// independent index range (spec §5), built on golang.org/x/sync/errgroup.
package concurrency

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Worker is invoked once per index in [0, n) on one of the pool's
// goroutines; tnum is a stable worker slot in [0, Workers()) usable to
// index per-worker scratch/accumulators without locking.
type Worker func(tnum, i int) error

// Pool runs Worker calls across a bounded number of goroutines and joins
// them before returning, matching the "iterates form a sequential chain,
// parallelism is joined before the next iterate" ordering guarantee.
type Pool struct {
	workers int
}

// New builds a Pool with the given worker count. workers <= 0 defaults
// to runtime.GOMAXPROCS(0).
func New(workers int) *Pool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Pool{workers: workers}
}

// Workers reports the pool's worker slot count.
func (p *Pool) Workers() int { return p.workers }

// ParallelFor runs worker(tnum, i) for every i in [0, n), blocking until
// all calls complete or one returns an error (in which case the first
// error is returned and remaining work is best-effort canceled).
func (p *Pool) ParallelFor(n int, worker Worker) error {
	if n <= 0 {
		return nil
	}
	workers := p.workers
	if workers > n {
		workers = n
	}
	g, ctx := errgroup.WithContext(context.Background())
	chunk := (n + workers - 1) / workers
	for tnum := 0; tnum < workers; tnum++ {
		tnum := tnum
		lo := tnum * chunk
		hi := lo + chunk
		if hi > n {
			hi = n
		}
		if lo >= hi {
			continue
		}
		g.Go(func() error {
			for i := lo; i < hi; i++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				if err := worker(tnum, i); err != nil {
					return err
				}
			}
			return nil
		})
	}
	return g.Wait()
}

// SumReduceFloat64 deterministically sums one accumulator per worker
// slot, in slot order, regardless of completion order (spec §5's
// "per-thread scratch ... reduced with a deterministic sum-reduce").
func SumReduceFloat64(acc []float64) float64 {
	total := 0.0
	for _, a := range acc {
		total += a
	}
	return total
}

// SumReduceVector deterministically sums n-vectors, one per worker slot,
// element-wise, in slot order.
func SumReduceVector(acc [][]float64) []float64 {
	if len(acc) == 0 {
		return nil
	}
	out := make([]float64, len(acc[0]))
	for _, a := range acc {
		for i, v := range a {
			out[i] += v
		}
	}
	return out
}
