package concurrency

import (
	"sync/atomic"
	"testing"

	"go.viam.com/test"
)

func TestParallelForVisitsEveryIndex(t *testing.T) {
	p := New(4)
	n := 101
	var seen [101]int32
	err := p.ParallelFor(n, func(tnum, i int) error {
		atomic.AddInt32(&seen[i], 1)
		return nil
	})
	test.That(t, err, test.ShouldBeNil)
	for i := 0; i < n; i++ {
		test.That(t, seen[i], test.ShouldEqual, int32(1))
	}
}

func TestParallelForPropagatesError(t *testing.T) {
	p := New(2)
	boom := errBoom{}
	err := p.ParallelFor(10, func(tnum, i int) error {
		if i == 5 {
			return boom
		}
		return nil
	})
	test.That(t, err, test.ShouldNotBeNil)
}

type errBoom struct{}

func (errBoom) Error() string { return "boom" }

func TestSumReduce(t *testing.T) {
	test.That(t, SumReduceFloat64([]float64{1, 2, 3}), test.ShouldEqual, 6.0)
	test.That(t, SumReduceVector([][]float64{{1, 2}, {3, 4}}), test.ShouldResemble, []float64{4, 6})
}
