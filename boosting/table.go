package boosting

import (
	"sort"

	"github.com/accosmin-org/nanogo/config"
	"github.com/accosmin-org/nanogo/linear"
	"github.com/accosmin-org/nanogo/tensor"
)

// Table is a piecewise-constant weak learner over quantile bins of a
// single feature, the look-up-table variant of the original (categorical
// features stand in here as quantile-binned continuous ones).
type Table struct {
	config.Configurable
	bins *config.Parameter

	ds         linear.Dataset
	feature    int
	boundaries []float64
	means      []float64
}

// NewTable builds a Table learner bound to ds with 8 quantile bins.
func NewTable(ds linear.Dataset) *Table {
	t := &Table{Configurable: config.NewConfigurable("table"), ds: ds}
	bins, _ := config.NewInt("table::bins", config.Closed(2, 64), 8)
	t.Register(bins)
	t.bins = bins
	return t
}

func (t *Table) Name() string { return "table" }

// Fit implements WeakLearner.
func (t *Table) Fit(residual []float64, mask *tensor.Mask) float64 {
	rows := maskedRows(mask)
	if len(rows) < 2 {
		return 0
	}
	d := linear.NumFeatures(t.ds)
	base := sumSquares(residual, rows)
	k := int(t.bins.Int())

	bestGain := 0.0
	for f := 0; f < d; f++ {
		boundaries, means, sse := fitQuantileTable(t.ds, residual, rows, f, k)
		gain := base - sse
		if gain > bestGain {
			bestGain, t.feature, t.boundaries, t.means = gain, f, boundaries, means
		}
	}
	return bestGain
}

// Predict implements WeakLearner.
func (t *Table) Predict(x []float64) float64 {
	v := x[t.feature]
	idx := sort.SearchFloat64s(t.boundaries, v)
	if idx >= len(t.means) {
		idx = len(t.means) - 1
	}
	return t.means[idx]
}

func fitQuantileTable(ds linear.Dataset, residual []float64, rows []int, f, k int) (boundaries, means []float64, sse float64) {
	type pair struct{ v, r float64 }
	sorted := make([]pair, len(rows))
	for i, idx := range rows {
		x, _, _ := ds.Row(idx)
		sorted[i] = pair{v: x[f], r: residual[idx]}
	}
	sort.Slice(sorted, func(a, b int) bool { return sorted[a].v < sorted[b].v })

	n := len(sorted)
	if k > n {
		k = n
	}
	boundaries = make([]float64, 0, k-1)
	means = make([]float64, 0, k)

	base := n / k
	rem := n % k
	offset := 0
	for b := 0; b < k; b++ {
		size := base
		if b < rem {
			size++
		}
		var sum float64
		for i := offset; i < offset+size; i++ {
			sum += sorted[i].r
		}
		mean := sum / float64(size)
		for i := offset; i < offset+size; i++ {
			d := sorted[i].r - mean
			sse += d * d
		}
		means = append(means, mean)
		offset += size
		if b < k-1 {
			boundaries = append(boundaries, sorted[offset-1].v)
		}
	}
	return boundaries, means, sse
}

func init() {
	register("table", func(ds linear.Dataset) WeakLearner { return NewTable(ds) })
}
