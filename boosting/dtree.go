package boosting

import (
	"github.com/accosmin-org/nanogo/config"
	"github.com/accosmin-org/nanogo/linear"
	"github.com/accosmin-org/nanogo/tensor"
)

// dtreeNode is a binary regression-tree node: a leaf carries a constant
// value, an internal node carries a stump-style split and two children.
type dtreeNode struct {
	leaf        bool
	value       float64
	feature     int
	threshold   float64
	left, right *dtreeNode
}

// Dtree is a depth-bounded binary regression tree built by recursively
// applying stump splits, reusing bestSplit from the Stump learner.
type Dtree struct {
	config.Configurable
	maxDepth   *config.Parameter
	minSamples *config.Parameter

	ds   linear.Dataset
	root *dtreeNode
}

// NewDtree builds a Dtree learner bound to ds with depth 3.
func NewDtree(ds linear.Dataset) *Dtree {
	t := &Dtree{Configurable: config.NewConfigurable("dtree"), ds: ds}
	depth, _ := config.NewInt("dtree::max_depth", config.Closed(1, 10), 3)
	minSamples, _ := config.NewInt("dtree::min_samples", config.Closed(1, 1000), 5)
	t.Register(depth)
	t.Register(minSamples)
	t.maxDepth = depth
	t.minSamples = minSamples
	return t
}

func (t *Dtree) Name() string { return "dtree" }

// Fit implements WeakLearner.
func (t *Dtree) Fit(residual []float64, mask *tensor.Mask) float64 {
	rows := maskedRows(mask)
	if len(rows) == 0 {
		return 0
	}
	base := sumSquares(residual, rows)
	t.root = t.build(residual, rows, 0)
	return base - t.treeSSE(residual, rows, t.root)
}

func (t *Dtree) build(residual []float64, rows []int, depth int) *dtreeNode {
	mean := meanOf(residual, rows)
	if depth >= int(t.maxDepth.Int()) || len(rows) < 2*int(t.minSamples.Int()) {
		return &dtreeNode{leaf: true, value: mean}
	}

	d := linear.NumFeatures(t.ds)
	bestGain := 0.0
	var bestFeature int
	var bestThreshold float64
	base := sumSquares(residual, rows)
	for f := 0; f < d; f++ {
		threshold, _, _, sse := bestSplit(t.ds, residual, rows, f)
		if gain := base - sse; gain > bestGain {
			bestGain, bestFeature, bestThreshold = gain, f, threshold
		}
	}
	if bestGain <= 0 {
		return &dtreeNode{leaf: true, value: mean}
	}

	var leftRows, rightRows []int
	for _, i := range rows {
		x, _, _ := t.ds.Row(i)
		if x[bestFeature] >= bestThreshold {
			rightRows = append(rightRows, i)
		} else {
			leftRows = append(leftRows, i)
		}
	}
	if len(leftRows) < int(t.minSamples.Int()) || len(rightRows) < int(t.minSamples.Int()) {
		return &dtreeNode{leaf: true, value: mean}
	}

	return &dtreeNode{
		feature:   bestFeature,
		threshold: bestThreshold,
		left:      t.build(residual, leftRows, depth+1),
		right:     t.build(residual, rightRows, depth+1),
	}
}

func (t *Dtree) treeSSE(residual []float64, rows []int, node *dtreeNode) float64 {
	if node.leaf {
		var sse float64
		for _, i := range rows {
			d := residual[i] - node.value
			sse += d * d
		}
		return sse
	}
	var leftRows, rightRows []int
	for _, i := range rows {
		x, _, _ := t.ds.Row(i)
		if x[node.feature] >= node.threshold {
			rightRows = append(rightRows, i)
		} else {
			leftRows = append(leftRows, i)
		}
	}
	return t.treeSSE(residual, leftRows, node.left) + t.treeSSE(residual, rightRows, node.right)
}

func meanOf(residual []float64, rows []int) float64 {
	var sum float64
	for _, i := range rows {
		sum += residual[i]
	}
	return sum / float64(len(rows))
}

// Predict implements WeakLearner.
func (t *Dtree) Predict(x []float64) float64 {
	node := t.root
	for node != nil && !node.leaf {
		if x[node.feature] >= node.threshold {
			node = node.right
		} else {
			node = node.left
		}
	}
	if node == nil {
		return 0
	}
	return node.value
}

func init() {
	register("dtree", func(ds linear.Dataset) WeakLearner { return NewDtree(ds) })
}
