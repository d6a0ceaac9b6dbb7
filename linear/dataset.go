// Package linear implements the ordinary/lasso/ridge/elastic-net ERM
// model layer from spec §4.8: a loss+regularizer objective handed to the
// solver family, a cross-validated fit pipeline built on tuner/splitter,
// and input scaling.
package linear

// Dataset is the out-of-scope external-collaborator boundary: the model
// layer only ever walks samples through this interface, never parses a
// file itself. Concrete CSV/tabular loaders are not part of this module.
type Dataset interface {
	// NumSamples returns N, the number of rows.
	NumSamples() int
	// Row returns the feature vector, target and per-sample weight of
	// row i. The returned x must have constant length across every row.
	Row(i int) (x []float64, y float64, w float64)
}

// NumFeatures returns the dimension of ds's feature vectors, inferred
// from its first row. Precondition: ds.NumSamples() > 0.
func NumFeatures(ds Dataset) int {
	x, _, _ := ds.Row(0)
	return len(x)
}

// subsetDataset is a read-only view of ds restricted to a subset of row
// indices, used by the cross-validation folds.
type subsetDataset struct {
	ds      Dataset
	indices []int
}

func newSubsetDataset(ds Dataset, indices []int) *subsetDataset {
	return &subsetDataset{ds: ds, indices: indices}
}

func (s *subsetDataset) NumSamples() int { return len(s.indices) }

func (s *subsetDataset) Row(i int) (x []float64, y float64, w float64) {
	return s.ds.Row(s.indices[i])
}

// scaledDataset applies a Scaler to every row's feature vector lazily.
type scaledDataset struct {
	ds     Dataset
	scaler *Scaler
}

func newScaledDataset(ds Dataset, scaler *Scaler) *scaledDataset {
	return &scaledDataset{ds: ds, scaler: scaler}
}

func (s *scaledDataset) NumSamples() int { return s.ds.NumSamples() }

func (s *scaledDataset) Row(i int) (x []float64, y float64, w float64) {
	x, y, w = s.ds.Row(i)
	return s.scaler.Apply(x), y, w
}
