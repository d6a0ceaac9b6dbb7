package linear

import "math"

// Scaling is the input scaling scheme applied before fitting, computed
// from training samples only (spec §4.8 step 1).
type Scaling int

const (
	ScaleNone Scaling = iota
	ScaleMean
	ScaleMinMax
	ScaleStandard
)

func (s Scaling) String() string {
	switch s {
	case ScaleMean:
		return "mean"
	case ScaleMinMax:
		return "minmax"
	case ScaleStandard:
		return "standard"
	default:
		return "none"
	}
}

// Scaler holds the per-feature offset/scale fitted on a training set and
// applies it to feature vectors (Model.unscale maps fitted weights back
// to the native feature space).
type Scaler struct {
	kind   Scaling
	offset []float64
	scale  []float64
}

// FitScaler computes a Scaler of the given kind from ds's feature
// vectors. The zero Scaler (ScaleNone) is the identity transform.
func FitScaler(ds Dataset, kind Scaling) *Scaler {
	n := ds.NumSamples()
	d := NumFeatures(ds)
	s := &Scaler{kind: kind, offset: make([]float64, d), scale: make([]float64, d)}
	for j := range s.scale {
		s.scale[j] = 1
	}
	if kind == ScaleNone || n == 0 {
		return s
	}

	switch kind {
	case ScaleMean, ScaleStandard:
		for i := 0; i < n; i++ {
			x, _, _ := ds.Row(i)
			for j, v := range x {
				s.offset[j] += v
			}
		}
		for j := range s.offset {
			s.offset[j] /= float64(n)
		}
		if kind == ScaleStandard {
			variance := make([]float64, d)
			for i := 0; i < n; i++ {
				x, _, _ := ds.Row(i)
				for j, v := range x {
					dv := v - s.offset[j]
					variance[j] += dv * dv
				}
			}
			for j := range variance {
				sd := math.Sqrt(variance[j] / float64(n))
				if sd > 1e-12 {
					s.scale[j] = sd
				}
			}
		}
	case ScaleMinMax:
		lo := make([]float64, d)
		hi := make([]float64, d)
		x0, _, _ := ds.Row(0)
		copy(lo, x0)
		copy(hi, x0)
		for i := 1; i < n; i++ {
			x, _, _ := ds.Row(i)
			for j, v := range x {
				lo[j] = math.Min(lo[j], v)
				hi[j] = math.Max(hi[j], v)
			}
		}
		for j := range lo {
			s.offset[j] = lo[j]
			span := hi[j] - lo[j]
			if span > 1e-12 {
				s.scale[j] = span
			}
		}
	}
	return s
}

// Apply maps a raw feature vector into scaled coordinates: (x-offset)/scale.
func (s *Scaler) Apply(x []float64) []float64 {
	out := make([]float64, len(x))
	for j, v := range x {
		out[j] = (v - s.offset[j]) / s.scale[j]
	}
	return out
}
