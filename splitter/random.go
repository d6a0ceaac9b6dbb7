package splitter

import "github.com/accosmin-org/nanogo/config"

// Random independently shuffles [0, samples) for every fold and keeps
// the first train_percentage% as the training set, the rest as
// validation.
type Random struct {
	config.Configurable
	trainPercentage *config.Parameter
}

// NewRandom builds a Random splitter with a default 80% train split.
func NewRandom() *Random {
	r := &Random{Configurable: config.NewConfigurable("random")}
	tp, _ := config.NewFloat("random::train_percentage", config.Open(0, 1), 0.8)
	r.Register(tp)
	r.trainPercentage = tp
	return r
}

func (r *Random) Name() string { return "random" }

// Split implements Splitter.
func (r *Random) Split(samples, folds int, seed uint64) []Split {
	trainSize := int(float64(samples) * r.trainPercentage.Float())
	splits := make([]Split, folds)
	for f := 0; f < folds; f++ {
		perm := newRand(seed + uint64(f)*0x9e3779b9 + 1).permutation(samples)
		train := sortedCopy(perm[:trainSize])
		valid := sortedCopy(perm[trainSize:])
		splits[f] = Split{Train: train, Valid: valid}
	}
	return splits
}

func init() {
	register("random", func() Splitter { return NewRandom() })
}
