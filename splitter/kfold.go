package splitter

import "github.com/accosmin-org/nanogo/config"

// KFold shuffles [0, samples) once, then chunks it into `folds` equal
// pieces with the last fold absorbing the remainder; each chunk in turn
// is the validation set for one split.
type KFold struct {
	config.Configurable
	seedParam *config.Parameter
}

// NewKFold builds a KFold splitter.
func NewKFold() *KFold {
	k := &KFold{Configurable: config.NewConfigurable("k-fold")}
	seed, _ := config.NewInt("k-fold::seed", config.Closed(0, 1<<62), 42)
	k.Register(seed)
	k.seedParam = seed
	return k
}

func (k *KFold) Name() string { return "k-fold" }

// Split implements Splitter.
func (k *KFold) Split(samples, folds int, seed uint64) []Split {
	perm := newRand(seed).permutation(samples)

	base := samples / folds
	rem := samples % folds

	splits := make([]Split, folds)
	offset := 0
	for f := 0; f < folds; f++ {
		size := base
		if f == folds-1 {
			size += rem
		}
		valid := sortedCopy(perm[offset : offset+size])
		splits[f] = Split{Train: complement(samples, valid), Valid: valid}
		offset += size
	}
	return splits
}

func init() {
	register("k-fold", func() Splitter { return NewKFold() })
}
