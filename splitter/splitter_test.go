package splitter

import (
	"testing"

	"go.viam.com/test"
)

func TestKFoldSizesAndCoverage(t *testing.T) {
	k := NewKFold()
	splits := k.Split(21, 5, 42)
	test.That(t, len(splits), test.ShouldEqual, 5)

	sizes := make([]int, 5)
	union := map[int]bool{}
	for i, s := range splits {
		sizes[i] = len(s.Valid)
		for _, idx := range s.Valid {
			union[idx] = true
		}
		test.That(t, len(s.Train)+len(s.Valid), test.ShouldEqual, 21)
	}
	test.That(t, sizes, test.ShouldResemble, []int{4, 4, 4, 4, 5})
	test.That(t, len(union), test.ShouldEqual, 21)
}

func TestKFoldDeterministic(t *testing.T) {
	k := NewKFold()
	a := k.Split(21, 5, 42)
	b := k.Split(21, 5, 42)
	test.That(t, a, test.ShouldResemble, b)
}

func TestKFoldFoldsDisjoint(t *testing.T) {
	k := NewKFold()
	splits := k.Split(21, 5, 7)
	for _, s := range splits {
		seen := map[int]bool{}
		for _, idx := range s.Train {
			seen[idx] = true
		}
		for _, idx := range s.Valid {
			test.That(t, seen[idx], test.ShouldBeFalse)
		}
	}
}

func TestRandomSplitProportions(t *testing.T) {
	r := NewRandom()
	splits := r.Split(100, 3, 1)
	for _, s := range splits {
		test.That(t, len(s.Train), test.ShouldEqual, 80)
		test.That(t, len(s.Valid), test.ShouldEqual, 20)
	}
}

func TestFactoryUnknown(t *testing.T) {
	_, err := Factory("nope")
	test.That(t, err, test.ShouldNotBeNil)
}

func TestFactoryBuildsAll(t *testing.T) {
	for _, name := range []string{"k-fold", "random"} {
		s, err := Factory(name)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, s.Name(), test.ShouldEqual, name)
	}
}
