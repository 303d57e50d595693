package runway

import "github.com/google/btree"

const btreeDegree = 8

// btreeIndex keeps the same ordered set in a balanced google/btree.
type btreeIndex struct {
	tree *btree.BTreeG[int]
}

func newBTreeIndex() *btreeIndex {
	return &btreeIndex{
		tree: btree.NewOrderedG[int](btreeDegree),
	}
}

func (b *btreeIndex) Insert(minute int) bool {
	if b.tree.Has(minute) {
		return false
	}
	b.tree.ReplaceOrInsert(minute)
	return true
}

func (b *btreeIndex) Delete(minute int) bool {
	_, removed := b.tree.Delete(minute)
	return removed
}

func (b *btreeIndex) Contains(minute int) bool {
	return b.tree.Has(minute)
}

func (b *btreeIndex) Min() (int, bool) {
	return b.tree.Min()
}

func (b *btreeIndex) Max() (int, bool) {
	return b.tree.Max()
}

func (b *btreeIndex) Rank(minute int) int {
	n := 0
	b.tree.AscendLessThan(minute, func(int) bool {
		n++
		return true
	})
	return n
}

// Separated is true when no key falls in the open interval (candidate-k, candidate+k).
func (b *btreeIndex) Separated(candidate, k int) bool {
	if k <= 0 {
		return true
	}
	free := true
	b.tree.AscendRange(candidate-k+1, candidate+k, func(int) bool {
		free = false
		return false
	})
	return free
}

func (b *btreeIndex) Ascend(fn func(int) bool) {
	b.tree.Ascend(func(minute int) bool {
		return fn(minute)
	})
}

func (b *btreeIndex) Len() int {
	return b.tree.Len()
}
