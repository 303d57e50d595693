package runway

import "fmt"

// Index is the ordered set of reserved minutes the Store runs on.
type Index interface {
	// Insert adds minute and reports whether it was absent.
	Insert(minute int) bool
	// Delete removes minute and reports whether it was present.
	Delete(minute int) bool
	Contains(minute int) bool
	Min() (int, bool)
	Max() (int, bool)
	// Rank counts keys strictly less than minute.
	Rank(minute int) int
	// Separated reports whether every key r satisfies |candidate-r| >= k.
	Separated(candidate, k int) bool
	// Ascend calls fn in ascending order until it returns false.
	Ascend(fn func(int) bool)
	Len() int
}

// Backend names accepted by NewIndex.
const (
	BackendBST   = "bst"
	BackendBTree = "btree"
)

// NewIndex builds an empty index for the named backend. An empty name selects BackendBST.
func NewIndex(backend string) (Index, error) {
	switch backend {
	case "", BackendBST:
		return newBSTIndex(), nil
	case BackendBTree:
		return newBTreeIndex(), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", backend)
	}
}
