// File: services/runway/tree.go
package runway

// node is one reserved landing minute. Each node owns its children.
type node struct {
	minute int
	left   *node
	right  *node
}

func newNode(minute int) *node {
	return &node{minute: minute}
}

// insert places key under root and returns the (possibly new) subtree root.
// Equal keys leave the tree untouched.
func insert(root *node, key int) *node {
	if root == nil {
		return newNode(key)
	}

	if key < root.minute {
		root.left = insert(root.left, key)
	} else if key > root.minute {
		root.right = insert(root.right, key)
	}
	return root
}

func search(root *node, key int) bool {
	if root == nil {
		return false
	}
	if key == root.minute {
		return true
	}
	if key < root.minute {
		return search(root.left, key)
	}
	return search(root.right, key)
}

// findMin walks to the leftmost node. root must not be nil.
func findMin(root *node) *node {
	for root.left != nil {
		root = root.left
	}
	return root
}

// findMax walks to the rightmost node. root must not be nil.
func findMax(root *node) *node {
	for root.right != nil {
		root = root.right
	}
	return root
}

// deleteNode removes key from the subtree and returns its new root.
// A node with two children takes its in-order successor's value and the
// successor is then removed from the right subtree.
func deleteNode(root *node, key int) *node {
	if root == nil {
		return nil
	}

	switch {
	case key < root.minute:
		root.left = deleteNode(root.left, key)
	case key > root.minute:
		root.right = deleteNode(root.right, key)
	default:
		if root.left == nil {
			return root.right
		}
		if root.right == nil {
			return root.left
		}
		root.minute = findMin(root.right).minute
		root.right = deleteNode(root.right, root.minute)
	}
	return root
}

// checkSeparation visits every node and reports whether candidate keeps at
// least k minutes from all of them. It does not prune.
func checkSeparation(root *node, candidate, k int) bool {
	if root == nil {
		return true
	}

	diff := candidate - root.minute
	if diff < 0 {
		diff = -diff
	}
	if diff < k {
		return false
	}
	return checkSeparation(root.left, candidate, k) && checkSeparation(root.right, candidate, k)
}

// rank counts keys strictly less than target. target is expected to be present.
func rank(root *node, target int) int {
	if root == nil {
		return 0
	}
	if target <= root.minute {
		return rank(root.left, target)
	}
	return 1 + size(root.left) + rank(root.right, target)
}

func size(root *node) int {
	if root == nil {
		return 0
	}
	return 1 + size(root.left) + size(root.right)
}

// inOrder yields keys ascending until fn returns false.
func inOrder(root *node, fn func(int) bool) bool {
	if root == nil {
		return true
	}
	if !inOrder(root.left, fn) {
		return false
	}
	if !fn(root.minute) {
		return false
	}
	return inOrder(root.right, fn)
}

// bstIndex is the reference Index: an unbalanced binary search tree.
type bstIndex struct {
	root  *node
	count int
}

func newBSTIndex() *bstIndex {
	return &bstIndex{}
}

func (b *bstIndex) Insert(minute int) bool {
	if search(b.root, minute) {
		return false
	}
	b.root = insert(b.root, minute)
	b.count++
	return true
}

func (b *bstIndex) Delete(minute int) bool {
	if !search(b.root, minute) {
		return false
	}
	b.root = deleteNode(b.root, minute)
	b.count--
	return true
}

func (b *bstIndex) Contains(minute int) bool {
	return search(b.root, minute)
}

func (b *bstIndex) Min() (int, bool) {
	if b.root == nil {
		return 0, false
	}
	return findMin(b.root).minute, true
}

func (b *bstIndex) Max() (int, bool) {
	if b.root == nil {
		return 0, false
	}
	return findMax(b.root).minute, true
}

func (b *bstIndex) Rank(minute int) int {
	return rank(b.root, minute)
}

func (b *bstIndex) Separated(candidate, k int) bool {
	return checkSeparation(b.root, candidate, k)
}

func (b *bstIndex) Ascend(fn func(int) bool) {
	inOrder(b.root, fn)
}

func (b *bstIndex) Len() int {
	return b.count
}
