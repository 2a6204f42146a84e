package Trees

import (
	"github.com/sirupsen/logrus"
	"golang.org/x/exp/constraints"
)

// AVLTree extends BSTree with height balancing: after every insert and delete the heights of
// the two subtrees of any node differ by at most one.
// Heights aren't stored; Height recomputes them on demand, so a single mutation costs
// O(n log n) in the worst case, and depths are refreshed by a full walk afterwards.
// Unlike BSTree, duplicates are accepted by default and go into the right relation of the
// equal node.
type AVLTree[T constraints.Ordered, S constraints.Unsigned] struct {
	BSTree[T, S]
}

// NewAVL returns an empty AVLTree.
func NewAVL[T constraints.Ordered, S constraints.Unsigned](opts ...Option[S]) *AVLTree[T, S] {
	u := new(AVLTree[T, S])
	u.init(makeConfig(AcceptDuplicates, "avl", opts))
	return u
}

// Height of the subtree at n: 0 for the empty node, 1 for a leaf.
// Time: O(size of subtree)
func (u *AVLTree[T, S]) Height(n S) int {
	return u.height(n)
}

// BalanceFactor of n, Height(left)-Height(right).
func (u *AVLTree[T, S]) BalanceFactor(n S) int {
	return u.balanceFactor(n)
}

func (u *AVLTree[T, S]) trace(op string, z, y S) {
	if u.cfg.log.Logger.IsLevelEnabled(logrus.DebugLevel) {
		u.cfg.log.WithFields(logrus.Fields{"op": op, "node": z, "value": u.vs[z-1], "pivot": y}).Debug("rotated")
	}
}

// rotateLeft at z and return the new root of the subtree, z's former right child. The caller
// links the result into z's old slot.
// Time: O(1)
func (u *AVLTree[T, S]) rotateLeft(z S) S {
	y := u.ifs[z].r
	if y == 0 {
		panic(RotationError{uint64(z), "left"})
	}
	u.setRight(z, u.ifs[y].l)
	u.ifs[y].p = u.ifs[z].p
	u.setLeft(y, z)
	u.trace("rotateLeft", z, y)
	return y
}

// rotateRight is the mirror of rotateLeft, pivoting on z's left child.
// Time: O(1)
func (u *AVLTree[T, S]) rotateRight(z S) S {
	y := u.ifs[z].l
	if y == 0 {
		panic(RotationError{uint64(z), "right"})
	}
	u.setLeft(z, u.ifs[y].r)
	u.ifs[y].p = u.ifs[z].p
	u.setRight(y, z)
	u.trace("rotateRight", z, y)
	return y
}

// Insert node n and rebalance every subtree on the way back up.
// The rotation case is chosen by comparing n's value with the value of the heavy child, not by
// the child's balance factor.
// Time: O(n log n) worst case.
func (u *AVLTree[T, S]) Insert(n S) (bool, error) {
	if err := u.checkInsert(n); err != nil {
		return false, err
	}
	root, ok := u.insert(u.root, n)
	if !ok {
		return false, nil
	}
	u.ifs[n].st = stLinked
	u.root = root
	u.ifs[root].p = 0
	u.size++
	u.updateDepth()
	return true, nil
}

// insert n into the subtree at curI. Returns the new root of the subtree.
func (u *AVLTree[T, S]) insert(curI, n S) (S, bool) {
	if curI == 0 {
		return n, true
	}
	u.focus(curI)
	v := u.vs[n-1]
	if cv := u.vs[curI-1]; v > cv {
		c, ok := u.insert(u.ifs[curI].l, n)
		if !ok {
			return curI, false
		}
		u.setLeft(curI, c)
	} else if v == cv && u.cfg.dups == RejectDuplicates {
		u.discard(n, curI)
		return curI, false
	} else {
		c, ok := u.insert(u.ifs[curI].r, n)
		if !ok {
			return curI, false
		}
		u.setRight(curI, c)
	}

	// values equal to the child went to its right relation, same as the descent
	switch bf := u.balanceFactor(curI); {
	case bf > 1 && v > u.vs[u.ifs[curI].l-1]:
		return u.rotateRight(curI), true
	case bf < -1 && v <= u.vs[u.ifs[curI].r-1]:
		return u.rotateLeft(curI), true
	case bf > 1:
		u.setLeft(curI, u.rotateLeft(u.ifs[curI].l))
		return u.rotateRight(curI), true
	case bf < -1:
		u.setRight(curI, u.rotateRight(u.ifs[curI].r))
		return u.rotateLeft(curI), true
	}
	return curI, true
}

// Add v as a new node. Returns the node, or 0 and false if v was discarded.
func (u *AVLTree[T, S]) Add(v T) (S, bool) {
	n := u.alloc(v)
	if ok, _ := u.Insert(n); !ok {
		return 0, false
	}
	return n, true
}

// Delete the node holding n's value and rebalance on the way back up. n may be linked or an
// unlinked key made with Make, which is freed afterwards. The node located by the descent is the
// one removed, which for duplicate values needn't be n itself. A node with two children takes its
// successor's value and the successor is deleted from the right subtree instead.
// Time: O(n log n) worst case.
func (u *AVLTree[T, S]) Delete(n S) error {
	if !u.allocated(n) {
		return InvalidReferenceError{uint64(n), "not an allocated node"}
	}
	key := u.ifs[n].st == stMade
	if u.root == 0 {
		if key {
			u.release(n)
		}
		return InvalidReferenceError{uint64(n), "tree is empty"}
	}
	v := u.vs[n-1]
	root, ok := u.remove(u.root, v)
	if key {
		u.release(n)
	}
	if !ok {
		return InvalidReferenceError{uint64(n), "value not in tree"}
	}
	if u.root = root; root != 0 {
		u.ifs[root].p = 0
	}
	u.size--
	u.updateDepth()
	return nil
}

// remove v from the subtree at curI. Returns the new root of the subtree.
func (u *AVLTree[T, S]) remove(curI S, v T) (S, bool) {
	if curI == 0 {
		return 0, false
	}
	u.focus(curI)
	if cv := u.vs[curI-1]; v > cv {
		c, ok := u.remove(u.ifs[curI].l, v)
		if !ok {
			return curI, false
		}
		u.setLeft(curI, c)
	} else if v < cv {
		c, ok := u.remove(u.ifs[curI].r, v)
		if !ok {
			return curI, false
		}
		u.setRight(curI, c)
	} else if l, r := u.ifs[curI].l, u.ifs[curI].r; l == 0 || r == 0 {
		if u.cfg.log.Logger.IsLevelEnabled(logrus.DebugLevel) {
			u.cfg.log.WithFields(logrus.Fields{"op": "delete", "node": curI, "value": cv}).Debug("node unlinked")
		}
		u.release(curI)
		return l | r, true
	} else {
		s := u.Successor(curI)
		u.vs[curI-1] = u.vs[s-1]
		c, _ := u.remove(r, u.vs[curI-1])
		u.setRight(curI, c)
	}

	switch bf := u.balanceFactor(curI); {
	case bf > 1 && u.balanceFactor(u.ifs[curI].l) >= 0:
		return u.rotateRight(curI), true
	case bf < -1 && u.balanceFactor(u.ifs[curI].r) <= 0:
		return u.rotateLeft(curI), true
	case bf > 1:
		u.setLeft(curI, u.rotateLeft(u.ifs[curI].l))
		return u.rotateRight(curI), true
	case bf < -1:
		u.setRight(curI, u.rotateRight(u.ifs[curI].r))
		return u.rotateLeft(curI), true
	}
	return curI, true
}

// Remove one node holding v. Returns false if v isn't in the tree.
func (u *AVLTree[T, S]) Remove(v T) bool {
	if n := u.Search(v); n != 0 {
		return u.Delete(n) == nil
	}
	return false
}

// Check everything BSTree.Check does plus the height balance of every node.
// Time: O(n log n)
func (u *AVLTree[T, S]) Check() error {
	return u.check(true)
}

// Corrupt reports whether Check finds a broken invariant.
func (u *AVLTree[T, S]) Corrupt() bool {
	return u.Check() != nil
}
