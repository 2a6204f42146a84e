package Trees

import (
	"github.com/sirupsen/logrus"
	"golang.org/x/exp/constraints"
)

// BSTree is the unbalanced ordered tree. Nodes are kept in a flat store and addressed by index S;
// parent links are indices as well, so there are no ownership cycles.
// Duplicates are rejected unless WithDuplicates(AcceptDuplicates) is given.
// Depths are recomputed for the whole tree after every mutation.
type BSTree[T constraints.Ordered, S constraints.Unsigned] struct {
	base[T, S]
}

// NewBST returns an empty BSTree.
func NewBST[T constraints.Ordered, S constraints.Unsigned](opts ...Option[S]) *BSTree[T, S] {
	u := new(BSTree[T, S])
	u.init(makeConfig(RejectDuplicates, "bst", opts))
	return u
}

// checkInsert n: it must be made but not linked yet.
func (u *base[T, S]) checkInsert(n S) error {
	if !u.allocated(n) {
		return InvalidReferenceError{uint64(n), "not an allocated node"}
	} else if u.ifs[n].st == stLinked {
		return InvalidReferenceError{uint64(n), "already linked"}
	}
	return nil
}

// discard a made node that lost against an equal value.
func (u *base[T, S]) discard(n, eq S) {
	if u.cfg.log.Logger.IsLevelEnabled(logrus.DebugLevel) {
		u.cfg.log.WithFields(logrus.Fields{"op": "insert", "node": n, "equal": eq, "value": u.vs[n-1]}).Debug("duplicate rejected")
	}
	u.release(n)
}

// Insert node n. The attachment point is found by descending from root; n becomes its left child
// if n's value is greater, otherwise its right child. An equal value met on the way discards n
// and returns false under RejectDuplicates.
// Time: O(D) + O(n) for the depth update.
func (u *BSTree[T, S]) Insert(n S) (bool, error) {
	if err := u.checkInsert(n); err != nil {
		return false, err
	}
	v := u.vs[n-1]
	var y S
	for curI := u.root; curI != 0; {
		y = curI
		u.focus(y)
		if cv := u.vs[curI-1]; v > cv {
			curI = u.ifs[curI].l
		} else if v == cv && u.cfg.dups == RejectDuplicates {
			u.discard(n, curI)
			return false, nil
		} else {
			curI = u.ifs[curI].r
		}
	}
	u.ifs[n].st = stLinked
	if y == 0 {
		u.root = n
	} else if v > u.vs[y-1] {
		u.setLeft(y, n)
	} else {
		u.setRight(y, n)
	}
	u.size++
	u.updateDepth()
	return true, nil
}

// Add v as a new node. Returns the node, or 0 and false if v was discarded.
func (u *BSTree[T, S]) Add(v T) (S, bool) {
	n := u.alloc(v)
	if ok, _ := u.Insert(n); !ok {
		return 0, false
	}
	return n, true
}

// Delete the linked node n and free its slot.
// With no children n is detached, with one child the child takes n's place. With two, n's
// successor s is moved into n's place: if s isn't n's child it is first replaced by its own
// right child and takes over n's right subtree, then n is replaced by s and s takes n's left.
// Time: O(D) + O(n) for the depth update.
func (u *BSTree[T, S]) Delete(n S) error {
	if u.root == 0 {
		return InvalidReferenceError{uint64(n), "tree is empty"}
	} else if !u.linked(n) {
		return InvalidReferenceError{uint64(n), "not linked into the tree"}
	}
	u.focus(n)
	if nd := u.ifs[n]; nd.l == 0 {
		u.transplant(n, nd.r)
	} else if nd.r == 0 {
		u.transplant(n, nd.l)
	} else {
		s := u.Successor(n)
		if u.ifs[s].p != n {
			u.transplant(s, u.ifs[s].r)
			u.setRight(s, nd.r)
		}
		u.transplant(n, s)
		u.setLeft(s, nd.l)
	}
	if u.cfg.log.Logger.IsLevelEnabled(logrus.DebugLevel) {
		u.cfg.log.WithFields(logrus.Fields{"op": "delete", "node": n, "value": u.vs[n-1], "root": u.root}).Debug("node unlinked")
	}
	u.release(n)
	u.size--
	u.updateDepth()
	return nil
}

// Remove the node holding v. Returns false if v isn't in the tree.
func (u *BSTree[T, S]) Remove(v T) bool {
	if n := u.Search(v); n != 0 {
		return u.Delete(n) == nil
	}
	return false
}

// Corrupt reports whether Check finds a broken invariant.
func (u *BSTree[T, S]) Corrupt() bool {
	return u.Check() != nil
}

// Check ordering, parent links, depths, reachability and size.
// Time: O(n)
func (u *BSTree[T, S]) Check() error {
	return u.check(false)
}
