package Trees

import (
	"fmt"

	Go_Trees "github.com/g-m-twostay/go-trees"
)

// check every invariant of the tree. Visited slots are marked in a BitArray so that a node
// reachable twice, a cycle, or a linked node that can't be reached are all reported.
func (u *base[T, S]) check(avl bool) error {
	seen := Go_Trees.New(len(u.ifs))
	if u.root != 0 && u.ifs[u.root].p != 0 {
		return CorruptError{uint64(u.root), "root has a parent"}
	}
	var err error
	var n uint
	u.Traverse(func(i S) bool {
		if seen.Swap(int(i)) {
			err = CorruptError{uint64(i), "reached twice"}
			return false
		}
		n++
		nd := u.ifs[i]
		if nd.st != stLinked {
			err = CorruptError{uint64(i), "reachable but not linked"}
		} else if nd.l != 0 && u.ifs[nd.l].p != i {
			err = CorruptError{uint64(nd.l), "parent doesn't point back"}
		} else if nd.r != 0 && u.ifs[nd.r].p != i {
			err = CorruptError{uint64(nd.r), "parent doesn't point back"}
		} else if p := nd.p; p != 0 && nd.d != u.ifs[p].d+1 || p == 0 && nd.d != 0 {
			err = CorruptError{uint64(i), fmt.Sprintf("depth %d", nd.d)}
		} else if avl && !u.balanced(i) {
			err = CorruptError{uint64(i), fmt.Sprintf("balance factor %d", u.balanceFactor(i))}
		}
		return err == nil
	}, PreOrder) // pre-order sees a cycle before following it
	if err != nil {
		return err
	}
	var prev S
	u.Traverse(func(i S) bool {
		if prev != 0 && u.outOfOrder(u.vs[prev-1], u.vs[i-1]) {
			err = CorruptError{uint64(i), fmt.Sprintf("value %v after %v in order", u.vs[i-1], u.vs[prev-1])}
		}
		prev = i
		return err == nil
	}, InOrder)
	if err != nil {
		return err
	}
	if n != u.size {
		return CorruptError{uint64(u.root), fmt.Sprintf("size %d but %d nodes reachable", u.size, n)}
	}
	for i := 1; i < len(u.ifs); i++ {
		if u.ifs[i].st == stLinked && !seen.Get(i) {
			return CorruptError{uint64(i), "linked but unreachable"}
		}
	}
	return nil
}

// outOfOrder reports whether b may not follow a in an in-order walk. In-order is descending.
func (u *base[T, S]) outOfOrder(a, b T) bool {
	if u.cfg.dups == AcceptDuplicates {
		return b > a
	}
	return b >= a
}

func (u *base[T, S]) balanced(i S) bool {
	bf := u.balanceFactor(i)
	return bf >= -1 && bf <= 1
}
