package Trees

import (
	"github.com/emirpasic/gods/stacks/arraystack"
	"github.com/g-m-twostay/go-trees/Queues"
	"golang.org/x/exp/constraints"
)

// base is the node store shared by both engines. ifs[0] is the empty sentinel and is never
// written; the value of node i is vs[i-1].
type base[T constraints.Ordered, S constraints.Unsigned] struct {
	root, free S // free is the head of the free list, linked through info[S].l
	size       uint
	ifs        []info[S]
	vs         []T
	cfg        config[S]
}

func (u *base[T, S]) init(c config[S]) {
	u.cfg = c
	u.ifs = make([]info[S], 1, uint(c.hint)+1)
	u.vs = make([]T, 0, c.hint)
}

// alloc a slot holding v. Free slots are reused before the arrays grow. Returns 0 when every
// index S can address is in use.
func (u *base[T, S]) alloc(v T) S {
	if i := u.popFree(); i != 0 {
		u.ifs[i] = info[S]{st: stMade}
		u.vs[i-1] = v
		return i
	}
	if uint64(len(u.ifs)) > uint64(^S(0)) {
		return 0
	}
	u.ifs = append(u.ifs, info[S]{st: stMade})
	u.vs = append(u.vs, v)
	return S(len(u.ifs) - 1)
}

// release a slot back to the free list.
func (u *base[T, S]) release(i S) {
	u.ifs[i] = info[S]{}
	u.vs[i-1] = *new(T)
	u.addFree(i)
}

// addFree index once.
func (u *base[T, S]) addFree(a S) {
	u.ifs[a].l = u.free
	u.free = a
}

// popFree index once. Returns 0 when there's no free index.
func (u *base[T, S]) popFree() S {
	b := u.free
	u.free = u.ifs[b].l
	return b
}

func (u *base[T, S]) allocated(i S) bool {
	return i != 0 && uint64(i) < uint64(len(u.ifs)) && u.ifs[i].st != stFree
}

func (u *base[T, S]) linked(i S) bool {
	return u.allocated(i) && u.ifs[i].st == stLinked
}

func (u *base[T, S]) focus(i S) {
	if u.cfg.focus != nil && i != 0 {
		u.cfg.focus(i)
	}
}

func (u *base[T, S]) setLeft(p, c S) {
	u.ifs[p].l = c
	if c != 0 {
		u.ifs[c].p = p
	}
}

func (u *base[T, S]) setRight(p, c S) {
	u.ifs[p].r = c
	if c != 0 {
		u.ifs[c].p = p
	}
}

// transplant replaces the subtree rooted at a with the one rooted at b in a's parent slot.
// b may be 0.
func (u *base[T, S]) transplant(a, b S) {
	u.focus(a)
	if p := u.ifs[a].p; p == 0 {
		u.root = b
	} else if u.ifs[p].l == a {
		u.ifs[p].l = b
	} else {
		u.ifs[p].r = b
	}
	if b != 0 {
		u.ifs[b].p = u.ifs[a].p
	}
}

// updateDepth of every node reachable from root.
// Time: O(n)
func (u *base[T, S]) updateDepth() {
	u.setDepth(u.root, 0)
}

func (u *base[T, S]) setDepth(i S, d uint) {
	for i != 0 {
		u.ifs[i].d = d
		d++
		u.setDepth(u.ifs[i].l, d)
		i = u.ifs[i].r
	}
}

// height of the subtree at i, recomputed every call.
// Time: O(size of subtree)
func (u *base[T, S]) height(i S) int {
	if i == 0 {
		return 0
	}
	return 1 + max(u.height(u.ifs[i].l), u.height(u.ifs[i].r))
}

func (u *base[T, S]) balanceFactor(i S) int {
	if i == 0 {
		return 0
	}
	return u.height(u.ifs[i].l) - u.height(u.ifs[i].r)
}

// Make an unlinked node holding v. Returns 0 if the store is full.
func (u *base[T, S]) Make(v T) S {
	return u.alloc(v)
}

// Search v by descending from root. Returns 0 if v is absent.
// Time: O(D)
func (u *base[T, S]) Search(v T) S {
	curI := u.root
	for curI != 0 {
		u.focus(curI)
		if cv := u.vs[curI-1]; cv == v {
			break
		} else if cv < v {
			curI = u.ifs[curI].l
		} else {
			curI = u.ifs[curI].r
		}
	}
	return curI
}

// LeftmostDescendant of i, the greatest value in its subtree. Returns 0 if i is 0.
func (u *base[T, S]) LeftmostDescendant(i S) S {
	if i == 0 {
		return 0
	}
	for u.ifs[i].l != 0 {
		i = u.ifs[i].l
	}
	return i
}

// RightmostDescendant of i, the least value in its subtree. Returns 0 if i is 0.
func (u *base[T, S]) RightmostDescendant(i S) S {
	if i == 0 {
		return 0
	}
	for u.ifs[i].r != 0 {
		i = u.ifs[i].r
	}
	return i
}

// Successor of a linked node n: the leftmost descendant of its right child, or else the first
// ancestor that n isn't in the right subtree of. In mirrored order this is the next smaller value.
// Returns 0 if there's none or n isn't linked.
// Time: O(D)
func (u *base[T, S]) Successor(n S) S {
	if !u.linked(n) {
		return 0
	}
	if r := u.ifs[n].r; r != 0 {
		return u.LeftmostDescendant(r)
	}
	p := u.ifs[n].p
	for p != 0 && n == u.ifs[p].r {
		n, p = p, u.ifs[p].p
	}
	return p
}

// Predecessor is the mirror of Successor: the next greater value.
// Time: O(D)
func (u *base[T, S]) Predecessor(n S) S {
	if !u.linked(n) {
		return 0
	}
	if l := u.ifs[n].l; l != 0 {
		return u.RightmostDescendant(l)
	}
	p := u.ifs[n].p
	for p != 0 && n == u.ifs[p].l {
		n, p = p, u.ifs[p].p
	}
	return p
}

// Traverse the tree depth first in order o, calling f on every node once. Stops when f returns
// false. Iterative, the tree must not be modified by f.
func (u *base[T, S]) Traverse(f func(S) bool, o Order) {
	if u.root == 0 {
		return
	}
	st := arraystack.New()
	switch o {
	case PreOrder:
		for st.Push(u.root); !st.Empty(); {
			top, _ := st.Pop()
			curI := top.(S)
			if !f(curI) {
				return
			}
			if r := u.ifs[curI].r; r != 0 {
				st.Push(r)
			}
			if l := u.ifs[curI].l; l != 0 {
				st.Push(l)
			}
		}
	case InOrder:
		for curI := u.root; curI != 0 || !st.Empty(); {
			for ; curI != 0; curI = u.ifs[curI].l {
				st.Push(curI)
			}
			top, _ := st.Pop()
			curI = top.(S)
			if !f(curI) {
				return
			}
			curI = u.ifs[curI].r
		}
	case PostOrder:
		out := arraystack.New() // reversed post-order
		for st.Push(u.root); !st.Empty(); {
			top, _ := st.Pop()
			curI := top.(S)
			out.Push(curI)
			if l := u.ifs[curI].l; l != 0 {
				st.Push(l)
			}
			if r := u.ifs[curI].r; r != 0 {
				st.Push(r)
			}
		}
		for it := out.Iterator(); it.Next(); {
			if !f(it.Value().(S)) {
				return
			}
		}
	}
}

// Values in the order o.
func (u *base[T, S]) Values(o Order) []T {
	vs := make([]T, 0, u.size)
	u.Traverse(func(i S) bool {
		vs = append(vs, u.vs[i-1])
		return true
	}, o)
	return vs
}

// LevelOrder traversal, left before right on each level. Stops when f returns false.
func (u *base[T, S]) LevelOrder(f func(S) bool) {
	if u.root == 0 {
		return
	}
	q := Queues.MakeArrayQueue[S](16)
	for q.Push(u.root); !q.Empty(); {
		curI, _ := q.Pop()
		if !f(curI) {
			return
		}
		if l := u.ifs[curI].l; l != 0 {
			q.Push(l)
		}
		if r := u.ifs[curI].r; r != 0 {
			q.Push(r)
		}
	}
}

// Levels groups the nodes by depth, each level ordered left to right.
func (u *base[T, S]) Levels() (ls [][]S) {
	u.LevelOrder(func(i S) bool {
		d := u.ifs[i].d
		for uint(len(ls)) <= d {
			ls = append(ls, nil)
		}
		ls[d] = append(ls[d], i)
		return true
	})
	return
}

func (u *base[T, S]) Root() S {
	return u.root
}

// Size is the number of linked nodes.
func (u *base[T, S]) Size() uint {
	return u.size
}

func (u *base[T, S]) Empty() bool {
	return u.root == 0
}

// Value of node n. The zero value of T for 0.
func (u *base[T, S]) Value(n S) T {
	if n == 0 {
		return *new(T)
	}
	return u.vs[n-1]
}

func (u *base[T, S]) Left(n S) S {
	return u.ifs[n].l
}

func (u *base[T, S]) Right(n S) S {
	return u.ifs[n].r
}

func (u *base[T, S]) Parent(n S) S {
	return u.ifs[n].p
}

func (u *base[T, S]) Depth(n S) uint {
	return u.ifs[n].d
}

// Node snapshot of n. ok is false if n isn't linked.
func (u *base[T, S]) Node(n S) (nd Node[T, S], ok bool) {
	if !u.linked(n) {
		return
	}
	i := u.ifs[n]
	return Node[T, S]{u.vs[n-1], i.l, i.r, i.p, i.d}, true
}

// Clear the tree. Doesn't allocate new arrays.
func (u *base[T, S]) Clear() {
	clear(u.vs)
	u.ifs, u.vs = u.ifs[:1], u.vs[:0]
	u.ifs[0] = info[S]{}
	u.root, u.free, u.size = 0, 0, 0
}
