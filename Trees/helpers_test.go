package Trees

import (
	"math/rand"
	"testing"

	"golang.org/x/exp/constraints"
)

var rg = rand.New(rand.NewSource(0))

// verify the ordering, depth and parent invariants node by node, independently of Check.
func verify[T constraints.Ordered, S constraints.Unsigned](t *testing.T, u *base[T, S], strict bool) {
	t.Helper()
	var walk func(i S) []T
	walk = func(i S) []T {
		if i == 0 {
			return nil
		}
		v := u.vs[i-1]
		l, r := walk(u.ifs[i].l), walk(u.ifs[i].r)
		for _, x := range l {
			if x < v || strict && x == v {
				t.Errorf("node %d (%v): %v in left subtree", i, v, x)
			}
		}
		for _, x := range r {
			if x > v || strict && x == v {
				t.Errorf("node %d (%v): %v in right subtree", i, v, x)
			}
		}
		return append(append(l, v), r...)
	}
	if got := walk(u.root); uint(len(got)) != u.Size() {
		t.Errorf("%d nodes reachable, size is %d", len(got), u.Size())
	}
	u.Traverse(func(i S) bool {
		var d uint
		for c, p := i, u.ifs[i].p; p != 0; c, p = p, u.ifs[p].p {
			if !u.linked(p) {
				t.Errorf("node %d has unlinked ancestor %d", i, p)
				return false
			}
			if u.ifs[p].l != c && u.ifs[p].r != c {
				t.Errorf("node %d isn't a child of its parent %d", c, p)
			}
			d++
		}
		if d != u.ifs[i].d {
			t.Errorf("node %d: depth %d, %d parent links to root", i, u.ifs[i].d, d)
		}
		return true
	}, PreOrder)
	if err := u.check(false); err != nil {
		t.Error(err)
	}
}

func valuesOf[T constraints.Ordered, S constraints.Unsigned](u *base[T, S], ns []S) []T {
	vs := make([]T, len(ns))
	for i, n := range ns {
		vs[i] = u.Value(n)
	}
	return vs
}
