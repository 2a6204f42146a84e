package Trees

import "golang.org/x/exp/constraints"

type state uint8

const (
	stFree state = iota
	stMade // allocated, not reachable from root
	stLinked
)

// A slot in the store. The zero value is the empty sentinel kept at index 0; a free slot uses l
// as the next pointer of the free list.
type info[S constraints.Unsigned] struct {
	l, r, p S
	d       uint
	st      state
}

// Node is a read only snapshot of a linked node, for renderers and tests.
type Node[T constraints.Ordered, S constraints.Unsigned] struct {
	Value               T
	Left, Right, Parent S
	Depth               uint
}
