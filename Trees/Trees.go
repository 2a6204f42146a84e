package Trees

import "golang.org/x/exp/constraints"

// Engine is what BSTree and AVLTree have in common: a mutable tree whose nodes live in a flat
// store and are referred to by index S. Index 0 always means "no node".
// Values are kept in mirrored order: everything in a node's left subtree is greater than the
// node, everything in its right subtree is less. An in-order walk is therefore descending.
// None of the methods are safe for concurrent use with a mutation; read-only methods may run
// concurrently with each other.
type Engine[T constraints.Ordered, S constraints.Unsigned] interface {
	//Make an unlinked node holding v. The node belongs to the tree's store but isn't reachable
	//until it is passed to Insert. Returns 0 once every index S can address is in use.
	Make(v T) S
	//Insert a node created by Make. Returns false if the node was discarded as a duplicate.
	Insert(n S) (bool, error)
	//Delete a node. Fails with InvalidReferenceError when n can't be deleted.
	Delete(n S) error
	//Add is Make followed by Insert. Returns 0 if v was discarded.
	Add(v T) (S, bool)
	//Remove the node holding v, if any.
	Remove(v T) bool
	//Search for v. Returns 0 when absent.
	Search(v T) S
	//Traverse all reachable nodes in the given order. Stops early if f returns false.
	Traverse(f func(S) bool, o Order)
	Successor(n S) S
	Predecessor(n S) S
	Root() S
	Size() uint
	Value(n S) T
	//Check all structural invariants, returning the first violation found.
	Check() error
}

// Order of a depth-first traversal.
type Order byte

const (
	PreOrder Order = iota
	InOrder
	PostOrder
)

func (o Order) String() string {
	switch o {
	case PreOrder:
		return "pre"
	case InOrder:
		return "in"
	case PostOrder:
		return "post"
	}
	return "unknown"
}

// Duplicates is the policy for inserting a value equal to one already in the tree.
type Duplicates byte

const (
	//RejectDuplicates discards the new node; the tree is unchanged.
	RejectDuplicates Duplicates = iota
	//AcceptDuplicates links the new node into the right relation of the equal node. The ordering
	//invariant weakens to greater-or-equal on the left and less-or-equal on the right.
	AcceptDuplicates
)

func (d Duplicates) String() string {
	if d == AcceptDuplicates {
		return "accept"
	}
	return "reject"
}

var (
	_ Engine[int, uint32] = (*BSTree[int, uint32])(nil)
	_ Engine[int, uint32] = (*AVLTree[int, uint32])(nil)
)
