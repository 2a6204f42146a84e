package Trees

import "fmt"

// InvalidReferenceError is returned when a node index can't be used for the requested operation:
// it is 0, out of range, freed, not linked when it must be, or already linked when it mustn't be.
type InvalidReferenceError struct {
	Ref    uint64
	Reason string
}

func (e InvalidReferenceError) Error() string {
	return fmt.Sprintf("invalid node reference %d: %s", e.Ref, e.Reason)
}

// RotationError is the panic value of a rotation whose pivot child is missing.
type RotationError struct {
	Ref uint64
	Dir string
}

func (e RotationError) Error() string {
	return fmt.Sprintf("cannot rotate %s at node %d: pivot child is empty", e.Dir, e.Ref)
}

// CorruptError describes the first broken invariant found by Check.
type CorruptError struct {
	Ref    uint64
	Reason string
}

func (e CorruptError) Error() string {
	return fmt.Sprintf("corrupt tree at node %d: %s", e.Ref, e.Reason)
}
