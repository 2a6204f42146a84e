package Queues

import (
	"sync/atomic"
)

type node[T any] struct {
	v  T
	nx atomic.Pointer[node[T]]
}

// syncLinkedQ is a lock-free Michael-Scott queue. headPtr is a dummy whose successor is the
// front item.
type syncLinkedQ[T any] struct {
	headPtr, tail atomic.Pointer[node[T]]
}

// MakeConcurrentLinkedQueue returns a Queue safe for any number of concurrent producers and
// consumers.
func MakeConcurrentLinkedQueue[T any]() Queue[T] {
	t := syncLinkedQ[T]{}
	a := new(node[T])
	t.headPtr.Store(a)
	t.tail.Store(a)
	return &t
}

func (c *syncLinkedQ[T]) Push(item T) {
	newNode := &node[T]{v: item}
	var oldTail *node[T]
	for added := false; !added; {
		oldTail = c.tail.Load()
		if oldTailNext := oldTail.nx.Load(); oldTailNext != nil {
			c.tail.CompareAndSwap(oldTail, oldTailNext)
		} else {
			added = oldTail.nx.CompareAndSwap(nil, newNode)
		}
	}
	c.tail.CompareAndSwap(oldTail, newNode)
}

func (c *syncLinkedQ[T]) Pop() (T, error) {
	var oldHead *node[T]
	for removed := false; !removed; {
		oldHeadPtr, oldTail := c.headPtr.Load(), c.tail.Load()
		oldHead = oldHeadPtr.nx.Load()
		if oldTail == oldHeadPtr {
			if oldHead == nil {
				return *new(T), &EmptyQueueError{}
			}
			c.tail.CompareAndSwap(oldTail, oldHead)
		} else {
			removed = c.headPtr.CompareAndSwap(oldHeadPtr, oldHead)
		}
	}
	return oldHead.v, nil
}

// Peek the front item, the zero value if the queue is empty.
func (c *syncLinkedQ[T]) Peek() T {
	if n := c.headPtr.Load().nx.Load(); n != nil {
		return n.v
	}
	return *new(T)
}

func (c *syncLinkedQ[T]) Empty() bool {
	return c.headPtr.Load().nx.Load() == nil
}
