package Go_Trees

import "sync/atomic"

// AtomicUint backed by uintptr
type AtomicUint struct {
	v uintptr
}

func (u *AtomicUint) Load() uint {
	return uint(atomic.LoadUintptr(&u.v))
}
func (u *AtomicUint) Add(d uint) uint {
	return uint(atomic.AddUintptr(&u.v, uintptr(d)))
}

// Sub d, wrapping like unsigned subtraction.
func (u *AtomicUint) Sub(d uint) uint {
	return uint(atomic.AddUintptr(&u.v, ^uintptr(d-1)))
}
