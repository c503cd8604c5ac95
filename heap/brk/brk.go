// Package brk abstracts the program-break primitive: a contiguous memory
// reservation with a movable break separating heap from unused space.
// Implementations never relocate the reservation, so arena offsets and
// slices handed out below the break stay valid for the life of the heap.
package brk

import (
	"errors"
	"unsafe"
)

var (
	// ErrOutOfMemory indicates the break cannot be advanced any further.
	ErrOutOfMemory = errors.New("brk: out of memory")

	// ErrBadShrink indicates a shrink request that would move the break below zero.
	ErrBadShrink = errors.New("brk: shrink below start of heap")

	// ErrBadLimit indicates an invalid reservation size.
	ErrBadLimit = errors.New("brk: reservation size must be positive")
)

// Brk is the program-break primitive. Sbrk moves the break by delta bytes
// (negative shrinks) and returns the previous break on success; on failure
// the break is unchanged. Every call is synchronous and atomic with
// respect to the caller.
type Brk interface {
	// Sbrk moves the break by delta and returns the previous break.
	Sbrk(delta int64) (int64, error)

	// Break returns the current break offset.
	Break() int64

	// Bytes returns the full reservation. The slice identity is stable;
	// only bytes below the break are meaningful.
	Bytes() []byte

	// Offset resolves a pointer previously handed out from this
	// reservation back to its arena offset. Reports false for foreign
	// pointers.
	Offset(p []byte) (int64, bool)
}

// arena implements break movement over a fixed, pre-reserved buffer.
type arena struct {
	buf []byte
	brk int64
}

func (a *arena) Sbrk(delta int64) (int64, error) {
	next := a.brk + delta
	if next > int64(len(a.buf)) {
		return 0, ErrOutOfMemory
	}
	if next < 0 {
		return 0, ErrBadShrink
	}
	prev := a.brk
	a.brk = next
	return prev, nil
}

func (a *arena) Break() int64 {
	return a.brk
}

func (a *arena) Bytes() []byte {
	return a.buf
}

func (a *arena) Offset(p []byte) (int64, bool) {
	if len(p) == 0 || len(a.buf) == 0 {
		return 0, false
	}
	off := int64(uintptr(unsafe.Pointer(&p[0])) - uintptr(unsafe.Pointer(&a.buf[0])))
	if off < 0 || off >= int64(len(a.buf)) {
		return 0, false
	}
	return off, true
}

// SliceBrk is a Brk over an ordinary heap-allocated reservation. It is the
// default implementation and the one used in tests.
type SliceBrk struct {
	arena
}

// NewSlice reserves limit bytes and returns a SliceBrk with the break at zero.
func NewSlice(limit int64) (*SliceBrk, error) {
	if limit <= 0 {
		return nil, ErrBadLimit
	}
	return &SliceBrk{arena{buf: make([]byte, limit)}}, nil
}
