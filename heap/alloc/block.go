package alloc

import (
	"github.com/MarceloChelo99/cse-30341-fa20-project03-flying-solo/heap/stats"
	"github.com/MarceloChelo99/cse-30341-fa20-project03-flying-solo/internal/format"
)

// sentinelMark is the capacity/size value carried by list sentinels. It
// is never a legal capacity, so a sentinel can never satisfy a search.
const sentinelMark int64 = -1

// Block is a handle to one header-plus-data region of the heap arena.
// capacity and size are cached here and mirrored into the header bytes;
// prev/next are the runtime links of whichever circular list the block is
// in (a self-loop when detached). The free-list sentinel is a Block too,
// but is never backed by arena bytes.
type Block struct {
	heap     *Heap
	off      int64 // header start offset in the arena
	capacity int64 // aligned usable bytes following the header
	size     int64 // bytes requested by the current occupant

	prev, next *Block
	sentinel   bool
}

// Off returns the header start offset.
func (b *Block) Off() int64 {
	return b.off
}

// Capacity returns the usable bytes following the header.
func (b *Block) Capacity() int64 {
	return b.capacity
}

// Size returns the last requested byte count. For free blocks this is
// informational only; search overwrites it.
func (b *Block) Size() int64 {
	return b.size
}

// End returns the offset one past the block's data region.
func (b *Block) End() int64 {
	return b.off + format.HeaderSize + b.capacity
}

// Footprint returns the block's total heap footprint, header included.
func (b *Block) Footprint() int64 {
	return format.HeaderSize + b.capacity
}

// Data returns the block's full data region. The slice capacity is capped
// so writes cannot spill into the next header.
func (b *Block) Data() []byte {
	buf := b.heap.buf()
	start := b.off + format.HeaderSize
	return buf[start : start+b.capacity : start+b.capacity]
}

func (b *Block) setCapacity(v int64) {
	b.capacity = v
	format.PutCapacity(b.heap.buf(), b.off, v)
}

func (b *Block) setSize(v int64) {
	b.size = v
	format.PutSize(b.heap.buf(), b.off, v)
}

// offsetOf encodes a list neighbor for the header bytes. The sentinel has
// no arena address.
func offsetOf(b *Block) int64 {
	if b.sentinel {
		return format.NilOff
	}
	return b.off
}

// link makes b the successor of a, keeping the encoded header links in
// step with the runtime pointers. Sentinels have no header to update.
func link(a, b *Block) {
	a.next = b
	b.prev = a
	if !a.sentinel {
		format.PutNext(a.heap.buf(), a.off, offsetOf(b))
	}
	if !b.sentinel {
		format.PutPrev(b.heap.buf(), b.off, offsetOf(a))
	}
}

// Detach removes the block from whatever circular list contains it and
// leaves it as a self-loop. Safe on nil and idempotent on already
// detached blocks. Any sentinel or anchor pointing at the block elsewhere
// is the caller's to repair; only the immediate neighbors are touched.
func (b *Block) Detach() *Block {
	if b == nil {
		return nil
	}
	before, after := b.prev, b.next
	link(before, after)
	link(b, b)
	return b
}

// Merge absorbs src into b if and only if b's data region ends exactly at
// src's header. It is a pure memory-geometry operation: list links are
// not touched, and removing the absorbed src from its list is the
// caller's responsibility. A failed probe mutates nothing.
func (b *Block) Merge(src *Block) bool {
	if b == nil || src == nil || b.sentinel || src.sentinel {
		return false
	}
	if b.End() != src.off {
		return false
	}
	b.setCapacity(b.capacity + b.heap.Align(src.capacity+format.HeaderSize))

	b.heap.reg.Add(stats.Merges, 1)
	b.heap.reg.Add(stats.Blocks, -1)

	tracef("merge: dst=%d src=%d capacity=%d", b.off, src.off, b.capacity)
	return true
}

// Split carves the block into a front block of the requested size and a
// remainder, when the remainder can hold its own header plus a non-empty
// data region. Otherwise the block is returned unmodified and the caller
// keeps the excess capacity.
//
// The remainder is spliced in as the block's immediate successor, so
// Split must only be called on a member of a consistent circular list;
// splitting a detached block corrupts linkage.
func (b *Block) Split(size int64) *Block {
	aligned := b.heap.Align(size)
	if aligned+format.HeaderSize >= b.capacity {
		return b
	}

	remOff := b.off + format.HeaderSize + aligned
	remCap := b.capacity - aligned - format.HeaderSize

	rem := &Block{heap: b.heap, off: remOff, capacity: remCap, size: remCap}
	buf := b.heap.buf()
	format.PutCapacity(buf, remOff, remCap)
	format.PutSize(buf, remOff, remCap)

	after := b.next
	link(rem, after)
	link(b, rem)

	b.setCapacity(aligned)
	b.setSize(size)

	b.heap.reg.Add(stats.Splits, 1)
	b.heap.reg.Add(stats.Blocks, 1)

	tracef("split: off=%d size=%d remainder off=%d capacity=%d", b.off, size, remOff, remCap)
	return b
}

// Release returns the block's memory to the break primitive. It succeeds
// only when the block is the last one on the heap and its footprint
// exceeds the trim threshold; every failure path leaves heap state and
// counters untouched.
func (b *Block) Release() error {
	h := b.heap
	footprint := b.Footprint()
	if b.End() != h.Break() {
		return ErrNotAtEdge
	}
	if footprint <= h.cfg.TrimThreshold {
		return ErrBelowTrim
	}
	if _, err := h.b.Sbrk(-footprint); err != nil {
		return err
	}

	h.reg.Add(stats.Blocks, -1)
	h.reg.Add(stats.Shrinks, 1)
	h.reg.Add(stats.HeapSize, -footprint)

	tracef("release: off=%d footprint=%d break=%d", b.off, footprint, h.Break())
	return nil
}

// Releasable reports whether a Release call would pass its position and
// threshold preconditions. It does not predict break-primitive failures.
func (b *Block) Releasable() bool {
	return b.End() == b.heap.Break() && b.Footprint() > b.heap.cfg.TrimThreshold
}
