package alloc

import "github.com/MarceloChelo99/cse-30341-fa20-project03-flying-solo/heap/stats"

// FreeList is a sentinel-anchored circular doubly-linked list of the
// blocks currently available for reuse. The sentinel never holds data
// and is never returned by search. A block leaves the list the moment it
// is handed to a caller (via Detach) and comes back through Insert.
type FreeList struct {
	policy   Policy
	sentinel Block
}

// NewFreeList returns an empty free list using the given placement policy.
func NewFreeList(policy Policy) *FreeList {
	fl := &FreeList{policy: policy}
	fl.sentinel.sentinel = true
	fl.sentinel.capacity = sentinelMark
	fl.sentinel.size = sentinelMark
	fl.sentinel.prev = &fl.sentinel
	fl.sentinel.next = &fl.sentinel
	return fl
}

// Policy returns the placement policy the list searches with.
func (fl *FreeList) Policy() Policy {
	return fl.policy
}

// Search scans the list for a block with capacity >= size under the
// configured placement policy. A hit updates the candidate's size field
// (informational bookkeeping) and bumps the reuse counter; the block
// stays in the list; removal is the caller's job, after any split.
// A miss returns nil and changes nothing.
func (fl *FreeList) Search(size int64) *Block {
	var found *Block
	switch fl.policy {
	case BestFit:
		found = fl.searchBest(size)
	case WorstFit:
		found = fl.searchWorst(size)
	default:
		found = fl.searchFirst(size)
	}
	if found == nil {
		return nil
	}
	found.setSize(size)
	found.heap.reg.Add(stats.Reuses, 1)
	return found
}

// searchFirst returns the first block large enough.
func (fl *FreeList) searchFirst(size int64) *Block {
	for curr := fl.sentinel.next; curr != &fl.sentinel; curr = curr.next {
		if curr.capacity >= size {
			return curr
		}
	}
	return nil
}

// searchBest returns the smallest block large enough, ties broken by
// first encountered.
func (fl *FreeList) searchBest(size int64) *Block {
	var best *Block
	for curr := fl.sentinel.next; curr != &fl.sentinel; curr = curr.next {
		if curr.capacity >= size && (best == nil || curr.capacity < best.capacity) {
			best = curr
		}
	}
	return best
}

// searchWorst returns the largest block large enough, ties broken by
// first encountered.
func (fl *FreeList) searchWorst(size int64) *Block {
	var worst *Block
	for curr := fl.sentinel.next; curr != &fl.sentinel; curr = curr.next {
		if curr.capacity >= size && (worst == nil || curr.capacity > worst.capacity) {
			worst = curr
		}
	}
	return worst
}

// Insert returns a freed block to the list, coalescing with an
// address-adjacent member when one exists. The scan performs at most one
// merge per call: a block contiguous with members on both sides coalesces
// with only one of them in this pass. That single-pass behavior is part
// of the list's contract; callers must not rely on full bidirectional
// coalescing.
func (fl *FreeList) Insert(b *Block) {
	for curr := fl.sentinel.next; curr != &fl.sentinel; curr = curr.next {
		if b.Merge(curr) {
			// b absorbed curr; take over curr's list position.
			link(curr.prev, b)
			link(b, curr.next)
			return
		}
		if curr.Merge(b) {
			// b's memory was folded into curr's existing entry.
			return
		}
	}

	// No adjacency anywhere: append at the tail, just before the sentinel.
	tail := fl.sentinel.prev
	link(tail, b)
	link(b, &fl.sentinel)
}

// Length counts the members of the list, sentinel excluded.
func (fl *FreeList) Length() int {
	n := 0
	for curr := fl.sentinel.next; curr != &fl.sentinel; curr = curr.next {
		n++
	}
	return n
}

// Walk calls fn for each member in list order until fn returns false.
// The list must not be mutated during the walk.
func (fl *FreeList) Walk(fn func(*Block) bool) {
	for curr := fl.sentinel.next; curr != &fl.sentinel; curr = curr.next {
		if !fn(curr) {
			return
		}
	}
}
