// Package malloc is the public entry-point layer over the allocator
// core: size validation, zero-fill, copy-on-resize and the one lock that
// serializes every core call. Each Allocator owns an independent heap,
// free list and counter registry, so multiple instances can coexist.
package malloc

import (
	"errors"
	"sync"

	"github.com/MarceloChelo99/cse-30341-fa20-project03-flying-solo/heap/alloc"
	"github.com/MarceloChelo99/cse-30341-fa20-project03-flying-solo/heap/brk"
	"github.com/MarceloChelo99/cse-30341-fa20-project03-flying-solo/heap/stats"
)

var (
	// ErrBadSize indicates a negative allocation size.
	ErrBadSize = errors.New("malloc: size must be non-negative")

	// ErrOverflow indicates a calloc multiplication that overflows.
	ErrOverflow = errors.New("malloc: allocation size overflows")

	// ErrForeignPointer indicates a free/realloc of memory this
	// allocator never handed out.
	ErrForeignPointer = errors.New("malloc: pointer not from this heap")
)

// Allocator bundles a heap, a free list and the mutex that serializes
// access to both. The core beneath is single-threaded by design; this is
// the caller that owns the locking discipline.
type Allocator struct {
	mu   sync.Mutex
	heap *alloc.Heap
	free *alloc.FreeList
}

// New builds an allocator over the given break primitive.
func New(b brk.Brk, cfg alloc.Config) (*Allocator, error) {
	h, err := alloc.NewHeap(b, stats.NewRegistry(), cfg)
	if err != nil {
		return nil, err
	}
	return &Allocator{
		heap: h,
		free: alloc.NewFreeList(h.Config().Policy),
	}, nil
}

// Malloc returns a region of at least n bytes. Reused memory is not
// zeroed; use Calloc for that. Malloc(0) returns nil with no error.
func (a *Allocator) Malloc(n int) ([]byte, error) {
	if n < 0 {
		return nil, ErrBadSize
	}
	if n == 0 {
		return nil, nil
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.malloc(int64(n))
}

// Calloc returns a zeroed region of count*n bytes, guarding the multiply
// against overflow.
func (a *Allocator) Calloc(count, n int) ([]byte, error) {
	if count < 0 || n < 0 {
		return nil, ErrBadSize
	}
	if count == 0 || n == 0 {
		return nil, nil
	}
	total := count * n
	if total/count != n {
		return nil, ErrOverflow
	}
	a.mu.Lock()
	defer a.mu.Unlock()

	p, err := a.malloc(int64(total))
	if err != nil {
		return nil, err
	}
	clear(p)
	return p, nil
}

// Realloc resizes the region at p to n bytes. The data always moves: a
// fresh region is allocated, min(old requested size, n) bytes are copied
// and the old region is freed. Realloc(nil, n) behaves like Malloc(n);
// Realloc(p, 0) frees p and returns nil.
func (a *Allocator) Realloc(p []byte, n int) ([]byte, error) {
	if n < 0 {
		return nil, ErrBadSize
	}
	if len(p) == 0 {
		return a.Malloc(n)
	}
	a.mu.Lock()
	defer a.mu.Unlock()

	off, ok := a.heap.DataAt(p)
	if !ok {
		return nil, ErrForeignPointer
	}
	old := a.heap.BlockAt(off)
	if n == 0 {
		a.release(old)
		return nil, nil
	}

	fresh, err := a.malloc(int64(n))
	if err != nil {
		return nil, err
	}
	copied := old.Size()
	if int64(n) < copied {
		copied = int64(n)
	}
	copy(fresh, old.Data()[:copied])
	a.release(old)
	return fresh, nil
}

// Free returns the region at p to the free list, coalescing with an
// adjacent free block when possible, and trims the heap when the edge
// block's footprint exceeds the trim threshold. Free(nil) is a no-op.
func (a *Allocator) Free(p []byte) error {
	if len(p) == 0 {
		return nil
	}
	a.mu.Lock()
	defer a.mu.Unlock()

	off, ok := a.heap.DataAt(p)
	if !ok {
		return ErrForeignPointer
	}
	a.release(a.heap.BlockAt(off))
	return nil
}

// malloc is the core flow: search, split and detach, else grow.
// Caller holds a.mu.
func (a *Allocator) malloc(n int64) ([]byte, error) {
	block := a.free.Search(n)
	if block != nil {
		block.Split(n)
		block.Detach()
	} else {
		var err error
		block, err = a.heap.Grow(n)
		if err != nil {
			return nil, err
		}
	}
	return block.Data()[:n:n], nil
}

// release inserts the block into the free list and then tries to give an
// edge block back to the break primitive. Caller holds a.mu.
func (a *Allocator) release(b *alloc.Block) {
	a.free.Insert(b)

	var edge *alloc.Block
	a.free.Walk(func(m *alloc.Block) bool {
		if m.Releasable() {
			edge = m
			return false
		}
		return true
	})
	if edge == nil {
		return
	}
	edge.Detach()
	if err := edge.Release(); err != nil {
		// Shrink rejected by the primitive; keep the block reusable.
		a.free.Insert(edge)
	}
}

// Stats returns a snapshot of the allocator's counters.
func (a *Allocator) Stats() map[string]int64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.heap.Stats().Snapshot()
}

// FreeListLength returns the number of blocks currently reusable.
func (a *Allocator) FreeListLength() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.free.Length()
}

// Checksum returns a content hash of the live heap image.
func (a *Allocator) Checksum() uint64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.heap.Checksum()
}

// Policy returns the placement policy this allocator searches with.
func (a *Allocator) Policy() alloc.Policy {
	return a.free.Policy()
}
