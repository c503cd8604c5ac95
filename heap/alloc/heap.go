package alloc

import (
	"fmt"
	"os"

	"github.com/zeebo/xxh3"

	"github.com/MarceloChelo99/cse-30341-fa20-project03-flying-solo/heap/brk"
	"github.com/MarceloChelo99/cse-30341-fa20-project03-flying-solo/heap/stats"
	"github.com/MarceloChelo99/cse-30341-fa20-project03-flying-solo/internal/format"
)

// Runtime debug flag for allocation tracing - controlled by HEAP_LOG_ALLOC env var.
var logAlloc = os.Getenv("HEAP_LOG_ALLOC") != ""

func tracef(msg string, args ...any) {
	if logAlloc {
		fmt.Fprintf(os.Stderr, "[HEAP] "+msg+"\n", args...)
	}
}

// Heap owns a break-primitive reservation and hands out blocks carved
// from it. It reports every state change into its stats registry.
//
// A Heap is not safe for concurrent use; callers serialize access to the
// whole core (see heap/malloc).
type Heap struct {
	b   brk.Brk
	reg *stats.Registry
	cfg Config
}

// NewHeap wraps a break primitive. The registry must not be nil; counters
// are the core's only observability channel.
func NewHeap(b brk.Brk, reg *stats.Registry, cfg Config) (*Heap, error) {
	cfg, err := cfg.normalized()
	if err != nil {
		return nil, err
	}
	return &Heap{b: b, reg: reg, cfg: cfg}, nil
}

// Break returns the current break offset of the underlying primitive.
func (h *Heap) Break() int64 {
	return h.b.Break()
}

// Config returns the active heap configuration.
func (h *Heap) Config() Config {
	return h.cfg
}

// Stats returns the registry this heap reports into.
func (h *Heap) Stats() *stats.Registry {
	return h.reg
}

// Align rounds n up to the heap's allocation granularity.
func (h *Heap) Align(n int64) int64 {
	return format.AlignTo(n, h.cfg.Alignment)
}

func (h *Heap) buf() []byte {
	return h.b.Bytes()
}

// Grow extends the heap by header + aligned(size) bytes and returns the
// new block, detached and placed at the previous break. On failure no
// block is created and no state changes.
func (h *Heap) Grow(size int64) (*Block, error) {
	if size <= 0 {
		return nil, ErrBadSize
	}
	capacity := h.Align(size)
	footprint := format.HeaderSize + capacity

	off, err := h.b.Sbrk(footprint)
	if err != nil {
		return nil, err
	}

	b := &Block{heap: h, off: off, capacity: capacity, size: size}
	b.prev, b.next = b, b

	buf := h.buf()
	format.PutCapacity(buf, off, capacity)
	format.PutSize(buf, off, size)
	format.PutPrev(buf, off, off)
	format.PutNext(buf, off, off)

	h.reg.Add(stats.HeapSize, footprint)
	h.reg.Add(stats.Blocks, 1)
	h.reg.Add(stats.Grows, 1)

	tracef("grow: size=%d capacity=%d off=%d break=%d", size, capacity, off, h.Break())
	return b, nil
}

// BlockAt reconstructs the block whose header starts at off from the
// arena bytes. The result is detached; it is the caller's responsibility
// that off names a block previously handed out by this heap and currently
// in no list.
func (h *Heap) BlockAt(off int64) *Block {
	buf := h.buf()
	b := &Block{
		heap:     h,
		off:      off,
		capacity: format.ReadCapacity(buf, off),
		size:     format.ReadSize(buf, off),
	}
	b.prev, b.next = b, b
	format.PutPrev(buf, off, off)
	format.PutNext(buf, off, off)
	return b
}

// DataAt returns the header offset for a data pointer handed out from
// this heap, or false if the pointer is foreign.
func (h *Heap) DataAt(p []byte) (int64, bool) {
	dataOff, ok := h.b.Offset(p)
	if !ok || dataOff < format.HeaderSize {
		return 0, false
	}
	return dataOff - format.HeaderSize, true
}

// Checksum returns a content hash of the live heap image, for diagnostics
// and golden comparisons.
func (h *Heap) Checksum() uint64 {
	return xxh3.Hash(h.buf()[:h.Break()])
}
