package alloc

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/MarceloChelo99/cse-30341-fa20-project03-flying-solo/heap/brk"
	"github.com/MarceloChelo99/cse-30341-fa20-project03-flying-solo/heap/stats"
	"github.com/MarceloChelo99/cse-30341-fa20-project03-flying-solo/internal/format"
)

const testReservation = 1 << 20

// ============================================================================
// Test Helpers
// ============================================================================

// newTestHeap builds a heap over a 1MB slice reservation.
func newTestHeap(t testing.TB, cfg Config) *Heap {
	t.Helper()
	b, err := brk.NewSlice(testReservation)
	require.NoError(t, err)
	h, err := NewHeap(b, stats.NewRegistry(), cfg)
	require.NoError(t, err)
	return h
}

// growBlocks grows one detached block per size, in address order.
func growBlocks(t testing.TB, h *Heap, sizes ...int64) []*Block {
	t.Helper()
	out := make([]*Block, 0, len(sizes))
	for _, s := range sizes {
		b, err := h.Grow(s)
		require.NoError(t, err)
		out = append(out, b)
	}
	return out
}

// buildFreeList grows one block per size with an allocated spacer block
// between each pair, so none of the returned blocks are address-adjacent,
// then inserts them in order. The list ends up holding exactly the
// returned blocks, in the given order.
func buildFreeList(t testing.TB, h *Heap, fl *FreeList, sizes ...int64) []*Block {
	t.Helper()
	out := make([]*Block, 0, len(sizes))
	for i, s := range sizes {
		b, err := h.Grow(s)
		require.NoError(t, err)
		out = append(out, b)
		if i < len(sizes)-1 {
			_, err = h.Grow(8) // spacer stays allocated
			require.NoError(t, err)
		}
	}
	for _, b := range out {
		fl.Insert(b)
	}
	require.Equal(t, len(sizes), fl.Length())
	return out
}

// listBlocks collects the list members in forward order.
func listBlocks(fl *FreeList) []*Block {
	var out []*Block
	fl.Walk(func(b *Block) bool {
		out = append(out, b)
		return true
	})
	return out
}

// assertListConsistent checks that forward and backward traversal visit
// the same blocks in reverse order, that every neighbor link is
// symmetric, and that the encoded header links agree with the runtime
// pointers.
func assertListConsistent(t testing.TB, fl *FreeList) {
	t.Helper()

	var forward []*Block
	for curr := fl.sentinel.next; curr != &fl.sentinel; curr = curr.next {
		require.False(t, curr.sentinel, "sentinel reachable as a member")
		forward = append(forward, curr)
		require.Less(t, len(forward), 1<<16, "forward traversal does not terminate")
	}

	var backward []*Block
	for curr := fl.sentinel.prev; curr != &fl.sentinel; curr = curr.prev {
		backward = append(backward, curr)
		require.Less(t, len(backward), 1<<16, "backward traversal does not terminate")
	}

	require.Equal(t, len(forward), len(backward), "forward/backward member counts differ")
	for i, b := range forward {
		require.Same(t, b, backward[len(backward)-1-i], "member %d differs between directions", i)
	}

	for _, b := range forward {
		require.Same(t, b, b.next.prev, "next->prev broken at off=%d", b.off)
		require.Same(t, b, b.prev.next, "prev->next broken at off=%d", b.off)

		buf := b.heap.buf()
		require.Equal(t, offsetOf(b.prev), format.ReadPrev(buf, b.off), "encoded prev stale at off=%d", b.off)
		require.Equal(t, offsetOf(b.next), format.ReadNext(buf, b.off), "encoded next stale at off=%d", b.off)
		require.Equal(t, b.capacity, format.ReadCapacity(buf, b.off), "encoded capacity stale at off=%d", b.off)
		require.Equal(t, b.size, format.ReadSize(buf, b.off), "encoded size stale at off=%d", b.off)
	}
}

// assertDetached checks the self-loop post-condition.
func assertDetached(t testing.TB, b *Block) {
	t.Helper()
	require.Same(t, b, b.prev)
	require.Same(t, b, b.next)
}

// failingBrk wraps a Brk and rejects shrink requests, for exercising
// all-or-nothing failure paths.
type failingBrk struct {
	brk.Brk
}

func (f *failingBrk) Sbrk(delta int64) (int64, error) {
	if delta < 0 {
		return 0, brk.ErrBadShrink
	}
	return f.Brk.Sbrk(delta)
}

func newFailingShrinkHeap(t testing.TB, cfg Config) *Heap {
	t.Helper()
	b, err := brk.NewSlice(testReservation)
	require.NoError(t, err)
	h, err := NewHeap(&failingBrk{b}, stats.NewRegistry(), cfg)
	require.NoError(t, err)
	return h
}
