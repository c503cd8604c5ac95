package malloc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MarceloChelo99/cse-30341-fa20-project03-flying-solo/heap/alloc"
	"github.com/MarceloChelo99/cse-30341-fa20-project03-flying-solo/heap/brk"
)

func newTestAllocator(t testing.TB, cfg alloc.Config) *Allocator {
	t.Helper()
	b, err := brk.NewSlice(1 << 20)
	require.NoError(t, err)
	a, err := New(b, cfg)
	require.NoError(t, err)
	return a
}

func TestMallocBasic(t *testing.T) {
	a := newTestAllocator(t, alloc.DefaultConfig)

	p, err := a.Malloc(100)
	require.NoError(t, err)
	require.Len(t, p, 100)

	for i := range p {
		p[i] = byte(i)
	}
	assert.Equal(t, byte(99), p[99])

	st := a.Stats()
	assert.Equal(t, int64(1), st["grows"])
	assert.Equal(t, int64(1), st["blocks"])
}

func TestMallocZeroAndNegative(t *testing.T) {
	a := newTestAllocator(t, alloc.DefaultConfig)

	p, err := a.Malloc(0)
	require.NoError(t, err)
	assert.Nil(t, p)

	_, err = a.Malloc(-1)
	assert.ErrorIs(t, err, ErrBadSize)
}

func TestMallocDistinctRegions(t *testing.T) {
	a := newTestAllocator(t, alloc.DefaultConfig)

	p1, err := a.Malloc(64)
	require.NoError(t, err)
	p2, err := a.Malloc(64)
	require.NoError(t, err)

	for i := range p1 {
		p1[i] = 0xAA
	}
	for i := range p2 {
		p2[i] = 0xBB
	}
	assert.Equal(t, byte(0xAA), p1[0])
	assert.Equal(t, byte(0xBB), p2[0])
}

func TestFreeThenReuse(t *testing.T) {
	// High trim threshold keeps freed blocks on the free list.
	a := newTestAllocator(t, alloc.Config{TrimThreshold: 1 << 19})

	p, err := a.Malloc(128)
	require.NoError(t, err)
	require.NoError(t, a.Free(p))
	assert.Equal(t, 1, a.FreeListLength())

	q, err := a.Malloc(100)
	require.NoError(t, err)
	require.Len(t, q, 100)

	st := a.Stats()
	assert.Equal(t, int64(1), st["reuses"])
	assert.Equal(t, int64(1), st["grows"], "reuse must not grow the heap")
	assert.Zero(t, a.FreeListLength())
}

func TestFreeNil(t *testing.T) {
	a := newTestAllocator(t, alloc.DefaultConfig)
	assert.NoError(t, a.Free(nil))
}

func TestFreeForeignPointer(t *testing.T) {
	a := newTestAllocator(t, alloc.DefaultConfig)
	err := a.Free(make([]byte, 32))
	assert.ErrorIs(t, err, ErrForeignPointer)
}

func TestFreeTrimsHeapEdge(t *testing.T) {
	a := newTestAllocator(t, alloc.Config{TrimThreshold: 64})

	p, err := a.Malloc(4096)
	require.NoError(t, err)
	require.NoError(t, a.Free(p))

	st := a.Stats()
	assert.Equal(t, int64(1), st["shrinks"])
	assert.Zero(t, st["heap_size"], "edge block footprint returned to the primitive")
	assert.Zero(t, a.FreeListLength())
}

func TestFreeBelowTrimThresholdStaysListed(t *testing.T) {
	a := newTestAllocator(t, alloc.Config{TrimThreshold: 1 << 19})

	p, err := a.Malloc(64)
	require.NoError(t, err)
	require.NoError(t, a.Free(p))

	st := a.Stats()
	assert.Zero(t, st["shrinks"])
	assert.Equal(t, 1, a.FreeListLength())
}

func TestFreeCoalescesNeighbors(t *testing.T) {
	a := newTestAllocator(t, alloc.Config{TrimThreshold: 1 << 19})

	p1, err := a.Malloc(64)
	require.NoError(t, err)
	p2, err := a.Malloc(64)
	require.NoError(t, err)
	// Keep a third block allocated so the heap edge stays occupied.
	_, err = a.Malloc(64)
	require.NoError(t, err)

	require.NoError(t, a.Free(p1))
	require.NoError(t, a.Free(p2))

	st := a.Stats()
	assert.Equal(t, int64(1), st["merges"])
	assert.Equal(t, 1, a.FreeListLength(), "adjacent frees collapse into one block")
}

func TestCallocZeroFills(t *testing.T) {
	a := newTestAllocator(t, alloc.Config{TrimThreshold: 1 << 19})

	// Dirty a region, free it, then calloc over the reused memory.
	p, err := a.Malloc(256)
	require.NoError(t, err)
	for i := range p {
		p[i] = 0xFF
	}
	require.NoError(t, a.Free(p))

	q, err := a.Calloc(16, 16)
	require.NoError(t, err)
	require.Len(t, q, 256)
	for i, v := range q {
		require.Zero(t, v, "byte %d not zeroed", i)
	}
}

func TestCallocOverflow(t *testing.T) {
	a := newTestAllocator(t, alloc.DefaultConfig)
	const huge = int(^uint(0)>>1)/2 + 1
	_, err := a.Calloc(huge, 4)
	assert.ErrorIs(t, err, ErrOverflow)
}

func TestCallocZeroCount(t *testing.T) {
	a := newTestAllocator(t, alloc.DefaultConfig)
	p, err := a.Calloc(0, 16)
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestReallocGrowsAndCopies(t *testing.T) {
	a := newTestAllocator(t, alloc.Config{TrimThreshold: 1 << 19})

	p, err := a.Malloc(8)
	require.NoError(t, err)
	copy(p, "abcdefgh")

	q, err := a.Realloc(p, 64)
	require.NoError(t, err)
	require.Len(t, q, 64)
	assert.Equal(t, "abcdefgh", string(q[:8]))
}

func TestReallocShrinksAndTruncates(t *testing.T) {
	a := newTestAllocator(t, alloc.Config{TrimThreshold: 1 << 19})

	p, err := a.Malloc(64)
	require.NoError(t, err)
	for i := range p {
		p[i] = byte(i)
	}

	q, err := a.Realloc(p, 16)
	require.NoError(t, err)
	require.Len(t, q, 16)
	for i := range q {
		assert.Equal(t, byte(i), q[i])
	}
}

func TestReallocNilIsMalloc(t *testing.T) {
	a := newTestAllocator(t, alloc.DefaultConfig)
	p, err := a.Realloc(nil, 32)
	require.NoError(t, err)
	assert.Len(t, p, 32)
}

func TestReallocZeroIsFree(t *testing.T) {
	a := newTestAllocator(t, alloc.Config{TrimThreshold: 1 << 19})

	p, err := a.Malloc(32)
	require.NoError(t, err)

	q, err := a.Realloc(p, 0)
	require.NoError(t, err)
	assert.Nil(t, q)
	assert.Equal(t, 1, a.FreeListLength())
}

func TestReallocForeignPointer(t *testing.T) {
	a := newTestAllocator(t, alloc.DefaultConfig)
	_, err := a.Realloc(make([]byte, 8), 16)
	assert.ErrorIs(t, err, ErrForeignPointer)
}

func TestIndependentAllocators(t *testing.T) {
	a := newTestAllocator(t, alloc.DefaultConfig)
	b := newTestAllocator(t, alloc.DefaultConfig)

	_, err := a.Malloc(64)
	require.NoError(t, err)

	assert.Equal(t, int64(1), a.Stats()["grows"])
	assert.Zero(t, b.Stats()["grows"])
}

func TestPolicyPlumbing(t *testing.T) {
	a := newTestAllocator(t, alloc.Config{Policy: alloc.WorstFit})
	assert.Equal(t, alloc.WorstFit, a.Policy())
}

func TestExhaustionSurfacesError(t *testing.T) {
	b, err := brk.NewSlice(256)
	require.NoError(t, err)
	a, err := New(b, alloc.DefaultConfig)
	require.NoError(t, err)

	_, err = a.Malloc(512)
	assert.ErrorIs(t, err, brk.ErrOutOfMemory)
}

func TestChecksumStableAcrossNoOps(t *testing.T) {
	a := newTestAllocator(t, alloc.DefaultConfig)
	_, err := a.Malloc(64)
	require.NoError(t, err)

	sum := a.Checksum()
	assert.Equal(t, sum, a.Checksum())
}
