package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegistryStartsZeroed(t *testing.T) {
	r := NewRegistry()
	for _, c := range Counters() {
		assert.Zero(t, r.Get(c), c.String())
	}
}

func TestAddAndGet(t *testing.T) {
	r := NewRegistry()
	r.Add(HeapSize, 4096)
	r.Add(Blocks, 1)
	r.Add(Blocks, 1)
	r.Add(Blocks, -1)

	assert.Equal(t, int64(4096), r.Get(HeapSize))
	assert.Equal(t, int64(1), r.Get(Blocks))
	assert.Zero(t, r.Get(Grows))
}

func TestSnapshot(t *testing.T) {
	r := NewRegistry()
	r.Add(Merges, 3)
	r.Add(Splits, 2)

	snap := r.Snapshot()
	assert.Len(t, snap, 7)
	assert.Equal(t, int64(3), snap["merges"])
	assert.Equal(t, int64(2), snap["splits"])
	assert.Equal(t, int64(0), snap["reuses"])

	// Snapshot is a copy, not a view.
	r.Add(Merges, 1)
	assert.Equal(t, int64(3), snap["merges"])
}

func TestCounterString(t *testing.T) {
	assert.Equal(t, "heap_size", HeapSize.String())
	assert.Equal(t, "shrinks", Shrinks.String())
	assert.Equal(t, "unknown", Counter(99).String())
}

func TestIndependentRegistries(t *testing.T) {
	a, b := NewRegistry(), NewRegistry()
	a.Add(Grows, 5)
	assert.Zero(t, b.Get(Grows))
}
