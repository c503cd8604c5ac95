// Package stats holds the counter registry the allocator core reports
// into. A Registry is an explicit object so independent heaps can carry
// independent counters; there is no process-wide instance.
package stats

// Counter identifies one tracked quantity.
type Counter int

const (
	// HeapSize is the total bytes currently reserved from the break primitive.
	HeapSize Counter = iota
	// Blocks is the number of live block headers on the heap.
	Blocks
	// Grows counts heap-growth events.
	Grows
	// Shrinks counts heap-shrink (trim) events.
	Shrinks
	// Reuses counts free-list search hits.
	Reuses
	// Merges counts coalesce events.
	Merges
	// Splits counts block split events.
	Splits

	numCounters
)

var counterNames = [numCounters]string{
	HeapSize: "heap_size",
	Blocks:   "blocks",
	Grows:    "grows",
	Shrinks:  "shrinks",
	Reuses:   "reuses",
	Merges:   "merges",
	Splits:   "splits",
}

// String returns the snapshot key for the counter.
func (c Counter) String() string {
	if c < 0 || c >= numCounters {
		return "unknown"
	}
	return counterNames[c]
}

// Registry is a set of allocator counters. It is initialized to zero and
// never reset; like the core it reports for, it is not safe for
// concurrent use without external serialization.
type Registry struct {
	counts [numCounters]int64
}

// NewRegistry returns a zeroed registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Add adds delta (which may be negative) to the counter.
func (r *Registry) Add(c Counter, delta int64) {
	r.counts[c] += delta
}

// Get returns the current value of the counter.
func (r *Registry) Get(c Counter) int64 {
	return r.counts[c]
}

// Snapshot returns a name-keyed copy of all counters.
func (r *Registry) Snapshot() map[string]int64 {
	m := make(map[string]int64, numCounters)
	for c := Counter(0); c < numCounters; c++ {
		m[c.String()] = r.counts[c]
	}
	return m
}

// Counters returns every counter in declaration order, for stable reports.
func Counters() []Counter {
	out := make([]Counter, numCounters)
	for c := Counter(0); c < numCounters; c++ {
		out[c] = c
	}
	return out
}
