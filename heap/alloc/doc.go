// Package alloc implements the block and free-list core of a linear-heap
// allocator built on a program-break primitive.
//
// # Overview
//
// The heap is a single contiguous arena whose top is the break. Every
// region carved from it is a Block: a fixed 32-byte header followed by an
// aligned data region. Blocks currently available for reuse live on a
// FreeList, a sentinel-anchored circular doubly-linked list with
// pluggable placement (first-fit, best-fit, worst-fit) and
// coalesce-on-insert.
//
// # Allocation flow
//
// A caller (see heap/malloc) asks the FreeList to Search; on a miss it
// asks the Heap to Grow. The chosen block may then be Split to shed
// excess capacity and is Detached from the list before use. On release
// the block is Inserted back (merging with an address-adjacent member
// when possible), and an edge block whose footprint exceeds the trim
// threshold may be Released to the break primitive.
//
// # Counters
//
// Every operation reports into a stats.Registry: heap bytes, live blocks,
// grow/shrink events, reuse hits, merges and splits. The registry is the
// core's only observability channel; reading it belongs to outer layers.
//
// # Thread safety
//
// Nothing in this package locks. Search, Split, Merge, Insert and Grow
// assume exclusive access to the heap and list for their whole duration;
// concurrent callers must serialize around the entire core, as
// heap/malloc does with a single mutex.
package alloc
