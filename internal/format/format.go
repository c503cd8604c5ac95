// Package format defines the byte-exact layout of block headers and the
// alignment rules of the heap. It is the only package that knows where
// header fields live; everything above addresses blocks by arena offset.
package format

// Block header layout (little-endian):
//
//	Offset  Size  Description
//	0x00    8     capacity: usable bytes following the header, aligned
//	0x08    8     size: bytes requested by the current occupant
//	0x10    8     prev: arena offset of the previous list member
//	0x18    8     next: arena offset of the next list member
//
// prev/next hold NilOff when the neighbor is the free-list sentinel,
// which is never backed by arena bytes.
const (
	// HeaderSize is the total footprint of a block header.
	HeaderSize = 32

	// Alignment is the default allocation granularity. Capacities are
	// always a multiple of the active granularity.
	Alignment = 8

	capacityOff = 0x00
	sizeOff     = 0x08
	prevOff     = 0x10
	nextOff     = 0x18
)

// NilOff marks "no arena offset" in encoded prev/next fields.
const NilOff int64 = -1

// Align returns n aligned up to the next Alignment boundary.
//
// Example:
//
//	Align(1) = 8
//	Align(8) = 8
//	Align(9) = 16
func Align(n int64) int64 {
	return (n + Alignment - 1) & ^int64(Alignment-1)
}

// AlignTo returns n aligned up to the next multiple of granularity,
// which must be a power of two.
func AlignTo(n, granularity int64) int64 {
	return (n + granularity - 1) & ^(granularity - 1)
}

// IsPowerOfTwo reports whether n is a positive power of two.
func IsPowerOfTwo(n int64) bool {
	return n > 0 && n&(n-1) == 0
}

// ReadCapacity reads the capacity field of the header at off.
func ReadCapacity(b []byte, off int64) int64 {
	return ReadI64(b, off+capacityOff)
}

// PutCapacity writes the capacity field of the header at off.
func PutCapacity(b []byte, off, v int64) {
	PutI64(b, off+capacityOff, v)
}

// ReadSize reads the size field of the header at off.
func ReadSize(b []byte, off int64) int64 {
	return ReadI64(b, off+sizeOff)
}

// PutSize writes the size field of the header at off.
func PutSize(b []byte, off, v int64) {
	PutI64(b, off+sizeOff, v)
}

// ReadPrev reads the prev link of the header at off.
func ReadPrev(b []byte, off int64) int64 {
	return ReadI64(b, off+prevOff)
}

// PutPrev writes the prev link of the header at off.
func PutPrev(b []byte, off, v int64) {
	PutI64(b, off+prevOff, v)
}

// ReadNext reads the next link of the header at off.
func ReadNext(b []byte, off int64) int64 {
	return ReadI64(b, off+nextOff)
}

// PutNext writes the next link of the header at off.
func PutNext(b []byte, off, v int64) {
	PutI64(b, off+nextOff, v)
}
