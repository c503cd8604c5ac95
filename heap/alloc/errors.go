package alloc

import "errors"

var (
	// ErrBadSize indicates a non-positive grow request.
	ErrBadSize = errors.New("alloc: size must be positive")

	// ErrBadAlignment indicates a configured granularity that is not a power of two.
	ErrBadAlignment = errors.New("alloc: alignment must be a power of two")

	// ErrBadThreshold indicates a negative trim threshold.
	ErrBadThreshold = errors.New("alloc: trim threshold must be non-negative")

	// ErrNotAtEdge indicates a release attempt on a block whose data
	// region does not end at the current break.
	ErrNotAtEdge = errors.New("alloc: block not at heap edge")

	// ErrBelowTrim indicates a release attempt on a block whose footprint
	// does not exceed the trim threshold.
	ErrBelowTrim = errors.New("alloc: footprint within trim threshold")
)
