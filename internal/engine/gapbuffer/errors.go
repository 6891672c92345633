package gapbuffer

import "errors"

// Errors returned by gap buffer operations.
var (
	// ErrOutOfRange indicates a logical index outside the buffer.
	ErrOutOfRange = errors.New("index out of range")

	// ErrInvalidPosition indicates a position that resolves inside the gap.
	ErrInvalidPosition = errors.New("position inside gap")

	// ErrAllocationFailed indicates storage for a growth could not be obtained.
	ErrAllocationFailed = errors.New("allocation failed")

	// ErrStaleIterator indicates an iterator used after the buffer layout changed.
	ErrStaleIterator = errors.New("stale iterator")

	// ErrIteratorMismatch indicates iterators from different buffers were combined.
	ErrIteratorMismatch = errors.New("iterators belong to different buffers")
)
