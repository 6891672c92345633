package gapbuffer

import (
	"fmt"
	"iter"
)

// Iterator is a position in the logical sequence of a GapBuffer.
//
// It stores a physical offset that never rests inside the gap, together with
// the buffer generation it was created in. Any edit, gap move or
// reallocation makes it stale; a stale iterator reports ErrStaleIterator
// instead of reading shifted storage.
type Iterator[T Scalar] struct {
	buf *GapBuffer[T]
	off int
	gen uint64
}

// Begin returns an iterator at the first element.
func (g *GapBuffer[T]) Begin() Iterator[T] {
	return g.iterAt(0)
}

// End returns an iterator one past the last element.
func (g *GapBuffer[T]) End() Iterator[T] {
	return g.iterAt(g.Len())
}

// IterAt returns an iterator at logical index i in [0, Len()].
func (g *GapBuffer[T]) IterAt(i int) (Iterator[T], error) {
	if i < 0 || i > g.Len() {
		return Iterator[T]{}, fmt.Errorf("iterator at %d (len %d): %w", i, g.Len(), ErrOutOfRange)
	}
	return g.iterAt(i), nil
}

func (g *GapBuffer[T]) iterAt(i int) Iterator[T] {
	return Iterator[T]{buf: g, off: g.physical(i), gen: g.gen}
}

func (it Iterator[T]) check() error {
	if it.buf == nil {
		return fmt.Errorf("iterator not bound to a buffer: %w", ErrStaleIterator)
	}
	if it.gen != it.buf.gen {
		return fmt.Errorf("iterator generation %d, buffer generation %d: %w", it.gen, it.buf.gen, ErrStaleIterator)
	}
	g := it.buf
	if it.off > g.gapStart && it.off < g.gapEnd {
		return fmt.Errorf("offset %d in gap [%d, %d): %w", it.off, g.gapStart, g.gapEnd, ErrInvalidPosition)
	}
	return nil
}

// Valid returns true if the iterator can still be used.
func (it Iterator[T]) Valid() bool {
	return it.check() == nil
}

// Offset returns the physical offset into the backing storage.
func (it Iterator[T]) Offset() int {
	return it.off
}

// Index returns the logical index of the iterator.
func (it Iterator[T]) Index() (int, error) {
	if err := it.check(); err != nil {
		return 0, err
	}
	return it.buf.logical(it.off), nil
}

// element returns the physical offset of the element under the iterator.
func (it Iterator[T]) element() (int, error) {
	if err := it.check(); err != nil {
		return 0, err
	}
	g := it.buf
	off := it.off
	if off == g.gapStart {
		off = g.gapEnd
	}
	if off >= len(g.data) {
		return 0, fmt.Errorf("dereference at end (len %d): %w", g.Len(), ErrOutOfRange)
	}
	return off, nil
}

// Value returns the element under the iterator.
func (it Iterator[T]) Value() (T, error) {
	off, err := it.element()
	if err != nil {
		var zero T
		return zero, err
	}
	return it.buf.data[off], nil
}

// Set replaces the element under the iterator. It does not invalidate
// other iterators.
func (it Iterator[T]) Set(v T) error {
	off, err := it.element()
	if err != nil {
		return err
	}
	it.buf.data[off] = v
	return nil
}

// Next returns the iterator advanced by one element, skipping the gap.
func (it Iterator[T]) Next() (Iterator[T], error) {
	if err := it.check(); err != nil {
		return it, err
	}
	g := it.buf
	off := it.off
	if off == g.gapStart {
		off = g.gapEnd
	}
	if off >= len(g.data) {
		return it, fmt.Errorf("advance past end (len %d): %w", g.Len(), ErrOutOfRange)
	}
	off++
	if off == g.gapStart {
		off = g.gapEnd
	}
	it.off = off
	return it, nil
}

// Prev returns the iterator moved back by one element, skipping the gap.
func (it Iterator[T]) Prev() (Iterator[T], error) {
	if err := it.check(); err != nil {
		return it, err
	}
	g := it.buf
	off := it.off
	if off == g.gapEnd {
		off = g.gapStart
	}
	if off == 0 {
		return it, fmt.Errorf("retreat before start: %w", ErrOutOfRange)
	}
	it.off = off - 1
	return it, nil
}

// Add returns the iterator moved by n elements. The result equals |n| calls
// to Next (or Prev for negative n).
func (it Iterator[T]) Add(n int) (Iterator[T], error) {
	if err := it.check(); err != nil {
		return it, err
	}
	g := it.buf
	i := g.logical(it.off) + n
	if i < 0 || i > g.Len() {
		return it, fmt.Errorf("move by %d to %d (len %d): %w", n, i, g.Len(), ErrOutOfRange)
	}
	return g.iterAt(i), nil
}

// Sub returns the logical distance it - other. The gap does not count.
func (it Iterator[T]) Sub(other Iterator[T]) (int, error) {
	if err := it.check(); err != nil {
		return 0, err
	}
	if err := other.check(); err != nil {
		return 0, err
	}
	if it.buf != other.buf {
		return 0, ErrIteratorMismatch
	}
	return it.buf.distance(other.off, it.off), nil
}

// distance returns the logical distance between two physical offsets.
func (g *GapBuffer[T]) distance(from, to int) int {
	switch {
	case from <= g.gapStart && to <= g.gapStart:
		return to - from
	case from >= g.gapEnd && to >= g.gapEnd:
		return to - from
	case from <= g.gapStart:
		return (g.gapStart - from) + (to - g.gapEnd)
	default:
		return -((g.gapStart - to) + (from - g.gapEnd))
	}
}

// Equal returns true if both iterators are valid and at the same position
// of the same buffer.
func (it Iterator[T]) Equal(other Iterator[T]) bool {
	if it.check() != nil || other.check() != nil || it.buf != other.buf {
		return false
	}
	return it.buf.logical(it.off) == other.buf.logical(other.off)
}

// ReverseIterator walks the logical sequence from the end to the start.
// Like a C++ reverse iterator it refers to the element before its base.
type ReverseIterator[T Scalar] struct {
	base Iterator[T]
}

// RBegin returns a reverse iterator at the last element.
func (g *GapBuffer[T]) RBegin() ReverseIterator[T] {
	return ReverseIterator[T]{base: g.End()}
}

// REnd returns a reverse iterator one before the first element.
func (g *GapBuffer[T]) REnd() ReverseIterator[T] {
	return ReverseIterator[T]{base: g.Begin()}
}

// Base returns the underlying forward iterator, one past the element r
// refers to.
func (r ReverseIterator[T]) Base() Iterator[T] {
	return r.base
}

// Valid returns true if the iterator can still be used.
func (r ReverseIterator[T]) Valid() bool {
	return r.base.Valid()
}

// Index returns the logical index of the element r refers to.
func (r ReverseIterator[T]) Index() (int, error) {
	i, err := r.base.Index()
	return i - 1, err
}

// Value returns the element r refers to.
func (r ReverseIterator[T]) Value() (T, error) {
	prev, err := r.base.Prev()
	if err != nil {
		var zero T
		return zero, err
	}
	return prev.Value()
}

// Set replaces the element r refers to.
func (r ReverseIterator[T]) Set(v T) error {
	prev, err := r.base.Prev()
	if err != nil {
		return err
	}
	return prev.Set(v)
}

// Next moves toward the start of the sequence.
func (r ReverseIterator[T]) Next() (ReverseIterator[T], error) {
	base, err := r.base.Prev()
	return ReverseIterator[T]{base: base}, err
}

// Prev moves toward the end of the sequence.
func (r ReverseIterator[T]) Prev() (ReverseIterator[T], error) {
	base, err := r.base.Next()
	return ReverseIterator[T]{base: base}, err
}

// Add moves n elements toward the start of the sequence.
func (r ReverseIterator[T]) Add(n int) (ReverseIterator[T], error) {
	base, err := r.base.Add(-n)
	return ReverseIterator[T]{base: base}, err
}

// Sub returns the number of reverse steps from other to r.
func (r ReverseIterator[T]) Sub(other ReverseIterator[T]) (int, error) {
	return other.base.Sub(r.base)
}

// Equal returns true if both reverse iterators refer to the same position.
func (r ReverseIterator[T]) Equal(other ReverseIterator[T]) bool {
	return r.base.Equal(other.base)
}

// All returns an iterator over (index, element) pairs from start to end.
// Iteration stops early if the buffer layout changes.
func (g *GapBuffer[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		gen := g.gen
		i := 0
		for off := 0; ; off++ {
			if g.gen != gen {
				return
			}
			if off == g.gapStart {
				off = g.gapEnd
			}
			if off >= len(g.data) {
				return
			}
			if !yield(i, g.data[off]) {
				return
			}
			i++
		}
	}
}

// Backward returns an iterator over (index, element) pairs from end to
// start. Iteration stops early if the buffer layout changes.
func (g *GapBuffer[T]) Backward() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		gen := g.gen
		i := g.Len() - 1
		for off := len(g.data) - 1; ; off-- {
			if g.gen != gen {
				return
			}
			if off == g.gapEnd-1 && g.gapEnd > g.gapStart {
				off = g.gapStart - 1
			}
			if off < 0 {
				return
			}
			if !yield(i, g.data[off]) {
				return
			}
			i--
		}
	}
}
