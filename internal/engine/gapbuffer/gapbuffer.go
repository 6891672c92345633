package gapbuffer

import (
	"fmt"
	"strings"
)

// Scalar is the set of fixed-width element types a GapBuffer can hold.
type Scalar interface {
	~bool |
		~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr |
		~float32 | ~float64 |
		~complex64 | ~complex128
}

// GapBuffer is a sequence of elements stored around a movable gap.
//
// The backing slice is split into a prefix [0, gapStart), the gap
// [gapStart, gapEnd) and a suffix [gapEnd, len(data)). The logical content is
// the prefix followed by the suffix.
type GapBuffer[T Scalar] struct {
	data     []T
	gapStart int
	gapEnd   int

	// gen changes whenever stored offsets may shift; iterators carry a copy.
	gen uint64

	opts options
}

// New creates an empty buffer with DefaultCapacity, or the capacity set by
// WithCapacity.
func New[T Scalar](opts ...Option) *GapBuffer[T] {
	o := applyOptions(opts)
	return &GapBuffer[T]{
		data:   make([]T, o.capacity),
		gapEnd: o.capacity,
		opts:   o,
	}
}

// FromSlice creates a buffer holding a copy of content followed by a gap of
// DefaultSlack elements, or the width set by WithSlack.
func FromSlice[T Scalar](content []T, opts ...Option) *GapBuffer[T] {
	o := applyOptions(opts)
	n := len(content)
	data := make([]T, n+o.slack)
	copy(data, content)
	return &GapBuffer[T]{
		data:     data,
		gapStart: n,
		gapEnd:   n + o.slack,
		opts:     o,
	}
}

// FromString creates a rune buffer from s.
func FromString(s string, opts ...Option) *GapBuffer[rune] {
	return FromSlice([]rune(s), opts...)
}

// Len returns the number of elements in the logical sequence.
func (g *GapBuffer[T]) Len() int {
	return len(g.data) - (g.gapEnd - g.gapStart)
}

// Cap returns the size of the backing storage.
func (g *GapBuffer[T]) Cap() int {
	return len(g.data)
}

// GapLen returns the number of free slots in the gap.
func (g *GapBuffer[T]) GapLen() int {
	return g.gapEnd - g.gapStart
}

// IsEmpty returns true if the buffer holds no elements.
func (g *GapBuffer[T]) IsEmpty() bool {
	return g.Len() == 0
}

// Cursor returns the logical index the gap currently sits at.
func (g *GapBuffer[T]) Cursor() int {
	return g.gapStart
}

// At returns the element at logical index i.
func (g *GapBuffer[T]) At(i int) (T, error) {
	off, err := g.offset(i)
	if err != nil {
		var zero T
		return zero, err
	}
	return g.data[off], nil
}

// Set replaces the element at logical index i.
func (g *GapBuffer[T]) Set(i int, v T) error {
	off, err := g.offset(i)
	if err != nil {
		return err
	}
	g.data[off] = v
	return nil
}

// offset maps a logical index of an existing element to its physical offset.
func (g *GapBuffer[T]) offset(i int) (int, error) {
	if i < 0 || i >= g.Len() {
		return 0, fmt.Errorf("index %d (len %d): %w", i, g.Len(), ErrOutOfRange)
	}
	off := g.physical(i)
	if off >= g.gapStart && off < g.gapEnd {
		return 0, fmt.Errorf("index %d maps to offset %d in gap [%d, %d): %w",
			i, off, g.gapStart, g.gapEnd, ErrInvalidPosition)
	}
	return off, nil
}

// physical maps a logical index in [0, Len()] to a physical offset.
// Len() maps to Cap().
func (g *GapBuffer[T]) physical(i int) int {
	if i < g.gapStart {
		return i
	}
	return i + g.GapLen()
}

// logical maps a physical offset outside the gap interior to a logical index.
func (g *GapBuffer[T]) logical(off int) int {
	if off <= g.gapStart {
		return off
	}
	return off - g.GapLen()
}

// copyLogical copies the logical range [start, end) into dst.
func (g *GapBuffer[T]) copyLogical(dst []T, start, end int) int {
	n := 0
	if start < g.gapStart {
		n += copy(dst, g.data[start:min(end, g.gapStart)])
	}
	if end > g.gapStart {
		from := max(start, g.gapStart) + g.GapLen()
		n += copy(dst[n:], g.data[from:end+g.GapLen()])
	}
	return n
}

// Materialize returns a copy of the logical sequence.
func (g *GapBuffer[T]) Materialize() []T {
	out := make([]T, g.Len())
	g.copyLogical(out, 0, g.Len())
	return out
}

// Slice returns a copy of the elements in the logical range [start, end).
func (g *GapBuffer[T]) Slice(start, end int) ([]T, error) {
	if start < 0 || end > g.Len() || start > end {
		return nil, fmt.Errorf("range [%d, %d) (len %d): %w", start, end, g.Len(), ErrOutOfRange)
	}
	out := make([]T, end-start)
	g.copyLogical(out, start, end)
	return out, nil
}

// String returns the logical content. Rune and byte buffers render as text;
// other element types use fmt formatting.
func (g *GapBuffer[T]) String() string {
	return format(g.Materialize())
}

// DebugString renders the physical layout with one '_' per gap slot,
// e.g. "hel[____]lo".
func (g *GapBuffer[T]) DebugString() string {
	var sb strings.Builder
	sb.WriteString(format(g.data[:g.gapStart]))
	sb.WriteByte('[')
	sb.WriteString(strings.Repeat("_", g.GapLen()))
	sb.WriteByte(']')
	sb.WriteString(format(g.data[g.gapEnd:]))
	return sb.String()
}

func format[T Scalar](vs []T) string {
	switch s := any(vs).(type) {
	case []rune:
		return string(s)
	case []byte:
		return string(s)
	}
	return fmt.Sprint(vs)
}

// Clone returns a deep copy with its own storage and the same gap offsets.
func (g *GapBuffer[T]) Clone() *GapBuffer[T] {
	data := make([]T, len(g.data))
	copy(data, g.data)
	return &GapBuffer[T]{
		data:     data,
		gapStart: g.gapStart,
		gapEnd:   g.gapEnd,
		opts:     g.opts,
	}
}

// Take moves the storage into a new buffer and leaves g empty with zero
// capacity. g remains usable; the next insert allocates fresh storage.
func (g *GapBuffer[T]) Take() *GapBuffer[T] {
	moved := &GapBuffer[T]{
		data:     g.data,
		gapStart: g.gapStart,
		gapEnd:   g.gapEnd,
		opts:     g.opts,
	}
	g.data = nil
	g.gapStart = 0
	g.gapEnd = 0
	g.gen++
	return moved
}
