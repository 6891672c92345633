package gapbuffer

import (
	"fmt"
	"math"
)

// MoveGap relocates the gap to logical position pos in [0, Len()].
// Subsequent edits at pos do not move any elements.
func (g *GapBuffer[T]) MoveGap(pos int) error {
	if pos < 0 || pos > g.Len() {
		return fmt.Errorf("move gap to %d (len %d): %w", pos, g.Len(), ErrOutOfRange)
	}
	g.moveGap(pos)
	return nil
}

// moveGap copies the elements between the gap and pos across the gap.
// The cost is proportional to the distance travelled.
func (g *GapBuffer[T]) moveGap(pos int) {
	switch {
	case pos < g.gapStart:
		n := g.gapStart - pos
		copy(g.data[g.gapEnd-n:g.gapEnd], g.data[pos:g.gapStart])
		g.gapStart -= n
		g.gapEnd -= n
	case pos > g.gapStart:
		n := pos - g.gapStart
		copy(g.data[g.gapStart:g.gapStart+n], g.data[g.gapEnd:g.gapEnd+n])
		g.gapStart += n
		g.gapEnd += n
	default:
		return
	}
	g.gen++
}

// grow reallocates so the gap can hold need more elements, placing the gap
// at logical position pos. On failure the buffer is unchanged.
func (g *GapBuffer[T]) grow(need, pos int) error {
	size := g.Len()
	if need > math.MaxInt-size {
		return fmt.Errorf("grow by %d (len %d): %w", need, size, ErrAllocationFailed)
	}
	required := size + need

	newCap := required
	if c := len(g.data); c <= math.MaxInt/2 && 2*c > newCap {
		newCap = 2 * c
	}
	if limit := g.opts.maxCapacity; limit > 0 && newCap > limit && required <= limit {
		newCap = limit
	}

	data, err := g.allocate(newCap)
	if err != nil {
		return err
	}
	g.relocate(data, pos)
	return nil
}

// Resize reallocates the storage to exactly n elements, keeping the content
// and the gap position. It is a no-op when n does not exceed Len() or equals
// Cap().
func (g *GapBuffer[T]) Resize(n int) error {
	if n <= g.Len() || n == len(g.data) {
		return nil
	}
	data, err := g.allocate(n)
	if err != nil {
		return err
	}
	g.relocate(data, g.gapStart)
	return nil
}

// relocate moves the logical content into data with the gap at pos.
func (g *GapBuffer[T]) relocate(data []T, pos int) {
	size := g.Len()
	g.copyLogical(data, 0, pos)
	tail := size - pos
	g.copyLogical(data[len(data)-tail:], pos, size)

	g.data = data
	g.gapStart = pos
	g.gapEnd = len(data) - tail
	g.gen++
}

// allocate obtains storage for n elements, honoring WithMaxCapacity.
func (g *GapBuffer[T]) allocate(n int) (data []T, err error) {
	if limit := g.opts.maxCapacity; limit > 0 && n > limit {
		return nil, fmt.Errorf("capacity %d exceeds limit %d: %w", n, limit, ErrAllocationFailed)
	}
	defer func() {
		if r := recover(); r != nil {
			data = nil
			err = fmt.Errorf("capacity %d: %v: %w", n, r, ErrAllocationFailed)
		}
	}()
	return make([]T, n), nil
}
