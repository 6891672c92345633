package gapbuffer

import "fmt"

// Insert inserts v at logical position pos in [0, Len()].
// Inserting at Len() appends.
func (g *GapBuffer[T]) Insert(pos int, v T) error {
	if err := g.prepareInsert(pos, 1); err != nil {
		return err
	}
	g.data[g.gapStart] = v
	g.gapStart++
	g.gen++
	return nil
}

// InsertSlice inserts vs at logical position pos in [0, Len()].
func (g *GapBuffer[T]) InsertSlice(pos int, vs []T) error {
	if len(vs) == 0 {
		if pos < 0 || pos > g.Len() {
			return fmt.Errorf("insert at %d (len %d): %w", pos, g.Len(), ErrOutOfRange)
		}
		return nil
	}
	if err := g.prepareInsert(pos, len(vs)); err != nil {
		return err
	}
	copy(g.data[g.gapStart:], vs)
	g.gapStart += len(vs)
	g.gen++
	return nil
}

// InsertString inserts the runes of s into a rune buffer at pos.
func InsertString(g *GapBuffer[rune], pos int, s string) error {
	return g.InsertSlice(pos, []rune(s))
}

// PushBack appends v at the logical end.
func (g *GapBuffer[T]) PushBack(v T) error {
	return g.Insert(g.Len(), v)
}

// prepareInsert validates pos and leaves a gap of at least n slots at pos.
func (g *GapBuffer[T]) prepareInsert(pos, n int) error {
	if pos < 0 || pos > g.Len() {
		return fmt.Errorf("insert at %d (len %d): %w", pos, g.Len(), ErrOutOfRange)
	}
	if n > g.GapLen() {
		return g.grow(n, pos)
	}
	g.moveGap(pos)
	return nil
}

// Erase removes the element at logical index pos.
func (g *GapBuffer[T]) Erase(pos int) error {
	_, err := g.EraseN(pos, 1)
	return err
}

// EraseN removes up to count elements starting at logical index pos and
// returns how many were removed. A count running past the end is clamped.
func (g *GapBuffer[T]) EraseN(pos, count int) (int, error) {
	size := g.Len()
	if pos < 0 || pos >= size {
		return 0, fmt.Errorf("erase at %d (len %d): %w", pos, size, ErrOutOfRange)
	}
	if count < 0 {
		return 0, fmt.Errorf("erase %d elements: %w", count, ErrOutOfRange)
	}
	if count == 0 {
		return 0, nil
	}
	count = min(count, size-pos)

	g.moveGap(pos)
	g.gapEnd += count
	g.gen++
	return count, nil
}

// Clear removes all elements. The capacity is unchanged.
func (g *GapBuffer[T]) Clear() {
	clear(g.data)
	g.gapStart = 0
	g.gapEnd = len(g.data)
	g.gen++
}
