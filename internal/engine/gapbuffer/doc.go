// Package gapbuffer provides a generic gap buffer for cursor-local editing.
//
// A gap buffer stores a logical sequence in one contiguous slice with a run of
// unused slots (the gap) kept at the point of the most recent edit. Inserting
// or erasing next to the gap only touches the gap boundaries; moving the edit
// point copies just the elements between the old and the new position.
//
// Key features:
//   - O(1) insert and erase at the gap, O(distance) to relocate it
//   - Amortized doubling growth with the gap placed at the pending edit
//   - Bounds-checked random access that never reads a gap slot
//   - Iterators that skip the gap and fail fast once the buffer changes
//
// Basic usage:
//
//	g := gapbuffer.FromString("hello world")
//	_ = g.Insert(5, '!')           // "hello! world"
//	_, _ = g.EraseN(5, 1)          // "hello world"
//	text := g.String()             // "hello world"
//
// Iteration:
//
//	it := g.Begin()
//	it, _ = it.Add(3)              // same as three calls to it.Next()
//	v, _ := it.Value()             // 'l'
//	n, _ := g.End().Sub(it)        // 8, the gap is not counted
//
//	for i, r := range g.All() {
//	    ...
//	}
//
// A GapBuffer is not safe for concurrent use. Callers sharing one across
// goroutines must provide their own locking.
package gapbuffer
