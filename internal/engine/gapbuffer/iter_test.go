package gapbuffer

import (
	"errors"
	"testing"
)

// gapPositions returns buffers holding text with the gap at every position.
func gapPositions(t *testing.T, text string) []*GapBuffer[rune] {
	t.Helper()
	n := len([]rune(text))
	bufs := make([]*GapBuffer[rune], 0, n+1)
	for pos := 0; pos <= n; pos++ {
		g := FromString(text)
		if err := g.MoveGap(pos); err != nil {
			t.Fatalf("MoveGap(%d) error = %v", pos, err)
		}
		bufs = append(bufs, g)
	}
	return bufs
}

func TestIteratorForward(t *testing.T) {
	for _, g := range gapPositions(t, "hello world") {
		var got []rune
		it := g.Begin()
		end := g.End()
		for !it.Equal(end) {
			if off := it.Offset(); off >= g.gapStart && off < g.gapEnd && g.GapLen() > 0 {
				t.Fatalf("gap at %d: iterator rests at gap offset %d", g.Cursor(), off)
			}
			r, err := it.Value()
			if err != nil {
				t.Fatalf("Value() error = %v", err)
			}
			got = append(got, r)
			if it, err = it.Next(); err != nil {
				t.Fatalf("Next() error = %v", err)
			}
		}
		if len(got) != g.Len() {
			t.Errorf("gap at %d: visited %d elements, want %d", g.Cursor(), len(got), g.Len())
		}
		if string(got) != "hello world" {
			t.Errorf("gap at %d: got %q", g.Cursor(), string(got))
		}
	}
}

func TestIteratorBackward(t *testing.T) {
	for _, g := range gapPositions(t, "abcdef") {
		var got []rune
		it := g.End()
		for !it.Equal(g.Begin()) {
			var err error
			if it, err = it.Prev(); err != nil {
				t.Fatalf("Prev() error = %v", err)
			}
			r, err := it.Value()
			if err != nil {
				t.Fatalf("Value() error = %v", err)
			}
			got = append(got, r)
		}
		if string(got) != "fedcba" {
			t.Errorf("gap at %d: got %q", g.Cursor(), string(got))
		}
	}
}

func TestIteratorAddMatchesSteps(t *testing.T) {
	for _, g := range gapPositions(t, "gap buffer") {
		for n := 0; n <= g.Len(); n++ {
			stepped := g.Begin()
			for i := 0; i < n; i++ {
				var err error
				if stepped, err = stepped.Next(); err != nil {
					t.Fatalf("Next() error = %v", err)
				}
			}
			jumped, err := g.Begin().Add(n)
			if err != nil {
				t.Fatalf("Add(%d) error = %v", n, err)
			}
			if jumped.Offset() != stepped.Offset() {
				t.Errorf("gap at %d: Add(%d) offset %d, %d steps offset %d",
					g.Cursor(), n, jumped.Offset(), n, stepped.Offset())
			}

			back, err := g.End().Add(-n)
			if err != nil {
				t.Fatalf("Add(%d) error = %v", -n, err)
			}
			if idx, _ := back.Index(); idx != g.Len()-n {
				t.Errorf("End().Add(%d) index %d, want %d", -n, idx, g.Len()-n)
			}
		}
	}
}

func TestIteratorSub(t *testing.T) {
	for _, g := range gapPositions(t, "hello world") {
		d, err := g.End().Sub(g.Begin())
		if err != nil {
			t.Fatalf("Sub error = %v", err)
		}
		if d != g.Len() {
			t.Errorf("gap at %d: End-Begin = %d, want %d", g.Cursor(), d, g.Len())
		}
		for i := 0; i <= g.Len(); i++ {
			for j := 0; j <= g.Len(); j++ {
				a, _ := g.IterAt(i)
				b, _ := g.IterAt(j)
				if d, _ := a.Sub(b); d != i-j {
					t.Fatalf("gap at %d: IterAt(%d)-IterAt(%d) = %d, want %d", g.Cursor(), i, j, d, i-j)
				}
			}
		}
	}
}

func TestIteratorSubStraddlingGap(t *testing.T) {
	g := FromString("hello world")
	_ = g.MoveGap(5)

	a, _ := g.IterAt(2)
	b, _ := g.IterAt(8)
	if a.Offset() != 2 || b.Offset() != 16 {
		t.Fatalf("offsets %d, %d, want 2, 16", a.Offset(), b.Offset())
	}
	if d, _ := b.Sub(a); d != 6 {
		t.Errorf("b-a = %d, want 6", d)
	}
	if d, _ := a.Sub(b); d != -6 {
		t.Errorf("a-b = %d, want -6", d)
	}
}

func TestIteratorBounds(t *testing.T) {
	g := FromString("abc")

	if _, err := g.End().Value(); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("End().Value() error = %v, want ErrOutOfRange", err)
	}
	if _, err := g.End().Next(); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("End().Next() error = %v, want ErrOutOfRange", err)
	}
	if _, err := g.Begin().Prev(); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("Begin().Prev() error = %v, want ErrOutOfRange", err)
	}
	if _, err := g.Begin().Add(4); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("Begin().Add(4) error = %v, want ErrOutOfRange", err)
	}
	if _, err := g.IterAt(4); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("IterAt(4) error = %v, want ErrOutOfRange", err)
	}

	var zero Iterator[rune]
	if _, err := zero.Value(); !errors.Is(err, ErrStaleIterator) {
		t.Errorf("zero iterator Value() error = %v, want ErrStaleIterator", err)
	}

	empty := New[rune]()
	if !empty.Begin().Equal(empty.End()) {
		t.Error("Begin() should equal End() for an empty buffer")
	}
}

func TestIteratorStale(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(g *GapBuffer[rune])
	}{
		{"insert", func(g *GapBuffer[rune]) { _ = g.Insert(0, 'x') }},
		{"erase", func(g *GapBuffer[rune]) { _ = g.Erase(1) }},
		{"move gap", func(g *GapBuffer[rune]) { _ = g.MoveGap(0) }},
		{"growth", func(g *GapBuffer[rune]) { _ = InsertString(g, 3, "0123456789") }},
		{"clear", func(g *GapBuffer[rune]) { g.Clear() }},
		{"resize", func(g *GapBuffer[rune]) { _ = g.Resize(64) }},
		{"push back", func(g *GapBuffer[rune]) { _ = g.PushBack('!') }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := FromString("hello")
			it, _ := g.IterAt(1)
			rit := g.RBegin()

			tt.mutate(g)

			if it.Valid() || rit.Valid() {
				t.Fatal("iterator still valid after mutation")
			}
			if _, err := it.Value(); !errors.Is(err, ErrStaleIterator) {
				t.Errorf("Value() error = %v, want ErrStaleIterator", err)
			}
			if _, err := it.Next(); !errors.Is(err, ErrStaleIterator) {
				t.Errorf("Next() error = %v, want ErrStaleIterator", err)
			}
			if _, err := it.Add(1); !errors.Is(err, ErrStaleIterator) {
				t.Errorf("Add() error = %v, want ErrStaleIterator", err)
			}
			if err := it.Set('z'); !errors.Is(err, ErrStaleIterator) {
				t.Errorf("Set() error = %v, want ErrStaleIterator", err)
			}
			if _, err := g.End().Sub(it); !errors.Is(err, ErrStaleIterator) {
				t.Errorf("Sub() error = %v, want ErrStaleIterator", err)
			}
			if _, err := rit.Value(); !errors.Is(err, ErrStaleIterator) {
				t.Errorf("reverse Value() error = %v, want ErrStaleIterator", err)
			}
		})
	}
}

func TestIteratorSetKeepsOthersValid(t *testing.T) {
	g := FromString("hello")
	_ = g.MoveGap(2)
	a, _ := g.IterAt(0)
	b, _ := g.IterAt(4)

	if err := a.Set('j'); err != nil {
		t.Fatal(err)
	}
	if err := g.Set(1, 'E'); err != nil {
		t.Fatal(err)
	}
	if err := b.Set('y'); err != nil {
		t.Fatal(err)
	}
	if !a.Valid() || !b.Valid() {
		t.Error("Set should not invalidate iterators")
	}
	if g.String() != "jElly" {
		t.Errorf("got %q", g.String())
	}
}

func TestIteratorMismatch(t *testing.T) {
	a := FromString("abc")
	b := a.Clone()
	if _, err := a.End().Sub(b.Begin()); !errors.Is(err, ErrIteratorMismatch) {
		t.Errorf("Sub error = %v, want ErrIteratorMismatch", err)
	}
	if a.Begin().Equal(b.Begin()) {
		t.Error("iterators of different buffers should not be equal")
	}
}

func TestReverseIterator(t *testing.T) {
	for _, g := range gapPositions(t, "hello world") {
		r, err := g.RBegin().Value()
		if err != nil || r != 'd' {
			t.Fatalf("RBegin().Value() = %q, %v", r, err)
		}
		it, _ := g.RBegin().Add(3)
		if r, _ := it.Value(); r != 'o' {
			t.Errorf("gap at %d: RBegin()+3 = %q, want 'o'", g.Cursor(), r)
		}
		if idx, _ := it.Index(); idx != 7 {
			t.Errorf("RBegin()+3 index = %d, want 7", idx)
		}

		var got []rune
		for rit := g.RBegin(); !rit.Equal(g.REnd()); {
			v, err := rit.Value()
			if err != nil {
				t.Fatalf("Value() error = %v", err)
			}
			got = append(got, v)
			if rit, err = rit.Next(); err != nil {
				t.Fatalf("Next() error = %v", err)
			}
		}
		if string(got) != "dlrow olleh" {
			t.Errorf("gap at %d: reverse walk %q", g.Cursor(), string(got))
		}

		if d, _ := g.REnd().Sub(g.RBegin()); d != g.Len() {
			t.Errorf("REnd-RBegin = %d, want %d", d, g.Len())
		}
	}
}

func TestReverseIteratorSet(t *testing.T) {
	g := FromString("abc")
	if err := g.RBegin().Set('C'); err != nil {
		t.Fatal(err)
	}
	back, _ := g.REnd().Prev()
	if err := back.Set('A'); err != nil {
		t.Fatal(err)
	}
	if g.String() != "AbC" {
		t.Errorf("got %q", g.String())
	}
	if _, err := g.REnd().Value(); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("REnd().Value() error = %v, want ErrOutOfRange", err)
	}
}

func TestAll(t *testing.T) {
	for _, g := range gapPositions(t, "range") {
		var got []rune
		next := 0
		for i, r := range g.All() {
			if i != next {
				t.Fatalf("index %d, want %d", i, next)
			}
			next++
			got = append(got, r)
		}
		if string(got) != "range" {
			t.Errorf("gap at %d: All() = %q", g.Cursor(), string(got))
		}
	}

	for range New[rune]().All() {
		t.Fatal("All() on empty buffer yielded an element")
	}
}

func TestAllStopsEarly(t *testing.T) {
	g := FromString("abcdef")
	count := 0
	for range g.All() {
		count++
		if count == 2 {
			break
		}
	}
	if count != 2 {
		t.Errorf("count = %d, want 2", count)
	}
}

func TestAllStopsOnMutation(t *testing.T) {
	g := FromString("abcdef")
	var got []rune
	for i, r := range g.All() {
		got = append(got, r)
		if i == 1 {
			_ = g.Insert(0, 'x')
		}
	}
	if string(got) != "ab" {
		t.Errorf("got %q, want %q", string(got), "ab")
	}
}

func TestBackward(t *testing.T) {
	for _, g := range gapPositions(t, "range") {
		var got []rune
		next := g.Len() - 1
		for i, r := range g.Backward() {
			if i != next {
				t.Fatalf("index %d, want %d", i, next)
			}
			next--
			got = append(got, r)
		}
		if string(got) != "egnar" {
			t.Errorf("gap at %d: Backward() = %q", g.Cursor(), string(got))
		}
	}
}
