package gapbuffer

import (
	"math/rand"
	"slices"
	"testing"
	"testing/quick"
)

// model is a plain slice reference implementation.
type model []rune

func (m model) insert(pos int, vs []rune) model {
	return slices.Insert(m, pos, vs...)
}

func (m model) erase(pos, count int) model {
	end := min(pos+count, len(m))
	return slices.Delete(m, pos, end)
}

// applyOps drives g and a model with operations decoded from ops and reports
// the first step at which their contents differ, or -1.
func applyOps(g *GapBuffer[rune], ops []byte) int {
	m := model(g.Materialize())
	for step := 0; step+2 < len(ops); step += 3 {
		op, a, b := ops[step], int(ops[step+1]), int(ops[step+2])
		switch op % 4 {
		case 0:
			pos := a % (len(m) + 1)
			r := rune('a' + b%26)
			if g.Insert(pos, r) != nil {
				return step
			}
			m = m.insert(pos, []rune{r})
		case 1:
			pos := a % (len(m) + 1)
			vs := make([]rune, b%12)
			for i := range vs {
				vs[i] = rune('A' + (b+i)%26)
			}
			if g.InsertSlice(pos, vs) != nil {
				return step
			}
			m = m.insert(pos, vs)
		case 2:
			if len(m) == 0 {
				continue
			}
			pos := a % len(m)
			count := b % 8
			n, err := g.EraseN(pos, count)
			if err != nil || n != min(count, len(m)-pos) {
				return step
			}
			m = m.erase(pos, count)
		case 3:
			if g.MoveGap(a%(len(m)+1)) != nil {
				return step
			}
		}
		if g.String() != string(m) || g.Len() != len(m) {
			return step
		}
		if g.gapStart < 0 || g.gapStart > g.gapEnd || g.gapEnd > len(g.data) {
			return step
		}
	}
	return -1
}

// FuzzOperations checks random edit sequences against the slice model.
func FuzzOperations(f *testing.F) {
	f.Add("", []byte{0, 0, 1, 0, 0, 2, 2, 0, 1})
	f.Add("hello world", []byte{0, 5, 33, 2, 5, 1, 3, 0, 0})
	f.Add("x", []byte{1, 0, 11, 1, 3, 11, 1, 30, 11, 2, 4, 7})
	f.Add("typing", []byte{0, 6, 0, 0, 7, 1, 0, 8, 2, 3, 2, 0})

	f.Fuzz(func(t *testing.T, initial string, ops []byte) {
		g := FromString(initial, WithSlack(len(ops)%5))
		if step := applyOps(g, ops); step >= 0 {
			t.Errorf("diverged from model at op %d, buffer %q", step/3, g.DebugString())
		}
	})
}

// FuzzInsert tests single insert operations.
func FuzzInsert(f *testing.F) {
	f.Add("hello", 0, "x")
	f.Add("hello", 5, "x")
	f.Add("hello", 3, "world")
	f.Add("", 0, "test")

	f.Fuzz(func(t *testing.T, initial string, pos int, insert string) {
		rs := []rune(initial)
		if pos < 0 {
			pos = -pos
		}
		if pos < 0 || pos > len(rs) {
			pos = len(rs)
		}

		g := FromString(initial)
		if err := InsertString(g, pos, insert); err != nil {
			t.Fatalf("InsertString error = %v", err)
		}

		expected := string(rs[:pos]) + string([]rune(insert)) + string(rs[pos:])
		if g.String() != expected {
			t.Errorf("insert mismatch at %d", pos)
		}
	})
}

// FuzzErase tests erase operations, including clamped counts.
func FuzzErase(f *testing.F) {
	f.Add("hello world", 0, 5)
	f.Add("hello world", 6, 11)
	f.Add("hello world", 10, 100)

	f.Fuzz(func(t *testing.T, initial string, pos, count int) {
		rs := []rune(initial)
		if len(rs) == 0 || count < 0 || pos < 0 {
			return
		}
		pos %= len(rs)

		g := FromString(initial)
		n, err := g.EraseN(pos, count)
		if err != nil {
			t.Fatalf("EraseN error = %v", err)
		}
		end := pos + n
		if n != min(count, len(rs)-pos) {
			t.Errorf("removed %d, want %d", n, min(count, len(rs)-pos))
		}
		if g.String() != string(rs[:pos])+string(rs[end:]) {
			t.Errorf("erase mismatch: [%d, %d)", pos, end)
		}
	})
}

func TestRandomOperationsMatchModel(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for round := 0; round < 50; round++ {
		ops := make([]byte, 3*200)
		rng.Read(ops)
		g := FromString("seed text", WithSlack(round%4))
		if step := applyOps(g, ops); step >= 0 {
			t.Fatalf("round %d: diverged from model at op %d", round, step/3)
		}
	}
}

func TestLenCapGapProperty(t *testing.T) {
	f := func(s string, ops []byte) bool {
		g := FromString(s)
		applyOps(g, ops)
		return g.Len()+g.GapLen() == g.Cap() && len(g.Materialize()) == g.Len()
	}

	if err := quick.Check(f, nil); err != nil {
		t.Error(err)
	}
}

func TestIteratorWalkProperty(t *testing.T) {
	f := func(s string, cursor uint8) bool {
		g := FromString(s)
		_ = g.MoveGap(int(cursor) % (g.Len() + 1))

		count := 0
		for it := g.Begin(); !it.Equal(g.End()); count++ {
			var err error
			if it, err = it.Next(); err != nil {
				return false
			}
		}
		return count == g.Len()
	}

	if err := quick.Check(f, nil); err != nil {
		t.Error(err)
	}
}

func TestCloneIndependenceProperty(t *testing.T) {
	f := func(s string, ops []byte) bool {
		g := FromString(s)
		before := g.String()
		c := g.Clone()
		applyOps(c, ops)
		return g.String() == before
	}

	if err := quick.Check(f, nil); err != nil {
		t.Error(err)
	}
}
