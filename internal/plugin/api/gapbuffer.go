package api

import (
	"errors"
	"unicode/utf8"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/gapbuffer/internal/engine/gapbuffer"
)

// bufferTypeName is the registry key of the buffer userdata metatable.
const bufferTypeName = "gapbuffer.buffer"

// GapBufferModule implements the gapbuffer Lua module. Buffers hold runes;
// positions are 0-based rune indices.
type GapBufferModule struct {
	ctx *Context
}

// NewGapBufferModule creates a new gapbuffer module.
func NewGapBufferModule(ctx *Context) *GapBufferModule {
	if ctx == nil {
		ctx = &Context{}
	}
	return &GapBufferModule{ctx: ctx}
}

// Name returns the module name.
func (m *GapBufferModule) Name() string {
	return "gapbuffer"
}

// Loader builds the module table and the buffer metatable.
func (m *GapBufferModule) Loader(L *lua.LState) int {
	mt := L.NewTypeMetatable(bufferTypeName)
	methods := L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
		"size":      m.size,
		"capacity":  m.capacity,
		"gap_size":  m.gapSize,
		"cursor":    m.cursor,
		"at":        m.at,
		"set":       m.set,
		"insert":    m.insert,
		"erase":     m.erase,
		"push_back": m.pushBack,
		"clear":     m.clear,
		"resize":    m.resize,
		"move_gap":  m.moveGap,
		"text":      m.text,
		"slice":     m.slice,
		"clone":     m.clone,
		"debug":     m.debug,
		"chars":     m.chars,
		"rchars":    m.rchars,
	})
	L.SetField(mt, "__index", methods)
	L.SetField(mt, "__len", L.NewFunction(m.size))
	L.SetField(mt, "__tostring", L.NewFunction(m.text))

	mod := L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
		"new":  m.newBuffer,
		"from": m.from,
	})
	L.SetField(mod, "DEFAULT_CAPACITY", lua.LNumber(gapbuffer.DefaultCapacity))
	L.SetField(mod, "DEFAULT_SLACK", lua.LNumber(gapbuffer.DefaultSlack))

	L.Push(mod)
	return 1
}

// pushBuffer wraps g in a userdata with the buffer metatable.
func pushBuffer(L *lua.LState, g *gapbuffer.GapBuffer[rune]) {
	ud := L.NewUserData()
	ud.Value = g
	L.SetMetatable(ud, L.GetTypeMetatable(bufferTypeName))
	L.Push(ud)
}

// checkBuffer returns the buffer passed as argument n.
func checkBuffer(L *lua.LState, n int) *gapbuffer.GapBuffer[rune] {
	ud := L.CheckUserData(n)
	g, ok := ud.Value.(*gapbuffer.GapBuffer[rune])
	if !ok {
		L.ArgError(n, "gapbuffer expected")
		return nil
	}
	return g
}

// checkRune returns the single character passed as argument n.
func checkRune(L *lua.LState, n int) rune {
	s := L.CheckString(n)
	r, size := utf8.DecodeRuneInString(s)
	if s == "" || size != len(s) {
		L.ArgError(n, "single character expected")
		return 0
	}
	return r
}

// new([capacity]) -> buffer
// Creates an empty buffer.
func (m *GapBufferModule) newBuffer(L *lua.LState) int {
	opts := m.ctx.Options
	if L.Get(1) != lua.LNil {
		capacity := L.CheckInt(1)
		if capacity < 0 {
			L.ArgError(1, "capacity must be non-negative")
			return 0
		}
		opts = append(opts[:len(opts):len(opts)], gapbuffer.WithCapacity(capacity))
	}

	pushBuffer(L, gapbuffer.New[rune](opts...))
	return 1
}

// from(text) -> buffer
// Creates a buffer holding text with the gap after it.
func (m *GapBufferModule) from(L *lua.LState) int {
	text := L.CheckString(1)
	pushBuffer(L, gapbuffer.FromString(text, m.ctx.Options...))
	return 1
}

// buf:size() -> number
func (m *GapBufferModule) size(L *lua.LState) int {
	L.Push(lua.LNumber(checkBuffer(L, 1).Len()))
	return 1
}

// buf:capacity() -> number
func (m *GapBufferModule) capacity(L *lua.LState) int {
	L.Push(lua.LNumber(checkBuffer(L, 1).Cap()))
	return 1
}

// buf:gap_size() -> number
func (m *GapBufferModule) gapSize(L *lua.LState) int {
	L.Push(lua.LNumber(checkBuffer(L, 1).GapLen()))
	return 1
}

// buf:cursor() -> number
// Returns the position the gap sits at.
func (m *GapBufferModule) cursor(L *lua.LState) int {
	L.Push(lua.LNumber(checkBuffer(L, 1).Cursor()))
	return 1
}

// buf:at(i) -> string
func (m *GapBufferModule) at(L *lua.LState) int {
	g := checkBuffer(L, 1)
	r, err := g.At(L.CheckInt(2))
	if err != nil {
		L.RaiseError("at: %v", err)
		return 0
	}
	L.Push(lua.LString(string(r)))
	return 1
}

// buf:set(i, char)
func (m *GapBufferModule) set(L *lua.LState) int {
	g := checkBuffer(L, 1)
	i := L.CheckInt(2)
	if err := g.Set(i, checkRune(L, 3)); err != nil {
		L.RaiseError("set: %v", err)
	}
	return 0
}

// buf:insert(pos, text) -> end_pos
// Inserts text at pos and returns the position after it.
func (m *GapBufferModule) insert(L *lua.LState) int {
	g := checkBuffer(L, 1)
	pos := L.CheckInt(2)
	text := []rune(L.CheckString(3))

	if err := g.InsertSlice(pos, text); err != nil {
		L.RaiseError("insert: %v", err)
		return 0
	}
	L.Push(lua.LNumber(pos + len(text)))
	return 1
}

// buf:erase(pos[, count]) -> removed
// Removes count characters (default 1) starting at pos. A count running
// past the end is clamped.
func (m *GapBufferModule) erase(L *lua.LState) int {
	g := checkBuffer(L, 1)
	pos := L.CheckInt(2)
	count := L.OptInt(3, 1)

	n, err := g.EraseN(pos, count)
	if err != nil {
		L.RaiseError("erase: %v", err)
		return 0
	}
	L.Push(lua.LNumber(n))
	return 1
}

// buf:push_back(text)
func (m *GapBufferModule) pushBack(L *lua.LState) int {
	g := checkBuffer(L, 1)
	if err := gapbuffer.InsertString(g, g.Len(), L.CheckString(2)); err != nil {
		L.RaiseError("push_back: %v", err)
	}
	return 0
}

// buf:clear()
func (m *GapBufferModule) clear(L *lua.LState) int {
	checkBuffer(L, 1).Clear()
	return 0
}

// buf:resize(n)
func (m *GapBufferModule) resize(L *lua.LState) int {
	g := checkBuffer(L, 1)
	if err := g.Resize(L.CheckInt(2)); err != nil {
		L.RaiseError("resize: %v", err)
	}
	return 0
}

// buf:move_gap(pos)
func (m *GapBufferModule) moveGap(L *lua.LState) int {
	g := checkBuffer(L, 1)
	if err := g.MoveGap(L.CheckInt(2)); err != nil {
		L.RaiseError("move_gap: %v", err)
	}
	return 0
}

// buf:text() -> string
func (m *GapBufferModule) text(L *lua.LState) int {
	L.Push(lua.LString(checkBuffer(L, 1).String()))
	return 1
}

// buf:slice(start, end) -> string
// Returns the characters in [start, end).
func (m *GapBufferModule) slice(L *lua.LState) int {
	g := checkBuffer(L, 1)
	rs, err := g.Slice(L.CheckInt(2), L.CheckInt(3))
	if err != nil {
		L.RaiseError("slice: %v", err)
		return 0
	}
	L.Push(lua.LString(string(rs)))
	return 1
}

// buf:clone() -> buffer
func (m *GapBufferModule) clone(L *lua.LState) int {
	pushBuffer(L, checkBuffer(L, 1).Clone())
	return 1
}

// buf:debug() -> string
// Renders the storage with the gap, e.g. "hel[____]lo".
func (m *GapBufferModule) debug(L *lua.LState) int {
	L.Push(lua.LString(checkBuffer(L, 1).DebugString()))
	return 1
}

// buf:chars() -> iterator
// Iterates (index, char) from the start. Editing the buffer during the loop
// raises an error on the next step.
func (m *GapBufferModule) chars(L *lua.LState) int {
	it := checkBuffer(L, 1).Begin()

	L.Push(L.NewFunction(func(L *lua.LState) int {
		i, err := it.Index()
		if err != nil {
			L.RaiseError("chars: %v", err)
			return 0
		}
		r, err := it.Value()
		if errors.Is(err, gapbuffer.ErrOutOfRange) {
			return 0
		}
		if err != nil {
			L.RaiseError("chars: %v", err)
			return 0
		}
		if it, err = it.Next(); err != nil {
			L.RaiseError("chars: %v", err)
			return 0
		}
		L.Push(lua.LNumber(i))
		L.Push(lua.LString(string(r)))
		return 2
	}))
	return 1
}

// buf:rchars() -> iterator
// Iterates (index, char) from the end.
func (m *GapBufferModule) rchars(L *lua.LState) int {
	g := checkBuffer(L, 1)
	it := g.RBegin()

	L.Push(L.NewFunction(func(L *lua.LState) int {
		if it.Equal(g.REnd()) {
			return 0
		}
		i, err := it.Index()
		if err != nil {
			L.RaiseError("rchars: %v", err)
			return 0
		}
		r, err := it.Value()
		if err != nil {
			L.RaiseError("rchars: %v", err)
			return 0
		}
		if it, err = it.Next(); err != nil {
			L.RaiseError("rchars: %v", err)
			return 0
		}
		L.Push(lua.LNumber(i))
		L.Push(lua.LString(string(r)))
		return 2
	}))
	return 1
}
