// Package api provides the Lua modules exposed to buffer scripts.
//
// Each module implements the Module interface:
//
//	type Module interface {
//	    Name() string
//	    Loader(L *lua.LState) int
//	}
//
// Modules are collected in a Registry and preloaded into a sandboxed
// state, so scripts load them with require:
//
//	reg, err := api.DefaultRegistry(&api.Context{Options: cfg.Options()})
//	if err != nil {
//	    return err
//	}
//	if err := reg.Preload(state); err != nil {
//	    return err
//	}
//
// # gapbuffer
//
// The gapbuffer module wraps a rune gap buffer. Positions are 0-based rune
// indices, matching the Go API.
//
//	local gapbuffer = require("gapbuffer")
//	local b = gapbuffer.from("hello world")
//	b:insert(5, ",")          -- returns 6
//	b:erase(0, 1)             -- returns 1
//	print(b:text(), #b)       -- ello, world 11
//	print(b:debug())          -- [________]ello, world
//	for i, ch in b:chars() do print(i, ch) end
//
// Failed operations raise a Lua error carrying the Go error text.
package api
