// Package lua provides a sandboxed gopher-lua runtime for scripting buffers.
//
// # State
//
// The State type manages a Lua runtime with sandboxing:
//
//	state, err := lua.NewState(lua.WithExecutionTimeout(time.Second))
//	if err != nil {
//	    return err
//	}
//	defer state.Close()
//
//	if err := state.DoString(`x = 1 + 1`); err != nil {
//	    return err
//	}
//
// Executions that outlive the timeout, or whose context is canceled, stop
// with ErrExecutionTimeout or the context error.
//
// # Sandbox
//
// The Sandbox restricts Lua code execution by:
//   - Opening only the base, package, table, string and math libraries
//   - Removing dofile, loadfile, load and loadstring
//   - Limiting require to built-in libraries and preloaded modules
//
// Host modules are exposed with PreloadModule and loaded from Lua with
// require.
package lua
