package api

import (
	"fmt"
	"slices"
	"sync"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/gapbuffer/internal/engine/gapbuffer"
	plua "github.com/dshills/gapbuffer/internal/plugin/lua"
)

// Module represents a Lua API module loadable with require.
type Module interface {
	// Name returns the module name passed to require (e.g., "gapbuffer").
	Name() string

	// Loader pushes the module table. It is installed in package.preload.
	Loader(L *lua.LState) int
}

// Context provides API modules with host settings.
type Context struct {
	// Options configure every buffer a script creates, typically
	// config.Config.Options().
	Options []gapbuffer.Option
}

// Registry manages API modules and their registration.
type Registry struct {
	mu      sync.RWMutex
	modules map[string]Module
}

// NewRegistry creates a new API registry.
func NewRegistry() *Registry {
	return &Registry{
		modules: make(map[string]Module),
	}
}

// Register adds a module to the registry.
func (r *Registry) Register(mod Module) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.modules[mod.Name()]; exists {
		return fmt.Errorf("module %q already registered", mod.Name())
	}

	r.modules[mod.Name()] = mod
	return nil
}

// Get returns a module by name.
func (r *Registry) Get(name string) (Module, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	mod, ok := r.modules[name]
	return mod, ok
}

// List returns all registered module names in sorted order.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.modules))
	for name := range r.modules {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// InjectAll preloads every module into a raw Lua state.
func (r *Registry) InjectAll(L *lua.LState) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, mod := range r.modules {
		L.PreloadModule(mod.Name(), mod.Loader)
	}
}

// Preload preloads every module into a sandboxed state, making them
// available to require.
func (r *Registry) Preload(state *plua.State) error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for name, mod := range r.modules {
		if err := state.PreloadModule(name, mod.Loader); err != nil {
			return fmt.Errorf("failed to preload module %q: %w", name, err)
		}
	}
	return nil
}

// DefaultRegistry creates a registry with all standard modules registered.
func DefaultRegistry(ctx *Context) (*Registry, error) {
	r := NewRegistry()

	modules := []Module{
		NewGapBufferModule(ctx),
	}

	for _, mod := range modules {
		if err := r.Register(mod); err != nil {
			return nil, fmt.Errorf("failed to register module %q: %w", mod.Name(), err)
		}
	}

	return r, nil
}
