package lua

import (
	"strings"
	"testing"

	glua "github.com/yuin/gopher-lua"
)

func TestSandboxInstall(t *testing.T) {
	state := newTestState(t)

	for _, name := range []string{"dofile", "loadfile", "load", "loadstring"} {
		if v := state.GetGlobal(name); v != glua.LNil {
			t.Errorf("%s should be nil after sandbox install, got %v", name, v)
		}
	}

	if err := state.DoString(`assert(package.path == "" and package.cpath == "")`); err != nil {
		t.Errorf("package search paths not cleared: %v", err)
	}
}

func TestSandboxSafeRequire(t *testing.T) {
	state := newTestState(t)

	tests := []struct {
		module  string
		allowed bool
	}{
		{"string", true},
		{"table", true},
		{"math", true},
		{"io", false},
		{"os", false},
		{"debug", false},
		{"socket", false},
	}

	for _, tt := range tests {
		t.Run(tt.module, func(t *testing.T) {
			err := state.DoString(`return require("` + tt.module + `")`)
			if tt.allowed && err != nil {
				t.Errorf("require(%q) error = %v", tt.module, err)
			}
			if !tt.allowed {
				if err == nil {
					t.Fatalf("require(%q) should fail", tt.module)
				}
				if !strings.Contains(err.Error(), "not available") {
					t.Errorf("require(%q) error = %v, want 'not available'", tt.module, err)
				}
			}
		})
	}
}

func TestSandboxIsPreloaded(t *testing.T) {
	state := newTestState(t)
	sb := state.Sandbox()

	if sb.IsPreloaded("mod") {
		t.Error("IsPreloaded(mod) = true before PreloadModule")
	}

	if err := state.PreloadModule("mod", func(L *glua.LState) int {
		L.Push(glua.LTrue)
		return 1
	}); err != nil {
		t.Fatal(err)
	}

	if !sb.IsPreloaded("mod") {
		t.Error("IsPreloaded(mod) = false after PreloadModule")
	}
	if err := state.DoString(`assert(require("mod") == true)`); err != nil {
		t.Errorf("require(mod) error = %v", err)
	}
}
