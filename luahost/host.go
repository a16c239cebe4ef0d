package luahost

import (
	"fmt"
	"sync"

	lua "github.com/yuin/gopher-lua"

	"github.com/ktp-forked-repos/emacs-debug-hooks/advice"
	"github.com/ktp-forked-repos/emacs-debug-hooks/hook"
)

// Host wraps a sandboxed Lua state whose global functions serve as hook
// callbacks.
//
// IMPORTANT: gopher-lua's LState is not goroutine-safe. The mutex here
// protects against concurrent access from Go code, but Lua execution itself
// is single-threaded.
type Host struct {
	mu     sync.Mutex
	L      *lua.LState
	closed bool
}

// NewHost creates a Lua host with a restricted library set.
func NewHost() *Host {
	L := lua.NewState(lua.Options{
		SkipOpenLibs: true,
	})
	openSafeLibraries(L)

	return &Host{L: L}
}

// openSafeLibraries opens base libraries safe for callback code. File,
// process, and loader facilities stay closed.
func openSafeLibraries(L *lua.LState) {
	for _, lib := range []struct {
		name string
		fn   lua.LGFunction
	}{
		{lua.BaseLibName, lua.OpenBase},
		{lua.TabLibName, lua.OpenTable},
		{lua.StringLibName, lua.OpenString},
		{lua.MathLibName, lua.OpenMath},
	} {
		L.Push(L.NewFunction(lib.fn))
		L.Push(lua.LString(lib.name))
		L.Call(1, 0)
	}
}

// DoString executes Lua code in the host.
func (h *Host) DoString(code string) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return ErrHostClosed
	}
	return h.L.DoString(code)
}

// HasFunction returns true if the host has the named global function.
func (h *Host) HasFunction(name string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return false
	}
	v := h.L.GetGlobal(name)
	return v.Type() == lua.LTFunction
}

// Func returns a Go-callable view of the named Lua global. The global is
// looked up at call time, so redefining the Lua function takes effect on the
// next call. Arguments and return values cross the bridge both ways.
func (h *Host) Func(name string) advice.Func {
	return func(args ...any) ([]any, error) {
		return h.call(name, args...)
	}
}

// call invokes a global Lua function with panic recovery, in the manner of
// a protected call.
func (h *Host) call(name string, args ...any) (results []any, err error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return nil, ErrHostClosed
	}

	fnVal := h.L.GetGlobal(name)
	if fnVal.Type() != lua.LTFunction {
		return nil, fmt.Errorf("%q: %w", name, ErrNotAFunction)
	}

	stackTop := h.L.GetTop()

	h.L.Push(fnVal)
	for _, arg := range args {
		h.L.Push(toLuaValue(h.L, arg))
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("lua panic: %v", r)
		}
	}()
	if err := h.L.PCall(len(args), lua.MultRet, nil); err != nil {
		return nil, err
	}

	nRet := h.L.GetTop() - stackTop
	if nRet <= 0 {
		return []any{}, nil
	}
	results = make([]any, nRet)
	for i := 0; i < nRet; i++ {
		results[i] = toGoValue(h.L.Get(stackTop + i + 1))
	}
	h.L.Pop(nRet)

	return results, nil
}

// BindHook defines each named Lua global in the registry's function table
// and appends it to the named hook's binding, in the order given.
func (h *Host) BindHook(reg *hook.Registry, hookName string, fnNames ...string) error {
	for _, name := range fnNames {
		if !h.HasFunction(name) {
			return fmt.Errorf("bind %q: %w", name, ErrNotAFunction)
		}
		if err := reg.Define(name, h.Func(name)); err != nil {
			return fmt.Errorf("bind %q: %w", name, err)
		}
		reg.Add(hookName, name)
	}
	return nil
}

// Close releases the Lua state. Further calls fail with ErrHostClosed.
func (h *Host) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}
	h.closed = true
	h.L.Close()
}

// IsClosed returns true if the host has been closed.
func (h *Host) IsClosed() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.closed
}
