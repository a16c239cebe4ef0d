package luahost_test

import (
	"errors"
	"testing"

	"github.com/ktp-forked-repos/emacs-debug-hooks/hook"
	"github.com/ktp-forked-repos/emacs-debug-hooks/luahost"
	"github.com/ktp-forked-repos/emacs-debug-hooks/trace"
)

// newHost creates a host closed automatically at test end.
func newHost(t *testing.T) *luahost.Host {
	t.Helper()

	h := luahost.NewHost()
	t.Cleanup(h.Close)
	return h
}

// TestHasFunction verifies function detection on globals.
func TestHasFunction(t *testing.T) {
	h := newHost(t)

	if err := h.DoString(`
		function greet(name) return "hello " .. name end
		not_a_function = 42
	`); err != nil {
		t.Fatalf("DoString() error: %v", err)
	}

	if !h.HasFunction("greet") {
		t.Error("expected greet to be a function")
	}
	if h.HasFunction("not_a_function") {
		t.Error("expected non-function global to be rejected")
	}
	if h.HasFunction("missing") {
		t.Error("expected missing global to be rejected")
	}
}

// TestFuncCall verifies arguments and results cross the bridge.
func TestFuncCall(t *testing.T) {
	h := newHost(t)

	if err := h.DoString(`function add(a, b) return a + b end`); err != nil {
		t.Fatalf("DoString() error: %v", err)
	}

	results, err := h.Func("add")(2, 3)
	if err != nil {
		t.Fatalf("call error: %v", err)
	}
	if len(results) != 1 || results[0] != int64(5) {
		t.Errorf("expected [5], got %v", results)
	}
}

// TestFuncMultipleReturns verifies multi-value returns convert in order.
func TestFuncMultipleReturns(t *testing.T) {
	h := newHost(t)

	if err := h.DoString(`function pair() return "a", 2 end`); err != nil {
		t.Fatalf("DoString() error: %v", err)
	}

	results, err := h.Func("pair")()
	if err != nil {
		t.Fatalf("call error: %v", err)
	}
	if len(results) != 2 || results[0] != "a" || results[1] != int64(2) {
		t.Errorf("expected [a 2], got %v", results)
	}
}

// TestFuncTableBridge verifies table arguments and results convert.
func TestFuncTableBridge(t *testing.T) {
	h := newHost(t)

	if err := h.DoString(`
		function keys(t)
			local out = {}
			for k in pairs(t) do out[#out + 1] = k end
			table.sort(out)
			return out
		end
	`); err != nil {
		t.Fatalf("DoString() error: %v", err)
	}

	results, err := h.Func("keys")(map[string]any{"b": 1, "a": 2})
	if err != nil {
		t.Fatalf("call error: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	arr, ok := results[0].([]any)
	if !ok {
		t.Fatalf("expected slice result, got %T", results[0])
	}
	if len(arr) != 2 || arr[0] != "a" || arr[1] != "b" {
		t.Errorf("expected [a b], got %v", arr)
	}
}

// TestFuncMissing verifies calling an undefined global fails.
func TestFuncMissing(t *testing.T) {
	h := newHost(t)

	if _, err := h.Func("missing")(); !errors.Is(err, luahost.ErrNotAFunction) {
		t.Errorf("expected ErrNotAFunction, got %v", err)
	}
}

// TestFuncRedefinition verifies the global is resolved at call time.
func TestFuncRedefinition(t *testing.T) {
	h := newHost(t)

	if err := h.DoString(`function version() return 1 end`); err != nil {
		t.Fatalf("DoString() error: %v", err)
	}
	fn := h.Func("version")

	if err := h.DoString(`function version() return 2 end`); err != nil {
		t.Fatalf("DoString() error: %v", err)
	}

	results, err := fn()
	if err != nil {
		t.Fatalf("call error: %v", err)
	}
	if len(results) != 1 || results[0] != int64(2) {
		t.Errorf("expected redefined result [2], got %v", results)
	}
}

// TestBindHook verifies Lua callbacks bind into a registry in order.
func TestBindHook(t *testing.T) {
	h := newHost(t)
	reg := hook.NewRegistry(nil)

	if err := h.DoString(`
		calls = {}
		function first() calls[#calls + 1] = "first" end
		function second() calls[#calls + 1] = "second" end
	`); err != nil {
		t.Fatalf("DoString() error: %v", err)
	}

	if err := h.BindHook(reg, "save-hook", "first", "second"); err != nil {
		t.Fatalf("BindHook() error: %v", err)
	}

	ids, err := reg.Resolve("save-hook")
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if len(ids) != 2 || ids[0] != "first" || ids[1] != "second" {
		t.Errorf("expected [first second], got %v", ids)
	}

	if err := reg.Run("save-hook"); err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	if err := h.DoString(`assert(calls[1] == "first" and calls[2] == "second", "wrong call order")`); err != nil {
		t.Errorf("expected both Lua callbacks to run in order: %v", err)
	}
}

// TestBindHookMissingFunction verifies binding an undefined global fails.
func TestBindHookMissingFunction(t *testing.T) {
	h := newHost(t)
	reg := hook.NewRegistry(nil)

	err := h.BindHook(reg, "save-hook", "missing")
	if !errors.Is(err, luahost.ErrNotAFunction) {
		t.Errorf("expected ErrNotAFunction, got %v", err)
	}
}

// TestInstrumentedLuaCallback verifies end-to-end tracing of a scripted
// callback.
func TestInstrumentedLuaCallback(t *testing.T) {
	h := newHost(t)
	reg := hook.NewRegistry(nil)
	sink := trace.NewBufferSink()
	tracer := trace.New(reg, sink)
	t.Cleanup(tracer.UninstallAll)

	if err := h.DoString(`
		saved = nil
		function on_save(path) saved = path return path end
	`); err != nil {
		t.Fatalf("DoString() error: %v", err)
	}
	if err := h.BindHook(reg, "save-hook", "on_save"); err != nil {
		t.Fatalf("BindHook() error: %v", err)
	}

	if err := tracer.InstrumentHooks("save-hook"); err != nil {
		t.Fatalf("InstrumentHooks() error: %v", err)
	}
	if err := reg.Run("save-hook", "/tmp/file.txt"); err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	if !sink.Contains("save-hook - on_save") {
		t.Errorf("expected trace line, got %q", sink.String())
	}
	if got := len(tracer.Wrappers("on_save")); got != 1 {
		t.Errorf("expected 1 wrapper, got %d", got)
	}

	// Pass-through: the Lua callback really ran with its argument.
	if err := h.DoString(`assert(saved == "/tmp/file.txt", "callback did not receive argument")`); err != nil {
		t.Errorf("expected Lua callback to see original argument: %v", err)
	}
}

// TestClosedHost verifies operations fail cleanly after Close.
func TestClosedHost(t *testing.T) {
	h := luahost.NewHost()
	if err := h.DoString(`function f() end`); err != nil {
		t.Fatalf("DoString() error: %v", err)
	}
	h.Close()

	if !h.IsClosed() {
		t.Error("expected host to report closed")
	}
	if err := h.DoString(`x = 1`); !errors.Is(err, luahost.ErrHostClosed) {
		t.Errorf("expected ErrHostClosed, got %v", err)
	}
	if _, err := h.Func("f")(); !errors.Is(err, luahost.ErrHostClosed) {
		t.Errorf("expected ErrHostClosed, got %v", err)
	}
	if h.HasFunction("f") {
		t.Error("expected closed host to report no functions")
	}

	h.Close() // second Close is a no-op
}
