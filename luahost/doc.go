// Package luahost embeds a Lua runtime whose global functions serve as hook
// callbacks.
//
// The host bridges Lua functions into advice.Func values, so scripted
// callbacks can be bound to hooks and instrumented like any other callable:
//
//	h := luahost.NewHost()
//	defer h.Close()
//
//	h.DoString(`function on_save(path) return path end`)
//	h.BindHook(reg, "save-hook", "on_save")
//
// Dispatching "save-hook" now calls the Lua function, and tracer wrappers
// attached to "on_save" fire on every invocation.
package luahost
