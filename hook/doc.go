// Package hook provides the host-side registry of named hooks and their
// callback bindings.
//
// A hook is a named extension point: an ordered list of callback IDs invoked
// together when the hook runs. Callback IDs resolve through the registry's
// function table, and every invocation is routed through an advice.Table so
// attached wrappers observe calls no matter who triggers them.
//
// # Defining and Binding
//
//	reg := hook.NewRegistry(nil)
//	reg.Define("foo-impl", func(args ...any) ([]any, error) {
//	    return nil, nil
//	})
//	reg.Add("foo-hook", "foo-impl")
//
// # Dispatch
//
//	err := reg.Run("foo-hook")       // invoke all bound callbacks in order
//	_, err = reg.Call("foo-impl")    // invoke one callback directly
//
// A hook bound to one callback and a hook bound to several are the same
// shape: an ordered list of IDs. There is no single-callback special case.
package hook
