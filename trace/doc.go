// Package trace instruments hook callbacks with logging advice.
//
// The Tracer is the public surface of the library. Given a hook registry and
// a sink, it wraps callbacks so that every invocation appends a line of the
// form "<hook> - <callback>" before the original callback runs:
//
//	reg := hook.NewRegistry(nil)
//	reg.Define("foo-impl", fooImpl)
//	reg.Add("foo-hook", "foo-impl")
//
//	sink := trace.NewBufferSink()
//	tracer := trace.New(reg, sink)
//
//	tracer.InstrumentHooks("foo-hook")
//	reg.Run("foo-hook")
//	// sink now contains "foo-hook - foo-impl"
//
// # Guarantees
//
//   - A callback carries at most one tracer wrapper, no matter how many
//     times it is instrumented.
//   - Wrapped callbacks receive their original arguments and return their
//     original results.
//   - Uninstall removes exactly what the tracer installed; on a clean
//     callback it is a no-op, so teardown can run unconditionally.
//   - Hooks in a batch are independent: one unresolvable hook does not stop
//     the others from being instrumented.
//
// When the same callback is instrumented under two different hook names, the
// existing wrapper is replaced: the most recently bound hook name is the one
// logged. See DESIGN.md for the rationale.
package trace
