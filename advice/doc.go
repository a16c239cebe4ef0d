// Package advice provides function interception for named callables.
//
// The Table is the host's interception primitive: callables are identified
// by string IDs, and any number of around-advice wrappers can be attached to
// an ID. Callers that invoke a callable through Wrap get the full advice
// chain; the base function itself is never mutated.
//
// # Attaching Advice
//
//	tbl := advice.NewTable()
//	id, err := tbl.Attach("my-fn", func(next advice.Func, args ...any) ([]any, error) {
//	    // Before the original call.
//	    return next(args...)
//	})
//
// The returned wrapper ID is the handle for detachment:
//
//	tbl.Detach(id)      // remove one wrapper
//	tbl.DetachAll("my-fn") // remove everything, never fails
//
// # Invocation
//
// Advice only fires for calls routed through Wrap:
//
//	fn := tbl.Wrap("my-fn", base)
//	results, err := fn(1, "two")
//
// Advice attached later runs outermost, so the newest wrapper sees the call
// first. Advice that does not call next suppresses the original callable.
package advice
