package advice

// Func is the callable shape shared by the registry and the advice table.
// Callbacks take loosely typed arguments and return zero or more values,
// mirroring how scripted extension hosts expose their functions.
type Func func(args ...any) ([]any, error)

// Advice is an around-interception applied to a Func. It receives the next
// callable in the chain and the original arguments, and decides when (and
// whether) to delegate. Returning without calling next suppresses the
// original callback.
type Advice func(next Func, args ...any) ([]any, error)
