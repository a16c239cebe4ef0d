package hook

import "errors"

// Registry errors.
var (
	// ErrUnknownHook is returned when a hook name has no binding.
	ErrUnknownHook = errors.New("hook not defined")

	// ErrUnknownCallback is returned when a callback ID does not resolve to a
	// defined function.
	ErrUnknownCallback = errors.New("callback not defined")

	// ErrNilFunc is returned when defining a nil function.
	ErrNilFunc = errors.New("function cannot be nil")
)
