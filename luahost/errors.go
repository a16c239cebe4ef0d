package luahost

import "errors"

// Errors for Lua host operations.
var (
	// ErrHostClosed is returned when operating on a closed host.
	ErrHostClosed = errors.New("lua host is closed")

	// ErrNotAFunction is returned when a named global is missing or is not a
	// Lua function.
	ErrNotAFunction = errors.New("global is not a function")
)
