package advice

import "errors"

// Errors for advice table operations.
var (
	// ErrUnknownWrapper is returned when detaching a wrapper ID that is not attached.
	ErrUnknownWrapper = errors.New("wrapper not attached")

	// ErrNilAdvice is returned when attaching a nil advice function.
	ErrNilAdvice = errors.New("advice cannot be nil")
)
