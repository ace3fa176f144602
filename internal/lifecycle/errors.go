package lifecycle

import "errors"

// Domain outcome taxonomy. These are expected results surfaced to the caller
// verbatim; anything else bubbling out of the engine is an infrastructure
// failure.
var (
	ErrValidation        = errors.New("validation failed")
	ErrNotFound          = errors.New("not found")
	ErrForbidden         = errors.New("forbidden")
	ErrInvalidTransition = errors.New("invalid transition")
	ErrConflict          = errors.New("conflict")
)
