package shared

import "errors"

// Error categories for the domain core. Concrete errors wrap one of these so
// callers can classify with errors.Is without knowing every sentinel.
var (
	ErrValidation      = errors.New("validation error")
	ErrStateTransition = errors.New("invalid state transition")
	ErrNotFound        = errors.New("not found")
	ErrGateway         = errors.New("gateway error")
)
