package internalerr

import "errors"

// Sentinel errors for common cases
var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrProviderInconsistency = errors.New("provider inconsistency")
	ErrNotFound              = errors.New("not found")
	ErrStoreUnavailable      = errors.New("store unavailable")
	ErrInvalidConfig         = errors.New("invalid configuration")
)
