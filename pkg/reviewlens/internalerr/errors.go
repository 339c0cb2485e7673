package internalerr

import "errors"

// Sentinel errors shared by sources, config and the facade.
var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrEmptyDataset     = errors.New("empty dataset")
	ErrStoreUnavailable = errors.New("store unavailable")
	ErrInvalidConfig    = errors.New("invalid configuration")
)
