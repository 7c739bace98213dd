package service

import "errors"

// Sentinel errors returned by the service. Provider failures keep their own
// kinds and are wrapped, never replaced.
var (
	ErrNotFound         = errors.New("not found")
	ErrInvalidSelection = errors.New("invalid selection")
)
