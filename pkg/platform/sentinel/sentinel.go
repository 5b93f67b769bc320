package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores, ambient sources and collectors
// return these (optionally wrapped) so callers can decide how to degrade:
// - ErrNotFound: key or record does not exist in the backing store
// - ErrUnavailable: backing resource cannot be reached right now
// - ErrInvalidValue: stored value could not be decoded
var (
	ErrNotFound     = errors.New("not found")
	ErrUnavailable  = errors.New("unavailable")
	ErrInvalidValue = errors.New("invalid value")
)
