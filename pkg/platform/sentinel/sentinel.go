package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores and clients return these
// (optionally wrapped) so services can decide how to degrade.
//
//   - ErrNotFound: the requested secret or record does not exist
//   - ErrUnavailable: the backing service could not be reached or answered badly
//
// For validation errors (bad input, missing fields), use pkg/domain-errors directly.
var (
	ErrNotFound    = errors.New("not found")
	ErrUnavailable = errors.New("unavailable")
)
