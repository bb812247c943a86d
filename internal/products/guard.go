package product

import (
	pkgerrors "github.com/grovechain/foodtrace-backend/pkg/errors"
)

// VersionGuard admits or rejects a mutation based on the version the caller
// read. A nil expectation admits unconditionally; that is an explicit mode
// for callers that do not use optimistic locking, not a fallthrough.
type VersionGuard struct{}

// VersionConflictDetails is attached to conflict errors so callers can
// re-read and retry without a second round trip to discover the live version.
type VersionConflictDetails struct {
	ExpectedVersion int64 `json:"expected_version"`
	CurrentVersion  int64 `json:"current_version"`
}

// Check compares the stored version against the caller's expectation.
func (VersionGuard) Check(stored int64, expected *int64) error {
	if expected == nil {
		return nil
	}
	if *expected == stored {
		return nil
	}
	return pkgerrors.New(pkgerrors.CodeConflict, "stored version does not match expected version").
		WithDetails(VersionConflictDetails{
			ExpectedVersion: *expected,
			CurrentVersion:  stored,
		})
}
