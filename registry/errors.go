package registry

import "github.com/joshuapare/objkit/pkg/types"

// Error sentinels, re-exported so callers can errors.Is against this package
// without importing pkg/types.
var (
	// ErrNoOpenScope is returned when a mutating registration is attempted
	// with no current scope.
	ErrNoOpenScope = types.ErrNoOpenScope

	// ErrAlreadyRegistered is returned when an object already has a
	// registration record, or an id is occupied by a different object.
	ErrAlreadyRegistered = types.ErrAlreadyRegistered

	// ErrInvalidArgument is returned for non-reference objects, entries
	// passed where objects were expected, and malformed pair lists.
	ErrInvalidArgument = types.ErrInvalidArgument
)
