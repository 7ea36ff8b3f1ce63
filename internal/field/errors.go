package field

import "errors"

var (
	// ErrInvalidConfiguration is returned before any placement when the
	// requested size or obstacle counts cannot form a field.
	ErrInvalidConfiguration = errors.New("field: invalid configuration")
	// ErrPlacementExhausted is returned when no untouched cell is left for a
	// special marker.
	ErrPlacementExhausted = errors.New("field: no safe cell left for placement")
)
