// Package todo contains the pure business rules for the Eisenhower matrix:
// quadrant placement, display-id resolution, search predicates, and
// validation guards. Functions here have no side effects.
package todo

import "errors"

// Error taxonomy for matrix operations. Callers branch with errors.Is.
var (
	// ErrNotFound: an id or display id resolves to no item in any quadrant.
	ErrNotFound = errors.New("todo not found")

	// ErrValidation: a required field is missing or empty. Raised before any
	// mutation takes place.
	ErrValidation = errors.New("validation failed")
)
