package todo

import (
	"fmt"
	"strings"
)

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed bool
	Reason  string
}

// Error converts the guard result to a validation error if not allowed.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrValidation, r.Reason)
}

// CanCreateTodo evaluates whether a todo can be created.
// Rules:
// - Title must be non-empty after trimming whitespace.
func CanCreateTodo(title string) GuardResult {
	if strings.TrimSpace(title) == "" {
		return GuardResult{
			Allowed: false,
			Reason:  "title must not be empty",
		}
	}
	return GuardResult{Allowed: true}
}
