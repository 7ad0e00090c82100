// Package primary defines the primary ports (driving interfaces) for the
// application. CLI and TUI front ends depend on these, never on the
// implementations in internal/app.
package primary

import (
	"context"

	todocore "github.com/example/mull/internal/core/todo"
	"github.com/example/mull/internal/models"
)

// TodoService is the primary port for Eisenhower-matrix operations.
//
// Every method performs a full load-mutate-save cycle against the persisted
// matrix. Reference arguments ("ref") accept either a stable id or a
// positional display id like "B2"; display ids are resolved against the
// freshly loaded matrix immediately before the mutation and are never cached
// across calls.
type TodoService interface {
	// Create validates, constructs and persists a new todo item.
	Create(ctx context.Context, req CreateTodoRequest) (*models.TodoItem, error)

	// Get returns the item for a stable id or display id, plus its current
	// display id.
	Get(ctx context.Context, ref string) (*TodoEntry, error)

	// List returns entries matching the criteria in stable traversal order.
	List(ctx context.Context, criteria todocore.Criteria) ([]TodoEntry, error)

	// Update merges the patch onto the item, applying the completion
	// timestamp rule and reclassifying the quadrant when priority or urgency
	// changed.
	Update(ctx context.Context, ref string, patch TodoPatch) (*models.TodoItem, error)

	// Toggle flips completion without touching priority or urgency.
	Toggle(ctx context.Context, ref string) (*models.TodoItem, error)

	// Delete removes the item from its quadrant.
	Delete(ctx context.Context, ref string) error

	// Stats returns the recomputed matrix stats.
	Stats(ctx context.Context) (models.MatrixStats, error)
}

// CreateTodoRequest carries the fields for a new todo. Priority and urgency
// default to low/not-urgent when empty.
type CreateTodoRequest struct {
	Title       string
	Description string
	Priority    models.Priority
	Urgency     models.Urgency
	Tags        []string
	Links       []string
}

// TodoPatch is a partial update; nil fields are left untouched.
type TodoPatch struct {
	Title       *string
	Description *string
	Priority    *models.Priority
	Urgency     *models.Urgency
	Completed   *bool
	Tags        *[]string
	Links       *[]string
}

// TodoEntry pairs an item with the display id it had at read time. The
// display id is positional and goes stale after any mutation.
type TodoEntry struct {
	DisplayID string
	Item      *models.TodoItem
}

// ConvertService is the primary port for todo ⇄ note conversion.
type ConvertService interface {
	// TodoToThought renders the item as a note document, writes it as a new
	// thought file and returns its path. The source todo is left untouched.
	TodoToThought(ctx context.Context, ref string) (string, error)

	// ThoughtToTodo extracts todo fields from a note document and persists a
	// new item. Best-effort extraction, not a lossless round-trip.
	ThoughtToTodo(ctx context.Context, path string) (*models.TodoItem, error)
}
