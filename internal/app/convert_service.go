package app

import (
	"context"
	"fmt"

	todocore "github.com/example/mull/internal/core/todo"
	thoughtcore "github.com/example/mull/internal/core/thought"
	"github.com/example/mull/internal/models"
	"github.com/example/mull/internal/ports/primary"
	"github.com/example/mull/internal/ports/secondary"
)

// ConvertServiceImpl implements todo ⇄ note conversion on top of the todo
// service and the thought store.
type ConvertServiceImpl struct {
	todos    primary.TodoService
	matrix   secondary.MatrixStore
	thoughts secondary.ThoughtStore
}

// NewConvertService creates a ConvertService.
func NewConvertService(todos primary.TodoService, matrix secondary.MatrixStore, thoughts secondary.ThoughtStore) *ConvertServiceImpl {
	return &ConvertServiceImpl{todos: todos, matrix: matrix, thoughts: thoughts}
}

// TodoToThought renders the item as a note document and writes it as a new
// thought file. The source todo is left untouched.
func (s *ConvertServiceImpl) TodoToThought(ctx context.Context, ref string) (string, error) {
	m, err := s.matrix.Load(ctx)
	if err != nil {
		return "", err
	}
	id, err := resolveRef(m, ref)
	if err != nil {
		return "", err
	}
	item, _, _ := m.Find(id)
	if item == nil {
		return "", fmt.Errorf("%w: %s", todocore.ErrNotFound, ref)
	}

	path, err := s.thoughts.Write(ctx, item.Title, thoughtcore.RenderTodo(item))
	if err != nil {
		return "", fmt.Errorf("failed to write thought: %w", err)
	}
	return path, nil
}

// ThoughtToTodo extracts todo fields from a note document and persists a new
// item through the regular create path, so validation and quadrant placement
// apply.
func (s *ConvertServiceImpl) ThoughtToTodo(ctx context.Context, path string) (*models.TodoItem, error) {
	thought, err := s.thoughts.Read(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read thought: %w", err)
	}

	parsed := thoughtcore.ParseTodo(thought.Body)
	return s.todos.Create(ctx, primary.CreateTodoRequest{
		Title:       parsed.Title,
		Description: parsed.Description,
		Priority:    parsed.Priority,
		Urgency:     parsed.Urgency,
		Tags:        parsed.Tags,
		Links:       parsed.Links,
	})
}
