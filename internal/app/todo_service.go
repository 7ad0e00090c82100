package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	todocore "github.com/example/mull/internal/core/todo"
	"github.com/example/mull/internal/models"
	"github.com/example/mull/internal/ports/primary"
	"github.com/example/mull/internal/ports/secondary"
)

// TodoServiceImpl implements the TodoService interface.
//
// Every operation is a synchronous load-mutate-save cycle: the matrix is
// loaded fresh, display ids are resolved against that fresh copy immediately
// before the mutation, and the whole document is written back. On any error
// the on-disk state is whatever it was before the call.
type TodoServiceImpl struct {
	store secondary.MatrixStore
	newID func() string
	now   func() time.Time
}

// NewTodoService creates a TodoService backed by the given store.
func NewTodoService(store secondary.MatrixStore) *TodoServiceImpl {
	return &TodoServiceImpl{
		store: store,
		newID: uuid.NewString,
		now:   time.Now,
	}
}

// resolveRef turns a stable id or display id into a stable id against the
// given matrix. Display-id-shaped strings must resolve positionally; they
// never fall through to a stable-id lookup.
func resolveRef(matrix *models.TodoMatrix, ref string) (string, error) {
	if todocore.IsDisplayID(ref) {
		return todocore.ResolveDisplayID(matrix, ref)
	}
	return ref, nil
}

// Create validates the request, constructs the item and appends it to the
// sequence of its computed quadrant.
func (s *TodoServiceImpl) Create(ctx context.Context, req primary.CreateTodoRequest) (*models.TodoItem, error) {
	if err := todocore.CanCreateTodo(req.Title).Error(); err != nil {
		return nil, err
	}

	priority := req.Priority
	if priority == "" {
		priority = models.PriorityLow
	}
	urgency := req.Urgency
	if urgency == "" {
		urgency = models.UrgencyNotUrgent
	}
	tags := req.Tags
	if tags == nil {
		tags = []string{}
	}
	links := req.Links
	if links == nil {
		links = []string{}
	}

	item := &models.TodoItem{
		ID:          s.newID(),
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Priority:    priority,
		Urgency:     urgency,
		CreatedAt:   s.now(),
		Tags:        tags,
		Links:       links,
	}

	matrix, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	q := item.Quadrant()
	matrix.SetSequence(q, append(matrix.Sequence(q), item))
	if err := s.store.Save(ctx, matrix); err != nil {
		return nil, err
	}
	return item, nil
}

// Get returns the item plus its current display id.
func (s *TodoServiceImpl) Get(ctx context.Context, ref string) (*primary.TodoEntry, error) {
	matrix, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	id, err := resolveRef(matrix, ref)
	if err != nil {
		return nil, err
	}
	item, _, _ := matrix.Find(id)
	if item == nil {
		return nil, fmt.Errorf("%w: %s", todocore.ErrNotFound, ref)
	}
	return &primary.TodoEntry{
		DisplayID: todocore.GenerateDisplayID(matrix, item),
		Item:      item,
	}, nil
}

// List returns matching entries in stable traversal order.
func (s *TodoServiceImpl) List(ctx context.Context, criteria todocore.Criteria) ([]primary.TodoEntry, error) {
	matrix, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	var entries []primary.TodoEntry
	for _, item := range todocore.Filter(matrix, criteria) {
		entries = append(entries, primary.TodoEntry{
			DisplayID: todocore.GenerateDisplayID(matrix, item),
			Item:      item,
		})
	}
	return entries, nil
}

// Update merges the patch, applies the completion-timestamp rule, and moves
// the item to a new quadrant when priority or urgency changed.
func (s *TodoServiceImpl) Update(ctx context.Context, ref string, patch primary.TodoPatch) (*models.TodoItem, error) {
	matrix, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	id, err := resolveRef(matrix, ref)
	if err != nil {
		return nil, err
	}
	item, oldQuadrant, idx := matrix.Find(id)
	if item == nil {
		return nil, fmt.Errorf("%w: %s", todocore.ErrNotFound, ref)
	}

	if patch.Title != nil {
		if err := todocore.CanCreateTodo(*patch.Title).Error(); err != nil {
			return nil, err
		}
		item.Title = strings.TrimSpace(*patch.Title)
	}
	if patch.Description != nil {
		item.Description = *patch.Description
	}
	if patch.Priority != nil {
		item.Priority = *patch.Priority
	}
	if patch.Urgency != nil {
		item.Urgency = *patch.Urgency
	}
	if patch.Tags != nil {
		item.Tags = *patch.Tags
	}
	if patch.Links != nil {
		item.Links = *patch.Links
	}
	if patch.Completed != nil {
		s.setCompleted(item, *patch.Completed)
	}

	// Reclassify: an item must never sit in a quadrant inconsistent with its
	// own fields. Moving appends to the new sequence's end, which shifts
	// display ids in both quadrants.
	newQuadrant := item.Quadrant()
	if newQuadrant != oldQuadrant {
		matrix.SetSequence(oldQuadrant, removeAt(matrix.Sequence(oldQuadrant), idx))
		matrix.SetSequence(newQuadrant, append(matrix.Sequence(newQuadrant), item))
	}

	if err := s.store.Save(ctx, matrix); err != nil {
		return nil, err
	}
	return item, nil
}

// Toggle flips completion, leaving priority and urgency (and therefore the
// quadrant) untouched.
func (s *TodoServiceImpl) Toggle(ctx context.Context, ref string) (*models.TodoItem, error) {
	matrix, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	id, err := resolveRef(matrix, ref)
	if err != nil {
		return nil, err
	}
	item, _, _ := matrix.Find(id)
	if item == nil {
		return nil, fmt.Errorf("%w: %s", todocore.ErrNotFound, ref)
	}

	s.setCompleted(item, !item.Completed)

	if err := s.store.Save(ctx, matrix); err != nil {
		return nil, err
	}
	return item, nil
}

// Delete removes the item from whichever sequence contains it.
func (s *TodoServiceImpl) Delete(ctx context.Context, ref string) error {
	matrix, err := s.store.Load(ctx)
	if err != nil {
		return err
	}
	id, err := resolveRef(matrix, ref)
	if err != nil {
		return err
	}
	item, q, idx := matrix.Find(id)
	if item == nil {
		return fmt.Errorf("%w: %s", todocore.ErrNotFound, ref)
	}
	matrix.SetSequence(q, removeAt(matrix.Sequence(q), idx))
	return s.store.Save(ctx, matrix)
}

// Stats returns recomputed counts; persisted stats are never trusted.
func (s *TodoServiceImpl) Stats(ctx context.Context) (models.MatrixStats, error) {
	matrix, err := s.store.Load(ctx)
	if err != nil {
		return models.MatrixStats{}, err
	}
	matrix.RecomputeStats()
	return matrix.Stats, nil
}

// setCompleted applies the completion-transition rule: incomplete→complete
// stamps completedAt, complete→incomplete clears it.
func (s *TodoServiceImpl) setCompleted(item *models.TodoItem, completed bool) {
	if completed && !item.Completed {
		now := s.now()
		item.CompletedAt = &now
	}
	if !completed {
		item.CompletedAt = nil
	}
	item.Completed = completed
}

func removeAt(seq []*models.TodoItem, idx int) []*models.TodoItem {
	out := make([]*models.TodoItem, 0, len(seq)-1)
	out = append(out, seq[:idx]...)
	return append(out, seq[idx+1:]...)
}
