// Package jsonstore persists the todo matrix as a single JSON document under
// the thoughts directory.
package jsonstore

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/example/mull/internal/models"
)

// Filename is the matrix document path relative to the thoughts directory.
const Filename = ".mull/todos.json"

// MatrixStore is a file-backed secondary.MatrixStore. Whole-document
// overwrite, last-writer-wins: there is no cross-process locking, which is a
// documented limitation for a single-user local tool. The write itself is
// atomic (temp file + rename) so a crash mid-write never truncates the store.
type MatrixStore struct {
	path string
	warn io.Writer
	now  func() time.Time
}

// New returns a store rooted at the given thoughts directory. Warnings about
// recoverable read failures go to warn (defaults to os.Stderr when nil).
func New(thoughtsDir string, warn io.Writer) *MatrixStore {
	if warn == nil {
		warn = os.Stderr
	}
	return &MatrixStore{
		path: filepath.Join(thoughtsDir, Filename),
		warn: warn,
		now:  time.Now,
	}
}

// Load reads the persisted matrix. A missing document yields the empty
// default matrix, which is persisted immediately so subsequent loads are
// idempotent. A malformed document yields the default with a warning, but is
// not overwritten until the next save.
func (s *MatrixStore) Load(ctx context.Context) (*models.TodoMatrix, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		matrix := models.NewTodoMatrix()
		if err := s.Save(ctx, matrix); err != nil {
			return nil, fmt.Errorf("failed to persist default matrix: %w", err)
		}
		return matrix, nil
	}
	if err != nil {
		fmt.Fprintf(s.warn, "warning: could not read todo store (%v), starting from empty matrix\n", err)
		return models.NewTodoMatrix(), nil
	}

	var matrix models.TodoMatrix
	if err := json.Unmarshal(data, &matrix); err != nil {
		fmt.Fprintf(s.warn, "warning: todo store is malformed (%v), starting from empty matrix\n", err)
		return models.NewTodoMatrix(), nil
	}
	normalize(&matrix)
	return &matrix, nil
}

// Save recomputes stats, stamps lastUpdated and overwrites the whole
// document atomically.
func (s *MatrixStore) Save(ctx context.Context, matrix *models.TodoMatrix) error {
	matrix.RecomputeStats()
	matrix.LastUpdated = s.now()
	normalize(matrix)

	data, err := json.MarshalIndent(matrix, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal todo store: %w", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create store dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "todos-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp store file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write todo store: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp store file: %w", err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to chmod todo store: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace todo store: %w", err)
	}
	return nil
}

// normalize keeps the four sequences and the per-item collections non-nil so
// the document always serializes arrays, never null.
func normalize(m *models.TodoMatrix) {
	for _, q := range models.Quadrants {
		if m.Sequence(q) == nil {
			m.SetSequence(q, []*models.TodoItem{})
		}
		for _, item := range m.Sequence(q) {
			if item.Tags == nil {
				item.Tags = []string{}
			}
			if item.Links == nil {
				item.Links = []string{}
			}
		}
	}
}
