// Package secondary defines the secondary ports (driven interfaces) through
// which the application reaches external systems: the matrix document, the
// thoughts directory, the full-text index.
package secondary

import (
	"context"

	"github.com/example/mull/internal/models"
)

// MatrixStore persists the todo matrix as a single whole document.
type MatrixStore interface {
	// Load reads the persisted matrix. A missing or malformed document is
	// recovered locally: the empty default matrix is returned (and persisted
	// on the missing-file path) instead of propagating a read error.
	Load(ctx context.Context) (*models.TodoMatrix, error)

	// Save recomputes stats and lastUpdated, then overwrites the whole
	// document. Write failures propagate to the caller.
	Save(ctx context.Context, matrix *models.TodoMatrix) error
}

// ThoughtStore persists markdown notes in the thoughts directory.
type ThoughtStore interface {
	// Write stores content under a date-slug filename derived from title and
	// returns the file path.
	Write(ctx context.Context, title, content string) (string, error)

	// Read loads a thought by path (absolute, or relative to the directory).
	Read(ctx context.Context, path string) (*models.Thought, error)

	// List returns summaries of all thoughts, newest first.
	List(ctx context.Context) ([]models.ThoughtSummary, error)
}

// ThoughtIndex is the derived full-text index over thought files. It is
// rebuildable at any time and never the source of truth.
type ThoughtIndex interface {
	// Rebuild replaces the index contents with the given thoughts.
	Rebuild(ctx context.Context, thoughts []*models.Thought) error

	// Search returns matching paths with snippets, best match first.
	Search(ctx context.Context, query string, limit int) ([]IndexHit, error)

	Close() error
}

// IndexHit is one index search result.
type IndexHit struct {
	Path    string
	Title   string
	Snippet string
}
