package primary

import (
	"context"

	"github.com/example/mull/internal/models"
)

// ThoughtService is the primary port for markdown note operations.
type ThoughtService interface {
	// New writes a new thought file and returns its path.
	New(ctx context.Context, title, body string) (string, error)

	// List returns summaries of all thoughts, newest first.
	List(ctx context.Context) ([]models.ThoughtSummary, error)

	// Read loads a single thought by path.
	Read(ctx context.Context, path string) (*models.Thought, error)

	// Reindex rebuilds the full-text index and returns the number of
	// thoughts indexed.
	Reindex(ctx context.Context) (int, error)

	// Search queries the full-text index, degrading to a directory scan when
	// the index is unavailable.
	Search(ctx context.Context, query string) ([]SearchHit, error)
}

// SearchHit is one full-text search result.
type SearchHit struct {
	Path    string
	Title   string
	Snippet string
}

// ClipService is the primary port for the web clipper.
type ClipService interface {
	// Clip fetches a page, extracts readable content as markdown, optionally
	// prepends an AI summary, and writes a thought file. Returns its path.
	Clip(ctx context.Context, url string, summarize bool) (string, error)
}

// PullRequestService is the primary port for the Bitbucket PR archiver.
type PullRequestService interface {
	// Archive fetches a pull request and writes a markdown archive thought.
	Archive(ctx context.Context, url string) (string, error)
}

// SpeakService is the primary port for text-to-speech.
type SpeakService interface {
	// SpeakThought reads a thought file aloud.
	SpeakThought(ctx context.Context, path string) error

	// SpeakTodo reads a todo item (by stable or display id) aloud.
	SpeakTodo(ctx context.Context, ref string) error
}
