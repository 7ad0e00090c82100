package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/example/mull/internal/models"
	"github.com/example/mull/internal/ports/primary"
	"github.com/example/mull/internal/ports/secondary"
)

// ThoughtServiceImpl implements note operations over the thought store plus
// the optional full-text index. The index is derived state: when it is
// missing or broken, search degrades to a directory scan instead of failing.
type ThoughtServiceImpl struct {
	thoughts secondary.ThoughtStore
	index    secondary.ThoughtIndex // may be nil
}

// NewThoughtService creates a ThoughtService. index may be nil when the
// full-text index could not be opened.
func NewThoughtService(thoughts secondary.ThoughtStore, index secondary.ThoughtIndex) *ThoughtServiceImpl {
	return &ThoughtServiceImpl{thoughts: thoughts, index: index}
}

const searchLimit = 20

// New writes a thought file with the title as its heading.
func (s *ThoughtServiceImpl) New(ctx context.Context, title, body string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", fmt.Errorf("thought title must not be empty")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n", title)
	if body != "" {
		fmt.Fprintf(&b, "\n%s\n", body)
	}
	return s.thoughts.Write(ctx, title, b.String())
}

// List returns summaries of all thoughts, newest first.
func (s *ThoughtServiceImpl) List(ctx context.Context) ([]models.ThoughtSummary, error) {
	return s.thoughts.List(ctx)
}

// Read loads a single thought by path.
func (s *ThoughtServiceImpl) Read(ctx context.Context, path string) (*models.Thought, error) {
	return s.thoughts.Read(ctx, path)
}

// Reindex reads every thought and rebuilds the index from scratch.
func (s *ThoughtServiceImpl) Reindex(ctx context.Context) (int, error) {
	if s.index == nil {
		return 0, fmt.Errorf("full-text index unavailable")
	}
	thoughts, err := s.loadAll(ctx)
	if err != nil {
		return 0, err
	}
	if err := s.index.Rebuild(ctx, thoughts); err != nil {
		return 0, fmt.Errorf("failed to rebuild index: %w", err)
	}
	return len(thoughts), nil
}

// Search queries the index, falling back to a substring scan over the
// directory when the index is unavailable or errors.
func (s *ThoughtServiceImpl) Search(ctx context.Context, query string) ([]primary.SearchHit, error) {
	if s.index != nil {
		hits, err := s.index.Search(ctx, query, searchLimit)
		if err == nil {
			out := make([]primary.SearchHit, 0, len(hits))
			for _, h := range hits {
				out = append(out, primary.SearchHit{Path: h.Path, Title: h.Title, Snippet: h.Snippet})
			}
			return out, nil
		}
	}
	return s.scanSearch(ctx, query)
}

// scanSearch is the degraded path: case-insensitive substring match over
// title and body of every thought.
func (s *ThoughtServiceImpl) scanSearch(ctx context.Context, query string) ([]primary.SearchHit, error) {
	thoughts, err := s.loadAll(ctx)
	if err != nil {
		return nil, err
	}
	needle := strings.ToLower(query)

	var hits []primary.SearchHit
	for _, t := range thoughts {
		if !strings.Contains(strings.ToLower(t.Title), needle) &&
			!strings.Contains(strings.ToLower(t.Body), needle) {
			continue
		}
		hits = append(hits, primary.SearchHit{
			Path:    t.Path,
			Title:   t.Title,
			Snippet: snippetAround(t.Body, needle),
		})
		if len(hits) == searchLimit {
			break
		}
	}
	return hits, nil
}

func (s *ThoughtServiceImpl) loadAll(ctx context.Context) ([]*models.Thought, error) {
	summaries, err := s.thoughts.List(ctx)
	if err != nil {
		return nil, err
	}
	thoughts := make([]*models.Thought, 0, len(summaries))
	for _, summary := range summaries {
		t, err := s.thoughts.Read(ctx, summary.Path)
		if err != nil {
			return nil, err
		}
		thoughts = append(thoughts, t)
	}
	return thoughts, nil
}

// snippetAround extracts a short window of body text around the first match,
// or the start of the body when the match was in the title only.
func snippetAround(body, needle string) string {
	const window = 80
	idx := strings.Index(strings.ToLower(body), needle)
	if idx < 0 {
		idx = 0
	}
	start := idx - window/2
	if start < 0 {
		start = 0
	}
	end := start + window
	if end > len(body) {
		end = len(body)
	}
	snippet := strings.Join(strings.Fields(body[start:end]), " ")
	return snippet
}
