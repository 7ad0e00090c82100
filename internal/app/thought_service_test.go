package app

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/example/mull/internal/models"
	"github.com/example/mull/internal/ports/secondary"
)

// memIndex is an in-memory ThoughtIndex with injectable failures.
type memIndex struct {
	thoughts  []*models.Thought
	searchErr error
}

func (m *memIndex) Rebuild(ctx context.Context, thoughts []*models.Thought) error {
	m.thoughts = thoughts
	return nil
}

func (m *memIndex) Search(ctx context.Context, query string, limit int) ([]secondary.IndexHit, error) {
	if m.searchErr != nil {
		return nil, m.searchErr
	}
	var hits []secondary.IndexHit
	for _, t := range m.thoughts {
		if strings.Contains(strings.ToLower(t.Body), strings.ToLower(query)) {
			hits = append(hits, secondary.IndexHit{Path: t.Path, Title: t.Title, Snippet: "indexed"})
		}
	}
	return hits, nil
}

func (m *memIndex) Close() error { return nil }

func seedThoughts(t *testing.T, thoughts *memThoughts) {
	t.Helper()
	ctx := context.Background()
	docs := map[string]string{
		"Meeting notes": "# Meeting notes\n\nDiscussed the quarterly roadmap.",
		"Recipe":        "# Recipe\n\nSourdough starter instructions.",
		"Roadmap draft": "# Roadmap draft\n\nThe roadmap needs a storage section.",
	}
	for title, body := range docs {
		if _, err := thoughts.Write(ctx, title, body); err != nil {
			t.Fatal(err)
		}
	}
}

func TestNewThoughtComposesDocument(t *testing.T) {
	thoughts := newMemThoughts()
	svc := NewThoughtService(thoughts, nil)

	path, err := svc.New(context.Background(), "Shower idea", "Cache the parse tree.")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	doc := thoughts.docs[path]
	if !strings.HasPrefix(doc, "# Shower idea\n") || !strings.Contains(doc, "Cache the parse tree.") {
		t.Errorf("document = %q", doc)
	}
}

func TestNewThoughtRejectsEmptyTitle(t *testing.T) {
	svc := NewThoughtService(newMemThoughts(), nil)
	if _, err := svc.New(context.Background(), "  ", "body"); err == nil {
		t.Error("expected error for empty title")
	}
}

func TestReindexCountsThoughts(t *testing.T) {
	thoughts := newMemThoughts()
	seedThoughts(t, thoughts)
	index := &memIndex{}
	svc := NewThoughtService(thoughts, index)

	n, err := svc.Reindex(context.Background())
	if err != nil {
		t.Fatalf("Reindex: %v", err)
	}
	if n != 3 || len(index.thoughts) != 3 {
		t.Errorf("indexed %d/%d thoughts, want 3", n, len(index.thoughts))
	}
}

func TestReindexWithoutIndexIsError(t *testing.T) {
	svc := NewThoughtService(newMemThoughts(), nil)
	if _, err := svc.Reindex(context.Background()); err == nil {
		t.Error("expected error when index unavailable")
	}
}

func TestSearchUsesIndex(t *testing.T) {
	thoughts := newMemThoughts()
	seedThoughts(t, thoughts)
	index := &memIndex{}
	svc := NewThoughtService(thoughts, index)
	ctx := context.Background()

	if _, err := svc.Reindex(ctx); err != nil {
		t.Fatalf("Reindex: %v", err)
	}
	hits, err := svc.Search(ctx, "roadmap")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(hits) != 2 {
		t.Fatalf("len = %d, want 2", len(hits))
	}
	if hits[0].Snippet != "indexed" {
		t.Error("expected hits from the index, not the scan fallback")
	}
}

func TestSearchDegradesToScanOnIndexError(t *testing.T) {
	thoughts := newMemThoughts()
	seedThoughts(t, thoughts)
	index := &memIndex{searchErr: errors.New("index corrupt")}
	svc := NewThoughtService(thoughts, index)

	hits, err := svc.Search(context.Background(), "sourdough")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(hits) != 1 {
		t.Fatalf("len = %d, want 1", len(hits))
	}
	if !strings.Contains(strings.ToLower(hits[0].Snippet), "sourdough") {
		t.Errorf("snippet = %q", hits[0].Snippet)
	}
}

func TestSearchScanWhenNoIndex(t *testing.T) {
	thoughts := newMemThoughts()
	seedThoughts(t, thoughts)
	svc := NewThoughtService(thoughts, nil)

	hits, err := svc.Search(context.Background(), "quarterly")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(hits) != 1 {
		t.Errorf("len = %d, want 1", len(hits))
	}
}
