package jsonstore

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/example/mull/internal/models"
)

func newTestStore(t *testing.T) (*MatrixStore, string) {
	t.Helper()
	dir := t.TempDir()
	return New(dir, &bytes.Buffer{}), dir
}

func TestLoadMissingFilePersistsDefault(t *testing.T) {
	store, dir := newTestStore(t)
	ctx := context.Background()

	matrix, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if matrix.Stats.Total != 0 {
		t.Errorf("default matrix total = %d, want 0", matrix.Stats.Total)
	}

	// The default must have been persisted so a second load is idempotent.
	path := filepath.Join(dir, Filename)
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("default matrix not persisted: %v", err)
	}
	first, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := store.Load(ctx); err != nil {
		t.Fatalf("second Load: %v", err)
	}
	second, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(first, second) {
		t.Error("second load changed the persisted document")
	}
}

func TestLoadMalformedFallsBackToDefault(t *testing.T) {
	dir := t.TempDir()
	warnings := &bytes.Buffer{}
	store := New(dir, warnings)
	path := filepath.Join(dir, Filename)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	matrix, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("Load on malformed document: %v", err)
	}
	if len(matrix.All()) != 0 {
		t.Errorf("expected empty default matrix, got %d items", len(matrix.All()))
	}
	if !strings.Contains(warnings.String(), "malformed") {
		t.Errorf("expected a malformed-store warning, got %q", warnings.String())
	}
}

func TestSaveRecomputesStatsAndShape(t *testing.T) {
	store, dir := newTestStore(t)
	ctx := context.Background()

	matrix := models.NewTodoMatrix()
	done := time.Now()
	matrix.ImportantUrgent = append(matrix.ImportantUrgent, &models.TodoItem{
		ID: "a", Title: "one", Priority: models.PriorityHigh, Urgency: models.UrgencyUrgent,
		Completed: true, CompletedAt: &done, CreatedAt: time.Now(),
	})
	matrix.NotImportantNotUrgent = append(matrix.NotImportantNotUrgent, &models.TodoItem{
		ID: "b", Title: "two", Priority: models.PriorityLow, Urgency: models.UrgencyNotUrgent,
		CreatedAt: time.Now(),
	})
	// Stale stats must be overwritten on save.
	matrix.Stats = models.MatrixStats{Total: 99, Completed: 99, Active: 99}

	if err := store.Save(ctx, matrix); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if matrix.Stats.Total != 2 || matrix.Stats.Completed != 1 || matrix.Stats.Active != 1 {
		t.Errorf("stats after save = %+v, want {2 1 1}", matrix.Stats)
	}
	if matrix.LastUpdated.IsZero() {
		t.Error("lastUpdated not stamped")
	}

	// The persisted document must carry all four quadrant keys as arrays and
	// completedAt as null when absent.
	data, err := os.ReadFile(filepath.Join(dir, Filename))
	if err != nil {
		t.Fatal(err)
	}
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("persisted document is not valid JSON: %v", err)
	}
	for _, key := range []string{"important_urgent", "important_not_urgent", "not_important_urgent", "not_important_not_urgent", "stats", "lastUpdated"} {
		if _, ok := doc[key]; !ok {
			t.Errorf("persisted document missing key %q", key)
		}
	}
	if !strings.Contains(string(data), `"completedAt": null`) {
		t.Error("incomplete item should persist completedAt as null")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	matrix := models.NewTodoMatrix()
	matrix.ImportantNotUrgent = append(matrix.ImportantNotUrgent, &models.TodoItem{
		ID:          "rt-1",
		Title:       "write report",
		Description: "with charts",
		Priority:    models.PriorityHigh,
		Urgency:     models.UrgencyNotUrgent,
		CreatedAt:   time.Now().UTC().Truncate(time.Second),
		Tags:        []string{"work"},
		Links:       []string{"https://example.com"},
		Metadata:    map[string]any{"source": "test"},
	})
	if err := store.Save(ctx, matrix); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	item, q, idx := loaded.Find("rt-1")
	if item == nil {
		t.Fatal("item not found after round trip")
	}
	if q != models.QuadrantImportantNotUrgent || idx != 0 {
		t.Errorf("item at (%s, %d), want (important_not_urgent, 0)", q, idx)
	}
	if item.Title != "write report" || item.Description != "with charts" {
		t.Errorf("item fields lost: %+v", item)
	}
	if len(item.Tags) != 1 || item.Tags[0] != "work" {
		t.Errorf("tags = %v", item.Tags)
	}
	if item.CompletedAt != nil {
		t.Error("completedAt should round-trip as nil")
	}
}

func TestLoadNormalizesNilSequences(t *testing.T) {
	dir := t.TempDir()
	store := New(dir, &bytes.Buffer{})
	path := filepath.Join(dir, Filename)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	// Hand-written document with a missing quadrant key.
	doc := `{"important_urgent": [], "stats": {"total":0,"completed":0,"active":0}, "lastUpdated": "2026-01-01T00:00:00Z"}`
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		t.Fatal(err)
	}

	matrix, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	for _, q := range models.Quadrants {
		if matrix.Sequence(q) == nil {
			t.Errorf("sequence %s is nil after load", q)
		}
	}
}
