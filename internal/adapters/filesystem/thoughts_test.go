package filesystem

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Hello World", "hello-world"},
		{"  Fix: login/logout bug!  ", "fix-login-logout-bug"},
		{"ALL CAPS", "all-caps"},
		{"***", "untitled"},
		{"", "untitled"},
	}
	for _, tt := range tests {
		if got := Slugify(tt.in); got != tt.want {
			t.Errorf("Slugify(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestWriteReadList(t *testing.T) {
	dir := t.TempDir()
	store := NewThoughtStore(dir)
	ctx := context.Background()

	path, err := store.Write(ctx, "Morning Pages", "# Morning Pages\n\nSome text.\n")
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if !strings.HasSuffix(path, "-morning-pages.md") {
		t.Errorf("path = %q, want date-slug name", path)
	}

	thought, err := store.Read(ctx, path)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if thought.Title != "Morning Pages" {
		t.Errorf("Title = %q", thought.Title)
	}
	if !strings.Contains(thought.Body, "Some text.") {
		t.Errorf("Body = %q", thought.Body)
	}

	summaries, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(summaries) != 1 || summaries[0].Title != "Morning Pages" {
		t.Errorf("List = %+v", summaries)
	}
}

func TestWriteCollisionAppendsSuffix(t *testing.T) {
	dir := t.TempDir()
	store := NewThoughtStore(dir)
	ctx := context.Background()

	first, err := store.Write(ctx, "Same Title", "one")
	if err != nil {
		t.Fatal(err)
	}
	second, err := store.Write(ctx, "Same Title", "two")
	if err != nil {
		t.Fatal(err)
	}
	if first == second {
		t.Fatalf("second write overwrote the first: %q", first)
	}
	data, err := os.ReadFile(first)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "one" {
		t.Errorf("first file content = %q, want untouched", data)
	}
}

func TestReadRelativePath(t *testing.T) {
	dir := t.TempDir()
	store := NewThoughtStore(dir)
	ctx := context.Background()

	path, err := store.Write(ctx, "Rel", "# Rel\n")
	if err != nil {
		t.Fatal(err)
	}
	rel := filepath.Base(path)
	thought, err := store.Read(ctx, rel)
	if err != nil {
		t.Fatalf("Read(%q): %v", rel, err)
	}
	if thought.Title != "Rel" {
		t.Errorf("Title = %q", thought.Title)
	}
}

func TestListSkipsNonMarkdown(t *testing.T) {
	dir := t.TempDir()
	store := NewThoughtStore(dir)
	ctx := context.Background()

	if _, err := store.Write(ctx, "Keep", "# Keep\n"); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Join(dir, ".mull"), 0755); err != nil {
		t.Fatal(err)
	}

	summaries, err := store.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(summaries) != 1 {
		t.Errorf("List returned %d entries, want 1", len(summaries))
	}
}
