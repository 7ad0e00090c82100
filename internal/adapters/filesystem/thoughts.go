// Package filesystem stores thoughts as markdown files in the thoughts
// directory, one file per note, named YYYY-MM-DD-<slug>.md.
package filesystem

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/example/mull/internal/models"
)

var slugStripRe = regexp.MustCompile(`[^a-z0-9]+`)

// ThoughtStore implements secondary.ThoughtStore over a flat directory of
// markdown files.
type ThoughtStore struct {
	dir string
	now func() time.Time
}

// NewThoughtStore returns a store rooted at dir.
func NewThoughtStore(dir string) *ThoughtStore {
	return &ThoughtStore{dir: dir, now: time.Now}
}

// Dir returns the thoughts directory.
func (s *ThoughtStore) Dir() string {
	return s.dir
}

// Write stores content under a date-slug filename derived from title. On a
// name collision a numeric suffix is appended rather than overwriting.
func (s *ThoughtStore) Write(ctx context.Context, title, content string) (string, error) {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create thoughts dir: %w", err)
	}
	base := fmt.Sprintf("%s-%s", s.now().Format("2006-01-02"), Slugify(title))
	path := filepath.Join(s.dir, base+".md")
	for n := 2; ; n++ {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			break
		}
		path = filepath.Join(s.dir, fmt.Sprintf("%s-%d.md", base, n))
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("failed to write thought: %w", err)
	}
	return path, nil
}

// Read loads a thought by path. Relative paths resolve against the thoughts
// directory.
func (s *ThoughtStore) Read(ctx context.Context, path string) (*models.Thought, error) {
	if !filepath.IsAbs(path) {
		path = filepath.Join(s.dir, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read thought: %w", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat thought: %w", err)
	}
	body := string(data)
	return &models.Thought{
		Path:      path,
		Title:     titleOf(body, path),
		Body:      body,
		CreatedAt: info.ModTime(),
	}, nil
}

// List returns summaries of all markdown files in the directory, newest
// first.
func (s *ThoughtStore) List(ctx context.Context) ([]models.ThoughtSummary, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to list thoughts: %w", err)
	}
	var out []models.ThoughtSummary
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}
		path := filepath.Join(s.dir, entry.Name())
		info, err := entry.Info()
		if err != nil {
			continue
		}
		out = append(out, models.ThoughtSummary{
			Path:     path,
			Title:    firstHeading(path, entry.Name()),
			Modified: info.ModTime(),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Modified.After(out[j].Modified) })
	return out, nil
}

// Slugify reduces a title to a lowercase hyphenated filename fragment.
func Slugify(title string) string {
	slug := slugStripRe.ReplaceAllString(strings.ToLower(title), "-")
	slug = strings.Trim(slug, "-")
	if slug == "" {
		slug = "untitled"
	}
	if len(slug) > 60 {
		slug = strings.Trim(slug[:60], "-")
	}
	return slug
}

func titleOf(body, path string) string {
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "#") {
			return strings.TrimSpace(strings.TrimLeft(line, "# "))
		}
	}
	return strings.TrimSuffix(filepath.Base(path), ".md")
}

// firstHeading scans only the first lines of a file for its title, so
// listing stays cheap for large notes.
func firstHeading(path, fallback string) string {
	f, err := os.Open(path)
	if err != nil {
		return strings.TrimSuffix(fallback, ".md")
	}
	defer f.Close()
	scanner := bufio.NewScanner(f)
	for i := 0; i < 10 && scanner.Scan(); i++ {
		line := strings.TrimSpace(scanner.Text())
		if strings.HasPrefix(line, "#") {
			return strings.TrimSpace(strings.TrimLeft(line, "# "))
		}
	}
	return strings.TrimSuffix(fallback, ".md")
}
