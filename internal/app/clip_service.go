package app

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/example/mull/internal/ports/secondary"
)

// ClipServiceImpl implements the web clipper: fetch, extract, optionally
// summarize, archive as a thought. Summarization failures degrade to a plain
// clip; they never lose the page content.
type ClipServiceImpl struct {
	fetcher    secondary.PageFetcher
	summarizer secondary.Summarizer
	thoughts   secondary.ThoughtStore
	warn       io.Writer
	now        func() time.Time
}

// NewClipService creates a ClipService. warn receives non-fatal notices such
// as a failed summarization.
func NewClipService(fetcher secondary.PageFetcher, summarizer secondary.Summarizer, thoughts secondary.ThoughtStore, warn io.Writer) *ClipServiceImpl {
	return &ClipServiceImpl{
		fetcher:    fetcher,
		summarizer: summarizer,
		thoughts:   thoughts,
		warn:       warn,
		now:        time.Now,
	}
}

// Clip fetches the page and writes it as a thought file, returning the path.
func (s *ClipServiceImpl) Clip(ctx context.Context, url string, summarize bool) (string, error) {
	page, err := s.fetcher.Fetch(ctx, url)
	if err != nil {
		return "", fmt.Errorf("failed to fetch page: %w", err)
	}

	title := strings.TrimSpace(page.Title)
	if title == "" {
		title = url
	}

	summary := ""
	if summarize {
		summary = s.trySummarize(ctx, page.Markdown)
	}

	return s.thoughts.Write(ctx, title, s.render(title, url, summary, page))
}

// trySummarize returns "" on any failure; the clip proceeds without it.
func (s *ClipServiceImpl) trySummarize(ctx context.Context, text string) string {
	if !s.summarizer.Enabled() {
		fmt.Fprintln(s.warn, "Warning: summarization not configured (set OPENAI_API_KEY), clipping without summary")
		return ""
	}
	summary, err := s.summarizer.Summarize(ctx, text)
	if err != nil {
		fmt.Fprintf(s.warn, "Warning: summarization failed: %v\n", err)
		return ""
	}
	return summary
}

func (s *ClipServiceImpl) render(title, url, summary string, page *secondary.Page) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", title)
	fmt.Fprintf(&b, "Source: %s\n", url)
	fmt.Fprintf(&b, "Clipped: %s\n", s.now().Format(time.RFC3339))
	if summary != "" {
		fmt.Fprintf(&b, "\n## Summary\n\n%s\n", strings.TrimSpace(summary))
	}
	fmt.Fprintf(&b, "\n---\n\n%s\n", strings.TrimSpace(page.Markdown))
	return b.String()
}
