package secondary

import (
	"context"

	"github.com/example/mull/internal/models"
)

// PageFetcher retrieves a web page and returns its readable content as
// markdown.
type PageFetcher interface {
	Fetch(ctx context.Context, url string) (*Page, error)
}

// Page is the extracted readable content of a web page.
type Page struct {
	Title    string
	Markdown string
	Excerpt  string
	URL      string
}

// Summarizer produces a short summary of a document. Implementations report
// availability via Enabled so callers can skip summarization gracefully.
type Summarizer interface {
	Enabled() bool
	Summarize(ctx context.Context, text string) (string, error)
}

// Speaker reads text aloud through a system TTS engine.
type Speaker interface {
	Speak(ctx context.Context, text string) error
}

// PullRequestClient fetches and normalizes a Bitbucket pull request. Both
// Cloud and Server payload shapes come back as one PRSummary.
type PullRequestClient interface {
	Fetch(ctx context.Context, url string) (*models.PRSummary, error)
}

// GitClient wraps git plumbing for the thoughts directory. Failures here are
// reported but never fatal to store operations.
type GitClient interface {
	IsRepo(dir string) bool
	AutoCommit(ctx context.Context, dir, message string) error
}
