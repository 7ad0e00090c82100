// Package web fetches pages and extracts readable content as markdown.
package web

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	readability "github.com/go-shiori/go-readability"

	"github.com/example/mull/internal/ports/secondary"
)

// Reader implements secondary.PageFetcher: HTTP fetch, readability
// extraction, then HTML → markdown conversion.
type Reader struct {
	httpClient *http.Client
}

// NewReader returns a Reader. A nil client gets a 30s-timeout default.
func NewReader(httpClient *http.Client) *Reader {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Reader{httpClient: httpClient}
}

// Fetch retrieves the page and returns its readable content as markdown.
func (r *Reader) Fetch(ctx context.Context, pageURL string) (*secondary.Page, error) {
	u, err := url.Parse(pageURL)
	if err != nil {
		return nil, fmt.Errorf("invalid url: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "mull/1.0 (+personal note clipper)")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch page: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d fetching %s", resp.StatusCode, pageURL)
	}

	article, err := readability.FromReader(resp.Body, u)
	if err != nil {
		return nil, fmt.Errorf("failed to extract readable content: %w", err)
	}

	markdown, err := htmltomarkdown.ConvertString(article.Content)
	if err != nil {
		return nil, fmt.Errorf("failed to convert content to markdown: %w", err)
	}

	title := article.Title
	if title == "" {
		title = pageURL
	}
	return &secondary.Page{
		Title:    title,
		Markdown: markdown,
		Excerpt:  article.Excerpt,
		URL:      pageURL,
	}, nil
}
