package app

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/example/mull/internal/models"
	"github.com/example/mull/internal/ports/secondary"
)

type stubFetcher struct {
	page *secondary.Page
	err  error
}

func (f *stubFetcher) Fetch(ctx context.Context, url string) (*secondary.Page, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.page, nil
}

type stubSummarizer struct {
	enabled bool
	summary string
	err     error
}

func (s *stubSummarizer) Enabled() bool { return s.enabled }

func (s *stubSummarizer) Summarize(ctx context.Context, text string) (string, error) {
	return s.summary, s.err
}

func TestClipWritesPageAsThought(t *testing.T) {
	thoughts := newMemThoughts()
	fetcher := &stubFetcher{page: &secondary.Page{
		Title:    "Go Concurrency Patterns",
		Markdown: "Pipelines and cancellation.",
	}}
	svc := NewClipService(fetcher, &stubSummarizer{}, thoughts, &bytes.Buffer{})

	path, err := svc.Clip(context.Background(), "https://example.com/conc", false)
	if err != nil {
		t.Fatalf("Clip: %v", err)
	}
	doc := thoughts.docs[path]
	for _, want := range []string{
		"# Go Concurrency Patterns",
		"Source: https://example.com/conc",
		"Pipelines and cancellation.",
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("clip missing %q:\n%s", want, doc)
		}
	}
	if strings.Contains(doc, "## Summary") {
		t.Error("unrequested summary section present")
	}
}

func TestClipWithSummary(t *testing.T) {
	thoughts := newMemThoughts()
	fetcher := &stubFetcher{page: &secondary.Page{Title: "Article", Markdown: "Long body."}}
	summarizer := &stubSummarizer{enabled: true, summary: "Short version."}
	svc := NewClipService(fetcher, summarizer, thoughts, &bytes.Buffer{})

	path, err := svc.Clip(context.Background(), "https://example.com/a", true)
	if err != nil {
		t.Fatalf("Clip: %v", err)
	}
	doc := thoughts.docs[path]
	if !strings.Contains(doc, "## Summary\n\nShort version.") {
		t.Errorf("summary section missing:\n%s", doc)
	}
}

func TestClipSummaryFailureDegrades(t *testing.T) {
	thoughts := newMemThoughts()
	fetcher := &stubFetcher{page: &secondary.Page{Title: "Article", Markdown: "Body."}}
	summarizer := &stubSummarizer{enabled: true, err: errors.New("rate limited")}
	var warnings bytes.Buffer
	svc := NewClipService(fetcher, summarizer, thoughts, &warnings)

	path, err := svc.Clip(context.Background(), "https://example.com/a", true)
	if err != nil {
		t.Fatalf("Clip must succeed without summary: %v", err)
	}
	if strings.Contains(thoughts.docs[path], "## Summary") {
		t.Error("failed summary must not leave a section")
	}
	if !strings.Contains(warnings.String(), "summarization failed") {
		t.Errorf("warnings = %q", warnings.String())
	}
}

func TestClipSummarizerDisabledWarns(t *testing.T) {
	thoughts := newMemThoughts()
	fetcher := &stubFetcher{page: &secondary.Page{Title: "Article", Markdown: "Body."}}
	var warnings bytes.Buffer
	svc := NewClipService(fetcher, &stubSummarizer{enabled: false}, thoughts, &warnings)

	if _, err := svc.Clip(context.Background(), "https://example.com/a", true); err != nil {
		t.Fatalf("Clip: %v", err)
	}
	if !strings.Contains(warnings.String(), "not configured") {
		t.Errorf("warnings = %q", warnings.String())
	}
}

func TestClipFetchFailureIsFatal(t *testing.T) {
	svc := NewClipService(&stubFetcher{err: errors.New("404")}, &stubSummarizer{}, newMemThoughts(), &bytes.Buffer{})
	if _, err := svc.Clip(context.Background(), "https://example.com/gone", false); err == nil {
		t.Error("expected fetch error")
	}
}

func TestClipUntitledPageFallsBackToURL(t *testing.T) {
	thoughts := newMemThoughts()
	fetcher := &stubFetcher{page: &secondary.Page{Title: "  ", Markdown: "Body."}}
	svc := NewClipService(fetcher, &stubSummarizer{}, thoughts, &bytes.Buffer{})

	path, err := svc.Clip(context.Background(), "https://example.com/x", false)
	if err != nil {
		t.Fatalf("Clip: %v", err)
	}
	if !strings.Contains(thoughts.docs[path], "# https://example.com/x") {
		t.Error("expected URL as fallback title")
	}
}

func TestArchivePullRequest(t *testing.T) {
	thoughts := newMemThoughts()
	client := &stubPRClient{pr: &models.PRSummary{
		Host: models.PRHostCloud, ID: 12, Title: "Add retry", Author: "Ada",
		SourceBranch: "feature/retry", TargetBranch: "main", State: "OPEN",
		Comments: []models.PRComment{{Author: "Bob", Text: "LGTM", FilePath: "retry.go"}},
	}}
	svc := NewPullRequestService(client, thoughts)

	path, err := svc.Archive(context.Background(), "https://bitbucket.org/team/repo/pull-requests/12")
	if err != nil {
		t.Fatalf("Archive: %v", err)
	}
	doc := thoughts.docs[path]
	for _, want := range []string{
		"# PR #12: Add retry",
		"Author: Ada",
		"Branch: feature/retry → main",
		"## Comments (1)",
		"### Bob",
		"On `retry.go`:",
		"LGTM",
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("archive missing %q:\n%s", want, doc)
		}
	}
}

type stubPRClient struct {
	pr  *models.PRSummary
	err error
}

func (c *stubPRClient) Fetch(ctx context.Context, url string) (*models.PRSummary, error) {
	if c.err != nil {
		return nil, c.err
	}
	return c.pr, nil
}

type stubSpeaker struct {
	spoken []string
	err    error
}

func (s *stubSpeaker) Speak(ctx context.Context, text string) error {
	if s.err != nil {
		return s.err
	}
	s.spoken = append(s.spoken, text)
	return nil
}

func TestSpeakThoughtFlattensMarkdown(t *testing.T) {
	thoughts := newMemThoughts()
	ctx := context.Background()
	path, _ := thoughts.Write(ctx, "note", "# Heading\n\nSome **bold** words and a [link](https://example.com).")
	speaker := &stubSpeaker{}
	svc := NewSpeakService(thoughts, newMemStore(), speaker)

	if err := svc.SpeakThought(ctx, path); err != nil {
		t.Fatalf("SpeakThought: %v", err)
	}
	if len(speaker.spoken) != 1 {
		t.Fatalf("spoke %d times", len(speaker.spoken))
	}
	text := speaker.spoken[0]
	for _, banned := range []string{"#", "**", "](", "https://example.com"} {
		if strings.Contains(text, banned) {
			t.Errorf("speakable text contains %q: %q", banned, text)
		}
	}
	if !strings.Contains(text, "bold") || !strings.Contains(text, "link") {
		t.Errorf("speakable text lost words: %q", text)
	}
}

func TestSpeakTodoByDisplayID(t *testing.T) {
	store := newMemStore()
	todoSvc := newTestService(store)
	mustCreate(t, todoSvc, "Water the plants", models.PriorityLow, models.UrgencyUrgent)
	speaker := &stubSpeaker{}
	svc := NewSpeakService(newMemThoughts(), store, speaker)

	if err := svc.SpeakTodo(context.Background(), "C1"); err != nil {
		t.Fatalf("SpeakTodo: %v", err)
	}
	if len(speaker.spoken) != 1 || !strings.Contains(speaker.spoken[0], "Water the plants") {
		t.Errorf("spoken = %v", speaker.spoken)
	}
}

func TestSpeakEmptyThoughtIsError(t *testing.T) {
	thoughts := newMemThoughts()
	ctx := context.Background()
	path, _ := thoughts.Write(ctx, "blank", "   \n")
	svc := NewSpeakService(thoughts, newMemStore(), &stubSpeaker{})

	if err := svc.SpeakThought(ctx, path); err == nil {
		t.Error("expected error for empty thought")
	}
}
