package bitbucket

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/example/mull/internal/models"
)

const cloudPR = `{
	"id": 42,
	"title": "Add retry logic",
	"description": "Retries transient failures.",
	"state": "OPEN",
	"author": {"display_name": "Ada"},
	"source": {"branch": {"name": "feature/retry"}},
	"destination": {"branch": {"name": "main"}},
	"created_on": "2026-02-01T10:00:00+00:00",
	"updated_on": "2026-02-02T11:30:00+00:00"
}`

const cloudCommentsBody = `{
	"values": [
		{
			"user": {"display_name": "Grace"},
			"content": {"raw": "Looks good"},
			"inline": {"path": "pkg/retry/retry.go"},
			"created_on": "2026-02-01T12:00:00+00:00"
		},
		{
			"user": {"display_name": "Ada"},
			"content": {"raw": "Thanks!"},
			"created_on": "2026-02-01T13:00:00+00:00"
		}
	]
}`

const serverPR = `{
	"id": 7,
	"title": "Fix encoding",
	"description": "Handles UTF-8 names.",
	"state": "MERGED",
	"author": {"user": {"displayName": "Linus"}},
	"fromRef": {"displayId": "bugfix/encoding"},
	"toRef": {"displayId": "develop"},
	"createdDate": 1767225600000,
	"updatedDate": 1767312000000
}`

const serverActivitiesBody = `{
	"values": [
		{
			"action": "COMMENTED",
			"comment": {
				"text": "Needs a test",
				"author": {"displayName": "Margaret"},
				"createdDate": 1767240000000
			},
			"commentAnchor": {"path": "encoder.go"}
		},
		{"action": "MERGED"}
	]
}`

func TestFetchCloudNormalizes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasSuffix(r.URL.Path, "/comments"):
			w.Write([]byte(cloudCommentsBody))
		case strings.Contains(r.URL.Path, "/pullrequests/42"):
			w.Write([]byte(cloudPR))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	client := New(srv.Client())
	client.apiBase = srv.URL

	summary, err := client.Fetch(context.Background(), "https://bitbucket.org/acme/widgets/pull-requests/42")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if summary.Host != models.PRHostCloud {
		t.Errorf("Host = %q, want cloud", summary.Host)
	}
	if summary.ID != 42 || summary.Title != "Add retry logic" || summary.Author != "Ada" {
		t.Errorf("summary = %+v", summary)
	}
	if summary.SourceBranch != "feature/retry" || summary.TargetBranch != "main" {
		t.Errorf("branches = %q -> %q", summary.SourceBranch, summary.TargetBranch)
	}
	if len(summary.Comments) != 2 {
		t.Fatalf("comments = %d, want 2", len(summary.Comments))
	}
	if summary.Comments[0].Author != "Grace" || summary.Comments[0].FilePath != "pkg/retry/retry.go" {
		t.Errorf("first comment = %+v", summary.Comments[0])
	}
	if summary.Comments[1].FilePath != "" {
		t.Errorf("top-level comment should have empty path, got %q", summary.Comments[1].FilePath)
	}
}

func TestFetchServerNormalizes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.Contains(r.URL.Path, "/activities"):
			w.Write([]byte(serverActivitiesBody))
		case strings.Contains(r.URL.Path, "/pull-requests/7"):
			w.Write([]byte(serverPR))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	client := New(srv.Client())
	client.apiBase = srv.URL

	summary, err := client.Fetch(context.Background(), srv.URL+"/projects/CORE/repos/encoder/pull-requests/7")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if summary.Host != models.PRHostServer {
		t.Errorf("Host = %q, want server", summary.Host)
	}
	if summary.Author != "Linus" {
		t.Errorf("Author = %q", summary.Author)
	}
	if summary.SourceBranch != "bugfix/encoding" || summary.TargetBranch != "develop" {
		t.Errorf("branches = %q -> %q", summary.SourceBranch, summary.TargetBranch)
	}
	if summary.CreatedAt.Year() != 2026 {
		t.Errorf("CreatedAt = %v, want converted from epoch millis", summary.CreatedAt)
	}
	// Only COMMENTED activities become comments.
	if len(summary.Comments) != 1 {
		t.Fatalf("comments = %d, want 1", len(summary.Comments))
	}
	if summary.Comments[0].Author != "Margaret" || summary.Comments[0].FilePath != "encoder.go" {
		t.Errorf("comment = %+v", summary.Comments[0])
	}
}

func TestFetchRejectsUnknownURL(t *testing.T) {
	client := New(nil)
	if _, err := client.Fetch(context.Background(), "https://github.com/acme/widgets/pull/1"); err == nil {
		t.Error("expected an error for a non-bitbucket url")
	}
}
