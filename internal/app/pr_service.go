package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/example/mull/internal/models"
	"github.com/example/mull/internal/ports/secondary"
)

// PullRequestServiceImpl archives Bitbucket pull requests as markdown
// thoughts. The client handles Cloud/Server differences; this service only
// sees the normalized summary.
type PullRequestServiceImpl struct {
	client   secondary.PullRequestClient
	thoughts secondary.ThoughtStore
}

// NewPullRequestService creates a PullRequestService.
func NewPullRequestService(client secondary.PullRequestClient, thoughts secondary.ThoughtStore) *PullRequestServiceImpl {
	return &PullRequestServiceImpl{client: client, thoughts: thoughts}
}

// Archive fetches the pull request and writes a markdown archive thought.
func (s *PullRequestServiceImpl) Archive(ctx context.Context, url string) (string, error) {
	pr, err := s.client.Fetch(ctx, url)
	if err != nil {
		return "", fmt.Errorf("failed to fetch pull request: %w", err)
	}

	title := fmt.Sprintf("PR #%d %s", pr.ID, pr.Title)
	return s.thoughts.Write(ctx, title, renderPR(pr, url))
}

func renderPR(pr *models.PRSummary, url string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# PR #%d: %s\n\n", pr.ID, pr.Title)
	fmt.Fprintf(&b, "Source: %s\n", url)
	fmt.Fprintf(&b, "Author: %s\n", pr.Author)
	fmt.Fprintf(&b, "Branch: %s → %s\n", pr.SourceBranch, pr.TargetBranch)
	fmt.Fprintf(&b, "State: %s\n", pr.State)
	fmt.Fprintf(&b, "Created: %s\n", pr.CreatedAt.Format(time.RFC3339))
	if !pr.UpdatedAt.IsZero() {
		fmt.Fprintf(&b, "Updated: %s\n", pr.UpdatedAt.Format(time.RFC3339))
	}

	if desc := strings.TrimSpace(pr.Description); desc != "" {
		fmt.Fprintf(&b, "\n## Description\n\n%s\n", desc)
	}

	if len(pr.Comments) > 0 {
		fmt.Fprintf(&b, "\n## Comments (%d)\n", len(pr.Comments))
		for _, c := range pr.Comments {
			fmt.Fprintf(&b, "\n### %s", c.Author)
			if !c.CreatedAt.IsZero() {
				fmt.Fprintf(&b, " — %s", c.CreatedAt.Format("2006-01-02 15:04"))
			}
			b.WriteString("\n\n")
			if c.FilePath != "" {
				fmt.Fprintf(&b, "On `%s`:\n\n", c.FilePath)
			}
			fmt.Fprintf(&b, "%s\n", strings.TrimSpace(c.Text))
		}
	}
	return b.String()
}
