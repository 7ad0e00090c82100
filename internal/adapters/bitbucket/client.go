// Package bitbucket fetches pull requests from Bitbucket Cloud and Bitbucket
// Server. The two API families return structurally different payloads; each
// is decoded into its own typed shape and normalized into models.PRSummary
// at this boundary, so nothing downstream probes optional fields.
package bitbucket

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"regexp"
	"strconv"
	"time"

	"github.com/example/mull/internal/models"
)

var (
	cloudPathRe  = regexp.MustCompile(`^/([^/]+)/([^/]+)/pull-requests/(\d+)`)
	serverPathRe = regexp.MustCompile(`^/projects/([^/]+)/repos/([^/]+)/pull-requests/(\d+)`)
)

// Client implements secondary.PullRequestClient.
type Client struct {
	httpClient *http.Client
	token      string
	// apiBase overrides the derived API host, for tests.
	apiBase string
}

// New returns a client. The bearer token is read from MULL_BITBUCKET_TOKEN;
// unauthenticated requests still work for public repositories.
func New(httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{
		httpClient: httpClient,
		token:      os.Getenv("MULL_BITBUCKET_TOKEN"),
	}
}

// Fetch detects the API family from the URL shape, retrieves the pull
// request and its comments, and returns the normalized summary.
func (c *Client) Fetch(ctx context.Context, prURL string) (*models.PRSummary, error) {
	u, err := url.Parse(prURL)
	if err != nil {
		return nil, fmt.Errorf("invalid pull request url: %w", err)
	}

	if m := serverPathRe.FindStringSubmatch(u.Path); m != nil {
		return c.fetchServer(ctx, u, m[1], m[2], m[3])
	}
	if m := cloudPathRe.FindStringSubmatch(u.Path); m != nil && u.Host == "bitbucket.org" {
		return c.fetchCloud(ctx, m[1], m[2], m[3])
	}
	return nil, fmt.Errorf("unrecognized bitbucket pull request url: %s", prURL)
}

func (c *Client) get(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("unexpected status %d from %s: %s", resp.StatusCode, endpoint, body)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// ─── Cloud ───────────────────────────────────────────────────────────────

// cloudPullRequest is the Bitbucket Cloud (2.0 API) payload shape.
type cloudPullRequest struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	State       string `json:"state"`
	Author      struct {
		DisplayName string `json:"display_name"`
	} `json:"author"`
	Source struct {
		Branch struct {
			Name string `json:"name"`
		} `json:"branch"`
	} `json:"source"`
	Destination struct {
		Branch struct {
			Name string `json:"name"`
		} `json:"branch"`
	} `json:"destination"`
	CreatedOn time.Time `json:"created_on"`
	UpdatedOn time.Time `json:"updated_on"`
}

type cloudComments struct {
	Values []struct {
		User struct {
			DisplayName string `json:"display_name"`
		} `json:"user"`
		Content struct {
			Raw string `json:"raw"`
		} `json:"content"`
		Inline struct {
			Path string `json:"path"`
		} `json:"inline"`
		CreatedOn time.Time `json:"created_on"`
	} `json:"values"`
}

func (pr *cloudPullRequest) normalize(comments *cloudComments) *models.PRSummary {
	summary := &models.PRSummary{
		Host:         models.PRHostCloud,
		ID:           pr.ID,
		Title:        pr.Title,
		Description:  pr.Description,
		Author:       pr.Author.DisplayName,
		SourceBranch: pr.Source.Branch.Name,
		TargetBranch: pr.Destination.Branch.Name,
		State:        pr.State,
		CreatedAt:    pr.CreatedOn,
		UpdatedAt:    pr.UpdatedOn,
	}
	for _, c := range comments.Values {
		summary.Comments = append(summary.Comments, models.PRComment{
			Author:    c.User.DisplayName,
			Text:      c.Content.Raw,
			FilePath:  c.Inline.Path,
			CreatedAt: c.CreatedOn,
		})
	}
	return summary
}

func (c *Client) fetchCloud(ctx context.Context, workspace, repo, id string) (*models.PRSummary, error) {
	base := c.apiBase
	if base == "" {
		base = "https://api.bitbucket.org"
	}
	prEndpoint := fmt.Sprintf("%s/2.0/repositories/%s/%s/pullrequests/%s", base, workspace, repo, id)

	var pr cloudPullRequest
	if err := c.get(ctx, prEndpoint, &pr); err != nil {
		return nil, fmt.Errorf("failed to fetch cloud pull request: %w", err)
	}
	var comments cloudComments
	if err := c.get(ctx, prEndpoint+"/comments", &comments); err != nil {
		return nil, fmt.Errorf("failed to fetch cloud comments: %w", err)
	}
	return pr.normalize(&comments), nil
}

// ─── Server ──────────────────────────────────────────────────────────────

// serverPullRequest is the Bitbucket Server (1.0 REST API) payload shape.
// Timestamps are epoch milliseconds, author nesting differs, and branch refs
// use displayId.
type serverPullRequest struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	State       string `json:"state"`
	Author      struct {
		User struct {
			DisplayName string `json:"displayName"`
		} `json:"user"`
	} `json:"author"`
	FromRef struct {
		DisplayID string `json:"displayId"`
	} `json:"fromRef"`
	ToRef struct {
		DisplayID string `json:"displayId"`
	} `json:"toRef"`
	CreatedDate int64 `json:"createdDate"`
	UpdatedDate int64 `json:"updatedDate"`
}

type serverActivities struct {
	Values []struct {
		Action  string `json:"action"`
		Comment struct {
			Text   string `json:"text"`
			Author struct {
				DisplayName string `json:"displayName"`
			} `json:"author"`
			CreatedDate int64 `json:"createdDate"`
		} `json:"comment"`
		CommentAnchor struct {
			Path string `json:"path"`
		} `json:"commentAnchor"`
	} `json:"values"`
}

func (pr *serverPullRequest) normalize(activities *serverActivities) *models.PRSummary {
	summary := &models.PRSummary{
		Host:         models.PRHostServer,
		ID:           pr.ID,
		Title:        pr.Title,
		Description:  pr.Description,
		Author:       pr.Author.User.DisplayName,
		SourceBranch: pr.FromRef.DisplayID,
		TargetBranch: pr.ToRef.DisplayID,
		State:        pr.State,
		CreatedAt:    time.UnixMilli(pr.CreatedDate).UTC(),
		UpdatedAt:    time.UnixMilli(pr.UpdatedDate).UTC(),
	}
	for _, a := range activities.Values {
		if a.Action != "COMMENTED" {
			continue
		}
		summary.Comments = append(summary.Comments, models.PRComment{
			Author:    a.Comment.Author.DisplayName,
			Text:      a.Comment.Text,
			FilePath:  a.CommentAnchor.Path,
			CreatedAt: time.UnixMilli(a.Comment.CreatedDate).UTC(),
		})
	}
	return summary
}

func (c *Client) fetchServer(ctx context.Context, u *url.URL, project, repo, id string) (*models.PRSummary, error) {
	base := c.apiBase
	if base == "" {
		base = u.Scheme + "://" + u.Host
	}
	prEndpoint := fmt.Sprintf("%s/rest/api/1.0/projects/%s/repos/%s/pull-requests/%s", base, project, repo, id)

	var pr serverPullRequest
	if err := c.get(ctx, prEndpoint, &pr); err != nil {
		return nil, fmt.Errorf("failed to fetch server pull request: %w", err)
	}
	var activities serverActivities
	if err := c.get(ctx, prEndpoint+"/activities?limit=100", &activities); err != nil {
		return nil, fmt.Errorf("failed to fetch server activities: %w", err)
	}
	if pr.ID == 0 {
		if n, err := strconv.Atoi(id); err == nil {
			pr.ID = n
		}
	}
	return pr.normalize(&activities), nil
}
