package models

import "time"

// PRHost distinguishes the two Bitbucket API families. Cloud and Server
// return structurally different payloads; both are normalized into PRSummary
// at the adapter boundary so nothing downstream probes optional fields.
type PRHost string

const (
	PRHostCloud  PRHost = "cloud"
	PRHostServer PRHost = "server"
)

// PRComment is a single normalized review comment.
type PRComment struct {
	Author    string
	Text      string
	FilePath  string // empty for top-level comments
	CreatedAt time.Time
}

// PRSummary is the single internal pull-request shape used for rendering
// archives, regardless of which API family produced it.
type PRSummary struct {
	Host         PRHost
	ID           int
	Title        string
	Description  string
	Author       string
	SourceBranch string
	TargetBranch string
	State        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	Comments     []PRComment
}
