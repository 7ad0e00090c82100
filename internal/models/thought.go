package models

import "time"

// Thought is a markdown note in the thoughts directory.
type Thought struct {
	Path      string
	Title     string
	Body      string
	CreatedAt time.Time
}

// ThoughtSummary is a lightweight listing entry (no body loaded).
type ThoughtSummary struct {
	Path     string
	Title    string
	Modified time.Time
}
