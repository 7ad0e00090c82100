package todo

import (
	"strings"

	"github.com/example/mull/internal/models"
)

// Criteria are independently-optional search filters combined with AND.
// Nil pointer fields are "don't care".
type Criteria struct {
	// Text matches case-insensitively as a substring of title OR description.
	Text string

	// Tags matches items carrying at least one of the requested tags.
	Tags []string

	Completed *bool
	Priority  *models.Priority
	Urgency   *models.Urgency
}

// Matches reports whether an item satisfies every set criterion.
func (c Criteria) Matches(item *models.TodoItem) bool {
	if c.Text != "" {
		needle := strings.ToLower(c.Text)
		if !strings.Contains(strings.ToLower(item.Title), needle) &&
			!strings.Contains(strings.ToLower(item.Description), needle) {
			return false
		}
	}
	if len(c.Tags) > 0 && !hasAnyTag(item.Tags, c.Tags) {
		return false
	}
	if c.Completed != nil && item.Completed != *c.Completed {
		return false
	}
	if c.Priority != nil && item.Priority != *c.Priority {
		return false
	}
	if c.Urgency != nil && item.Urgency != *c.Urgency {
		return false
	}
	return true
}

// Filter returns the matching items flattened across all quadrants in stable
// traversal order (quadrant order, then sequence order).
func Filter(matrix *models.TodoMatrix, c Criteria) []*models.TodoItem {
	var out []*models.TodoItem
	for _, item := range matrix.All() {
		if c.Matches(item) {
			out = append(out, item)
		}
	}
	return out
}

func hasAnyTag(have, want []string) bool {
	for _, w := range want {
		for _, h := range have {
			if h == w {
				return true
			}
		}
	}
	return false
}
