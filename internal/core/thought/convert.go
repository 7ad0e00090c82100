// Package thought contains the pure text transformations between todo items
// and markdown note documents. Conversion note→todo is a best-effort
// extraction, not a lossless round-trip.
package thought

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/example/mull/internal/models"
)

var (
	headingRe  = regexp.MustCompile(`^#{1,6}\s+(.+)$`)
	metadataRe = regexp.MustCompile(`(?i)^\*{0,2}(priority|urgency|tags)\*{0,2}\s*:\s*(.+)$`)
	mdLinkRe   = regexp.MustCompile(`\[[^\]]*\]\(([^)\s]+)\)`)
	bareURLRe  = regexp.MustCompile(`https?://[^\s)\]>"']+`)
)

// RenderTodo renders a todo item as a note document: title heading, metadata
// block, description body, links section.
func RenderTodo(item *models.TodoItem) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", item.Title)
	fmt.Fprintf(&b, "Priority: %s\n", item.Priority)
	fmt.Fprintf(&b, "Urgency: %s\n", item.Urgency)
	if len(item.Tags) > 0 {
		fmt.Fprintf(&b, "Tags: %s\n", strings.Join(item.Tags, ", "))
	}
	fmt.Fprintf(&b, "Created: %s\n", item.CreatedAt.Format(time.RFC3339))
	if item.Description != "" {
		fmt.Fprintf(&b, "\n%s\n", item.Description)
	}
	if len(item.Links) > 0 {
		b.WriteString("\n## Links\n\n")
		for _, link := range item.Links {
			fmt.Fprintf(&b, "- %s\n", link)
		}
	}
	return b.String()
}

// ParsedTodo is the result of extracting todo fields from a note document.
type ParsedTodo struct {
	Title       string
	Description string
	Priority    models.Priority
	Urgency     models.Urgency
	Tags        []string
	Links       []string
}

// ParseTodo extracts todo fields from a note document. The first heading
// becomes the title (first non-empty line when the document has no heading).
// Metadata lines matching Priority:/Urgency:/Tags: are recognized
// case-insensitively and default to low/not-urgent/empty when absent. The
// description is the text between the metadata block and the next heading.
// Links are collected from the whole body.
func ParseTodo(document string) ParsedTodo {
	parsed := ParsedTodo{
		Priority: models.PriorityLow,
		Urgency:  models.UrgencyNotUrgent,
		Tags:     []string{},
	}

	lines := strings.Split(document, "\n")
	titleLine := -1
	for i, line := range lines {
		if m := headingRe.FindStringSubmatch(strings.TrimSpace(line)); m != nil {
			parsed.Title = strings.TrimSpace(m[1])
			titleLine = i
			break
		}
	}
	if titleLine == -1 {
		for i, line := range lines {
			if strings.TrimSpace(line) != "" {
				parsed.Title = strings.TrimSpace(line)
				titleLine = i
				break
			}
		}
	}

	var desc []string
	for i := titleLine + 1; i >= 1 && i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		if headingRe.MatchString(line) {
			break
		}
		if m := metadataRe.FindStringSubmatch(line); m != nil {
			value := strings.TrimSpace(m[2])
			switch strings.ToLower(m[1]) {
			case "priority":
				parsed.Priority = parsePriority(value)
			case "urgency":
				parsed.Urgency = parseUrgency(value)
			case "tags":
				parsed.Tags = splitTags(value)
			}
			continue
		}
		if strings.HasPrefix(strings.ToLower(line), "created:") {
			continue
		}
		desc = append(desc, line)
	}
	parsed.Description = strings.TrimSpace(strings.Join(desc, "\n"))
	parsed.Links = ExtractLinks(document)
	return parsed
}

// ExtractLinks collects markdown link targets and bare URLs from text, in
// order of appearance, deduplicated.
func ExtractLinks(text string) []string {
	var links []string
	seen := map[string]bool{}
	add := func(url string) {
		url = strings.TrimRight(url, ".,;")
		if url != "" && !seen[url] {
			seen[url] = true
			links = append(links, url)
		}
	}
	// Markdown links first so their targets are not double-counted by the
	// bare-URL scan.
	stripped := mdLinkRe.ReplaceAllStringFunc(text, func(match string) string {
		m := mdLinkRe.FindStringSubmatch(match)
		add(m[1])
		return ""
	})
	for _, url := range bareURLRe.FindAllString(stripped, -1) {
		add(url)
	}
	return links
}

func parsePriority(value string) models.Priority {
	if strings.EqualFold(strings.TrimSpace(value), "high") {
		return models.PriorityHigh
	}
	return models.PriorityLow
}

func parseUrgency(value string) models.Urgency {
	v := strings.ToLower(strings.TrimSpace(value))
	if strings.Contains(v, "not") {
		return models.UrgencyNotUrgent
	}
	if strings.Contains(v, "urgent") {
		return models.UrgencyUrgent
	}
	return models.UrgencyNotUrgent
}

func splitTags(value string) []string {
	var tags []string
	for _, part := range strings.Split(value, ",") {
		tag := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(part), "#"))
		if tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}
