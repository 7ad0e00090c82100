package thought

import (
	"regexp"
	"strings"
)

var (
	fenceRe       = regexp.MustCompile("(?s)```.*?```")
	inlineCodeRe  = regexp.MustCompile("`([^`]*)`")
	speakLinkRe   = regexp.MustCompile(`\[([^\]]*)\]\([^)]*\)`)
	emphasisRe    = regexp.MustCompile(`(\*\*|__|\*|_)([^*_]+)(\*\*|__|\*|_)`)
	headingMarkRe = regexp.MustCompile(`(?m)^#{1,6}\s*`)
	bulletRe      = regexp.MustCompile(`(?m)^\s*([-*+]|\d+\.)\s+`)
	blankRunRe    = regexp.MustCompile(`\n{3,}`)
)

// Speakable strips markdown syntax down to text suitable for a TTS engine:
// code fences are dropped entirely, link targets are dropped (text kept),
// heading markers, emphasis and list bullets are removed, and blank-line
// runs are collapsed.
func Speakable(markdown string) string {
	text := fenceRe.ReplaceAllString(markdown, "")
	text = inlineCodeRe.ReplaceAllString(text, "$1")
	text = speakLinkRe.ReplaceAllString(text, "$1")
	text = emphasisRe.ReplaceAllString(text, "$2")
	text = headingMarkRe.ReplaceAllString(text, "")
	text = bulletRe.ReplaceAllString(text, "")
	text = blankRunRe.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}
