package todo

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/example/mull/internal/models"
)

// quadrantLetters maps display letters to quadrants in the fixed A..D order.
var quadrantLetters = map[byte]models.Quadrant{
	'A': models.QuadrantImportantUrgent,
	'B': models.QuadrantImportantNotUrgent,
	'C': models.QuadrantNotImportantUrgent,
	'D': models.QuadrantNotImportantNotUrgent,
}

// letterOf returns the display letter for a quadrant.
func letterOf(q models.Quadrant) byte {
	switch q {
	case models.QuadrantImportantUrgent:
		return 'A'
	case models.QuadrantImportantNotUrgent:
		return 'B'
	case models.QuadrantNotImportantUrgent:
		return 'C'
	default:
		return 'D'
	}
}

// GenerateDisplayID computes the positional display id for an item:
// quadrant letter plus 1-based index within the quadrant's sequence.
// Display ids are NOT stable: any add/delete/reclassify that shifts
// positions changes them, so they must be re-resolved immediately before
// every mutation.
//
// If the item is missing from its expected quadrant (a matrix
// inconsistency), the first 8 characters of the stable id are returned so
// the caller still has something printable.
func GenerateDisplayID(matrix *models.TodoMatrix, item *models.TodoItem) string {
	q := item.Quadrant()
	for i, candidate := range matrix.Sequence(q) {
		if candidate.ID == item.ID {
			return fmt.Sprintf("%c%d", letterOf(q), i+1)
		}
	}
	return TruncateID(item.ID)
}

// TruncateID shortens a stable id for display.
func TruncateID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// IsDisplayID reports whether s is shaped like a display id (a quadrant
// letter followed by digits). It says nothing about whether the position
// currently exists.
func IsDisplayID(s string) bool {
	if len(s) < 2 {
		return false
	}
	letter := s[0] &^ 0x20 // uppercase ASCII
	if _, ok := quadrantLetters[letter]; !ok {
		return false
	}
	for i := 1; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// ResolveDisplayID parses a display id (case-insensitive) and returns the
// stable id of the item currently at that position. Returns ErrNotFound when
// the letter is unrecognized, the index is non-positive, or the index
// exceeds the quadrant's current length.
func ResolveDisplayID(matrix *models.TodoMatrix, displayID string) (string, error) {
	s := strings.TrimSpace(displayID)
	if len(s) < 2 {
		return "", fmt.Errorf("%w: invalid display id %q", ErrNotFound, displayID)
	}
	q, ok := quadrantLetters[s[0]&^0x20]
	if !ok {
		return "", fmt.Errorf("%w: unknown quadrant letter in %q", ErrNotFound, displayID)
	}
	pos, err := strconv.Atoi(s[1:])
	if err != nil || pos < 1 {
		return "", fmt.Errorf("%w: invalid position in %q", ErrNotFound, displayID)
	}
	seq := matrix.Sequence(q)
	if pos > len(seq) {
		return "", fmt.Errorf("%w: %q is out of range (quadrant has %d items)", ErrNotFound, displayID, len(seq))
	}
	return seq[pos-1].ID, nil
}
