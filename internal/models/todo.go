// Package models contains domain types for mull entities.
// Persistence lives in internal/adapters; business rules in internal/core.
package models

import "time"

// Priority of a todo item.
type Priority string

// Urgency of a todo item.
type Urgency string

const (
	PriorityHigh Priority = "high"
	PriorityLow  Priority = "low"

	UrgencyUrgent    Urgency = "urgent"
	UrgencyNotUrgent Urgency = "not-urgent"
)

// Quadrant is one of the four fixed Eisenhower buckets. The value doubles as
// the JSON key of the quadrant's sequence in the persisted matrix document.
type Quadrant string

const (
	QuadrantImportantUrgent       Quadrant = "important_urgent"
	QuadrantImportantNotUrgent    Quadrant = "important_not_urgent"
	QuadrantNotImportantUrgent    Quadrant = "not_important_urgent"
	QuadrantNotImportantNotUrgent Quadrant = "not_important_not_urgent"
)

// Quadrants lists the four quadrants in display order (A, B, C, D).
var Quadrants = []Quadrant{
	QuadrantImportantUrgent,
	QuadrantImportantNotUrgent,
	QuadrantNotImportantUrgent,
	QuadrantNotImportantNotUrgent,
}

// QuadrantOf computes the quadrant for a (priority, urgency) pair.
func QuadrantOf(p Priority, u Urgency) Quadrant {
	if p == PriorityHigh {
		if u == UrgencyUrgent {
			return QuadrantImportantUrgent
		}
		return QuadrantImportantNotUrgent
	}
	if u == UrgencyUrgent {
		return QuadrantNotImportantUrgent
	}
	return QuadrantNotImportantNotUrgent
}

// TodoItem is a single task. ID is assigned at creation and never reused.
type TodoItem struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Priority    Priority       `json:"priority"`
	Urgency     Urgency        `json:"urgency"`
	Completed   bool           `json:"completed"`
	CreatedAt   time.Time      `json:"createdAt"`
	CompletedAt *time.Time     `json:"completedAt"` // null while not completed
	Tags        []string       `json:"tags"`
	Links       []string       `json:"links"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}

// Quadrant returns the quadrant computed from the item's own fields.
func (t *TodoItem) Quadrant() Quadrant {
	return QuadrantOf(t.Priority, t.Urgency)
}

// MatrixStats are derived counts, recomputed on every save.
type MatrixStats struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
	Active    int `json:"active"`
}

// TodoMatrix is the aggregate root: four ordered sequences plus derived
// stats. Invariant: every item lives in exactly the sequence matching
// QuadrantOf(item.Priority, item.Urgency), and ids are unique across all
// four sequences.
type TodoMatrix struct {
	ImportantUrgent       []*TodoItem `json:"important_urgent"`
	ImportantNotUrgent    []*TodoItem `json:"important_not_urgent"`
	NotImportantUrgent    []*TodoItem `json:"not_important_urgent"`
	NotImportantNotUrgent []*TodoItem `json:"not_important_not_urgent"`
	Stats                 MatrixStats `json:"stats"`
	LastUpdated           time.Time   `json:"lastUpdated"`
}

// NewTodoMatrix returns an empty matrix with four non-nil sequences so the
// persisted document always serializes them as arrays, never null.
func NewTodoMatrix() *TodoMatrix {
	return &TodoMatrix{
		ImportantUrgent:       []*TodoItem{},
		ImportantNotUrgent:    []*TodoItem{},
		NotImportantUrgent:    []*TodoItem{},
		NotImportantNotUrgent: []*TodoItem{},
	}
}

// Sequence returns the slice for a quadrant.
func (m *TodoMatrix) Sequence(q Quadrant) []*TodoItem {
	switch q {
	case QuadrantImportantUrgent:
		return m.ImportantUrgent
	case QuadrantImportantNotUrgent:
		return m.ImportantNotUrgent
	case QuadrantNotImportantUrgent:
		return m.NotImportantUrgent
	default:
		return m.NotImportantNotUrgent
	}
}

// SetSequence replaces the slice for a quadrant.
func (m *TodoMatrix) SetSequence(q Quadrant, items []*TodoItem) {
	switch q {
	case QuadrantImportantUrgent:
		m.ImportantUrgent = items
	case QuadrantImportantNotUrgent:
		m.ImportantNotUrgent = items
	case QuadrantNotImportantUrgent:
		m.NotImportantUrgent = items
	default:
		m.NotImportantNotUrgent = items
	}
}

// All returns every item in stable traversal order: quadrant order, then
// sequence order within each quadrant.
func (m *TodoMatrix) All() []*TodoItem {
	var items []*TodoItem
	for _, q := range Quadrants {
		items = append(items, m.Sequence(q)...)
	}
	return items
}

// Find locates an item by stable id across all four sequences. Returns the
// containing quadrant and the item's index, or (nil, "", -1) if absent.
func (m *TodoMatrix) Find(id string) (*TodoItem, Quadrant, int) {
	for _, q := range Quadrants {
		for i, item := range m.Sequence(q) {
			if item.ID == id {
				return item, q, i
			}
		}
	}
	return nil, "", -1
}

// RecomputeStats rederives the stats from the sequences. Loaded stats are
// never trusted; this runs on every save.
func (m *TodoMatrix) RecomputeStats() {
	s := MatrixStats{}
	for _, item := range m.All() {
		s.Total++
		if item.Completed {
			s.Completed++
		}
	}
	s.Active = s.Total - s.Completed
	m.Stats = s
}
