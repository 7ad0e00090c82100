// Package tui renders the todo matrix as an interactive 2x2 quadrant grid.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	todocore "github.com/example/mull/internal/core/todo"
	"github.com/example/mull/internal/models"
	"github.com/example/mull/internal/ports/primary"
)

type mode int

const (
	modeList mode = iota
	modeAdd
	modeEdit
	modeFilter
	modeConfirmDelete
)

var (
	paneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
	activePaneStyle = paneStyle.
			BorderForeground(lipgloss.Color("63"))
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("63"))
	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212"))
	doneStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Strikethrough(true)
	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244"))
)

var quadrantTitles = map[models.Quadrant]string{
	models.QuadrantImportantUrgent:       "A · Do first",
	models.QuadrantImportantNotUrgent:    "B · Schedule",
	models.QuadrantNotImportantUrgent:    "C · Delegate",
	models.QuadrantNotImportantNotUrgent: "D · Drop",
}

// Model is the bubbletea model for the matrix view.
type Model struct {
	todos    primary.TodoService
	grouped  map[models.Quadrant][]primary.TodoEntry
	pane     int // index into models.Quadrants
	cursor   int // row within the active pane
	mode     mode
	input    textinput.Model
	status   string
	width    int
	filter   string
	pendAdd  models.Quadrant
	pendDel  *primary.TodoEntry
	pendEdit *primary.TodoEntry
}

// Run starts the interactive matrix UI.
func Run(todos primary.TodoService) error {
	ti := textinput.New()
	ti.Placeholder = "Todo title"
	ti.CharLimit = 256
	ti.Width = 40

	m := Model{
		todos:  todos,
		input:  ti,
		status: "hjkl/arrows move · space toggle · a add · e edit · d delete · / filter · q quit",
		width:  100,
	}
	if err := m.reload(); err != nil {
		return err
	}

	program := tea.NewProgram(m, tea.WithAltScreen())
	_, err := program.Run()
	return err
}

func (m *Model) reload() error {
	entries, err := m.todos.List(context.Background(), todocore.Criteria{Text: m.filter})
	if err != nil {
		return err
	}
	grouped := map[models.Quadrant][]primary.TodoEntry{}
	for _, entry := range entries {
		q := entry.Item.Quadrant()
		grouped[q] = append(grouped[q], entry)
	}
	m.grouped = grouped
	m.clampCursor()
	return nil
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch m.mode {
		case modeAdd:
			return m.updateAddMode(msg)
		case modeEdit:
			return m.updateEditMode(msg)
		case modeFilter:
			return m.updateFilterMode(msg)
		case modeConfirmDelete:
			return m.updateDeleteConfirm(msg.String())
		default:
			return m.updateListMode(msg.String())
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
	}
	return m, nil
}

func (m Model) updateListMode(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "down", "j":
		if m.cursor < len(m.activePane())-1 {
			m.cursor++
		}
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "right", "l", "tab":
		m.pane = (m.pane + 1) % len(models.Quadrants)
		m.clampCursor()
	case "left", "h", "shift+tab":
		m.pane = (m.pane + len(models.Quadrants) - 1) % len(models.Quadrants)
		m.clampCursor()
	case "a":
		m.mode = modeAdd
		m.pendAdd = m.activeQuadrant()
		m.input.SetValue("")
		m.input.Focus()
		m.status = fmt.Sprintf("Add to %s: type a title and press Enter", quadrantTitles[m.pendAdd])
	case " ":
		entry := m.selected()
		if entry == nil {
			return m, nil
		}
		if _, err := m.todos.Toggle(context.Background(), entry.Item.ID); err != nil {
			m.status = fmt.Sprintf("toggle failed: %v", err)
			return m, nil
		}
		m.status = "Toggled"
		m.mustReload()
	case "d":
		entry := m.selected()
		if entry == nil {
			return m, nil
		}
		m.mode = modeConfirmDelete
		m.pendDel = entry
		m.status = fmt.Sprintf("Delete %q? y/n", entry.Item.Title)
	case "e":
		entry := m.selected()
		if entry == nil {
			return m, nil
		}
		m.mode = modeEdit
		m.pendEdit = entry
		m.input.SetValue(entry.Item.Title)
		m.input.Focus()
		m.status = "Edit title: Enter to save, Esc to cancel"
	case "/":
		m.mode = modeFilter
		m.input.SetValue(m.filter)
		m.input.Focus()
		m.status = "Filter: Enter to apply, Esc to clear"
	}
	return m, nil
}

func (m Model) updateEditMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeList
		m.pendEdit = nil
		m.input.Blur()
		m.status = "Cancelled"
		return m, nil
	case "enter":
		title := strings.TrimSpace(m.input.Value())
		if title == "" {
			m.status = "Title cannot be empty"
			return m, nil
		}
		if m.pendEdit != nil {
			if _, err := m.todos.Update(context.Background(), m.pendEdit.Item.ID, primary.TodoPatch{Title: &title}); err != nil {
				m.status = fmt.Sprintf("save failed: %v", err)
				return m, nil
			}
			m.status = "Saved"
			m.mustReload()
		}
		m.mode = modeList
		m.pendEdit = nil
		m.input.Blur()
		return m, nil
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

func (m Model) updateFilterMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.filter = ""
		m.mode = modeList
		m.input.Blur()
		m.status = "Filter cleared"
		m.mustReload()
		return m, nil
	case "enter":
		m.filter = strings.TrimSpace(m.input.Value())
		m.mode = modeList
		m.input.Blur()
		if m.filter == "" {
			m.status = "Filter cleared"
		} else {
			m.status = fmt.Sprintf("Filtering on %q", m.filter)
		}
		m.mustReload()
		return m, nil
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

func (m Model) updateAddMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeList
		m.input.Blur()
		m.status = "Cancelled"
		return m, nil
	case "enter":
		title := strings.TrimSpace(m.input.Value())
		if title == "" {
			m.status = "Title cannot be empty"
			return m, nil
		}
		priority, urgency := quadrantFields(m.pendAdd)
		if _, err := m.todos.Create(context.Background(), primary.CreateTodoRequest{
			Title:    title,
			Priority: priority,
			Urgency:  urgency,
		}); err != nil {
			m.status = fmt.Sprintf("save failed: %v", err)
			return m, nil
		}
		m.input.Blur()
		m.mode = modeList
		m.status = "Added todo"
		m.mustReload()
		m.cursor = len(m.activePane()) - 1
		return m, nil
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

func (m Model) updateDeleteConfirm(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "y", "Y":
		if m.pendDel != nil {
			if err := m.todos.Delete(context.Background(), m.pendDel.Item.ID); err != nil {
				m.status = fmt.Sprintf("delete failed: %v", err)
			} else {
				m.status = "Deleted"
				m.mustReload()
			}
		}
		m.mode = modeList
		m.pendDel = nil
		return m, nil
	case "n", "N", "esc":
		m.mode = modeList
		m.pendDel = nil
		m.status = "Delete cancelled"
		return m, nil
	default:
		return m, nil
	}
}

func (m Model) View() string {
	paneWidth := m.width/2 - 4
	if paneWidth < 20 {
		paneWidth = 20
	}

	panes := make([]string, len(models.Quadrants))
	for i, q := range models.Quadrants {
		panes[i] = m.renderPane(i, q, paneWidth)
	}

	top := lipgloss.JoinHorizontal(lipgloss.Top, panes[0], panes[1])
	bottom := lipgloss.JoinHorizontal(lipgloss.Top, panes[2], panes[3])
	grid := lipgloss.JoinVertical(lipgloss.Left, top, bottom)

	var b strings.Builder
	b.WriteString(grid)
	b.WriteString("\n")
	if m.mode == modeAdd || m.mode == modeEdit || m.mode == modeFilter {
		b.WriteString(m.input.View())
		b.WriteString("\n")
	}
	if m.filter != "" && m.mode == modeList {
		b.WriteString(statusStyle.Render(fmt.Sprintf("filter: %s · ", m.filter)))
	}
	b.WriteString(statusStyle.Render(m.status))
	return b.String()
}

func (m Model) renderPane(index int, q models.Quadrant, width int) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(quadrantTitles[q]))
	b.WriteString("\n")

	entries := m.grouped[q]
	if len(entries) == 0 {
		b.WriteString(statusStyle.Render("(empty)"))
	}
	for row, entry := range entries {
		cursor := " "
		if index == m.pane && row == m.cursor && m.mode == modeList {
			cursor = ">"
		}
		checkbox := "[ ]"
		if entry.Item.Completed {
			checkbox = "[x]"
		}
		line := fmt.Sprintf("%s %s %s %s", cursor, entry.DisplayID, checkbox, entry.Item.Title)
		switch {
		case entry.Item.Completed:
			line = doneStyle.Render(line)
		case index == m.pane && row == m.cursor:
			line = selectedStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	style := paneStyle
	if index == m.pane {
		style = activePaneStyle
	}
	return style.Width(width).Render(strings.TrimRight(b.String(), "\n"))
}

func (m Model) activeQuadrant() models.Quadrant {
	return models.Quadrants[m.pane]
}

func (m Model) activePane() []primary.TodoEntry {
	return m.grouped[m.activeQuadrant()]
}

func (m Model) selected() *primary.TodoEntry {
	entries := m.activePane()
	if m.cursor < 0 || m.cursor >= len(entries) {
		return nil
	}
	return &entries[m.cursor]
}

func (m *Model) clampCursor() {
	n := len(m.activePane())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) mustReload() {
	if err := m.reload(); err != nil {
		m.status = fmt.Sprintf("reload failed: %v", err)
	}
}

// quadrantFields inverts the quadrant mapping for items created from a pane.
func quadrantFields(q models.Quadrant) (models.Priority, models.Urgency) {
	switch q {
	case models.QuadrantImportantUrgent:
		return models.PriorityHigh, models.UrgencyUrgent
	case models.QuadrantImportantNotUrgent:
		return models.PriorityHigh, models.UrgencyNotUrgent
	case models.QuadrantNotImportantUrgent:
		return models.PriorityLow, models.UrgencyUrgent
	default:
		return models.PriorityLow, models.UrgencyNotUrgent
	}
}
