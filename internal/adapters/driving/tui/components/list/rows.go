// Package list provides list display components for the TUI.
package list

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/jyotish/internal/adapters/driving/tui/styles"
)

// Rows displays pre-rendered lines in a navigable, scrolling list.
type Rows struct {
	rows     []string
	selected int
	styles   *styles.Styles
	height   int
	empty    string
}

// NewRows creates a new list showing empty when it has no rows.
func NewRows(s *styles.Styles, empty string) *Rows {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &Rows{
		styles: s,
		height: 10,
		empty:  empty,
	}
}

// Update handles list navigation messages.
func (r *Rows) Update(msg tea.Msg) (*Rows, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			r.MoveUp()
		case "down", "j":
			r.MoveDown()
		case "home", "g":
			r.selected = 0
		case "end", "G":
			if len(r.rows) > 0 {
				r.selected = len(r.rows) - 1
			}
		}
	}
	return r, nil
}

// View renders the visible window of rows.
func (r *Rows) View() string {
	if len(r.rows) == 0 {
		return r.styles.Muted.Render(r.empty)
	}

	start, end := r.window()
	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		if i == r.selected {
			lines = append(lines, r.styles.Selected.Render("> "+r.rows[i]))
			continue
		}
		lines = append(lines, "  "+r.rows[i])
	}
	return strings.Join(lines, "\n")
}

// window returns the visible row range keeping the selection in view.
func (r *Rows) window() (int, int) {
	visible := r.height
	if visible < 1 {
		visible = 1
	}
	start := 0
	if r.selected >= visible {
		start = r.selected - visible + 1
	}
	end := start + visible
	if end > len(r.rows) {
		end = len(r.rows)
	}
	return start, end
}

// SetRows replaces the rows, keeping the selection in range.
func (r *Rows) SetRows(rows []string) {
	r.rows = rows
	if r.selected >= len(rows) {
		r.selected = len(rows) - 1
	}
	if r.selected < 0 {
		r.selected = 0
	}
}

// Selected returns the index of the selected row.
func (r *Rows) Selected() int {
	return r.selected
}

// SetSelected sets the selected index.
func (r *Rows) SetSelected(index int) {
	if index >= 0 && index < len(r.rows) {
		r.selected = index
	}
}

// MoveUp moves selection up.
func (r *Rows) MoveUp() {
	if r.selected > 0 {
		r.selected--
	}
}

// MoveDown moves selection down.
func (r *Rows) MoveDown() {
	if r.selected < len(r.rows)-1 {
		r.selected++
	}
}

// SetHeight sets the number of visible rows.
func (r *Rows) SetHeight(height int) {
	r.height = height
}

// Count returns the number of rows.
func (r *Rows) Count() int {
	return len(r.rows)
}
