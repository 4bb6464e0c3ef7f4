// Package dasha provides the dasha period tree view for the TUI.
package dasha

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/jyotish/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/jyotish/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/jyotish/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/jyotish/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/jyotish/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/jyotish/internal/core/domain"
)

// node is one visible period. path holds the child indices from the root.
type node struct {
	period domain.DashaPeriod
	path   string
}

// View browses the period tree of the last computed chart.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	rows      *list.Rows
	statusbar *status.Bar

	tree     *domain.DashaTree
	at       domain.JulianDay
	loc      *time.Location
	expanded map[string]bool
	nodes    []node

	width  int
	height int
	ready  bool
}

// NewView creates a new dasha view.
func NewView(s *styles.Styles, km *keymap.KeyMap) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &View{
		styles:    s,
		keymap:    km,
		rows:      list.NewRows(s, "Compute a chart first to see its dasha periods."),
		statusbar: status.NewBar(s, km.TreeHelp()),
		loc:       time.UTC,
		expanded:  map[string]bool{},
		width:     80,
		height:    24,
	}
}

// SetChart shows the chart's dasha tree with the running chain expanded.
func (v *View) SetChart(chart *domain.Chart) {
	v.tree = nil
	v.expanded = map[string]bool{}
	if chart != nil && chart.Dasha != nil {
		v.tree = chart.Dasha
		v.at = chart.JD
		v.loc = chart.Request.Time.Location()
	}
	v.rebuild()
	v.JumpToActive()
}

// Update handles messages for the dasha view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		key := msg.String()
		switch {
		case keymap.Matches(key, v.keymap.Back):
			return v, func() tea.Msg {
				return messages.ViewChanged{View: messages.ViewMenu}
			}
		case keymap.Matches(key, v.keymap.Expand):
			v.expand()
			return v, nil
		case keymap.Matches(key, v.keymap.Collapse):
			v.collapse()
			return v, nil
		case keymap.Matches(key, v.keymap.Active):
			v.JumpToActive()
			return v, nil
		}
	}

	var cmd tea.Cmd
	v.rows, cmd = v.rows.Update(msg)
	return v, cmd
}

func (v *View) expand() {
	n, ok := v.selected()
	if !ok || len(n.period.Sub) == 0 {
		return
	}
	v.expanded[n.path] = true
	v.rebuild()
}

// collapse closes the selected period, or moves to its parent when it is
// already closed.
func (v *View) collapse() {
	n, ok := v.selected()
	if !ok {
		return
	}
	if v.expanded[n.path] {
		delete(v.expanded, n.path)
		v.rebuild()
		return
	}
	if i := strings.LastIndex(n.path, "/"); i >= 0 {
		v.selectPath(n.path[:i])
	}
}

// JumpToActive expands and selects the deepest period running at the chart moment.
func (v *View) JumpToActive() {
	if v.tree == nil {
		return
	}
	level := v.tree.Periods
	path := ""
	for {
		idx := -1
		for i, p := range level {
			if p.Contains(v.at) {
				idx = i
				break
			}
		}
		if idx < 0 {
			break
		}
		if path == "" {
			path = strconv.Itoa(idx)
		} else {
			path += "/" + strconv.Itoa(idx)
		}
		if len(level[idx].Sub) == 0 {
			break
		}
		v.expanded[path] = true
		level = level[idx].Sub
	}
	v.rebuild()
	v.selectPath(path)
}

func (v *View) selectPath(path string) {
	for i, n := range v.nodes {
		if n.path == path {
			v.rows.SetSelected(i)
			return
		}
	}
}

func (v *View) selected() (node, bool) {
	i := v.rows.Selected()
	if i < 0 || i >= len(v.nodes) {
		return node{}, false
	}
	return v.nodes[i], true
}

// rebuild recomputes the visible nodes and their rendered rows.
func (v *View) rebuild() {
	v.nodes = v.nodes[:0]
	if v.tree != nil {
		v.walk(v.tree.Periods, "")
	}
	rows := make([]string, len(v.nodes))
	for i, n := range v.nodes {
		rows[i] = v.renderNode(n)
	}
	v.rows.SetRows(rows)
}

func (v *View) walk(periods []domain.DashaPeriod, prefix string) {
	for i, p := range periods {
		path := strconv.Itoa(i)
		if prefix != "" {
			path = prefix + "/" + path
		}
		v.nodes = append(v.nodes, node{period: p, path: path})
		if v.expanded[path] {
			v.walk(p.Sub, path)
		}
	}
}

func (v *View) renderNode(n node) string {
	marker := " "
	if len(n.period.Sub) > 0 {
		marker = "▸"
		if v.expanded[n.path] {
			marker = "▾"
		}
	}
	line := fmt.Sprintf("%s%s %-3s %s → %s",
		strings.Repeat("  ", n.period.Depth-1), marker, n.period.Body,
		n.period.StartJD.Time().In(v.loc).Format("2006-01-02"),
		n.period.EndJD.Time().In(v.loc).Format("2006-01-02"))
	if n.period.Contains(v.at) {
		return v.styles.Active.Render(line + " *")
	}
	return line
}

// View renders the tree.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	title := "Dasha periods"
	if v.tree != nil {
		title = fmt.Sprintf("Dasha periods (%s)", v.tree.System)
	}

	var b strings.Builder
	b.WriteString(v.styles.Title.Render(title))
	b.WriteString("\n\n")
	b.WriteString(v.rows.View())
	b.WriteString("\n\n")
	b.WriteString(v.statusbar.View())
	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.rows.SetHeight(height - 6)
	v.statusbar.SetWidth(width)
}

// Visible returns the number of visible periods.
func (v *View) Visible() int {
	return len(v.nodes)
}

// Selected returns the selected period, if any.
func (v *View) Selected() (domain.DashaPeriod, bool) {
	n, ok := v.selected()
	return n.period, ok
}
