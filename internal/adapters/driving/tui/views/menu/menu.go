// Package menu is the TUI start screen.
package menu

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/jyotish/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/jyotish/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/jyotish/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/jyotish/internal/core/domain"
)

// Entry is one line of the menu.
type Entry struct {
	Label string
	Hint  string
	View  messages.ViewType

	// Quit ends the program instead of switching views.
	Quit bool
}

// View lists the screens the app can switch to.
type View struct {
	styles  *styles.Styles
	keymap  *keymap.KeyMap
	entries []Entry
	cursor  int
	last    *domain.Chart
	width   int
	height  int
	ready   bool
}

// NewView creates the menu with its fixed entries.
func NewView(s *styles.Styles) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &View{
		styles: s,
		keymap: keymap.DefaultKeyMap(),
		entries: []Entry{
			{Label: "Chart", Hint: "compute positions, day and dasha", View: messages.ViewChart},
			{Label: "Dasha periods", Hint: "browse the period tree", View: messages.ViewDasha},
			{Label: "Reference tables", Hint: "active static tables", View: messages.ViewReference},
			{Label: "Help", Hint: "keys", View: messages.ViewHelp},
			{Label: "Quit", Quit: true},
		},
		width:  80,
		height: 24,
	}
}

// Init implements the view lifecycle; the menu has no startup command.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update moves the cursor or emits the chosen view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		pressed := msg.String()
		switch {
		case keymap.Matches(pressed, v.keymap.Up):
			if v.cursor > 0 {
				v.cursor--
			}
		case keymap.Matches(pressed, v.keymap.Down):
			if v.cursor < len(v.entries)-1 {
				v.cursor++
			}
		case keymap.Matches(pressed, v.keymap.Select):
			return v, v.choose(v.entries[v.cursor])
		case keymap.Matches(pressed, v.keymap.Quit):
			return v, tea.Quit
		}
	}

	return v, nil
}

func (v *View) choose(e Entry) tea.Cmd {
	if e.Quit {
		return tea.Quit
	}
	return func() tea.Msg {
		return messages.ViewChanged{View: e.View}
	}
}

// View renders the entries and the last computed chart, if any.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	var b strings.Builder
	b.WriteString(v.styles.Title.Render("Jyotish"))
	b.WriteString("\n\n")
	b.WriteString(v.styles.Muted.Render("Sidereal chart arithmetic"))
	b.WriteString("\n\n")

	for i, e := range v.entries {
		line := fmt.Sprintf("%-18s", e.Label)
		if i == v.cursor {
			b.WriteString("> " + v.styles.Active.Render(line))
		} else {
			b.WriteString("  " + v.styles.Normal.Render(line))
		}
		if e.Hint != "" {
			b.WriteString(" " + v.styles.Muted.Render(e.Hint))
		}
		b.WriteString("\n")
	}

	if v.last != nil {
		geo := v.last.Request.Geo
		b.WriteString("\n")
		b.WriteString(v.styles.Muted.Render(fmt.Sprintf("Last chart: JD %.5f at %.4f, %.4f",
			float64(v.last.JD), geo.Latitude, geo.Longitude)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("[j/k] Navigate  [Enter] Select  [q] Quit"))
	return b.String()
}

// SetLastChart records the most recent chart for the summary line.
func (v *View) SetLastChart(c *domain.Chart) {
	v.last = c
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Selected returns the cursor index.
func (v *View) Selected() int {
	return v.cursor
}
