// Package reference provides the reference table browser for the TUI.
package reference

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/jyotish/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/jyotish/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/jyotish/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/jyotish/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/jyotish/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/jyotish/internal/core/domain"
	"github.com/custodia-labs/jyotish/internal/core/ports/driving"
)

// View lists the reference sections and shows one at a time.
type View struct {
	styles           *styles.Styles
	keymap           *keymap.KeyMap
	sections         *list.Rows
	detail           *list.Rows
	statusbar        *status.Bar
	referenceService driving.ReferenceService

	// open is the section being shown, empty on the section list.
	open string

	width  int
	height int
	ready  bool
}

// NewView creates a new reference view.
func NewView(s *styles.Styles, km *keymap.KeyMap, referenceService driving.ReferenceService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	sections := list.NewRows(s, "No reference data loaded.")
	if referenceService != nil {
		sections.SetRows(domain.ReferenceSections)
	}

	return &View{
		styles:           s,
		keymap:           km,
		sections:         sections,
		detail:           list.NewRows(s, "Empty table."),
		statusbar:        status.NewBar(s, []key.Binding{km.Up, km.Down, km.Select, km.Back}),
		referenceService: referenceService,
		width:            80,
		height:           24,
	}
}

// Reset returns to the section list.
func (v *View) Reset() {
	v.open = ""
	v.statusbar.Clear()
	if v.referenceService != nil {
		v.statusbar.SetState(status.StateReady, "Source: "+v.referenceService.Source())
	}
}

// Update handles messages for the reference view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		pressed := msg.String()
		if keymap.Matches(pressed, v.keymap.Back) {
			if v.open != "" {
				v.open = ""
				return v, nil
			}
			return v, func() tea.Msg {
				return messages.ViewChanged{View: messages.ViewMenu}
			}
		}
		if v.open == "" && keymap.Matches(pressed, v.keymap.Select) {
			v.Open(v.sections.Selected())
			return v, nil
		}
	}

	var cmd tea.Cmd
	if v.open != "" {
		v.detail, cmd = v.detail.Update(msg)
	} else {
		v.sections, cmd = v.sections.Update(msg)
	}
	return v, cmd
}

// Open shows the section at index i of the section list.
func (v *View) Open(i int) {
	if v.referenceService == nil || i < 0 || i >= len(domain.ReferenceSections) {
		return
	}
	v.open = domain.ReferenceSections[i]
	v.detail.SetRows(Lines(v.referenceService.Current(), v.open))
	v.detail.SetSelected(0)
}

// View renders the section list or the open section.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	var b strings.Builder
	if v.open == "" {
		b.WriteString(v.styles.Title.Render("Reference tables"))
		b.WriteString("\n\n")
		b.WriteString(v.sections.View())
	} else {
		b.WriteString(v.styles.Title.Render("Reference: " + v.open))
		b.WriteString("\n\n")
		b.WriteString(v.detail.View())
	}
	b.WriteString("\n\n")
	b.WriteString(v.statusbar.View())
	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.sections.SetHeight(height - 6)
	v.detail.SetHeight(height - 6)
	v.statusbar.SetWidth(width)
}

// OpenSection returns the section being shown, empty on the section list.
func (v *View) OpenSection() string {
	return v.open
}

// Lines renders one reference section as display rows.
func Lines(ref *domain.ReferenceData, section string) []string {
	if ref == nil {
		return nil
	}

	var lines []string
	switch section {
	case domain.SectionBodies:
		keys := make([]string, 0, len(ref.Bodies))
		for k := range ref.Bodies {
			keys = append(keys, string(k))
		}
		sort.Strings(keys)
		for _, k := range keys {
			a := ref.Bodies[domain.BodyKey(k)]
			lines = append(lines, fmt.Sprintf("%-3s %-10s own %-6s exalt %-8s debil %-8s friends %s",
				k, a.Name, joinInts(a.OwnSigns), signDegree(a.Exaltation), signDegree(a.Debilitation), joinBodies(a.Friends)))
		}
	case domain.SectionSigns:
		for sign := 1; sign <= domain.SignCount; sign++ {
			ruler, _ := ref.Ruler(sign)
			lines = append(lines, fmt.Sprintf("%2d  %s", sign, ruler))
		}
	case domain.SectionSchemes:
		for _, s := range ref.Schemes {
			lines = append(lines, fmt.Sprintf("%-4s %-16s /%d", s.Key, s.Name, s.Divisor))
		}
	case domain.SectionDasha:
		keys := make([]string, 0, len(ref.DashaSystems))
		for k := range ref.DashaSystems {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			sys := ref.DashaSystems[k]
			lines = append(lines, fmt.Sprintf("%-14s %-20s %-12s %gy, %d lords",
				k, sys.Name, sys.Mode, sys.TotalYears, len(sys.Sequence)))
		}
	case domain.SectionNakshatras:
		for _, n := range ref.Nakshatras {
			lines = append(lines, fmt.Sprintf("%2d  %-20s %s", n.Index+1, n.Name, n.Lord))
		}
	case domain.SectionCompound:
		for _, r := range ref.Compound {
			lines = append(lines, fmt.Sprintf("%-8s + %-8s = %s", r.Natural, r.Temporary, r.Compound))
		}
	case domain.SectionTimeUnits:
		for _, u := range ref.TimeUnits {
			parent := u.Parent
			if parent == "" {
				parent = "day"
			}
			lines = append(lines, fmt.Sprintf("%-10s 1/%g %s", u.Key, u.Divisor, parent))
		}
	}
	return lines
}

func joinInts(values []int) string {
	if len(values) == 0 {
		return "-"
	}
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ",")
}

func joinBodies(keys []domain.BodyKey) string {
	if len(keys) == 0 {
		return "-"
	}
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k.String()
	}
	return strings.Join(parts, ",")
}

func signDegree(p *domain.SignDegree) string {
	if p == nil {
		return "-"
	}
	return fmt.Sprintf("%d %g°", p.Sign, p.Degree)
}
