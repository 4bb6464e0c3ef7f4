// Package input provides labelled text fields for the TUI.
package input

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/jyotish/internal/adapters/driving/tui/styles"
)

// labelWidth is the column width reserved for field labels.
const labelWidth = 10

// Field wraps a bubbles textinput with a label.
type Field struct {
	label     string
	textinput textinput.Model
	styles    *styles.Styles
}

// NewField creates a new unfocused field.
func NewField(s *styles.Styles, label, placeholder string) *Field {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 64
	ti.Width = 32

	return &Field{
		label:     label,
		textinput: ti,
		styles:    s,
	}
}

// Update handles input messages.
func (f *Field) Update(msg tea.Msg) (*Field, tea.Cmd) {
	var cmd tea.Cmd
	f.textinput, cmd = f.textinput.Update(msg)
	return f, cmd
}

// View renders the label and input.
func (f *Field) View() string {
	label := f.styles.Muted.Render(fmt.Sprintf("%-*s", labelWidth, f.label))
	box := f.styles.InputField
	if f.textinput.Focused() {
		label = f.styles.Title.Render(fmt.Sprintf("%-*s", labelWidth, f.label))
		box = f.styles.FocusedField
	}
	//nolint:misspell // lipgloss.Center is the correct constant from the library
	return lipgloss.JoinHorizontal(lipgloss.Center, label, box.Render(f.textinput.View()))
}

// Label returns the field label.
func (f *Field) Label() string {
	return f.label
}

// Value returns the trimmed input value.
func (f *Field) Value() string {
	return strings.TrimSpace(f.textinput.Value())
}

// SetValue sets the input value.
func (f *Field) SetValue(value string) {
	f.textinput.SetValue(value)
}

// Focus sets focus on the field.
func (f *Field) Focus() tea.Cmd {
	return f.textinput.Focus()
}

// Blur removes focus from the field.
func (f *Field) Blur() {
	f.textinput.Blur()
}

// Focused returns whether the field is focused.
func (f *Field) Focused() bool {
	return f.textinput.Focused()
}

// Form is an ordered set of fields with one focused at a time.
type Form struct {
	fields  []*Field
	focused int
}

// NewForm creates a form and focuses its first field.
func NewForm(fields ...*Field) *Form {
	form := &Form{fields: fields}
	if len(fields) > 0 {
		fields[0].Focus()
	}
	return form
}

// Init starts the cursor blinking.
func (f *Form) Init() tea.Cmd {
	return textinput.Blink
}

// Update forwards the message to the focused field.
func (f *Form) Update(msg tea.Msg) (*Form, tea.Cmd) {
	if len(f.fields) == 0 {
		return f, nil
	}
	_, cmd := f.fields[f.focused].Update(msg)
	return f, cmd
}

// View renders the fields one per line.
func (f *Form) View() string {
	lines := make([]string, len(f.fields))
	for i, field := range f.fields {
		lines[i] = field.View()
	}
	return strings.Join(lines, "\n")
}

// Next moves focus to the next field, wrapping around.
func (f *Form) Next() tea.Cmd {
	return f.move(1)
}

// Prev moves focus to the previous field, wrapping around.
func (f *Form) Prev() tea.Cmd {
	return f.move(-1)
}

func (f *Form) move(step int) tea.Cmd {
	if len(f.fields) == 0 {
		return nil
	}
	f.fields[f.focused].Blur()
	f.focused = (f.focused + step + len(f.fields)) % len(f.fields)
	return f.fields[f.focused].Focus()
}

// Focused returns the index of the focused field.
func (f *Form) Focused() int {
	return f.focused
}

// Field returns the field at index i.
func (f *Form) Field(i int) *Field {
	return f.fields[i]
}

// Len returns the number of fields.
func (f *Form) Len() int {
	return len(f.fields)
}
