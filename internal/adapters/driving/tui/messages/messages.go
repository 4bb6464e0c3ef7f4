// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/jyotish/internal/core/domain"
)

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewMenu is the main navigation menu.
	ViewMenu ViewType = iota
	// ViewChart is the chart input form and result.
	ViewChart
	// ViewDasha browses the dasha tree of the last chart.
	ViewDasha
	// ViewReference browses the reference tables.
	ViewReference
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewMenu:
		return "menu"
	case ViewChart:
		return "chart"
	case ViewDasha:
		return "dasha"
	case ViewReference:
		return "reference"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ChartComputed carries a computed chart back to the model.
type ChartComputed struct {
	Chart *domain.Chart
	Err   error
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
