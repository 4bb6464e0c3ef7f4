package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/jyotish/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/jyotish/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/jyotish/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/jyotish/internal/adapters/driving/tui/views/chart"
	"github.com/custodia-labs/jyotish/internal/adapters/driving/tui/views/dasha"
	"github.com/custodia-labs/jyotish/internal/adapters/driving/tui/views/menu"
	"github.com/custodia-labs/jyotish/internal/adapters/driving/tui/views/reference"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// styles holds the TUI styles.
	styles *styles.Styles

	// menuView is the main navigation menu.
	menuView *menu.View

	// chartView is the chart form and result.
	chartView *chart.View

	// dashaView browses the dasha tree of the last chart.
	dashaView *dasha.View

	// referenceView browses the reference tables.
	referenceView *reference.View

	// currentView tracks which view is active.
	currentView messages.ViewType

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	return &App{
		ports:         ports,
		styles:        s,
		menuView:      menu.NewView(s),
		chartView:     chart.NewView(s, km, ports.Chart),
		dashaView:     dasha.NewView(s, km),
		referenceView: reference.NewView(s, km, ports.Reference),
		currentView:   messages.ViewMenu,
	}, nil
}

// WithContext sets the context for chart computations.
func (a *App) WithContext(ctx context.Context) *App {
	a.chartView.WithContext(ctx)
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle("jyotish"),
	)
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		// Global quit with ctrl+c
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}

		switch a.currentView {
		case messages.ViewMenu:
			a.menuView, cmd = a.menuView.Update(msg)
		case messages.ViewChart:
			a.chartView, cmd = a.chartView.Update(msg)
		case messages.ViewDasha:
			a.dashaView, cmd = a.dashaView.Update(msg)
		case messages.ViewReference:
			a.referenceView, cmd = a.referenceView.Update(msg)
		case messages.ViewHelp:
			if msg.Type == tea.KeyEsc {
				a.currentView = messages.ViewMenu
			}
		}
		return a, cmd

	case messages.ChartComputed:
		a.chartView, cmd = a.chartView.Update(msg)
		if msg.Err != nil {
			a.err = msg.Err
			return a, cmd
		}
		a.err = nil
		a.menuView.SetLastChart(msg.Chart)
		a.dashaView.SetChart(msg.Chart)
		return a, cmd

	case messages.ViewChanged:
		a.currentView = msg.View
		switch msg.View {
		case messages.ViewChart:
			return a, a.chartView.Init()
		case messages.ViewReference:
			a.referenceView.Reset()
		case messages.ViewMenu, messages.ViewDasha, messages.ViewHelp:
		}
		return a, nil

	case messages.ErrorOccurred:
		a.err = msg.Err
		return a, nil

	case messages.Quit:
		return a, tea.Quit
	}

	// Forward other messages, such as cursor blinks, to the active view.
	switch a.currentView {
	case messages.ViewChart:
		a.chartView, cmd = a.chartView.Update(msg)
	case messages.ViewDasha:
		a.dashaView, cmd = a.dashaView.Update(msg)
	case messages.ViewReference:
		a.referenceView, cmd = a.referenceView.Update(msg)
	case messages.ViewMenu:
		a.menuView, cmd = a.menuView.Update(msg)
	case messages.ViewHelp:
	}
	return a, cmd
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewChart:
		return a.chartView.View()
	case messages.ViewDasha:
		return a.dashaView.View()
	case messages.ViewReference:
		return a.referenceView.View()
	case messages.ViewHelp:
		return a.viewHelp()
	default:
		return a.menuView.View()
	}
}

// viewHelp renders the help view.
func (a *App) viewHelp() string {
	return a.styles.Title.Render("Help") + `

Navigation:
  esc         Back to Menu
  ctrl+c      Quit

Menu:
  j/k, ↑/↓    Navigate options
  enter       Select option
  q           Quit

Chart:
  tab         Next field
  shift+tab   Previous field
  enter       Compute chart

Dasha periods:
  j/k, ↑/↓    Navigate periods
  l/→, enter  Expand sub-periods
  h/←         Collapse, or go to parent
  a           Jump to the running period

Reference tables:
  enter       Open section
  esc         Back to section list

[esc] back to menu`
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions on the app and every view.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.menuView.SetDimensions(width, height)
	a.chartView.SetDimensions(width, height)
	a.dashaView.SetDimensions(width, height)
	a.referenceView.SetDimensions(width, height)
}
