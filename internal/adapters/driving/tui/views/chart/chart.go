// Package chart provides the chart input form and result view for the TUI.
package chart

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/jyotish/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/jyotish/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/jyotish/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/jyotish/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/jyotish/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/jyotish/internal/core/domain"
	"github.com/custodia-labs/jyotish/internal/core/ports/driving"
)

// Form field positions.
const (
	fieldTime = iota
	fieldZone
	fieldLat
	fieldLon
	fieldAlt
)

// View is the chart form and result view.
type View struct {
	styles       *styles.Styles
	keymap       *keymap.KeyMap
	form         *input.Form
	statusbar    *status.Bar
	chartService driving.ChartService
	ctx          context.Context
	now          func() time.Time

	chart     *domain.Chart
	computing bool

	width  int
	height int
	ready  bool
}

// NewView creates a new chart view.
func NewView(s *styles.Styles, km *keymap.KeyMap, chartService driving.ChartService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	form := input.NewForm(
		input.NewField(s, "Time", "now, 2024-03-20 17:30 or RFC 3339"),
		input.NewField(s, "Zone", "IANA zone, e.g. Asia/Kolkata"),
		input.NewField(s, "Latitude", "degrees, north positive"),
		input.NewField(s, "Longitude", "degrees, east positive"),
		input.NewField(s, "Altitude", "metres"),
	)

	return &View{
		styles:       s,
		keymap:       km,
		form:         form,
		statusbar:    status.NewBar(s, km.FormHelp()),
		chartService: chartService,
		ctx:          context.Background(),
		now:          time.Now,
		width:        80,
		height:       24,
	}
}

// WithContext sets the context for chart computations.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return v.form.Init()
}

// Update handles messages for the chart view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.ChartComputed:
		v.computing = false
		if msg.Err != nil {
			v.statusbar.SetState(status.StateError, msg.Err.Error())
			return v, nil
		}
		v.chart = msg.Chart
		v.statusbar.SetState(status.StateReady, fmt.Sprintf("Computed JD %.5f", float64(msg.Chart.JD)))
		return v, nil

	case tea.KeyMsg:
		key := msg.String()
		switch {
		case keymap.Matches(key, v.keymap.Back):
			return v, func() tea.Msg {
				return messages.ViewChanged{View: messages.ViewMenu}
			}
		case keymap.Matches(key, v.keymap.NextField):
			return v, v.form.Next()
		case keymap.Matches(key, v.keymap.PrevField):
			return v, v.form.Prev()
		case keymap.Matches(key, v.keymap.Compute):
			return v, v.submit()
		}
	}

	var cmd tea.Cmd
	v.form, cmd = v.form.Update(msg)
	return v, cmd
}

// submit validates the form and starts a computation.
func (v *View) submit() tea.Cmd {
	if v.computing {
		return nil
	}
	req, err := v.Request()
	if err != nil {
		v.statusbar.SetState(status.StateError, err.Error())
		return nil
	}
	if v.chartService == nil {
		v.statusbar.SetState(status.StateError, "chart service not available")
		return nil
	}

	v.computing = true
	v.statusbar.SetState(status.StateComputing, "")
	svc, ctx := v.chartService, v.ctx
	return func() tea.Msg {
		chart, err := svc.Compute(ctx, req)
		return messages.ChartComputed{Chart: chart, Err: err}
	}
}

// Request builds a chart request from the form.
func (v *View) Request() (domain.ChartRequest, error) {
	moment, err := domain.ParseMoment(v.form.Field(fieldTime).Value(), v.form.Field(fieldZone).Value(), v.now())
	if err != nil {
		return domain.ChartRequest{}, err
	}

	lat, err := v.number(fieldLat, true)
	if err != nil {
		return domain.ChartRequest{}, err
	}
	lon, err := v.number(fieldLon, true)
	if err != nil {
		return domain.ChartRequest{}, err
	}
	alt, err := v.number(fieldAlt, false)
	if err != nil {
		return domain.ChartRequest{}, err
	}

	return domain.ChartRequest{
		Time: moment,
		Geo:  domain.GeoPosition{Latitude: lat, Longitude: lon, Altitude: alt},
	}, nil
}

func (v *View) number(field int, required bool) (float64, error) {
	f := v.form.Field(field)
	if f.Value() == "" {
		if required {
			return 0, fmt.Errorf("%s is required", strings.ToLower(f.Label()))
		}
		return 0, nil
	}
	n, err := strconv.ParseFloat(f.Value(), 64)
	if err != nil {
		return 0, errors.New(strings.ToLower(f.Label()) + " must be a number")
	}
	return n, nil
}

// View renders the form and the last computed chart.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	var b strings.Builder
	b.WriteString(v.styles.Title.Render("Chart"))
	b.WriteString("\n\n")
	b.WriteString(v.form.View())
	b.WriteString("\n\n")

	if v.chart != nil {
		b.WriteString(v.renderChart())
		b.WriteString("\n")
	}

	b.WriteString(v.statusbar.View())
	return b.String()
}

func (v *View) renderChart() string {
	c := v.chart
	loc := c.Request.Time.Location()

	var b strings.Builder
	b.WriteString(v.styles.Subtitle.Render(fmt.Sprintf("%s  ayanamsa %s  LST %s",
		c.JD.Time().In(loc).Format("2006-01-02 15:04:05 MST"),
		formatDegree(c.Ayanamsa),
		formatHMS(c.Sidereal.Apparent))))
	b.WriteString("\n")
	b.WriteString(v.styles.Header.Render(fmt.Sprintf("%-4s %4s %-11s %5s %4s %4s  %s", "Body", "Sign", "Degree", "House", "Nak", "Pada", "Dignity")))
	b.WriteString("\n")

	for _, body := range c.Bodies {
		line := fmt.Sprintf("%-4s %4d %-11s %5s %4d %4d  %s",
			body.Position.Key, body.Sign, formatDegree(body.Degree), house(body.House),
			body.Nakshatra+1, body.Pada, body.Dignity)
		if body.Position.Retrograde() {
			line += " (R)"
		}
		b.WriteString(v.styles.Dignity(body.Dignity).Render(line))
		b.WriteString("\n")
	}
	for _, key := range c.Unavailable {
		b.WriteString(v.styles.Warning.Render(fmt.Sprintf("%-4s unavailable", key)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	switch {
	case c.Day != nil:
		phase := "night"
		if c.Day.IsDayTime {
			phase = "day"
		}
		fmt.Fprintf(&b, "Jyotish day from %s, %.1f%% elapsed (%s)",
			c.Day.DayStart.Time().In(loc).Format("2006-01-02 15:04"), c.Day.Progress*100, phase)
		b.WriteString("\n")
	case c.DayError != "":
		b.WriteString(v.styles.Warning.Render("Jyotish day unavailable: " + c.DayError))
		b.WriteString("\n")
	}

	if c.Dasha != nil {
		path := domain.ActivePath(c.Dasha.Periods, c.JD)
		lords := make([]string, len(path))
		for i, p := range path {
			lords[i] = p.Body.String()
		}
		if len(lords) > 0 {
			b.WriteString(v.styles.Active.Render(fmt.Sprintf("%s: %s", c.Dasha.System, strings.Join(lords, " > "))))
			b.WriteString("\n")
		}
	}
	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.statusbar.SetWidth(width)
}

// Chart returns the last computed chart.
func (v *View) Chart() *domain.Chart {
	return v.chart
}

// Computing reports whether a computation is in flight.
func (v *View) Computing() bool {
	return v.computing
}

// Form returns the input form.
func (v *View) Form() *input.Form {
	return v.form
}

func house(h int) string {
	if h == 0 {
		return "-"
	}
	return strconv.Itoa(h)
}

func formatDegree(deg float64) string {
	secs := int(math.Round(deg * 3600))
	return fmt.Sprintf("%d°%02d'%02d\"", secs/3600, secs/60%60, secs%60)
}

func formatHMS(v domain.HMS) string {
	return fmt.Sprintf("%02d:%02d:%05.2f", v.Hours, v.Minutes, v.Seconds)
}
