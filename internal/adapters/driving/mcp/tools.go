package mcp

import (
	"context"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/jyotish/internal/core/domain"
)

// ChartInput is the input schema for the compute_chart tool.
type ChartInput struct {
	Time        string  `json:"time" jsonschema:"chart moment in RFC 3339 with offset, e.g. 1985-07-12T06:30:00+05:30"`
	Latitude    float64 `json:"latitude,omitempty" jsonschema:"latitude in degrees, north positive"`
	Longitude   float64 `json:"longitude,omitempty" jsonschema:"longitude in degrees, east positive"`
	Altitude    float64 `json:"altitude,omitempty" jsonschema:"altitude in metres"`
	Name        string  `json:"name,omitempty" jsonschema:"label for the chart"`
	DashaSystem string  `json:"dasha_system,omitempty" jsonschema:"dasha system key, e.g. vimshottari (default from settings)"`
	DashaDepth  int     `json:"dasha_depth,omitempty" jsonschema:"dasha nesting depth 1-5 (default from settings)"`
	Save        bool    `json:"save,omitempty" jsonschema:"store the chart for later retrieval"`
}

// BodyOutput is one annotated chart body.
type BodyOutput struct {
	Body          string               `json:"body"`
	Longitude     float64              `json:"longitude"`
	Sign          int                  `json:"sign"`
	Degree        float64              `json:"degree"`
	House         int                  `json:"house,omitempty"`
	Nakshatra     int                  `json:"nakshatra"`
	Pada          int                  `json:"pada"`
	Dignity       string               `json:"dignity,omitempty"`
	Retrograde    bool                 `json:"retrograde,omitempty"`
	Relationships []RelationshipOutput `json:"relationships,omitempty"`
}

// RelationshipOutput is the body's five-fold view of another body.
type RelationshipOutput struct {
	To        string `json:"to"`
	Natural   string `json:"natural"`
	Temporary string `json:"temporary"`
	Compound  string `json:"compound"`
}

// DayOutput is the Jyotish day summary.
type DayOutput struct {
	Start      string             `json:"start"`
	Length     float64            `json:"length_days"`
	Progress   float64            `json:"progress"`
	IsDayTime  bool               `json:"is_day_time"`
	Sunrise    string             `json:"sunrise,omitempty"`
	Sunset     string             `json:"sunset,omitempty"`
	IndianTime map[string]float64 `json:"indian_time,omitempty"`
}

// PeriodOutput is one dasha period. Periods are listed depth first,
// each followed by its sub-periods.
type PeriodOutput struct {
	Body  string `json:"body"`
	Depth int    `json:"depth"`
	Start string `json:"start"`
	End   string `json:"end"`
}

// ChartOutput is the output schema for the compute_chart tool.
type ChartOutput struct {
	ID          string       `json:"id"`
	JD          float64      `json:"jd"`
	Ayanamsa    float64      `json:"ayanamsa"`
	Sidereal    string       `json:"sidereal_time"`
	Bodies      []BodyOutput `json:"bodies"`
	Day         *DayOutput   `json:"day,omitempty"`
	DayError    string       `json:"day_error,omitempty"`
	DashaSystem string       `json:"dasha_system,omitempty"`
	ActiveDasha []string     `json:"active_dasha,omitempty"`
	Unavailable []string     `json:"unavailable,omitempty"`
	Saved       bool         `json:"saved,omitempty"`
}

// DashaInput is the input schema for the dasha tool.
type DashaInput struct {
	Time      string  `json:"time" jsonschema:"birth moment in RFC 3339 with offset"`
	Latitude  float64 `json:"latitude,omitempty" jsonschema:"latitude in degrees, north positive"`
	Longitude float64 `json:"longitude,omitempty" jsonschema:"longitude in degrees, east positive"`
	System    string  `json:"system,omitempty" jsonschema:"dasha system key (default from settings)"`
	Depth     int     `json:"depth,omitempty" jsonschema:"nesting depth 1-5 (default from settings)"`
	At        string  `json:"at,omitempty" jsonschema:"RFC 3339 moment whose running periods are reported (default now)"`
}

// DashaOutput is the output schema for the dasha tool.
type DashaOutput struct {
	System  string         `json:"system"`
	Periods []PeriodOutput `json:"periods"`
	Active  []string       `json:"active"`
}

// VargaInput is the input schema for the varga tool.
type VargaInput struct {
	Longitude float64 `json:"longitude" jsonschema:"sidereal longitude in degrees"`
}

// VargaOutput is the output schema for the varga tool.
type VargaOutput struct {
	Values []VargaValueOutput `json:"values"`
}

// VargaValueOutput is one divisional longitude.
type VargaValueOutput struct {
	Scheme  string  `json:"scheme"`
	Divisor int     `json:"divisor"`
	Value   float64 `json:"value"`
	Sign    int     `json:"sign"`
}

// SiderealInput is the input schema for the sidereal_time tool.
type SiderealInput struct {
	Time      string  `json:"time" jsonschema:"moment in RFC 3339 with offset"`
	Longitude float64 `json:"longitude" jsonschema:"longitude in degrees, east positive"`
}

// SiderealOutput is the output schema for the sidereal_time tool.
type SiderealOutput struct {
	Mean              string  `json:"mean"`
	Apparent          string  `json:"apparent"`
	MeanHours         float64 `json:"mean_hours"`
	ApparentHours     float64 `json:"apparent_hours"`
	NutationLongitude float64 `json:"nutation_longitude_arcsec"`
	Obliquity         float64 `json:"obliquity"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "compute_chart",
		Description: "Compute a sidereal chart: positions, houses, nakshatras, dignities, Jyotish day and running dasha",
	}, s.handleComputeChart)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "dasha",
		Description: "List dasha periods anchored to the Moon at a birth moment",
	}, s.handleDasha)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "varga",
		Description: "Map a sidereal longitude into every divisional chart of the configured tradition",
	}, s.handleVarga)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "sidereal_time",
		Description: "Local mean and apparent sidereal time for a moment and longitude",
	}, s.handleSiderealTime)
}

// handleComputeChart handles the compute_chart tool invocation.
func (s *Server) handleComputeChart(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ChartInput,
) (*mcp.CallToolResult, ChartOutput, error) {
	req, err := newRequest(input.Time, domain.GeoPosition{
		Latitude:  input.Latitude,
		Longitude: input.Longitude,
		Altitude:  input.Altitude,
	})
	if err != nil {
		return nil, ChartOutput{}, err
	}
	req.Name = input.Name
	req.DashaSystem = input.DashaSystem
	req.DashaDepth = input.DashaDepth

	chart, err := s.ports.Chart.Compute(ctx, req)
	if err != nil {
		return nil, ChartOutput{}, err
	}

	output := chartOutput(chart)
	if input.Save {
		if err := s.ports.Chart.Save(ctx, chart); err != nil {
			return nil, ChartOutput{}, fmt.Errorf("saving chart: %w", err)
		}
		output.Saved = true
	}

	return nil, output, nil
}

// handleDasha handles the dasha tool invocation.
func (s *Server) handleDasha(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input DashaInput,
) (*mcp.CallToolResult, DashaOutput, error) {
	req, err := newRequest(input.Time, domain.GeoPosition{Latitude: input.Latitude, Longitude: input.Longitude})
	if err != nil {
		return nil, DashaOutput{}, err
	}
	req.DashaSystem = input.System
	req.DashaDepth = input.Depth

	at := time.Now()
	if input.At != "" {
		at, err = parseTime(input.At)
		if err != nil {
			return nil, DashaOutput{}, err
		}
	}

	tree, err := s.ports.Chart.Dasha(ctx, req)
	if err != nil {
		return nil, DashaOutput{}, err
	}

	return nil, DashaOutput{
		System:  tree.System,
		Periods: flattenPeriods(make([]PeriodOutput, 0, len(tree.Periods)), tree.Periods, req.Time.Location()),
		Active:  activeLords(tree, domain.JulianDayFromTime(at)),
	}, nil
}

// handleVarga handles the varga tool invocation.
func (s *Server) handleVarga(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input VargaInput,
) (*mcp.CallToolResult, VargaOutput, error) {
	values, err := s.ports.Chart.Vargas(input.Longitude)
	if err != nil {
		return nil, VargaOutput{}, err
	}

	output := VargaOutput{Values: make([]VargaValueOutput, len(values))}
	for i, v := range values {
		output.Values[i] = VargaValueOutput{
			Scheme:  v.Scheme,
			Divisor: v.Divisor,
			Value:   v.Value,
			Sign:    v.Sign,
		}
	}
	return nil, output, nil
}

// handleSiderealTime handles the sidereal_time tool invocation.
func (s *Server) handleSiderealTime(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input SiderealInput,
) (*mcp.CallToolResult, SiderealOutput, error) {
	req, err := newRequest(input.Time, domain.GeoPosition{Longitude: input.Longitude})
	if err != nil {
		return nil, SiderealOutput{}, err
	}

	st, err := s.ports.Chart.SiderealTime(req)
	if err != nil {
		return nil, SiderealOutput{}, err
	}

	return nil, SiderealOutput{
		Mean:              formatHMS(st.Mean),
		Apparent:          formatHMS(st.Apparent),
		MeanHours:         st.Mean.DecimalHours(),
		ApparentHours:     st.Apparent.DecimalHours(),
		NutationLongitude: st.NutationLongitude,
		Obliquity:         st.Obliquity,
	}, nil
}

func newRequest(value string, geo domain.GeoPosition) (domain.ChartRequest, error) {
	t, err := parseTime(value)
	if err != nil {
		return domain.ChartRequest{}, err
	}
	return domain.ChartRequest{Time: t, Geo: geo}, nil
}

func parseTime(value string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: time %q is not RFC 3339", domain.ErrInvalidInput, value)
	}
	return t, nil
}

func chartOutput(chart *domain.Chart) ChartOutput {
	loc := chart.Request.Time.Location()
	out := ChartOutput{
		ID:       chart.ID,
		JD:       float64(chart.JD),
		Ayanamsa: chart.Ayanamsa,
		Sidereal: formatHMS(chart.Sidereal.Apparent),
		Bodies:   make([]BodyOutput, len(chart.Bodies)),
		DayError: chart.DayError,
	}

	for i, b := range chart.Bodies {
		out.Bodies[i] = BodyOutput{
			Body:       b.Position.Key.String(),
			Longitude:  b.Position.Longitude,
			Sign:       b.Sign,
			Degree:     b.Degree,
			House:      b.House,
			Nakshatra:  b.Nakshatra + 1,
			Pada:       b.Pada,
			Dignity:    string(b.Dignity),
			Retrograde: b.Position.Retrograde(),
		}
		for _, r := range b.Relationships {
			out.Bodies[i].Relationships = append(out.Bodies[i].Relationships, RelationshipOutput{
				To:        r.To.String(),
				Natural:   r.Natural.String(),
				Temporary: r.Temporary.String(),
				Compound:  r.Compound.String(),
			})
		}
	}
	for _, k := range chart.Unavailable {
		out.Unavailable = append(out.Unavailable, k.String())
	}

	if chart.Day != nil {
		out.Day = &DayOutput{
			Start:     formatJD(chart.Day.DayStart, loc),
			Length:    chart.Day.DayLength,
			Progress:  chart.Day.Progress,
			IsDayTime: chart.Day.IsDayTime,
		}
		if tr := chart.Day.Transitions; tr.Rise.Valid {
			out.Day.Sunrise = formatJD(tr.Rise.JD, loc)
		}
		if tr := chart.Day.Transitions; tr.Set.Valid {
			out.Day.Sunset = formatJD(tr.Set.JD, loc)
		}
		if chart.IndianTime != nil {
			out.Day.IndianTime = make(map[string]float64, len(chart.IndianTime.Units))
			for _, u := range chart.IndianTime.Units {
				out.Day.IndianTime[u.Key] = u.Value
			}
		}
	}

	if chart.Dasha != nil {
		out.DashaSystem = chart.Dasha.System
		out.ActiveDasha = activeLords(chart.Dasha, chart.JD)
	}
	return out
}

func flattenPeriods(out []PeriodOutput, periods []domain.DashaPeriod, loc *time.Location) []PeriodOutput {
	for _, p := range periods {
		out = append(out, PeriodOutput{
			Body:  p.Body.String(),
			Depth: p.Depth,
			Start: formatJD(p.StartJD, loc),
			End:   formatJD(p.EndJD, loc),
		})
		out = flattenPeriods(out, p.Sub, loc)
	}
	return out
}

func activeLords(tree *domain.DashaTree, jd domain.JulianDay) []string {
	path := domain.ActivePath(tree.Periods, jd)
	lords := make([]string, len(path))
	for i, p := range path {
		lords[i] = p.Body.String()
	}
	return lords
}

func formatHMS(v domain.HMS) string {
	return fmt.Sprintf("%02d:%02d:%05.2f", v.Hours, v.Minutes, v.Seconds)
}

func formatJD(jd domain.JulianDay, loc *time.Location) string {
	return jd.Time().In(loc).Format(time.RFC3339)
}
