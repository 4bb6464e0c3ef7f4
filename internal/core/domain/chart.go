package domain

import "time"

// ChartRequest is the input for one chart computation.
type ChartRequest struct {
	// Name is an optional label for the stored chart.
	Name string `json:"name,omitempty" validate:"max=200"`

	// Time is the chart moment. Its location supplies the civil timezone.
	Time time.Time `json:"time" validate:"required"`

	// Geo is the observer location.
	Geo GeoPosition `json:"geo"`

	// DashaSystem overrides the configured dasha system key.
	DashaSystem string `json:"dasha_system,omitempty"`

	// DashaDepth overrides the configured nesting depth.
	DashaDepth int `json:"dasha_depth,omitempty" validate:"gte=0,lte=5"`
}

// SiderealTime is the local sidereal time at the chart moment.
type SiderealTime struct {
	Mean     HMS `json:"mean"`
	Apparent HMS `json:"apparent"`

	// NutationLongitude is the nutation in longitude in arcseconds.
	NutationLongitude float64 `json:"nutation_longitude"`

	// Obliquity is the mean obliquity of the ecliptic in degrees.
	Obliquity float64 `json:"obliquity"`
}

// DashaTree is the computed period sequence for one system.
type DashaTree struct {
	System  string        `json:"system"`
	Periods []DashaPeriod `json:"periods"`
}

// Chart is the full result of one computation.
type Chart struct {
	// ID is assigned when the chart is computed.
	ID string `json:"id"`

	// Request echoes the input.
	Request ChartRequest `json:"request"`

	// JD is the chart moment as a Julian Day.
	JD JulianDay `json:"jd"`

	// Ayanamsa is the sidereal offset applied to tropical longitudes.
	Ayanamsa float64 `json:"ayanamsa"`

	// Sidereal is the local sidereal time.
	Sidereal SiderealTime `json:"sidereal"`

	// Bodies holds the annotated positions, ascendant first when available.
	Bodies []ChartBody `json:"bodies"`

	// Day is the Jyotish day; nil when the Sun's transitions were unavailable.
	Day *JyotishDay `json:"day,omitempty"`

	// IndianTime is derived from Day.Progress; nil when Day is nil.
	IndianTime *IndianTime `json:"indian_time,omitempty"`

	// DayError explains why Day is nil.
	DayError string `json:"day_error,omitempty"`

	// Dasha is the period tree; nil when the Moon was unavailable.
	Dasha *DashaTree `json:"dasha,omitempty"`

	// Unavailable lists bodies the ephemeris could not resolve.
	Unavailable []BodyKey `json:"unavailable,omitempty"`

	// CreatedAt is when the chart was computed.
	CreatedAt time.Time `json:"created_at"`
}

// Body returns the annotated body for a key.
func (c *Chart) Body(key BodyKey) (ChartBody, bool) {
	for _, b := range c.Bodies {
		if b.Position.Key == key {
			return b, true
		}
	}
	return ChartBody{}, false
}

// ChartSummary is the listing view of a stored chart.
type ChartSummary struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Time      time.Time   `json:"time"`
	Geo       GeoPosition `json:"geo"`
	CreatedAt time.Time   `json:"created_at"`
}

// Summary returns the listing view of the chart.
func (c *Chart) Summary() ChartSummary {
	return ChartSummary{
		ID:        c.ID,
		Name:      c.Request.Name,
		Time:      c.Request.Time,
		Geo:       c.Request.Geo,
		CreatedAt: c.CreatedAt,
	}
}
