package domain

import (
	"math"
	"time"
)

// JulianDay is a continuous day count in Universal Time.
// The fractional part is the time of day counted from noon.
type JulianDay float64

// unixEpochJD is the Julian Day of 1970-01-01T00:00:00Z.
const unixEpochJD = 2440587.5

// JulianDayFromTime converts a time instant to a Julian Day.
// The instant is converted to UTC first, so the location of t only
// affects how the caller reads it, not the result.
func JulianDayFromTime(t time.Time) JulianDay {
	t = t.UTC()
	year := t.Year()
	month := int(t.Month())
	day := t.Day()

	a := (14 - month) / 12
	y := year + 4800 - a
	m := month + 12*a - 3

	jdn := day + (153*m+2)/5 + 365*y + y/4 - y/100 + y/400 - 32045

	secs := float64(t.Hour()*3600+t.Minute()*60+t.Second()) + float64(t.Nanosecond())/1e9
	return JulianDay(float64(jdn) - 0.5 + secs/86400)
}

// Time converts the Julian Day back to a UTC instant, rounded to the microsecond.
func (jd JulianDay) Time() time.Time {
	shifted := float64(jd) + 0.5
	jdn := math.Floor(shifted)
	frac := shifted - jdn

	a := int(jdn) + 32044
	b := (4*a + 3) / 146097
	c := a - (146097*b)/4
	d := (4*c + 3) / 1461
	e := c - (1461*d)/4
	m := (5*e + 2) / 153

	day := e - (153*m+2)/5 + 1
	month := time.Month(m + 3 - 12*(m/10))
	year := 100*b + d - 4800 + m/10

	micros := math.Round(frac * 86400e6)
	midnight := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return midnight.Add(time.Duration(micros) * time.Microsecond)
}

// Add returns the Julian Day shifted by the given number of days.
func (jd JulianDay) Add(days float64) JulianDay {
	return jd + JulianDay(days)
}

// Float returns the raw day count.
func (jd JulianDay) Float() float64 {
	return float64(jd)
}

// CivilTime is a broken-down local calendar date and clock time.
// No field is range checked; callers validate upstream.
type CivilTime struct {
	Year   int
	Month  int
	Day    int
	Hour   int
	Minute int
	Second float64
}

// CivilTimeFromTime splits t in its own location into calendar components.
func CivilTimeFromTime(t time.Time) CivilTime {
	return CivilTime{
		Year:   t.Year(),
		Month:  int(t.Month()),
		Day:    t.Day(),
		Hour:   t.Hour(),
		Minute: t.Minute(),
		Second: float64(t.Second()) + float64(t.Nanosecond())/1e9,
	}
}

// Hours returns the clock time as decimal hours.
func (c CivilTime) Hours() float64 {
	return float64(c.Hour) + float64(c.Minute)/60 + c.Second/3600
}

// TZOffsetHours returns the UTC offset of t's location at t, in hours.
func TZOffsetHours(t time.Time) float64 {
	_, offset := t.Zone()
	return float64(offset) / 3600
}

// HMS is a duration or clock value split into hours, minutes and seconds.
// Seconds keep their fractional part.
type HMS struct {
	Hours   int     `json:"hours"`
	Minutes int     `json:"minutes"`
	Seconds float64 `json:"seconds"`
}

// HMSFromHours splits decimal hours into an HMS value.
func HMSFromHours(h float64) HMS {
	whole := math.Floor(h)
	rest := (h - whole) * 60
	minutes := math.Floor(rest)
	return HMS{
		Hours:   int(whole),
		Minutes: int(minutes),
		Seconds: (rest - minutes) * 60,
	}
}

// DecimalHours joins the components back into decimal hours.
func (v HMS) DecimalHours() float64 {
	return float64(v.Hours) + float64(v.Minutes)/60 + v.Seconds/3600
}
