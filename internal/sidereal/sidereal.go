package sidereal

import (
	"math"

	"github.com/custodia-labs/jyotish/internal/core/domain"
)

// SiderealSolarRatio is the number of sidereal seconds in one mean solar second.
const SiderealSolarRatio = 1.002737909350795

// Newcomb polynomial for Greenwich mean sidereal time at 0h UT, in seconds.
const (
	gmstA = 23925.836
	gmstB = 8640184.542
	gmstC = 0.0929
)

const secondsPerDay = 86400.0

// Input is a civil moment and place.
type Input struct {
	// Civil is the local calendar date and clock time.
	Civil domain.CivilTime

	// Longitude is the geographic longitude in degrees, east positive.
	Longitude float64

	// TZOffset is the civil time zone offset from UT in hours.
	TZOffset float64

	// LeapRule selects the leap-year rule for the day count.
	// An empty rule means LeapRuleJulian.
	LeapRule domain.LeapRule
}

// Result holds local sidereal time and the quantities it was derived from.
type Result struct {
	// MeanHours is the local mean sidereal time in [0,24).
	MeanHours float64

	// ApparentHours is the local apparent sidereal time in [0,24).
	ApparentHours float64

	// LongPeriod and ShortPeriod are the nutation parts in arcseconds.
	LongPeriod  float64
	ShortPeriod float64

	// Obliquity is the mean obliquity in degrees.
	Obliquity float64

	// T is the moment in Julian centuries from J1900.0.
	T float64
}

// Compute evaluates mean and apparent local sidereal time.
func Compute(in Input) Result {
	rule := in.LeapRule
	if rule == "" {
		rule = domain.LeapRuleJulian
	}

	t0 := CenturiesAtMidnight(in.Civil, rule)
	utHours := in.Civil.Hours() - in.TZOffset
	t := t0 + utHours/24/36525

	gmst0 := wrap(gmstA+gmstB*t0+gmstC*t0*t0, secondsPerDay)

	pl, ps := Nutation(t)
	obliquity := MeanObliquity(t)
	// equation of the equinoxes in seconds of time
	eqeq := (pl + ps) / 15 * math.Cos(radians(obliquity))

	mean := gmst0/3600 + utHours*SiderealSolarRatio + in.Longitude/15
	apparent := mean + eqeq/3600

	return Result{
		MeanHours:     wrap(mean, 24),
		ApparentHours: wrap(apparent, 24),
		LongPeriod:    pl,
		ShortPeriod:   ps,
		Obliquity:     obliquity,
		T:             t,
	}
}

// ToDomain converts a result into the chart representation.
func (r Result) ToDomain() domain.SiderealTime {
	return domain.SiderealTime{
		Mean:              domain.HMSFromHours(r.MeanHours),
		Apparent:          domain.HMSFromHours(r.ApparentHours),
		NutationLongitude: r.LongPeriod + r.ShortPeriod,
		Obliquity:         r.Obliquity,
	}
}

// CenturiesAtMidnight returns Julian centuries from J1900.0 (1899-12-31 12h)
// to 0h of the civil date.
func CenturiesAtMidnight(c domain.CivilTime, rule domain.LeapRule) float64 {
	days := DaysSince1900(c.Year, c.Month, c.Day, rule)
	return (days + 0.5) / 36525
}

var cumulativeDays = [12]int{0, 31, 59, 90, 120, 151, 181, 212, 243, 273, 304, 334}

// DaysSince1900 counts days from 1900-01-01 to the given date.
// Months outside 1..12 roll into neighbouring years; days are not clamped.
func DaysSince1900(year, month, day int, rule domain.LeapRule) float64 {
	year += floorDiv(month-1, 12)
	month = floorMod(month-1, 12) + 1

	days := 365*(year-1900) + leapsBefore(year, rule) - leapsBefore(1900, rule)
	days += cumulativeDays[month-1]
	if month > 2 && rule.IsLeap(year) {
		days++
	}
	return float64(days + day - 1)
}

// leapsBefore counts leap years in [0, year) under the rule.
func leapsBefore(year int, rule domain.LeapRule) int {
	y := year - 1
	n := floorDiv(y, 4) + 1 // year 0 is a leap year under both rules
	if rule == domain.LeapRuleGregorian {
		n -= floorDiv(y, 100) + 1
		n += floorDiv(y, 400) + 1
	}
	return n
}

// AscendantTropical returns the tropical ecliptic longitude rising on the
// eastern horizon for a local sidereal time, obliquity and latitude.
func AscendantTropical(lstHours, obliquityDeg, latitudeDeg float64) float64 {
	ramc := radians(lstHours * 15)
	eps := radians(obliquityDeg)
	phi := radians(latitudeDeg)
	asc := math.Atan2(math.Cos(ramc), -(math.Sin(ramc)*math.Cos(eps) + math.Tan(phi)*math.Sin(eps)))
	return domain.NormalizeDegrees(asc * 180 / math.Pi)
}

func wrap(v, period float64) float64 {
	r := math.Mod(v, period)
	if r < 0 {
		r += period
	}
	if r >= period {
		r = 0
	}
	return r
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func floorMod(a, b int) int {
	return a - floorDiv(a, b)*b
}
