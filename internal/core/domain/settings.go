package domain

const unknownDescription = "Unknown"

// LeapRule selects the leap-year rule used by the sidereal-time day count.
type LeapRule string

// Available leap rules.
const (
	// LeapRuleJulian treats every year divisible by 4 as a leap year.
	// It reproduces historical tables and diverges across 1900 and 2100.
	LeapRuleJulian LeapRule = "julian"

	// LeapRuleGregorian applies the full century rule.
	LeapRuleGregorian LeapRule = "gregorian"
)

// IsValid returns true if the leap rule is recognised.
func (r LeapRule) IsValid() bool {
	return r == LeapRuleJulian || r == LeapRuleGregorian
}

// IsLeap reports whether a year is a leap year under the rule.
func (r LeapRule) IsLeap(year int) bool {
	if year%4 != 0 {
		return false
	}
	if r == LeapRuleGregorian && year%100 == 0 {
		return year%400 == 0
	}
	return true
}

// String returns the string representation.
func (r LeapRule) String() string {
	return string(r)
}

// Description returns a human-readable description of the rule.
func (r LeapRule) Description() string {
	switch r {
	case LeapRuleJulian:
		return "Divisible by 4 (compatible)"
	case LeapRuleGregorian:
		return "Gregorian century rule"
	default:
		return unknownDescription
	}
}

// EphemerisBackend identifies the ephemeris implementation.
type EphemerisBackend string

// Available ephemeris backends.
const (
	// EphemerisAnalytic is the built-in low-precision model.
	EphemerisAnalytic EphemerisBackend = "analytic"

	// EphemerisHTTP is a remote ephemeris service.
	EphemerisHTTP EphemerisBackend = "http"
)

// IsValid returns true if the backend is recognised.
func (b EphemerisBackend) IsValid() bool {
	return b == EphemerisAnalytic || b == EphemerisHTTP
}

// String returns the string representation.
func (b EphemerisBackend) String() string {
	return string(b)
}

// Description returns a human-readable description of the backend.
func (b EphemerisBackend) Description() string {
	switch b {
	case EphemerisAnalytic:
		return "Analytic (built-in, low precision)"
	case EphemerisHTTP:
		return "HTTP (remote service)"
	default:
		return unknownDescription
	}
}

// Year lengths in days accepted for dasha arithmetic.
const (
	YearLengthGregorian = 365.2425
	YearLengthSidereal  = 365.256363
	YearLengthSavana    = 360.0
)

// CalculationSettings holds the arithmetic options.
type CalculationSettings struct {
	// LeapRule is the sidereal-time day count rule.
	LeapRule LeapRule

	// Tradition filters which divisional charts are produced.
	Tradition Tradition

	// ExaltationOrb limits exaltation to degrees around the exact point; 0 uses the whole sign.
	ExaltationOrb float64
}

// DashaSettings holds the dasha options.
type DashaSettings struct {
	// System is the default dasha system key.
	System string

	// Depth is the number of nested levels, 1 = major periods only.
	Depth int

	// YearLength is the number of days in one dasha year.
	YearLength float64
}

// EphemerisSettings holds the ephemeris backend configuration.
type EphemerisSettings struct {
	// Backend selects the implementation.
	Backend EphemerisBackend

	// BaseURL is the endpoint for the HTTP backend.
	BaseURL string

	// RequestsPerSecond throttles the HTTP backend.
	RequestsPerSecond float64

	// Flags tune rise/set detection.
	Flags RiseSetFlags
}

// IsConfigured returns true if the backend can be used.
func (e EphemerisSettings) IsConfigured() bool {
	if !e.Backend.IsValid() {
		return false
	}
	if e.Backend == EphemerisHTTP && e.BaseURL == "" {
		return false
	}
	return true
}

// ChartSettings holds the full application configuration.
type ChartSettings struct {
	Calculation CalculationSettings
	Dasha       DashaSettings
	Ephemeris   EphemerisSettings
}

// DefaultChartSettings returns sensible defaults.
func DefaultChartSettings() ChartSettings {
	return ChartSettings{
		Calculation: CalculationSettings{
			LeapRule:  LeapRuleJulian,
			Tradition: TraditionParashara,
		},
		Dasha: DashaSettings{
			System:     "vimshottari",
			Depth:      2,
			YearLength: YearLengthGregorian,
		},
		Ephemeris: EphemerisSettings{
			Backend:           EphemerisAnalytic,
			RequestsPerSecond: 10,
		},
	}
}
