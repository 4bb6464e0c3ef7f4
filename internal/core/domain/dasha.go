package domain

// OrderingMode selects how a dasha system picks and walks its entries.
type OrderingMode string

// Dasha ordering modes.
const (
	// OrderRepeat cycles the sequence modulo its length from the entry
	// matched by the birth nakshatra.
	OrderRepeat OrderingMode = "repeat"

	// OrderExact indexes a pre-expanded sequence directly by nakshatra.
	OrderExact OrderingMode = "exact"

	// OrderReverse indexes like OrderExact but walks the sequence backwards.
	OrderReverse OrderingMode = "reverse"

	// OrderRange matches the entry whose nakshatra range holds the birth nakshatra.
	OrderRange OrderingMode = "range"
)

// IsValid returns true if the mode is recognised.
func (m OrderingMode) IsValid() bool {
	switch m {
	case OrderRepeat, OrderExact, OrderReverse, OrderRange:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (m OrderingMode) String() string {
	return string(m)
}

// DashaEntry is one lord in a dasha system table.
// From and To are only used by range-mode systems and are inclusive
// 0-based nakshatra indexes; a range may wrap past the last index.
type DashaEntry struct {
	Body  BodyKey `json:"body" toml:"body" yaml:"body"`
	Years float64 `json:"years" toml:"years" yaml:"years"`
	From  int     `json:"from,omitempty" toml:"from" yaml:"from"`
	To    int     `json:"to,omitempty" toml:"to" yaml:"to"`
}

// DashaSystem is the static definition of one planetary-period system.
type DashaSystem struct {
	// Key is the identifier, e.g. "vimshottari".
	Key string `json:"key" toml:"key" yaml:"key"`

	// Name is a display name.
	Name string `json:"name" toml:"name" yaml:"name"`

	// TotalYears is the full cycle covered by one sequence.
	TotalYears float64 `json:"total_years" toml:"total_years" yaml:"total_years"`

	// Mode selects the ordering algorithm.
	Mode OrderingMode `json:"mode" toml:"mode" yaml:"mode"`

	// PeriodLength is the number of entries per full cycle before repetition.
	PeriodLength int `json:"period_length" toml:"period_length" yaml:"period_length"`

	// NakshatraCount is 27, or 28 for systems counting Abhijit.
	NakshatraCount int `json:"nakshatra_count" toml:"nakshatra_count" yaml:"nakshatra_count"`

	// StartNakshatra is the 0-based nakshatra mapped to the first entry
	// in repeat mode.
	StartNakshatra int `json:"start_nakshatra" toml:"start_nakshatra" yaml:"start_nakshatra"`

	// Sequence lists the lords in cycle order.
	Sequence []DashaEntry `json:"sequence" toml:"sequence" yaml:"sequence"`
}

// CycleYears is the sum of years over one period length of the sequence.
func (s DashaSystem) CycleYears() float64 {
	n := s.PeriodLength
	if n <= 0 || n > len(s.Sequence) {
		n = len(s.Sequence)
	}
	var total float64
	for _, e := range s.Sequence[:n] {
		total += e.Years
	}
	return total
}

// DashaPeriod is one computed ruling period.
// Periods at one level are contiguous and ordered by start.
type DashaPeriod struct {
	Body    BodyKey       `json:"body"`
	StartJD JulianDay     `json:"start_jd"`
	EndJD   JulianDay     `json:"end_jd"`
	Depth   int           `json:"depth"`
	Sub     []DashaPeriod `json:"sub,omitempty"`
}

// Days returns the period length in days.
func (p DashaPeriod) Days() float64 {
	return float64(p.EndJD - p.StartJD)
}

// Contains reports whether a moment falls inside the period, start inclusive.
func (p DashaPeriod) Contains(jd JulianDay) bool {
	return jd >= p.StartJD && jd < p.EndJD
}

// Dasha depth names.
const (
	DepthMaha       = 1
	DepthAntar      = 2
	DepthPratyantar = 3
)

// ActivePath returns the chain of periods containing jd, outermost first.
func ActivePath(periods []DashaPeriod, jd JulianDay) []DashaPeriod {
	var path []DashaPeriod
	level := periods
	for {
		found := false
		for _, p := range level {
			if p.Contains(jd) {
				path = append(path, p)
				level = p.Sub
				found = true
				break
			}
		}
		if !found || len(level) == 0 {
			return path
		}
	}
}
