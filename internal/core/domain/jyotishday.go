package domain

// JyotishDay is the sunrise-to-sunrise day containing a reference moment.
// It is derived fresh for every query and never cached.
type JyotishDay struct {
	// ReferenceJD is the moment the day was computed for.
	ReferenceJD JulianDay `json:"reference_jd"`

	// Transitions are the Sun events the day was derived from.
	Transitions TransitionTimes `json:"transitions"`

	// DayBefore is true when the moment precedes today's sunrise,
	// so it belongs to the day that started at yesterday's sunrise.
	DayBefore bool `json:"day_before"`

	// AfterSunset is true when the moment follows today's sunset.
	AfterSunset bool `json:"after_sunset"`

	// DayStart is the sunrise that opened this Jyotish day.
	DayStart JulianDay `json:"day_start"`

	// DayLength is the sunrise-to-sunrise length in days.
	DayLength float64 `json:"day_length"`

	// Progress is the elapsed fraction of the day, in [0,1).
	Progress float64 `json:"progress"`

	// IsDayTime is true between sunrise and sunset.
	IsDayTime bool `json:"is_day_time"`
}

// TimeUnit is one link in a chain of traditional time subdivisions.
// A unit with an empty Parent divides the whole day.
type TimeUnit struct {
	// Key names the unit, e.g. "ghati".
	Key string `json:"key" toml:"key" yaml:"key"`

	// Parent is the unit this one subdivides; empty means the whole day.
	Parent string `json:"parent,omitempty" toml:"parent" yaml:"parent"`

	// Divisor is how many of this unit make up one parent unit.
	Divisor float64 `json:"divisor" toml:"divisor" yaml:"divisor"`
}

// TimeUnitChain is an ordered list of units. Parents appear before children.
type TimeUnitChain []TimeUnit

// Find returns the unit with the given key.
func (c TimeUnitChain) Find(key string) (TimeUnit, bool) {
	for _, u := range c {
		if u.Key == key {
			return u, true
		}
	}
	return TimeUnit{}, false
}

// DefaultTimeUnits returns the muhurta/ghati/vighati/lipta chain.
// 1 day = 30 muhurta = 60 ghati; 1 ghati = 60 vighati; 1 vighati = 60 lipta.
func DefaultTimeUnits() TimeUnitChain {
	return TimeUnitChain{
		{Key: "muhurta", Divisor: 30},
		{Key: "ghati", Divisor: 60},
		{Key: "vighati", Parent: "ghati", Divisor: 60},
		{Key: "lipta", Parent: "vighati", Divisor: 60},
	}
}

// TimeUnitValue is a computed subdivision value.
type TimeUnitValue struct {
	// Key names the unit.
	Key string `json:"key"`

	// Value is the continuous count, including the fractional part.
	Value float64 `json:"value"`

	// Whole is the completed count, floor(Value).
	Whole int `json:"whole"`
}

// IndianTime is the set of traditional subdivisions for a day progress.
type IndianTime struct {
	// Progress is the day fraction the units were derived from.
	Progress float64 `json:"progress"`

	// Units holds one value per chain entry, in chain order.
	Units []TimeUnitValue `json:"units"`
}

// Unit returns the value for a unit key.
func (t IndianTime) Unit(key string) (TimeUnitValue, bool) {
	for _, u := range t.Units {
		if u.Key == key {
			return u, true
		}
	}
	return TimeUnitValue{}, false
}
