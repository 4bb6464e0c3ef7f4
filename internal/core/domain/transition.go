package domain

import "time"

// EventType identifies a rise/set/transit event.
type EventType string

// Supported transition events.
const (
	// EventRise is the body's upper limb or centre crossing the eastern horizon.
	EventRise EventType = "rise"

	// EventSet is the crossing of the western horizon.
	EventSet EventType = "set"

	// EventMeridianTransit is the upper culmination (MC).
	EventMeridianTransit EventType = "mc"

	// EventAntimeridianTransit is the lower culmination (IC).
	EventAntimeridianTransit EventType = "ic"
)

// IsValid returns true if the event type is recognised.
func (e EventType) IsValid() bool {
	switch e {
	case EventRise, EventSet, EventMeridianTransit, EventAntimeridianTransit:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (e EventType) String() string {
	return string(e)
}

// RiseSetFlags tunes how the ephemeris decides when a body is on the horizon.
type RiseSetFlags struct {
	// DiscCenter uses the centre of the disc instead of the upper limb.
	DiscCenter bool `json:"disc_center"`

	// NoRefraction ignores atmospheric refraction at the horizon.
	NoRefraction bool `json:"no_refraction"`
}

// TransitionEvent is one rise/set/transit result.
type TransitionEvent struct {
	// Type is the event kind.
	Type EventType `json:"type"`

	// JD is the event instant. Meaningless when Valid is false.
	JD JulianDay `json:"jd"`

	// Time is the event instant as a calendar date-time.
	Time time.Time `json:"time"`

	// After reports whether the reference moment falls after this event.
	After bool `json:"after"`

	// Valid is false when the ephemeris found no such event, e.g. a circumpolar body.
	Valid bool `json:"valid"`

	// Inconsistent marks an event the ephemeris placed before its search
	// start. Such an event is never valid.
	Inconsistent bool `json:"inconsistent,omitempty"`
}

// NewTransitionEvent builds a valid event relative to a reference moment.
func NewTransitionEvent(eventType EventType, jd, reference JulianDay) TransitionEvent {
	return TransitionEvent{
		Type:  eventType,
		JD:    jd,
		Time:  jd.Time(),
		After: reference > jd,
		Valid: true,
	}
}

// MissingTransition builds an invalid event placeholder.
func MissingTransition(eventType EventType) TransitionEvent {
	return TransitionEvent{Type: eventType}
}

// InconsistentTransition builds an invalid event that the ephemeris
// reported at an impossible instant.
func InconsistentTransition(eventType EventType, jd JulianDay) TransitionEvent {
	return TransitionEvent{
		Type:         eventType,
		JD:           jd,
		Time:         jd.Time(),
		Inconsistent: true,
	}
}

// TransitionTimes are the Sun's horizon events bracketing a reference moment.
// Captured once from the ephemeris and never modified.
type TransitionTimes struct {
	Rise     TransitionEvent  `json:"rise"`
	Set      TransitionEvent  `json:"set"`
	PrevRise TransitionEvent  `json:"prev_rise"`
	PrevSet  TransitionEvent  `json:"prev_set"`
	NextRise TransitionEvent  `json:"next_rise"`
	MC       *TransitionEvent `json:"mc,omitempty"`
	IC       *TransitionEvent `json:"ic,omitempty"`
}

// Complete reports whether every event needed for a Jyotish day is valid.
func (t TransitionTimes) Complete() bool {
	return t.Rise.Valid && t.Set.Valid && t.PrevRise.Valid && t.PrevSet.Valid && t.NextRise.Valid
}

// Missing lists the required events the ephemeris did not find.
func (t TransitionTimes) Missing() []string {
	return t.names(func(ev TransitionEvent) bool { return !ev.Valid && !ev.Inconsistent })
}

// Inconsistent lists the required events the ephemeris placed at an
// impossible instant.
func (t TransitionTimes) Inconsistent() []string {
	return t.names(func(ev TransitionEvent) bool { return ev.Inconsistent })
}

func (t TransitionTimes) names(match func(TransitionEvent) bool) []string {
	var out []string
	named := []struct {
		name string
		ev   TransitionEvent
	}{
		{"rise", t.Rise},
		{"set", t.Set},
		{"prev_rise", t.PrevRise},
		{"prev_set", t.PrevSet},
		{"next_rise", t.NextRise},
	}
	for _, n := range named {
		if match(n.ev) {
			out = append(out, n.name)
		}
	}
	return out
}
