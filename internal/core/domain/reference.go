package domain

// Nakshatra is one lunar mansion.
type Nakshatra struct {
	Index int     `json:"index" toml:"index" yaml:"index"`
	Name  string  `json:"name" toml:"name" yaml:"name"`
	Lord  BodyKey `json:"lord" toml:"lord" yaml:"lord"`
	Padas int     `json:"padas" toml:"padas" yaml:"padas"`
}

// NakshatraSpan is the width of one of 27 nakshatras in degrees (13°20′).
const NakshatraSpan = 360.0 / 27

// ReferenceData holds every static table used by a chart computation.
// It is loaded once, validated, and then only read.
type ReferenceData struct {
	// Bodies maps body keys to their dignity and friendship tables.
	Bodies map[BodyKey]BodyAttributes `json:"bodies"`

	// SignRulers maps signs 1..12 to their ruling body.
	SignRulers map[int]BodyKey `json:"sign_rulers"`

	// Schemes lists the divisional charts in display order.
	Schemes []DivisionalScheme `json:"schemes"`

	// DashaSystems maps keys to dasha system tables.
	DashaSystems map[string]DashaSystem `json:"dasha_systems"`

	// Nakshatras lists the 27 lunar mansions in order.
	Nakshatras []Nakshatra `json:"nakshatras"`

	// Compound is the five-fold relationship table.
	Compound CompoundTable `json:"compound"`

	// TimeUnits is the Indian time subdivision chain.
	TimeUnits TimeUnitChain `json:"time_units"`
}

// Body returns the attributes for a body key.
func (r *ReferenceData) Body(key BodyKey) (BodyAttributes, bool) {
	attrs, ok := r.Bodies[key]
	return attrs, ok
}

// Ruler returns the lord of a 1-based sign.
func (r *ReferenceData) Ruler(sign int) (BodyKey, bool) {
	key, ok := r.SignRulers[sign]
	return key, ok
}

// DashaSystem returns a dasha system by key.
func (r *ReferenceData) DashaSystem(key string) (DashaSystem, bool) {
	sys, ok := r.DashaSystems[key]
	return sys, ok
}

// Scheme returns a divisional scheme by key.
func (r *ReferenceData) Scheme(key string) (DivisionalScheme, bool) {
	for _, s := range r.Schemes {
		if s.Key == key {
			return s, true
		}
	}
	return DivisionalScheme{}, false
}

// Reference table sections addressable by name.
const (
	SectionBodies     = "bodies"
	SectionSigns      = "signs"
	SectionSchemes    = "schemes"
	SectionDasha      = "dasha"
	SectionNakshatras = "nakshatras"
	SectionCompound   = "compound"
	SectionTimeUnits  = "time_units"
)

// ReferenceSections lists the section names in display order.
var ReferenceSections = []string{
	SectionBodies, SectionSigns, SectionSchemes, SectionDasha,
	SectionNakshatras, SectionCompound, SectionTimeUnits,
}

// Section returns one table by section name.
func (r *ReferenceData) Section(name string) (any, bool) {
	switch name {
	case SectionBodies:
		return r.Bodies, true
	case SectionSigns:
		return r.SignRulers, true
	case SectionSchemes:
		return r.Schemes, true
	case SectionDasha:
		return r.DashaSystems, true
	case SectionNakshatras:
		return r.Nakshatras, true
	case SectionCompound:
		return r.Compound, true
	case SectionTimeUnits:
		return r.TimeUnits, true
	default:
		return nil, false
	}
}
