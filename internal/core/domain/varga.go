package domain

// Tradition names a school that applies a set of divisional charts.
type Tradition string

// Known traditions used to flag scheme applicability.
const (
	TraditionParashara Tradition = "parashara"
	TraditionJaimini   Tradition = "jaimini"
	TraditionTajika    Tradition = "tajika"
)

// IsValid returns true if the tradition is recognised.
func (t Tradition) IsValid() bool {
	switch t {
	case TraditionParashara, TraditionJaimini, TraditionTajika:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (t Tradition) String() string {
	return string(t)
}

// DivisionalScheme is one configured divisional chart.
type DivisionalScheme struct {
	// Key is the short identifier, e.g. "D9".
	Key string `json:"key" toml:"key" yaml:"key"`

	// Name is the traditional name, e.g. "navamsha".
	Name string `json:"name" toml:"name" yaml:"name"`

	// Divisor is the harmonic N applied to the longitude.
	Divisor int `json:"divisor" toml:"divisor" yaml:"divisor"`

	// Traditions lists the schools that use this chart.
	Traditions []Tradition `json:"traditions,omitempty" toml:"traditions" yaml:"traditions"`
}

// AppliesTo reports whether the scheme is flagged for a tradition.
// A scheme without flags applies everywhere.
func (s DivisionalScheme) AppliesTo(t Tradition) bool {
	if len(s.Traditions) == 0 {
		return true
	}
	for _, tr := range s.Traditions {
		if tr == t {
			return true
		}
	}
	return false
}

// VargaValue is a body's longitude in one divisional chart.
type VargaValue struct {
	Scheme  string  `json:"scheme"`
	Divisor int     `json:"divisor"`
	Value   float64 `json:"value"`
	Sign    int     `json:"sign"`
}
