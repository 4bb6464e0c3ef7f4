package domain

import "math"

// BodyKey is the two-letter code identifying a chart body.
type BodyKey string

// Chart bodies known to the default reference tables.
const (
	BodySun       BodyKey = "su"
	BodyMoon      BodyKey = "mo"
	BodyMars      BodyKey = "ma"
	BodyMercury   BodyKey = "me"
	BodyJupiter   BodyKey = "ju"
	BodyVenus     BodyKey = "ve"
	BodySaturn    BodyKey = "sa"
	BodyRahu      BodyKey = "ra"
	BodyKetu      BodyKey = "ke"
	BodyAscendant BodyKey = "as"
)

// ClassicalPlanets are the seven visible planets that carry full
// friendship and dignity tables.
var ClassicalPlanets = []BodyKey{
	BodySun, BodyMoon, BodyMars, BodyMercury, BodyJupiter, BodyVenus, BodySaturn,
}

// Grahas are the nine bodies read from the ephemeris: the classical
// planets and the lunar nodes.
var Grahas = []BodyKey{
	BodySun, BodyMoon, BodyMars, BodyMercury, BodyJupiter, BodyVenus, BodySaturn,
	BodyRahu, BodyKetu,
}

// String returns the string representation.
func (k BodyKey) String() string {
	return string(k)
}

// IsValid returns true if the key is a two-letter lower-case code.
func (k BodyKey) IsValid() bool {
	if len(k) != 2 {
		return false
	}
	for _, r := range k {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}

// SignCount is the number of zodiac signs.
const SignCount = 12

// SignSpan is the width of one sign in degrees.
const SignSpan = 30.0

// NormalizeDegrees wraps an angle into [0,360).
func NormalizeDegrees(deg float64) float64 {
	v := math.Mod(deg, 360)
	if v < 0 {
		v += 360
	}
	if v >= 360 {
		v = 0
	}
	return v
}

// SignOf returns the 1-based sign for a longitude, ⌈lon/30⌉.
// A longitude of exactly 0 belongs to sign 1.
func SignOf(longitude float64) int {
	lon := NormalizeDegrees(longitude)
	sign := int(math.Ceil(lon / SignSpan))
	if sign < 1 {
		sign = 1
	}
	return sign
}

// DegreeInSign returns the offset of a longitude within the sign SignOf
// assigns it. A longitude on a sign boundary is the last degree of the
// earlier sign, so the result is in (0,30], or 0 at longitude 0.
func DegreeInSign(longitude float64) float64 {
	lon := NormalizeDegrees(longitude)
	return lon - float64(SignOf(lon)-1)*SignSpan
}

// BodyPosition is a body's sidereal position at one moment.
// Positions are produced once per body per chart and never mutated.
type BodyPosition struct {
	// Key identifies the body.
	Key BodyKey `json:"key"`

	// Longitude is the sidereal ecliptic longitude in [0,360).
	Longitude float64 `json:"longitude"`

	// Latitude is the ecliptic latitude in degrees.
	Latitude float64 `json:"latitude"`

	// Speed is the daily motion in longitude, negative when retrograde.
	Speed float64 `json:"speed"`
}

// Sign returns the 1-based zodiac sign of the position.
func (p BodyPosition) Sign() int {
	return SignOf(p.Longitude)
}

// Degree returns the degree within the sign.
func (p BodyPosition) Degree() float64 {
	return DegreeInSign(p.Longitude)
}

// Retrograde reports whether the body moves backwards in longitude.
func (p BodyPosition) Retrograde() bool {
	return p.Speed < 0
}

// HouseFrom returns the inclusive house count from one sign to another,
// wrapping mod 12. A sign counted from itself is house 1.
func HouseFrom(fromSign, toSign int) int {
	return ((toSign-fromSign)%SignCount+SignCount)%SignCount + 1
}
