// Package analytic provides a built-in low-precision ephemeris.
//
// Sun and Moon use truncated Meeus series, the planets use mean Keplerian
// elements, and the lunar nodes are mean nodes. Accuracy is of the order
// of arcminutes for the Sun, a few tenths of a degree for the Moon and
// better than a degree for the planets between 1800 and 2050, enough for
// sign, nakshatra and sunrise work but not for precise timing.
package analytic

import (
	"context"
	"fmt"
	"math"

	"github.com/custodia-labs/jyotish/internal/core/domain"
	"github.com/custodia-labs/jyotish/internal/core/ports/driven"
)

// Ensure Ephemeris implements the interface.
var _ driven.Ephemeris = (*Ephemeris)(nil)

// j2000 is the Julian Day of 2000-01-01 12:00 TT.
const j2000 = 2451545.0

// Lahiri ayanamsa as a quadratic in Julian centuries from J2000.
const (
	lahiriJ2000 = 23.85305
	lahiriRate  = 1.396971
	lahiriAccel = 0.000308
)

// Ephemeris computes positions and horizon events without external data.
type Ephemeris struct{}

// New creates the analytic ephemeris.
func New() *Ephemeris {
	return &Ephemeris{}
}

// Name identifies the backend.
func (e *Ephemeris) Name() string {
	return "analytic"
}

// Close releases resources.
func (e *Ephemeris) Close() error {
	return nil
}

// BodyPosition returns the tropical ecliptic position of a body.
// Speed is degrees per day from a central difference.
func (e *Ephemeris) BodyPosition(ctx context.Context, jd domain.JulianDay, body domain.BodyKey) (domain.BodyPosition, error) {
	if err := ctx.Err(); err != nil {
		return domain.BodyPosition{}, err
	}
	lon, lat, ok := ecliptic(float64(jd), body)
	if !ok {
		return domain.BodyPosition{}, fmt.Errorf("%w: analytic model has no %s", domain.ErrEphemerisUnavailable, body)
	}
	before, _, _ := ecliptic(float64(jd)-0.5, body)
	after, _, _ := ecliptic(float64(jd)+0.5, body)

	return domain.BodyPosition{
		Key:       body,
		Longitude: lon,
		Latitude:  lat,
		Speed:     signedDelta(after - before),
	}, nil
}

// Ayanamsa returns the Lahiri ayanamsa in degrees.
func (e *Ephemeris) Ayanamsa(ctx context.Context, jd domain.JulianDay) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	t := centuries(float64(jd))
	return lahiriJ2000 + lahiriRate*t + lahiriAccel*t*t, nil
}

// ecliptic dispatches to the model for a body.
func ecliptic(jd float64, body domain.BodyKey) (lon, lat float64, ok bool) {
	t := centuries(jd)
	switch body {
	case domain.BodySun:
		return sunLongitude(t), 0, true
	case domain.BodyMoon:
		lon, lat = moonPosition(t)
		return lon, lat, true
	case domain.BodyRahu:
		return meanNode(t), 0, true
	case domain.BodyKetu:
		return domain.NormalizeDegrees(meanNode(t) + 180), 0, true
	}
	if _, known := planets[body]; known {
		lon, lat = planetPosition(body, t)
		return lon, lat, true
	}
	return 0, 0, false
}

func centuries(jd float64) float64 {
	return (jd - j2000) / 36525
}

// signedDelta wraps an angle difference into [-180,180).
func signedDelta(d float64) float64 {
	return math.Mod(math.Mod(d+180, 360)+360, 360) - 180
}

func rad(deg float64) float64 { return deg * math.Pi / 180 }

func deg(rad float64) float64 { return rad * 180 / math.Pi }

func sinD(d float64) float64 { return math.Sin(rad(d)) }

func cosD(d float64) float64 { return math.Cos(rad(d)) }
