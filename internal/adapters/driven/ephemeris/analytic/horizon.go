package analytic

import (
	"context"
	"fmt"
	"math"

	"github.com/custodia-labs/jyotish/internal/core/domain"
)

// Horizon search parameters.
const (
	searchSpan  = 1.5         // days scanned after the start
	searchStep  = 10.0 / 1440 // ten minutes
	bisectSteps = 40
)

// Standard altitude corrections in degrees.
const (
	refraction      = 0.5667
	sunSemiDiam     = 0.2666
	moonSemiDiam    = 0.2725
	moonParallax    = 0.9507
	dipPerRootMetre = 0.0353
)

// RiseSetTransit finds the first event after jd by scanning in ten minute
// steps and bisecting the bracketing interval.
func (e *Ephemeris) RiseSetTransit(
	ctx context.Context,
	jd domain.JulianDay,
	geo domain.GeoPosition,
	body domain.BodyKey,
	event domain.EventType,
	flags domain.RiseSetFlags,
) (domain.JulianDay, error) {
	if err := geo.Validate(); err != nil {
		return 0, err
	}
	if !event.IsValid() {
		return 0, fmt.Errorf("%w: unknown event %q", domain.ErrInvalidInput, event)
	}
	if _, _, ok := ecliptic(float64(jd), body); !ok {
		return 0, fmt.Errorf("%w: analytic model has no %s", domain.ErrEphemerisUnavailable, body)
	}

	f := eventFunc(geo, body, event, flags)
	start := float64(jd)
	prev := f(start)
	for x := start + searchStep; x <= start+searchSpan+1e-9; x += searchStep {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		cur := f(x)
		if prev < 0 && cur >= 0 {
			return domain.JulianDay(bisect(f, x-searchStep, x)), nil
		}
		prev = cur
	}
	return 0, fmt.Errorf("%w: no %s of %s within %.1f days", domain.ErrNoTransition, event, body, searchSpan)
}

// eventFunc returns a function that crosses zero upwards at the event.
func eventFunc(geo domain.GeoPosition, body domain.BodyKey, event domain.EventType, flags domain.RiseSetFlags) func(float64) float64 {
	h0 := standardAltitude(body, geo.Altitude, flags)
	return func(jd float64) float64 {
		ha, dec := hourAngle(jd, geo.Longitude, body)
		switch event {
		case domain.EventRise:
			return altitude(ha, dec, geo.Latitude) - h0
		case domain.EventSet:
			return h0 - altitude(ha, dec, geo.Latitude)
		case domain.EventMeridianTransit:
			return signedDelta(ha)
		default:
			return signedDelta(ha - 180)
		}
	}
}

// standardAltitude is the geometric altitude of the body centre at the
// moment of apparent rise or set.
func standardAltitude(body domain.BodyKey, metres float64, flags domain.RiseSetFlags) float64 {
	var h0 float64
	if !flags.NoRefraction {
		h0 -= refraction
	}
	if !flags.DiscCenter {
		switch body {
		case domain.BodySun:
			h0 -= sunSemiDiam
		case domain.BodyMoon:
			h0 -= moonSemiDiam
		}
	}
	if body == domain.BodyMoon {
		h0 += moonParallax
	}
	if metres > 0 {
		h0 -= dipPerRootMetre * math.Sqrt(metres)
	}
	return h0
}

// hourAngle returns the local hour angle and declination of a body in degrees.
func hourAngle(jd, longitude float64, body domain.BodyKey) (float64, float64) {
	lon, lat, _ := ecliptic(jd, body)
	t := centuries(jd)
	eps := 23.439291 - 0.0130042*t

	ra := deg(math.Atan2(sinD(lon)*cosD(eps)-math.Tan(rad(lat))*sinD(eps), cosD(lon)))
	dec := deg(math.Asin(sinD(lat)*cosD(eps) + cosD(lat)*sinD(eps)*sinD(lon)))
	return domain.NormalizeDegrees(gmst(jd) + longitude - ra), dec
}

// gmst is Greenwich mean sidereal time in degrees.
func gmst(jd float64) float64 {
	t := centuries(jd)
	return domain.NormalizeDegrees(280.46061837 + 360.98564736629*(jd-j2000) +
		0.000387933*t*t - t*t*t/38710000)
}

func altitude(ha, dec, lat float64) float64 {
	return deg(math.Asin(sinD(lat)*sinD(dec) + cosD(lat)*cosD(dec)*cosD(ha)))
}

// bisect narrows a sign change of f in [lo,hi] where f(lo) < 0 <= f(hi).
func bisect(f func(float64) float64, lo, hi float64) float64 {
	for range bisectSteps {
		mid := (lo + hi) / 2
		if f(mid) < 0 {
			lo = mid
		} else {
			hi = mid
		}
	}
	return (lo + hi) / 2
}
