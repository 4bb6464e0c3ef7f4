// Package varga computes divisional-chart longitudes.
//
// A divisional chart is a harmonic of the ecliptic: the longitude is
// multiplied by the divisor and wrapped into [0,360). Divisor 1 is the
// rashi chart and returns the input unchanged.
package varga

import (
	"fmt"

	"github.com/custodia-labs/jyotish/internal/core/domain"
)

// Longitude returns lon·N mod 360 in [0,360). No rounding is applied.
func Longitude(lon float64, divisor int) float64 {
	if divisor == 1 {
		return lon
	}
	return domain.NormalizeDegrees(lon * float64(divisor))
}

// Value computes one scheme's value for a longitude.
func Value(lon float64, scheme domain.DivisionalScheme) domain.VargaValue {
	v := Longitude(lon, scheme.Divisor)
	return domain.VargaValue{
		Scheme:  scheme.Key,
		Divisor: scheme.Divisor,
		Value:   v,
		Sign:    domain.SignOf(v),
	}
}

// All computes every configured scheme for a longitude, in table order.
func All(lon float64, schemes []domain.DivisionalScheme) []domain.VargaValue {
	out := make([]domain.VargaValue, 0, len(schemes))
	for _, s := range schemes {
		out = append(out, Value(lon, s))
	}
	return out
}

// ForTradition returns the schemes flagged for a tradition.
// An empty tradition returns every scheme.
func ForTradition(schemes []domain.DivisionalScheme, t domain.Tradition) []domain.DivisionalScheme {
	if t == "" {
		return schemes
	}
	out := make([]domain.DivisionalScheme, 0, len(schemes))
	for _, s := range schemes {
		if s.AppliesTo(t) {
			out = append(out, s)
		}
	}
	return out
}

// Validate checks a scheme table for usable divisors and unique keys.
func Validate(schemes []domain.DivisionalScheme) error {
	seen := make(map[string]bool, len(schemes))
	for _, s := range schemes {
		if s.Key == "" {
			return fmt.Errorf("%w: divisional scheme without key", domain.ErrInvalidReferenceData)
		}
		if s.Divisor < 1 {
			return fmt.Errorf("%w: scheme %s has divisor %d", domain.ErrInvalidReferenceData, s.Key, s.Divisor)
		}
		if seen[s.Key] {
			return fmt.Errorf("%w: duplicate scheme %s", domain.ErrInvalidReferenceData, s.Key)
		}
		seen[s.Key] = true
	}
	return nil
}
