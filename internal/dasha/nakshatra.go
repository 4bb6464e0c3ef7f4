package dasha

import (
	"fmt"
	"math"

	"github.com/custodia-labs/jyotish/internal/core/domain"
)

// Abhijit boundaries in the 28-fold scheme: the last pada of Uttara
// Ashadha through the first fifteenth of Shravana.
const (
	abhijitStart = 276.0 + 40.0/60
	abhijitEnd   = 280.0 + 53.0/60 + 20.0/3600
	abhijitIndex = 21
)

// NakshatraOf returns the 0-based nakshatra holding a sidereal longitude
// and the fraction of that nakshatra already traversed.
// count is 27, or 28 to insert Abhijit between Uttara Ashadha and Shravana.
func NakshatraOf(longitude float64, count int) (int, float64, error) {
	if math.IsNaN(longitude) || math.IsInf(longitude, 0) {
		return 0, 0, fmt.Errorf("%w: longitude %v", domain.ErrInvalidInput, longitude)
	}
	lon := domain.NormalizeDegrees(longitude)

	switch count {
	case 0, 27:
		pos := lon / domain.NakshatraSpan
		idx := int(math.Floor(pos))
		if idx >= 27 {
			idx = 26
		}
		return idx, pos - float64(idx), nil
	case 28:
		start, end, idx := bounds28(lon)
		return idx, (lon - start) / (end - start), nil
	default:
		return 0, 0, fmt.Errorf("%w: nakshatra count %d", domain.ErrInvalidInput, count)
	}
}

// bounds28 locates lon in the 28-fold scheme and returns the mansion's
// start and end longitudes with its index.
func bounds28(lon float64) (float64, float64, int) {
	switch {
	case lon >= abhijitStart && lon < abhijitEnd:
		return abhijitStart, abhijitEnd, abhijitIndex
	case lon >= 20*domain.NakshatraSpan && lon < abhijitStart:
		return 20 * domain.NakshatraSpan, abhijitStart, 20
	case lon >= abhijitEnd && lon < 22*domain.NakshatraSpan:
		return abhijitEnd, 22 * domain.NakshatraSpan, 22
	}

	idx := int(math.Floor(lon / domain.NakshatraSpan))
	if idx >= 27 {
		idx = 26
	}
	start := float64(idx) * domain.NakshatraSpan
	end := start + domain.NakshatraSpan
	if idx > 20 {
		// every mansion from Shravana on shifts one slot for Abhijit
		return start, end, idx + 1
	}
	return start, end, idx
}
