// Package jyotishday derives the sunrise-to-sunrise Jyotish day and its
// traditional subdivisions from a reference moment and the Sun's
// transition events.
package jyotishday

import (
	"fmt"
	"strings"

	"github.com/custodia-labs/jyotish/internal/core/domain"
)

// New derives the Jyotish day containing jd.
//
// Missing events yield ErrNoTransition, the expected outcome for a
// circumpolar Sun. Events flagged inconsistent by the ephemeris, or
// events that cannot bracket jd, yield ErrInconsistentTransition;
// progress is never clamped.
func New(jd domain.JulianDay, tr domain.TransitionTimes) (domain.JyotishDay, error) {
	if bad := tr.Inconsistent(); len(bad) > 0 {
		return domain.JyotishDay{}, fmt.Errorf("%w: %s before search start",
			domain.ErrInconsistentTransition, strings.Join(bad, ", "))
	}
	if !tr.Complete() {
		return domain.JyotishDay{}, fmt.Errorf("%w: %w: missing %s",
			domain.ErrNoTransition, domain.ErrEphemerisUnavailable, strings.Join(tr.Missing(), ", "))
	}

	day := domain.JyotishDay{
		ReferenceJD: jd,
		Transitions: tr,
		DayBefore:   jd < tr.Rise.JD,
		AfterSunset: jd > tr.Set.JD,
	}

	rise, set := tr.Rise.JD, tr.Set.JD
	if day.DayBefore {
		day.DayStart = tr.PrevRise.JD
		day.DayLength = float64(tr.Rise.JD - tr.PrevRise.JD)
		rise, set = tr.PrevRise.JD, tr.PrevSet.JD
	} else {
		day.DayStart = tr.Rise.JD
		day.DayLength = float64(tr.NextRise.JD - tr.Rise.JD)
	}

	if day.DayLength <= 0 {
		return domain.JyotishDay{}, fmt.Errorf("%w: day length %v", domain.ErrInconsistentTransition, day.DayLength)
	}

	day.Progress = float64(jd-day.DayStart) / day.DayLength
	if day.Progress < 0 || day.Progress >= 1 {
		return domain.JyotishDay{}, fmt.Errorf("%w: progress %v outside [0,1)", domain.ErrInconsistentTransition, day.Progress)
	}

	// a set earlier than its rise belongs to the previous day's daylight
	if set < rise {
		rise -= domain.JulianDay(day.DayLength)
	}
	day.IsDayTime = jd > rise && jd < set

	return day, nil
}
