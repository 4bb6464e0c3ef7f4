package dasha

import (
	"fmt"

	"github.com/custodia-labs/jyotish/internal/core/domain"
)

// Validate checks a dasha system table before any sequence is built.
func Validate(system domain.DashaSystem) error {
	if system.Key == "" {
		return fmt.Errorf("%w: dasha system without key", domain.ErrInvalidReferenceData)
	}
	if !system.Mode.IsValid() {
		return fmt.Errorf("%w: dasha system %s has unknown mode %q", domain.ErrInvalidReferenceData, system.Key, system.Mode)
	}
	if system.TotalYears <= 0 {
		return fmt.Errorf("%w: dasha system %s total years %v", domain.ErrInvalidReferenceData, system.Key, system.TotalYears)
	}
	if len(system.Sequence) == 0 {
		return fmt.Errorf("%w: dasha system %s has an empty sequence", domain.ErrInvalidReferenceData, system.Key)
	}
	if system.PeriodLength < 0 || system.PeriodLength > len(system.Sequence) {
		return fmt.Errorf("%w: dasha system %s period length %d", domain.ErrInvalidReferenceData, system.Key, system.PeriodLength)
	}

	count := nakshatraCount(system)
	if count != 27 && count != 28 {
		return fmt.Errorf("%w: dasha system %s nakshatra count %d", domain.ErrInvalidReferenceData, system.Key, count)
	}

	for i, e := range system.Sequence {
		if !e.Body.IsValid() {
			return fmt.Errorf("%w: dasha system %s entry %d: %w %q", domain.ErrInvalidReferenceData, system.Key, i, domain.ErrUnknownBody, e.Body)
		}
		if e.Years <= 0 {
			return fmt.Errorf("%w: dasha system %s entry %d has %v years", domain.ErrInvalidReferenceData, system.Key, i, e.Years)
		}
	}

	switch system.Mode {
	case domain.OrderRepeat:
		if system.StartNakshatra < 0 || system.StartNakshatra >= count {
			return fmt.Errorf("%w: dasha system %s start nakshatra %d", domain.ErrInvalidReferenceData, system.Key, system.StartNakshatra)
		}
	case domain.OrderExact, domain.OrderReverse:
		if len(system.Sequence) < count {
			return fmt.Errorf("%w: dasha system %s lists %d entries for %d nakshatras",
				domain.ErrInvalidReferenceData, system.Key, len(system.Sequence), count)
		}
	case domain.OrderRange:
		return validateRanges(system, count)
	}
	return nil
}

// validateRanges requires every nakshatra to fall in exactly one range.
func validateRanges(system domain.DashaSystem, count int) error {
	covered := make([]int, count)
	for i, e := range system.Sequence {
		if e.From < 0 || e.From >= count || e.To < 0 || e.To >= count {
			return fmt.Errorf("%w: dasha system %s entry %d range %d-%d",
				domain.ErrInvalidReferenceData, system.Key, i, e.From, e.To)
		}
		for n := 0; n < rangeLen(e, count); n++ {
			covered[(e.From+n)%count]++
		}
	}
	for n, c := range covered {
		if c != 1 {
			return fmt.Errorf("%w: dasha system %s covers nakshatra %d %d times",
				domain.ErrInvalidReferenceData, system.Key, n, c)
		}
	}
	return nil
}

func nakshatraCount(system domain.DashaSystem) int {
	if system.NakshatraCount == 0 {
		return 27
	}
	return system.NakshatraCount
}

// rangeLen is the number of nakshatras in an inclusive range that may
// wrap past the last index.
func rangeLen(e domain.DashaEntry, count int) int {
	return ((e.To-e.From)%count+count)%count + 1
}

// rangeOffset is nak's position inside e's range, or -1 when outside.
func rangeOffset(e domain.DashaEntry, nak, count int) int {
	off := ((nak-e.From)%count + count) % count
	if off < rangeLen(e, count) {
		return off
	}
	return -1
}
