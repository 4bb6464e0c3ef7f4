package jyotishday

import (
	"fmt"
	"math"

	"github.com/custodia-labs/jyotish/internal/core/domain"
)

// ValidateChain checks that every unit has a unique key, a positive
// divisor and a parent defined earlier in the chain.
func ValidateChain(chain domain.TimeUnitChain) error {
	if len(chain) == 0 {
		return fmt.Errorf("%w: empty time unit chain", domain.ErrInvalidInput)
	}
	seen := make(map[string]bool, len(chain))
	for _, u := range chain {
		if u.Key == "" {
			return fmt.Errorf("%w: time unit without key", domain.ErrInvalidInput)
		}
		if seen[u.Key] {
			return fmt.Errorf("%w: duplicate time unit %s", domain.ErrInvalidInput, u.Key)
		}
		if u.Divisor <= 0 {
			return fmt.Errorf("%w: time unit %s divisor %v", domain.ErrInvalidInput, u.Key, u.Divisor)
		}
		if u.Parent != "" && !seen[u.Parent] {
			return fmt.Errorf("%w: time unit %s parent %s not defined before it", domain.ErrInvalidInput, u.Key, u.Parent)
		}
		seen[u.Key] = true
	}
	return nil
}

// IndianTime converts a day progress into the units of a chain.
// A root unit is progress × divisor; a child is frac(parent) × divisor.
func IndianTime(progress float64, chain domain.TimeUnitChain) (domain.IndianTime, error) {
	if progress < 0 || progress >= 1 || math.IsNaN(progress) {
		return domain.IndianTime{}, fmt.Errorf("%w: progress %v outside [0,1)", domain.ErrInvalidInput, progress)
	}
	if err := ValidateChain(chain); err != nil {
		return domain.IndianTime{}, err
	}

	values := make(map[string]float64, len(chain))
	out := domain.IndianTime{
		Progress: progress,
		Units:    make([]domain.TimeUnitValue, 0, len(chain)),
	}
	for _, u := range chain {
		var v float64
		if u.Parent == "" {
			v = progress * u.Divisor
		} else {
			p := values[u.Parent]
			v = (p - math.Floor(p)) * u.Divisor
		}
		values[u.Key] = v
		out.Units = append(out.Units, domain.TimeUnitValue{
			Key:   u.Key,
			Value: v,
			Whole: int(math.Floor(v)),
		})
	}
	return out, nil
}

// Progress reconstructs the day progress from the completed counts on the
// path from the root down to leaf plus the leaf's continuous value.
func Progress(it domain.IndianTime, chain domain.TimeUnitChain, leaf string) (float64, error) {
	unit, ok := chain.Find(leaf)
	if !ok {
		return 0, fmt.Errorf("%w: unknown time unit %s", domain.ErrInvalidInput, leaf)
	}
	val, ok := it.Unit(leaf)
	if !ok {
		return 0, fmt.Errorf("%w: no value for time unit %s", domain.ErrInvalidInput, leaf)
	}

	x := val.Value / unit.Divisor
	for depth := 0; unit.Parent != ""; depth++ {
		if depth > len(chain) {
			return 0, fmt.Errorf("%w: time unit chain has a cycle", domain.ErrInvalidInput)
		}
		parent, ok := chain.Find(unit.Parent)
		if !ok {
			return 0, fmt.Errorf("%w: unknown time unit %s", domain.ErrInvalidInput, unit.Parent)
		}
		pv, ok := it.Unit(parent.Key)
		if !ok {
			return 0, fmt.Errorf("%w: no value for time unit %s", domain.ErrInvalidInput, parent.Key)
		}
		x = (float64(pv.Whole) + x) / parent.Divisor
		unit = parent
	}
	return x, nil
}
