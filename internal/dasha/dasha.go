// Package dasha builds planetary-period sequences anchored to the Moon's
// nakshatra at a reference moment.
package dasha

import (
	"fmt"
	"math"

	"github.com/custodia-labs/jyotish/internal/core/domain"
)

// endTolerance is the remaining span in days below which no further
// period is emitted.
const endTolerance = 1e-9

// Options control sequence construction.
type Options struct {
	// Depth is the number of nested levels; 1 yields major periods only.
	Depth int

	// YearLength is the number of days in one dasha year.
	// Zero uses domain.YearLengthGregorian.
	YearLength float64
}

// Build returns the ordered, contiguous periods covering system.TotalYears
// from birth. nak is the 0-based Moon nakshatra and fraction the part of it
// already traversed, in [0,1).
func Build(system domain.DashaSystem, nak int, fraction float64, birth domain.JulianDay, opts Options) ([]domain.DashaPeriod, error) {
	if err := Validate(system); err != nil {
		return nil, err
	}
	count := nakshatraCount(system)
	if nak < 0 || nak >= count {
		return nil, fmt.Errorf("%w: nakshatra %d outside 0..%d", domain.ErrInvalidInput, nak, count-1)
	}
	if fraction < 0 || fraction >= 1 || math.IsNaN(fraction) {
		return nil, fmt.Errorf("%w: nakshatra fraction %v outside [0,1)", domain.ErrInvalidInput, fraction)
	}

	yearLen := opts.YearLength
	if yearLen <= 0 {
		yearLen = domain.YearLengthGregorian
	}
	depth := opts.Depth
	if depth < domain.DepthMaha {
		depth = domain.DepthMaha
	}

	seq, start, step, elapsed := startingPoint(system, nak, fraction, count)
	b := builder{
		cycle:      cycle(system),
		cycleYears: system.CycleYears(),
		step:       step,
		maxDepth:   depth,
	}

	total := system.TotalYears * yearLen
	var periods []domain.DashaPeriod
	cursor := 0.0
	idx := start
	for total-cursor > endTolerance {
		e := seq[idx]
		nominal := e.Years * yearLen
		length := nominal
		nominalStart := cursor
		if len(periods) == 0 {
			length = (1 - elapsed) * nominal
			nominalStart = cursor - elapsed*nominal
		}
		if cursor+length > total {
			length = total - cursor
		}

		p := domain.DashaPeriod{
			Body:    e.Body,
			StartJD: birth + domain.JulianDay(cursor),
			EndJD:   birth + domain.JulianDay(cursor+length),
			Depth:   domain.DepthMaha,
		}
		if len(periods) > 0 {
			p.StartJD = periods[len(periods)-1].EndJD
		}
		if depth > domain.DepthMaha {
			p.Sub = b.subdivide(e.Body, birth+domain.JulianDay(nominalStart), nominal, p.StartJD, p.EndJD, domain.DepthAntar)
		}
		periods = append(periods, p)

		cursor += length
		idx = mod(idx+step, len(seq))
	}

	last := &periods[len(periods)-1]
	last.EndJD = birth + domain.JulianDay(total)
	snapEnd(last.Sub, last.EndJD)
	return periods, nil
}

// startingPoint resolves the sequence to walk, the first entry, the walk
// direction and the elapsed part of the first period.
func startingPoint(system domain.DashaSystem, nak int, fraction float64, count int) ([]domain.DashaEntry, int, int, float64) {
	switch system.Mode {
	case domain.OrderExact:
		return system.Sequence, nak, 1, fraction
	case domain.OrderReverse:
		return system.Sequence, nak, -1, fraction
	case domain.OrderRange:
		for i, e := range system.Sequence {
			if off := rangeOffset(e, nak, count); off >= 0 {
				return system.Sequence, i, 1, (float64(off) + fraction) / float64(rangeLen(e, count))
			}
		}
		// unreachable for a validated table
		return system.Sequence, 0, 1, fraction
	default:
		c := cycle(system)
		return c, mod(nak-system.StartNakshatra, len(c)), 1, fraction
	}
}

// cycle is one full turn of the sequence before repetition.
func cycle(system domain.DashaSystem) []domain.DashaEntry {
	n := system.PeriodLength
	if n <= 0 || n > len(system.Sequence) {
		n = len(system.Sequence)
	}
	return system.Sequence[:n]
}

type builder struct {
	cycle      []domain.DashaEntry
	cycleYears float64
	step       int
	maxDepth   int
}

// subdivide splits a parent's nominal span in proportion to the cycle's
// years, starting from the parent's lord, and clips the result to the
// parent's actual span.
func (b builder) subdivide(lord domain.BodyKey, nominalStart domain.JulianDay, nominalDays float64, start, end domain.JulianDay, depth int) []domain.DashaPeriod {
	first := 0
	for i, e := range b.cycle {
		if e.Body == lord {
			first = i
			break
		}
	}

	var out []domain.DashaPeriod
	type span struct {
		start domain.JulianDay
		days  float64
	}
	var nominal []span
	cursor := nominalStart
	for k := range b.cycle {
		e := b.cycle[mod(first+k*b.step, len(b.cycle))]
		days := nominalDays * e.Years / b.cycleYears
		s, en := cursor, cursor+domain.JulianDay(days)
		cursor = en
		if en <= start || s >= end {
			continue
		}
		nominal = append(nominal, span{start: s, days: days})
		if s < start {
			s = start
		}
		if en > end {
			en = end
		}
		if len(out) > 0 {
			s = out[len(out)-1].EndJD
		}
		out = append(out, domain.DashaPeriod{Body: e.Body, StartJD: s, EndJD: en, Depth: depth})
	}
	if len(out) == 0 {
		return nil
	}
	out[0].StartJD = start
	out[len(out)-1].EndJD = end

	if depth < b.maxDepth {
		for i := range out {
			out[i].Sub = b.subdivide(out[i].Body, nominal[i].start, nominal[i].days, out[i].StartJD, out[i].EndJD, depth+1)
		}
	}
	return out
}

// snapEnd pins the last period of a level, and its nested last periods,
// to end.
func snapEnd(periods []domain.DashaPeriod, end domain.JulianDay) {
	for len(periods) > 0 {
		last := &periods[len(periods)-1]
		last.EndJD = end
		periods = last.Sub
	}
}

func mod(a, n int) int {
	return ((a % n) + n) % n
}
