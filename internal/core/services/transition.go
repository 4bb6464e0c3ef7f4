package services

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/jyotish/internal/core/domain"
	"github.com/custodia-labs/jyotish/internal/core/ports/driven"
	"github.com/custodia-labs/jyotish/internal/logger"
)

// maxEventLead is how far past its search start an event may fall before
// it is treated as missing. Longer gaps mean the body skipped that day.
// An event before its search start is an ephemeris fault.
const maxEventLead = 1.1

// TransitionCalculator gathers the Sun's horizon events around a moment.
type TransitionCalculator struct {
	ephemeris driven.Ephemeris
}

// NewTransitionCalculator creates a calculator over an ephemeris.
func NewTransitionCalculator(ephemeris driven.Ephemeris) *TransitionCalculator {
	return &TransitionCalculator{ephemeris: ephemeris}
}

// transitQuery is one (start, event) lookup and where its result goes.
type transitQuery struct {
	out   *domain.TransitionEvent
	event domain.EventType
	start domain.JulianDay
}

// Compute looks up rise and set for yesterday and today, tomorrow's rise,
// and today's meridian and antimeridian transits. Days are civil days in
// the moment's own location. Each lookup runs once and concurrently.
// A failed lookup yields an invalid event; Compute itself never fails.
func (c *TransitionCalculator) Compute(
	ctx context.Context,
	moment time.Time,
	geo domain.GeoPosition,
	flags domain.RiseSetFlags,
) domain.TransitionTimes {
	ref := domain.JulianDayFromTime(moment)
	midnight := time.Date(moment.Year(), moment.Month(), moment.Day(), 0, 0, 0, 0, moment.Location())
	today := domain.JulianDayFromTime(midnight)

	var tr domain.TransitionTimes
	var mc, ic domain.TransitionEvent
	queries := []transitQuery{
		{out: &tr.Rise, event: domain.EventRise, start: today},
		{out: &tr.Set, event: domain.EventSet, start: today},
		{out: &tr.PrevRise, event: domain.EventRise, start: today - 1},
		{out: &tr.PrevSet, event: domain.EventSet, start: today - 1},
		{out: &tr.NextRise, event: domain.EventRise, start: today + 1},
		{out: &mc, event: domain.EventMeridianTransit, start: today},
		{out: &ic, event: domain.EventAntimeridianTransit, start: today},
	}

	logger.Debug("Transit lookups from JD %.5f (%d calls)", float64(today), len(queries))

	g, gctx := errgroup.WithContext(ctx)
	for _, q := range queries {
		g.Go(func() error {
			*q.out = c.lookup(gctx, q, ref, geo, flags)
			return nil
		})
	}
	_ = g.Wait()

	tr.MC = &mc
	tr.IC = &ic
	return tr
}

func (c *TransitionCalculator) lookup(
	ctx context.Context,
	q transitQuery,
	ref domain.JulianDay,
	geo domain.GeoPosition,
	flags domain.RiseSetFlags,
) domain.TransitionEvent {
	jd, err := c.ephemeris.RiseSetTransit(ctx, q.start, geo, domain.BodySun, q.event, flags)
	if err != nil {
		if !errors.Is(err, domain.ErrNoTransition) {
			logger.Warn("Sun %s after JD %.5f: %v", q.event, float64(q.start), err)
		}
		return domain.MissingTransition(q.event)
	}
	lead := float64(jd - q.start)
	if lead < 0 {
		logger.Warn("Sun %s after JD %.5f reported at JD %.5f, before the search start", q.event, float64(q.start), float64(jd))
		return domain.InconsistentTransition(q.event, jd)
	}
	if lead > maxEventLead {
		logger.Debug("Sun %s after JD %.5f is %.2f days out, treating as missing", q.event, float64(q.start), lead)
		return domain.MissingTransition(q.event)
	}
	return domain.NewTransitionEvent(q.event, jd, ref)
}
