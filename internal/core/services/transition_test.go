package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ephmemory "github.com/custodia-labs/jyotish/internal/adapters/driven/ephemeris/memory"
	"github.com/custodia-labs/jyotish/internal/core/domain"
	"github.com/custodia-labs/jyotish/internal/jyotishday"
)

func TestTransitionCalculator_Compute(t *testing.T) {
	calc := NewTransitionCalculator(newFixtureEphemeris())

	tr := calc.Compute(context.Background(), chartMoment, domain.GeoPosition{}, domain.RiseSetFlags{})

	require.True(t, tr.Complete(), tr.Missing())
	assert.Equal(t, chartJD-0.25, tr.Rise.JD)
	assert.Equal(t, chartJD+0.25, tr.Set.JD)
	assert.Equal(t, chartJD-1.25, tr.PrevRise.JD)
	assert.Equal(t, chartJD-0.75, tr.PrevSet.JD)
	assert.Equal(t, chartJD+0.75, tr.NextRise.JD)
	require.NotNil(t, tr.MC)
	require.NotNil(t, tr.IC)
	assert.Equal(t, chartJD, tr.MC.JD)
	assert.Equal(t, chartJD-0.5, tr.IC.JD)

	assert.True(t, tr.Rise.After)
	assert.False(t, tr.Set.After)
	assert.Equal(t, domain.EventRise, tr.NextRise.Type)
}

func TestTransitionCalculator_OneCallPerLookup(t *testing.T) {
	eph := &recordingEphemeris{Ephemeris: newFixtureEphemeris()}
	calc := NewTransitionCalculator(eph)

	calc.Compute(context.Background(), chartMoment, domain.GeoPosition{}, domain.RiseSetFlags{})

	const today = chartJD - 0.5
	want := []transitCall{
		{today, domain.EventRise, domain.BodySun},
		{today, domain.EventSet, domain.BodySun},
		{today - 1, domain.EventRise, domain.BodySun},
		{today - 1, domain.EventSet, domain.BodySun},
		{today + 1, domain.EventRise, domain.BodySun},
		{today, domain.EventMeridianTransit, domain.BodySun},
		{today, domain.EventAntimeridianTransit, domain.BodySun},
	}
	assert.ElementsMatch(t, want, eph.calls)
}

func TestTransitionCalculator_MissingEvents(t *testing.T) {
	eph := ephmemory.New(chartJD)
	eph.AddEvents(domain.EventRise, chartJD-1.25, chartJD-0.25)
	calc := NewTransitionCalculator(eph)

	tr := calc.Compute(context.Background(), chartMoment, domain.GeoPosition{}, domain.RiseSetFlags{})

	assert.True(t, tr.Rise.Valid)
	assert.True(t, tr.PrevRise.Valid)
	assert.False(t, tr.Complete())
	assert.ElementsMatch(t, []string{"set", "prev_set", "next_rise"}, tr.Missing())
	assert.False(t, tr.MC.Valid)
	assert.Equal(t, domain.EventMeridianTransit, tr.MC.Type)
}

func TestTransitionCalculator_DistantEventIsMissing(t *testing.T) {
	// only one rise, three days out: every rise lookup lands too far away
	eph := ephmemory.New(chartJD)
	eph.AddEvents(domain.EventRise, chartJD+3)
	calc := NewTransitionCalculator(eph)

	tr := calc.Compute(context.Background(), chartMoment, domain.GeoPosition{}, domain.RiseSetFlags{})

	assert.False(t, tr.Rise.Valid)
	assert.False(t, tr.PrevRise.Valid)
	assert.False(t, tr.NextRise.Valid)
}

func TestTransitionCalculator_EventBeforeSearchStart(t *testing.T) {
	calc := NewTransitionCalculator(&earlyRiseEphemeris{Ephemeris: newFixtureEphemeris()})

	tr := calc.Compute(context.Background(), chartMoment, domain.GeoPosition{}, domain.RiseSetFlags{})

	assert.False(t, tr.Rise.Valid)
	assert.True(t, tr.Rise.Inconsistent)
	assert.True(t, tr.NextRise.Inconsistent)
	assert.True(t, tr.Set.Valid)
	assert.Empty(t, tr.Missing())
	assert.ElementsMatch(t, []string{"rise", "prev_rise", "next_rise"}, tr.Inconsistent())

	_, err := jyotishday.New(chartJD, tr)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInconsistentTransition))
	assert.False(t, errors.Is(err, domain.ErrNoTransition))
}

func TestTransitionCalculator_EphemerisFailure(t *testing.T) {
	eph := newFixtureEphemeris()
	eph.Fail(domain.BodySun, domain.ErrEphemerisUnavailable)
	calc := NewTransitionCalculator(eph)

	tr := calc.Compute(context.Background(), chartMoment, domain.GeoPosition{}, domain.RiseSetFlags{})

	assert.False(t, tr.Complete())
	assert.Len(t, tr.Missing(), 5)
}

func TestTransitionCalculator_LocalMidnight(t *testing.T) {
	eph := &recordingEphemeris{Ephemeris: newFixtureEphemeris()}
	calc := NewTransitionCalculator(eph)
	zone := time.FixedZone("UTC-3", -3*3600)

	// 22:00 local on the 19th is 01:00 UT on the 20th
	calc.Compute(context.Background(), time.Date(2024, 3, 19, 22, 0, 0, 0, zone), domain.GeoPosition{}, domain.RiseSetFlags{})

	localMidnight := domain.JulianDayFromTime(time.Date(2024, 3, 19, 0, 0, 0, 0, zone))
	for _, c := range eph.calls {
		if c.event == domain.EventMeridianTransit {
			assert.InDelta(t, float64(localMidnight), float64(c.start), 1e-9)
		}
	}
}
