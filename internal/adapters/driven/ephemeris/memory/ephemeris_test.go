package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/jyotish/internal/core/domain"
)

func TestBodyPosition_Extrapolates(t *testing.T) {
	eph := New(100)
	eph.SetPosition(domain.BodyPosition{Key: domain.BodyMoon, Longitude: 355, Speed: 13})

	pos, err := eph.BodyPosition(context.Background(), 101, domain.BodyMoon)
	require.NoError(t, err)
	assert.InDelta(t, 8, pos.Longitude, 1e-9)
	assert.Equal(t, 13.0, pos.Speed)

	pos, err = eph.BodyPosition(context.Background(), 100, domain.BodyMoon)
	require.NoError(t, err)
	assert.InDelta(t, 355, pos.Longitude, 1e-9)
}

func TestBodyPosition_Missing(t *testing.T) {
	_, err := New(0).BodyPosition(context.Background(), 0, domain.BodyMars)
	assert.ErrorIs(t, err, domain.ErrEphemerisUnavailable)
}

func TestFail(t *testing.T) {
	eph := New(0)
	eph.SetPosition(domain.BodyPosition{Key: domain.BodySun, Longitude: 10})
	boom := errors.New("boom")
	eph.Fail(domain.BodySun, boom)

	_, err := eph.BodyPosition(context.Background(), 0, domain.BodySun)
	assert.ErrorIs(t, err, boom)

	_, err = eph.RiseSetTransit(context.Background(), 0, domain.GeoPosition{}, domain.BodySun, domain.EventRise, domain.RiseSetFlags{})
	assert.ErrorIs(t, err, boom)
}

func TestRiseSetTransit(t *testing.T) {
	eph := New(0)
	eph.AddDaily(domain.EventRise, 100, 0.25, 3)
	eph.AddEvents(domain.EventSet, 100.75)

	ctx := context.Background()
	geo := domain.GeoPosition{}

	jd, err := eph.RiseSetTransit(ctx, 100, geo, domain.BodySun, domain.EventRise, domain.RiseSetFlags{})
	require.NoError(t, err)
	assert.Equal(t, domain.JulianDay(100.25), jd)

	jd, err = eph.RiseSetTransit(ctx, 100.5, geo, domain.BodySun, domain.EventRise, domain.RiseSetFlags{})
	require.NoError(t, err)
	assert.Equal(t, domain.JulianDay(101.25), jd)

	_, err = eph.RiseSetTransit(ctx, 103, geo, domain.BodySun, domain.EventRise, domain.RiseSetFlags{})
	assert.ErrorIs(t, err, domain.ErrNoTransition)

	_, err = eph.RiseSetTransit(ctx, 101, geo, domain.BodySun, domain.EventSet, domain.RiseSetFlags{})
	assert.ErrorIs(t, err, domain.ErrNoTransition)
}

func TestAyanamsa(t *testing.T) {
	eph := New(0)
	eph.SetAyanamsa(24.1)

	v, err := eph.Ayanamsa(context.Background(), 12345)
	require.NoError(t, err)
	assert.Equal(t, 24.1, v)
	assert.Equal(t, "memory", eph.Name())
	assert.NoError(t, eph.Close())
}
