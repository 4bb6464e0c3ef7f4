package analytic

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/jyotish/internal/core/domain"
)

func angleDiff(a, b float64) float64 {
	return math.Abs(signedDelta(a - b))
}

func TestBodyPosition_Sun(t *testing.T) {
	// 1992 October 13.0 TD
	pos, err := New().BodyPosition(context.Background(), 2448908.5, domain.BodySun)
	require.NoError(t, err)

	assert.InDelta(t, 199.90895, pos.Longitude, 0.01)
	assert.Equal(t, domain.BodySun, pos.Key)
	assert.InDelta(t, 0.99, pos.Speed, 0.03)
}

func TestBodyPosition_Moon(t *testing.T) {
	// 1992 April 12.0 TD
	pos, err := New().BodyPosition(context.Background(), 2448724.5, domain.BodyMoon)
	require.NoError(t, err)

	assert.InDelta(t, 133.162655, pos.Longitude, 0.3)
	assert.InDelta(t, -3.229126, pos.Latitude, 0.3)
	assert.Greater(t, pos.Speed, 11.0)
	assert.Less(t, pos.Speed, 16.0)
}

func TestBodyPosition_Nodes(t *testing.T) {
	eph := New()
	ctx := context.Background()

	rahu, err := eph.BodyPosition(ctx, j2000, domain.BodyRahu)
	require.NoError(t, err)
	ketu, err := eph.BodyPosition(ctx, j2000, domain.BodyKetu)
	require.NoError(t, err)

	assert.InDelta(t, 125.0445479, rahu.Longitude, 1e-6)
	assert.InDelta(t, 180, angleDiff(rahu.Longitude, ketu.Longitude), 1e-9)
	assert.True(t, rahu.Retrograde())
	assert.InDelta(t, -0.053, rahu.Speed, 0.001)
}

func TestBodyPosition_OuterPlanets(t *testing.T) {
	// 2000 January 1.5
	tests := []struct {
		body domain.BodyKey
		want float64
	}{
		{domain.BodyMars, 328},
		{domain.BodyJupiter, 25.2},
		{domain.BodySaturn, 40.4},
	}
	for _, tt := range tests {
		t.Run(tt.body.String(), func(t *testing.T) {
			pos, err := New().BodyPosition(context.Background(), j2000, tt.body)
			require.NoError(t, err)
			assert.Less(t, angleDiff(tt.want, pos.Longitude), 3.0)
		})
	}
}

func TestBodyPosition_InnerPlanetElongation(t *testing.T) {
	eph := New()
	ctx := context.Background()

	for jd := 2451545.0; jd < 2451545.0+3*365; jd += 17 {
		sun, err := eph.BodyPosition(ctx, domain.JulianDay(jd), domain.BodySun)
		require.NoError(t, err)
		mercury, err := eph.BodyPosition(ctx, domain.JulianDay(jd), domain.BodyMercury)
		require.NoError(t, err)
		venus, err := eph.BodyPosition(ctx, domain.JulianDay(jd), domain.BodyVenus)
		require.NoError(t, err)

		assert.LessOrEqual(t, angleDiff(sun.Longitude, mercury.Longitude), 29.0, "mercury at %v", jd)
		assert.LessOrEqual(t, angleDiff(sun.Longitude, venus.Longitude), 48.5, "venus at %v", jd)
	}
}

func TestBodyPosition_UnknownBody(t *testing.T) {
	_, err := New().BodyPosition(context.Background(), j2000, domain.BodyAscendant)
	assert.ErrorIs(t, err, domain.ErrEphemerisUnavailable)
}

func TestBodyPosition_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New().BodyPosition(ctx, j2000, domain.BodySun)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAyanamsa(t *testing.T) {
	eph := New()

	at2000, err := eph.Ayanamsa(context.Background(), j2000)
	require.NoError(t, err)
	assert.InDelta(t, 23.853, at2000, 0.001)

	at2100, err := eph.Ayanamsa(context.Background(), j2000+36525)
	require.NoError(t, err)
	assert.InDelta(t, 1.397, at2100-at2000, 0.001)
}

func TestRiseSetTransit_EquinoxAtEquator(t *testing.T) {
	// 2024 March 20 0h UT
	const midnight = 2460389.5
	geo := domain.GeoPosition{}
	eph := New()

	minutes := func(jd domain.JulianDay) float64 {
		return (float64(jd) - midnight) * 1440
	}

	tests := []struct {
		event domain.EventType
		want  float64
		tol   float64
	}{
		{domain.EventRise, 6*60 + 4, 6},
		{domain.EventMeridianTransit, 12*60 + 7, 3},
		{domain.EventSet, 18*60 + 11, 6},
		{domain.EventAntimeridianTransit, 7, 3},
	}
	for _, tt := range tests {
		t.Run(tt.event.String(), func(t *testing.T) {
			jd, err := eph.RiseSetTransit(context.Background(), midnight, geo, domain.BodySun, tt.event, domain.RiseSetFlags{})
			require.NoError(t, err)
			assert.InDelta(t, tt.want, minutes(jd), tt.tol)
		})
	}
}

func TestRiseSetTransit_Flags(t *testing.T) {
	const midnight = 2460389.5
	geo := domain.GeoPosition{Latitude: 45}
	eph := New()
	ctx := context.Background()

	upper, err := eph.RiseSetTransit(ctx, midnight, geo, domain.BodySun, domain.EventRise, domain.RiseSetFlags{})
	require.NoError(t, err)
	centre, err := eph.RiseSetTransit(ctx, midnight, geo, domain.BodySun, domain.EventRise, domain.RiseSetFlags{DiscCenter: true})
	require.NoError(t, err)
	geometric, err := eph.RiseSetTransit(ctx, midnight, geo, domain.BodySun, domain.EventRise,
		domain.RiseSetFlags{DiscCenter: true, NoRefraction: true})
	require.NoError(t, err)

	assert.Less(t, float64(upper), float64(centre))
	assert.Less(t, float64(centre), float64(geometric))
}

func TestRiseSetTransit_Circumpolar(t *testing.T) {
	// 2024 June 21 0h UT, midnight sun
	geo := domain.GeoPosition{Latitude: 80}

	for _, event := range []domain.EventType{domain.EventRise, domain.EventSet} {
		_, err := New().RiseSetTransit(context.Background(), 2460482.5, geo, domain.BodySun, event, domain.RiseSetFlags{})
		assert.ErrorIs(t, err, domain.ErrNoTransition, event)
	}

	_, err := New().RiseSetTransit(context.Background(), 2460482.5, geo, domain.BodySun, domain.EventMeridianTransit, domain.RiseSetFlags{})
	assert.NoError(t, err)
}

func TestRiseSetTransit_BadInput(t *testing.T) {
	eph := New()
	ctx := context.Background()

	_, err := eph.RiseSetTransit(ctx, j2000, domain.GeoPosition{Latitude: 91}, domain.BodySun, domain.EventRise, domain.RiseSetFlags{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = eph.RiseSetTransit(ctx, j2000, domain.GeoPosition{}, domain.BodySun, domain.EventType("noon"), domain.RiseSetFlags{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = eph.RiseSetTransit(ctx, j2000, domain.GeoPosition{}, domain.BodyAscendant, domain.EventRise, domain.RiseSetFlags{})
	assert.ErrorIs(t, err, domain.ErrEphemerisUnavailable)
}

func TestKepler(t *testing.T) {
	for _, e := range []float64{0, 0.0167, 0.2056} {
		for m := 0.0; m < 2*math.Pi; m += 0.3 {
			ecc := kepler(m, e)
			assert.InDelta(t, m, ecc-e*math.Sin(ecc), 1e-10)
		}
	}
}
