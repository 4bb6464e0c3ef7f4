package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestJulianDayFromTime(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want JulianDay
	}{
		{"J2000", time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC), 2451545.0},
		{"unix epoch", time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC), unixEpochJD},
		{"2024 equinox noon", time.Date(2024, 3, 20, 12, 0, 0, 0, time.UTC), 2460390.0},
		{"offset is ignored", time.Date(2024, 3, 20, 17, 30, 0, 0, time.FixedZone("IST", 19800)), 2460390.0},
		{"six hours", time.Date(2024, 3, 20, 18, 0, 0, 0, time.UTC), 2460390.25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, float64(tt.want), float64(JulianDayFromTime(tt.in)), 1e-9)
		})
	}
}

func TestJulianDay_TimeRoundTrip(t *testing.T) {
	moments := []time.Time{
		time.Date(2024, 3, 20, 12, 0, 0, 0, time.UTC),
		time.Date(1985, 7, 12, 1, 0, 0, 0, time.UTC),
		time.Date(1900, 2, 28, 23, 59, 59, 0, time.UTC),
		time.Date(2100, 3, 1, 0, 0, 0, 123000000, time.UTC),
	}

	for _, m := range moments {
		got := JulianDayFromTime(m).Time()
		assert.WithinDuration(t, m, got, time.Millisecond, "moment %s", m)
		assert.Equal(t, time.UTC, got.Location())
	}
}

func TestJulianDay_Add(t *testing.T) {
	jd := JulianDay(2460390.0)
	assert.InDelta(t, 2460390.5, jd.Add(0.5).Float(), 1e-12)
	assert.InDelta(t, 2460389.0, jd.Add(-1).Float(), 1e-12)
}

func TestCivilTimeFromTime(t *testing.T) {
	ist := time.FixedZone("IST", 19800)
	ct := CivilTimeFromTime(time.Date(2024, 3, 20, 17, 30, 15, 500000000, ist))

	assert.Equal(t, CivilTime{Year: 2024, Month: 3, Day: 20, Hour: 17, Minute: 30, Second: 15.5}, ct)
	assert.InDelta(t, 17.5043055, ct.Hours(), 1e-6)
	assert.InDelta(t, 5.5, TZOffsetHours(time.Date(2024, 3, 20, 0, 0, 0, 0, ist)), 1e-12)
}

func TestHMSFromHours(t *testing.T) {
	v := HMSFromHours(18.25)
	assert.Equal(t, 18, v.Hours)
	assert.Equal(t, 15, v.Minutes)
	assert.InDelta(t, 0, v.Seconds, 1e-9)

	v = HMSFromHours(6.504583333)
	assert.Equal(t, 6, v.Hours)
	assert.Equal(t, 30, v.Minutes)
	assert.InDelta(t, 16.5, v.Seconds, 1e-5)
	assert.InDelta(t, 6.504583333, v.DecimalHours(), 1e-9)
}
