package varga

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/jyotish/internal/core/domain"
)

var referenceDivisors = []int{1, 2, 3, 4, 7, 9, 10, 12, 16, 20, 24, 27, 30, 40, 45, 60, 5, 6, 8, 11, 72, 81, 108, 144, 150, 300}

func TestLongitude_Navamsha(t *testing.T) {
	v := Longitude(95, 9)

	assert.InDelta(t, 135.0, v, 1e-9)
	assert.Equal(t, 5, domain.SignOf(v))
}

func TestLongitude_IdentityForRashi(t *testing.T) {
	for _, lon := range []float64{0, 0.0001, 29.999, 123.456789, 359.9999} {
		assert.Equal(t, lon, Longitude(lon, 1))
	}
}

func TestLongitude_StaysInRange(t *testing.T) {
	for _, n := range referenceDivisors {
		for lon := 0.0; lon < 360; lon += 0.73 {
			v := Longitude(lon, n)
			assert.GreaterOrEqual(t, v, 0.0, "divisor %d lon %v", n, lon)
			assert.Less(t, v, 360.0, "divisor %d lon %v", n, lon)
		}
	}
}

func TestAll_FollowsTableOrder(t *testing.T) {
	schemes := []domain.DivisionalScheme{
		{Key: "D1", Divisor: 1},
		{Key: "D9", Divisor: 9},
		{Key: "D60", Divisor: 60},
	}

	values := All(95, schemes)

	require.Len(t, values, 3)
	assert.Equal(t, "D1", values[0].Scheme)
	assert.Equal(t, 95.0, values[0].Value)
	assert.Equal(t, 4, values[0].Sign)
	assert.Equal(t, "D9", values[1].Scheme)
	assert.InDelta(t, 135.0, values[1].Value, 1e-9)
	assert.Equal(t, 60, values[2].Divisor)
	assert.InDelta(t, 300.0, values[2].Value, 1e-9)
}

func TestForTradition(t *testing.T) {
	schemes := []domain.DivisionalScheme{
		{Key: "D1", Divisor: 1},
		{Key: "D9", Divisor: 9, Traditions: []domain.Tradition{domain.TraditionParashara, domain.TraditionJaimini}},
		{Key: "D72", Divisor: 72, Traditions: []domain.Tradition{domain.TraditionTajika}},
	}

	got := ForTradition(schemes, domain.TraditionParashara)
	assert.Len(t, got, 2)

	got = ForTradition(schemes, domain.TraditionTajika)
	assert.Len(t, got, 2)
	assert.Equal(t, "D72", got[1].Key)

	assert.Len(t, ForTradition(schemes, ""), 3)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		schemes []domain.DivisionalScheme
		wantErr bool
	}{
		{"valid", []domain.DivisionalScheme{{Key: "D1", Divisor: 1}, {Key: "D2", Divisor: 2}}, false},
		{"zero divisor", []domain.DivisionalScheme{{Key: "D0", Divisor: 0}}, true},
		{"missing key", []domain.DivisionalScheme{{Divisor: 3}}, true},
		{"duplicate", []domain.DivisionalScheme{{Key: "D3", Divisor: 3}, {Key: "D3", Divisor: 3}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.schemes)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, domain.ErrInvalidReferenceData))
				return
			}
			require.NoError(t, err)
		})
	}
}
