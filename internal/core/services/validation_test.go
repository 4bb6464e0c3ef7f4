package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/jyotish/internal/core/domain"
)

func TestValidateRequest(t *testing.T) {
	valid := domain.ChartRequest{Time: time.Date(1990, 5, 4, 3, 2, 1, 0, time.UTC)}
	assert.NoError(t, validateRequest(valid))

	bad := valid
	bad.Geo = domain.GeoPosition{Latitude: -91, Longitude: 200}
	err := validateRequest(bad)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "geo.latitude must be >= -90")
	assert.Contains(t, err.Error(), "geo.longitude must be <= 180")

	long := valid
	long.Name = string(make([]byte, 201))
	assert.ErrorContains(t, validateRequest(long), "name must be at most 200")
}
