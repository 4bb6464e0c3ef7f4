package domain

import "fmt"

// GeoPosition is an observer location.
// Longitude is positive east of Greenwich; altitude is metres above sea level.
type GeoPosition struct {
	Latitude  float64 `json:"latitude" validate:"gte=-90,lte=90"`
	Longitude float64 `json:"longitude" validate:"gte=-180,lte=180"`
	Altitude  float64 `json:"altitude" validate:"gte=-1000"`
}

// Validate checks the coordinate ranges.
func (g GeoPosition) Validate() error {
	if g.Latitude < -90 || g.Latitude > 90 {
		return fmt.Errorf("%w: latitude %v out of range [-90,90]", ErrInvalidInput, g.Latitude)
	}
	if g.Longitude < -180 || g.Longitude > 180 {
		return fmt.Errorf("%w: longitude %v out of range [-180,180]", ErrInvalidInput, g.Longitude)
	}
	if g.Altitude < -1000 {
		return fmt.Errorf("%w: altitude %v below -1000 m", ErrInvalidInput, g.Altitude)
	}
	return nil
}
