package driving

import (
	"context"

	"github.com/custodia-labs/jyotish/internal/core/domain"
)

// ChartService computes and manages charts.
type ChartService interface {
	// Compute builds a complete chart for the request.
	// Returns domain.ErrInvalidInput for malformed requests and
	// domain.ErrUnknownSystem for an unknown dasha system. Ephemeris
	// failures for single bodies or events are recorded on the chart.
	Compute(ctx context.Context, req domain.ChartRequest) (*domain.Chart, error)

	// SiderealTime computes local mean and apparent sidereal time.
	SiderealTime(req domain.ChartRequest) (domain.SiderealTime, error)

	// Day computes the Jyotish day and its Indian time units.
	Day(ctx context.Context, req domain.ChartRequest) (*domain.JyotishDay, *domain.IndianTime, error)

	// Dasha computes the period tree anchored to the Moon at the request moment.
	Dasha(ctx context.Context, req domain.ChartRequest) (*domain.DashaTree, error)

	// Vargas computes the divisional longitudes of a sidereal longitude
	// for the configured tradition.
	Vargas(longitude float64) ([]domain.VargaValue, error)

	// Save persists a computed chart.
	Save(ctx context.Context, chart *domain.Chart) error

	// Get retrieves a stored chart by ID.
	Get(ctx context.Context, id string) (*domain.Chart, error)

	// List returns all stored charts.
	List(ctx context.Context) ([]domain.ChartSummary, error)

	// Delete removes a stored chart.
	Delete(ctx context.Context, id string) error
}
