package driven

import (
	"context"

	"github.com/custodia-labs/jyotish/internal/core/domain"
)

// ChartStore persists computed charts.
type ChartStore interface {
	// Save stores or replaces a chart by ID.
	Save(ctx context.Context, chart *domain.Chart) error

	// Get retrieves a chart by ID.
	// Returns domain.ErrNotFound if no chart has the ID.
	Get(ctx context.Context, id string) (*domain.Chart, error)

	// List returns summaries of every stored chart, newest first.
	List(ctx context.Context) ([]domain.ChartSummary, error)

	// Delete removes a chart.
	// Returns domain.ErrNotFound if no chart has the ID.
	Delete(ctx context.Context, id string) error
}
