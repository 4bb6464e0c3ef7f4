package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/custodia-labs/jyotish/internal/core/domain"
	"github.com/custodia-labs/jyotish/internal/core/ports/driven"
)

// Ensure ChartStore implements the interface.
var _ driven.ChartStore = (*ChartStore)(nil)

// ChartStore is an in-memory implementation of driven.ChartStore.
type ChartStore struct {
	mu     sync.RWMutex
	charts map[string]domain.Chart
}

// NewChartStore creates a new in-memory chart store.
func NewChartStore() *ChartStore {
	return &ChartStore{
		charts: make(map[string]domain.Chart),
	}
}

// Save stores or replaces a chart.
func (s *ChartStore) Save(_ context.Context, chart *domain.Chart) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.charts[chart.ID] = *chart
	return nil
}

// Get retrieves a chart by ID.
func (s *ChartStore) Get(_ context.Context, id string) (*domain.Chart, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	chart, ok := s.charts[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &chart, nil
}

// List returns summaries of all charts, newest first.
func (s *ChartStore) List(_ context.Context) ([]domain.ChartSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]domain.ChartSummary, 0, len(s.charts))
	for _, chart := range s.charts {
		result = append(result, chart.Summary())
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID < result[j].ID
		}
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

// Delete removes a chart.
func (s *ChartStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.charts[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.charts, id)
	return nil
}
