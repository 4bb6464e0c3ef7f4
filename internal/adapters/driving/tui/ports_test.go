package tui

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/jyotish/internal/core/domain"
	"github.com/custodia-labs/jyotish/internal/core/ports/driving"
)

// MockChartService implements driving.ChartService for testing.
type MockChartService struct {
	driving.ChartService

	ComputeFunc func(ctx context.Context, req domain.ChartRequest) (*domain.Chart, error)
}

func (m *MockChartService) Compute(ctx context.Context, req domain.ChartRequest) (*domain.Chart, error) {
	if m.ComputeFunc != nil {
		return m.ComputeFunc(ctx, req)
	}
	return &domain.Chart{Request: req, JD: domain.JulianDayFromTime(req.Time)}, nil
}

// MockReferenceService implements driving.ReferenceService for testing.
type MockReferenceService struct {
	driving.ReferenceService
}

func (m *MockReferenceService) Current() *domain.ReferenceData {
	return &domain.ReferenceData{}
}

func (m *MockReferenceService) Source() string {
	return "embedded"
}

func TestNewPorts(t *testing.T) {
	chart := &MockChartService{}
	ref := &MockReferenceService{}

	ports := NewPorts(chart, ref)

	assert.Same(t, chart, ports.Chart)
	assert.Same(t, ref, ports.Reference)
}

func TestPorts_Validate(t *testing.T) {
	t.Run("chart required", func(t *testing.T) {
		assert.ErrorIs(t, (&Ports{}).Validate(), ErrMissingChartService)
	})

	t.Run("reference optional", func(t *testing.T) {
		assert.NoError(t, (&Ports{Chart: &MockChartService{}}).Validate())
	})
}
