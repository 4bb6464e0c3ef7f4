// Package tui provides an interactive terminal user interface for jyotish.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/jyotish/internal/core/ports/driving"
)

// Ports aggregates the driving port interfaces used by the TUI.
type Ports struct {
	// Chart computes charts and dasha trees.
	Chart driving.ChartService

	// Reference exposes the active reference tables. Optional.
	Reference driving.ReferenceService
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(chart driving.ChartService, reference driving.ReferenceService) *Ports {
	return &Ports{
		Chart:     chart,
		Reference: reference,
	}
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Chart == nil {
		return ErrMissingChartService
	}
	return nil
}
