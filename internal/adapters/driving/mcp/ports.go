package mcp

import (
	"github.com/custodia-labs/jyotish/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Chart computes and stores charts.
	Chart driving.ChartService

	// Reference exposes the static tables. Optional.
	Reference driving.ReferenceService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Chart == nil {
		return ErrMissingChartService
	}
	return nil
}
