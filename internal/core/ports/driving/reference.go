package driving

import "github.com/custodia-labs/jyotish/internal/core/domain"

// ReferenceService exposes the static tables used by chart computations.
type ReferenceService interface {
	// Current returns the active reference data.
	Current() *domain.ReferenceData

	// Validate checks reference data for completeness and consistency.
	Validate(ref *domain.ReferenceData) error

	// Reload re-reads and validates the reference source.
	Reload() error

	// Source describes where the active data came from.
	Source() string
}
