package driven

import "github.com/custodia-labs/jyotish/internal/core/domain"

// ReferenceStore supplies the static tables used by chart computations.
// The returned data is shared and must be treated as read-only.
type ReferenceStore interface {
	// Current returns the active reference data.
	Current() *domain.ReferenceData

	// Reload re-reads the source. On failure the previous data stays active.
	Reload() error

	// Source describes where the data came from, e.g. "embedded" or a path.
	Source() string
}
