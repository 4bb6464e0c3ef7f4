package services

import (
	"fmt"

	"github.com/custodia-labs/jyotish/internal/core/domain"
	"github.com/custodia-labs/jyotish/internal/core/ports/driven"
	"github.com/custodia-labs/jyotish/internal/core/ports/driving"
	"github.com/custodia-labs/jyotish/internal/dasha"
	"github.com/custodia-labs/jyotish/internal/jyotishday"
	"github.com/custodia-labs/jyotish/internal/maitri"
	"github.com/custodia-labs/jyotish/internal/varga"
)

// Ensure ReferenceService implements the interface.
var _ driving.ReferenceService = (*ReferenceService)(nil)

// Nakshatra table shape.
const (
	nakshatraCount = 27
	padasPerStar   = 4
)

// ReferenceService exposes and validates the static tables.
type ReferenceService struct {
	store driven.ReferenceStore
}

// NewReferenceService creates a new reference service.
func NewReferenceService(store driven.ReferenceStore) *ReferenceService {
	return &ReferenceService{store: store}
}

// Current returns the active reference data.
func (s *ReferenceService) Current() *domain.ReferenceData {
	return s.store.Current()
}

// Validate checks reference data for completeness and consistency.
func (s *ReferenceService) Validate(ref *domain.ReferenceData) error {
	return ValidateReference(ref)
}

// Reload re-reads the reference source.
func (s *ReferenceService) Reload() error {
	return s.store.Reload()
}

// Source describes where the active data came from.
func (s *ReferenceService) Source() string {
	return s.store.Source()
}

// ValidateReference checks every table. Any failure is a configuration
// error and should stop the process before a chart is computed.
func ValidateReference(ref *domain.ReferenceData) error {
	if ref == nil {
		return fmt.Errorf("%w: no reference data", domain.ErrInvalidReferenceData)
	}
	if err := maitri.ValidateBodies(ref); err != nil {
		return err
	}
	if err := maitri.ValidateCompoundTable(ref.Compound); err != nil {
		return err
	}
	if len(ref.Schemes) == 0 {
		return fmt.Errorf("%w: no divisional schemes", domain.ErrInvalidReferenceData)
	}
	if err := varga.Validate(ref.Schemes); err != nil {
		return err
	}
	if len(ref.DashaSystems) == 0 {
		return fmt.Errorf("%w: no dasha systems", domain.ErrInvalidReferenceData)
	}
	for key, sys := range ref.DashaSystems {
		if sys.Key != key {
			return fmt.Errorf("%w: dasha system %q listed under %q", domain.ErrInvalidReferenceData, sys.Key, key)
		}
		if err := dasha.Validate(sys); err != nil {
			return err
		}
	}
	if err := validateNakshatras(ref.Nakshatras); err != nil {
		return err
	}
	if err := jyotishday.ValidateChain(ref.TimeUnits); err != nil {
		return fmt.Errorf("%w: time units: %v", domain.ErrInvalidReferenceData, err)
	}
	return nil
}

func validateNakshatras(naks []domain.Nakshatra) error {
	if len(naks) != nakshatraCount {
		return fmt.Errorf("%w: %d nakshatras, want %d", domain.ErrInvalidReferenceData, len(naks), nakshatraCount)
	}
	for i, n := range naks {
		if n.Index != i {
			return fmt.Errorf("%w: nakshatra %s at position %d has index %d", domain.ErrInvalidReferenceData, n.Name, i, n.Index)
		}
		if n.Name == "" || !n.Lord.IsValid() {
			return fmt.Errorf("%w: nakshatra %d name %q lord %q", domain.ErrInvalidReferenceData, i, n.Name, n.Lord)
		}
		if n.Padas != padasPerStar {
			return fmt.Errorf("%w: nakshatra %s has %d padas", domain.ErrInvalidReferenceData, n.Name, n.Padas)
		}
	}
	return nil
}
