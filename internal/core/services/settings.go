package services

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/custodia-labs/jyotish/internal/core/domain"
	"github.com/custodia-labs/jyotish/internal/core/ports/driven"
	"github.com/custodia-labs/jyotish/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyLeapRule      = "calculation.leap_rule"
	keyTradition     = "calculation.tradition"
	keyExaltationOrb = "calculation.exaltation_orb"
	keyDashaSystem   = "dasha.system"
	keyDashaDepth    = "dasha.depth"
	keyYearLength    = "dasha.year_length"
	keyBackend       = "ephemeris.backend"
	keyBaseURL       = "ephemeris.base_url"
	keyRPS           = "ephemeris.requests_per_second"
	keyDiscCenter    = "ephemeris.disc_center"
	keyNoRefraction  = "ephemeris.no_refraction"
)

// Setting limits.
const (
	maxDashaDepth    = 5
	maxExaltationOrb = 30.0
)

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings.
// Missing or invalid stored values fall back to the defaults.
func (s *SettingsService) Get() (*domain.ChartSettings, error) {
	defaults := domain.DefaultChartSettings()

	settings := &domain.ChartSettings{
		Calculation: domain.CalculationSettings{
			LeapRule:      s.getLeapRule(defaults.Calculation.LeapRule),
			Tradition:     s.getTradition(defaults.Calculation.Tradition),
			ExaltationOrb: s.getFloat(keyExaltationOrb, defaults.Calculation.ExaltationOrb),
		},
		Dasha: domain.DashaSettings{
			System:     s.getString(keyDashaSystem, defaults.Dasha.System),
			Depth:      s.getInt(keyDashaDepth, defaults.Dasha.Depth),
			YearLength: s.getFloat(keyYearLength, defaults.Dasha.YearLength),
		},
		Ephemeris: domain.EphemerisSettings{
			Backend:           s.getBackend(defaults.Ephemeris.Backend),
			BaseURL:           s.configStore.GetString(keyBaseURL),
			RequestsPerSecond: s.getFloat(keyRPS, defaults.Ephemeris.RequestsPerSecond),
			Flags: domain.RiseSetFlags{
				DiscCenter:   s.getBool(keyDiscCenter, defaults.Ephemeris.Flags.DiscCenter),
				NoRefraction: s.getBool(keyNoRefraction, defaults.Ephemeris.Flags.NoRefraction),
			},
		},
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.ChartSettings) error {
	values := []struct {
		key   string
		value any
	}{
		{keyLeapRule, settings.Calculation.LeapRule.String()},
		{keyTradition, settings.Calculation.Tradition.String()},
		{keyExaltationOrb, settings.Calculation.ExaltationOrb},
		{keyDashaSystem, settings.Dasha.System},
		{keyDashaDepth, settings.Dasha.Depth},
		{keyYearLength, settings.Dasha.YearLength},
		{keyBackend, settings.Ephemeris.Backend.String()},
		{keyBaseURL, settings.Ephemeris.BaseURL},
		{keyRPS, settings.Ephemeris.RequestsPerSecond},
		{keyDiscCenter, settings.Ephemeris.Flags.DiscCenter},
		{keyNoRefraction, settings.Ephemeris.Flags.NoRefraction},
	}
	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}
	return nil
}

// Set parses value for key, validates the result and persists it.
func (s *SettingsService) Set(key, value string) error {
	settings, err := s.Get()
	if err != nil {
		return err
	}
	if err := applySetting(settings, key, value); err != nil {
		return err
	}
	if err := validateSettings(settings); err != nil {
		return err
	}
	return s.Save(settings)
}

// Keys lists the settable keys.
func (s *SettingsService) Keys() []string {
	keys := []string{
		keyLeapRule, keyTradition, keyExaltationOrb,
		keyDashaSystem, keyDashaDepth, keyYearLength,
		keyBackend, keyBaseURL, keyRPS, keyDiscCenter, keyNoRefraction,
	}
	sort.Strings(keys)
	return keys
}

// Validate checks if current settings are usable.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}
	return validateSettings(settings)
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.ChartSettings {
	return domain.DefaultChartSettings()
}

func applySetting(settings *domain.ChartSettings, key, value string) error {
	var err error
	switch key {
	case keyLeapRule:
		settings.Calculation.LeapRule = domain.LeapRule(value)
	case keyTradition:
		settings.Calculation.Tradition = domain.Tradition(value)
	case keyExaltationOrb:
		settings.Calculation.ExaltationOrb, err = strconv.ParseFloat(value, 64)
	case keyDashaSystem:
		settings.Dasha.System = value
	case keyDashaDepth:
		settings.Dasha.Depth, err = strconv.Atoi(value)
	case keyYearLength:
		settings.Dasha.YearLength, err = strconv.ParseFloat(value, 64)
	case keyBackend:
		settings.Ephemeris.Backend = domain.EphemerisBackend(value)
	case keyBaseURL:
		settings.Ephemeris.BaseURL = value
	case keyRPS:
		settings.Ephemeris.RequestsPerSecond, err = strconv.ParseFloat(value, 64)
	case keyDiscCenter:
		settings.Ephemeris.Flags.DiscCenter, err = strconv.ParseBool(value)
	case keyNoRefraction:
		settings.Ephemeris.Flags.NoRefraction, err = strconv.ParseBool(value)
	default:
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}
	if err != nil {
		return fmt.Errorf("%w: %s=%q: %v", domain.ErrInvalidInput, key, value, err)
	}
	return nil
}

func validateSettings(settings *domain.ChartSettings) error {
	c, d, e := settings.Calculation, settings.Dasha, settings.Ephemeris
	switch {
	case !c.LeapRule.IsValid():
		return fmt.Errorf("%w: invalid leap rule: %s", domain.ErrInvalidInput, c.LeapRule)
	case !c.Tradition.IsValid():
		return fmt.Errorf("%w: invalid tradition: %s", domain.ErrInvalidInput, c.Tradition)
	case c.ExaltationOrb < 0 || c.ExaltationOrb > maxExaltationOrb:
		return fmt.Errorf("%w: exaltation orb %v outside [0,%v]", domain.ErrInvalidInput, c.ExaltationOrb, maxExaltationOrb)
	case d.System == "":
		return fmt.Errorf("%w: dasha system is empty", domain.ErrInvalidInput)
	case d.Depth < 1 || d.Depth > maxDashaDepth:
		return fmt.Errorf("%w: dasha depth %d outside [1,%d]", domain.ErrInvalidInput, d.Depth, maxDashaDepth)
	case d.YearLength <= 0:
		return fmt.Errorf("%w: year length %v", domain.ErrInvalidInput, d.YearLength)
	case !e.Backend.IsValid():
		return fmt.Errorf("%w: invalid ephemeris backend: %s", domain.ErrInvalidInput, e.Backend)
	case !e.IsConfigured():
		return fmt.Errorf("%w: ephemeris backend %q requires %s", domain.ErrInvalidInput, e.Backend.Description(), keyBaseURL)
	case e.RequestsPerSecond <= 0:
		return fmt.Errorf("%w: requests per second %v", domain.ErrInvalidInput, e.RequestsPerSecond)
	}
	return nil
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val == 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetFloat(key)
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

func (s *SettingsService) getLeapRule(defaultVal domain.LeapRule) domain.LeapRule {
	rule := domain.LeapRule(s.configStore.GetString(keyLeapRule))
	if !rule.IsValid() {
		return defaultVal
	}
	return rule
}

func (s *SettingsService) getTradition(defaultVal domain.Tradition) domain.Tradition {
	t := domain.Tradition(s.configStore.GetString(keyTradition))
	if !t.IsValid() {
		return defaultVal
	}
	return t
}

func (s *SettingsService) getBackend(defaultVal domain.EphemerisBackend) domain.EphemerisBackend {
	b := domain.EphemerisBackend(s.configStore.GetString(keyBackend))
	if !b.IsValid() {
		return defaultVal
	}
	return b
}
