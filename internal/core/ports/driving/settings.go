package driving

import "github.com/custodia-labs/jyotish/internal/core/domain"

// SettingsService reads and updates the calculation settings.
type SettingsService interface {
	// Get loads the settings, filling unset keys from the defaults.
	Get() (*domain.ChartSettings, error)

	// Save writes every setting.
	Save(settings *domain.ChartSettings) error

	// Set parses value for a dotted key such as "dasha.depth", validates
	// the result and writes it.
	Set(key, value string) error

	// Keys lists the keys Set accepts.
	Keys() []string

	// Validate reports whether the stored settings can drive a chart.
	Validate() error

	// GetDefaults returns the built-in settings.
	GetDefaults() domain.ChartSettings
}
