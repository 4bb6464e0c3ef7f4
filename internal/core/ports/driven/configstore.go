package driven

// ConfigStore is the key-value store behind settings. Keys are dotted
// section paths such as "dasha.year_length" or "ephemeris.backend".
type ConfigStore interface {
	// Get returns the raw value and whether the key is set.
	Get(key string) (any, bool)

	// GetString returns the value as a string, or "" when unset or not a string.
	GetString(key string) string

	// GetInt returns the value as an int, or 0 when unset or not numeric.
	GetInt(key string) int

	// GetFloat returns the value as a float64, or 0 when unset or not numeric.
	GetFloat(key string) float64

	// GetBool returns the value as a bool, or false when unset.
	GetBool(key string) bool

	// Set stores a value and writes the file.
	Set(key string, value any) error

	// Save writes the current values.
	Save() error

	// Load re-reads the file, discarding unsaved values.
	Load() error

	// Path is the backing file, empty for in-memory stores.
	Path() string
}
