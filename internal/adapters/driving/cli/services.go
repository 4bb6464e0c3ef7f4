package cli

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/custodia-labs/jyotish/internal/adapters/driven/config/file"
	"github.com/custodia-labs/jyotish/internal/adapters/driven/ephemeris/analytic"
	"github.com/custodia-labs/jyotish/internal/adapters/driven/ephemeris/httpeph"
	"github.com/custodia-labs/jyotish/internal/adapters/driven/refdata"
	"github.com/custodia-labs/jyotish/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/jyotish/internal/core/domain"
	"github.com/custodia-labs/jyotish/internal/core/ports/driven"
	"github.com/custodia-labs/jyotish/internal/core/ports/driving"
	"github.com/custodia-labs/jyotish/internal/core/services"
	"github.com/custodia-labs/jyotish/internal/logger"
)

// Services holds the service graph the commands run against.
type Services struct {
	Chart     driving.ChartService
	Settings  driving.SettingsService
	Reference driving.ReferenceService

	// ReferenceStore is watched for changes by long-running commands.
	// Nil when the reference data is not file backed.
	ReferenceStore *refdata.Store

	// Closers are released when the command finishes.
	Closers []io.Closer
}

var (
	chartService     driving.ChartService
	settingsService  driving.SettingsService
	referenceService driving.ReferenceService
	referenceStore   *refdata.Store
	closers          []io.Closer
)

// SetServices injects a prebuilt service graph. Commands then skip
// building their own from flags and configuration files.
func SetServices(s *Services) {
	if s == nil {
		chartService, settingsService, referenceService, referenceStore, closers = nil, nil, nil, nil, nil
		return
	}
	chartService = s.Chart
	settingsService = s.Settings
	referenceService = s.Reference
	referenceStore = s.ReferenceStore
	closers = s.Closers
}

// bootstrap builds the service graph from flags, environment and the
// configuration directory. It is a no-op when services were injected.
func bootstrap() error {
	if chartService != nil {
		return nil
	}
	logger.Section("Bootstrap")

	configDir := viper.GetString(flagConfigDir)
	if configDir == "" {
		dir, err := file.DefaultDir()
		if err != nil {
			return fmt.Errorf("resolving config directory: %w", err)
		}
		configDir = dir
	}

	configStore, err := file.NewConfigStore(configDir)
	if err != nil {
		return fmt.Errorf("opening config: %w", err)
	}
	settings := services.NewSettingsService(configStore)
	current, err := settings.Get()
	if err != nil {
		return fmt.Errorf("loading settings: %w", err)
	}
	logger.Debug("Config: %s", configStore.Path())

	refPath := viper.GetString(flagReference)
	if refPath == "" {
		refPath = refdata.FindOverride(configDir)
	}
	refStore, err := refdata.NewStore(refdata.Options{Path: refPath, Validate: services.ValidateReference})
	if err != nil {
		return fmt.Errorf("loading reference data: %w", err)
	}
	logger.Debug("Reference data: %s", refStore.Source())

	dataDir := viper.GetString(flagDataDir)
	if dataDir == "" {
		dataDir = filepath.Join(configDir, "data")
	}
	store, err := sqlite.NewStore(dataDir)
	if err != nil {
		return fmt.Errorf("opening chart database: %w", err)
	}
	logger.Debug("Chart database: %s", store.Path())

	eph := newEphemeris(current.Ephemeris)
	logger.Debug("Ephemeris: %s", eph.Name())

	s := &Services{
		Chart:     services.NewChartService(eph, refStore, store.ChartStore(), settings),
		Settings:  settings,
		Reference: services.NewReferenceService(refStore),
		Closers:   []io.Closer{eph, store},
	}
	if refStore.Path() != "" {
		s.ReferenceStore = refStore
	}
	SetServices(s)
	return nil
}

// newEphemeris builds the configured backend.
func newEphemeris(cfg domain.EphemerisSettings) driven.Ephemeris {
	if cfg.Backend == domain.EphemerisHTTP {
		return httpeph.NewClient(httpeph.Config{
			BaseURL:           cfg.BaseURL,
			RequestsPerSecond: cfg.RequestsPerSecond,
		})
	}
	return analytic.New()
}

// closeServices releases bootstrapped resources and resets the graph.
func closeServices() {
	if len(closers) == 0 {
		return
	}
	if err := closeAll(closers); err != nil {
		logger.Warn("closing services: %v", err)
	}
	SetServices(nil)
}
