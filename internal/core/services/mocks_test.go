package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	ephmemory "github.com/custodia-labs/jyotish/internal/adapters/driven/ephemeris/memory"
	"github.com/custodia-labs/jyotish/internal/adapters/driven/refdata"
	"github.com/custodia-labs/jyotish/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/jyotish/internal/core/domain"
	"github.com/custodia-labs/jyotish/internal/core/ports/driven"
	"github.com/custodia-labs/jyotish/internal/core/ports/driving"
)

// --- Fixtures ---

// chartMoment is noon UT on the 2024 March equinox.
var chartMoment = time.Date(2024, 3, 20, 12, 0, 0, 0, time.UTC)

const (
	chartJD      domain.JulianDay = 2460390.0
	testAyanamsa                  = 24.0
)

// tropical positions at chartJD; sidereal is 24 degrees less
var fixturePositions = []domain.BodyPosition{
	{Key: domain.BodySun, Longitude: 24, Speed: 0.99},
	{Key: domain.BodyMoon, Longitude: 119, Speed: 13.2},
	{Key: domain.BodyMars, Longitude: 35, Speed: 0.7},
	{Key: domain.BodyMercury, Longitude: 20, Speed: -0.3},
	{Key: domain.BodyJupiter, Longitude: 118, Speed: 0.1},
	{Key: domain.BodyVenus, Longitude: 3, Speed: 1.2},
	{Key: domain.BodySaturn, Longitude: 332, Speed: 0.12},
	{Key: domain.BodyRahu, Longitude: 40, Speed: -0.05},
	{Key: domain.BodyKetu, Longitude: 220, Speed: -0.05},
}

// newFixtureEphemeris has the Sun rising at 06:00, culminating at 12:00
// and setting at 18:00 UT every day around chartMoment.
func newFixtureEphemeris() *ephmemory.Ephemeris {
	eph := ephmemory.New(chartJD)
	for _, p := range fixturePositions {
		eph.SetPosition(p)
	}
	eph.SetAyanamsa(testAyanamsa)

	const from = chartJD - 1.5
	eph.AddDaily(domain.EventRise, from, 0.25, 4)
	eph.AddDaily(domain.EventSet, from, 0.75, 4)
	eph.AddDaily(domain.EventMeridianTransit, from, 0.5, 4)
	eph.AddDaily(domain.EventAntimeridianTransit, from, 0, 4)
	return eph
}

func testReference(t *testing.T) *domain.ReferenceData {
	t.Helper()
	ref, err := refdata.Default()
	require.NoError(t, err)
	return ref
}

func newTestChartService(t *testing.T, eph driven.Ephemeris) (*ChartService, *memory.ConfigStore) {
	t.Helper()
	config := memory.NewConfigStore()
	svc := NewChartService(eph, &mockReferenceStore{ref: testReference(t)}, memory.NewChartStore(), NewSettingsService(config))
	svc.now = func() time.Time { return time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC) }
	svc.newID = func() string { return "chart-1" }
	return svc, config
}

func testRequest() domain.ChartRequest {
	return domain.ChartRequest{
		Name: "equinox",
		Time: chartMoment,
		Geo:  domain.GeoPosition{Latitude: 12.97, Longitude: 77.59, Altitude: 920},
	}
}

// --- Mock implementations ---

// mockReferenceStore implements driven.ReferenceStore for testing.
type mockReferenceStore struct {
	ref       *domain.ReferenceData
	reloadErr error
	reloads   int
}

func (m *mockReferenceStore) Current() *domain.ReferenceData { return m.ref }

func (m *mockReferenceStore) Reload() error {
	m.reloads++
	return m.reloadErr
}

func (m *mockReferenceStore) Source() string { return "mock" }

// mockSettingsService implements driving.SettingsService for testing.
type mockSettingsService struct {
	getErr error
}

var _ driving.SettingsService = (*mockSettingsService)(nil)

func (m *mockSettingsService) Get() (*domain.ChartSettings, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	s := domain.DefaultChartSettings()
	return &s, nil
}

func (m *mockSettingsService) Save(*domain.ChartSettings) error { return nil }
func (m *mockSettingsService) Set(string, string) error         { return nil }
func (m *mockSettingsService) Keys() []string                   { return nil }
func (m *mockSettingsService) Validate() error                  { return nil }
func (m *mockSettingsService) GetDefaults() domain.ChartSettings {
	return domain.DefaultChartSettings()
}

// transitCall is one recorded RiseSetTransit call.
type transitCall struct {
	start domain.JulianDay
	event domain.EventType
	body  domain.BodyKey
}

// recordingEphemeris wraps an ephemeris and records horizon lookups.
type recordingEphemeris struct {
	driven.Ephemeris

	mu    sync.Mutex
	calls []transitCall
}

func (r *recordingEphemeris) RiseSetTransit(
	ctx context.Context,
	jd domain.JulianDay,
	geo domain.GeoPosition,
	body domain.BodyKey,
	event domain.EventType,
	flags domain.RiseSetFlags,
) (domain.JulianDay, error) {
	r.mu.Lock()
	r.calls = append(r.calls, transitCall{start: jd, event: event, body: body})
	r.mu.Unlock()
	return r.Ephemeris.RiseSetTransit(ctx, jd, geo, body, event, flags)
}

// earlyRiseEphemeris reports every sunrise 0.3 days before the search start.
type earlyRiseEphemeris struct {
	driven.Ephemeris
}

func (e *earlyRiseEphemeris) RiseSetTransit(
	ctx context.Context,
	jd domain.JulianDay,
	geo domain.GeoPosition,
	body domain.BodyKey,
	event domain.EventType,
	flags domain.RiseSetFlags,
) (domain.JulianDay, error) {
	if event == domain.EventRise {
		return jd - 0.3, nil
	}
	return e.Ephemeris.RiseSetTransit(ctx, jd, geo, body, event, flags)
}
