package cli

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/custodia-labs/jyotish/internal/core/domain"
	"github.com/custodia-labs/jyotish/internal/core/ports/driving"
)

// MockChartService is a mock implementation of driving.ChartService.
type MockChartService struct {
	driving.ChartService

	chart    *domain.Chart
	charts   []domain.ChartSummary
	sidereal domain.SiderealTime
	vargas   []domain.VargaValue
	err      error

	lastRequest domain.ChartRequest
	saved       int
	deleted     []string
}

func (m *MockChartService) Compute(_ context.Context, req domain.ChartRequest) (*domain.Chart, error) {
	m.lastRequest = req
	if m.err != nil {
		return nil, m.err
	}
	chart := *m.chart
	chart.Request = req
	return &chart, nil
}

func (m *MockChartService) SiderealTime(req domain.ChartRequest) (domain.SiderealTime, error) {
	m.lastRequest = req
	return m.sidereal, m.err
}

func (m *MockChartService) Dasha(_ context.Context, req domain.ChartRequest) (*domain.DashaTree, error) {
	m.lastRequest = req
	if m.err != nil {
		return nil, m.err
	}
	return m.chart.Dasha, nil
}

func (m *MockChartService) Vargas(_ float64) ([]domain.VargaValue, error) {
	return m.vargas, m.err
}

func (m *MockChartService) Save(_ context.Context, _ *domain.Chart) error {
	m.saved++
	return m.err
}

func (m *MockChartService) Get(_ context.Context, id string) (*domain.Chart, error) {
	if m.chart == nil || m.chart.ID != id {
		return nil, domain.ErrNotFound
	}
	return m.chart, nil
}

func (m *MockChartService) List(_ context.Context) ([]domain.ChartSummary, error) {
	return m.charts, m.err
}

func (m *MockChartService) Delete(_ context.Context, id string) error {
	if m.chart == nil || m.chart.ID != id {
		return domain.ErrNotFound
	}
	m.deleted = append(m.deleted, id)
	return nil
}

var fixtureJD = domain.JulianDay(2460390.0)

// fixtureChart returns a chart with one running dasha chain.
func fixtureChart() *domain.Chart {
	mars := domain.DashaPeriod{
		Body:    domain.BodyMars,
		StartJD: fixtureJD - 100,
		EndJD:   fixtureJD + 300,
		Depth:   1,
		Sub: []domain.DashaPeriod{
			{Body: domain.BodyMars, StartJD: fixtureJD - 100, EndJD: fixtureJD - 50, Depth: 2},
			{Body: domain.BodyRahu, StartJD: fixtureJD - 50, EndJD: fixtureJD + 300, Depth: 2},
		},
	}

	return &domain.Chart{
		ID:       "chart-1",
		JD:       fixtureJD,
		Ayanamsa: 24.1,
		Bodies: []domain.ChartBody{
			{
				Position:  domain.BodyPosition{Key: domain.BodyMercury, Longitude: 356, Speed: -0.3},
				Sign:      12,
				Degree:    26,
				House:     9,
				Nakshatra: 26,
				Pada:      3,
				Dignity:   domain.DignityDebilitated,
			},
		},
		DayError:    "ephemeris unavailable",
		Dasha:       &domain.DashaTree{System: "vimshottari", Periods: []domain.DashaPeriod{mars}},
		Unavailable: []domain.BodyKey{domain.BodySaturn},
	}
}

// useServices injects s for the duration of the test.
func useServices(t *testing.T, s *Services) {
	t.Helper()
	SetServices(s)
	t.Cleanup(func() { SetServices(nil) })
}

// execute runs the root command with args and returns its output.
// Tests pass --output explicitly since flag values persist between runs.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	})

	err := rootCmd.Execute()
	return buf.String(), err
}

// fixedNow pins the clock used for "now" moments.
func fixedNow(t *testing.T, at time.Time) {
	t.Helper()
	original := now
	now = func() time.Time { return at }
	t.Cleanup(func() { now = original })
}
