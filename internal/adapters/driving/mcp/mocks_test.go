package mcp

import (
	"context"
	"time"

	"github.com/custodia-labs/jyotish/internal/core/domain"
)

// mockChartService is a mock implementation of driving.ChartService.
type mockChartService struct {
	chart    *domain.Chart
	tree     *domain.DashaTree
	sidereal domain.SiderealTime
	vargas   []domain.VargaValue
	charts   []domain.ChartSummary
	err      error
	saveErr  error

	lastRequest domain.ChartRequest
	lastVarga   float64
	saved       []*domain.Chart
}

func (m *mockChartService) Compute(_ context.Context, req domain.ChartRequest) (*domain.Chart, error) {
	m.lastRequest = req
	if m.err != nil {
		return nil, m.err
	}
	chart := *m.chart
	chart.Request = req
	return &chart, nil
}

func (m *mockChartService) SiderealTime(req domain.ChartRequest) (domain.SiderealTime, error) {
	m.lastRequest = req
	return m.sidereal, m.err
}

func (m *mockChartService) Day(_ context.Context, req domain.ChartRequest) (*domain.JyotishDay, *domain.IndianTime, error) {
	m.lastRequest = req
	if m.chart == nil {
		return nil, nil, m.err
	}
	return m.chart.Day, m.chart.IndianTime, m.err
}

func (m *mockChartService) Dasha(_ context.Context, req domain.ChartRequest) (*domain.DashaTree, error) {
	m.lastRequest = req
	return m.tree, m.err
}

func (m *mockChartService) Vargas(longitude float64) ([]domain.VargaValue, error) {
	m.lastVarga = longitude
	return m.vargas, m.err
}

func (m *mockChartService) Save(_ context.Context, chart *domain.Chart) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saved = append(m.saved, chart)
	return nil
}

func (m *mockChartService) Get(_ context.Context, id string) (*domain.Chart, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.chart == nil || m.chart.ID != id {
		return nil, domain.ErrNotFound
	}
	return m.chart, nil
}

func (m *mockChartService) List(_ context.Context) ([]domain.ChartSummary, error) {
	return m.charts, m.err
}

func (m *mockChartService) Delete(_ context.Context, _ string) error {
	return m.err
}

// mockReferenceService is a mock implementation of driving.ReferenceService.
type mockReferenceService struct {
	ref    *domain.ReferenceData
	source string
}

func (m *mockReferenceService) Current() *domain.ReferenceData {
	return m.ref
}

func (m *mockReferenceService) Validate(_ *domain.ReferenceData) error {
	return nil
}

func (m *mockReferenceService) Reload() error {
	return nil
}

func (m *mockReferenceService) Source() string {
	return m.source
}

// Fixture values shared by the tests.
var (
	ist       = time.FixedZone("IST", 5*3600+1800)
	fixtureJD = domain.JulianDay(2460390.0)
)

// fixtureChart returns a small chart with one running dasha chain.
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
	rise := domain.NewTransitionEvent(domain.EventRise, fixtureJD-0.25, fixtureJD)
	set := domain.NewTransitionEvent(domain.EventSet, fixtureJD+0.25, fixtureJD)

	return &domain.Chart{
		ID:       "chart-1",
		JD:       fixtureJD,
		Ayanamsa: 24.1,
		Sidereal: domain.SiderealTime{
			Mean:     domain.HMS{Hours: 6, Minutes: 30, Seconds: 15},
			Apparent: domain.HMS{Hours: 6, Minutes: 30, Seconds: 16.5},
		},
		Bodies: []domain.ChartBody{
			{
				Position:  domain.BodyPosition{Key: domain.BodyAscendant, Longitude: 95},
				Sign:      4,
				Degree:    5,
				House:     1,
				Nakshatra: 7,
				Pada:      1,
			},
			{
				Position:      domain.BodyPosition{Key: domain.BodyMercury, Longitude: 356, Speed: -0.3},
				Sign:          12,
				Degree:        26,
				House:         9,
				Nakshatra:     26,
				Pada:          3,
				Dignity:       domain.DignityDebilitated,
				Relationships: []domain.Relationship{{
					From:      domain.BodyMercury,
					To:        domain.BodySun,
					Natural:   domain.RelationFriend,
					Temporary: domain.RelationEnemy,
					Compound:  domain.CompoundNeutral,
				}},
			},
		},
		Day: &domain.JyotishDay{
			DayStart:    fixtureJD - 0.25,
			DayLength:   1,
			Progress:    0.25,
			IsDayTime:   true,
			Transitions: domain.TransitionTimes{Rise: rise, Set: set},
		},
		IndianTime: &domain.IndianTime{
			Progress: 0.25,
			Units:    []domain.TimeUnitValue{{Key: "muhurta", Value: 7.5, Whole: 7}},
		},
		Dasha:       &domain.DashaTree{System: "vimshottari", Periods: []domain.DashaPeriod{mars}},
		Unavailable: []domain.BodyKey{domain.BodySaturn},
	}
}
