package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/jyotish/internal/core/domain"
	"github.com/custodia-labs/jyotish/internal/core/ports/driven"
	"github.com/custodia-labs/jyotish/internal/core/ports/driving"
	"github.com/custodia-labs/jyotish/internal/dasha"
	"github.com/custodia-labs/jyotish/internal/jyotishday"
	"github.com/custodia-labs/jyotish/internal/logger"
	"github.com/custodia-labs/jyotish/internal/maitri"
	"github.com/custodia-labs/jyotish/internal/sidereal"
	"github.com/custodia-labs/jyotish/internal/varga"
)

// Ensure ChartService implements the interface.
var _ driving.ChartService = (*ChartService)(nil)

// ErrStoreNotConfigured is returned by persistence calls without a chart store.
var ErrStoreNotConfigured = errors.New("chart store not configured")

// ChartService computes charts from an ephemeris and reference tables.
type ChartService struct {
	ephemeris   driven.Ephemeris
	refs        driven.ReferenceStore
	store       driven.ChartStore
	settings    driving.SettingsService
	transitions *TransitionCalculator

	now   func() time.Time
	newID func() string
}

// NewChartService creates a new chart service.
// store may be nil; charts are then computed but cannot be saved.
func NewChartService(
	ephemeris driven.Ephemeris,
	refs driven.ReferenceStore,
	store driven.ChartStore,
	settings driving.SettingsService,
) *ChartService {
	return &ChartService{
		ephemeris:   ephemeris,
		refs:        refs,
		store:       store,
		settings:    settings,
		transitions: NewTransitionCalculator(ephemeris),
		now:         time.Now,
		newID:       uuid.NewString,
	}
}

// Compute builds a complete chart for the request.
func (s *ChartService) Compute(ctx context.Context, req domain.ChartRequest) (*domain.Chart, error) {
	logger.Section("Chart Computation")

	if err := validateRequest(req); err != nil {
		return nil, err
	}
	settings, err := s.settings.Get()
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	ref := s.refs.Current()
	system, err := resolveSystem(ref, settings, req)
	if err != nil {
		return nil, err
	}

	jd := domain.JulianDayFromTime(req.Time)
	logger.Debug("Moment: %s (JD %.6f), geo %.4f,%.4f", req.Time.Format(time.RFC3339), float64(jd), req.Geo.Latitude, req.Geo.Longitude)
	logger.Debug("Ephemeris: %s, reference data: %s", s.ephemeris.Name(), s.refs.Source())

	chart := &domain.Chart{
		ID:        s.newID(),
		Request:   req,
		JD:        jd,
		CreatedAt: s.now().UTC(),
	}

	st := siderealFor(req, settings)
	chart.Sidereal = st.ToDomain()

	ayanamsa, err := s.ephemeris.Ayanamsa(ctx, jd)
	if err != nil {
		return nil, fmt.Errorf("ayanamsa: %w", err)
	}
	chart.Ayanamsa = ayanamsa
	logger.Debug("Ayanamsa: %.6f", ayanamsa)

	positions, unavailable := s.positions(ctx, jd, ayanamsa)
	chart.Unavailable = unavailable
	asc := ascendant(st, req.Geo.Latitude, ayanamsa)
	positions = append([]domain.BodyPosition{asc}, positions...)

	bodies := chartBodies(ref, positions, settings.Calculation.Tradition)
	chart.Bodies, err = maitri.Annotate(ref, bodies, maitri.Options{ExaltationOrb: settings.Calculation.ExaltationOrb})
	if err != nil {
		return nil, fmt.Errorf("annotate bodies: %w", err)
	}

	day, it, err := s.day(ctx, req, jd, settings, ref)
	if err != nil {
		chart.DayError = err.Error()
	} else {
		chart.Day, chart.IndianTime = day, it
	}

	if moon, ok := chart.Body(domain.BodyMoon); ok {
		chart.Dasha, err = buildTree(system, moon.Position.Longitude, jd, settings, req)
		if err != nil {
			return nil, err
		}
	} else {
		logger.Warn("Moon unavailable, no dasha computed")
	}

	logger.Info("Chart %s: %d bodies, %d unavailable", chart.ID, len(chart.Bodies), len(chart.Unavailable))
	return chart, nil
}

// SiderealTime computes local mean and apparent sidereal time.
func (s *ChartService) SiderealTime(req domain.ChartRequest) (domain.SiderealTime, error) {
	if err := validateRequest(req); err != nil {
		return domain.SiderealTime{}, err
	}
	settings, err := s.settings.Get()
	if err != nil {
		return domain.SiderealTime{}, fmt.Errorf("load settings: %w", err)
	}
	return siderealFor(req, settings).ToDomain(), nil
}

// Day computes the Jyotish day and its Indian time units.
func (s *ChartService) Day(ctx context.Context, req domain.ChartRequest) (*domain.JyotishDay, *domain.IndianTime, error) {
	if err := validateRequest(req); err != nil {
		return nil, nil, err
	}
	settings, err := s.settings.Get()
	if err != nil {
		return nil, nil, fmt.Errorf("load settings: %w", err)
	}
	return s.day(ctx, req, domain.JulianDayFromTime(req.Time), settings, s.refs.Current())
}

// Dasha computes the period tree anchored to the Moon at the request moment.
func (s *ChartService) Dasha(ctx context.Context, req domain.ChartRequest) (*domain.DashaTree, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	settings, err := s.settings.Get()
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	system, err := resolveSystem(s.refs.Current(), settings, req)
	if err != nil {
		return nil, err
	}

	jd := domain.JulianDayFromTime(req.Time)
	ayanamsa, err := s.ephemeris.Ayanamsa(ctx, jd)
	if err != nil {
		return nil, fmt.Errorf("ayanamsa: %w", err)
	}
	moon, err := s.ephemeris.BodyPosition(ctx, jd, domain.BodyMoon)
	if err != nil {
		return nil, fmt.Errorf("moon position: %w", err)
	}
	return buildTree(system, domain.NormalizeDegrees(moon.Longitude-ayanamsa), jd, settings, req)
}

// Vargas computes the divisional longitudes of a sidereal longitude.
func (s *ChartService) Vargas(longitude float64) ([]domain.VargaValue, error) {
	if math.IsNaN(longitude) || math.IsInf(longitude, 0) {
		return nil, fmt.Errorf("%w: longitude %v", domain.ErrInvalidInput, longitude)
	}
	settings, err := s.settings.Get()
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	schemes := varga.ForTradition(s.refs.Current().Schemes, settings.Calculation.Tradition)
	return varga.All(domain.NormalizeDegrees(longitude), schemes), nil
}

// Save persists a computed chart.
func (s *ChartService) Save(ctx context.Context, chart *domain.Chart) error {
	if s.store == nil {
		return ErrStoreNotConfigured
	}
	if chart == nil || chart.ID == "" {
		return fmt.Errorf("%w: chart without ID", domain.ErrInvalidInput)
	}
	return s.store.Save(ctx, chart)
}

// Get retrieves a stored chart by ID.
func (s *ChartService) Get(ctx context.Context, id string) (*domain.Chart, error) {
	if s.store == nil {
		return nil, ErrStoreNotConfigured
	}
	return s.store.Get(ctx, id)
}

// List returns all stored charts.
func (s *ChartService) List(ctx context.Context) ([]domain.ChartSummary, error) {
	if s.store == nil {
		return nil, ErrStoreNotConfigured
	}
	return s.store.List(ctx)
}

// Delete removes a stored chart.
func (s *ChartService) Delete(ctx context.Context, id string) error {
	if s.store == nil {
		return ErrStoreNotConfigured
	}
	return s.store.Delete(ctx, id)
}

// positions reads every graha concurrently and converts it to sidereal.
// Bodies the ephemeris cannot resolve are reported, not fatal.
func (s *ChartService) positions(ctx context.Context, jd domain.JulianDay, ayanamsa float64) ([]domain.BodyPosition, []domain.BodyKey) {
	results := make([]domain.BodyPosition, len(domain.Grahas))
	errs := make([]error, len(domain.Grahas))

	g, gctx := errgroup.WithContext(ctx)
	for i, key := range domain.Grahas {
		g.Go(func() error {
			results[i], errs[i] = s.ephemeris.BodyPosition(gctx, jd, key)
			return nil
		})
	}
	_ = g.Wait()

	var out []domain.BodyPosition
	var unavailable []domain.BodyKey
	for i, key := range domain.Grahas {
		if errs[i] != nil {
			logger.Warn("Position of %s unavailable: %v", key, errs[i])
			unavailable = append(unavailable, key)
			continue
		}
		p := results[i]
		p.Key = key
		p.Longitude = domain.NormalizeDegrees(p.Longitude - ayanamsa)
		logger.Debug("%s: %.4f (speed %.4f)", key, p.Longitude, p.Speed)
		out = append(out, p)
	}
	return out, unavailable
}

func (s *ChartService) day(
	ctx context.Context,
	req domain.ChartRequest,
	jd domain.JulianDay,
	settings *domain.ChartSettings,
	ref *domain.ReferenceData,
) (*domain.JyotishDay, *domain.IndianTime, error) {
	tr := s.transitions.Compute(ctx, req.Time, req.Geo, settings.Ephemeris.Flags)
	day, err := jyotishday.New(jd, tr)
	if err != nil {
		if errors.Is(err, domain.ErrInconsistentTransition) {
			logger.Warn("Jyotish day: %v", err)
		} else {
			logger.Debug("Jyotish day: %v", err)
		}
		return nil, nil, err
	}
	logger.Debug("Day start JD %.6f, length %.6f, progress %.6f", float64(day.DayStart), day.DayLength, day.Progress)

	it, err := jyotishday.IndianTime(day.Progress, ref.TimeUnits)
	if err != nil {
		return nil, nil, err
	}
	return &day, &it, nil
}

func siderealFor(req domain.ChartRequest, settings *domain.ChartSettings) sidereal.Result {
	return sidereal.Compute(sidereal.Input{
		Civil:     domain.CivilTimeFromTime(req.Time),
		Longitude: req.Geo.Longitude,
		TZOffset:  domain.TZOffsetHours(req.Time),
		LeapRule:  settings.Calculation.LeapRule,
	})
}

// ascendant derives the sidereal rising degree from apparent sidereal time.
func ascendant(st sidereal.Result, latitude, ayanamsa float64) domain.BodyPosition {
	tropical := sidereal.AscendantTropical(st.ApparentHours, st.Obliquity, latitude)
	return domain.BodyPosition{
		Key:       domain.BodyAscendant,
		Longitude: domain.NormalizeDegrees(tropical - ayanamsa),
	}
}

// chartBodies places each position in sign, whole-sign house from the
// ascendant, nakshatra and pada, and computes its vargas.
func chartBodies(ref *domain.ReferenceData, positions []domain.BodyPosition, tradition domain.Tradition) []domain.ChartBody {
	schemes := varga.ForTradition(ref.Schemes, tradition)
	ascSign := 0
	for _, p := range positions {
		if p.Key == domain.BodyAscendant {
			ascSign = p.Sign()
		}
	}

	bodies := make([]domain.ChartBody, 0, len(positions))
	for _, p := range positions {
		b := domain.ChartBody{
			Position: p,
			Sign:     p.Sign(),
			Degree:   p.Degree(),
			Vargas:   varga.All(p.Longitude, schemes),
		}
		if ascSign > 0 {
			b.House = domain.HouseFrom(ascSign, b.Sign)
		}
		// longitude is already normalized, so NakshatraOf cannot fail
		nak, frac, _ := dasha.NakshatraOf(p.Longitude, 27)
		b.Nakshatra = nak
		b.Pada = min(int(frac*4)+1, 4)
		bodies = append(bodies, b)
	}
	return bodies
}

func resolveSystem(ref *domain.ReferenceData, settings *domain.ChartSettings, req domain.ChartRequest) (domain.DashaSystem, error) {
	key := req.DashaSystem
	if key == "" {
		key = settings.Dasha.System
	}
	system, ok := ref.DashaSystem(key)
	if !ok {
		return domain.DashaSystem{}, fmt.Errorf("%w: %s", domain.ErrUnknownSystem, key)
	}
	return system, nil
}

func buildTree(
	system domain.DashaSystem,
	moonLongitude float64,
	jd domain.JulianDay,
	settings *domain.ChartSettings,
	req domain.ChartRequest,
) (*domain.DashaTree, error) {
	depth := req.DashaDepth
	if depth == 0 {
		depth = settings.Dasha.Depth
	}
	nak, frac, err := dasha.NakshatraOf(moonLongitude, system.NakshatraCount)
	if err != nil {
		return nil, err
	}
	logger.Debug("Dasha %s from nakshatra %d (%.4f elapsed), depth %d", system.Key, nak, frac, depth)

	periods, err := dasha.Build(system, nak, frac, jd, dasha.Options{
		Depth:      depth,
		YearLength: settings.Dasha.YearLength,
	})
	if err != nil {
		return nil, fmt.Errorf("dasha %s: %w", system.Key, err)
	}
	return &domain.DashaTree{System: system.Key, Periods: periods}, nil
}
