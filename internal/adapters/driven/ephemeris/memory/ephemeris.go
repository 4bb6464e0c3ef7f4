// Package memory provides a scripted in-memory ephemeris.
//
// Positions move linearly from an epoch and horizon events are fixed
// lists, which makes chart and day computations reproducible in tests and
// demos without an ephemeris service.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/custodia-labs/jyotish/internal/core/domain"
	"github.com/custodia-labs/jyotish/internal/core/ports/driven"
)

// Ensure Ephemeris implements the interface.
var _ driven.Ephemeris = (*Ephemeris)(nil)

// Ephemeris is a thread-safe scripted ephemeris.
type Ephemeris struct {
	mu        sync.RWMutex
	epoch     domain.JulianDay
	positions map[domain.BodyKey]domain.BodyPosition
	events    map[domain.EventType][]domain.JulianDay
	failures  map[domain.BodyKey]error
	ayanamsa  float64
}

// New creates an empty ephemeris whose positions are given at epoch.
func New(epoch domain.JulianDay) *Ephemeris {
	return &Ephemeris{
		epoch:     epoch,
		positions: make(map[domain.BodyKey]domain.BodyPosition),
		events:    make(map[domain.EventType][]domain.JulianDay),
		failures:  make(map[domain.BodyKey]error),
	}
}

// SetPosition sets a body's position at the epoch.
func (e *Ephemeris) SetPosition(pos domain.BodyPosition) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.positions[pos.Key] = pos
}

// SetAyanamsa sets a constant ayanamsa.
func (e *Ephemeris) SetAyanamsa(value float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.ayanamsa = value
}

// AddEvents records event times for every body.
func (e *Ephemeris) AddEvents(event domain.EventType, times ...domain.JulianDay) {
	e.mu.Lock()
	defer e.mu.Unlock()
	list := append(e.events[event], times...)
	sort.Slice(list, func(i, j int) bool { return list[i] < list[j] })
	e.events[event] = list
}

// AddDaily records an event at the same fraction of each day for days
// consecutive days starting at the civil midnight from.
func (e *Ephemeris) AddDaily(event domain.EventType, from domain.JulianDay, fraction float64, days int) {
	times := make([]domain.JulianDay, days)
	for i := range times {
		times[i] = from.Add(float64(i) + fraction)
	}
	e.AddEvents(event, times...)
}

// Fail makes every call for body return err.
func (e *Ephemeris) Fail(body domain.BodyKey, err error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.failures[body] = err
}

// Name identifies the backend.
func (e *Ephemeris) Name() string {
	return "memory"
}

// Close releases resources.
func (e *Ephemeris) Close() error {
	return nil
}

// BodyPosition extrapolates the stored position linearly to jd.
func (e *Ephemeris) BodyPosition(ctx context.Context, jd domain.JulianDay, body domain.BodyKey) (domain.BodyPosition, error) {
	if err := ctx.Err(); err != nil {
		return domain.BodyPosition{}, err
	}
	e.mu.RLock()
	defer e.mu.RUnlock()

	if err := e.failures[body]; err != nil {
		return domain.BodyPosition{}, err
	}
	pos, ok := e.positions[body]
	if !ok {
		return domain.BodyPosition{}, fmt.Errorf("%w: no fixture for %s", domain.ErrEphemerisUnavailable, body)
	}
	pos.Longitude = domain.NormalizeDegrees(pos.Longitude + pos.Speed*float64(jd-e.epoch))
	return pos, nil
}

// RiseSetTransit returns the first recorded event at or after jd.
func (e *Ephemeris) RiseSetTransit(
	ctx context.Context,
	jd domain.JulianDay,
	_ domain.GeoPosition,
	body domain.BodyKey,
	event domain.EventType,
	_ domain.RiseSetFlags,
) (domain.JulianDay, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	e.mu.RLock()
	defer e.mu.RUnlock()

	if err := e.failures[body]; err != nil {
		return 0, err
	}
	list := e.events[event]
	i := sort.Search(len(list), func(i int) bool { return list[i] >= jd })
	if i == len(list) {
		return 0, fmt.Errorf("%w: no %s after %v", domain.ErrNoTransition, event, jd)
	}
	return list[i], nil
}

// Ayanamsa returns the configured constant.
func (e *Ephemeris) Ayanamsa(ctx context.Context, _ domain.JulianDay) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.ayanamsa, nil
}
