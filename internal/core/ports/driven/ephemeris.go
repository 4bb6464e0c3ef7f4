package driven

import (
	"context"

	"github.com/custodia-labs/jyotish/internal/core/domain"
)

// Ephemeris provides body positions and horizon events.
// Implementations may be a built-in analytic model or a remote service.
//
// A failure for one body or one event must not poison other calls;
// the core records it as unavailable and carries on.
type Ephemeris interface {
	// BodyPosition returns the tropical ecliptic position of a body.
	// Returns domain.ErrEphemerisUnavailable wrapped when the body cannot be resolved.
	BodyPosition(ctx context.Context, jd domain.JulianDay, body domain.BodyKey) (domain.BodyPosition, error)

	// RiseSetTransit returns the first event of the given type after jd.
	// Returns domain.ErrNoTransition when the body has no such event,
	// for example when it is circumpolar.
	RiseSetTransit(
		ctx context.Context,
		jd domain.JulianDay,
		geo domain.GeoPosition,
		body domain.BodyKey,
		event domain.EventType,
		flags domain.RiseSetFlags,
	) (domain.JulianDay, error)

	// Ayanamsa returns the sidereal offset in degrees at jd.
	Ayanamsa(ctx context.Context, jd domain.JulianDay) (float64, error)

	// Name identifies the backend in logs and output.
	Name() string

	// Close releases resources.
	Close() error
}
