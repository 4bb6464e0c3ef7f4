// Package domain defines the core chart entities for Jyotish.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - JulianDay: continuous UT day count used by every computation
//   - GeoPosition: observer location on the Earth
//   - BodyPosition: one body's sidereal longitude at a moment
//   - TransitionTimes: rise/set/transit events around a reference moment
//   - JyotishDay and IndianTime: sunrise-anchored day and its subdivisions
//   - DivisionalScheme, BodyAttributes, DashaSystem: static reference data
//   - DashaPeriod: one computed planetary ruling period
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
