package domain

import "errors"

// Domain errors represent calculation and configuration failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or out-of-range input.
	// Inputs are rejected with this error before any computation starts.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnknownBody indicates a body key missing from the reference tables.
	ErrUnknownBody = errors.New("unknown body")

	// ErrUnknownSystem indicates a dasha system key missing from the reference tables.
	ErrUnknownSystem = errors.New("unknown dasha system")

	// Ephemeris Errors.

	// ErrEphemerisUnavailable indicates the ephemeris call failed or returned no data.
	// It is reported per body or per event, never as a fatal chart failure.
	ErrEphemerisUnavailable = errors.New("ephemeris unavailable")

	// ErrNoTransition indicates a body has no rise or set on the requested day,
	// for example a circumpolar Sun at high latitude.
	ErrNoTransition = errors.New("no transition")

	// ErrInconsistentTransition indicates transition data that cannot describe
	// a real day, such as a progress value outside [0,1).
	// This points at an ephemeris defect rather than an astronomical condition.
	ErrInconsistentTransition = errors.New("inconsistent transition data")

	// Reference Data Errors.

	// ErrUnmappedRelationship indicates the compound relationship table does
	// not cover every natural/temporary combination. Fatal at load time.
	ErrUnmappedRelationship = errors.New("unmapped relationship combination")

	// ErrInvalidReferenceData indicates a static table failed validation.
	ErrInvalidReferenceData = errors.New("invalid reference data")
)
