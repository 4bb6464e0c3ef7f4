// Package sidereal computes mean and apparent local sidereal time.
//
// The day count is taken from 1900-01-01 with a selectable leap-year rule,
// mean sidereal time at Greenwich comes from the Newcomb polynomial, and the
// equation of the equinoxes is evaluated from the IAU 1980 nutation series.
// Every function is total over numeric input and never returns an error;
// callers validate calendar components upstream.
package sidereal
