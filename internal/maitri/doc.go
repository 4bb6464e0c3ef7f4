// Package maitri classifies planetary dignity and the five-fold
// relationship between bodies.
//
// Natural relationships come from the static friend/neutral/enemy sets,
// temporary relationships from the house distance between two bodies, and
// the compound relationship from a complete natural × temporary table that
// is validated when reference data is loaded.
package maitri
