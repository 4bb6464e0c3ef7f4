// Package services implements the driving ports on top of the driven ones.
//
// ChartService composes the calculators under internal/ (sidereal, varga,
// maitri, jyotishday, dasha) with the ephemeris and reference tables.
// SettingsService and ReferenceService wrap their stores with validation.
package services
