// Package httpeph talks to an ephemeris over HTTP.
//
// Client implements driven.Ephemeris against a remote service and
// NewHandler exposes any driven.Ephemeris with the same JSON API, so one
// jyotish process can serve positions to others.
//
// Endpoints (all GET, JSON responses):
//
//	/position?jd=&body=
//	/transit?jd=&lat=&lon=&alt=&body=&event=&disc_center=&no_refraction=
//	/ayanamsa?jd=
package httpeph
