package analytic

import (
	"math"

	"github.com/custodia-labs/jyotish/internal/core/domain"
)

// elements are mean Keplerian elements at J2000 with their rates per
// century: semi-major axis (AU), eccentricity, inclination, mean
// longitude, longitude of perihelion and of the ascending node (degrees).
type elements struct {
	a, e, i, l, peri, node                   float64
	aDot, eDot, iDot, lDot, periDot, nodeDot float64
}

var earth = elements{
	1.00000261, 0.01671123, -0.00001531, 100.46457166, 102.93768193, 0,
	0.00000562, -0.00004392, -0.01294668, 35999.37244981, 0.32327364, 0,
}

var planets = map[domain.BodyKey]elements{
	domain.BodyMercury: {
		0.38709927, 0.20563593, 7.00497902, 252.25032350, 77.45779628, 48.33076593,
		0.00000037, 0.00001906, -0.00594749, 149472.67411175, 0.16047689, -0.12534081,
	},
	domain.BodyVenus: {
		0.72333566, 0.00677672, 3.39467605, 181.97909950, 131.60246718, 76.67984255,
		0.00000390, -0.00004107, -0.00078890, 58517.81538729, 0.00268329, -0.27769418,
	},
	domain.BodyMars: {
		1.52371034, 0.09339410, 1.84969142, -4.55343205, -23.94362959, 49.55953891,
		0.00001847, 0.00007882, -0.00813131, 19140.30268499, 0.44441088, -0.29257343,
	},
	domain.BodyJupiter: {
		5.20288700, 0.04838624, 1.30439695, 34.39644051, 14.72847983, 100.47390909,
		-0.00011607, -0.00013253, -0.00183714, 3034.74612775, 0.21252668, 0.20469106,
	},
	domain.BodySaturn: {
		9.53667594, 0.05386179, 2.48599187, 49.95424423, 92.59887831, 113.66242448,
		-0.00125060, -0.00050991, 0.00193609, 1222.49362201, -0.41897216, -0.28867794,
	},
}

// precessionRate converts J2000 ecliptic longitudes to the equinox of date.
const precessionRate = 1.396971

// planetPosition is the geocentric ecliptic longitude and latitude of a planet.
func planetPosition(body domain.BodyKey, t float64) (float64, float64) {
	px, py, pz := heliocentric(planets[body], t)
	ex, ey, ez := heliocentric(earth, t)
	x, y, z := px-ex, py-ey, pz-ez

	lon := deg(math.Atan2(y, x)) + precessionRate*t
	lat := deg(math.Atan2(z, math.Hypot(x, y)))
	return domain.NormalizeDegrees(lon), lat
}

// heliocentric returns J2000 ecliptic rectangular coordinates in AU.
func heliocentric(el elements, t float64) (float64, float64, float64) {
	a := el.a + el.aDot*t
	e := el.e + el.eDot*t
	i := rad(el.i + el.iDot*t)
	l := el.l + el.lDot*t
	peri := el.peri + el.periDot*t
	node := el.node + el.nodeDot*t

	w := rad(peri - node)
	m := rad(domain.NormalizeDegrees(l - peri))
	ecc := kepler(m, e)

	xp := a * (math.Cos(ecc) - e)
	yp := a * math.Sqrt(1-e*e) * math.Sin(ecc)

	cw, sw := math.Cos(w), math.Sin(w)
	cn, sn := math.Cos(rad(node)), math.Sin(rad(node))
	ci, si := math.Cos(i), math.Sin(i)

	x := (cw*cn-sw*sn*ci)*xp + (-sw*cn-cw*sn*ci)*yp
	y := (cw*sn+sw*cn*ci)*xp + (-sw*sn+cw*cn*ci)*yp
	z := sw*si*xp + cw*si*yp
	return x, y, z
}

// kepler solves E - e sin E = M by Newton iteration.
func kepler(m, e float64) float64 {
	ecc := m + e*math.Sin(m)
	for range 20 {
		delta := (ecc - e*math.Sin(ecc) - m) / (1 - e*math.Cos(ecc))
		ecc -= delta
		if math.Abs(delta) < 1e-12 {
			break
		}
	}
	return ecc
}
