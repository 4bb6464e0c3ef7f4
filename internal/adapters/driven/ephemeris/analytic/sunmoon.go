package analytic

import "github.com/custodia-labs/jyotish/internal/core/domain"

// sunLongitude is the apparent geocentric longitude of the Sun.
func sunLongitude(t float64) float64 {
	l0 := 280.46646 + 36000.76983*t + 0.0003032*t*t
	m := 357.52911 + 35999.05029*t - 0.0001537*t*t
	c := (1.914602-0.004817*t-0.000014*t*t)*sinD(m) +
		(0.019993-0.000101*t)*sinD(2*m) +
		0.000289*sinD(3*m)
	omega := 125.04 - 1934.136*t
	// aberration and nutation
	return domain.NormalizeDegrees(l0 + c - 0.00569 - 0.00478*sinD(omega))
}

// moonTerm is one periodic term of the lunar series: coefficient and
// multiples of D, M, M' and F.
type moonTerm struct {
	coeff       float64
	d, m, mp, f float64
}

var moonLongitudeTerms = []moonTerm{
	{6.288774, 0, 0, 1, 0},
	{1.274027, 2, 0, -1, 0},
	{0.658314, 2, 0, 0, 0},
	{0.213618, 0, 0, 2, 0},
	{-0.185116, 0, 1, 0, 0},
	{-0.114332, 0, 0, 0, 2},
	{0.058793, 2, 0, -2, 0},
	{0.057066, 2, -1, -1, 0},
	{0.053322, 2, 0, 1, 0},
	{0.045758, 2, -1, 0, 0},
	{-0.040923, 0, 1, -1, 0},
	{-0.034720, 1, 0, 0, 0},
	{-0.030383, 0, 1, 1, 0},
	{0.015327, 2, 0, 0, -2},
	{-0.012528, 0, 0, 1, 2},
	{0.010980, 0, 0, 1, -2},
	{0.010675, 4, 0, -1, 0},
	{0.010034, 0, 0, 3, 0},
	{0.008548, 4, 0, -2, 0},
	{-0.007888, 2, 1, -1, 0},
	{-0.006766, 2, 1, 0, 0},
	{-0.005163, 1, 0, -1, 0},
	{0.004987, 1, 1, 0, 0},
	{0.004036, 2, -1, 1, 0},
}

var moonLatitudeTerms = []moonTerm{
	{5.128122, 0, 0, 0, 1},
	{0.280602, 0, 0, 1, 1},
	{0.277693, 0, 0, 1, -1},
	{0.173237, 2, 0, 0, -1},
	{0.055413, 2, 0, -1, 1},
	{0.046271, 2, 0, -1, -1},
	{0.032573, 2, 0, 0, 1},
	{0.017198, 0, 0, 2, 1},
}

// moonPosition is the geocentric ecliptic longitude and latitude of the Moon.
func moonPosition(t float64) (float64, float64) {
	lp := 218.3164477 + 481267.88123421*t - 0.0015786*t*t
	d := 297.8501921 + 445267.1114034*t - 0.0018819*t*t
	m := 357.5291092 + 35999.0502909*t - 0.0001536*t*t
	mp := 134.9633964 + 477198.8675055*t + 0.0087414*t*t
	f := 93.2720950 + 483202.0175233*t - 0.0036539*t*t

	arg := func(term moonTerm) float64 {
		return term.d*d + term.m*m + term.mp*mp + term.f*f
	}

	lon := lp
	for _, term := range moonLongitudeTerms {
		lon += term.coeff * sinD(arg(term))
	}
	var lat float64
	for _, term := range moonLatitudeTerms {
		lat += term.coeff * sinD(arg(term))
	}
	return domain.NormalizeDegrees(lon), lat
}

// meanNode is the longitude of the Moon's mean ascending node.
func meanNode(t float64) float64 {
	return domain.NormalizeDegrees(125.0445479 - 1934.1362891*t + 0.0020754*t*t)
}
