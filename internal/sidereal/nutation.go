package sidereal

import "math"

// nutationTerm is one row of the nutation-in-longitude series.
// Multipliers apply to D, M, M', F and Ω; the amplitude is
// (S + ST*T) in units of 0.0001 arcsecond.
type nutationTerm struct {
	d, m, mp, f, om int
	s, st           float64
}

// nutationTerms is the IAU 1980 series truncated to terms of 0.0003" and larger.
var nutationTerms = []nutationTerm{
	{0, 0, 0, 0, 1, -171996, -174.2},
	{-2, 0, 0, 2, 2, -13187, -1.6},
	{0, 0, 0, 2, 2, -2274, -0.2},
	{0, 0, 0, 0, 2, 2062, 0.2},
	{0, 1, 0, 0, 0, 1426, -3.4},
	{0, 0, 1, 0, 0, 712, 0.1},
	{-2, 1, 0, 2, 2, -517, 1.2},
	{0, 0, 0, 2, 1, -386, -0.4},
	{0, 0, 1, 2, 2, -301, 0},
	{-2, -1, 0, 2, 2, 217, -0.5},
	{-2, 0, 1, 0, 0, -158, 0},
	{-2, 0, 0, 2, 1, 129, 0.1},
	{0, 0, -1, 2, 2, 123, 0},
	{2, 0, 0, 0, 0, 63, 0},
	{0, 0, 1, 0, 1, 63, 0.1},
	{2, 0, -1, 2, 2, -59, 0},
	{0, 0, -1, 0, 1, -58, -0.1},
	{0, 0, 1, 2, 1, -51, 0},
	{-2, 0, 2, 0, 0, 48, 0},
	{0, 0, -2, 2, 1, 46, 0},
	{2, 0, 0, 2, 2, -38, 0},
	{0, 0, 2, 2, 2, -31, 0},
	{0, 0, 2, 0, 0, 29, 0},
	{-2, 0, 1, 2, 2, 29, 0},
	{0, 0, 0, 2, 0, 26, 0},
	{-2, 0, 0, 2, 0, -22, 0},
	{0, 0, -1, 2, 1, 21, 0},
	{0, 2, 0, 0, 0, 17, -0.1},
	{2, 0, -1, 0, 1, 16, 0},
	{-2, 2, 0, 2, 2, -16, 0.1},
	{0, 1, 0, 0, 1, -15, 0},
	{-2, 0, 1, 0, 1, -13, 0},
	{0, -1, 0, 0, 1, -12, 0},
	{0, 0, 2, -2, 0, 11, 0},
	{2, 0, -1, 2, 1, -10, 0},
	{2, 0, 1, 2, 2, -8, 0},
	{0, 1, 0, 2, 2, 7, 0},
	{-2, 1, 1, 0, 0, -7, 0},
	{0, -1, 0, 2, 2, -7, 0},
	{2, 0, 0, 2, 1, -7, 0},
	{2, 0, 1, 0, 0, 6, 0},
	{-2, 0, 2, 2, 2, 6, 0},
	{-2, 0, 1, 2, 1, 6, 0},
	{2, 0, -2, 0, 1, -6, 0},
	{2, 0, 0, 0, 1, -6, 0},
	{0, -1, 1, 0, 0, 5, 0},
	{-2, -1, 0, 2, 1, -5, 0},
	{-2, 0, 0, 0, 1, -5, 0},
	{0, 0, 2, 2, 1, -5, 0},
	{-2, 0, 2, 0, 1, 4, 0},
	{-2, 1, 0, 2, 1, 4, 0},
	{0, 0, 1, -2, 0, 4, 0},
	{-1, 0, 1, 0, 0, -4, 0},
	{-2, 1, 0, 0, 0, -4, 0},
	{1, 0, 0, 0, 0, -4, 0},
	{0, 0, 1, 2, 0, 3, 0},
	{0, 0, -2, 2, 2, -3, 0},
	{-1, -1, 1, 0, 0, -3, 0},
	{0, 1, 1, 0, 0, -3, 0},
	{0, -1, 1, 2, 2, -3, 0},
	{2, -1, -1, 2, 2, -3, 0},
	{0, 0, 3, 2, 2, -3, 0},
	{2, -1, 0, 2, 2, -3, 0},
}

// Mean motions of the fundamental arguments in degrees per Julian century.
const (
	rateD  = 445267.111480
	rateM  = 35999.050340
	rateMp = 477198.867398
	rateF  = 483202.017538
	rateOm = -1934.136261
)

// shortPeriodDays separates the short-period terms from the long-period ones.
const shortPeriodDays = 35.0

// fundamentalArgs are the lunisolar arguments in radians.
type fundamentalArgs struct {
	d, m, mp, f, om float64
}

// argumentsAt evaluates the fundamental arguments at T centuries from J2000.
func argumentsAt(T float64) fundamentalArgs {
	T2 := T * T
	T3 := T2 * T
	return fundamentalArgs{
		d:  radians(297.85036 + rateD*T - 0.0019142*T2 + T3/189474),
		m:  radians(357.52772 + rateM*T - 0.0001603*T2 - T3/300000),
		mp: radians(134.96298 + rateMp*T + 0.0086972*T2 + T3/56250),
		f:  radians(93.27191 + rateF*T - 0.0036825*T2 + T3/327270),
		om: radians(125.04452 + rateOm*T + 0.0020708*T2 + T3/450000),
	}
}

// periodDays returns the period of a term's argument in days.
func (n nutationTerm) periodDays() float64 {
	rate := float64(n.d)*rateD + float64(n.m)*rateM + float64(n.mp)*rateMp +
		float64(n.f)*rateF + float64(n.om)*rateOm
	if rate == 0 {
		return math.Inf(1)
	}
	return 360 * 36525 / math.Abs(rate)
}

// Nutation returns the nutation in longitude split into its long-period
// (pl) and short-period (ps) parts, in arcseconds, at t centuries from J1900.0.
func Nutation(t float64) (pl, ps float64) {
	T := t - 1 // J1900.0 and J2000.0 are exactly 36525 days apart
	a := argumentsAt(T)
	for _, n := range nutationTerms {
		arg := float64(n.d)*a.d + float64(n.m)*a.m + float64(n.mp)*a.mp +
			float64(n.f)*a.f + float64(n.om)*a.om
		v := (n.s + n.st*T) * math.Sin(arg) * 1e-4
		if n.periodDays() < shortPeriodDays {
			ps += v
		} else {
			pl += v
		}
	}
	return pl, ps
}

// MeanObliquity returns the mean obliquity of the ecliptic in degrees
// at t centuries from J1900.0.
func MeanObliquity(t float64) float64 {
	return 23.452294 - 0.0130125*t - 0.00000164*t*t + 0.000000503*t*t*t
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
