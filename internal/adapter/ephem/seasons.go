package ephem

import (
	"fmt"
	"math"
	"time"

	"github.com/saltline/tidecal/internal/domain"
)

// Solstice and equinox instants from the series in Meeus, Astronomical
// Algorithms, ch. 27 (valid 1000..3000). The mean instant polynomial is
// corrected by a 24-term periodic series, then converted from dynamical time
// to UT. Accuracy is well under a minute, far inside what icon placement on a
// calendar column can resolve.

// meanSeasonJDE returns the mean event instant as a Julian Ephemeris Day.
func meanSeasonJDE(kind domain.SeasonKind, year int) (float64, error) {
	if year < 1000 || year > 3000 {
		return 0, fmt.Errorf("year %d outside series range 1000..3000", year)
	}
	y := (float64(year) - 2000) / 1000
	switch kind {
	case domain.EquinoxMarch:
		return 2451623.80984 + 365242.37404*y + 0.05169*y*y - 0.00411*y*y*y - 0.00057*y*y*y*y, nil
	case domain.SolsticeJune:
		return 2451716.56767 + 365241.62603*y + 0.00325*y*y + 0.00888*y*y*y - 0.00030*y*y*y*y, nil
	case domain.EquinoxSeptember:
		return 2451810.21715 + 365242.01767*y - 0.11575*y*y + 0.00337*y*y*y + 0.00078*y*y*y*y, nil
	case domain.SolsticeDecember:
		return 2451900.05952 + 365242.74049*y - 0.06223*y*y - 0.00823*y*y*y + 0.00032*y*y*y*y, nil
	}
	return 0, fmt.Errorf("unknown season kind %q", kind)
}

// periodicTerms are the A, B, C rows of Meeus table 27.C; the correction is
// sum(A*cos(B + C*T)) with B, C in degrees and T in Julian centuries.
var periodicTerms = [24][3]float64{
	{485, 324.96, 1934.136},
	{203, 337.23, 32964.467},
	{199, 342.08, 20.186},
	{182, 27.85, 445267.112},
	{156, 73.14, 45036.886},
	{136, 171.52, 22518.443},
	{77, 222.54, 65928.934},
	{74, 296.72, 3034.906},
	{70, 243.58, 9037.513},
	{58, 119.81, 33718.147},
	{52, 297.17, 150.678},
	{50, 21.02, 2281.226},
	{45, 247.54, 29929.562},
	{44, 325.15, 31555.956},
	{29, 60.93, 4443.417},
	{18, 155.12, 67555.328},
	{17, 288.79, 4562.452},
	{16, 198.04, 62894.029},
	{14, 199.76, 31436.921},
	{12, 95.39, 14577.848},
	{12, 287.11, 31931.756},
	{12, 320.81, 34777.259},
	{9, 227.73, 1222.114},
	{8, 15.45, 16859.074},
}

const deg = math.Pi / 180

// SeasonInstant returns the UTC instant of the given solstice or equinox.
func (o *Oracle) SeasonInstant(kind domain.SeasonKind, year int) (time.Time, error) {
	jde0, err := meanSeasonJDE(kind, year)
	if err != nil {
		return time.Time{}, err
	}

	t := (jde0 - 2451545.0) / 36525
	w := (35999.373*t - 2.47) * deg
	dl := 1 + 0.0334*math.Cos(w) + 0.0007*math.Cos(2*w)

	s := 0.0
	for _, row := range periodicTerms {
		s += row[0] * math.Cos((row[1]+row[2]*t)*deg)
	}

	jde := jde0 + 0.00001*s/dl

	// The series yields dynamical time; shift to UT by the slowly-varying
	// delta-T (Espenak & Meeus fit for 2005..2050, close enough outside it
	// for placement work).
	dy := float64(year) - 2000
	deltaT := 62.92 + 0.32217*dy + 0.005589*dy*dy

	return jdToTime(jde).Add(-time.Duration(deltaT * float64(time.Second))), nil
}

// jdToTime converts a Julian Day to a UTC time.Time.
func jdToTime(jd float64) time.Time {
	secs := (jd - 2440587.5) * 86400
	return time.Unix(int64(secs), int64((secs-math.Trunc(secs))*1e9)).UTC()
}
