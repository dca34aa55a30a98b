// Package ephem provides the production domain.Ephemeris implementation,
// backed by topocentric sun/moon position math plus solar event and season
// series. Results are deterministic functions of (body, instant, site).
package ephem

import (
	"fmt"
	"math"
	"time"

	"github.com/sixdouglas/suncalc"
	"github.com/sj14/astral/pkg/astral"

	"github.com/saltline/tidecal/internal/domain"
)

// Oracle answers astronomical queries for one observing site.
type Oracle struct {
	lat, lon float64
	observer astral.Observer
}

// NewOracle creates an oracle for the station coordinates, in decimal
// degrees, observing from sea level.
func NewOracle(lat, lon float64) *Oracle {
	return &Oracle{
		lat: lat,
		lon: lon,
		observer: astral.Observer{
			Latitude:  lat,
			Longitude: lon,
			Elevation: 0,
		},
	}
}

// Altitude returns the body's topocentric altitude in degrees.
func (o *Oracle) Altitude(body domain.Body, utc time.Time) (float64, error) {
	var altRad float64
	switch body {
	case domain.BodySun:
		altRad = suncalc.GetPosition(utc, o.lat, o.lon).Altitude
	case domain.BodyMoon:
		altRad = suncalc.GetMoonPosition(utc, o.lat, o.lon).Altitude
	default:
		return 0, fmt.Errorf("unsupported body %v", body)
	}
	if math.IsNaN(altRad) {
		return 0, fmt.Errorf("no %s position for %s", body, utc.Format(time.RFC3339))
	}
	return altRad * 180 / math.Pi, nil
}

// PhaseAngle returns the moon's synodic cycle fraction in [0, 1).
func (o *Oracle) PhaseAngle(utc time.Time) (float64, error) {
	phase := suncalc.GetMoonIllumination(utc).Phase
	if math.IsNaN(phase) {
		return 0, fmt.Errorf("no moon phase for %s", utc.Format(time.RFC3339))
	}
	// Normalize defensively; the cycle fraction must stay in [0, 1).
	phase = math.Mod(phase, 1)
	if phase < 0 {
		phase++
	}
	return phase, nil
}

// Illumination returns the illuminated fraction of the moon's disk.
func (o *Oracle) Illumination(utc time.Time) (float64, error) {
	frac := suncalc.GetMoonIllumination(utc).Fraction
	if math.IsNaN(frac) {
		return 0, fmt.Errorf("no moon illumination for %s", utc.Format(time.RFC3339))
	}
	return frac, nil
}

// SunTimes returns civil dawn, sunrise, solar noon, sunset and civil dusk for
// the local date. Noon is taken as the rise/set midpoint, which is within a
// minute of the true transit for calendar placement purposes.
func (o *Oracle) SunTimes(date domain.Date, loc *time.Location) (domain.SunTimes, error) {
	// Evaluate at local noon so the astral day resolution matches the local
	// calendar date on either side of the date line.
	ref := time.Date(date.Year, date.Month, date.Day, 12, 0, 0, 0, loc)

	rise, err := astral.Sunrise(o.observer, ref)
	if err != nil {
		return domain.SunTimes{}, fmt.Errorf("sunrise on %s: %w", date, err)
	}
	set, err := astral.Sunset(o.observer, ref)
	if err != nil {
		return domain.SunTimes{}, fmt.Errorf("sunset on %s: %w", date, err)
	}

	st := domain.SunTimes{
		Rise: rise.UTC(),
		Set:  set.UTC(),
		Noon: rise.Add(set.Sub(rise) / 2).UTC(),
	}

	// Polar-adjacent latitudes can have a sunrise without usable twilight;
	// fall back to the rise/set instants rather than failing the day.
	if dawn, err := astral.Dawn(o.observer, ref, astral.DepressionCivil); err == nil {
		st.Dawn = dawn.UTC()
	} else {
		st.Dawn = st.Rise
	}
	if dusk, err := astral.Dusk(o.observer, ref, astral.DepressionCivil); err == nil {
		st.Dusk = dusk.UTC()
	} else {
		st.Dusk = st.Set
	}

	return st, nil
}

var _ domain.Ephemeris = (*Oracle)(nil)
